// Package document defines the documentation artifact produced for a set
// of models and its JSON and YAML encodings.
package document
