// Package key validates model lookup keys.
//
// A key is one or more lowercase segments separated by '/', optionally
// prefixed by a namespace and ':' (for example "autodoc:counter/simple").
package key
