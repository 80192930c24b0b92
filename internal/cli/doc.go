// Package cli implements the autodoc command tree.
//
// Commands:
//   - generate: document every model and write the document set
//   - check: document every model and fail if any was rejected
package cli
