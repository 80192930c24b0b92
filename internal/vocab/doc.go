// Package vocab holds the fixed introspection facts the type name resolver
// needs about builtin and container types.
//
// A Vocabulary is built once per universe and is immutable afterwards.
package vocab
