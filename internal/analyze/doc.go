// Package analyze builds a type universe from Go source.
//
// It loads packages with golang.org/x/tools/go/packages and walks their
// AST and go/types information. Metadata is written as comment directives:
//
//	//element:model counter
//	//element:name Counter
//	//element:description Counts things.
//	type Counter struct{ ... }
//
// Struct types become records, interfaces become interfaces and other
// named types become classes. A func tagged //element:factory becomes a
// member of the model it produces; //element:child and //element:data on
// that func tag its parameters. A type tagged //element:data Owner is
// nested in Owner. Record fields read directives from their doc comments
// and the `element` struct tag.
package analyze
