// Package manifest builds a type universe from a YAML description.
//
// A manifest lists scopes and declarations with their tags, type
// parameters, supertypes, members and fields. Types are written as
// expressions in a Java-like grammar:
//
//	java.util.Map<String, List<? extends T>>
//	int[]
//	Set
//
// Names resolve against type parameters in scope, primitive keywords, the
// declaring scope and finally unique short names. This lets frontends for
// other source languages hand the engine a universe without linking to it.
package manifest
