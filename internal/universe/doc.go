// Package universe provides the read-only type universe the documentation
// engine works on.
//
// A universe is a set of declarations (class-like types) with attached
// metadata tags, members, fields, nested declarations and direct
// supertypes, together with the standard type-system queries the engine
// needs: erasure, same-type, direct supertypes with type-argument
// substitution, and assignability through the supertype closure.
//
// Key types:
//   - ID: scope (package path) + declaration name
//   - Declaration: a class, record, interface or external type
//   - Type: the closed reference algebra
//     (Primitive | Array | Declared | TypeVar | Wildcard | Unknown)
//   - Graph: the in-memory Universe implementation built by the frontends
package universe
