// Package typename reduces type references to the short descriptive
// vocabulary used in model documentation ("list of string",
// "map of string -> whole number", a linked model's key, ...).
//
// Reduction rules, first match wins:
//  1. primitives
//  2. arrays
//  3. boxed wrappers and the declared string type
//  4. declarations tagged as models (their key, whatever their shape)
//  5. set, collection and map families, including user subtypes
//  6. the numeric supertype and the universal top type
//  7. type variables and wildcards (their bound)
//  8. the lower-cased short declaration name
package typename
