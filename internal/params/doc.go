// Package params turns a model's data carrier into its ordered list of
// documented parameters.
//
// Parameters come from exactly one source: the explicit parameter tags of
// the model (or, failing that, of the carrier), or the fields of a record
// carrier. Field types are named by the type override tag, then by the
// model key reached through a child path, then by simplification.
package params
