// Package assemble drives the documentation of every model in a universe:
// collection, factory resolution and parameter extraction, then a
// deterministic sort into the final document set.
//
// A failure that concerns one model drops only that model. Only a
// universe that cannot be queried aborts the run.
package assemble
