// Package factory finds the single factory operation of a model and
// derives from it the data carrier and the child mappings.
//
// A factory is either a constructor, whose parameters are scanned for the
// data carrier and for child links, or a parameterless static method that
// returns a two-argument generic factory type whose first argument is the
// data carrier.
package factory
