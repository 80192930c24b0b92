// Package element holds the runtime contract of element models.
//
// Models are registered under a short key and built from a data value.
// A model either has a constructor taking its data, or a static function
// returning a Factory for it.
package element

// Factory builds a model of type M from a data value of type D.
type Factory[D, M any] interface {
	Build(data D) (M, error)
}

// FactoryFunc adapts a function to a Factory.
type FactoryFunc[D, M any] func(data D) (M, error)

// Build calls f(data).
func (f FactoryFunc[D, M]) Build(data D) (M, error) {
	return f(data)
}
