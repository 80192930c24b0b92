package factory

//go:generate go tool stringer -type=Kind

// Kind is the shape of a factory operation.
type Kind int

const (
	ConstructorFactory Kind = iota + 1
	StaticFactory
)
