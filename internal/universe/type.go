package universe

import (
	"element-autodoc/internal/common"
	"strings"
)

// Type is a reference to a type in the universe.
//
// The set of implementations is closed: *Primitive, *Array, *Declared,
// *TypeVar, *Wildcard and *Unknown.
type Type interface {
	String() string
	isType()
}

// Primitive is a primitive-like value type.
type Primitive struct {
	Kind PrimitiveKind
}

// Array is an ordered sequence of Elem.
type Array struct {
	Elem Type
}

// Declared references a declaration, optionally with type arguments.
// A Declared with no arguments for a generic declaration is its raw form.
type Declared struct {
	Decl *Declaration
	Args []Type
}

// TypeVar is a type parameter. TypeVars are compared by identity.
type TypeVar struct {
	Name  string
	Bound Type // upper bound; nil means the universal top type
}

// Wildcard is an unnamed, possibly bounded, type argument.
type Wildcard struct {
	Extends Type // nil means unbounded
}

// Unknown carries a type system construct the frontend could not express.
type Unknown struct {
	Description string
}

func (*Primitive) isType() {}
func (*Array) isType()     {}
func (*Declared) isType()  {}
func (*TypeVar) isType()   {}
func (*Wildcard) isType()  {}
func (*Unknown) isType()   {}

// String returns a readable form of the primitive.
func (p *Primitive) String() string { return p.Kind.String() }

// String returns a readable form of the array.
func (a *Array) String() string { return typeString(a.Elem) + "[]" }

// String returns a readable form of the declared reference.
func (d *Declared) String() string {
	if d.Decl == nil {
		return "<nil>"
	}

	if len(d.Args) == 0 {
		return d.Decl.ID.Name
	}

	parts := make([]string, len(d.Args))
	for i, a := range d.Args {
		parts[i] = typeString(a)
	}

	return d.Decl.ID.Name + "<" + strings.Join(parts, ", ") + ">"
}

// String returns the type parameter name.
func (v *TypeVar) String() string { return v.Name }

// String returns a readable form of the wildcard.
func (w *Wildcard) String() string {
	if w.Extends == nil {
		return "?"
	}

	return "? extends " + typeString(w.Extends)
}

// String returns the description of the construct.
func (u *Unknown) String() string {
	if u.Description == "" {
		return common.UnknownStr
	}

	return u.Description
}

func typeString(t Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}

// Prim returns a primitive type of the given kind.
func Prim(kind PrimitiveKind) *Primitive {
	return &Primitive{Kind: kind}
}

// ArrayOf returns an array of elem.
func ArrayOf(elem Type) *Array {
	return &Array{Elem: elem}
}

// Ref returns a reference to decl with the given type arguments.
func Ref(decl *Declaration, args ...Type) *Declared {
	return &Declared{Decl: decl, Args: args}
}

// NewTypeVar returns a fresh type parameter.
func NewTypeVar(name string, bound Type) *TypeVar {
	return &TypeVar{Name: name, Bound: bound}
}

// WildcardOf returns a wildcard bounded by extends (nil for unbounded).
func WildcardOf(extends Type) *Wildcard {
	return &Wildcard{Extends: extends}
}
