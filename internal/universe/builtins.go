package universe

import (
	"fmt"
)

// BuiltinScope is the scope of the container and top-type declarations
// installed by InstallBuiltins.
const BuiltinScope = "builtin"

// Qualified names of the builtin declarations.
const (
	BuiltinObject     = BuiltinScope + ".Object"
	BuiltinCollection = BuiltinScope + ".Collection"
	BuiltinSet        = BuiltinScope + ".Set"
	BuiltinMap        = BuiltinScope + ".Map"
)

// Builtins holds the builtin declarations of a Graph.
type Builtins struct {
	Object     *Declaration
	Collection *Declaration // Collection[E]
	Set        *Declaration // Set[E], a Collection[E]
	Map        *Declaration // Map[K, V]
}

// InstallBuiltins declares the universal top type and the generic container
// families for frontends whose source language has no such declarations.
func InstallBuiltins(g *Graph) (Builtins, error) {
	scope := g.Scope(BuiltinScope, BuiltinScope)

	var b Builtins

	var err error

	if b.Object, err = g.Declare(scope, "Object", DeclInterface); err != nil {
		return b, fmt.Errorf("install builtins: %w", err)
	}

	if b.Collection, err = g.Declare(scope, "Collection", DeclInterface); err != nil {
		return b, fmt.Errorf("install builtins: %w", err)
	}

	if b.Set, err = g.Declare(scope, "Set", DeclInterface); err != nil {
		return b, fmt.Errorf("install builtins: %w", err)
	}

	if b.Map, err = g.Declare(scope, "Map", DeclInterface); err != nil {
		return b, fmt.Errorf("install builtins: %w", err)
	}

	e := NewTypeVar("E", nil)
	b.Collection.TypeParams = []*TypeVar{e}

	se := NewTypeVar("E", nil)
	b.Set.TypeParams = []*TypeVar{se}
	b.Set.Supertypes = []Type{Ref(b.Collection, se)}

	b.Map.TypeParams = []*TypeVar{NewTypeVar("K", nil), NewTypeVar("V", nil)}

	return b, nil
}
