package universe

import (
	"fmt"
)

// Universe is the read-only view of a type universe the engine consumes.
type Universe interface {
	// Declarations returns every declaration in a stable order.
	Declarations() []*Declaration
	// Lookup returns the declaration with the given qualified name, or nil.
	Lookup(qualified string) *Declaration
}

// Graph holds all declarations of a universe. It implements Universe.
type Graph struct {
	decls  []*Declaration
	byName map[string]*Declaration
	scopes map[string]*Scope
}

var _ Universe = (*Graph)(nil)

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		byName: make(map[string]*Declaration),
		scopes: make(map[string]*Scope),
	}
}

// Scope returns the scope with the given path, creating it if needed.
func (g *Graph) Scope(path, name string) *Scope {
	if s, ok := g.scopes[path]; ok {
		if s.Name == "" {
			s.Name = name
		}

		return s
	}

	s := &Scope{Path: path, Name: name}
	g.scopes[path] = s

	return s
}

// Declare creates and registers a top-level declaration.
// Declaring the same qualified name twice is an error.
func (g *Graph) Declare(scope *Scope, name string, kind DeclKind) (*Declaration, error) {
	d := &Declaration{
		ID:    ID{Scope: scopePath(scope), Name: name},
		Kind:  kind,
		Scope: scope,
	}

	if err := g.add(d); err != nil {
		return nil, err
	}

	return d, nil
}

// DeclareNested creates and registers a declaration nested in parent.
func (g *Graph) DeclareNested(parent *Declaration, name string, kind DeclKind) (*Declaration, error) {
	d := &Declaration{
		ID:        ID{Scope: parent.ID.Scope, Name: parent.ID.Name + "." + name},
		Kind:      kind,
		Scope:     parent.Scope,
		Enclosing: parent,
	}

	if err := g.add(d); err != nil {
		return nil, err
	}

	parent.Nested = append(parent.Nested, d)

	return d, nil
}

// Nest records child as nested inside parent without renaming it.
// It is used by frontends whose source language has no lexical nesting.
func (g *Graph) Nest(parent, child *Declaration) error {
	if child.Enclosing != nil && child.Enclosing != parent {
		return fmt.Errorf("%s is already nested in %s", child, child.Enclosing)
	}

	if child.Enclosing == parent {
		return nil
	}

	child.Enclosing = parent
	parent.Nested = append(parent.Nested, child)

	return nil
}

func (g *Graph) add(d *Declaration) error {
	key := d.ID.String()
	if _, exists := g.byName[key]; exists {
		return fmt.Errorf("duplicate declaration %s", key)
	}

	g.byName[key] = d
	g.decls = append(g.decls, d)

	return nil
}

// Declarations returns every declaration in registration order.
func (g *Graph) Declarations() []*Declaration {
	return g.decls
}

// Lookup returns the declaration with the given qualified name, or nil.
func (g *Graph) Lookup(qualified string) *Declaration {
	return g.byName[qualified]
}

// Get returns the declaration with the given ID, or nil.
func (g *Graph) Get(id ID) *Declaration {
	return g.byName[id.String()]
}

// Len returns the number of declarations.
func (g *Graph) Len() int {
	return len(g.decls)
}

func scopePath(s *Scope) string {
	if s == nil {
		return ""
	}

	return s.Path
}
