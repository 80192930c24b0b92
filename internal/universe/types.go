package universe

import (
	"element-autodoc/internal/common"
	"strings"
)

// ID uniquely identifies a declaration by its scope and name.
// Nested declarations carry their enclosing names, separated by dots.
type ID struct {
	Scope string // e.g., "element-autodoc/examples/basic"
	Name  string // e.g., "Counter" or "Counter.Data"
}

// String returns a human-readable representation of the ID.
func (id ID) String() string {
	if id.Scope == "" {
		return id.Name
	}

	return id.Scope + "." + id.Name
}

// Short returns the innermost name without any scope or enclosing names.
func (id ID) Short() string {
	if i := strings.LastIndexByte(id.Name, '.'); i >= 0 {
		return id.Name[i+1:]
	}

	return id.Name
}

// DeclKind represents the kind of a declaration.
type DeclKind int

const (
	DeclUnknown   DeclKind = iota
	DeclClass              // ordinary named type
	DeclRecord             // fixed-shape record: ordered, named, typed fields
	DeclInterface          // interface / abstract contract
	DeclExternal           // referenced but not loaded from source
)

// String returns a human-readable representation of the DeclKind.
func (k DeclKind) String() string {
	switch k {
	case DeclClass:
		return "class"
	case DeclRecord:
		return "record"
	case DeclInterface:
		return "interface"
	case DeclExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// ParseDeclKind parses the String form of a DeclKind.
func ParseDeclKind(s string) (DeclKind, bool) {
	for k := DeclClass; k <= DeclExternal; k++ {
		if k.String() == s {
			return k, true
		}
	}

	return DeclUnknown, false
}

// IsClassLike reports whether declarations of this kind can be models.
func (k DeclKind) IsClassLike() bool {
	return k == DeclClass || k == DeclRecord
}

// Tag is one metadata annotation attached to a declaration, member,
// parameter or field.
type Tag struct {
	Name  string            // e.g., "model", "description", "child"
	Value string            // free text or the joined positional arguments
	Args  []string          // positional arguments, if any
	Attrs map[string]string // key=value arguments, if any
}

// Attr returns the named attribute value.
func (t Tag) Attr(key string) string {
	return t.Attrs[key]
}

// Tags is an ordered list of tags. Order is declaration order.
type Tags []Tag

// Lookup returns the first tag with the given name.
func (ts Tags) Lookup(name string) (Tag, bool) {
	for _, t := range ts {
		if t.Name == name {
			return t, true
		}
	}

	return Tag{}, false
}

// Has returns true if a tag with the given name is present.
func (ts Tags) Has(name string) bool {
	_, ok := ts.Lookup(name)
	return ok
}

// Value returns the value of the first tag with the given name.
func (ts Tags) Value(name string) (string, bool) {
	t, ok := ts.Lookup(name)
	return t.Value, ok
}

// All returns every tag with the given name in declaration order.
func (ts Tags) All(name string) []Tag {
	var out []Tag

	for _, t := range ts {
		if t.Name == name {
			out = append(out, t)
		}
	}

	return out
}

// Scope is the enclosing scope (package) of a set of declarations.
type Scope struct {
	Path string // import path or namespace
	Name string // short package name
	Tags Tags   // scope-level metadata (e.g., a package-wide group)
}

// Declaration describes a class-like type in the universe.
type Declaration struct {
	ID         ID
	Kind       DeclKind
	Tags       Tags
	Scope      *Scope
	Enclosing  *Declaration   // set for nested declarations
	Nested     []*Declaration // declarations nested inside this one
	TypeParams []*TypeVar     // declared type parameters, in order
	Supertypes []Type         // direct supertypes, expressed over TypeParams
	Members    []*Member      // constructors and methods, in declaration order
	Fields     []*Field       // for records, the ordered fields
}

// String returns the qualified name of the declaration.
func (d *Declaration) String() string {
	if d == nil {
		return "<nil>"
	}

	return d.ID.String()
}

// IsRecord returns true if the declaration is a fixed-shape record.
func (d *Declaration) IsRecord() bool {
	return d.Kind == DeclRecord
}

// Type returns the declaration as a type reference, with its own type
// parameters as arguments.
func (d *Declaration) Type() *Declared {
	args := make([]Type, len(d.TypeParams))
	for i, tp := range d.TypeParams {
		args[i] = tp
	}

	return &Declared{Decl: d, Args: args}
}

// MemberKind represents the kind of a member.
type MemberKind int

const (
	MemberUnknown     MemberKind = iota
	MemberConstructor            // produces an instance of the declaring type
	MemberMethod                 // any other operation
)

// String returns a human-readable representation of the MemberKind.
func (k MemberKind) String() string {
	switch k {
	case MemberConstructor:
		return "constructor"
	case MemberMethod:
		return "method"
	default:
		return common.UnknownStr
	}
}

// Member is a constructor or method declared on a declaration.
type Member struct {
	Name   string
	Kind   MemberKind
	Static bool
	Tags   Tags
	Params []*Param
	Result Type // nil when the member returns nothing
}

// Param is a member parameter.
type Param struct {
	Name string
	Type Type
	Tags Tags
}

// Field is a record field.
type Field struct {
	Name string
	Type Type
	Tags Tags
}
