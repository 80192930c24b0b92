package factory

import (
	"fmt"
	"strings"

	"element-autodoc/internal/common"
	"element-autodoc/internal/diagnostic"
	"element-autodoc/internal/universe"
)

// Tag names read by the resolver.
const (
	TagFactory = "factory"
	TagData    = "data"
	TagChild   = "child"
	TagModel   = "model"
)

// Resolver resolves factory operations. Non-fatal findings (dropped child
// mappings) go to the diagnostics log; anything that excludes the model is
// returned as a *diagnostic.Failure.
type Resolver struct {
	diags *diagnostic.Diagnostics
}

// NewResolver creates a new Resolver. diags may be nil.
func NewResolver(diags *diagnostic.Diagnostics) *Resolver {
	return &Resolver{diags: diags}
}

// Resolve finds decl's factory operation and builds its Descriptor.
func (r *Resolver) Resolve(decl *universe.Declaration) (*Descriptor, error) {
	var factories []*universe.Member

	for _, m := range decl.Members {
		if m.Tags.Has(TagFactory) {
			factories = append(factories, m)
		}
	}

	if common.IsEmpty(factories) {
		return nil, diagnostic.Fail(diagnostic.CodeNoFactoryOperation,
			"%s has no factory operation", decl)
	}

	if common.IsMultiple(factories) {
		return nil, diagnostic.Fail(diagnostic.CodeMultipleFactoryOperations,
			"%s has %d factory operations (%s)", decl, len(factories), memberNames(factories))
	}

	m, _ := common.First(factories)

	switch {
	case m.Kind == universe.MemberConstructor:
		return r.constructor(decl, m)
	case m.Static:
		return r.static(decl, m)
	default:
		return nil, diagnostic.Fail(diagnostic.CodeInvalidFactoryShape,
			"factory operation %s of %s is neither a constructor nor static", m.Name, decl).At(m.Name)
	}
}

func (r *Resolver) static(decl *universe.Declaration, m *universe.Member) (*Descriptor, error) {
	if !common.IsEmpty(m.Params) {
		return nil, diagnostic.Fail(diagnostic.CodeInvalidFactoryShape,
			"static factory operation of %s has %d parameters", decl, len(m.Params)).At(m.Name)
	}

	ret, ok := m.Result.(*universe.Declared)
	if !ok || ret.Decl == nil || len(ret.Args) != 2 {
		return nil, diagnostic.Fail(diagnostic.CodeInvalidFactoryShape,
			"static factory operation of %s has invalid return type %s", decl, typeString(m.Result)).At(m.Name)
	}

	data, ok := ret.Args[0].(*universe.Declared)
	if !ok || data.Decl == nil {
		return nil, diagnostic.Fail(diagnostic.CodeInvalidFactoryShape,
			"static factory operation of %s has invalid return type %s", decl, typeString(m.Result)).At(m.Name)
	}

	return NewDescriptor(StaticFactory, m, data.Decl, nil), nil
}

func (r *Resolver) constructor(decl *universe.Declaration, m *universe.Member) (*Descriptor, error) {
	var (
		children []Child
		seen     = map[string]bool{}
		carriers []*universe.Declaration
		sources  []string
	)

	for _, p := range m.Params {
		if tag, ok := p.Tags.Lookup(TagChild); ok {
			if key, ok := r.childKey(decl, m, p, tag); ok {
				if seen[key] {
					r.warn(diagnostic.CodeAmbiguousChildMapping,
						fmt.Sprintf("child key %q is mapped more than once; keeping the first mapping", key),
						decl, m.Name+"."+p.Name)
				} else {
					seen[key] = true
					children = append(children, Child{Key: key, Param: p})
				}
			}
		}

		carrier, tagged := dataCarrier(p)
		if !tagged {
			continue
		}

		if carrier == nil {
			return nil, diagnostic.Fail(diagnostic.CodeInvalidFactoryShape,
				"data parameter %s of %s has non-declared type %s", p.Name, decl, typeString(p.Type)).At(m.Name)
		}

		carriers = append(carriers, carrier)
		sources = append(sources, p.Name)
	}

	if common.IsMultiple(carriers) {
		return nil, diagnostic.Fail(diagnostic.CodeMultipleDataCarriers,
			"constructor of %s has %d data parameters (%s)", decl, len(carriers), joinNames(sources)).At(m.Name)
	}

	if carrier, ok := common.First(carriers); ok {
		return NewDescriptor(ConstructorFactory, m, carrier, children), nil
	}

	var nested []*universe.Declaration

	for _, n := range decl.Nested {
		if n.Tags.Has(TagData) {
			nested = append(nested, n)
		}
	}

	if common.IsMultiple(nested) {
		names := make([]string, len(nested))
		for i, n := range nested {
			names[i] = n.ID.Short()
		}

		return nil, diagnostic.Fail(diagnostic.CodeMultipleDataCarriers,
			"%s has %d nested data types (%s)", decl, len(nested), joinNames(names))
	}

	carrier, _ := common.First(nested)

	return NewDescriptor(ConstructorFactory, m, carrier, children), nil
}

// childKey returns the key a child-tagged parameter is mapped under. An
// empty tag value takes the key of the parameter's own model type.
func (r *Resolver) childKey(decl *universe.Declaration, m *universe.Member, p *universe.Param, tag universe.Tag) (string, bool) {
	if tag.Value != "" {
		return tag.Value, true
	}

	if target := declOf(p.Type); target != nil {
		if key, ok := target.Tags.Value(TagModel); ok {
			return key, true
		}
	}

	r.warn(diagnostic.CodeInvalidChildMapping,
		fmt.Sprintf("child parameter %s has no key and its type %s is not a model", p.Name, typeString(p.Type)),
		decl, m.Name+"."+p.Name)

	return "", false
}

// dataCarrier reports whether p carries the model's data, either through
// its own tag or through a tag on its type's declaration. The returned
// declaration is nil when p is tagged but its type is not declared.
func dataCarrier(p *universe.Param) (*universe.Declaration, bool) {
	d := declOf(p.Type)

	if p.Tags.Has(TagData) {
		return d, true
	}

	if d != nil && d.Tags.Has(TagData) {
		return d, true
	}

	return nil, false
}

func declOf(t universe.Type) *universe.Declaration {
	if d, ok := t.(*universe.Declared); ok {
		return d.Decl
	}

	return nil
}

func (r *Resolver) warn(code, msg string, decl *universe.Declaration, field string) {
	if r.diags != nil {
		r.diags.AddWarning(code, msg, decl.String(), field)
	}
}

func memberNames(ms []*universe.Member) string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name
	}

	return joinNames(names)
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}

func typeString(t universe.Type) string {
	if t == nil {
		return "void"
	}

	return t.String()
}
