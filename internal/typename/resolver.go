package typename

import (
	"fmt"
	"strings"

	"element-autodoc/internal/diagnostic"
	"element-autodoc/internal/universe"
	"element-autodoc/internal/vocab"
)

// Output vocabulary.
const (
	Boolean       = "boolean"
	WholeNumber   = "whole number"
	DecimalNumber = "decimal number"
	Number        = "number"
	String        = "string"
	Any           = "any"
)

// ModelTag is the tag whose value is a model's lookup key.
const ModelTag = "model"

// Resolver simplifies types. It holds no mutable state besides the shared
// diagnostics log, so one Resolver may be used from many goroutines.
type Resolver struct {
	vocab *vocab.Vocabulary
	diags *diagnostic.Diagnostics
}

// New creates a new Resolver. diags may be nil.
func New(v *vocab.Vocabulary, diags *diagnostic.Diagnostics) *Resolver {
	return &Resolver{vocab: v, diags: diags}
}

// Simplify reduces t to its descriptive name. Unrecognized constructs are
// reported and yield "".
func (r *Resolver) Simplify(t universe.Type) string {
	return r.SimplifyAt(t, "", "")
}

// SimplifyAt is like Simplify but attributes diagnostics to the given model
// and field.
func (r *Resolver) SimplifyAt(t universe.Type, model, field string) string {
	w := &walk{r: r, model: model, field: field}
	return w.simplify(t)
}

// walk carries the state of a single reduction.
type walk struct {
	r     *Resolver
	model string
	field string

	// type variables whose bound is being resolved
	active []*universe.TypeVar

	// declared references whose structure is being resolved
	open []*universe.Declared
}

// maxOpen bounds the nesting of declared references, so generic
// declarations that expand through their own supertypes terminate.
const maxOpen = 32

func (w *walk) simplify(t universe.Type) string {
	switch tt := t.(type) {
	case *universe.Primitive:
		return primitiveName(tt.Kind)
	case *universe.Array:
		return "list of " + w.simplify(tt.Elem)
	case *universe.Declared:
		if tt.Decl == nil {
			return w.unrecognized(t)
		}

		return w.declared(tt)
	case *universe.TypeVar:
		return w.typeVar(tt)
	case *universe.Wildcard:
		if tt.Extends == nil {
			return Any
		}

		return w.simplify(tt.Extends)
	default:
		return w.unrecognized(t)
	}
}

func (w *walk) declared(t *universe.Declared) string {
	v := w.r.vocab

	if kind, ok := v.Unbox(t.Decl); ok {
		return primitiveName(kind)
	}

	if v.String != nil && t.Decl == v.String {
		return String
	}

	if key, ok := t.Decl.Tags.Value(ModelTag); ok {
		return key
	}

	if w.reentered(t) {
		return fallback(t.Decl)
	}

	w.open = append(w.open, t)
	defer func() { w.open = w.open[:len(w.open)-1] }()

	if s, ok := w.family("set", t, v.Set); ok {
		return s
	}

	if s, ok := w.family("list", t, v.Collection); ok {
		return s
	}

	if s, ok := w.mapFamily(t); ok {
		return s
	}

	if v.Number != nil && t.Decl == v.Number {
		return Number
	}

	if t.Decl == v.Object {
		return Any
	}

	return fallback(t.Decl)
}

// reentered reports whether t is already being resolved further up the
// walk, as with a type reaching itself through its supertypes.
func (w *walk) reentered(t *universe.Declared) bool {
	if len(w.open) >= maxOpen {
		return true
	}

	for _, o := range w.open {
		if universe.SameType(o, t) {
			return true
		}
	}

	return false
}

func fallback(d *universe.Declaration) string {
	return strings.ToLower(d.ID.Short())
}

// family matches t against a single-argument container family, exactly
// or through its supertype closure.
func (w *walk) family(name string, t *universe.Declared, target *universe.Declaration) (string, bool) {
	edge, ok := match(t, target)
	if !ok {
		return "", false
	}

	return name + " of " + w.arg(edge, 0), true
}

func (w *walk) mapFamily(t *universe.Declared) (string, bool) {
	edge, ok := match(t, w.r.vocab.Map)
	if !ok {
		return "", false
	}

	return "map of " + w.arg(edge, 0) + " -> " + w.arg(edge, 1), true
}

// arg simplifies the i-th type argument of edge; a missing argument
// (raw reference) is the top type.
func (w *walk) arg(edge *universe.Declared, i int) string {
	if i >= len(edge.Args) {
		return Any
	}

	return w.simplify(edge.Args[i])
}

func (w *walk) typeVar(v *universe.TypeVar) string {
	for _, a := range w.active {
		if a == v {
			return Any
		}
	}

	if v.Bound == nil {
		return Any
	}

	w.active = append(w.active, v)
	defer func() { w.active = w.active[:len(w.active)-1] }()

	return w.simplify(v.Bound)
}

func (w *walk) unrecognized(t universe.Type) string {
	if w.r.diags != nil {
		w.r.diags.AddWarning(diagnostic.CodeUnrecognizedType,
			fmt.Sprintf("unrecognized type %s", describe(t)), w.model, w.field)
	}

	return ""
}

// match returns the reference through which t reaches target: t itself
// when its erasure is target, else the matching supertype edge.
func match(t *universe.Declared, target *universe.Declaration) (*universe.Declared, bool) {
	if target == nil {
		return nil, false
	}

	if t.Decl == target {
		return t, true
	}

	return universe.FindSupertype(t, target)
}

func primitiveName(k universe.PrimitiveKind) string {
	switch {
	case k == universe.KindBool:
		return Boolean
	case k.IsInteger():
		return WholeNumber
	case k.IsFloat():
		return DecimalNumber
	case k.IsText():
		return String
	default:
		return Number
	}
}

func describe(t universe.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
