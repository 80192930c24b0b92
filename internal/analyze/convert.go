package analyze

import (
	"go/ast"
	"go/types"
	"reflect"

	"element-autodoc/internal/diagnostic"
	"element-autodoc/internal/universe"
)

// convert maps a go/types type into the universe.
//
// Pointers are transparent. Slices and arrays are arrays. Maps whose value
// is struct{} or bool are sets, other maps are maps. Interfaces without a
// name are the top type. Channels, functions and anonymous structs have no
// counterpart and become Unknown.
func (a *Analyzer) convert(t types.Type) universe.Type {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		if k, ok := universe.ParsePrimitiveKind(tt.Name()); ok {
			return universe.Prim(k)
		}

		return &universe.Unknown{Description: tt.String()}
	case *types.Pointer:
		return a.convert(tt.Elem())
	case *types.Slice:
		return universe.ArrayOf(a.convert(tt.Elem()))
	case *types.Array:
		return universe.ArrayOf(a.convert(tt.Elem()))
	case *types.Map:
		return a.convertMap(tt)
	case *types.Interface:
		return universe.Ref(a.builtins.Object)
	case *types.TypeParam:
		return a.typeVar(tt)
	case *types.Named:
		return a.convertNamed(tt)
	default:
		return &universe.Unknown{Description: t.String()}
	}
}

func (a *Analyzer) convertMap(m *types.Map) universe.Type {
	if isSetValue(m.Elem()) {
		return universe.Ref(a.builtins.Set, a.convert(m.Key()))
	}

	return universe.Ref(a.builtins.Map, a.convert(m.Key()), a.convert(m.Elem()))
}

// isSetValue reports whether a map with values of type t is used as a set.
func isSetValue(t types.Type) bool {
	switch u := types.Unalias(t).(type) {
	case *types.Struct:
		return u.NumFields() == 0
	case *types.Basic:
		return u.Kind() == types.Bool
	default:
		return false
	}
}

func (a *Analyzer) convertNamed(n *types.Named) universe.Type {
	decl := a.intern(n.Origin().Obj())
	if decl == nil {
		return &universe.Unknown{Description: n.String()}
	}

	// named basics of loaded packages read as their basic type
	if b, ok := n.Underlying().(*types.Basic); ok && decl.Kind != universe.DeclExternal && !decl.Tags.Has("model") {
		return a.convert(b)
	}

	targs := n.TypeArgs()
	if targs.Len() == 0 {
		return universe.Ref(decl)
	}

	args := make([]universe.Type, targs.Len())
	for i := range targs.Len() {
		args[i] = a.convert(targs.At(i))
	}

	return universe.Ref(decl, args...)
}

// intern returns the declaration of a named type, declaring types of
// packages that were not loaded on first use.
func (a *Analyzer) intern(obj *types.TypeName) *universe.Declaration {
	if d, ok := a.decls[obj]; ok {
		return d
	}

	path, name := universe.BuiltinScope, universe.BuiltinScope
	if obj.Pkg() != nil {
		path, name = obj.Pkg().Path(), obj.Pkg().Name()
	}

	d, err := a.graph.Declare(a.graph.Scope(path, name), obj.Name(), universe.DeclExternal)
	if err != nil {
		// local types shadowing one another
		a.decls[obj] = nil
		return nil
	}

	a.decls[obj] = d

	if named, ok := obj.Type().(*types.Named); ok {
		d.TypeParams = a.typeParams(named.TypeParams())
		d.Supertypes = a.supertypes(named.Underlying())
	}

	return d
}

func (a *Analyzer) typeParams(list *types.TypeParamList) []*universe.TypeVar {
	if list.Len() == 0 {
		return nil
	}

	out := make([]*universe.TypeVar, list.Len())
	for i := range list.Len() {
		out[i] = a.typeVar(list.At(i))
	}

	return out
}

// typeVar returns the universe variable of a type parameter. The variable
// is registered before its bound is converted so self-referencing bounds
// terminate.
func (a *Analyzer) typeVar(tp *types.TypeParam) *universe.TypeVar {
	if v, ok := a.tparams[tp]; ok {
		return v
	}

	v := universe.NewTypeVar(tp.Obj().Name(), nil)
	a.tparams[tp] = v
	v.Bound = a.bound(tp.Constraint())

	return v
}

// bound converts a constraint to an upper bound; nil means any value.
func (a *Analyzer) bound(constraint types.Type) universe.Type {
	iface, ok := constraint.Underlying().(*types.Interface)
	if !ok {
		return nil
	}

	if iface.IsMethodSet() {
		if iface.NumMethods() == 0 {
			return nil
		}

		if _, named := types.Unalias(constraint).(*types.Named); named {
			return a.convert(constraint)
		}

		return nil
	}

	// type set: use the terms when they all read the same
	var terms []universe.Type

	for i := range iface.NumEmbeddeds() {
		switch e := iface.EmbeddedType(i).(type) {
		case *types.Union:
			for j := range e.Len() {
				terms = append(terms, a.convert(e.Term(j).Type()))
			}
		default:
			terms = append(terms, a.convert(e))
		}
	}

	if len(terms) == 0 {
		return nil
	}

	for _, t := range terms[1:] {
		if !sameClass(terms[0], t) {
			return nil
		}
	}

	return terms[0]
}

// sameClass reports whether two bound terms simplify alike.
func sameClass(a, b universe.Type) bool {
	pa, ok1 := a.(*universe.Primitive)
	pb, ok2 := b.(*universe.Primitive)

	if !ok1 || !ok2 {
		return universe.SameType(a, b)
	}

	switch {
	case pa.Kind.IsInteger():
		return pb.Kind.IsInteger()
	case pa.Kind.IsFloat():
		return pb.Kind.IsFloat()
	case pa.Kind.IsText():
		return pb.Kind.IsText()
	default:
		return pa.Kind == pb.Kind
	}
}

// supertypes derives the container families and embedded types a named
// type inherits from its underlying type.
func (a *Analyzer) supertypes(u types.Type) []universe.Type {
	switch ut := u.(type) {
	case *types.Slice:
		return []universe.Type{universe.Ref(a.builtins.Collection, a.convert(ut.Elem()))}
	case *types.Array:
		return []universe.Type{universe.Ref(a.builtins.Collection, a.convert(ut.Elem()))}
	case *types.Map:
		return []universe.Type{a.convertMap(ut)}
	case *types.Struct:
		var out []universe.Type

		for i := range ut.NumFields() {
			if f := ut.Field(i); f.Embedded() {
				if d, ok := a.convert(f.Type()).(*universe.Declared); ok {
					out = append(out, d)
				}
			}
		}

		return out
	case *types.Interface:
		var out []universe.Type

		for i := range ut.NumEmbeddeds() {
			if d, ok := a.convert(ut.EmbeddedType(i)).(*universe.Declared); ok {
				out = append(out, d)
			}
		}

		return out
	default:
		return nil
	}
}

// structFields returns the exported fields of st in order, with the fields
// of embedded structs promoted in place. Shallower fields shadow deeper ones.
func (a *Analyzer) structFields(st *types.Struct, where string, visiting map[*types.Struct]bool) []*universe.Field {
	if visiting[st] {
		return nil
	}

	visiting[st] = true
	defer delete(visiting, st)

	direct := make(map[string]bool)

	for i := range st.NumFields() {
		if f := st.Field(i); !f.Embedded() {
			direct[f.Name()] = true
		}
	}

	var out []*universe.Field

	seen := make(map[string]bool)

	for i := range st.NumFields() {
		v := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))

		tags, skip, err := fieldTags(fieldDoc(a.docs[v.Pos()]), tag)
		if err != nil {
			a.warn(diagnostic.CodeInvalidDirective, err.Error(), where+"."+v.Name())
			continue
		}

		if skip {
			continue
		}

		if v.Embedded() {
			inner, ok := embeddedStruct(v.Type())
			if !ok {
				continue
			}

			for _, f := range a.structFields(inner, where, visiting) {
				if direct[f.Name] || seen[f.Name] {
					continue
				}

				seen[f.Name] = true
				out = append(out, f)
			}

			continue
		}

		if !v.Exported() || seen[v.Name()] {
			continue
		}

		seen[v.Name()] = true
		out = append(out, &universe.Field{Name: v.Name(), Type: a.convert(v.Type()), Tags: tags})
	}

	return out
}

func embeddedStruct(t types.Type) (*types.Struct, bool) {
	if p, ok := types.Unalias(t).(*types.Pointer); ok {
		t = p.Elem()
	}

	st, ok := t.Underlying().(*types.Struct)

	return st, ok
}

// fieldDoc returns the doc comment of a field, or its line comment.
func fieldDoc(f *ast.Field) *ast.CommentGroup {
	if f == nil {
		return nil
	}

	if f.Doc != nil {
		return f.Doc
	}

	return f.Comment
}
