package universe

// Erasure returns the raw form of t. Non-declared types are returned as is.
func Erasure(t Type) Type {
	if d, ok := t.(*Declared); ok {
		return &Declared{Decl: d.Decl}
	}

	return t
}

// SameType reports whether a and b denote the same type.
// TypeVars are compared by identity; declarations by pointer.
func SameType(a, b Type) bool {
	switch at := a.(type) {
	case *Primitive:
		bt, ok := b.(*Primitive)
		return ok && at.Kind == bt.Kind
	case *Array:
		bt, ok := b.(*Array)
		return ok && SameType(at.Elem, bt.Elem)
	case *Declared:
		bt, ok := b.(*Declared)
		if !ok || at.Decl != bt.Decl || len(at.Args) != len(bt.Args) {
			return false
		}

		for i := range at.Args {
			if !SameType(at.Args[i], bt.Args[i]) {
				return false
			}
		}

		return true
	case *TypeVar:
		bt, ok := b.(*TypeVar)
		return ok && at == bt
	case *Wildcard:
		bt, ok := b.(*Wildcard)
		if !ok {
			return false
		}

		if at.Extends == nil || bt.Extends == nil {
			return at.Extends == nil && bt.Extends == nil
		}

		return SameType(at.Extends, bt.Extends)
	default:
		return false
	}
}

// Subst replaces every occurrence of params[i] in t by args[i].
func Subst(t Type, params []*TypeVar, args []Type) Type {
	if len(params) == 0 || len(params) != len(args) {
		return t
	}

	switch tt := t.(type) {
	case *TypeVar:
		for i, p := range params {
			if p == tt {
				return args[i]
			}
		}

		return tt
	case *Array:
		return &Array{Elem: Subst(tt.Elem, params, args)}
	case *Declared:
		if len(tt.Args) == 0 {
			return tt
		}

		out := make([]Type, len(tt.Args))
		for i, a := range tt.Args {
			out[i] = Subst(a, params, args)
		}

		return &Declared{Decl: tt.Decl, Args: out}
	case *Wildcard:
		if tt.Extends == nil {
			return tt
		}

		return &Wildcard{Extends: Subst(tt.Extends, params, args)}
	default:
		return t
	}
}

// DirectSupertypes returns the direct supertypes of t with t's type
// arguments substituted. Supertypes of a raw reference are erased.
func DirectSupertypes(t *Declared) []Type {
	decl := t.Decl
	if decl == nil || len(decl.Supertypes) == 0 {
		return nil
	}

	raw := len(decl.TypeParams) > 0 && len(t.Args) != len(decl.TypeParams)

	out := make([]Type, 0, len(decl.Supertypes))
	for _, s := range decl.Supertypes {
		if raw {
			out = append(out, Erasure(s))
			continue
		}

		out = append(out, Subst(s, decl.TypeParams, t.Args))
	}

	return out
}

// FindSupertype searches the strict supertype closure of t, breadth first,
// for a reference whose erasure is target. The returned reference carries
// the type arguments of that edge.
func FindSupertype(t *Declared, target *Declaration) (*Declared, bool) {
	visited := map[*Declaration]bool{t.Decl: true}
	queue := []*Declared{t}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, s := range DirectSupertypes(cur) {
			sd, ok := s.(*Declared)
			if !ok || sd.Decl == nil {
				continue
			}

			if sd.Decl == target {
				return sd, true
			}

			if visited[sd.Decl] {
				continue
			}

			visited[sd.Decl] = true
			queue = append(queue, sd)
		}
	}

	return nil, false
}

// IsAssignable reports whether t is target or a subtype of it.
func IsAssignable(t Type, target *Declaration) bool {
	d, ok := t.(*Declared)
	if !ok || d.Decl == nil {
		return false
	}

	if d.Decl == target {
		return true
	}

	_, found := FindSupertype(d, target)

	return found
}
