package manifest

import (
	"fmt"
	"strings"

	"element-autodoc/internal/common"
	"element-autodoc/internal/diagnostic"
	"element-autodoc/internal/universe"
	"element-autodoc/internal/vocab"
)

// Build creates the universe described by f and the vocabulary names it
// uses. Any inconsistency is a type universe failure.
func Build(f *File) (*universe.Graph, vocab.Names, error) {
	applyDefaults(f)

	b := &builder{
		g:     universe.NewGraph(),
		short: make(map[string][]*universe.Declaration),
	}

	names, err := b.vocabulary(f.Vocabulary)
	if err != nil {
		return nil, vocab.Names{}, fmt.Errorf("%w: %w", diagnostic.ErrTypeUniverseFailure, err)
	}

	if err := b.build(f); err != nil {
		return nil, vocab.Names{}, fmt.Errorf("%w: %w", diagnostic.ErrTypeUniverseFailure, err)
	}

	return b.g, names, nil
}

// builder declares everything first and resolves type expressions in a
// second pass, so declarations may refer to ones listed after them.
type builder struct {
	g     *universe.Graph
	short map[string][]*universe.Declaration
	specs []*declSpec
}

type declSpec struct {
	spec   *Declaration
	decl   *universe.Declaration
	bounds []*Expr // per type parameter, nil when unbounded
}

func (b *builder) vocabulary(v *Vocabulary) (vocab.Names, error) {
	if v == nil {
		if _, err := universe.InstallBuiltins(b.g); err != nil {
			return vocab.Names{}, err
		}

		for _, d := range b.g.Declarations() {
			b.index(d)
		}

		return vocab.DefaultNames(), nil
	}

	names := vocab.Names{
		Object:     v.Object,
		Collection: v.Collection,
		Set:        v.Set,
		Map:        v.Map,
		Number:     v.Number,
		String:     v.String,
	}

	if len(v.Boxed) > 0 {
		names.Boxed = make(map[string]universe.PrimitiveKind, len(v.Boxed))

		for wrapper, keyword := range v.Boxed {
			kind, ok := universe.ParsePrimitiveKind(keyword)
			if !ok {
				return vocab.Names{}, fmt.Errorf("boxed %s: unknown primitive %q", wrapper, keyword)
			}

			names.Boxed[wrapper] = kind
		}
	}

	return names, nil
}

func (b *builder) build(f *File) error {
	for _, s := range f.Scopes {
		scope := b.g.Scope(s.Path, s.Name)
		scope.Tags = append(scope.Tags, s.Tags.Tags()...)
	}

	for i := range f.Declarations {
		if err := b.declare(&f.Declarations[i], nil); err != nil {
			return err
		}
	}

	for _, ds := range b.specs {
		if err := b.fill(ds); err != nil {
			return fmt.Errorf("%s: %w", ds.decl, err)
		}
	}

	return nil
}

func (b *builder) declare(spec *Declaration, parent *universe.Declaration) error {
	kind, ok := universe.ParseDeclKind(spec.Kind)
	if !ok {
		return fmt.Errorf("%s: unknown kind %q", spec.Name, spec.Kind)
	}

	var (
		decl *universe.Declaration
		err  error
	)

	if parent != nil {
		decl, err = b.g.DeclareNested(parent, spec.Name, kind)
	} else {
		path, name := spec.Scope, strings.TrimPrefix(spec.Name, spec.Scope+".")
		if path == "" {
			path, name = common.SplitQualified(spec.Name)
		}

		decl, err = b.g.Declare(b.g.Scope(path, common.ScopeName(path)), name, kind)
	}

	if err != nil {
		return err
	}

	decl.Tags = spec.Tags.Tags()

	ds := &declSpec{spec: spec, decl: decl}

	for _, p := range spec.Params {
		name, bound, err := ParseTypeParam(p)
		if err != nil {
			return fmt.Errorf("%s: %w", decl, err)
		}

		decl.TypeParams = append(decl.TypeParams, universe.NewTypeVar(name, nil))
		ds.bounds = append(ds.bounds, bound)
	}

	b.index(decl)
	b.specs = append(b.specs, ds)

	for i := range spec.Nested {
		if err := b.declare(&spec.Nested[i], decl); err != nil {
			return err
		}
	}

	return nil
}

func (b *builder) index(d *universe.Declaration) {
	short := d.ID.Short()
	b.short[short] = append(b.short[short], d)
}

// fill resolves the bounds, supertypes, fields and members of a declaration.
func (b *builder) fill(ds *declSpec) error {
	env := b.env(ds.decl, nil)

	for i, bound := range ds.bounds {
		if bound == nil {
			continue
		}

		t, err := b.resolve(bound, ds.decl, env)
		if err != nil {
			return fmt.Errorf("bound of %s: %w", ds.decl.TypeParams[i].Name, err)
		}

		ds.decl.TypeParams[i].Bound = t
	}

	for _, s := range ds.spec.Supertypes {
		t, err := b.parse(s, ds.decl, env)
		if err != nil {
			return fmt.Errorf("supertype: %w", err)
		}

		ds.decl.Supertypes = append(ds.decl.Supertypes, t)
	}

	for _, f := range ds.spec.Fields {
		t, err := b.parse(f.Type, ds.decl, env)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}

		ds.decl.Fields = append(ds.decl.Fields, &universe.Field{Name: f.Name, Type: t, Tags: f.Tags.Tags()})
	}

	for i := range ds.spec.Members {
		m, err := b.member(&ds.spec.Members[i], ds.decl, env)
		if err != nil {
			return fmt.Errorf("member %s: %w", ds.spec.Members[i].Name, err)
		}

		ds.decl.Members = append(ds.decl.Members, m)
	}

	return nil
}

func (b *builder) member(spec *Member, decl *universe.Declaration, outer map[string]*universe.TypeVar) (*universe.Member, error) {
	m := &universe.Member{
		Name:   spec.Name,
		Static: spec.Static,
		Tags:   spec.Tags.Tags(),
	}

	switch spec.Kind {
	case "constructor":
		m.Kind = universe.MemberConstructor
	case "method":
		m.Kind = universe.MemberMethod
	default:
		return nil, fmt.Errorf("unknown member kind %q", spec.Kind)
	}

	env := outer

	if len(spec.TypeParams) > 0 {
		env = make(map[string]*universe.TypeVar, len(outer)+len(spec.TypeParams))
		for k, v := range outer {
			env[k] = v
		}

		var (
			vars   []*universe.TypeVar
			bounds []*Expr
		)

		for _, p := range spec.TypeParams {
			name, bound, err := ParseTypeParam(p)
			if err != nil {
				return nil, err
			}

			v := universe.NewTypeVar(name, nil)
			env[name] = v
			vars = append(vars, v)
			bounds = append(bounds, bound)
		}

		for i, bound := range bounds {
			if bound == nil {
				continue
			}

			t, err := b.resolve(bound, decl, env)
			if err != nil {
				return nil, err
			}

			vars[i].Bound = t
		}
	}

	for _, p := range spec.Params {
		t, err := b.parse(p.Type, decl, env)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}

		m.Params = append(m.Params, &universe.Param{Name: p.Name, Type: t, Tags: p.Tags.Tags()})
	}

	if spec.Returns != "" {
		t, err := b.parse(spec.Returns, decl, env)
		if err != nil {
			return nil, fmt.Errorf("result: %w", err)
		}

		m.Result = t
	}

	return m, nil
}

// env returns the type variables visible inside d: its own and those of
// its enclosing declarations, inner ones shadowing outer ones.
func (b *builder) env(d *universe.Declaration, into map[string]*universe.TypeVar) map[string]*universe.TypeVar {
	if into == nil {
		into = make(map[string]*universe.TypeVar)
	}

	if d.Enclosing != nil {
		b.env(d.Enclosing, into)
	}

	for _, v := range d.TypeParams {
		into[v.Name] = v
	}

	return into
}

func (b *builder) parse(s string, ctx *universe.Declaration, env map[string]*universe.TypeVar) (universe.Type, error) {
	e, err := ParseExpr(s)
	if err != nil {
		return nil, err
	}

	return b.resolve(e, ctx, env)
}

func (b *builder) resolve(e *Expr, ctx *universe.Declaration, env map[string]*universe.TypeVar) (universe.Type, error) {
	if e.Wildcard {
		if e.Bound == nil {
			return universe.WildcardOf(nil), nil
		}

		bound, err := b.resolve(e.Bound, ctx, env)
		if err != nil {
			return nil, err
		}

		return universe.WildcardOf(bound), nil
	}

	t, err := b.base(e, ctx, env)
	if err != nil {
		return nil, err
	}

	for range e.Dims {
		t = universe.ArrayOf(t)
	}

	return t, nil
}

func (b *builder) base(e *Expr, ctx *universe.Declaration, env map[string]*universe.TypeVar) (universe.Type, error) {
	if len(e.Args) == 0 {
		if v, ok := env[e.Name]; ok {
			return v, nil
		}

		if kind, ok := universe.ParsePrimitiveKind(e.Name); ok {
			return universe.Prim(kind), nil
		}
	}

	decl, err := b.lookup(e.Name, ctx)
	if err != nil {
		return nil, err
	}

	args := make([]universe.Type, len(e.Args))

	for i, a := range e.Args {
		if args[i], err = b.resolve(a, ctx, env); err != nil {
			return nil, err
		}
	}

	return universe.Ref(decl, args...), nil
}

// lookup finds a declaration by qualified name, then relative to the
// enclosing declarations and scope of ctx, then by unique short name.
func (b *builder) lookup(name string, ctx *universe.Declaration) (*universe.Declaration, error) {
	if d := b.g.Lookup(name); d != nil {
		return d, nil
	}

	for outer := ctx; outer != nil; outer = outer.Enclosing {
		if d := b.g.Lookup(outer.String() + "." + name); d != nil {
			return d, nil
		}
	}

	if ctx != nil && ctx.ID.Scope != "" {
		if d := b.g.Lookup(ctx.ID.Scope + "." + name); d != nil {
			return d, nil
		}
	}

	switch found := b.short[name]; len(found) {
	case 0:
		return nil, fmt.Errorf("unknown type %q", name)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("ambiguous type %q (%s, %s, ...)", name, found[0], found[1])
	}
}
