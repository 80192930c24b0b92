package typename

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"element-autodoc/internal/diagnostic"
	"element-autodoc/internal/universe"
	"element-autodoc/internal/vocab"
)

type fixture struct {
	g     *universe.Graph
	b     universe.Builtins
	decls map[string]*universe.Declaration
	diags *diagnostic.Diagnostics
	r     *Resolver
}

// newFixture builds a Java-flavoured universe on top of the builtins.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	g := universe.NewGraph()
	b, err := universe.InstallBuiltins(g)
	require.NoError(t, err)

	f := &fixture{g: g, b: b, decls: map[string]*universe.Declaration{}, diags: &diagnostic.Diagnostics{}}

	lang := g.Scope("java.lang", "lang")
	util := g.Scope("java.util", "util")
	app := g.Scope("com.example", "example")

	declare := func(s *universe.Scope, name string, kind universe.DeclKind) *universe.Declaration {
		d, err := g.Declare(s, name, kind)
		require.NoError(t, err)
		f.decls[name] = d

		return d
	}

	declare(lang, "String", universe.DeclClass)
	declare(lang, "Integer", universe.DeclClass)
	declare(lang, "Boolean", universe.DeclClass)
	declare(lang, "Number", universe.DeclClass)

	list := declare(util, "List", universe.DeclInterface)
	le := universe.NewTypeVar("E", nil)
	list.TypeParams = []*universe.TypeVar{le}
	list.Supertypes = []universe.Type{universe.Ref(b.Collection, le)}

	hashSet := declare(util, "HashSet", universe.DeclClass)
	he := universe.NewTypeVar("E", nil)
	hashSet.TypeParams = []*universe.TypeVar{he}
	hashSet.Supertypes = []universe.Type{universe.Ref(b.Set, he)}

	hashMap := declare(util, "HashMap", universe.DeclClass)
	hk, hv := universe.NewTypeVar("K", nil), universe.NewTypeVar("V", nil)
	hashMap.TypeParams = []*universe.TypeVar{hk, hv}
	hashMap.Supertypes = []universe.Type{universe.Ref(b.Map, hk, hv)}

	tags := declare(app, "Tags", universe.DeclClass)
	tags.Supertypes = []universe.Type{universe.Ref(hashSet, universe.Ref(f.decls["String"]))}

	rawSet := declare(app, "RawSet", universe.DeclClass)
	rawSet.Supertypes = []universe.Type{universe.Ref(b.Set)}

	rawMap := declare(app, "RawMap", universe.DeclClass)
	rawMap.Supertypes = []universe.Type{universe.Ref(hashMap)}

	linked := declare(app, "LinkedElement", universe.DeclClass)
	linked.Tags = universe.Tags{{Name: ModelTag, Value: "foo/bar"}}
	linked.Supertypes = []universe.Type{universe.Ref(list, universe.Ref(f.decls["Integer"]))}

	declare(app, "PlainThing", universe.DeclRecord)

	v, err := vocab.New(g, vocab.Names{
		Object:     universe.BuiltinObject,
		Collection: universe.BuiltinCollection,
		Set:        universe.BuiltinSet,
		Map:        universe.BuiltinMap,
		Number:     "java.lang.Number",
		String:     "java.lang.String",
		Boxed: map[string]universe.PrimitiveKind{
			"java.lang.Integer": universe.KindInt32,
			"java.lang.Boolean": universe.KindBool,
		},
	})
	require.NoError(t, err)

	f.r = New(v, f.diags)

	return f
}

func (f *fixture) ref(name string, args ...universe.Type) *universe.Declared {
	return universe.Ref(f.decls[name], args...)
}

func TestSimplify(t *testing.T) {
	f := newFixture(t)

	str := f.ref("String")
	integer := f.ref("Integer")

	tests := []struct {
		name string
		typ  universe.Type
		want string
	}{
		{"boolean", universe.Prim(universe.KindBool), "boolean"},
		{"byte", universe.Prim(universe.KindInt8), "whole number"},
		{"long", universe.Prim(universe.KindInt64), "whole number"},
		{"int", universe.Prim(universe.KindInt), "whole number"},
		{"float", universe.Prim(universe.KindFloat32), "decimal number"},
		{"char", universe.Prim(universe.KindChar), "string"},
		{"complex", universe.Prim(universe.KindComplex), "number"},
		{"array", universe.ArrayOf(universe.Prim(universe.KindInt32)), "list of whole number"},
		{"nested array", universe.ArrayOf(universe.ArrayOf(str)), "list of list of string"},
		{"boxed integer", integer, "whole number"},
		{"boxed boolean", f.ref("Boolean"), "boolean"},
		{"declared string", str, "string"},
		{"list of string", f.ref("List", str), "list of string"},
		{"map string integer", universe.Ref(f.b.Map, str, integer), "map of string -> whole number"},
		{"hash set", f.ref("HashSet", str), "set of string"},
		{"raw set", universe.Ref(f.b.Set), "set of any"},
		{"raw collection", universe.Ref(f.b.Collection), "list of any"},
		{"raw map", universe.Ref(f.b.Map), "map of any -> any"},
		{"raw hash map", f.ref("HashMap"), "map of any -> any"},
		{"subtype with bound args", f.ref("Tags"), "set of string"},
		{"subtype of raw set", f.ref("RawSet"), "set of any"},
		{"subtype of raw map", f.ref("RawMap"), "map of any -> any"},
		{"hash map", f.ref("HashMap", str, f.ref("List", integer)), "map of string -> list of whole number"},
		{"number", f.ref("Number"), "number"},
		{"object", universe.Ref(f.b.Object), "any"},
		{"model link beats structure", f.ref("LinkedElement"), "foo/bar"},
		{"list of models", f.ref("List", f.ref("LinkedElement")), "list of foo/bar"},
		{"fallback", f.ref("PlainThing"), "plainthing"},
		{"unbounded wildcard", universe.WildcardOf(nil), "any"},
		{"bounded wildcard", f.ref("List", universe.WildcardOf(str)), "list of string"},
		{"unbounded type var", universe.NewTypeVar("T", nil), "any"},
		{"bounded type var", universe.NewTypeVar("T", integer), "whole number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.r.Simplify(tt.typ))
		})
	}

	assert.Empty(t, f.diags.All())
}

func TestSimplify_RecursiveBound(t *testing.T) {
	f := newFixture(t)

	// T extends Collection<T>
	tv := universe.NewTypeVar("T", nil)
	tv.Bound = universe.Ref(f.b.Collection, tv)

	assert.Equal(t, "list of any", f.r.Simplify(tv))
}

func TestSimplify_RecursiveStructure(t *testing.T) {
	f := newFixture(t)
	app := f.g.Scope("com.example", "example")
	str := f.ref("String")

	declare := func(name string) *universe.Declaration {
		d, err := f.g.Declare(app, name, universe.DeclClass)
		require.NoError(t, err)
		f.decls[name] = d

		return d
	}

	// class Node implements List<Node>
	node := declare("Node")
	node.Supertypes = []universe.Type{f.ref("List", universe.Ref(node))}

	// class Tree<T> implements List<Tree<T>>
	tree := declare("Tree")
	tp := universe.NewTypeVar("T", nil)
	tree.TypeParams = []*universe.TypeVar{tp}
	tree.Supertypes = []universe.Type{f.ref("List", universe.Ref(tree, tp))}

	// class Settings extends HashMap<String, Settings>
	settings := declare("Settings")
	settings.Supertypes = []universe.Type{f.ref("HashMap", str, universe.Ref(settings))}

	// class Grow<T> implements List<Grow<Grow<T>>>
	grow := declare("Grow")
	gt := universe.NewTypeVar("T", nil)
	grow.TypeParams = []*universe.TypeVar{gt}
	grow.Supertypes = []universe.Type{f.ref("List", universe.Ref(grow, universe.Ref(grow, gt)))}

	tests := []struct {
		name string
		typ  universe.Type
		want string
	}{
		{"self element", universe.Ref(node), "list of node"},
		{"generic self element", universe.Ref(tree, str), "list of tree"},
		{"self value", universe.Ref(settings), "map of string -> settings"},
		{"list of self element", f.ref("List", universe.Ref(node)), "list of list of node"},
		{"nested same family", f.ref("List", f.ref("List", str)), "list of list of string"},
		{"nested maps", universe.Ref(f.b.Map, str, universe.Ref(f.b.Map, str, str)), "map of string -> map of string -> string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.r.Simplify(tt.typ))
		})
	}

	t.Run("expanding generic", func(t *testing.T) {
		got := f.r.Simplify(universe.Ref(grow, str))
		assert.Equal(t, maxOpen, strings.Count(got, "list of "))
		assert.True(t, strings.HasSuffix(got, "list of grow"), got)
	})

	assert.Empty(t, f.diags.All())
}

func TestSimplify_Unrecognized(t *testing.T) {
	f := newFixture(t)

	got := f.r.SimplifyAt(&universe.Unknown{Description: "chan int"}, "com.example.Counter", "Events")
	assert.Empty(t, got)

	got = f.r.Simplify(universe.ArrayOf(&universe.Unknown{Description: "func()"}))
	assert.Equal(t, "list of ", got)

	all := f.diags.All()
	require.Len(t, all, 2)
	assert.Equal(t, diagnostic.CodeUnrecognizedType, all[1].Code)
	assert.Equal(t, "com.example.Counter", all[1].Model)
	assert.Equal(t, "Events", all[1].FieldPath)
	assert.Contains(t, all[1].Message, "chan int")
}

func TestSimplify_NilDiagnostics(t *testing.T) {
	f := newFixture(t)
	r := New(f.r.vocab, nil)

	assert.Empty(t, r.Simplify(nil))
}
