package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"element-autodoc/internal/diagnostic"
	"element-autodoc/internal/document"
	"element-autodoc/internal/factory"
	"element-autodoc/internal/typename"
	"element-autodoc/internal/universe"
	"element-autodoc/internal/vocab"
)

type fixture struct {
	g     *universe.Graph
	b     universe.Builtins
	scope *universe.Scope
	diags *diagnostic.Diagnostics
	ex    *Extractor
	other *universe.Declaration
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	g := universe.NewGraph()
	b, err := universe.InstallBuiltins(g)
	require.NoError(t, err)

	v, err := vocab.New(g, vocab.DefaultNames())
	require.NoError(t, err)

	diags := &diagnostic.Diagnostics{}
	f := &fixture{
		g:     g,
		b:     b,
		scope: g.Scope("example/linked", "linked"),
		diags: diags,
		ex:    NewExtractor(typename.New(v, diags), diags),
	}

	f.other, err = g.Declare(f.scope, "OtherElement", universe.DeclClass)
	require.NoError(t, err)
	f.other.Tags = universe.Tags{{Name: factory.TagModel, Value: "other_element"}}

	return f
}

func (f *fixture) declare(t *testing.T, name string, kind universe.DeclKind) *universe.Declaration {
	t.Helper()

	d, err := f.g.Declare(f.scope, name, kind)
	require.NoError(t, err)

	return d
}

func describe(text string, extra ...universe.Tag) universe.Tags {
	return append(universe.Tags{{Name: TagDescription, Value: text}}, extra...)
}

func TestExtract_RecordFields(t *testing.T) {
	f := newFixture(t)

	model := f.declare(t, "SimpleElement", universe.DeclClass)
	data := f.declare(t, "SimpleData", universe.DeclRecord)
	data.Fields = []*universe.Field{
		{Name: "name", Type: universe.Prim(universe.KindString), Tags: describe("The name.")},
		{Name: "count", Type: universe.Prim(universe.KindInt32), Tags: describe("How many.")},
	}

	desc := factory.NewDescriptor(factory.ConstructorFactory, nil, data, nil)

	got := f.ex.Extract(model, desc)
	assert.Equal(t, []document.Parameter{
		{Type: "string", Name: "name", Behavior: "The name."},
		{Type: "whole number", Name: "count", Behavior: "How many."},
	}, got)
	assert.Empty(t, f.diags.All())
}

func TestExtract_NoCarrier(t *testing.T) {
	f := newFixture(t)
	model := f.declare(t, "Bare", universe.DeclClass)

	got := f.ex.Extract(model, factory.NewDescriptor(factory.ConstructorFactory, nil, nil, nil))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtract_ModelOverridesWin(t *testing.T) {
	f := newFixture(t)

	model := f.declare(t, "Overridden", universe.DeclClass)
	model.Tags = universe.Tags{
		{Name: TagParameter, Attrs: map[string]string{"type": "number", "name": "first", "behavior": "One."}},
		{Name: "group", Value: "ignored"},
		{Name: TagParameter, Attrs: map[string]string{"type": "string", "name": "second", "behavior": "Two."}},
	}

	data := f.declare(t, "OverriddenData", universe.DeclClass) // not a record: never inspected
	data.Tags = universe.Tags{
		{Name: TagParameter, Attrs: map[string]string{"type": "x", "name": "carrier", "behavior": "unused"}},
	}

	got := f.ex.Extract(model, factory.NewDescriptor(factory.ConstructorFactory, nil, data, nil))
	assert.Equal(t, []document.Parameter{
		{Type: "number", Name: "first", Behavior: "One."},
		{Type: "string", Name: "second", Behavior: "Two."},
	}, got)
	assert.Empty(t, f.diags.All())
}

func TestExtract_CarrierOverrides(t *testing.T) {
	f := newFixture(t)

	model := f.declare(t, "Plain", universe.DeclClass)
	data := f.declare(t, "PlainData", universe.DeclClass)
	data.Tags = universe.Tags{
		{Name: TagParameter, Attrs: map[string]string{"type": "boolean", "name": "flag"}},
	}

	got := f.ex.Extract(model, factory.NewDescriptor(factory.StaticFactory, nil, data, nil))
	assert.Equal(t, []document.Parameter{{Type: "boolean", Name: "flag"}}, got)
}

func TestExtract_NotARecord(t *testing.T) {
	f := newFixture(t)

	model := f.declare(t, "Weird", universe.DeclClass)
	data := f.declare(t, "WeirdData", universe.DeclClass)

	got := f.ex.Extract(model, factory.NewDescriptor(factory.ConstructorFactory, nil, data, nil))
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Equal(t, 1, f.diags.Count(diagnostic.CodeUnresolvableParameterSet))
	assert.False(t, f.diags.HasErrors())
}

func TestExtract_FieldTags(t *testing.T) {
	f := newFixture(t)

	model := f.declare(t, "Tagged", universe.DeclClass)
	data := f.declare(t, "TaggedData", universe.DeclRecord)
	data.Fields = []*universe.Field{
		{
			Name: "Count",
			Type: universe.Prim(universe.KindInt64),
			Tags: describe("Counted.", universe.Tag{Name: TagName, Value: "count"}, universe.Tag{Name: TagType, Value: "positive number"}),
		},
		{Name: "Undocumented", Type: universe.Ref(f.b.Set, universe.Prim(universe.KindString))},
	}

	got := f.ex.Extract(model, factory.NewDescriptor(factory.ConstructorFactory, nil, data, nil))
	assert.Equal(t, []document.Parameter{
		{Type: "positive number", Name: "count", Behavior: "Counted."},
		{Type: "set of string", Name: "Undocumented", Behavior: ""},
	}, got)

	all := f.diags.All()
	require.Len(t, all, 1)
	assert.Equal(t, diagnostic.CodeMissingRequiredAnnotation, all[0].Code)
	assert.Equal(t, "Undocumented", all[0].FieldPath)
}

func TestExtract_ChildPath(t *testing.T) {
	f := newFixture(t)

	plain := f.declare(t, "Plain", universe.DeclRecord)

	model := f.declare(t, "SimpleElement", universe.DeclClass)
	data := f.declare(t, "SimpleData", universe.DeclRecord)
	data.Fields = []*universe.Field{
		{
			Name: "other",
			Type: universe.Prim(universe.KindString),
			Tags: describe("Path to the other element.", universe.Tag{Name: TagChildPath, Value: "other_element"}),
		},
		{
			Name: "misspelled",
			Type: universe.Prim(universe.KindString),
			Tags: describe("Typo.", universe.Tag{Name: TagChildPath, Value: "other_elemnt"}),
		},
		{
			Name: "notModel",
			Type: universe.Prim(universe.KindString),
			Tags: describe("Plain child.", universe.Tag{Name: TagChildPath, Value: "plain"}),
		},
		{
			Name: "overridden",
			Type: universe.Prim(universe.KindString),
			Tags: describe("Type wins.", universe.Tag{Name: TagType, Value: "key"}, universe.Tag{Name: TagChildPath, Value: "other_element"}),
		},
	}

	desc := factory.NewDescriptor(factory.ConstructorFactory, nil, data, []factory.Child{
		{Key: "other_element", Param: &universe.Param{Name: "other", Type: universe.Ref(f.other)}},
		{Key: "plain", Param: &universe.Param{Name: "plain", Type: universe.Ref(plain)}},
	})

	got := f.ex.Extract(model, desc)
	require.Len(t, got, 4)
	assert.Equal(t, "other_element", got[0].Type)
	assert.Equal(t, "string", got[1].Type)
	assert.Equal(t, "string", got[2].Type)
	assert.Equal(t, "key", got[3].Type)

	all := f.diags.All()
	require.Len(t, all, 1)
	assert.Equal(t, diagnostic.CodeUnknownChildPath, all[0].Code)
	assert.Equal(t, "misspelled", all[0].FieldPath)
	assert.Equal(t, []string{"other_element"}, all[0].Suggestions)
}

func TestExtract_ModelTypedField(t *testing.T) {
	f := newFixture(t)

	model := f.declare(t, "Holder", universe.DeclClass)
	data := f.declare(t, "HolderData", universe.DeclRecord)
	data.Fields = []*universe.Field{
		{Name: "others", Type: universe.ArrayOf(universe.Ref(f.other)), Tags: describe("Others.")},
		{Name: "events", Type: &universe.Unknown{Description: "chan int"}, Tags: describe("Events.")},
	}

	got := f.ex.Extract(model, factory.NewDescriptor(factory.ConstructorFactory, nil, data, nil))
	assert.Equal(t, "list of other_element", got[0].Type)
	assert.Empty(t, got[1].Type)

	all := f.diags.All()
	require.Len(t, all, 1)
	assert.Equal(t, diagnostic.CodeUnrecognizedType, all[0].Code)
	assert.Equal(t, "example/linked.Holder", all[0].Model)
	assert.Equal(t, "events", all[0].FieldPath)
}
