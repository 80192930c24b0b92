package params

import (
	"fmt"

	"element-autodoc/internal/diagnostic"
	"element-autodoc/internal/document"
	"element-autodoc/internal/factory"
	"element-autodoc/internal/match"
	"element-autodoc/internal/typename"
	"element-autodoc/internal/universe"
)

// Tag names read by the extractor.
const (
	TagParameter   = "parameter"
	TagType        = "type"
	TagName        = "name"
	TagDescription = "description"
	TagChildPath   = "childpath"
)

// maxSuggestions bounds the keys offered for an unknown child path.
const maxSuggestions = 3

// Extractor builds parameter lists.
type Extractor struct {
	names *typename.Resolver
	diags *diagnostic.Diagnostics
}

// NewExtractor creates a new Extractor. diags may be nil.
func NewExtractor(names *typename.Resolver, diags *diagnostic.Diagnostics) *Extractor {
	return &Extractor{names: names, diags: diags}
}

// Extract returns the parameters of model, whose factory is desc.
// The result is never nil.
func (e *Extractor) Extract(model *universe.Declaration, desc *factory.Descriptor) []document.Parameter {
	carrier := desc.DataCarrier()
	if carrier == nil {
		return []document.Parameter{}
	}

	if overrides := model.Tags.All(TagParameter); len(overrides) > 0 {
		return fromTags(overrides)
	}

	if overrides := carrier.Tags.All(TagParameter); len(overrides) > 0 {
		return fromTags(overrides)
	}

	if !carrier.IsRecord() {
		e.warn(diagnostic.CodeUnresolvableParameterSet,
			fmt.Sprintf("data type %s is a %s, not a record", carrier, carrier.Kind), model, "")

		return []document.Parameter{}
	}

	out := make([]document.Parameter, 0, len(carrier.Fields))

	for _, f := range carrier.Fields {
		out = append(out, document.Parameter{
			Type:     e.fieldType(model, desc, f),
			Name:     fieldName(f),
			Behavior: e.behavior(model, f),
		})
	}

	return out
}

func fromTags(tags []universe.Tag) []document.Parameter {
	out := make([]document.Parameter, len(tags))
	for i, t := range tags {
		out[i] = document.Parameter{
			Type:     t.Attr("type"),
			Name:     t.Attr("name"),
			Behavior: t.Attr("behavior"),
		}
	}

	return out
}

func (e *Extractor) fieldType(model *universe.Declaration, desc *factory.Descriptor, f *universe.Field) string {
	if t, ok := f.Tags.Value(TagType); ok {
		return t
	}

	if key, ok := e.link(model, desc, f); ok {
		return key
	}

	return e.names.SimplifyAt(f.Type, model.String(), f.Name)
}

// link traces a child path through the factory's child mappings to the
// key of the model the mapped parameter produces.
func (e *Extractor) link(model *universe.Declaration, desc *factory.Descriptor, f *universe.Field) (string, bool) {
	path, ok := f.Tags.Value(TagChildPath)
	if !ok {
		return "", false
	}

	p, ok := desc.Child(path)
	if !ok {
		keys := desc.ChildKeys()
		e.add(diagnostic.Diagnostic{
			Severity:    diagnostic.DiagnosticWarning,
			Code:        diagnostic.CodeUnknownChildPath,
			Message:     fmt.Sprintf("no child dependency named %q", path),
			Model:       model.String(),
			FieldPath:   f.Name,
			Suggestions: match.Suggest(path, keys, maxSuggestions),
		})

		return "", false
	}

	d, ok := p.Type.(*universe.Declared)
	if !ok || d.Decl == nil {
		return "", false
	}

	return d.Decl.Tags.Value(factory.TagModel)
}

func fieldName(f *universe.Field) string {
	if n, ok := f.Tags.Value(TagName); ok {
		return n
	}

	return f.Name
}

func (e *Extractor) behavior(model *universe.Declaration, f *universe.Field) string {
	if d, ok := f.Tags.Value(TagDescription); ok {
		return d
	}

	e.warn(diagnostic.CodeMissingRequiredAnnotation,
		fmt.Sprintf("field %s has no description", f.Name), model, f.Name)

	return ""
}

func (e *Extractor) warn(code, msg string, model *universe.Declaration, field string) {
	e.add(diagnostic.Diagnostic{
		Severity:  diagnostic.DiagnosticWarning,
		Code:      code,
		Message:   msg,
		Model:     model.String(),
		FieldPath: field,
	})
}

func (e *Extractor) add(d diagnostic.Diagnostic) {
	if e.diags != nil {
		e.diags.Add(d)
	}
}
