package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"element-autodoc/internal/universe"
)

// File represents the root of a manifest.
type File struct {
	// Version of the manifest schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Vocabulary names the declarations playing the well-known roles.
	// When absent the builtin declarations are installed and used.
	Vocabulary *Vocabulary `yaml:"vocabulary,omitempty"`

	// Scopes carries scope-level tags, e.g. a package-wide group.
	Scopes []Scope `yaml:"scopes,omitempty"`

	// Declarations lists the universe in declaration order.
	Declarations []Declaration `yaml:"declarations"`
}

// Vocabulary is the YAML form of vocab.Names.
type Vocabulary struct {
	Object     string            `yaml:"object"`
	Collection string            `yaml:"collection"`
	Set        string            `yaml:"set"`
	Map        string            `yaml:"map"`
	Number     string            `yaml:"number,omitempty"`
	String     string            `yaml:"string,omitempty"`
	Boxed      map[string]string `yaml:"boxed,omitempty"` // wrapper -> primitive keyword
}

// Scope is an enclosing scope (package or namespace).
type Scope struct {
	Path string  `yaml:"path"`
	Name string  `yaml:"name,omitempty"` // defaults to the last path element
	Tags TagList `yaml:"tags,omitempty"`
}

// Declaration describes one class-like type.
type Declaration struct {
	// Name is the qualified name, e.g. "com.example.Counter". Nested
	// declarations use their short name.
	Name string `yaml:"name"`

	// Scope overrides the scope derived from Name.
	Scope string `yaml:"scope,omitempty"`

	// Kind is class, record, interface or external. Default: class.
	Kind string `yaml:"kind,omitempty"`

	Tags TagList `yaml:"tags,omitempty"`

	// Params are type parameters, optionally bounded: "T extends Number".
	Params []string `yaml:"params,omitempty"`

	// Supertypes are type expressions over Params.
	Supertypes []string `yaml:"supertypes,omitempty"`

	Members []Member      `yaml:"members,omitempty"`
	Fields  []Field       `yaml:"fields,omitempty"`
	Nested  []Declaration `yaml:"nested,omitempty"`
}

// Member describes a constructor or method.
type Member struct {
	Name string `yaml:"name"`

	// Kind is constructor or method. Default: method.
	Kind   string `yaml:"kind,omitempty"`
	Static bool   `yaml:"static,omitempty"`

	Tags TagList `yaml:"tags,omitempty"`

	// TypeParams are method-level type parameters.
	TypeParams []string `yaml:"typeParams,omitempty"`

	Params []Param `yaml:"params,omitempty"`

	// Returns is the result type expression; empty means no result.
	Returns string `yaml:"returns,omitempty"`
}

// Param describes a member parameter.
type Param struct {
	Name string  `yaml:"name"`
	Type string  `yaml:"type"`
	Tags TagList `yaml:"tags,omitempty"`
}

// Field describes a record field.
type Field struct {
	Name string  `yaml:"name"`
	Type string  `yaml:"type"`
	Tags TagList `yaml:"tags,omitempty"`
}

// TagList is an ordered list of tags. YAML formats supported:
//   - Sequence: [factory, {model: "a:b"}, {parameter: {name: x}}]
//   - Mapping:  {model: "a:b", description: "..."}
//
// A tag value may be a scalar (the tag value), a sequence (positional
// arguments) or a mapping (attributes).
type TagList universe.Tags

// UnmarshalYAML implements custom YAML unmarshaling for TagList.
func (tl *TagList) UnmarshalYAML(node *yaml.Node) error {
	var tags universe.Tags

	switch node.Kind {
	case yaml.SequenceNode:
		for _, item := range node.Content {
			tag, err := decodeTagItem(item)
			if err != nil {
				return err
			}

			tags = append(tags, tag)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			tag, err := decodeTag(node.Content[i].Value, node.Content[i+1])
			if err != nil {
				return err
			}

			tags = append(tags, tag)
		}
	default:
		return fmt.Errorf("line %d: expected tag list, got %v", node.Line, node.Kind)
	}

	*tl = TagList(tags)

	return nil
}

// MarshalYAML implements custom YAML marshaling for TagList.
// Outputs the sequence form.
func (tl TagList) MarshalYAML() (any, error) {
	out := make([]any, len(tl))

	for i, t := range tl {
		switch {
		case len(t.Attrs) > 0:
			out[i] = map[string]any{t.Name: t.Attrs}
		case len(t.Args) > 0:
			out[i] = map[string]any{t.Name: t.Args}
		case t.Value != "":
			out[i] = map[string]any{t.Name: t.Value}
		default:
			out[i] = t.Name
		}
	}

	return out, nil
}

// Tags returns the list as universe tags.
func (tl TagList) Tags() universe.Tags {
	return universe.Tags(tl)
}

func decodeTagItem(item *yaml.Node) (universe.Tag, error) {
	switch item.Kind {
	case yaml.ScalarNode:
		return universe.Tag{Name: item.Value}, nil
	case yaml.MappingNode:
		if len(item.Content) != 2 {
			return universe.Tag{}, fmt.Errorf("line %d: a tag item must have exactly one key", item.Line)
		}

		return decodeTag(item.Content[0].Value, item.Content[1])
	default:
		return universe.Tag{}, fmt.Errorf("line %d: expected tag name or {name: value}, got %v", item.Line, item.Kind)
	}
}

func decodeTag(name string, value *yaml.Node) (universe.Tag, error) {
	if name == "" {
		return universe.Tag{}, fmt.Errorf("line %d: empty tag name", value.Line)
	}

	tag := universe.Tag{Name: name}

	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag != "!!null" {
			tag.Value = value.Value
		}
	case yaml.SequenceNode:
		if err := value.Decode(&tag.Args); err != nil {
			return universe.Tag{}, fmt.Errorf("tag %s: %w", name, err)
		}

		tag.Value = strings.Join(tag.Args, " ")
	case yaml.MappingNode:
		if err := value.Decode(&tag.Attrs); err != nil {
			return universe.Tag{}, fmt.Errorf("tag %s: %w", name, err)
		}
	default:
		return universe.Tag{}, fmt.Errorf("line %d: unsupported value for tag %s", value.Line, name)
	}

	return tag, nil
}
