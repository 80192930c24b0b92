package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"element-autodoc/internal/common"
	"element-autodoc/internal/universe"
	"element-autodoc/internal/vocab"
)

// Load reads the manifest at path and builds its universe.
func Load(path string) (*universe.Graph, vocab.Names, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, vocab.Names{}, err
	}

	return Build(f)
}

// LoadFile loads and parses a manifest from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	for i := range f.Scopes {
		s := &f.Scopes[i]
		if s.Name == "" {
			s.Name = common.ScopeName(s.Path)
		}
	}

	for i := range f.Declarations {
		declDefaults(&f.Declarations[i])
	}
}

func declDefaults(d *Declaration) {
	if d.Kind == "" {
		d.Kind = universe.DeclClass.String()
	}

	for i := range d.Members {
		if d.Members[i].Kind == "" {
			d.Members[i].Kind = universe.MemberMethod.String()
		}
	}

	for i := range d.Nested {
		declDefaults(&d.Nested[i])
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
