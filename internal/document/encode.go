package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ParseFormat parses a format name; an empty name selects JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// FormatForPath picks the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Encode serializes set. Output for equal sets is byte-identical.
func Encode(set *DocumentSet, format Format, indent bool) ([]byte, error) {
	out := *set
	out.Elements = append([]Element(nil), set.Elements...)
	out.Normalize()

	switch format {
	case FormatJSON, "":
		var (
			data []byte
			err  error
		)

		if indent {
			data, err = json.MarshalIndent(&out, "", "  ")
		} else {
			data, err = json.Marshal(&out)
		}

		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}

		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)

		if err := enc.Encode(&out); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}

		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}

		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Decode parses an encoded set.
func Decode(data []byte, format Format) (*DocumentSet, error) {
	var set DocumentSet

	switch format {
	case FormatJSON, "":
		if err := json.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}

	return &set, nil
}

// WriteFile encodes set and writes it to path.
// It creates the parent directory if it doesn't exist.
func WriteFile(set *DocumentSet, path string, format Format, indent bool) error {
	data, err := Encode(set, format, indent)
	if err != nil {
		return err
	}

	// Create output directory if it doesn't exist
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}

	return nil
}
