package key

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// NamespacePattern matches the optional namespace prefix, separator included.
	NamespacePattern = `([a-z\d_\-.]+:)?`
	// ValuePattern matches the key value.
	ValuePattern = `[a-z\d_\-./]+`
	// DefaultPattern is the pattern every key must match in full.
	DefaultPattern = NamespacePattern + ValuePattern
	// Separator separates the namespace from the value.
	Separator = ":"
)

var defaultFormat = &Format{pattern: DefaultPattern, re: regexp.MustCompile(`^(?:` + DefaultPattern + `)$`)}

// Format is a compiled key-format pattern. The pattern must match the
// whole key.
type Format struct {
	pattern string
	re      *regexp.Regexp
}

// Compile compiles a key-format pattern. An empty pattern selects the default.
func Compile(pattern string) (*Format, error) {
	if pattern == "" {
		return defaultFormat, nil
	}

	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compile key pattern %q: %w", pattern, err)
	}

	return &Format{pattern: pattern, re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Format {
	f, err := Compile(pattern)
	if err != nil {
		panic(err)
	}

	return f
}

// Default returns the default key format.
func Default() *Format {
	return defaultFormat
}

// Valid reports whether key matches the format in full.
func (f *Format) Valid(key string) bool {
	return f.re.MatchString(key)
}

// String returns the uncompiled pattern.
func (f *Format) String() string {
	return f.pattern
}

// Split splits key into its namespace and value. The namespace is empty
// when the key has none.
func Split(key string) (namespace, value string) {
	if ns, v, ok := strings.Cut(key, Separator); ok {
		return ns, v
	}

	return "", key
}
