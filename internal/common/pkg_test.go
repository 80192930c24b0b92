package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"models", "models"},
		{"element-autodoc/examples/basic", "basic"},
		{"java.util", "util"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScopeName(tt.input))
		})
	}
}

func TestSplitQualified(t *testing.T) {
	scope, name := SplitQualified("java.util.List")
	assert.Equal(t, "java.util", scope)
	assert.Equal(t, "List", name)

	scope, name = SplitQualified("List")
	assert.Empty(t, scope)
	assert.Equal(t, "List", name)
}
