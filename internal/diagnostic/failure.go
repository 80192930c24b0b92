package diagnostic

import (
	"fmt"
)

// Failure is a per-model failure. It excludes one model from the output
// without aborting the run.
type Failure struct {
	Code      string
	Message   string
	FieldPath string
}

// Fail returns a Failure with a formatted message.
func Fail(code, format string, args ...any) *Failure {
	return &Failure{Code: code, Message: fmt.Sprintf(format, args...)}
}

// At returns a copy of f attached to the given member or field.
func (f *Failure) At(fieldPath string) *Failure {
	c := *f
	c.FieldPath = fieldPath

	return &c
}

// Error implements error.
func (f *Failure) Error() string {
	if f.FieldPath != "" {
		return fmt.Sprintf("[%s] %s: %s", f.Code, f.FieldPath, f.Message)
	}

	return fmt.Sprintf("[%s] %s", f.Code, f.Message)
}

// Is matches any *Failure with the same code.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Code == f.Code
}
