package diagnostic

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"element-autodoc/internal/common"
)

// Codes reported by the engine.
const (
	CodeMissingRequiredAnnotation = "missing_required_annotation"
	CodeInvalidKeyFormat          = "invalid_key_format"
	CodeInvalidModelKind          = "invalid_model_kind"
	CodeNoFactoryOperation        = "no_factory_operation"
	CodeMultipleFactoryOperations = "multiple_factory_operations"
	CodeInvalidFactoryShape       = "invalid_factory_shape"
	CodeMultipleDataCarriers      = "multiple_data_carriers"
	CodeAmbiguousChildMapping     = "ambiguous_child_mapping"
	CodeInvalidChildMapping       = "invalid_child_mapping"
	CodeUnknownChildPath          = "unknown_child_path"
	CodeUnresolvableParameterSet  = "unresolvable_parameter_set"
	CodeUnrecognizedType          = "unrecognized_type"
	CodeDuplicateModelKey         = "duplicate_model_key"
	CodeTypeUniverseFailure       = "type_universe_failure"
	CodeInvalidDirective          = "invalid_directive"
)

// ErrTypeUniverseFailure marks errors that abort the whole run.
var ErrTypeUniverseFailure = errors.New("type universe failure")

// Diagnostics holds all diagnostic information from a run.
// It is safe for concurrent use.
type Diagnostics struct {
	mu       sync.Mutex
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Model identifies which model declaration this relates to (if any).
	Model string
	// FieldPath identifies which member, parameter or field this relates to (if any).
	FieldPath string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add appends a fully built diagnostic.
func (d *Diagnostics) Add(diag Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, model, fieldPath string) {
	d.Add(Diagnostic{
		Severity:  DiagnosticError,
		Code:      code,
		Message:   message,
		Model:     model,
		FieldPath: fieldPath,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, model, fieldPath string) {
	d.Add(Diagnostic{
		Severity:  DiagnosticWarning,
		Code:      code,
		Message:   message,
		Model:     model,
		FieldPath: fieldPath,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, model, fieldPath string) {
	d.Add(Diagnostic{
		Severity:  DiagnosticInfo,
		Code:      code,
		Message:   message,
		Model:     model,
		FieldPath: fieldPath,
	})
}

// AddFailure records a per-model failure as an error diagnostic.
func (d *Diagnostics) AddFailure(model string, err error) {
	var f *Failure
	if errors.As(err, &f) {
		d.AddError(f.Code, f.Message, model, f.FieldPath)
		return
	}

	d.AddError("", err.Error(), model, "")
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil || other == d {
		return
	}

	other.mu.Lock()
	errs := append([]Diagnostic(nil), other.Errors...)
	warns := append([]Diagnostic(nil), other.Warnings...)
	infos := append([]Diagnostic(nil), other.Infos...)
	other.mu.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.Errors = append(d.Errors, errs...)
	d.Warnings = append(d.Warnings, warns...)
	d.Infos = append(d.Infos, infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Count returns how many diagnostics carry the given code.
func (d *Diagnostics) Count(code string) int {
	n := 0

	for _, diag := range d.All() {
		if diag.Code == code {
			n++
		}
	}

	return n
}

// All returns a snapshot of every diagnostic, ordered by severity
// (errors first), then model, then field path, then code.
// The order does not depend on the order diagnostics were added in.
func (d *Diagnostics) All() []Diagnostic {
	d.mu.Lock()
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Infos...)
	d.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}

		if a.Model != b.Model {
			return a.Model < b.Model
		}

		if a.FieldPath != b.FieldPath {
			return a.FieldPath < b.FieldPath
		}

		if a.Code != b.Code {
			return a.Code < b.Code
		}

		return a.Message < b.Message
	})

	return out
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	var parts []string

	for _, e := range d.All() {
		if e.Severity == DiagnosticError {
			parts = append(parts, e.String())
		}
	}

	if len(parts) == 0 {
		return nil
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Model != "" {
		prefix = append(prefix, "["+d.Model+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
