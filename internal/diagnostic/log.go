package diagnostic

import (
	"github.com/charmbracelet/log"
)

// Log replays every diagnostic through logger, most severe first.
func Log(logger *log.Logger, d *Diagnostics) {
	if logger == nil || d == nil {
		return
	}

	for _, diag := range d.All() {
		kv := make([]any, 0, 8)
		if diag.Code != "" {
			kv = append(kv, "code", diag.Code)
		}

		if diag.Model != "" {
			kv = append(kv, "model", diag.Model)
		}

		if diag.FieldPath != "" {
			kv = append(kv, "field", diag.FieldPath)
		}

		if len(diag.Suggestions) > 0 {
			kv = append(kv, "suggestions", diag.Suggestions)
		}

		switch diag.Severity {
		case DiagnosticError:
			logger.Error(diag.Message, kv...)
		case DiagnosticWarning:
			logger.Warn(diag.Message, kv...)
		default:
			logger.Info(diag.Message, kv...)
		}
	}
}
