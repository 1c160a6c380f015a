package service

import (
	"log/slog"

	"github.com/templui/resumebook/internal/model"
)

// Diagnostics collects advisories for the operator. Each one is logged when
// it is raised and kept until the pipeline drains the sink.
type Diagnostics struct {
	log     *slog.Logger
	entries []model.Diagnostic
}

func NewDiagnostics(log *slog.Logger) *Diagnostics {
	if log == nil {
		log = slog.Default()
	}
	return &Diagnostics{log: log}
}

func (d *Diagnostics) Warn(kind, subject, message string) {
	d.entries = append(d.entries, model.Diagnostic{
		Kind:    kind,
		Message: message,
		Subject: subject,
	})
	d.log.Warn(message, "kind", kind, "subject", subject)
}

// Drain returns everything collected so far and empties the sink.
func (d *Diagnostics) Drain() []model.Diagnostic {
	out := d.entries
	d.entries = nil
	return out
}

func (d *Diagnostics) Len() int {
	return len(d.entries)
}
