// Package formatter renders decode and parse outcomes for terminal output.
package formatter

import (
	"github.com/mod-analysis/pkg/model"
	"github.com/mod-analysis/pkg/utils"
)

// Report carries the outcome of one run for rendering.
type Report struct {
	Kind      model.RunKind
	InputFile string

	// Format is the detected blob format tag, decode runs only.
	Format string
	State  *model.CharState

	// Records holds parsed combinations, parse runs only.
	Records []model.CombinationRecord
}

// ReportFormatter is the interface for formatting run outcomes.
type ReportFormatter interface {
	// Format outputs the report to the logger.
	Format(report *Report, log utils.Logger)

	// FormatSummary returns a summary map for serialization.
	FormatSummary(report *Report) map[string]interface{}

	// SupportedKinds returns the run kinds this formatter supports.
	SupportedKinds() []model.RunKind
}

// Registry manages formatter instances.
type Registry struct {
	formatters map[model.RunKind]ReportFormatter
	fallback   ReportFormatter
}

// NewRegistry creates a new formatter registry with default formatters.
func NewRegistry() *Registry {
	r := &Registry{
		formatters: make(map[model.RunKind]ReportFormatter),
		fallback:   &DefaultFormatter{},
	}

	r.Register(&CharStateFormatter{})
	r.Register(&CombinationFormatter{})

	return r
}

// Register registers a formatter.
func (r *Registry) Register(f ReportFormatter) {
	for _, k := range f.SupportedKinds() {
		r.formatters[k] = f
	}
}

// Get returns the formatter for a run kind.
func (r *Registry) Get(kind model.RunKind) ReportFormatter {
	if f, ok := r.formatters[kind]; ok {
		return f
	}
	return r.fallback
}

// Format formats the report using the appropriate formatter.
func (r *Registry) Format(report *Report, log utils.Logger) {
	if report == nil {
		return
	}
	r.Get(report.Kind).Format(report, log)
}

// FormatSummary returns a summary map using the appropriate formatter.
func (r *Registry) FormatSummary(report *Report) map[string]interface{} {
	if report == nil {
		return nil
	}
	return r.Get(report.Kind).FormatSummary(report)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
