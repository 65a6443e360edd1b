package formatter

import (
	"github.com/mod-analysis/pkg/model"
	"github.com/mod-analysis/pkg/utils"
)

// DefaultFormatter is a fallback formatter for unknown run kinds.
type DefaultFormatter struct{}

// SupportedKinds returns an empty slice as this is a fallback formatter.
func (f *DefaultFormatter) SupportedKinds() []model.RunKind {
	return nil
}

// Format outputs a generic report to the logger.
func (f *DefaultFormatter) Format(report *Report, log utils.Logger) {
	log.Info("=== Results ===")
	log.Info("Kind:    %s", report.Kind.String())
	log.Info("Input:   %s", report.InputFile)
	if report.Format != "" {
		log.Info("Format:  %s", report.Format)
	}
	if len(report.Records) > 0 {
		log.Info("Records: %d", len(report.Records))
	}
}

// FormatSummary returns a summary map for serialization.
func (f *DefaultFormatter) FormatSummary(report *Report) map[string]interface{} {
	return map[string]interface{}{
		"kind":    report.Kind.String(),
		"input":   report.InputFile,
		"format":  report.Format,
		"records": len(report.Records),
	}
}
