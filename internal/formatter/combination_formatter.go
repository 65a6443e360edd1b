package formatter

import (
	"github.com/mod-analysis/pkg/model"
	"github.com/mod-analysis/pkg/utils"
)

// CombinationFormatter formats parsed combination records in the same shape
// the solver log uses.
type CombinationFormatter struct{}

// SupportedKinds returns the run kinds this formatter supports.
func (f *CombinationFormatter) SupportedKinds() []model.RunKind {
	return []model.RunKind{model.RunKindParse}
}

// Format outputs the parsed combinations to the logger.
func (f *CombinationFormatter) Format(report *Report, log utils.Logger) {
	log.Info("=== Parse Results ===")
	log.Info("Input:   %s", report.InputFile)
	log.Info("Records: %d", len(report.Records))
	log.Info("")

	for _, record := range report.Records {
		log.Info("=== 第%d名搭配 ===", record.Rank)
		if record.TotalLine != "" {
			log.Info("%s", record.TotalLine)
		}
		if record.PowerLine != "" {
			log.Info("%s", record.PowerLine)
		}
		log.Info("模组列表:")
		for _, mod := range record.Modules {
			log.Info("  %s", mod)
		}
		if len(record.AttrDist) > 0 {
			log.Info("属性分布:")
			for _, attr := range record.AttrDist {
				log.Info("  %s", attr)
			}
		}
		log.Info("")
	}
}

// FormatSummary returns a summary map for serialization.
func (f *CombinationFormatter) FormatSummary(report *Report) map[string]interface{} {
	return map[string]interface{}{
		"kind":    report.Kind.String(),
		"input":   report.InputFile,
		"count":   len(report.Records),
		"records": report.Records,
	}
}
