package formatter

import (
	"github.com/mod-analysis/pkg/model"
	"github.com/mod-analysis/pkg/utils"
)

// CharStateFormatter formats decoded character state.
type CharStateFormatter struct{}

// SupportedKinds returns the run kinds this formatter supports.
func (f *CharStateFormatter) SupportedKinds() []model.RunKind {
	return []model.RunKind{model.RunKindDecode}
}

// Format outputs the decoded state to the logger.
func (f *CharStateFormatter) Format(report *Report, log utils.Logger) {
	log.Info("=== Decode Results ===")
	log.Info("Input:   %s", report.InputFile)
	log.Info("Format:  %s", report.Format)

	state := report.State
	if state == nil {
		log.Info("(no character state)")
		return
	}

	log.Info("Char ID: %d", state.CharID)
	log.Info("Name:    %s", state.Name)
	log.Info("Level:   %d", state.Level)
	log.Info("")

	if state.Mod == nil || len(state.Mod.ModInfos) == 0 {
		log.Info("=== Mods ===")
		log.Info("  (none)")
		return
	}

	log.Info("=== Mods (%d) ===", len(state.Mod.ModInfos))
	for i, info := range state.Mod.ModInfos {
		log.Info("  %2d. config=%d quality=%d", i+1, info.ConfigID, info.Quality)
		for _, part := range info.Parts {
			log.Info("      %s = %d", truncateString(part.Name, 60), part.Value)
		}
	}
}

// FormatSummary returns a summary map for serialization.
func (f *CharStateFormatter) FormatSummary(report *Report) map[string]interface{} {
	summary := map[string]interface{}{
		"kind":   report.Kind.String(),
		"input":  report.InputFile,
		"format": report.Format,
	}

	if report.State != nil {
		mods := 0
		if report.State.Mod != nil {
			mods = len(report.State.Mod.ModInfos)
		}
		summary["char_id"] = report.State.CharID
		summary["name"] = report.State.Name
		summary["level"] = report.State.Level
		summary["mods"] = mods
	}

	return summary
}
