package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mod-analysis/pkg/model"
	"github.com/mod-analysis/pkg/writer"
)

var (
	parseInput   string
	parseJSONOut string
	parseArchive string
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a module optimizer log",
	Long: `Parse a module optimizer log into ranked combination records.

Only the report section of the log is considered. Each "=== 第N名搭配 ==="
block becomes one record carrying its rank, total attribute line, combat
power line, module list and attribute distribution. Malformed logs yield an
empty result rather than an error.`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseInput, "input", "i", "", "Path to the optimizer log file (required)")
	parseCmd.Flags().StringVar(&parseJSONOut, "json", "", "Write the parsed records as JSON to this path")
	parseCmd.Flags().StringVar(&parseArchive, "archive", "", "Write the parsed records as gzipped JSON to this path")

	parseCmd.MarkFlagRequired("input")
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Stop()

	report, err := svc.ParseLogFile(ctx, parseInput)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	svc.PrintReport(report)

	if parseJSONOut != "" {
		path := parseJSONOut
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, outputBaseName(parseInput)+".json")
		}
		w := writer.NewPrettyJSONWriter[[]model.CombinationRecord]()
		if err := w.WriteToFile(report.Records, path); err != nil {
			return fmt.Errorf("failed to write records: %w", err)
		}
		logger.Info("Records written to %s", path)
	}

	if parseArchive != "" {
		w := writer.NewGzipWriter[[]model.CombinationRecord]()
		result, err := w.WriteToFileWithStats(report.Records, parseArchive)
		if err != nil {
			return fmt.Errorf("failed to write archive: %w", err)
		}
		logger.Info("Archive written to %s (%d -> %d bytes, %.1f%%)",
			parseArchive, result.JSONSize, result.CompressedSize, result.CompressionPct)
	}

	return nil
}
