package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	decodeInputs  []string
	decodeOutput  string
	decodeSummary bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode captured character-state blobs",
	Long: `Decode captured character-state blobs into structured JSON.

The input format is detected automatically: a binary sync container, a raw
binary state message, a base64-encoded binary message, or plain or wrapped
JSON. The decoded state is printed and, when an output directory is
configured, written next to the input name as JSON.

The --input flag may be repeated; multiple files are decoded concurrently.`,
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringArrayVarP(&decodeInputs, "input", "i", nil, "Path to a blob file (repeatable, required)")
	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "", "Output directory for the decoded JSON (overrides config)")
	decodeCmd.Flags().BoolVar(&decodeSummary, "summary", false, "Write a summary.json next to the decoded output")

	decodeCmd.MarkFlagRequired("input")
}

func runDecode(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if decodeOutput != "" {
		cfg.Decoder.OutputDir = decodeOutput
	}

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Stop()

	if len(decodeInputs) == 1 {
		report, err := svc.DecodeFile(ctx, decodeInputs[0])
		if err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}

		svc.PrintReport(report)

		if decodeSummary {
			if err := saveSummary(svc.Summary(report), cfg.Decoder.OutputDir); err != nil {
				logger.Warn("Failed to write summary: %v", err)
			}
		}
		return nil
	}

	results := svc.DecodeFiles(ctx, decodeInputs)

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			logger.Error("Decode failed for %s: %v", result.Path, result.Err)
			continue
		}
		svc.PrintReport(result.Report)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed to decode", failed, len(results))
	}
	return nil
}

// saveSummary writes a report summary as summary.json in dir.
func saveSummary(summary map[string]interface{}, dir string) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	path := filepath.Join(dir, "summary.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}

	logger.Info("Summary written to %s", path)
	return nil
}

// outputBaseName derives the output file stem from an input path.
func outputBaseName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
