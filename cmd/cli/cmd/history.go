package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mod-analysis/pkg/model"
)

var (
	historyLimit     int
	historyKind      string
	historyOlderThan time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent decode and parse runs",
	Long: `Show recent decode and parse runs, newest first.

Every decode and parse invocation is recorded with its input file, detected
format, record count, outcome and duration.`,
	RunE: runHistory,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs older than a given age",
	RunE:  runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to show")
	historyCmd.Flags().StringVar(&historyKind, "kind", "", "Filter by run kind (decode or parse)")

	historyPruneCmd.Flags().DurationVar(&historyOlderThan, "older-than", 30*24*time.Hour, "Delete runs older than this duration (e.g. 720h)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Stop()

	var runs []*model.Run
	switch historyKind {
	case "":
		runs, err = svc.History(ctx, historyLimit)
	case "decode":
		runs, err = svc.HistoryByKind(ctx, model.RunKindDecode, historyLimit)
	case "parse":
		runs, err = svc.HistoryByKind(ctx, model.RunKindParse, historyLimit)
	default:
		return fmt.Errorf("unknown run kind: %s", historyKind)
	}
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}

	for _, run := range runs {
		line := fmt.Sprintf("#%d  %s  %-6s  %-6s  %s",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Kind, run.Status, run.InputFile)
		if run.Format != "" {
			line += fmt.Sprintf("  format=%s", run.Format)
		}
		line += fmt.Sprintf("  records=%d  %dms", run.Records, run.DurationMs)
		if run.StatusInfo != "" {
			line += fmt.Sprintf("  (%s)", run.StatusInfo)
		}
		fmt.Println(line)
	}
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Stop()

	deleted, err := svc.PruneHistory(ctx, historyOlderThan)
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}

	fmt.Printf("Deleted %d runs older than %s\n", deleted, historyOlderThan)
	return nil
}
