package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mod-analysis/internal/collection"
	"github.com/mod-analysis/pkg/model"
	"github.com/mod-analysis/pkg/writer"
)

var (
	favoriteRecordFile string
	favoriteLogFile    string
	favoriteRank       int
	favoriteListJSON   bool
	favoriteExportPath string
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Manage the favorites collection",
	Long: `Manage the content-addressed favorites collection.

Records are keyed by a hash of their content, so the same combination always
maps to the same entry regardless of where it was parsed from.`,
}

var favoriteToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle a combination record in the collection",
	Long: `Toggle a combination record in the collection.

The record comes either from a JSON file (--file) or from an optimizer log
(--log together with --rank, which parses the log and picks the block with
that rank).`,
	RunE: runFavoriteToggle,
}

var favoriteCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether a combination record is favorited",
	RunE:  runFavoriteCheck,
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all favorited combination records",
	RunE:  runFavoriteList,
}

var favoriteExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all favorited records as JSON",
	RunE:  runFavoriteExport,
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	favoriteCmd.AddCommand(favoriteToggleCmd, favoriteCheckCmd, favoriteListCmd, favoriteExportCmd)

	favoriteToggleCmd.Flags().StringVarP(&favoriteRecordFile, "file", "f", "", "Path to the record JSON file")
	favoriteToggleCmd.Flags().StringVar(&favoriteLogFile, "log", "", "Path to an optimizer log to pick the record from")
	favoriteToggleCmd.Flags().IntVar(&favoriteRank, "rank", 0, "Rank of the record within --log")
	favoriteToggleCmd.MarkFlagsOneRequired("file", "log")
	favoriteToggleCmd.MarkFlagsMutuallyExclusive("file", "log")
	favoriteToggleCmd.MarkFlagsRequiredTogether("log", "rank")

	favoriteCheckCmd.Flags().StringVarP(&favoriteRecordFile, "file", "f", "", "Path to the record JSON file (required)")
	favoriteCheckCmd.MarkFlagRequired("file")

	favoriteListCmd.Flags().BoolVar(&favoriteListJSON, "json", false, "Print the records as JSON")

	favoriteExportCmd.Flags().StringVarP(&favoriteExportPath, "output", "o", "favorites.json", "Output path for the exported JSON")
}

// loadRecord reads a combination record from a JSON file.
func loadRecord(path string) (model.CombinationRecord, error) {
	var record model.CombinationRecord

	data, err := os.ReadFile(path)
	if err != nil {
		return record, fmt.Errorf("failed to read record file: %w", err)
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("failed to parse record file: %w", err)
	}
	return record, nil
}

func runFavoriteToggle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Stop()

	var record model.CombinationRecord
	if favoriteLogFile != "" {
		report, err := svc.ParseLogFile(ctx, favoriteLogFile)
		if err != nil {
			return fmt.Errorf("failed to parse log: %w", err)
		}
		found := false
		for _, r := range report.Records {
			if r.Rank == favoriteRank {
				record = r
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no record with rank %d in %s", favoriteRank, favoriteLogFile)
		}
	} else {
		record, err = loadRecord(favoriteRecordFile)
		if err != nil {
			return err
		}
	}

	state, err := svc.ToggleFavorite(ctx, record)
	if err != nil {
		return fmt.Errorf("toggle failed: %w", err)
	}

	switch state {
	case collection.StateFavorited:
		logger.Info("Record rank %d added to favorites", record.Rank)
	case collection.StateUnfavorited:
		logger.Info("Record rank %d removed from favorites", record.Rank)
	}
	return nil
}

func runFavoriteCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	record, err := loadRecord(favoriteRecordFile)
	if err != nil {
		return err
	}

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Stop()

	favorited, err := svc.IsFavorite(ctx, record)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if favorited {
		fmt.Println("favorited")
	} else {
		fmt.Println("not favorited")
	}
	return nil
}

func runFavoriteList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Stop()

	records, err := svc.ListFavorites(ctx)
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if favoriteListJSON {
		w := writer.NewPrettyJSONWriter[[]model.CombinationRecord]()
		return w.Write(records, os.Stdout)
	}

	if len(records) == 0 {
		fmt.Println("No favorites")
		return nil
	}

	for _, record := range records {
		fmt.Printf("第%d名搭配", record.Rank)
		if record.TotalLine != "" {
			fmt.Printf("  %s", record.TotalLine)
		}
		if record.PowerLine != "" {
			fmt.Printf("  %s", record.PowerLine)
		}
		fmt.Printf("  (%d modules)\n", len(record.Modules))
	}
	return nil
}

func runFavoriteExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Stop()

	records, err := svc.ListFavorites(ctx)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	w := writer.NewPrettyJSONWriter[[]model.CombinationRecord]()
	if err := w.WriteToFile(records, favoriteExportPath); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	logger.Info("Exported %d favorites to %s", len(records), favoriteExportPath)
	return nil
}
