package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mod-analysis/internal/service"
	"github.com/mod-analysis/pkg/config"
	"github.com/mod-analysis/pkg/telemetry"
	"github.com/mod-analysis/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger utils.Logger

	telemetryShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mod-analysis",
	Short: "A module optimization data tool",
	Long: `mod-analysis is a CLI tool for working with module optimizer data.

It decodes captured character-state blobs (binary protobuf, base64 or JSON),
parses module optimizer logs into combination records, and maintains a
favorites collection plus a run history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		level := utils.ParseLogLevel(cfg.Log.Level)
		if verbose {
			level = utils.LevelDebug
		}

		if cfg.Log.ToFile {
			fileLogger, logPath, err := utils.NewRunFileLogger(level, cfg.Log.OutputPath)
			if err != nil {
				return fmt.Errorf("failed to create log file: %w", err)
			}
			logger = fileLogger
			fmt.Fprintf(os.Stderr, "logging to %s\n", logPath)
		} else {
			logger = utils.NewDefaultLogger(level, os.Stdout)
		}
		utils.SetGlobalLogger(logger)

		if telemetry.Enabled() {
			shutdown, err := telemetry.Init(cmd.Context())
			if err != nil {
				logger.Warn("Failed to initialize telemetry: %v", err)
			} else {
				telemetryShutdown = shutdown
			}
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if telemetryShutdown != nil {
			if err := telemetryShutdown(cmd.Context()); err != nil {
				logger.Warn("Failed to shut down telemetry: %v", err)
			}
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")

	binName := BinName()
	rootCmd.Example = `  # Decode a captured character-state blob
  ` + binName + ` decode -i ./vdata.bin

  # Parse an optimizer log into combination records
  ` + binName + ` parse -i ./solver.log

  # Toggle a combination in the favorites collection
  ` + binName + ` favorite toggle -f ./record.json

  # Show the last runs
  ` + binName + ` history -n 10`
}

// GetLogger returns the configured logger
func GetLogger() utils.Logger {
	return logger
}

// BinName returns the base name of the current executable
func BinName() string {
	return filepath.Base(os.Args[0])
}

// newService builds and initializes the application service for a command run.
func newService(ctx context.Context) (*service.Service, error) {
	svc, err := service.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	if err := svc.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize service: %w", err)
	}
	return svc, nil
}
