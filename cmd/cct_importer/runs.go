package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mariana/cct-importer/internal/db"
	"github.com/mariana/cct-importer/internal/observability"
)

var (
	runsLimit  int
	runsConfig string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent import runs",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 10, "Maximum number of runs to list")
	runsCmd.Flags().StringVarP(&runsConfig, "config", "c", "", "Path to JSON config file")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(runsConfig)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or database_url in config)")
	}

	ctx := cmd.Context()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListImportRuns(ctx, runsLimit)
	if err != nil {
		return fmt.Errorf("failed to list import runs: %w", err)
	}

	summaries := make([]observability.RunSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, observability.RunSummary{
			Arquivo:   run.Arquivo,
			Status:    run.Status,
			Registros: run.Registros,
		})
	}

	observability.NewPrinter(os.Stdout).PrintRuns(summaries)
	return nil
}
