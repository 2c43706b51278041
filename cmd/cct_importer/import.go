package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mariana/cct-importer/internal/config"
	"github.com/mariana/cct-importer/internal/db"
	"github.com/mariana/cct-importer/internal/importer"
	"github.com/mariana/cct-importer/internal/llm"
	"github.com/mariana/cct-importer/internal/observability"
	"github.com/mariana/cct-importer/internal/spreadsheet"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a spreadsheet of collective agreements",
	Long:  "Reads an XLSX or CSV spreadsheet, normalizes each row, and writes unions, agreements, job roles, salary floors, hourly rates, and particularities to the database.",
	RunE:  runImport,
}

var (
	importFile      string
	importUseAI     bool
	importBlockSize int
	importConfig    string
	importVerbose   bool
)

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to XLSX or CSV spreadsheet (required)")
	importCmd.Flags().BoolVar(&importUseAI, "ai", false, "Normalize rows with Gemini before persisting")
	importCmd.Flags().IntVar(&importBlockSize, "block-size", 0, "Records per enrichment block (default 50)")
	importCmd.Flags().StringVarP(&importConfig, "config", "c", "", "Path to JSON config file")
	importCmd.Flags().BoolVarP(&importVerbose, "verbose", "v", false, "Print a detailed result summary")

	importCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(importCmd)
}

// loadMergedConfig layers an optional config file under flag and
// environment values and validates the result.
func loadMergedConfig(path string) (config.Config, error) {
	var fileCfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}

	cfg := (&config.Config{}).MergeWithDefaults(fileCfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadMergedConfig(importConfig)
	if err != nil {
		return err
	}
	if importBlockSize > 0 {
		cfg.BlockSize = importBlockSize
	}
	if importUseAI {
		cfg.UseAI = true
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or database_url in config)")
	}

	ctx := cmd.Context()

	f, err := os.Open(importFile)
	if err != nil {
		return fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	records, err := spreadsheet.ReadFile(importFile, f)
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	opts := importer.Options{BlockSize: cfg.BlockSize, UseAI: cfg.UseAI}
	if cfg.BlockDelayMs > 0 {
		opts.BlockDelay = time.Duration(cfg.BlockDelayMs) * time.Millisecond
	}

	if cfg.UseAI {
		apiKey := cfg.APIKey
		if apiKey == "" {
			// Fall back to the key stored in the application settings table
			apiKey, err = database.GetSetting(ctx, db.SettingGeminiAPIKey)
			if err != nil {
				return fmt.Errorf("failed to look up stored API key: %w", err)
			}
		}
		if apiKey == "" {
			return fmt.Errorf("AI normalization requires an API key (set GEMINI_API_KEY, api_key in config, or the %s setting)", db.SettingGeminiAPIKey)
		}

		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
		if err != nil {
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		defer client.Close()
		opts.Client = client
	}

	fileName := filepath.Base(importFile)

	if info, err := f.Stat(); err == nil {
		if _, err := database.RegisterUploadedFile(ctx, fileName, info.Size()); err != nil {
			return fmt.Errorf("failed to register uploaded file: %w", err)
		}
	}

	runID, err := database.CreateImportRun(ctx, fileName)
	if err != nil {
		return fmt.Errorf("failed to create import run: %w", err)
	}

	pipeline := importer.New(database, database, opts)
	result := pipeline.Run(ctx, records, fileName, runID)

	if importVerbose {
		observability.NewPrinter(os.Stdout).PrintImportResult(fileName, &result)
	} else {
		fmt.Fprintf(os.Stdout, "%s: %s (%d registros)\n", fileName, result.Message, result.Processed)
	}

	if !result.Success {
		return fmt.Errorf("import failed: %s", result.Message)
	}
	return nil
}
