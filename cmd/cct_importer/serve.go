package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mariana/cct-importer/internal/server"
)

var (
	serveAddr   string
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that accepts import requests and exposes run status endpoints.`,
}

func init() {
	serveCmd.RunE = runServe
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on")
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(serveConfig)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or database_url in config)")
	}

	addr := serveAddr
	if cfg.ListenAddr != "" && !serveCmd.Flags().Changed("addr") {
		addr = cfg.ListenAddr
	}

	srv, err := server.New(server.Config{
		Addr:         addr,
		DatabaseURL:  cfg.DatabaseURL,
		APIKey:       cfg.APIKey,
		BlockSize:    cfg.BlockSize,
		BlockDelayMs: cfg.BlockDelayMs,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
