// Package main provides the entry point for the CCT importer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cct_importer",
	Short: "Importador de convenções coletivas de trabalho",
	Long:  "Imports collective bargaining agreement spreadsheets into PostgreSQL, with optional Gemini-assisted row normalization.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
