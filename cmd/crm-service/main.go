package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "crm-service",
	Short: "Real-estate CRM backend",
	Long: `CRM for a real-estate agency: contacts, contact history, buyer matching and outreach.

Without a subcommand the HTTP API is started (same as "serve").`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "path to .env file (optional)")

	rootCmd.AddCommand(serveCmd, migrateCmd, exportCmd, importCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
