package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/albertoDabu/crm-immobiliaria/internal"
	"github.com/albertoDabu/crm-immobiliaria/internal/configs"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the PostgreSQL schema and exit",
	RunE:  runMigrate,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := configs.LoadConfig(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	application, err := internal.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run(cmd.Context())
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := configs.LoadConfig(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, fluentClient, err := internal.NewLogger(cfg)
	if err != nil {
		return err
	}
	if fluentClient != nil {
		defer fluentClient.Close()
	}

	if err := internal.Migrate(cmd.Context(), cfg, logger); err != nil {
		logger.Error("Migration failed", err, nil)
		return err
	}
	logger.Info("Migrations applied", nil)
	return nil
}
