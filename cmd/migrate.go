package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prophetlog/prediction-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long: `Apply the database schema for the Prediction Log API.

Runs GORM AutoMigrate for all models against the configured sqlite
database, creating the file if it does not exist. Safe to run repeatedly.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	fmt.Fprintf(cmd.OutOrStdout(), "Schema migrated at %s\n", cfg.Database.Path)
	return nil
}
