package main

import (
	"fmt"

	"github.com/safar/ar-storefront/internal/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Apply or roll back the embedded schema migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Create the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrations(cmd, database.Up)
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Drop the schema and all data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrations(cmd, database.Down)
		},
	})
	return migrateCmd
}

func runMigrations(cmd *cobra.Command, direction database.Direction) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	files, err := database.Migrate(cmd.Context(), a.db, direction)
	if err != nil {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	for _, file := range files {
		a.log.Info("Ran migration", zap.String("file", file))
	}
	a.log.Info("Migrations complete",
		zap.String("direction", string(direction)),
		zap.Int("count", len(files)))
	return nil
}
