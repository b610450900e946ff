package main

import (
	"fmt"

	"github.com/safar/ar-storefront/internal/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and insert demo companies if the database is empty",
		Args:  cobra.NoArgs,
		RunE:  seedCommand,
	}
}

func seedCommand(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := database.Migrate(cmd.Context(), a.db, database.Up); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}

	seeded, err := database.Seed(cmd.Context(), a.db)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	if !seeded {
		a.log.Info("Database already has companies, nothing seeded")
		return nil
	}
	a.log.Info("Seeded demo data", zap.Strings("subdomains", database.DemoSubdomains()))
	return nil
}
