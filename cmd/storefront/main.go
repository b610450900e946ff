package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/safar/ar-storefront/internal/config"
	"github.com/safar/ar-storefront/internal/database"
	"github.com/safar/ar-storefront/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Multi-tenant AR furniture storefront",
		Long: `Serves the storefront API and manages its database.

Configuration is read from the environment and an optional .env file.

Examples:
  storefront serve --port 9000
  storefront migrate up
  storefront seed`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newSeedCommand())
	return root
}

// app holds what every command needs: configuration, a logger and an open
// database.
type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *sql.DB
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.NewConnection(ctx, &cfg.Database)
	if err != nil {
		log.Error("Connect to database failed", zap.Error(err))
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) close() {
	a.db.Close()
	_ = a.log.Sync()
}
