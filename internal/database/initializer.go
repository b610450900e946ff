package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Initializer creates the schema and seeds demo data on the first successful
// call per process. Later calls return immediately; a failed attempt is
// retried by the next caller.
type Initializer struct {
	db  *sql.DB
	log *zap.Logger

	mu   sync.Mutex
	done bool
}

func NewInitializer(db *sql.DB, log *zap.Logger) *Initializer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Initializer{db: db, log: log}
}

func (i *Initializer) Ensure(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.done {
		return nil
	}

	files, err := Migrate(ctx, i.db, Up)
	if err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}

	seeded, err := Seed(ctx, i.db)
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	i.log.Info("Database initialized",
		zap.Int("migrations", len(files)),
		zap.Bool("seeded", seeded))

	i.done = true
	return nil
}
