package database_test

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/safar/ar-storefront/internal/database"
	"github.com/safar/ar-storefront/internal/testutil"
)

func TestMigrationFilesOrder(t *testing.T) {
	c := qt.New(t)

	up, err := database.MigrationFiles(database.Up)
	c.Assert(err, qt.IsNil)
	c.Assert(up, qt.DeepEquals, []string{
		"0001_create_companies.up.sql",
		"0002_create_products.up.sql",
		"0003_create_ar_requests.up.sql",
		"0004_create_product_events.up.sql",
	})

	down, err := database.MigrationFiles(database.Down)
	c.Assert(err, qt.IsNil)
	c.Assert(down, qt.DeepEquals, []string{
		"0004_create_product_events.down.sql",
		"0003_create_ar_requests.down.sql",
		"0002_create_products.down.sql",
		"0001_create_companies.down.sql",
	})

	_, err = database.MigrationFiles("sideways")
	c.Assert(err, qt.ErrorMatches, `direction must be 'up' or 'down'.*`)
}

func TestMigrateDownAndUpAgain(t *testing.T) {
	c := qt.New(t)
	db := testutil.NewPostgres(t)
	ctx := context.Background()

	_, err := database.Migrate(ctx, db, database.Down)
	c.Assert(err, qt.IsNil)

	var exists bool
	err = db.QueryRowContext(ctx, `SELECT to_regclass('public.products') IS NOT NULL`).Scan(&exists)
	c.Assert(err, qt.IsNil)
	c.Assert(exists, qt.IsFalse)

	files, err := database.Migrate(ctx, db, database.Up)
	c.Assert(err, qt.IsNil)
	c.Assert(files, qt.HasLen, 4)

	// Up is idempotent.
	_, err = database.Migrate(ctx, db, database.Up)
	c.Assert(err, qt.IsNil)
}

func TestSeedOnlyOnce(t *testing.T) {
	c := qt.New(t)
	db := testutil.NewPostgres(t)
	ctx := context.Background()

	seeded, err := database.Seed(ctx, db)
	c.Assert(err, qt.IsNil)
	c.Assert(seeded, qt.IsTrue)

	seeded, err = database.Seed(ctx, db)
	c.Assert(err, qt.IsNil)
	c.Assert(seeded, qt.IsFalse)

	var companies int
	c.Assert(db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&companies), qt.IsNil)
	c.Assert(companies, qt.Equals, len(database.DemoSubdomains()))
}
