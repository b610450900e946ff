package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/ar-storefront/internal/models"
)

// GetDashboardStats aggregates product and AR request counts, optionally for
// a single shop.
func GetDashboardStats(ctx context.Context, db *sql.DB, shopID *int64) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	var scope any
	if shopID != nil {
		scope = *shopID
	}

	err := db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $2 AND has_ar),
			COUNT(*) FILTER (WHERE status = $2 AND featured)
		FROM products
		WHERE $1::BIGINT IS NULL OR company_id = $1::BIGINT`,
		scope, models.ProductStatusActive).Scan(
		&stats.TotalProducts,
		&stats.ActiveProducts,
		&stats.ARProducts,
		&stats.FeaturedProducts,
	)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	err = db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4)
		FROM ar_requests
		WHERE $1::BIGINT IS NULL OR shop = $1::BIGINT`,
		scope, models.ARRequestPending, models.ARRequestApproved, models.ARRequestRejected).Scan(
		&stats.PendingARRequests,
		&stats.ApprovedARRequests,
		&stats.RejectedARRequests,
	)
	if err != nil {
		return nil, fmt.Errorf("count ar requests: %w", err)
	}

	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM companies
		WHERE $1::BIGINT IS NULL OR id = $1::BIGINT`, scope).Scan(&stats.TotalCompanies)
	if err != nil {
		return nil, fmt.Errorf("count companies: %w", err)
	}

	return stats, nil
}
