package catalog

import (
	"context"
	"time"

	"github.com/safar/ar-storefront/internal/database"
	"github.com/safar/ar-storefront/internal/models"
	"github.com/safar/ar-storefront/internal/store"
	"go.uber.org/zap"
)

func (s *Service) GetARRequests(ctx context.Context, shopID *int64, page, pageSize int) (*store.OffsetPage, error) {
	page, pageSize = store.NormalizePage(page, pageSize)

	start := time.Now()
	result, err := store.ListARRequests(ctx, s.db, shopID, page, pageSize)
	s.track("list_ar_requests", start, err)
	return result, err
}

// CreateARRequest opens a Pending request for a shop's own active product.
func (s *Service) CreateARRequest(ctx context.Context, productID, shopID int64) (*models.ARRequest, error) {
	if productID <= 0 {
		return nil, invalid("product", "is required")
	}
	if shopID <= 0 {
		return nil, invalid("shop", "is required")
	}

	start := time.Now()
	req, err := store.CreateARRequest(ctx, s.db, productID, shopID)
	s.track("create_ar_request", start, err)
	if err != nil {
		return nil, err
	}

	s.log.Info("AR request created",
		zap.Int64("ar_request_id", req.ID),
		zap.Int64("product_id", productID))
	return req, nil
}

// UpdateARRequest moves a request to status. Only Pending requests can move,
// and only to Approved or Rejected.
func (s *Service) UpdateARRequest(ctx context.Context, id int64, status string) (*models.ARRequest, error) {
	next := models.ARRequestStatus(status)
	if !next.Valid() {
		return nil, database.ErrInvalidStatus
	}

	start := time.Now()
	req, err := store.TransitionARRequest(ctx, s.db, id, next)
	s.track("transition_ar_request", start, err)
	if err != nil {
		return nil, err
	}

	s.log.Info("AR request updated",
		zap.Int64("ar_request_id", id),
		zap.String("status", string(next)))
	return req, nil
}

func (s *Service) GetDashboardStats(ctx context.Context, shopID *int64) (*models.DashboardStats, error) {
	start := time.Now()
	stats, err := store.GetDashboardStats(ctx, s.db, shopID)
	s.track("dashboard_stats", start, err)
	return stats, err
}
