package catalog

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/safar/ar-storefront/internal/database"
	"github.com/safar/ar-storefront/internal/models"
	"github.com/safar/ar-storefront/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Column limits: prices are NUMERIC(10,2), ar_scale is NUMERIC(5,2).
var (
	maxPrice   = decimal.RequireFromString("99999999.99")
	maxARScale = decimal.RequireFromString("999.99")
)

func validateNewProduct(data *models.CreateProductData) error {
	data.Name = strings.TrimSpace(data.Name)
	if data.Name == "" {
		return invalid("name", "is required")
	}
	if data.ShopID <= 0 {
		return invalid("shop_id", "is required")
	}
	if data.Price.IsNegative() {
		return invalid("price", "must not be negative")
	}
	if data.Price.GreaterThan(maxPrice) {
		return invalid("price", "must not exceed %s", maxPrice)
	}
	if data.DiscountPrice != nil {
		if !data.DiscountPrice.IsPositive() || data.DiscountPrice.GreaterThan(data.Price) {
			return database.ErrInvalidDiscount
		}
	}
	if data.ARPlacement == "" {
		data.ARPlacement = models.PlacementFloor
	} else if !models.ValidPlacement(data.ARPlacement) {
		return database.ErrInvalidPlacement
	}
	if data.ARScale != nil && !data.ARScale.IsPositive() {
		return invalid("ar_scale", "must be positive")
	}
	if data.ARScale != nil && data.ARScale.GreaterThan(maxARScale) {
		return invalid("ar_scale", "must not exceed %s", maxARScale)
	}
	if len(data.Images) > models.MaxProductImages {
		return invalid("images", "accepts at most %d entries", models.MaxProductImages)
	}
	return nil
}

// validatePatch checks what can be checked without the stored row. A
// discount above a stored price is caught by the products CHECK constraint.
func validatePatch(patch models.ProductPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return invalid("name", "must not be empty")
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return invalid("price", "must not be negative")
	}
	if patch.Price != nil && patch.Price.GreaterThan(maxPrice) {
		return invalid("price", "must not exceed %s", maxPrice)
	}
	if !patch.ClearDiscount && patch.DiscountPrice != nil {
		if !patch.DiscountPrice.IsPositive() {
			return database.ErrInvalidDiscount
		}
		if patch.DiscountPrice.GreaterThan(maxPrice) {
			return invalid("discount_price", "must not exceed %s", maxPrice)
		}
		if patch.Price != nil && patch.DiscountPrice.GreaterThan(*patch.Price) {
			return database.ErrInvalidDiscount
		}
	}
	if patch.ARPlacement != nil && !models.ValidPlacement(*patch.ARPlacement) {
		return database.ErrInvalidPlacement
	}
	if patch.ARScale != nil && !patch.ARScale.IsPositive() {
		return invalid("ar_scale", "must be positive")
	}
	if patch.ARScale != nil && patch.ARScale.GreaterThan(maxARScale) {
		return invalid("ar_scale", "must not exceed %s", maxARScale)
	}
	return nil
}

// CreateProduct inserts an active product and returns it as read back.
func (s *Service) CreateProduct(ctx context.Context, data models.CreateProductData) (*models.Product, error) {
	if err := validateNewProduct(&data); err != nil {
		return nil, err
	}

	var id int64
	start := time.Now()
	err := database.WithTransaction(ctx, s.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		var err error
		id, err = store.InsertProduct(ctx, tx, data)
		if err != nil {
			return err
		}
		return store.RecordProductEvent(ctx, tx, id, models.ProductEventCreated)
	})
	s.track("create_product", start, err)
	if err != nil {
		return nil, err
	}

	s.log.Info("Product created",
		zap.Int64("product_id", id),
		zap.Int64("company_id", data.ShopID))
	return s.GetProduct(ctx, id)
}

// UpdateProduct applies the provided fields of patch to an active product.
func (s *Service) UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}

	start := time.Now()
	err := database.WithTransaction(ctx, s.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		if err := store.UpdateProduct(ctx, tx, id, patch); err != nil {
			return err
		}
		return store.RecordProductEvent(ctx, tx, id, models.ProductEventUpdated)
	})
	s.track("update_product", start, err)
	if err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct marks an active product Inactive. The row and its history
// stay in place.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	start := time.Now()
	err := database.WithTransaction(ctx, s.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		if err := store.SoftDeleteProduct(ctx, tx, id); err != nil {
			return err
		}
		return store.RecordProductEvent(ctx, tx, id, models.ProductEventDeleted)
	})
	s.track("delete_product", start, err)
	if err != nil {
		return err
	}

	s.log.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

// ListProductEvents returns the change history of a product, including one
// that has been deleted.
func (s *Service) ListProductEvents(ctx context.Context, id int64) ([]models.ProductEvent, error) {
	start := time.Now()
	if _, err := store.GetProductRecord(ctx, s.db, id); err != nil {
		s.track("list_product_events", start, err)
		return nil, err
	}
	events, err := store.ListProductEvents(ctx, s.db, id)
	s.track("list_product_events", start, err)
	return events, err
}
