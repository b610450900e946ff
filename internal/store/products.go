package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/safar/ar-storefront/internal/database"
	"github.com/safar/ar-storefront/internal/models"
	"github.com/shopspring/decimal"
)

// AssetSlot names a products column that holds a storage key.
type AssetSlot string

const (
	SlotImage1 AssetSlot = "image_1"
	SlotImage2 AssetSlot = "image_2"
	SlotImage3 AssetSlot = "image_3"
	SlotImage4 AssetSlot = "image_4"
	SlotGLB    AssetSlot = "glb_file"
	SlotUSDZ   AssetSlot = "usdz_file"
)

// ImageSlot returns the slot for a 1-based image index.
func ImageSlot(index int) (AssetSlot, bool) {
	slots := [models.MaxProductImages]AssetSlot{SlotImage1, SlotImage2, SlotImage3, SlotImage4}
	if index < 1 || index > len(slots) {
		return "", false
	}
	return slots[index-1], true
}

const productSelect = `
		SELECT p.id, p.company_id, p.name, p.description, p.price, p.discount_price, p.category,
		       p.image_1, p.image_2, p.image_3, p.image_4,
		       p.dimensions, p.weight, p.material, p.color,
		       p.ar_scale, p.ar_placement, p.has_ar, p.glb_file, p.usdz_file,
		       p.featured, p.status, p.created_at, p.updated_at,
		       c.shop_name, c.subdomain, c.description, c.logo
		FROM products p
		JOIN companies c ON p.company_id = c.id`

const productOrder = `
		ORDER BY p.featured DESC, p.created_at DESC, p.id DESC`

func scanProduct(row interface{ Scan(...any) error }, p *models.ProductRecord) error {
	return row.Scan(
		&p.ID,
		&p.CompanyID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.DiscountPrice,
		&p.Category,
		&p.Images[0],
		&p.Images[1],
		&p.Images[2],
		&p.Images[3],
		&p.Dimensions,
		&p.Weight,
		&p.Material,
		&p.Color,
		&p.ARScale,
		&p.ARPlacement,
		&p.HasAR,
		&p.GLBFile,
		&p.USDZFile,
		&p.Featured,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.CompanyName,
		&p.CompanySubdomain,
		&p.CompanyDescription,
		&p.CompanyLogo,
	)
}

func queryProducts(ctx context.Context, db *sql.DB, query string, args ...any) ([]models.ProductRecord, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.ProductRecord{}
	for rows.Next() {
		var product models.ProductRecord
		if err := scanProduct(rows, &product); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

// ListActiveProducts returns active products, featured first then newest.
// A nil companyID lists every tenant.
func ListActiveProducts(ctx context.Context, db *sql.DB, companyID *int64) ([]models.ProductRecord, error) {
	if companyID == nil {
		return queryProducts(ctx, db, productSelect+`
		WHERE p.status = $1`+productOrder, models.ProductStatusActive)
	}

	return queryProducts(ctx, db, productSelect+`
		WHERE p.status = $1 AND p.company_id = $2`+productOrder, models.ProductStatusActive, *companyID)
}

func GetActiveProduct(ctx context.Context, db *sql.DB, id int64) (*models.ProductRecord, error) {
	product := &models.ProductRecord{}

	query := productSelect + `
		WHERE p.id = $1 AND p.status = $2`

	if err := scanProduct(db.QueryRowContext(ctx, query, id, models.ProductStatusActive), product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

// GetActiveCompanyProduct fetches an active product only when it belongs to
// the company with the given subdomain.
func GetActiveCompanyProduct(ctx context.Context, db *sql.DB, subdomain string, id int64) (*models.ProductRecord, error) {
	product := &models.ProductRecord{}

	query := productSelect + `
		WHERE p.id = $1 AND p.status = $2 AND c.subdomain = $3`

	if err := scanProduct(db.QueryRowContext(ctx, query, id, models.ProductStatusActive, subdomain), product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get company product: %w", err)
	}

	return product, nil
}

// GetProductRecord fetches a product regardless of status.
func GetProductRecord(ctx context.Context, db *sql.DB, id int64) (*models.ProductRecord, error) {
	product := &models.ProductRecord{}

	if err := scanProduct(db.QueryRowContext(ctx, productSelect+`
		WHERE p.id = $1`, id), product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product record: %w", err)
	}

	return product, nil
}

func InsertProduct(ctx context.Context, tx *sql.Tx, data models.CreateProductData) (int64, error) {
	var images [models.MaxProductImages]*string
	for i := 0; i < len(data.Images) && i < len(images); i++ {
		if data.Images[i] != "" {
			key := data.Images[i]
			images[i] = &key
		}
	}

	arScale := decimal.NewFromInt(1)
	if data.ARScale != nil {
		arScale = *data.ARScale
	}

	var id int64
	err := tx.QueryRowContext(ctx,
		`INSERT INTO products (company_id, name, description, price, discount_price, category,
		                       image_1, image_2, image_3, image_4,
		                       dimensions, weight, material, color,
		                       has_ar, ar_scale, ar_placement, featured, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		 RETURNING id`,
		data.ShopID, data.Name, data.Description, data.Price, data.DiscountPrice, data.Category,
		images[0], images[1], images[2], images[3],
		data.Dimensions, data.Weight, data.Material, data.Color,
		data.HasAR, arScale, data.ARPlacement, data.Featured, models.ProductStatusActive,
	).Scan(&id)
	if err != nil {
		if translated := database.TranslateConstraint(err); translated != err {
			return 0, translated
		}
		return 0, fmt.Errorf("insert product: %w", err)
	}

	return id, nil
}

type assignment struct {
	column string
	value  any
}

func patchAssignments(patch models.ProductPatch) []assignment {
	var out []assignment
	add := func(column string, value any) {
		out = append(out, assignment{column: column, value: value})
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.ClearDiscount {
		add("discount_price", nil)
	} else if patch.DiscountPrice != nil {
		add("discount_price", *patch.DiscountPrice)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Dimensions != nil {
		add("dimensions", *patch.Dimensions)
	}
	if patch.Weight != nil {
		add("weight", *patch.Weight)
	}
	if patch.Material != nil {
		add("material", *patch.Material)
	}
	if patch.Color != nil {
		add("color", *patch.Color)
	}
	if patch.HasAR != nil {
		add("has_ar", *patch.HasAR)
	}
	if patch.ARScale != nil {
		add("ar_scale", *patch.ARScale)
	}
	if patch.ARPlacement != nil {
		add("ar_placement", *patch.ARPlacement)
	}
	if patch.Featured != nil {
		add("featured", *patch.Featured)
	}

	return out
}

// BuildProductUpdate renders the UPDATE statement for a patch. Only the
// provided fields are assigned; updated_at is always bumped.
func BuildProductUpdate(id int64, patch models.ProductPatch) (string, []any) {
	assignments := patchAssignments(patch)

	sets := make([]string, 0, len(assignments)+1)
	args := make([]any, 0, len(assignments)+2)
	for i, a := range assignments {
		sets = append(sets, fmt.Sprintf("%s = $%d", a.column, i+1))
		args = append(args, a.value)
	}
	sets = append(sets, "updated_at = NOW()")

	n := len(args)
	args = append(args, id, models.ProductStatusActive)
	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d AND status = $%d`,
		strings.Join(sets, ", "), n+1, n+2)

	return query, args
}

func UpdateProduct(ctx context.Context, tx *sql.Tx, id int64, patch models.ProductPatch) error {
	query, args := BuildProductUpdate(id, patch)

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if translated := database.TranslateConstraint(err); translated != err {
			return translated
		}
		return fmt.Errorf("update product: %w", err)
	}

	return expectOneRow(result, database.ErrProductNotFound)
}

func SoftDeleteProduct(ctx context.Context, tx *sql.Tx, id int64) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE products
		 SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND status = $3`,
		models.ProductStatusInactive, id, models.ProductStatusActive)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	return expectOneRow(result, database.ErrProductNotFound)
}

// SetProductAsset stores an object key in one of the product's asset slots.
// Model slots also switch has_ar on.
func SetProductAsset(ctx context.Context, tx *sql.Tx, id int64, slot AssetSlot, key string) error {
	switch slot {
	case SlotImage1, SlotImage2, SlotImage3, SlotImage4, SlotGLB, SlotUSDZ:
	default:
		return fmt.Errorf("unknown asset slot %q", slot)
	}

	hasAR := ""
	if slot == SlotGLB || slot == SlotUSDZ {
		hasAR = ", has_ar = TRUE"
	}

	result, err := tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE products SET %s = $1%s, updated_at = NOW() WHERE id = $2 AND status = $3`, slot, hasAR),
		key, id, models.ProductStatusActive)
	if err != nil {
		return fmt.Errorf("set product asset: %w", err)
	}

	return expectOneRow(result, database.ErrProductNotFound)
}

func RecordProductEvent(ctx context.Context, tx *sql.Tx, productID int64, event string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO product_events (product_id, event) VALUES ($1, $2)`,
		productID, event)
	if err != nil {
		return fmt.Errorf("record product event: %w", err)
	}
	return nil
}

// ListProductEvents returns the audit trail of a product, oldest first.
func ListProductEvents(ctx context.Context, db *sql.DB, productID int64) ([]models.ProductEvent, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, product_id, event, occurred_at
		 FROM product_events
		 WHERE product_id = $1
		 ORDER BY occurred_at, id`,
		productID)
	if err != nil {
		return nil, fmt.Errorf("list product events: %w", err)
	}
	defer rows.Close()

	events := []models.ProductEvent{}
	for rows.Next() {
		var event models.ProductEvent
		if err := rows.Scan(&event.ID, &event.ProductID, &event.Event, &event.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan product event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return events, nil
}

func expectOneRow(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}
