package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safar/ar-storefront/internal/database"
	"github.com/safar/ar-storefront/internal/models"
)

const arRequestColumns = `id, product, shop, status, request_date, approved_date, rejected_date`

func scanARRequest(row interface{ Scan(...any) error }, req *models.ARRequest) error {
	return row.Scan(
		&req.ID,
		&req.Product,
		&req.Shop,
		&req.Status,
		&req.RequestDate,
		&req.ApprovedDate,
		&req.RejectedDate,
	)
}

// CreateARRequest opens a Pending request for an active product owned by
// shopID. A product that does not exist, is inactive or belongs to another
// shop yields ErrProductNotFound.
func CreateARRequest(ctx context.Context, db *sql.DB, productID, shopID int64) (*models.ARRequest, error) {
	req := &models.ARRequest{}

	query := `
		INSERT INTO ar_requests (product, shop, status)
		SELECT id, company_id, $3
		FROM products
		WHERE id = $1 AND company_id = $2 AND status = $4
		RETURNING ` + arRequestColumns

	row := db.QueryRowContext(ctx, query, productID, shopID, models.ARRequestPending, models.ProductStatusActive)
	if err := scanARRequest(row, req); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("create ar request: %w", err)
	}

	return req, nil
}

func GetARRequest(ctx context.Context, db *sql.DB, id int64) (*models.ARRequest, error) {
	req := &models.ARRequest{}

	query := `SELECT ` + arRequestColumns + ` FROM ar_requests WHERE id = $1`
	if err := scanARRequest(db.QueryRowContext(ctx, query, id), req); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrARRequestNotFound
		}
		return nil, fmt.Errorf("get ar request: %w", err)
	}

	return req, nil
}

// ListARRequests pages through requests newest first, optionally scoped to
// one shop.
func ListARRequests(ctx context.Context, db *sql.DB, shopID *int64, page, pageSize int) (*OffsetPage, error) {
	where := ""
	args := []any{}
	if shopID != nil {
		where = "WHERE shop = $1"
		args = append(args, *shopID)
	}

	var total int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ar_requests `+where, args...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count ar requests: %w", err)
	}

	offset := (page - 1) * pageSize
	n := len(args)
	query := fmt.Sprintf(`
		SELECT %s
		FROM ar_requests
		%s
		ORDER BY request_date DESC, id DESC
		LIMIT $%d OFFSET $%d`, arRequestColumns, where, n+1, n+2)

	rows, err := db.QueryContext(ctx, query, append(args, pageSize, offset)...)
	if err != nil {
		return nil, fmt.Errorf("list ar requests: %w", err)
	}
	defer rows.Close()

	requests := []models.ARRequest{}
	for rows.Next() {
		var req models.ARRequest
		if err := scanARRequest(rows, &req); err != nil {
			return nil, fmt.Errorf("scan ar request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return NewOffsetPage(requests, total, page, pageSize), nil
}

// TransitionARRequest moves a request to next, stamping the matching date.
// The current status is read under a row lock so concurrent reviewers cannot
// both leave Pending.
func TransitionARRequest(ctx context.Context, db *sql.DB, id int64, next models.ARRequestStatus) (*models.ARRequest, error) {
	var updated *models.ARRequest

	err := database.WithRetry(ctx, db, database.SerializableTxOptions(), func(tx *sql.Tx) error {
		var current models.ARRequestStatus
		err := tx.QueryRowContext(ctx,
			`SELECT status FROM ar_requests WHERE id = $1 FOR UPDATE`, id).Scan(&current)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return database.ErrARRequestNotFound
			}
			return fmt.Errorf("lock ar request: %w", err)
		}

		if !current.CanTransition(next) {
			return fmt.Errorf("%w: %s -> %s", database.ErrInvalidTransition, current, next)
		}

		stamp := ""
		switch next {
		case models.ARRequestApproved:
			stamp = ", approved_date = NOW()"
		case models.ARRequestRejected:
			stamp = ", rejected_date = NOW()"
		}

		req := &models.ARRequest{}
		row := tx.QueryRowContext(ctx,
			`UPDATE ar_requests SET status = $1`+stamp+` WHERE id = $2 RETURNING `+arRequestColumns,
			next, id)
		if err := scanARRequest(row, req); err != nil {
			return fmt.Errorf("update ar request: %w", err)
		}

		updated = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
