package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safar/ar-storefront/internal/database"
	"github.com/safar/ar-storefront/internal/models"
)

const companyColumns = `id, shop_name, subdomain, description, logo, phone, whatsapp, website,
		       status, plan, join_date, created_at, updated_at`

func scanCompany(row interface{ Scan(...any) error }, company *models.Company) error {
	return row.Scan(
		&company.ID,
		&company.ShopName,
		&company.Subdomain,
		&company.Description,
		&company.Logo,
		&company.Phone,
		&company.WhatsApp,
		&company.Website,
		&company.Status,
		&company.Plan,
		&company.JoinDate,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
}

func CreateCompany(ctx context.Context, db *sql.DB, data models.CreateCompanyData) (*models.Company, error) {
	company := &models.Company{}

	query := `
		INSERT INTO companies (shop_name, subdomain, description, logo, phone, whatsapp, website, plan, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + companyColumns

	row := db.QueryRowContext(ctx, query,
		data.ShopName, data.Subdomain, data.Description, data.Logo,
		data.Phone, data.WhatsApp, data.Website, data.Plan, data.Status)
	if err := scanCompany(row, company); err != nil {
		if translated := database.TranslateConstraint(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("create company: %w", err)
	}

	return company, nil
}

func GetCompanyBySubdomain(ctx context.Context, db *sql.DB, subdomain string) (*models.Company, error) {
	company := &models.Company{}

	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE subdomain = $1`

	if err := scanCompany(db.QueryRowContext(ctx, query, subdomain), company); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}

	return company, nil
}

// ListCompanies returns every company, newest first.
func ListCompanies(ctx context.Context, db *sql.DB) ([]models.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		var company models.Company
		if err := scanCompany(rows, &company); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, company)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return companies, nil
}

func SetCompanyStatus(ctx context.Context, db *sql.DB, subdomain, status string) (*models.Company, error) {
	company := &models.Company{}

	query := `
		UPDATE companies
		SET status = $1, updated_at = NOW()
		WHERE subdomain = $2
		RETURNING ` + companyColumns

	if err := scanCompany(db.QueryRowContext(ctx, query, status, subdomain), company); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("set company status: %w", err)
	}

	return company, nil
}
