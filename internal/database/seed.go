package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// seedLockKey serializes concurrent seeders across processes.
const seedLockKey = 727001

type seedCompany struct {
	ShopName    string
	Subdomain   string
	Description string
	Phone       string
	WhatsApp    string
	Website     string
	Products    []seedProduct
}

type seedProduct struct {
	Name          string
	Description   string
	Price         int64
	DiscountPrice int64
	Category      string
	Image         string
	Dimensions    string
	Material      string
	Color         string
	HasAR         bool
	Featured      bool
}

var demoCompanies = []seedCompany{
	{
		ShopName:    "Demo Furniture Store",
		Subdomain:   "demo",
		Description: "Premium furniture with AR visualization",
		Phone:       "+91 98765 43210",
		WhatsApp:    "+91 98765 43210",
		Website:     "https://demo.localhost:3000",
		Products: []seedProduct{
			{
				Name:          "Modern Sofa",
				Description:   "Comfortable 3-seater sofa with premium fabric upholstery. Perfect for modern living rooms.",
				Price:         79900,
				DiscountPrice: 69900,
				Category:      "Furniture",
				Image:         "/placeholder.svg?height=400&width=600&text=Modern+Sofa",
				Dimensions:    "200cm × 90cm × 85cm",
				Material:      "Premium Fabric",
				Color:         "Charcoal Gray",
				HasAR:         true,
				Featured:      true,
			},
			{
				Name:          "Dining Table",
				Description:   "Elegant wooden dining table for 6 people. Crafted from solid oak wood.",
				Price:         65900,
				DiscountPrice: 59900,
				Category:      "Furniture",
				Image:         "/placeholder.svg?height=400&width=600&text=Dining+Table",
				Dimensions:    "180cm × 90cm × 75cm",
				Material:      "Solid Oak Wood",
				Color:         "Natural Brown",
				HasAR:         true,
				Featured:      true,
			},
			{
				Name:        "Office Chair",
				Description: "Ergonomic office chair with lumbar support and adjustable height.",
				Price:       24900,
				Category:    "Furniture",
				Image:       "/placeholder.svg?height=400&width=600&text=Office+Chair",
				Dimensions:  "65cm × 65cm × 110cm",
				Material:    "Mesh & Plastic",
				Color:       "Black",
				HasAR:       true,
			},
			{
				Name:          "Coffee Table",
				Description:   "Stylish glass-top coffee table with wooden legs.",
				Price:         18900,
				DiscountPrice: 16900,
				Category:      "Furniture",
				Image:         "/placeholder.svg?height=400&width=600&text=Coffee+Table",
				Dimensions:    "120cm × 60cm × 45cm",
				Material:      "Glass & Wood",
				Color:         "Clear & Natural",
				HasAR:         true,
			},
		},
	},
	{
		ShopName:    "Modern Electronics",
		Subdomain:   "electronics",
		Description: "Latest gadgets and electronics",
		Phone:       "+91 98765 43211",
		WhatsApp:    "+91 98765 43211",
		Website:     "https://electronics.localhost:3000",
		Products: []seedProduct{
			{
				Name:          "iPhone 15 Pro",
				Description:   "Latest iPhone with advanced camera system and A17 Pro chip.",
				Price:         134900,
				DiscountPrice: 129900,
				Category:      "Smartphones",
				Image:         "/placeholder.svg?height=400&width=600&text=iPhone+15+Pro",
				Dimensions:    "14.67cm × 7.09cm × 0.83cm",
				Material:      "Titanium",
				Color:         "Natural Titanium",
				HasAR:         true,
				Featured:      true,
			},
			{
				Name:        "MacBook Air M3",
				Description: "Ultra-thin laptop with M3 chip and all-day battery life.",
				Price:       114900,
				Category:    "Laptops",
				Image:       "/placeholder.svg?height=400&width=600&text=MacBook+Air+M3",
				Dimensions:  "30.41cm × 21.5cm × 1.13cm",
				Material:    "Aluminum",
				Color:       "Space Gray",
				HasAR:       true,
				Featured:    true,
			},
		},
	},
	{
		ShopName:    "Fashion Hub",
		Subdomain:   "fashion",
		Description: "Trendy clothing and accessories",
		Phone:       "+91 98765 43212",
		WhatsApp:    "+91 98765 43212",
		Website:     "https://fashion.localhost:3000",
		Products: []seedProduct{
			{
				Name:          "Designer T-Shirt",
				Description:   "Premium cotton t-shirt with modern design.",
				Price:         2999,
				DiscountPrice: 2499,
				Category:      "Clothing",
				Image:         "/placeholder.svg?height=400&width=600&text=Designer+T-Shirt",
				Material:      "Premium Cotton",
				Color:         "Navy Blue",
				Featured:      true,
			},
			{
				Name:          "Leather Jacket",
				Description:   "Genuine leather jacket with classic styling.",
				Price:         12999,
				DiscountPrice: 10999,
				Category:      "Clothing",
				Image:         "/placeholder.svg?height=400&width=600&text=Leather+Jacket",
				Material:      "Genuine Leather",
				Color:         "Black",
				Featured:      true,
			},
		},
	},
}

// Seed inserts the demo companies and products when the companies table is
// empty. It reports whether anything was inserted.
func Seed(ctx context.Context, db *sql.DB) (bool, error) {
	seeded := false

	err := WithTransaction(ctx, db, DefaultTxOptions(), func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
			return fmt.Errorf("acquire seed lock: %w", err)
		}

		var count int64
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count); err != nil {
			return fmt.Errorf("count companies: %w", err)
		}
		if count > 0 {
			return nil
		}

		for _, company := range demoCompanies {
			var companyID int64
			err := tx.QueryRowContext(ctx,
				`INSERT INTO companies (shop_name, subdomain, description, phone, whatsapp, website)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 RETURNING id`,
				company.ShopName, company.Subdomain, company.Description,
				company.Phone, company.WhatsApp, company.Website).Scan(&companyID)
			if err != nil {
				return fmt.Errorf("seed company %s: %w", company.Subdomain, err)
			}

			for _, product := range company.Products {
				var discount *decimal.Decimal
				if product.DiscountPrice > 0 {
					d := decimal.NewFromInt(product.DiscountPrice)
					discount = &d
				}

				_, err := tx.ExecContext(ctx,
					`INSERT INTO products (name, description, price, discount_price, company_id, category,
					                       image_1, dimensions, material, color, has_ar, featured)
					 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
					product.Name, product.Description, decimal.NewFromInt(product.Price), discount,
					companyID, product.Category, product.Image, product.Dimensions,
					product.Material, product.Color, product.HasAR, product.Featured)
				if err != nil {
					return fmt.Errorf("seed product %s: %w", product.Name, err)
				}
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return seeded, nil
}

// DemoSubdomains returns the subdomains created by Seed.
func DemoSubdomains() []string {
	out := make([]string, 0, len(demoCompanies))
	for _, company := range demoCompanies {
		out = append(out, company.Subdomain)
	}
	return out
}
