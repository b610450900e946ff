package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices leave the API as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	CompanyStatusActive    = "Active"
	CompanyStatusSuspended = "Suspended"

	PlanTrial = "Trial"
	PlanPaid  = "Paid"

	ProductStatusActive   = "Active"
	ProductStatusInactive = "Inactive"

	PlacementFloor = "floor"
	PlacementWall  = "wall"
	PlacementTable = "table"

	ProductEventCreated = "created"
	ProductEventUpdated = "updated"
	ProductEventDeleted = "deleted"
)

// MaxProductImages is the number of image slots a product has.
const MaxProductImages = 4

type Company struct {
	ID          int64     `json:"id"`
	ShopName    string    `json:"shop_name"`
	Subdomain   string    `json:"subdomain"`
	Description string    `json:"description"`
	Logo        string    `json:"logo"`
	Phone       string    `json:"phone"`
	WhatsApp    string    `json:"whatsapp"`
	Website     string    `json:"website"`
	Status      string    `json:"status"`
	Plan        string    `json:"plan"`
	JoinDate    time.Time `json:"join_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateCompanyData struct {
	ShopName    string `json:"shop_name"`
	Subdomain   string `json:"subdomain"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Phone       string `json:"phone"`
	WhatsApp    string `json:"whatsapp"`
	Website     string `json:"website"`
	Plan        string `json:"plan"`
	Status      string `json:"status"`
}

// ProductRecord is a products row joined with its company summary, exactly
// as stored. Asset fields hold storage keys.
type ProductRecord struct {
	ID            int64
	CompanyID     int64
	Name          string
	Description   string
	Price         decimal.Decimal
	DiscountPrice decimal.NullDecimal
	Category      string
	Images        [MaxProductImages]*string
	Dimensions    string
	Weight        string
	Material      string
	Color         string
	ARScale       decimal.Decimal
	ARPlacement   string
	HasAR         bool
	GLBFile       *string
	USDZFile      *string
	Featured      bool
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	CompanyName        string
	CompanySubdomain   string
	CompanyDescription string
	CompanyLogo        string
}

// CompanySummary is the company block nested in every product response.
type CompanySummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Subdomain   string `json:"subdomain"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}

// Product is the API shape of a product: prices resolved, asset keys
// replaced by signed URLs.
type Product struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Price              decimal.Decimal  `json:"price"`
	DiscountPrice      *decimal.Decimal `json:"discount_price,omitempty"`
	DiscountPercentage int64            `json:"discount_percentage"`
	EffectivePrice     decimal.Decimal  `json:"effective_price"`
	CompanyID          int64            `json:"company_id"`
	Company            CompanySummary   `json:"company"`
	Category           string           `json:"category"`
	Images             []string         `json:"images"`
	Image1             *string          `json:"image_1"`
	Image2             *string          `json:"image_2"`
	Image3             *string          `json:"image_3"`
	Image4             *string          `json:"image_4"`
	Dimensions         string           `json:"dimensions"`
	Weight             string           `json:"weight"`
	Material           string           `json:"material"`
	Color              string           `json:"color"`
	ARScale            decimal.Decimal  `json:"ar_scale"`
	ARPlacement        string           `json:"ar_placement"`
	HasAR              bool             `json:"has_ar"`
	GLBFile            *string          `json:"glb_file"`
	USDZFile           *string          `json:"usdz_file"`
	Featured           bool             `json:"featured"`
	Status             string           `json:"status"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

type CreateProductData struct {
	ShopID        int64            `json:"shop_id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Category      string           `json:"category"`
	Images        []string         `json:"images"`
	Dimensions    string           `json:"dimensions"`
	Weight        string           `json:"weight"`
	Material      string           `json:"material"`
	Color         string           `json:"color"`
	HasAR         bool             `json:"has_ar"`
	ARScale       *decimal.Decimal `json:"ar_scale,omitempty"`
	ARPlacement   string           `json:"ar_placement"`
	Featured      bool             `json:"featured"`
}

// ProductPatch carries the fields of a partial update. Nil fields are left
// untouched.
type ProductPatch struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`
	ClearDiscount bool             `json:"clear_discount"`
	Category      *string          `json:"category"`
	Dimensions    *string          `json:"dimensions"`
	Weight        *string          `json:"weight"`
	Material      *string          `json:"material"`
	Color         *string          `json:"color"`
	HasAR         *bool            `json:"has_ar"`
	ARScale       *decimal.Decimal `json:"ar_scale"`
	ARPlacement   *string          `json:"ar_placement"`
	Featured      *bool            `json:"featured"`
}

type ProductEvent struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
}

type DashboardStats struct {
	TotalProducts      int64 `json:"total_products"`
	ActiveProducts     int64 `json:"active_products"`
	ARProducts         int64 `json:"ar_products"`
	FeaturedProducts   int64 `json:"featured_products"`
	PendingARRequests  int64 `json:"pending_ar_requests"`
	ApprovedARRequests int64 `json:"approved_ar_requests"`
	RejectedARRequests int64 `json:"rejected_ar_requests"`
	TotalCompanies     int64 `json:"total_companies"`
}

func ValidPlacement(placement string) bool {
	switch placement {
	case PlacementFloor, PlacementWall, PlacementTable:
		return true
	}
	return false
}

func ValidCompanyStatus(status string) bool {
	return status == CompanyStatusActive || status == CompanyStatusSuspended
}

func ValidPlan(plan string) bool {
	return plan == PlanTrial || plan == PlanPaid
}
