package catalog

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/safar/ar-storefront/internal/database"
	"github.com/safar/ar-storefront/internal/models"
	"github.com/safar/ar-storefront/internal/storage"
	"github.com/safar/ar-storefront/internal/store"
	"go.uber.org/zap"
)

// Uploader writes an object to the bucket.
type Uploader interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

// QueryObserver is told how long each database operation took.
type QueryObserver interface {
	ObserveQuery(operation string, elapsed time.Duration, err error)
}

type nopQueryObserver struct{}

func (nopQueryObserver) ObserveQuery(string, time.Duration, error) {}

type Dependencies struct {
	DB       *sql.DB
	Signer   *storage.Signer
	Uploader Uploader
	Observer QueryObserver
	Logger   *zap.Logger
}

// Service is the single entry point the HTTP layer uses for companies,
// products, AR requests and uploads. Every product it returns has already
// been through MapProduct.
type Service struct {
	db       *sql.DB
	signer   *storage.Signer
	uploader Uploader
	observer QueryObserver
	log      *zap.Logger
}

func NewService(deps Dependencies) *Service {
	s := &Service{
		db:       deps.DB,
		signer:   deps.Signer,
		uploader: deps.Uploader,
		observer: deps.Observer,
		log:      deps.Logger,
	}
	if s.observer == nil {
		s.observer = nopQueryObserver{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

func (s *Service) track(operation string, started time.Time, err error) {
	s.observer.ObserveQuery(operation, time.Since(started), err)
}

var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// ValidSubdomain reports whether s can be used as a tenant subdomain.
func ValidSubdomain(s string) bool {
	return subdomainPattern.MatchString(s)
}

func (s *Service) GetCompanies(ctx context.Context) ([]models.Company, error) {
	start := time.Now()
	companies, err := store.ListCompanies(ctx, s.db)
	s.track("list_companies", start, err)
	return companies, err
}

func (s *Service) GetCompanyBySubdomain(ctx context.Context, subdomain string) (*models.Company, error) {
	start := time.Now()
	company, err := store.GetCompanyBySubdomain(ctx, s.db, strings.ToLower(subdomain))
	s.track("get_company", start, err)
	return company, err
}

func (s *Service) CreateCompany(ctx context.Context, data models.CreateCompanyData) (*models.Company, error) {
	data.ShopName = strings.TrimSpace(data.ShopName)
	data.Subdomain = strings.ToLower(strings.TrimSpace(data.Subdomain))

	if data.ShopName == "" {
		return nil, invalid("shop_name", "is required")
	}
	if !ValidSubdomain(data.Subdomain) {
		return nil, invalid("subdomain", "must be 1-63 lowercase letters, digits or hyphens")
	}
	if data.Status == "" {
		data.Status = models.CompanyStatusActive
	} else if !models.ValidCompanyStatus(data.Status) {
		return nil, invalid("status", "must be %s or %s", models.CompanyStatusActive, models.CompanyStatusSuspended)
	}
	if data.Plan == "" {
		data.Plan = models.PlanTrial
	} else if !models.ValidPlan(data.Plan) {
		return nil, invalid("plan", "must be %s or %s", models.PlanTrial, models.PlanPaid)
	}

	start := time.Now()
	company, err := store.CreateCompany(ctx, s.db, data)
	s.track("create_company", start, err)
	if err != nil {
		return nil, err
	}

	s.log.Info("Company created",
		zap.Int64("company_id", company.ID),
		zap.String("subdomain", company.Subdomain))
	return company, nil
}

func (s *Service) SetCompanyStatus(ctx context.Context, subdomain, status string) (*models.Company, error) {
	if !models.ValidCompanyStatus(status) {
		return nil, database.ErrInvalidStatus
	}

	start := time.Now()
	company, err := store.SetCompanyStatus(ctx, s.db, strings.ToLower(subdomain), status)
	s.track("set_company_status", start, err)
	return company, err
}

// present maps records to API products, signing every distinct asset key of
// the batch in one bounded fan-out.
func (s *Service) present(ctx context.Context, records []models.ProductRecord) []models.Product {
	var keys []string
	for _, r := range records {
		keys = append(keys, assetKeys(r)...)
	}
	urls := s.signer.SignAll(ctx, keys)

	products := make([]models.Product, 0, len(records))
	for _, r := range records {
		products = append(products, MapProduct(r, urls))
	}
	return products
}

func (s *Service) presentOne(ctx context.Context, record *models.ProductRecord) *models.Product {
	p := s.present(ctx, []models.ProductRecord{*record})[0]
	return &p
}

// GetProducts lists active products, optionally for one company.
func (s *Service) GetProducts(ctx context.Context, companyID *int64) ([]models.Product, error) {
	start := time.Now()
	records, err := store.ListActiveProducts(ctx, s.db, companyID)
	s.track("list_products", start, err)
	if err != nil {
		return nil, err
	}
	return s.present(ctx, records), nil
}

// GetProductsBySubdomain lists a tenant's active products. An unknown
// subdomain yields an empty list.
func (s *Service) GetProductsBySubdomain(ctx context.Context, subdomain string) ([]models.Product, error) {
	company, err := s.GetCompanyBySubdomain(ctx, subdomain)
	if errors.Is(err, database.ErrCompanyNotFound) {
		return []models.Product{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.GetProducts(ctx, &company.ID)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	start := time.Now()
	record, err := store.GetActiveProduct(ctx, s.db, id)
	s.track("get_product", start, err)
	if err != nil {
		return nil, err
	}
	return s.presentOne(ctx, record), nil
}

// GetCompanyProduct returns a product only if it is active and belongs to
// the tenant with the given subdomain.
func (s *Service) GetCompanyProduct(ctx context.Context, subdomain string, id int64) (*models.Product, error) {
	start := time.Now()
	record, err := store.GetActiveCompanyProduct(ctx, s.db, strings.ToLower(subdomain), id)
	s.track("get_company_product", start, err)
	if err != nil {
		return nil, err
	}
	return s.presentOne(ctx, record), nil
}
