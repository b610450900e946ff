package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/safar/ar-storefront/internal/catalog"
	"github.com/safar/ar-storefront/internal/database"
	"github.com/safar/ar-storefront/internal/homepage"
	"github.com/safar/ar-storefront/internal/logger"
	"github.com/safar/ar-storefront/internal/models"
	"github.com/safar/ar-storefront/internal/store"
	"go.uber.org/zap"
)

// Catalog is the part of catalog.Service the HTTP layer uses.
type Catalog interface {
	GetCompanies(ctx context.Context) ([]models.Company, error)
	GetCompanyBySubdomain(ctx context.Context, subdomain string) (*models.Company, error)
	CreateCompany(ctx context.Context, data models.CreateCompanyData) (*models.Company, error)
	SetCompanyStatus(ctx context.Context, subdomain, status string) (*models.Company, error)

	GetProducts(ctx context.Context, companyID *int64) ([]models.Product, error)
	GetProductsBySubdomain(ctx context.Context, subdomain string) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	GetCompanyProduct(ctx context.Context, subdomain string, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, data models.CreateProductData) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListProductEvents(ctx context.Context, id int64) ([]models.ProductEvent, error)

	GetARRequests(ctx context.Context, shopID *int64, page, pageSize int) (*store.OffsetPage, error)
	CreateARRequest(ctx context.Context, productID, shopID int64) (*models.ARRequest, error)
	UpdateARRequest(ctx context.Context, id int64, status string) (*models.ARRequest, error)
	GetDashboardStats(ctx context.Context, shopID *int64) (*models.DashboardStats, error)

	UploadAsset(ctx context.Context, up catalog.Upload) (*catalog.UploadResult, error)
}

// UploadObserver counts uploads by kind and outcome.
type UploadObserver interface {
	ObserveUpload(kind string, err error)
}

type nopUploadObserver struct{}

func (nopUploadObserver) ObserveUpload(string, error) {}

// Pinger reports database reachability for /health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	catalog     Catalog
	homepage    *homepage.Store
	db          Pinger
	uploads     UploadObserver
	uploadLimit int64
}

func New(c Catalog, hp *homepage.Store, db Pinger, uploads UploadObserver) *Handler {
	if uploads == nil {
		uploads = nopUploadObserver{}
	}
	return &Handler{catalog: c, homepage: hp, db: db, uploads: uploads}
}

// WithUploadLimit caps the request body of uploads at maxBytes. Larger
// requests are answered with 413.
func (h *Handler) WithUploadLimit(maxBytes int64) *Handler {
	h.uploadLimit = maxBytes
	return h
}

// Register mounts every route on e. dataMiddleware wraps the routes that
// read or write the database.
func (h *Handler) Register(e *echo.Echo, dataMiddleware ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	api := e.Group("/api", dataMiddleware...)

	api.GET("/companies", h.ListCompanies)
	api.POST("/companies", h.CreateCompany)
	api.GET("/companies/:subdomain", h.GetCompany)
	api.PUT("/companies/:subdomain/status", h.SetCompanyStatus)
	api.GET("/companies/:subdomain/products/:id", h.GetCompanyProduct)

	api.GET("/products", h.ListProducts)
	api.POST("/products", h.CreateProduct)
	api.GET("/products/:id", h.GetProduct)
	api.PUT("/products/:id", h.UpdateProduct)
	api.DELETE("/products/:id", h.DeleteProduct)
	api.GET("/products/:id/events", h.ListProductEvents)

	api.GET("/ar-requests", h.ListARRequests)
	api.POST("/ar-requests", h.CreateARRequest)
	api.PUT("/ar-requests/:id", h.UpdateARRequest)

	api.GET("/dashboard/stats", h.DashboardStats)
	var uploadMiddleware []echo.MiddlewareFunc
	if h.uploadLimit > 0 {
		uploadMiddleware = append(uploadMiddleware, echomw.BodyLimit(strconv.FormatInt(h.uploadLimit, 10)))
	}
	api.POST("/upload", h.Upload, uploadMiddleware...)

	hp := e.Group("/api/homepage")
	hp.GET("", h.GetHomepage)
	hp.PUT("", h.SaveHomepage)
	hp.DELETE("", h.ClearHomepage)
	hp.GET("/info", h.HomepageInfo)
	hp.POST("/reset", h.ResetHomepage)
}

func (h *Handler) Health(c echo.Context) error {
	if h.db != nil {
		if err := h.db.PingContext(c.Request().Context()); err != nil {
			logger.FromEcho(c).Warn("Health check failed", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"status":   "degraded",
				"database": "down",
			})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"error": message})
}

// respondErr maps a domain error to a status code. Anything unrecognized is
// logged and reported as a generic 500.
func respondErr(c echo.Context, err error, action string) error {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		return respondError(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, database.ErrInvalidDiscount),
		errors.Is(err, database.ErrInvalidPlacement),
		errors.Is(err, database.ErrInvalidStatus),
		errors.Is(err, catalog.ErrInvalidAssetKind):
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, database.ErrCompanyNotFound):
		return respondError(c, http.StatusNotFound, "Company not found")
	case errors.Is(err, database.ErrProductNotFound):
		return respondError(c, http.StatusNotFound, "Product not found")
	case errors.Is(err, database.ErrARRequestNotFound):
		return respondError(c, http.StatusNotFound, "AR request not found")
	case errors.Is(err, database.ErrSubdomainTaken):
		return respondError(c, http.StatusConflict, "Subdomain already taken")
	case errors.Is(err, database.ErrInvalidTransition):
		return respondError(c, http.StatusConflict, err.Error())
	}

	logger.FromEcho(c).Error("Failed to "+action, zap.Error(err))
	return respondError(c, http.StatusInternalServerError, "Failed to "+action)
}

func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// optionalID parses a positive integer query parameter. Absent yields nil.
func optionalID(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, &catalog.ValidationError{Field: name, Message: "must be a positive integer"}
	}
	return &id, nil
}

func queryInt(c echo.Context, name string) int {
	n, _ := strconv.Atoi(c.QueryParam(name))
	return n
}
