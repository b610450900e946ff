package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/safar/ar-storefront/internal/logger"
	"github.com/safar/ar-storefront/internal/models"
	"go.uber.org/zap"
)

func (h *Handler) ListCompanies(c echo.Context) error {
	companies, err := h.catalog.GetCompanies(c.Request().Context())
	if err != nil {
		return respondErr(c, err, "fetch companies")
	}
	return c.JSON(http.StatusOK, companies)
}

func (h *Handler) CreateCompany(c echo.Context) error {
	var req models.CreateCompanyData
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	company, err := h.catalog.CreateCompany(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err, "create company")
	}
	return c.JSON(http.StatusCreated, company)
}

// GetCompany returns a storefront: the company and its active products.
func (h *Handler) GetCompany(c echo.Context) error {
	ctx := c.Request().Context()
	subdomain := c.Param("subdomain")

	company, err := h.catalog.GetCompanyBySubdomain(ctx, subdomain)
	if err != nil {
		return respondErr(c, err, "fetch company")
	}

	products, err := h.catalog.GetProducts(ctx, &company.ID)
	if err != nil {
		return respondErr(c, err, "fetch company products")
	}

	logger.FromEcho(c).Debug("Storefront loaded",
		zap.String("subdomain", company.Subdomain),
		zap.Int("products", len(products)))

	return c.JSON(http.StatusOK, echo.Map{
		"company":  company,
		"products": products,
	})
}

func (h *Handler) SetCompanyStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	company, err := h.catalog.SetCompanyStatus(c.Request().Context(), c.Param("subdomain"), req.Status)
	if err != nil {
		return respondErr(c, err, "update company status")
	}
	return c.JSON(http.StatusOK, company)
}

func (h *Handler) GetCompanyProduct(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid product ID")
	}

	product, err := h.catalog.GetCompanyProduct(c.Request().Context(), c.Param("subdomain"), id)
	if err != nil {
		return respondErr(c, err, "fetch product")
	}
	return c.JSON(http.StatusOK, product)
}
