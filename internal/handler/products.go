package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/safar/ar-storefront/internal/middleware"
	"github.com/safar/ar-storefront/internal/models"
)

// ListProducts filters by ?subdomain, then ?shop_id, then the tenant of the
// request host, and otherwise lists every active product.
func (h *Handler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, err := optionalID(c, "shop_id")
	if err != nil {
		return respondErr(c, err, "fetch products")
	}

	var products []models.Product
	switch subdomain := c.QueryParam("subdomain"); {
	case subdomain != "":
		products, err = h.catalog.GetProductsBySubdomain(ctx, subdomain)
	case shopID != nil:
		products, err = h.catalog.GetProducts(ctx, shopID)
	case middleware.TenantFrom(c) != "":
		products, err = h.catalog.GetProductsBySubdomain(ctx, middleware.TenantFrom(c))
	default:
		products, err = h.catalog.GetProducts(ctx, nil)
	}
	if err != nil {
		return respondErr(c, err, "fetch products")
	}

	return c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid product ID")
	}

	product, err := h.catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err, "fetch product")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *Handler) CreateProduct(c echo.Context) error {
	var req models.CreateProductData
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err, "create product")
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid product ID")
	}

	var patch models.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	product, err := h.catalog.UpdateProduct(c.Request().Context(), id, patch)
	if err != nil {
		return respondErr(c, err, "update product")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid product ID")
	}

	if err := h.catalog.DeleteProduct(c.Request().Context(), id); err != nil {
		return respondErr(c, err, "delete product")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *Handler) ListProductEvents(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid product ID")
	}

	events, err := h.catalog.ListProductEvents(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err, "fetch product events")
	}
	return c.JSON(http.StatusOK, events)
}
