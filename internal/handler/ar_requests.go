package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ListARRequests(c echo.Context) error {
	shopID, err := optionalID(c, "shop_id")
	if err != nil {
		return respondErr(c, err, "fetch AR requests")
	}

	page, err := h.catalog.GetARRequests(c.Request().Context(), shopID,
		queryInt(c, "page"), queryInt(c, "page_size"))
	if err != nil {
		return respondErr(c, err, "fetch AR requests")
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) CreateARRequest(c echo.Context) error {
	var req struct {
		Product int64 `json:"product"`
		Shop    int64 `json:"shop"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	created, err := h.catalog.CreateARRequest(c.Request().Context(), req.Product, req.Shop)
	if err != nil {
		return respondErr(c, err, "create AR request")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateARRequest(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid AR request ID")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	updated, err := h.catalog.UpdateARRequest(c.Request().Context(), id, req.Status)
	if err != nil {
		return respondErr(c, err, "update AR request")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DashboardStats(c echo.Context) error {
	shopID, err := optionalID(c, "shop_id")
	if err != nil {
		return respondErr(c, err, "fetch dashboard stats")
	}

	stats, err := h.catalog.GetDashboardStats(c.Request().Context(), shopID)
	if err != nil {
		return respondErr(c, err, "fetch dashboard stats")
	}
	return c.JSON(http.StatusOK, stats)
}
