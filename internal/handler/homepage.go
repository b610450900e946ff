package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/safar/ar-storefront/internal/homepage"
)

func (h *Handler) GetHomepage(c echo.Context) error {
	return c.JSON(http.StatusOK, h.homepage.Load(c.Request().Context()))
}

func (h *Handler) SaveHomepage(c echo.Context) error {
	var content homepage.Content
	if err := c.Bind(&content); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	return c.JSON(http.StatusOK, h.homepage.Save(c.Request().Context(), &content))
}

func (h *Handler) HomepageInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, h.homepage.Info())
}

func (h *Handler) ResetHomepage(c echo.Context) error {
	return c.JSON(http.StatusOK, h.homepage.ResetDefaults(c.Request().Context()))
}

func (h *Handler) ClearHomepage(c echo.Context) error {
	if err := h.homepage.Clear(c.Request().Context()); err != nil {
		return respondErr(c, err, "clear homepage")
	}
	return c.JSON(http.StatusOK, echo.Map{"cleared": true})
}
