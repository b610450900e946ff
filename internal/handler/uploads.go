package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/safar/ar-storefront/internal/catalog"
)

// Upload accepts multipart form fields file, productId, type (image or
// ar-model) and index (image slot, 1-4).
func (h *Handler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, http.StatusBadRequest, "No file provided")
	}

	productID, err := strconv.ParseInt(c.FormValue("productId"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid product ID")
	}

	index := 0
	if raw := c.FormValue("index"); raw != "" {
		if index, err = strconv.Atoi(raw); err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid image index")
		}
	}

	kind := catalog.AssetKind(c.FormValue("type"))
	if kind != catalog.AssetImage && kind != catalog.AssetARModel {
		return respondError(c, http.StatusBadRequest, "Invalid file type")
	}

	file, err := fh.Open()
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Unreadable file")
	}
	defer file.Close()

	result, err := h.catalog.UploadAsset(c.Request().Context(), catalog.Upload{
		ProductID: productID,
		Kind:      kind,
		Index:     index,
		Filename:  fh.Filename,
		Size:      fh.Size,
		Body:      file,
	})
	h.uploads.ObserveUpload(string(kind), err)
	if err != nil {
		return respondErr(c, err, "upload file")
	}

	return c.JSON(http.StatusOK, result)
}
