package storage

import (
	"fmt"
	"path"
	"strings"
)

type ModelFormat string

const (
	ModelGLB  ModelFormat = "glb"
	ModelUSDZ ModelFormat = "usdz"
)

// ImageKey is the object key of image slot index (1-based) of a product.
func ImageKey(productID int64, index int, filename string) string {
	ext := extension(filename)
	return fmt.Sprintf("products/%d/images/product-%d-image-%d.%s", productID, productID, index, ext)
}

// ModelKey is the object key of the AR model of a product.
func ModelKey(productID int64, format ModelFormat) string {
	return fmt.Sprintf("products/%d/ar/product-%d-model.%s", productID, productID, format)
}

// ModelFormatOf reports the AR model format of an uploaded file name.
// Anything not ending in .glb is treated as USDZ.
func ModelFormatOf(filename string) ModelFormat {
	if strings.EqualFold(path.Ext(filename), ".glb") {
		return ModelGLB
	}
	return ModelUSDZ
}

func ImageContentType(filename string) string {
	ext := extension(filename)
	if ext == "jpg" {
		ext = "jpeg"
	}
	return "image/" + ext
}

func ModelContentType(format ModelFormat) string {
	if format == ModelGLB {
		return "model/gltf-binary"
	}
	return "model/vnd.usdz+zip"
}

// IsExternal reports whether a stored value is already a URL or a site path
// and must be served as is instead of being signed.
func IsExternal(key string) bool {
	return strings.HasPrefix(key, "http://") ||
		strings.HasPrefix(key, "https://") ||
		strings.HasPrefix(key, "/")
}

func extension(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		return "bin"
	}
	return ext
}
