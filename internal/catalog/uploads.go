package catalog

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"time"

	"github.com/safar/ar-storefront/internal/database"
	"github.com/safar/ar-storefront/internal/models"
	"github.com/safar/ar-storefront/internal/storage"
	"github.com/safar/ar-storefront/internal/store"
	"go.uber.org/zap"
)

type AssetKind string

const (
	AssetImage   AssetKind = "image"
	AssetARModel AssetKind = "ar-model"
)

type Upload struct {
	ProductID int64
	Kind      AssetKind
	// Index is the 1-based image slot; ignored for models.
	Index    int
	Filename string
	Size     int64
	Body     io.Reader
}

// UploadResult names the stored object. URL is nil when the object was saved
// but could not be signed; the upload itself still succeeded.
type UploadResult struct {
	URL *string `json:"url"`
	Key string  `json:"key"`
}

var ErrInvalidAssetKind = errors.New("invalid file type")

// UploadAsset stores a product image or AR model, points the product at the
// new object and returns a signed URL for it.
func (s *Service) UploadAsset(ctx context.Context, up Upload) (*UploadResult, error) {
	if up.Body == nil {
		return nil, invalid("file", "is required")
	}
	if up.ProductID <= 0 {
		return nil, invalid("productId", "is required")
	}

	var (
		key         string
		contentType string
		slot        store.AssetSlot
	)
	switch up.Kind {
	case AssetImage:
		if up.Index == 0 {
			up.Index = 1
		}
		var ok bool
		slot, ok = store.ImageSlot(up.Index)
		if !ok {
			return nil, invalid("index", "must be between 1 and %d", models.MaxProductImages)
		}
		key = storage.ImageKey(up.ProductID, up.Index, up.Filename)
		contentType = storage.ImageContentType(up.Filename)
	case AssetARModel:
		format := storage.ModelFormatOf(up.Filename)
		slot = store.SlotUSDZ
		if format == storage.ModelGLB {
			slot = store.SlotGLB
		}
		key = storage.ModelKey(up.ProductID, format)
		contentType = storage.ModelContentType(format)
	default:
		return nil, ErrInvalidAssetKind
	}

	start := time.Now()
	_, err := store.GetActiveProduct(ctx, s.db, up.ProductID)
	s.track("get_product", start, err)
	if err != nil {
		return nil, err
	}

	if err := s.uploader.Upload(ctx, key, up.Body, up.Size, contentType); err != nil {
		return nil, err
	}

	start = time.Now()
	err = database.WithTransaction(ctx, s.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		if err := store.SetProductAsset(ctx, tx, up.ProductID, slot, key); err != nil {
			return err
		}
		return store.RecordProductEvent(ctx, tx, up.ProductID, models.ProductEventUpdated)
	})
	s.track("set_product_asset", start, err)
	if err != nil {
		return nil, err
	}

	s.log.Info("Asset uploaded",
		zap.Int64("product_id", up.ProductID),
		zap.String("key", key),
		zap.Int64("size", up.Size))

	url := s.signer.Sign(ctx, key)
	if url == nil {
		s.log.Warn("Uploaded asset has no signed URL",
			zap.Int64("product_id", up.ProductID),
			zap.String("key", key))
	}
	return &UploadResult{URL: url, Key: key}, nil
}
