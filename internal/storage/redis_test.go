package storage

import (
	"context"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/safar/ar-storefront/internal/testutil"
)

func TestRedisCacheSharesSignedURLs(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	client := testutil.NewRedis(t)

	p := newFakePresigner()
	opts := SignerOptions{URLTTL: time.Hour, CacheTTL: time.Minute}

	// two signers on one redis behave like two service instances
	opts.Cache = NewRedisCache(client, "signed:")
	a := NewSigner(p, opts)
	opts.Cache = NewRedisCache(client, "signed:")
	b := NewSigner(p, opts)

	fixed := time.Date(2026, 4, 4, 4, 4, 0, 0, time.UTC)
	a.now = func() time.Time { return fixed }
	b.now = func() time.Time { return fixed }

	first := a.Sign(ctx, "products/3/images/product-3-image-1.png")
	second := b.Sign(ctx, "products/3/images/product-3-image-1.png")

	c.Assert(first, qt.IsNotNil)
	c.Assert(second, qt.IsNotNil)
	c.Assert(*second, qt.Equals, *first)
	c.Assert(p.callCount("products/3/images/product-3-image-1.png"), qt.Equals, 1)

	_, ok := NewRedisCache(client, "other:").Get(ctx, "products/3/images/product-3-image-1.png")
	c.Assert(ok, qt.IsFalse)
}
