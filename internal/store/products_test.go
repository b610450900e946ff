package store

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/safar/ar-storefront/internal/models"
	"github.com/shopspring/decimal"
)

func TestBuildProductUpdate(t *testing.T) {
	c := qt.New(t)

	price := decimal.RequireFromString("120.50")
	name := "Oak Table"
	query, args := BuildProductUpdate(7, models.ProductPatch{Name: &name, Price: &price})

	c.Assert(query, qt.Equals,
		`UPDATE products SET name = $1, price = $2, updated_at = NOW() WHERE id = $3 AND status = $4`)
	c.Assert(args, qt.HasLen, 4)
	c.Assert(args[0], qt.Equals, "Oak Table")
	c.Assert(args[1].(decimal.Decimal).Equal(price), qt.IsTrue)
	c.Assert(args[2], qt.Equals, int64(7))
	c.Assert(args[3], qt.Equals, models.ProductStatusActive)
}

func TestBuildProductUpdateEmptyPatchOnlyTouchesTimestamp(t *testing.T) {
	query, args := BuildProductUpdate(3, models.ProductPatch{})

	qt.Assert(t, query, qt.Equals,
		`UPDATE products SET updated_at = NOW() WHERE id = $1 AND status = $2`)
	qt.Assert(t, args, qt.DeepEquals, []any{int64(3), models.ProductStatusActive})
}

func TestBuildProductUpdateClearDiscountWins(t *testing.T) {
	discount := decimal.NewFromInt(10)
	query, args := BuildProductUpdate(1, models.ProductPatch{DiscountPrice: &discount, ClearDiscount: true})

	qt.Assert(t, query, qt.Equals,
		`UPDATE products SET discount_price = $1, updated_at = NOW() WHERE id = $2 AND status = $3`)
	qt.Assert(t, args[0], qt.IsNil)
}

func TestImageSlot(t *testing.T) {
	c := qt.New(t)

	for i, want := range []AssetSlot{SlotImage1, SlotImage2, SlotImage3, SlotImage4} {
		slot, ok := ImageSlot(i + 1)
		c.Assert(ok, qt.IsTrue)
		c.Assert(slot, qt.Equals, want)
	}

	for _, index := range []int{0, -1, 5} {
		_, ok := ImageSlot(index)
		c.Assert(ok, qt.IsFalse, qt.Commentf("index %d", index))
	}
}

func TestPagination(t *testing.T) {
	c := qt.New(t)

	page, size := NormalizePage(0, 0)
	c.Assert(page, qt.Equals, 1)
	c.Assert(size, qt.Equals, DefaultPageSize)

	page, size = NormalizePage(3, MaxPageSize+1)
	c.Assert(page, qt.Equals, 3)
	c.Assert(size, qt.Equals, DefaultPageSize)

	p := NewOffsetPage([]int{1, 2}, 41, 1, 20)
	c.Assert(p.TotalPages, qt.Equals, 3)

	p = NewOffsetPage([]int{}, 0, 1, 20)
	c.Assert(p.TotalPages, qt.Equals, 0)
}
