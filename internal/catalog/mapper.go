package catalog

import (
	"github.com/safar/ar-storefront/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountPercentage is the whole-number share of price taken off by
// discount. It is zero when there is no discount or no positive price.
func DiscountPercentage(price decimal.Decimal, discount decimal.NullDecimal) int64 {
	if !discount.Valid || !price.IsPositive() {
		return 0
	}
	return price.Sub(discount.Decimal).Div(price).Mul(hundred).Round(0).IntPart()
}

// EffectivePrice is what the customer pays.
func EffectivePrice(price decimal.Decimal, discount decimal.NullDecimal) decimal.Decimal {
	if discount.Valid {
		return discount.Decimal
	}
	return price
}

// assetKeys lists every stored key of a record that needs a URL.
func assetKeys(r models.ProductRecord) []string {
	keys := make([]string, 0, models.MaxProductImages+2)
	for _, img := range r.Images {
		if img != nil {
			keys = append(keys, *img)
		}
	}
	if r.GLBFile != nil {
		keys = append(keys, *r.GLBFile)
	}
	if r.USDZFile != nil {
		keys = append(keys, *r.USDZFile)
	}
	return keys
}

// MapProduct converts a stored row into its API shape. urls maps stored
// keys to the URLs served for them; a key missing from urls yields null.
func MapProduct(r models.ProductRecord, urls map[string]string) models.Product {
	resolve := func(key *string) *string {
		if key == nil || *key == "" {
			return nil
		}
		u, ok := urls[*key]
		if !ok {
			return nil
		}
		return &u
	}

	p := models.Product{
		ID:                 r.ID,
		Name:               r.Name,
		Description:        r.Description,
		Price:              r.Price,
		DiscountPercentage: DiscountPercentage(r.Price, r.DiscountPrice),
		EffectivePrice:     EffectivePrice(r.Price, r.DiscountPrice),
		CompanyID:          r.CompanyID,
		Company: models.CompanySummary{
			ID:          r.CompanyID,
			Name:        r.CompanyName,
			Subdomain:   r.CompanySubdomain,
			Description: r.CompanyDescription,
			Logo:        r.CompanyLogo,
		},
		Category:    r.Category,
		Images:      []string{},
		Dimensions:  r.Dimensions,
		Weight:      r.Weight,
		Material:    r.Material,
		Color:       r.Color,
		ARScale:     r.ARScale,
		ARPlacement: r.ARPlacement,
		HasAR:       r.HasAR,
		GLBFile:     resolve(r.GLBFile),
		USDZFile:    resolve(r.USDZFile),
		Featured:    r.Featured,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.DiscountPrice.Valid {
		d := r.DiscountPrice.Decimal
		p.DiscountPrice = &d
	}
	if p.ARScale.IsZero() {
		p.ARScale = decimal.NewFromInt(1)
	}
	if p.ARPlacement == "" {
		p.ARPlacement = models.PlacementFloor
	}

	slots := [models.MaxProductImages]**string{&p.Image1, &p.Image2, &p.Image3, &p.Image4}
	for i, key := range r.Images {
		u := resolve(key)
		*slots[i] = u
		if u != nil {
			p.Images = append(p.Images, *u)
		}
	}

	return p
}
