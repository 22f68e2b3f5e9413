package tagging

import (
	"context"
	"sort"
	"strconv"

	"storefront-tagging/internal/domain"
)

// VariationSource provides the raw price rows of a product's variants.
type VariationSource interface {
	VariationPrices(ctx context.Context, parentID int64) ([]domain.VariationPrice, error)
}

// ConvertFunc adjusts a resolved variation price before formatting,
// e.g. for multi-currency stores. The default is identity.
type ConvertFunc func(price float64, productID int64) float64

// PriceNormalizer resolves a single comparable price per product. It
// memoizes variation rows per product id, so one instance must not
// outlive a single page render.
type PriceNormalizer struct {
	variations VariationSource
	convert    ConvertFunc
	cache      map[int64][]domain.VariationPrice
}

func NewPriceNormalizer(variations VariationSource, convert ConvertFunc) *PriceNormalizer {
	if convert == nil {
		convert = func(price float64, _ int64) float64 { return price }
	}
	return &PriceNormalizer{
		variations: variations,
		convert:    convert,
		cache:      make(map[int64][]domain.VariationPrice),
	}
}

// Resolve returns the formatted price of a product: the lowest variation
// price for products with variants, the calculated row price otherwise.
// wantList selects the undiscounted list price for variant-less products.
func (n *PriceNormalizer) Resolve(ctx context.Context, p *domain.Product, wantList bool) string {
	if p.HasVariations {
		return FormatPrice(n.lowestVariationPrice(ctx, p.ID))
	}
	return FormatPrice(calculatePrice(p, !wantList))
}

// lowestVariationPrice picks, per variant row, the special price when it
// is non-zero and strictly below the regular price, and returns the
// minimum candidate. An empty variant set yields 0.
func (n *PriceNormalizer) lowestVariationPrice(ctx context.Context, productID int64) float64 {
	rows, ok := n.cache[productID]
	if !ok {
		fetched, err := n.variations.VariationPrices(ctx, productID)
		if err != nil {
			fetched = nil
		}
		n.cache[productID] = fetched
		rows = fetched
	}

	prices := make([]float64, 0, len(rows))
	for _, row := range rows {
		if row.SpecialPrice != 0 && row.SpecialPrice < row.Price {
			prices = append(prices, row.SpecialPrice)
		} else {
			prices = append(prices, row.Price)
		}
	}
	sort.Float64s(prices)
	if len(prices) == 0 {
		prices = append(prices, 0)
	}

	return n.convert(prices[0], productID)
}

// calculatePrice is the row-level price calculation for products without
// variants: the special price applies when discounted prices are wanted
// and it undercuts the regular price.
func calculatePrice(p *domain.Product, discounted bool) float64 {
	if discounted && p.SpecialPrice > 0 && p.SpecialPrice < p.Price {
		return p.SpecialPrice
	}
	return p.Price
}

// FormatPrice renders a price with exactly two decimals, '.' as the
// decimal separator and no grouping, regardless of locale.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}
