package catalog

import (
	"strings"

	"github.com/huydhb/greenfarm-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Filter selects and orders the visible product list. Nil price bounds are
// unbounded. SuperSaleThreshold is a percent and is only read when
// SuperSaleOnly is set.
type Filter struct {
	Category           enums.ProductCategory `json:"category"`
	Query              string                `json:"query"`
	PriceMin           *decimal.Decimal      `json:"price_min,omitempty"`
	PriceMax           *decimal.Decimal      `json:"price_max,omitempty"`
	DiscountOnly       bool                  `json:"discount_only"`
	SuperSaleOnly      bool                  `json:"super_sale_only"`
	SuperSaleThreshold decimal.Decimal       `json:"super_sale_threshold"`
	Sort               enums.SortKey         `json:"sort"`
}

// VisibleProducts applies category, text, price, discount and super-sale
// filters in that order and then sorts. The input slice is never modified.
func VisibleProducts(products []Product, f Filter) []Product {
	out := make([]Product, 0, len(products))

	if f.PriceMin != nil && f.PriceMax != nil && f.PriceMin.GreaterThan(*f.PriceMax) {
		return out
	}

	query := ""
	if strings.TrimSpace(f.Query) != "" {
		query = Fold(f.Query)
	}

	for _, p := range products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if !inPriceRange(p.EffectivePrice(), f.PriceMin, f.PriceMax) {
			continue
		}
		if f.DiscountOnly && !p.HasDiscount() {
			continue
		}
		if f.SuperSaleOnly && !IsSuperSale(p, f.SuperSaleThreshold) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, f.Sort)
	return out
}

// IsSuperSale reports whether the discount strictly exceeds threshold percent.
// Products without a positive list price never qualify.
func IsSuperSale(p Product, threshold decimal.Decimal) bool {
	if !p.Price.IsPositive() {
		return false
	}
	return p.DiscountPercent().GreaterThan(threshold)
}

func matchesQuery(p Product, query string) bool {
	return strings.Contains(Fold(p.Name), query) ||
		strings.Contains(Fold(p.ShortDescription), query) ||
		strings.Contains(Fold(p.Description), query)
}

func inPriceRange(price decimal.Decimal, min, max *decimal.Decimal) bool {
	if min != nil && price.LessThan(*min) {
		return false
	}
	if max != nil && price.GreaterThan(*max) {
		return false
	}
	return true
}
