package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huydhb/greenfarm-backend/pkg/enums"
	"github.com/huydhb/greenfarm-backend/pkg/money"
	"github.com/huydhb/greenfarm-backend/pkg/types"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// DefaultImage is served for products without an image reference.
const DefaultImage = "images/branding/default-image.png"

var hundred = decimal.NewFromInt(100)

// Product is an immutable catalog entry.
type Product struct {
	ID               string
	Category         enums.ProductCategory
	Name             string
	ShortDescription string
	Description      string
	Price            decimal.Decimal
	SalePrice        *decimal.Decimal
	Image            string
}

// EffectivePrice is the sale price when it undercuts the list price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.HasDiscount() {
		return *p.SalePrice
	}
	return p.Price
}

// HasDiscount reports whether a sale price is set and lower than the list price.
func (p Product) HasDiscount() bool {
	return p.SalePrice != nil && p.SalePrice.LessThan(p.Price)
}

// DiscountPercent is (1 - salePrice/price) * 100, or zero when the product has
// no sale price or no positive list price. A sale price above the list price
// yields a negative value.
func (p Product) DiscountPercent() decimal.Decimal {
	if p.SalePrice == nil || !p.Price.IsPositive() {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).Sub(p.SalePrice.Div(p.Price)).Mul(hundred)
}

// Record is the on-disk shape of one products.json entry.
type Record struct {
	ID               types.FlexibleID `json:"id"`
	Category         string           `json:"category"`
	Name             string           `json:"name"`
	ShortDescription string           `json:"shortDescription"`
	Short            string           `json:"short"`
	Description      string           `json:"description"`
	Price            *decimal.Decimal `json:"price"`
	SalePrice        *decimal.Decimal `json:"salePrice"`
	Image            string           `json:"img"`
}

// FromRecords normalises raw records into products. It never drops a record
// silently: every repair is reported in the returned error, which aggregates
// warnings and does not mean the result is unusable.
func FromRecords(records []Record) ([]Product, error) {
	out := make([]Product, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	var warnings error

	for i, rec := range records {
		p := Product{
			ID:               rec.ID.String(),
			Category:         enums.ProductCategory(strings.TrimSpace(rec.Category)),
			Name:             rec.Name,
			ShortDescription: rec.ShortDescription,
			Description:      rec.Description,
			Price:            decimal.Zero,
			Image:            strings.TrimSpace(rec.Image),
		}
		if p.ShortDescription == "" {
			p.ShortDescription = rec.Short
		}
		if p.ID == "" {
			p.ID = rec.Name
		}
		if p.ID == "" {
			warnings = multierr.Append(warnings, fmt.Errorf("record %d: missing id and name, dropped", i))
			continue
		}
		if _, dup := seen[p.ID]; dup {
			warnings = multierr.Append(warnings, fmt.Errorf("record %d: duplicate id %q, dropped", i, p.ID))
			continue
		}
		seen[p.ID] = struct{}{}

		if rec.Price != nil {
			p.Price = *rec.Price
		}
		if p.Price.IsNegative() {
			warnings = multierr.Append(warnings, fmt.Errorf("product %q: negative price clamped to 0", p.ID))
			p.Price = decimal.Zero
		}
		if rec.SalePrice != nil {
			if rec.SalePrice.IsNegative() {
				warnings = multierr.Append(warnings, fmt.Errorf("product %q: negative sale price ignored", p.ID))
			} else {
				sale := *rec.SalePrice
				p.SalePrice = &sale
			}
		}
		if p.Category != "" && !p.Category.IsValid() {
			warnings = multierr.Append(warnings, fmt.Errorf("product %q: unknown category %q", p.ID, p.Category))
		}
		if p.Image == "" {
			p.Image = DefaultImage
		}
		out = append(out, p)
	}
	return out, warnings
}

// ProductView is the API representation of a product.
type ProductView struct {
	ID               string                `json:"id"`
	Category         enums.ProductCategory `json:"category"`
	CategoryLabel    string                `json:"category_label,omitempty"`
	Name             string                `json:"name"`
	ShortDescription string                `json:"short_description,omitempty"`
	Description      string                `json:"description,omitempty"`
	Image            string                `json:"img"`
	Price            money.Price           `json:"price"`
	SalePrice        *money.Price          `json:"sale_price,omitempty"`
	EffectivePrice   money.Price           `json:"effective_price"`
	HasDiscount      bool                  `json:"has_discount"`
	DiscountPercent  string                `json:"discount_percent,omitempty"`
}

func NewProductView(p Product) ProductView {
	view := ProductView{
		ID:               p.ID,
		Category:         p.Category,
		CategoryLabel:    p.Category.Label(),
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Image:            p.Image,
		Price:            money.NewPrice(p.Price),
		EffectivePrice:   money.NewPrice(p.EffectivePrice()),
		HasDiscount:      p.HasDiscount(),
	}
	if p.SalePrice != nil {
		sale := money.NewPrice(*p.SalePrice)
		view.SalePrice = &sale
	}
	if view.HasDiscount {
		view.DiscountPercent = p.DiscountPercent().StringFixed(1)
	}
	return view
}

func NewProductViews(products []Product) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductView(p))
	}
	return out
}

// DecodeRecords decodes each element independently so one malformed record
// does not discard the rest of the file.
func DecodeRecords(raw []json.RawMessage) ([]Record, error) {
	out := make([]Record, 0, len(raw))
	var warnings error
	for i, item := range raw {
		var rec Record
		if err := json.Unmarshal(item, &rec); err != nil {
			warnings = multierr.Append(warnings, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		out = append(out, rec)
	}
	return out, warnings
}
