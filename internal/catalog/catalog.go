package catalog

import (
	"github.com/huydhb/greenfarm-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Catalog is the product list loaded at startup. It is read-only after New
// and safe for concurrent use.
type Catalog struct {
	products []Product
	byID     map[string]int
	bounds   PriceRange
}

// PriceRange is an inclusive effective-price interval.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		if _, ok := c.byID[p.ID]; !ok {
			c.byID[p.ID] = i
		}
	}
	c.bounds = PriceBounds(c.products)
	return c
}

// Products returns a copy of the catalog in load order.
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

func (c *Catalog) Get(id string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Bounds() PriceRange {
	if c == nil {
		return PriceRange{}
	}
	return c.bounds
}

// Visible runs the filter engine over the catalog.
func (c *Catalog) Visible(f Filter) []Product {
	if c == nil {
		return []Product{}
	}
	return VisibleProducts(c.products, f)
}

// PriceBounds returns the min and max effective price, or 0/0 when empty.
func PriceBounds(products []Product) PriceRange {
	if len(products) == 0 {
		return PriceRange{Min: decimal.Zero, Max: decimal.Zero}
	}
	r := PriceRange{Min: products[0].EffectivePrice(), Max: products[0].EffectivePrice()}
	for _, p := range products[1:] {
		price := p.EffectivePrice()
		if price.LessThan(r.Min) {
			r.Min = price
		}
		if price.GreaterThan(r.Max) {
			r.Max = price
		}
	}
	return r
}

// DefaultFilter is the filter state a fresh or reset product section starts
// with: default order, every category, no query and the full price range.
func DefaultFilter(bounds PriceRange, superSaleThreshold decimal.Decimal) Filter {
	min, max := bounds.Min, bounds.Max
	return Filter{
		PriceMin:           &min,
		PriceMax:           &max,
		SuperSaleThreshold: superSaleThreshold,
		Sort:               enums.SortDefault,
	}
}

// Categories returns the tabs to render: the all tab followed by every tab
// whose category occurs in products, in fixed tab order.
func Categories(products []Product) []enums.CategoryTab {
	present := make(map[enums.ProductCategory]struct{})
	for _, p := range products {
		if p.Category != "" {
			present[p.Category] = struct{}{}
		}
	}
	tabs := make([]enums.CategoryTab, 0, len(enums.CategoryTabs))
	for _, tab := range enums.CategoryTabs {
		if tab.Value == "" {
			tabs = append(tabs, tab)
			continue
		}
		if _, ok := present[tab.Value]; ok {
			tabs = append(tabs, tab)
		}
	}
	return tabs
}

// SectionTitle is the product section heading for the selected category.
func SectionTitle(category enums.ProductCategory) string {
	if label := category.Label(); label != "" {
		return cases.Upper(language.Vietnamese).String(label)
	}
	return "TẤT CẢ SẢN PHẨM"
}

// HomeCollections groups the products highlighted on the home page.
type HomeCollections struct {
	FruitParty []Product
	SuperSale  []Product
	OnSale     []Product
}

// Collections builds the home page groups in catalog order.
func Collections(products []Product, superSaleThreshold decimal.Decimal) HomeCollections {
	out := HomeCollections{
		FruitParty: []Product{},
		SuperSale:  []Product{},
		OnSale:     []Product{},
	}
	for _, p := range products {
		if !p.HasDiscount() {
			continue
		}
		out.OnSale = append(out.OnSale, p)
		if p.Category == enums.ProductCategoryFruit {
			out.FruitParty = append(out.FruitParty, p)
		}
		if IsSuperSale(p, superSaleThreshold) {
			out.SuperSale = append(out.SuperSale, p)
		}
	}
	return out
}
