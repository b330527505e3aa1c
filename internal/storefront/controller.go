package storefront

import (
	"fmt"

	"github.com/huydhb/greenfarm-backend/internal/cart"
	"github.com/huydhb/greenfarm-backend/internal/catalog"
	"github.com/huydhb/greenfarm-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

const CheckoutSuccessMessage = "Thanh toán thành công!"

// Settings are the per-deployment knobs every session controller shares.
type Settings struct {
	Quantity           cart.Bounds
	SuperSaleThreshold decimal.Decimal
}

// Controller is the state of one storefront session. Every mutation goes
// through a named operation. It is not safe for concurrent use.
type Controller struct {
	catalog      *catalog.Catalog
	settings     Settings
	section      enums.Section
	filter       catalog.Filter
	cartOpen     bool
	notification string
	ledger       *cart.Ledger
	selectedPost string
}

func NewController(cat *catalog.Catalog, settings Settings) *Controller {
	return &Controller{
		catalog:  cat,
		settings: settings,
		section:  enums.SectionHome,
		filter:   catalog.DefaultFilter(cat.Bounds(), settings.SuperSaleThreshold),
		ledger:   cart.NewLedger(settings.Quantity),
	}
}

func (c *Controller) SelectSection(section enums.Section) {
	c.section = section
}

// SelectCategory narrows the product section. An empty category selects all.
func (c *Controller) SelectCategory(category enums.ProductCategory) {
	c.filter.Category = category
}

// ApplyFilter replaces the filter state. The selected category is owned by
// SelectCategory and is kept.
func (c *Controller) ApplyFilter(f catalog.Filter) {
	f.Category = c.filter.Category
	if f.Sort == "" {
		f.Sort = enums.SortDefault
	}
	c.filter = f
}

// ResetFilters restores default order, all categories, the full price range,
// cleared flags and an empty query.
func (c *Controller) ResetFilters() {
	c.filter = catalog.DefaultFilter(c.catalog.Bounds(), c.settings.SuperSaleThreshold)
}

func (c *Controller) OpenCart() {
	c.cartOpen = true
}

func (c *Controller) CloseCart() {
	c.cartOpen = false
}

// AddToCart adds the product and posts the confirmation notification.
func (c *Controller) AddToCart(product catalog.Product, qty float64) cart.Line {
	line, added := c.ledger.Add(product, qty)
	c.notification = fmt.Sprintf("Đã thêm \"%s\" x%d vào giỏ hàng.", product.Name, added)
	return line
}

func (c *Controller) UpdateQuantity(productID string, qty float64) (cart.Line, bool) {
	return c.ledger.SetQuantity(productID, qty)
}

func (c *Controller) RemoveItem(productID string) bool {
	return c.ledger.Remove(productID)
}

// ClearCart empties the ledger without checking out.
func (c *Controller) ClearCart() {
	c.ledger.Clear()
}

// Checkout completes a non-empty cart: it posts the success notification,
// clears the ledger and closes the cart dialog. An empty cart is left as is
// and Checkout reports false.
func (c *Controller) Checkout() bool {
	if c.ledger.IsEmpty() {
		return false
	}
	c.notification = CheckoutSuccessMessage
	c.ledger.Clear()
	c.cartOpen = false
	return true
}

func (c *Controller) DismissNotification() {
	c.notification = ""
}

func (c *Controller) SelectPost(id string) {
	c.selectedPost = id
}

func (c *Controller) ClearPost() {
	c.selectedPost = ""
}

// VisibleProducts runs the current filter state over the catalog.
func (c *Controller) VisibleProducts() []catalog.Product {
	return c.catalog.Visible(c.filter)
}

func (c *Controller) Filter() catalog.Filter {
	return c.filter
}

func (c *Controller) Ledger() *cart.Ledger {
	return c.ledger
}

// Snapshot is the serialisable view of a session.
type Snapshot struct {
	Section      enums.Section         `json:"section"`
	Category     enums.ProductCategory `json:"category"`
	Title        string                `json:"title"`
	Banner       string                `json:"banner,omitempty"`
	Filter       catalog.Filter        `json:"filter"`
	CartOpen     bool                  `json:"cart_open"`
	Notification string                `json:"notification,omitempty"`
	Cart         cart.View             `json:"cart"`
	SelectedPost string                `json:"selected_post,omitempty"`
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Section:      c.section,
		Category:     c.filter.Category,
		Title:        catalog.SectionTitle(c.filter.Category),
		Banner:       c.filter.Category.Banner(),
		Filter:       c.filter,
		CartOpen:     c.cartOpen,
		Notification: c.notification,
		Cart:         cart.NewView(c.ledger),
		SelectedPost: c.selectedPost,
	}
}
