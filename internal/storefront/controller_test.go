package storefront

import (
	"testing"

	"github.com/huydhb/greenfarm-backend/internal/cart"
	"github.com/huydhb/greenfarm-backend/internal/catalog"
	"github.com/huydhb/greenfarm-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Product{
		{ID: "rau-muong", Category: enums.ProductCategoryVegetable, Name: "Rau muống", Price: decimal.NewFromInt(12000)},
		{ID: "ca-rot", Category: enums.ProductCategoryRoot, Name: "Cà rốt", Price: decimal.NewFromInt(20000), SalePrice: decPtr(15000)},
		{ID: "xoai", Category: enums.ProductCategoryFruit, Name: "Xoài cát", Price: decimal.NewFromInt(100000), SalePrice: decPtr(40000)},
	})
}

func testSettings() Settings {
	return Settings{Quantity: cart.Bounds{Min: 1, Max: 20}, SuperSaleThreshold: decimal.NewFromInt(50)}
}

func newTestController() *Controller {
	return NewController(testCatalog(), testSettings())
}

func TestNewControllerDefaults(t *testing.T) {
	c := newTestController()
	snap := c.Snapshot()

	assert.Equal(t, enums.SectionHome, snap.Section)
	assert.Equal(t, enums.ProductCategory(""), snap.Category)
	assert.Equal(t, "TẤT CẢ SẢN PHẨM", snap.Title)
	assert.False(t, snap.CartOpen)
	assert.Empty(t, snap.Notification)
	require.NotNil(t, snap.Filter.PriceMin)
	assert.True(t, snap.Filter.PriceMin.Equal(decimal.NewFromInt(12000)))
	assert.True(t, snap.Filter.PriceMax.Equal(decimal.NewFromInt(40000)))
	assert.Len(t, c.VisibleProducts(), 3)
}

func TestControllerSelectCategorySurvivesApplyFilter(t *testing.T) {
	c := newTestController()
	c.SelectCategory(enums.ProductCategoryFruit)
	c.ApplyFilter(catalog.Filter{Query: "xoai"})

	snap := c.Snapshot()
	assert.Equal(t, enums.ProductCategoryFruit, snap.Category)
	assert.Equal(t, "TRÁI CÂY", snap.Title)
	assert.Equal(t, "images/branding/banner-traicay.jpg", snap.Banner)
	assert.Equal(t, enums.SortDefault, snap.Filter.Sort)

	visible := c.VisibleProducts()
	require.Len(t, visible, 1)
	assert.Equal(t, "xoai", visible[0].ID)
}

func TestControllerResetFilters(t *testing.T) {
	c := newTestController()
	c.SelectCategory(enums.ProductCategoryRoot)
	c.ApplyFilter(catalog.Filter{
		Query:         "không có",
		PriceMin:      decPtr(1),
		PriceMax:      decPtr(2),
		DiscountOnly:  true,
		SuperSaleOnly: true,
		Sort:          enums.SortNameDesc,
	})
	require.Empty(t, c.VisibleProducts())

	c.ResetFilters()
	f := c.Filter()
	assert.Equal(t, enums.ProductCategory(""), f.Category)
	assert.Equal(t, "", f.Query)
	assert.False(t, f.DiscountOnly)
	assert.False(t, f.SuperSaleOnly)
	assert.Equal(t, enums.SortDefault, f.Sort)
	assert.True(t, f.PriceMin.Equal(decimal.NewFromInt(12000)))
	assert.True(t, f.PriceMax.Equal(decimal.NewFromInt(40000)))
	assert.Len(t, c.VisibleProducts(), 3)
}

func TestControllerAddToCartNotifies(t *testing.T) {
	c := newTestController()
	product, _ := testCatalog().Get("ca-rot")

	line := c.AddToCart(product, 2.9)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, `Đã thêm "Cà rốt" x2 vào giỏ hàng.`, c.Snapshot().Notification)

	c.AddToCart(product, -3)
	assert.Equal(t, `Đã thêm "Cà rốt" x1 vào giỏ hàng.`, c.Snapshot().Notification)
	assert.Equal(t, 3, c.Ledger().TotalQuantity())

	c.DismissNotification()
	assert.Empty(t, c.Snapshot().Notification)
}

func TestControllerUpdateAndRemove(t *testing.T) {
	c := newTestController()
	product, _ := testCatalog().Get("rau-muong")
	c.AddToCart(product, 1)

	line, ok := c.UpdateQuantity("rau-muong", 50)
	require.True(t, ok)
	assert.Equal(t, 20, line.Quantity, "clamped to max")

	line, ok = c.UpdateQuantity("rau-muong", 0)
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity, "zero is unreachable through quantity updates")

	assert.True(t, c.RemoveItem("rau-muong"))
	assert.False(t, c.RemoveItem("rau-muong"))
	assert.True(t, c.Ledger().IsEmpty())
}

func TestControllerCheckout(t *testing.T) {
	c := newTestController()
	c.OpenCart()

	assert.False(t, c.Checkout(), "empty cart is a no-op")
	assert.True(t, c.Snapshot().CartOpen)
	assert.Empty(t, c.Snapshot().Notification)

	product, _ := testCatalog().Get("xoai")
	c.AddToCart(product, 2)
	require.True(t, c.Checkout())

	snap := c.Snapshot()
	assert.Equal(t, CheckoutSuccessMessage, snap.Notification)
	assert.False(t, snap.CartOpen)
	assert.Equal(t, 0, snap.Cart.TotalQuantity)
	assert.True(t, snap.Cart.Subtotal.Value.IsZero())
}

func TestControllerSectionAndPost(t *testing.T) {
	c := newTestController()
	c.SelectSection(enums.SectionBlog)
	c.SelectPost("3")
	snap := c.Snapshot()
	assert.Equal(t, enums.SectionBlog, snap.Section)
	assert.Equal(t, "3", snap.SelectedPost)

	c.ClearPost()
	assert.Empty(t, c.Snapshot().SelectedPost)
}
