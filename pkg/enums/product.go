package enums

import "fmt"

// ProductCategory represents the canonical produce categories of the catalog.
type ProductCategory string

const (
	ProductCategoryVegetable ProductCategory = "rau"
	ProductCategoryRoot      ProductCategory = "cu"
	ProductCategoryMushroom  ProductCategory = "nam"
	ProductCategoryFruit     ProductCategory = "trai-cay"
	ProductCategoryTofu      ProductCategory = "dau-hu"
)

var validProductCategories = []ProductCategory{
	ProductCategoryVegetable,
	ProductCategoryRoot,
	ProductCategoryMushroom,
	ProductCategoryFruit,
	ProductCategoryTofu,
}

var productCategoryLabels = map[ProductCategory]string{
	ProductCategoryVegetable: "Rau xanh",
	ProductCategoryRoot:      "Củ, quả",
	ProductCategoryMushroom:  "Nấm tươi",
	ProductCategoryFruit:     "Trái cây",
	ProductCategoryTofu:      "Đậu hũ",
}

var productCategoryBanners = map[ProductCategory]string{
	ProductCategoryVegetable: "images/branding/banner-rau.jpg",
	ProductCategoryRoot:      "images/branding/banner-cu.jpg",
	ProductCategoryMushroom:  "images/branding/banner-nam.jpg",
	ProductCategoryFruit:     "images/branding/banner-traicay.jpg",
}

// CategoryTab is one entry of the product section tab strip. An empty Value
// selects every category.
type CategoryTab struct {
	Value ProductCategory `json:"value"`
	Label string          `json:"label"`
}

// CategoryTabs lists the tab strip in render order. Tofu has no tab.
var CategoryTabs = []CategoryTab{
	{Value: "", Label: "TẤT CẢ"},
	{Value: ProductCategoryVegetable, Label: "RAU"},
	{Value: ProductCategoryRoot, Label: "CỦ"},
	{Value: ProductCategoryMushroom, Label: "NẤM"},
	{Value: ProductCategoryFruit, Label: "TRÁI CÂY"},
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// Label returns the display label, or "" for unknown categories.
func (c ProductCategory) Label() string {
	return productCategoryLabels[c]
}

// Banner returns the default banner image for the category, if any.
func (c ProductCategory) Banner() string {
	return productCategoryBanners[c]
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// SortKey selects the ordering of the visible product list.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
	SortNameAsc   SortKey = "nameAsc"
	SortNameDesc  SortKey = "nameDesc"
)

var validSortKeys = []SortKey{
	SortDefault,
	SortPriceAsc,
	SortPriceDesc,
	SortNameAsc,
	SortNameDesc,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey. Empty input is the default order.
func ParseSortKey(value string) (SortKey, error) {
	if value == "" {
		return SortDefault, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
