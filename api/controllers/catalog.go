package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/huydhb/greenfarm-backend/api/responses"
	"github.com/huydhb/greenfarm-backend/api/validators"
	"github.com/huydhb/greenfarm-backend/internal/catalog"
	"github.com/huydhb/greenfarm-backend/pkg/config"
	"github.com/huydhb/greenfarm-backend/pkg/enums"
	pkgerrors "github.com/huydhb/greenfarm-backend/pkg/errors"
	"github.com/huydhb/greenfarm-backend/pkg/logger"
	"github.com/huydhb/greenfarm-backend/pkg/money"
)

const maxQueryLength = 200

type catalogReader interface {
	Products() []catalog.Product
	Get(id string) (catalog.Product, bool)
	Bounds() catalog.PriceRange
}

type productListResponse struct {
	Title  string                `json:"title"`
	Banner string                `json:"banner,omitempty"`
	Total  int                   `json:"total"`
	Items  []catalog.ProductView `json:"items"`
}

func newProductListResponse(category enums.ProductCategory, products []catalog.Product) productListResponse {
	return productListResponse{
		Title:  catalog.SectionTitle(category),
		Banner: category.Banner(),
		Total:  len(products),
		Items:  catalog.NewProductViews(products),
	}
}

// CatalogProducts lists the products matching the query string filters.
func CatalogProducts(cat catalogReader, sale config.SaleConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		filter, err := filterFromQuery(r, decimal.NewFromFloat(sale.SuperSaleThreshold))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products := catalog.VisibleProducts(cat.Products(), filter)
		responses.WriteSuccess(w, newProductListResponse(filter.Category, products))
	}
}

func filterFromQuery(r *http.Request, defaultThreshold decimal.Decimal) (catalog.Filter, error) {
	q := r.URL.Query()
	filter := catalog.Filter{
		Query:              validators.SanitizeString(q.Get("q"), maxQueryLength),
		SuperSaleThreshold: defaultThreshold,
	}

	if raw := strings.TrimSpace(q.Get("category")); raw != "" {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return catalog.Filter{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category").WithDetails(map[string]any{"field": "category"})
		}
		filter.Category = category
	}

	sortKey, err := enums.ParseSortKey(strings.TrimSpace(q.Get("sort")))
	if err != nil {
		return catalog.Filter{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort").WithDetails(map[string]any{"field": "sort"})
	}
	filter.Sort = sortKey

	if filter.PriceMin, err = validators.ParseQueryDecimal(r, "min_price"); err != nil {
		return catalog.Filter{}, err
	}
	if filter.PriceMax, err = validators.ParseQueryDecimal(r, "max_price"); err != nil {
		return catalog.Filter{}, err
	}
	if filter.DiscountOnly, err = validators.ParseQueryBool(r, "discount_only", false); err != nil {
		return catalog.Filter{}, err
	}
	if filter.SuperSaleOnly, err = validators.ParseQueryBool(r, "super_sale", false); err != nil {
		return catalog.Filter{}, err
	}

	threshold, err := validators.ParseQueryDecimal(r, "super_sale_threshold")
	if err != nil {
		return catalog.Filter{}, err
	}
	if threshold != nil {
		filter.SuperSaleThreshold = *threshold
	}

	return filter, nil
}

func CatalogProduct(cat catalogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		product, ok := cat.Get(productID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"product_id": productID}))
			return
		}

		responses.WriteSuccess(w, catalog.NewProductView(product))
	}
}

// CatalogCategories lists the category tabs present in the catalog.
func CatalogCategories(cat catalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var products []catalog.Product
		if cat != nil {
			products = cat.Products()
		}
		responses.WriteSuccess(w, catalog.Categories(products))
	}
}

type priceBoundsResponse struct {
	Min money.Price `json:"min"`
	Max money.Price `json:"max"`
}

func CatalogPriceBounds(cat catalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var bounds catalog.PriceRange
		if cat != nil {
			bounds = cat.Bounds()
		}
		responses.WriteSuccess(w, priceBoundsResponse{
			Min: money.NewPrice(bounds.Min),
			Max: money.NewPrice(bounds.Max),
		})
	}
}

type homeResponse struct {
	SuperSaleThreshold decimal.Decimal       `json:"super_sale_threshold"`
	FruitParty         []catalog.ProductView `json:"fruit_party"`
	SuperSale          []catalog.ProductView `json:"super_sale"`
	OnSale             []catalog.ProductView `json:"on_sale"`
}

// Home returns the product collections highlighted on the landing page.
func Home(cat catalogReader, sale config.SaleConfig) http.HandlerFunc {
	threshold := decimal.NewFromFloat(sale.HomeSuperSaleThreshold)
	return func(w http.ResponseWriter, r *http.Request) {
		var products []catalog.Product
		if cat != nil {
			products = cat.Products()
		}
		groups := catalog.Collections(products, threshold)
		responses.WriteSuccess(w, homeResponse{
			SuperSaleThreshold: threshold,
			FruitParty:         catalog.NewProductViews(groups.FruitParty),
			SuperSale:          catalog.NewProductViews(groups.SuperSale),
			OnSale:             catalog.NewProductViews(groups.OnSale),
		})
	}
}
