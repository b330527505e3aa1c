package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/huydhb/greenfarm-backend/api/middleware"
	"github.com/huydhb/greenfarm-backend/api/responses"
	"github.com/huydhb/greenfarm-backend/api/validators"
	"github.com/huydhb/greenfarm-backend/internal/catalog"
	"github.com/huydhb/greenfarm-backend/internal/storefront"
	"github.com/huydhb/greenfarm-backend/pkg/config"
	"github.com/huydhb/greenfarm-backend/pkg/enums"
	pkgerrors "github.com/huydhb/greenfarm-backend/pkg/errors"
	"github.com/huydhb/greenfarm-backend/pkg/logger"
)

// sessionID pulls the id set by the session middleware. A missing id means
// the route was mounted without it.
func sessionID(r *http.Request) (string, error) {
	id := middleware.SessionIDFromContext(r.Context())
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return id, nil
}

func SessionState(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		snapshot, err := svc.Session(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

type selectSectionRequest struct {
	Section string `json:"section" validate:"required"`
}

func SessionSelectSection(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload selectSectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		section, err := enums.ParseSection(strings.TrimSpace(payload.Section))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid section").
				WithDetails(map[string]any{"field": "section"}))
			return
		}

		snapshot, err := svc.SelectSection(r.Context(), id, section)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

type selectCategoryRequest struct {
	Category string `json:"category"`
}

// SessionSelectCategory switches the category tab. An empty category selects
// every product.
func SessionSelectCategory(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload selectCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var category enums.ProductCategory
		if raw := strings.TrimSpace(payload.Category); raw != "" {
			category, err = enums.ParseProductCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category").
					WithDetails(map[string]any{"field": "category"}))
				return
			}
		}

		snapshot, err := svc.SelectCategory(r.Context(), id, category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

type applyFilterRequest struct {
	Query              string           `json:"query" validate:"max=200"`
	PriceMin           *decimal.Decimal `json:"price_min"`
	PriceMax           *decimal.Decimal `json:"price_max"`
	DiscountOnly       bool             `json:"discount_only"`
	SuperSaleOnly      bool             `json:"super_sale_only"`
	SuperSaleThreshold *decimal.Decimal `json:"super_sale_threshold"`
	Sort               string           `json:"sort"`
}

func (p applyFilterRequest) toFilter(defaultThreshold decimal.Decimal) (catalog.Filter, error) {
	sortKey, err := enums.ParseSortKey(strings.TrimSpace(p.Sort))
	if err != nil {
		return catalog.Filter{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort").
			WithDetails(map[string]any{"field": "sort"})
	}
	threshold := defaultThreshold
	if p.SuperSaleThreshold != nil {
		threshold = *p.SuperSaleThreshold
	}
	return catalog.Filter{
		Query:              validators.SanitizeString(p.Query, maxQueryLength),
		PriceMin:           p.PriceMin,
		PriceMax:           p.PriceMax,
		DiscountOnly:       p.DiscountOnly,
		SuperSaleOnly:      p.SuperSaleOnly,
		SuperSaleThreshold: threshold,
		Sort:               sortKey,
	}, nil
}

// SessionApplyFilter replaces the session's filter state. The category tab is
// left as selected.
func SessionApplyFilter(svc storefront.Service, sale config.SaleConfig, logg *logger.Logger) http.HandlerFunc {
	defaultThreshold := decimal.NewFromFloat(sale.SuperSaleThreshold)
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload applyFilterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter, err := payload.toFilter(defaultThreshold)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.ApplyFilter(r.Context(), id, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

func SessionResetFilters(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		snapshot, err := svc.ResetFilters(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

// SessionProducts lists the products visible under the session's category and
// filters.
func SessionProducts(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		snapshot, err := svc.Session(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products, err := svc.VisibleProducts(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductListResponse(snapshot.Category, products))
	}
}

type cartDialogRequest struct {
	Open *bool `json:"open" validate:"required"`
}

func SessionCartDialog(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartDialogRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.SetCartDialog(r.Context(), id, *payload.Open)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

func SessionDismissNotification(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		snapshot, err := svc.DismissNotification(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

type selectPostRequest struct {
	PostID string `json:"post_id"`
}

// SessionSelectPost opens a blog post, or returns to the list when post_id is
// empty.
func SessionSelectPost(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload selectPostRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.SelectPost(r.Context(), id, strings.TrimSpace(payload.PostID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}
