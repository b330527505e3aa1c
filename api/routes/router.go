package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/huydhb/greenfarm-backend/api/controllers"
	"github.com/huydhb/greenfarm-backend/api/middleware"
	"github.com/huydhb/greenfarm-backend/internal/blog"
	"github.com/huydhb/greenfarm-backend/internal/catalog"
	"github.com/huydhb/greenfarm-backend/internal/storefront"
	"github.com/huydhb/greenfarm-backend/pkg/config"
	"github.com/huydhb/greenfarm-backend/pkg/logger"
	"github.com/huydhb/greenfarm-backend/pkg/metrics"
	"github.com/huydhb/greenfarm-backend/pkg/redis"
)

// Params carries everything the router wires into handlers. Redis and
// RateLimiter are nil when Redis is not configured.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	Redis       redis.Pinger
	RateLimiter redis.RateLimiter
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
	Catalog     *catalog.Catalog
	Posts       *blog.Store
	Storefront  storefront.Service
}

func NewRouter(p Params) http.Handler {
	cfg, logg := p.Config, p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	apiPolicy := middleware.NewRateLimitPolicy("api", cfg.RateLimit.Window, cfg.RateLimit.Requests)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.Redis, logg))
	})

	if p.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if p.RateLimiter != nil {
			r.Use(middleware.RateLimit(apiPolicy, p.RateLimiter, logg))
		}

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.CatalogProducts(p.Catalog, cfg.Sale, logg))
			r.Get("/products/{productId}", controllers.CatalogProduct(p.Catalog, logg))
			r.Get("/categories", controllers.CatalogCategories(p.Catalog))
			r.Get("/price-bounds", controllers.CatalogPriceBounds(p.Catalog))
		})
		r.Get("/home", controllers.Home(p.Catalog, cfg.Sale))

		r.Route("/blog", func(r chi.Router) {
			r.Get("/posts", controllers.BlogPosts(p.Posts))
			r.Get("/posts/{postId}", controllers.BlogPost(p.Posts, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Route("/session", func(r chi.Router) {
				r.Get("/", controllers.SessionState(p.Storefront, logg))
				r.Put("/section", controllers.SessionSelectSection(p.Storefront, logg))
				r.Put("/category", controllers.SessionSelectCategory(p.Storefront, logg))
				r.Put("/filters", controllers.SessionApplyFilter(p.Storefront, cfg.Sale, logg))
				r.Post("/filters/reset", controllers.SessionResetFilters(p.Storefront, logg))
				r.Get("/products", controllers.SessionProducts(p.Storefront, logg))
				r.Put("/cart-dialog", controllers.SessionCartDialog(p.Storefront, logg))
				r.Delete("/notification", controllers.SessionDismissNotification(p.Storefront, logg))
				r.Put("/post", controllers.SessionSelectPost(p.Storefront, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(p.Storefront, logg))
				r.Delete("/", controllers.CartClear(p.Storefront, logg))
				r.Post("/items", controllers.CartAddItem(p.Storefront, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(p.Storefront, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(p.Storefront, logg))
				r.Post("/checkout", controllers.CartCheckout(p.Storefront, logg))
			})
		})
	})

	return r
}
