package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/huydhb/greenfarm-backend/api/routes"
	"github.com/huydhb/greenfarm-backend/internal/cart"
	"github.com/huydhb/greenfarm-backend/internal/staticdata"
	"github.com/huydhb/greenfarm-backend/internal/storefront"
	"github.com/huydhb/greenfarm-backend/pkg/config"
	"github.com/huydhb/greenfarm-backend/pkg/logger"
	"github.com/huydhb/greenfarm-backend/pkg/metrics"
	"github.com/huydhb/greenfarm-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storefrontMetrics := metrics.NewStorefrontMetrics(promReg)

	params := routes.Params{
		Config:      cfg,
		Logger:      logg,
		Gatherer:    promReg,
		HTTPMetrics: metrics.NewHTTPMetrics(promReg),
	}

	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		params.Redis = redisClient
		params.RateLimiter = redisClient
	} else {
		logg.Info(ctx, "redis not configured, rate limiting disabled")
	}

	loader := staticdata.NewLoader(staticdata.WithTimeout(cfg.Catalog.FetchTimeout))
	bundle, err := staticdata.LoadBundle(ctx, loader, staticdata.Sources{
		Products: cfg.Catalog.ProductsSource,
		Blogs:    cfg.Catalog.BlogsSource,
	}, logg, storefrontMetrics)
	if err != nil {
		logg.Error(ctx, "failed to load storefront data", err)
		os.Exit(1)
	}

	settings := storefront.Settings{
		Quantity:           cart.Bounds{Min: cfg.Cart.MinQuantity, Max: cfg.Cart.MaxQuantity},
		SuperSaleThreshold: decimal.NewFromFloat(cfg.Sale.SuperSaleThreshold),
	}
	registry, err := storefront.NewRegistry(storefront.RegistryParams{
		Logger: logg,
		NewController: func() *storefront.Controller {
			return storefront.NewController(bundle.Catalog, settings)
		},
		TTL:           cfg.Session.TTL,
		SweepInterval: cfg.Session.SweepInterval,
		Gauge:         storefrontMetrics,
		Sweeps:        metrics.NewJobMetrics(promReg),
	})
	if err != nil {
		logg.Error(ctx, "failed to create session registry", err)
		os.Exit(1)
	}

	storefrontService, err := storefront.NewService(storefront.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Products: bundle.Catalog,
		Posts:    bundle.Posts,
		Metrics:  storefrontMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create storefront service", err)
		os.Exit(1)
	}

	params.Catalog = bundle.Catalog
	params.Posts = bundle.Posts
	params.Storefront = storefrontService

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"products": bundle.Catalog.Len(),
		"posts":    bundle.Posts.Len(),
	})
	logg.Info(serverCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(params),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return registry.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logg.Info(serverCtx, "shutting down api server")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(serverCtx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
