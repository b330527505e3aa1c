package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "GREENFARM"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv             = "GREENFARM_APP_ENV"
	EnvPort               = "GREENFARM_APP_PORT"
	EnvLogLevel           = "GREENFARM_LOG_LEVEL"
	EnvLogFormat          = "GREENFARM_LOG_FORMAT"
	EnvLogWarnStack       = "GREENFARM_LOG_WARN_STACK"
	EnvProductsSource     = "GREENFARM_PRODUCTS_SOURCE"
	EnvBlogsSource        = "GREENFARM_BLOGS_SOURCE"
	EnvFetchTimeout       = "GREENFARM_FETCH_TIMEOUT"
	EnvCartMinQuantity    = "GREENFARM_CART_MIN_QUANTITY"
	EnvCartMaxQuantity    = "GREENFARM_CART_MAX_QUANTITY"
	EnvSuperSaleThreshold = "GREENFARM_SUPER_SALE_THRESHOLD"
	EnvHomeSaleThreshold  = "GREENFARM_HOME_SUPER_SALE_THRESHOLD"
	EnvSessionTTL         = "GREENFARM_SESSION_TTL"
	EnvSessionSweep       = "GREENFARM_SESSION_SWEEP_INTERVAL"
	EnvRedisURL           = "GREENFARM_REDIS_URL"
	EnvRateLimitWindow    = "GREENFARM_RATE_LIMIT_WINDOW"
	EnvRateLimitRequests  = "GREENFARM_RATE_LIMIT_REQUESTS"
	EnvCORSOrigins        = "GREENFARM_CORS_ALLOWED_ORIGINS"
)

type Config struct {
	App       AppConfig
	Catalog   CatalogConfig
	Cart      CartConfig
	Sale      SaleConfig
	Session   SessionConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GREENFARM_APP_ENV" default:"dev"`
	Port         string `envconfig:"GREENFARM_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"GREENFARM_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"GREENFARM_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"GREENFARM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

// CatalogConfig points at the static JSON resources. Each source is a file
// path or an http(s) URL.
type CatalogConfig struct {
	ProductsSource string        `envconfig:"GREENFARM_PRODUCTS_SOURCE" default:"data/products.json"`
	BlogsSource    string        `envconfig:"GREENFARM_BLOGS_SOURCE" default:"data/blogs.json"`
	FetchTimeout   time.Duration `envconfig:"GREENFARM_FETCH_TIMEOUT" default:"10s"`
}

// CartConfig bounds quantities set through the quantity spinner. A zero
// MaxQuantity means unbounded.
type CartConfig struct {
	MinQuantity int `envconfig:"GREENFARM_CART_MIN_QUANTITY" default:"1"`
	MaxQuantity int `envconfig:"GREENFARM_CART_MAX_QUANTITY" default:"0"`
}

type SaleConfig struct {
	SuperSaleThreshold     float64 `envconfig:"GREENFARM_SUPER_SALE_THRESHOLD" default:"50"`
	HomeSuperSaleThreshold float64 `envconfig:"GREENFARM_HOME_SUPER_SALE_THRESHOLD" default:"80"`
}

type SessionConfig struct {
	TTL           time.Duration `envconfig:"GREENFARM_SESSION_TTL" default:"2h"`
	SweepInterval time.Duration `envconfig:"GREENFARM_SESSION_SWEEP_INTERVAL" default:"1m"`
}

// RedisConfig is optional. Without a URL the rate limiter is disabled and
// readiness does not depend on Redis.
type RedisConfig struct {
	URL          string        `envconfig:"GREENFARM_REDIS_URL"`
	PoolSize     int           `envconfig:"GREENFARM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GREENFARM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GREENFARM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GREENFARM_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"GREENFARM_REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type RateLimitConfig struct {
	Window   time.Duration `envconfig:"GREENFARM_RATE_LIMIT_WINDOW" default:"1m"`
	Requests int           `envconfig:"GREENFARM_RATE_LIMIT_REQUESTS" default:"120"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"GREENFARM_CORS_ALLOWED_ORIGINS" default:"*"`
}

func (c *Config) validate() error {
	if c.Cart.MinQuantity < 1 {
		return fmt.Errorf("%s must be at least 1", EnvCartMinQuantity)
	}
	if c.Cart.MaxQuantity != 0 && c.Cart.MaxQuantity < c.Cart.MinQuantity {
		return fmt.Errorf("%s must be 0 or >= %s", EnvCartMaxQuantity, EnvCartMinQuantity)
	}
	if c.Sale.SuperSaleThreshold < 0 || c.Sale.SuperSaleThreshold > 100 {
		return fmt.Errorf("%s must be within [0, 100]", EnvSuperSaleThreshold)
	}
	if c.Sale.HomeSuperSaleThreshold < 0 || c.Sale.HomeSuperSaleThreshold > 100 {
		return fmt.Errorf("%s must be within [0, 100]", EnvHomeSaleThreshold)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionTTL)
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionSweep)
	}
	return nil
}
