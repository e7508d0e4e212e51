package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/utafrali/storefront/pkg/config"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8090"`

	// Commerce gateway
	GatewayBaseURL     string        `env:"GATEWAY_BASE_URL" envDefault:"https://ecommerce.routemisr.com/api/v1"`
	GatewayTimeout     time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"15s"`
	GatewayTokenHeader string        `env:"GATEWAY_TOKEN_HEADER" envDefault:"token"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Sessions (default: 7 days)
	SessionTTLHours     int    `env:"SESSION_TTL_HOURS" envDefault:"168"`
	SessionHashKey      string `env:"SESSION_HASH_KEY" envDefault:""`
	SessionCookieSecure bool   `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	// Per-session store pairs are dropped after this much inactivity.
	StoreIdleMinutes int `env:"STORE_IDLE_MINUTES" envDefault:"30"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// OpenTelemetry
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`

	// Product listing
	ListingPageSize   int `env:"LISTING_PAGE_SIZE" envDefault:"12"`
	ListingFetchLimit int `env:"LISTING_FETCH_LIMIT" envDefault:"50"`

	// Cart behaviour
	OptimisticUpdates bool `env:"OPTIMISTIC_UPDATES" envDefault:"false"`

	// Checkout
	DiscountCodes     string `env:"DISCOUNT_CODES" envDefault:""`
	CheckoutReturnURL string `env:"CHECKOUT_RETURN_URL" envDefault:"http://localhost:3000/allorders"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128" envSeparator:","`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SessionTTL returns the session lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// StoreIdleTTL returns how long an unused store pair is kept.
func (c *Config) StoreIdleTTL() time.Duration {
	return time.Duration(c.StoreIdleMinutes) * time.Minute
}

// IsProduction reports whether the storefront runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	u, err := url.Parse(c.GatewayBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("GATEWAY_BASE_URL must be an absolute http(s) URL, got %q", c.GatewayBaseURL)
	}
	if c.GatewayTimeout <= 0 {
		return fmt.Errorf("GATEWAY_TIMEOUT must be positive")
	}
	if c.GatewayTokenHeader == "" {
		return fmt.Errorf("GATEWAY_TOKEN_HEADER is required")
	}

	if c.SessionTTLHours < 1 {
		return fmt.Errorf("SESSION_TTL_HOURS must be at least 1")
	}
	if c.IsProduction() && len(c.SessionHashKey) < 32 {
		return fmt.Errorf("SESSION_HASH_KEY must be at least 32 bytes in production")
	}
	if c.StoreIdleMinutes < 1 {
		return fmt.Errorf("STORE_IDLE_MINUTES must be at least 1")
	}

	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	if c.TraceSampleRate < 0 || c.TraceSampleRate > 1 {
		return fmt.Errorf("TRACE_SAMPLE_RATE must be between 0.0 and 1.0, got %v", c.TraceSampleRate)
	}

	if c.ListingPageSize < 1 || c.ListingPageSize > 100 {
		return fmt.Errorf("LISTING_PAGE_SIZE must be between 1 and 100, got %d", c.ListingPageSize)
	}
	if c.ListingFetchLimit < c.ListingPageSize {
		return fmt.Errorf("LISTING_FETCH_LIMIT (%d) must not be below LISTING_PAGE_SIZE (%d)", c.ListingFetchLimit, c.ListingPageSize)
	}
	return nil
}
