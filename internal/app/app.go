package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/checkout"
	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/gateway/rest"
	handler "github.com/utafrali/storefront/internal/handler/http"
	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/internal/store"
	"github.com/utafrali/storefront/pkg/database"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/httpclient"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/tracing"
)

// evictInterval is how often idle store sessions are swept.
const evictInterval = time.Minute

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	registry       *store.Registry
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize tracing.
	tracingCfg := tracing.DefaultConfig("storefront")
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.OTLPEndpoint
	tracingCfg.SampleRate = cfg.TraceSampleRate
	tracingCfg.Enabled = cfg.TracingEnabled
	tracerShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize Redis client.
	redisCfg := database.DefaultRedisConfig()
	redisCfg.Addr = cfg.RedisAddr
	redisCfg.Password = cfg.RedisPass
	redisCfg.DB = cfg.RedisDB
	rdb, err := database.NewRedisClient(ctx, redisCfg)
	if err != nil {
		_ = tracerShutdown(context.Background())
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Commerce gateway client.
	httpCfg := httpclient.DefaultConfig(cfg.GatewayBaseURL)
	httpCfg.Timeout = cfg.GatewayTimeout
	httpCfg.TokenHeader = cfg.GatewayTokenHeader
	gw := rest.New(httpclient.New(httpCfg, logger), logger)
	logger.Info("commerce gateway configured", slog.String("base_url", cfg.GatewayBaseURL))

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("redis", database.RedisPinger(rdb))

	// Change notifications go to Kafka when enabled.
	var (
		producer *pkgkafka.Producer
		notifier store.Notifier = store.NopNotifier{}
	)
	if cfg.KafkaEnabled {
		producer = pkgkafka.NewProducer(cfg.KafkaBrokers, logger)
		notifier = event.NewNotifier(producer, logger)
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Build the dependency graph.
	registry := store.NewRegistry(gw, gw, logger, cfg.StoreIdleTTL(),
		store.WithNotifier(notifier),
		store.WithOptimistic(cfg.OptimisticUpdates),
		store.WithClearTimeout(cfg.GatewayTimeout),
	)

	discounts, err := checkout.ParseDiscounts(cfg.DiscountCodes)
	if err != nil {
		_ = rdb.Close()
		_ = tracerShutdown(context.Background())
		return nil, fmt.Errorf("parse discount codes: %w", err)
	}
	checkoutService := checkout.NewService(gw, discounts, cfg.CheckoutReturnURL, logger)

	cookies := session.NewCookieCodec("sid", []byte(cfg.SessionHashKey), cfg.SessionTTL(), cfg.SessionCookieSecure)
	if cfg.SessionHashKey == "" {
		logger.Warn("SESSION_HASH_KEY is not set, session cookies will not survive a restart")
	}
	sessions := session.NewManager(session.NewRedisStore(rdb, cfg.SessionTTL()), cookies, logger)

	// HTTP router.
	router := handler.NewRouter(cfg, gw, registry, checkoutService, sessions, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		rdb:            rdb,
		producer:       producer,
		registry:       registry,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and the idle-session sweeper and blocks until
// the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	var sweeper sync.WaitGroup
	sweeper.Add(1)
	go func() {
		defer sweeper.Done()
		a.registry.Run(sweepCtx, evictInterval)
	}()
	defer func() {
		stopSweep()
		sweeper.Wait()
	}()

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Let background cart clears finish before their notifier goes away.
	a.registry.Wait()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
