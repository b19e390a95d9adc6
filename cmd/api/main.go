package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/eonite/portal-backend/api/routes"
	"github.com/eonite/portal-backend/internal/cart"
	"github.com/eonite/portal-backend/internal/catalog"
	"github.com/eonite/portal-backend/internal/checkout"
	"github.com/eonite/portal-backend/internal/dashboard"
	"github.com/eonite/portal-backend/internal/discounts"
	"github.com/eonite/portal-backend/internal/inventory"
	"github.com/eonite/portal-backend/internal/orders"
	"github.com/eonite/portal-backend/internal/sequence"
	"github.com/eonite/portal-backend/pkg/config"
	"github.com/eonite/portal-backend/pkg/db"
	"github.com/eonite/portal-backend/pkg/i18n"
	"github.com/eonite/portal-backend/pkg/instance"
	"github.com/eonite/portal-backend/pkg/logger"
	"github.com/eonite/portal-backend/pkg/metrics"
	"github.com/eonite/portal-backend/pkg/migrate"
	"github.com/eonite/portal-backend/pkg/redis"
)

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
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, redisClient.Close())
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	deps, err := buildServices(cfg, logg, dbClient, redisClient, checkoutMetrics)
	if err != nil {
		return err
	}
	deps.Config = cfg
	deps.Logger = logg
	deps.Translator = i18n.New(cfg.App.DefaultLanguage)
	deps.DB = dbClient
	deps.Redis = redisClient
	deps.Registry = registry
	deps.HTTP = httpMetrics

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":           cfg.App.Env,
		"addr":          addr,
		"instance":      instance.GetID(),
		"number_source": cfg.Orders.NumberSource,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(logCtx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logg.Info(logg.WithField(logCtx, "signal", sig.String()), "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logg.Info(logCtx, "api server stopped")
	return nil
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client, checkoutMetrics *metrics.CheckoutMetrics) (routes.Dependencies, error) {
	gdb := dbClient.DB()
	now := time.Now

	catalogSvc, err := catalog.NewService(catalog.NewRepository(gdb), now)
	if err != nil {
		return routes.Dependencies{}, err
	}

	offerRepo := discounts.NewRepository(gdb)
	engine := discounts.NewEngine(offerRepo, checkoutMetrics)
	offersSvc, err := discounts.NewAdminService(offerRepo, dbClient)
	if err != nil {
		return routes.Dependencies{}, err
	}

	sessions, err := cart.NewRedisSessionStore(redisClient, cfg.Cart.SessionTTL)
	if err != nil {
		return routes.Dependencies{}, err
	}
	cartSvc, err := cart.NewService(cart.ServiceParams{
		Catalog:        catalogSvc,
		ClientProducts: cart.NewClientProductRepository(gdb),
		Sessions:       sessions,
		Discounts:      engine,
		Limiter:        redisClient,
		DiscountLimit: cart.DiscountLimit{
			Attempts: cfg.Cart.DiscountAttemptLimit,
			Window:   cfg.Cart.DiscountAttemptWindow,
		},
		Logger: logg,
		Now:    now,
	})
	if err != nil {
		return routes.Dependencies{}, err
	}

	orderRepo := orders.NewRepository(gdb)
	submitter, err := orders.NewSubmitter(orders.SubmitterParams{
		Repo:          orderRepo,
		Tx:            dbClient,
		Numbers:       numberAllocator(cfg, gdb, redisClient, checkoutMetrics),
		Transactional: cfg.Orders.SubmitTransactional,
		Logger:        logg,
		Metrics:       checkoutMetrics,
		Now:           now,
	})
	if err != nil {
		return routes.Dependencies{}, err
	}
	ordersSvc, err := orders.NewService(orderRepo, dbClient, now)
	if err != nil {
		return routes.Dependencies{}, err
	}

	checkoutSvc, err := checkout.NewService(cartSvc, submitter, ordersSvc, logg)
	if err != nil {
		return routes.Dependencies{}, err
	}

	inventorySvc, err := inventory.NewService(inventory.NewRepository(gdb), now)
	if err != nil {
		return routes.Dependencies{}, err
	}

	dashboardSvc, err := dashboard.NewService(dashboard.NewRepository(gdb), ordersSvc, inventorySvc)
	if err != nil {
		return routes.Dependencies{}, err
	}

	return routes.Dependencies{
		Catalog:   catalogSvc,
		Cart:      cartSvc,
		Checkout:  checkoutSvc,
		Orders:    ordersSvc,
		Inventory: inventorySvc,
		Offers:    offersSvc,
		Dashboard: dashboardSvc,
	}, nil
}

// numberAllocator picks the order number source. SQLite has no sequences so it
// always counts in Redis.
func numberAllocator(cfg *config.Config, gdb *gorm.DB, redisClient *redis.Client, m *metrics.CheckoutMetrics) sequence.Allocator {
	source := strings.ToLower(strings.TrimSpace(cfg.Orders.NumberSource))
	if source == config.OrderNumberSourceRedis || cfg.DB.IsSQLite() {
		return sequence.NewRedisAllocator(redisClient, cfg.Orders.NumberPrefix, cfg.Orders.NumberTimeout, m)
	}
	return sequence.NewPostgresAllocator(gdb, cfg.Orders.NumberPrefix, cfg.Orders.NumberTimeout, m)
}
