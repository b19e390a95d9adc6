package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eonite/portal-backend/api/controllers"
	cartcontrollers "github.com/eonite/portal-backend/api/controllers/cart"
	"github.com/eonite/portal-backend/api/middleware"
	"github.com/eonite/portal-backend/internal/cart"
	"github.com/eonite/portal-backend/internal/catalog"
	checkoutsvc "github.com/eonite/portal-backend/internal/checkout"
	"github.com/eonite/portal-backend/internal/dashboard"
	"github.com/eonite/portal-backend/internal/discounts"
	"github.com/eonite/portal-backend/internal/inventory"
	"github.com/eonite/portal-backend/internal/orders"
	"github.com/eonite/portal-backend/pkg/config"
	"github.com/eonite/portal-backend/pkg/enums"
	"github.com/eonite/portal-backend/pkg/i18n"
	"github.com/eonite/portal-backend/pkg/logger"
	"github.com/eonite/portal-backend/pkg/metrics"
	pkgredis "github.com/eonite/portal-backend/pkg/redis"
)

// RedisStore is the Redis surface the HTTP layer needs for idempotency and
// rate limiting.
type RedisStore interface {
	pkgredis.IdempotencyStore
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Ping(ctx context.Context) error
}

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config     *config.Config
	Logger     *logger.Logger
	Translator *i18n.Translator
	DB         controllers.Pinger
	Redis      RedisStore
	Registry   *prometheus.Registry
	HTTP       *metrics.HTTPMetrics

	Catalog   catalog.Service
	Cart      cart.Service
	Checkout  checkoutsvc.Service
	Orders    orders.Service
	Inventory inventory.Service
	Offers    discounts.AdminService
	Dashboard dashboard.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Locale(deps.Translator),
		middleware.Logging(logg, deps.HTTP),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readinessChecks(deps), logg))
	})

	if cfg.FeatureFlags.ExposeMetrics && deps.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{Registry: deps.Registry}))
	}

	var limiter interface {
		IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	}
	var idempotencyStore pkgredis.IdempotencyStore
	if deps.Redis != nil {
		limiter = deps.Redis
		idempotencyStore = deps.Redis
	}
	apiLimit := middleware.NewRateLimitPolicy("api", cfg.HTTP.RateLimitWindow, cfg.HTTP.RateLimitPerIP, 0)
	checkoutLimit := middleware.NewRateLimitPolicy("checkout", cfg.HTTP.RateLimitWindow, 0, cfg.HTTP.CheckoutPerClient)
	idempotency := middleware.Idempotency(idempotencyStore, cfg.Orders.IdempotencyTTL, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middleware.RateLimit(apiLimit, limiter, logg),
			middleware.Auth(cfg.JWT, logg),
		)

		r.Get("/catalog", controllers.CatalogList(deps.Catalog, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleClient, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.CartFetch(deps.Cart, logg))
				r.Delete("/", cartcontrollers.CartClear(deps.Cart, logg))
				r.Post("/items", cartcontrollers.CartAddItem(deps.Cart, logg))
				r.Patch("/items/{index}", cartcontrollers.CartSetQuantity(deps.Cart, logg))
				r.Delete("/items/{index}", cartcontrollers.CartRemoveItem(deps.Cart, logg))
				r.Post("/discount", cartcontrollers.CartApplyDiscount(deps.Cart, logg))
				r.Delete("/discount", cartcontrollers.CartRemoveDiscount(deps.Cart, logg))
			})

			r.Post("/checkout/preview", controllers.CheckoutPreview(deps.Checkout, logg))
			r.With(
				middleware.RateLimit(checkoutLimit, limiter, logg),
				idempotency,
			).Post("/checkout", controllers.Checkout(deps.Checkout, logg))

			r.Get("/orders", controllers.ClientOrders(deps.Orders, logg))
			r.Get("/orders/{orderId}", controllers.ClientOrderDetail(deps.Orders, logg))

			r.Get("/inventory", controllers.ClientInventory(deps.Inventory, logg))
			r.Put("/inventory/{inventoryId}/quantity", controllers.ClientInventoryQuantity(deps.Inventory, logg))
			r.Put("/client-products/{clientProductId}/declared-stock", controllers.ClientDeclaredStock(deps.Inventory, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleAdmin, logg))

			r.Get("/dashboard", controllers.AdminDashboard(deps.Dashboard, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrders(deps.Orders, logg))
				r.Get("/{orderId}", controllers.AdminOrderDetail(deps.Orders, logg))
				r.With(idempotency).Post("/{orderId}/status", controllers.AdminOrderStatus(deps.Orders, logg))
				r.Post("/{orderId}/progress", controllers.AdminOrderProgress(deps.Orders, logg))
				r.With(idempotency).Post("/{orderId}/payment", controllers.AdminOrderPayment(deps.Orders, logg))
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", controllers.AdminInventory(deps.Inventory, logg))
				r.With(idempotency).Post("/", controllers.AdminInventoryCreate(deps.Inventory, logg))
				r.Put("/{inventoryId}", controllers.AdminInventoryUpdate(deps.Inventory, logg))
			})

			r.Route("/offers", func(r chi.Router) {
				r.Get("/", controllers.AdminOffers(deps.Offers, logg))
				r.With(idempotency).Post("/", controllers.AdminOfferCreate(deps.Offers, logg))
				r.Post("/{offerId}/toggle", controllers.AdminOfferToggle(deps.Offers, logg))
				r.Delete("/{offerId}", controllers.AdminOfferDelete(deps.Offers, logg))
			})
		})
	})

	return r
}

func readinessChecks(deps Dependencies) map[string]controllers.Pinger {
	checks := map[string]controllers.Pinger{}
	if deps.DB != nil {
		checks["db"] = deps.DB
	}
	if deps.Redis != nil {
		checks["redis"] = deps.Redis
	}
	return checks
}
