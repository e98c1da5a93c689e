package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/mytheresa/stock-tracker/app/categories"
	"github.com/mytheresa/stock-tracker/app/health"
	"github.com/mytheresa/stock-tracker/app/inventory"
	"github.com/mytheresa/stock-tracker/app/middleware"
	"github.com/mytheresa/stock-tracker/app/products"
	"github.com/mytheresa/stock-tracker/models"
	"github.com/mytheresa/stock-tracker/pkg/colors"
	"github.com/mytheresa/stock-tracker/pkg/config"
	"github.com/mytheresa/stock-tracker/pkg/db"
	"github.com/mytheresa/stock-tracker/pkg/logger"
	"github.com/mytheresa/stock-tracker/pkg/metrics"
)

// Deps carries what the router needs beyond configuration.
// Registry and Gatherer may be nil when metrics are disabled.
type Deps struct {
	DB          *gorm.DB
	Pinger      db.Pinger
	Registry    prometheus.Registerer
	Gatherer    prometheus.Gatherer
	ColorSource colors.Source
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	categoriesRepo := models.NewCategoriesRepository(deps.DB)
	productsRepo := models.NewProductsRepository(deps.DB)

	var (
		httpMetrics      *metrics.HTTPMetrics
		inventoryMetrics *metrics.InventoryMetrics
	)
	if cfg.FeatureFlags.MetricsEnabled && deps.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(deps.Registry)
		inventoryMetrics = metrics.NewInventoryMetrics(deps.Registry)
	}

	inventoryHandler := inventory.NewInventoryHandler(categoriesRepo, logg)
	categoryHandler := categories.NewCategoryHandler(categoriesRepo, logg, inventoryMetrics)
	if deps.ColorSource != nil {
		categoryHandler.WithColorSource(deps.ColorSource)
	}
	productHandler := products.NewProductHandler(productsRepo, categoriesRepo, logg)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
	}
	r.Use(middleware.CORS(cfg.HTTP.CORSAllowedOrigins))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", health.HandleLive)
		r.Get("/ready", health.HandleReady(deps.Pinger, logg))
	})

	if httpMetrics != nil && deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/data", inventoryHandler.HandleGetData)
		r.Get("/alerts", inventoryHandler.HandleGetAlerts)

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", categoryHandler.HandleCreate)
			r.Put("/{id}", categoryHandler.HandleUpdate)
			r.Delete("/{id}", categoryHandler.HandleDelete)
			r.Put("/{id}/threshold", categoryHandler.HandleUpdateThreshold)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", productHandler.HandleCreate)
			r.Put("/{id}", productHandler.HandleUpdate)
			r.Delete("/{id}", productHandler.HandleDelete)
		})
	})

	return r
}
