package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/cartoptions-backend/api/controllers"
	cartcontrollers "github.com/angelmondragon/cartoptions-backend/api/controllers/cart"
	"github.com/angelmondragon/cartoptions-backend/api/middleware"
	"github.com/angelmondragon/cartoptions-backend/internal/cart"
	"github.com/angelmondragon/cartoptions-backend/pkg/config"
	"github.com/angelmondragon/cartoptions-backend/pkg/logger"
	"github.com/angelmondragon/cartoptions-backend/pkg/redis"
)

// Deps carries the collaborators the router wires into handlers.
// Redis and Gatherer are optional.
type Deps struct {
	DB          controllers.Pinger
	Redis       *redis.Client
	Gatherer    prometheus.Gatherer
	CartService cart.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	readiness := map[string]controllers.Pinger{"db": deps.DB}
	var idempotencyStore redis.IdempotencyStore
	if deps.Redis != nil {
		readiness["redis"] = deps.Redis
		idempotencyStore = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Get("/api/docs/openapi.json", controllers.OpenAPIDocument(logg))

	r.Route("/api/v1/carts", func(r chi.Router) {
		idempotent := middleware.Idempotency(idempotencyStore, logg)

		r.With(idempotent).Post("/", cartcontrollers.CartCreate(deps.CartService, logg))
		r.Route("/{token}", func(r chi.Router) {
			r.Use(middleware.CartContext(logg))
			r.Get("/", cartcontrollers.CartFetch(deps.CartService, logg))
			r.With(idempotent).Post("/items", cartcontrollers.CartAddItem(deps.CartService, logg))
		})
	})

	return r
}
