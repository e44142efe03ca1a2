package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medimarket/storefront-backend/api/controllers"
	"github.com/medimarket/storefront-backend/api/middleware"
	basketsvc "github.com/medimarket/storefront-backend/internal/basket"
	checkoutsvc "github.com/medimarket/storefront-backend/internal/checkout"
	orderssvc "github.com/medimarket/storefront-backend/internal/orders"
	ratingssvc "github.com/medimarket/storefront-backend/internal/ratings"
	"github.com/medimarket/storefront-backend/internal/sellers"
	"github.com/medimarket/storefront-backend/pkg/config"
	"github.com/medimarket/storefront-backend/pkg/logger"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	RedisP   controllers.Pinger
	Idem     middleware.IdempotencyStore
	Basket   basketsvc.Service
	Checkout checkoutsvc.Service
	Orders   orderssvc.Service
	Ratings  ratingssvc.Service
	Sellers  *sellers.Directory
	Gatherer prometheus.Gatherer
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
		middleware.CORS(d.Config.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Config))
		r.Get("/ready", controllers.HealthReady(d.Config, d.Logger, d.RedisP))
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middleware.Auth(d.Config.JWT, d.Logger),
			middleware.Idempotency(d.Idem, d.Logger),
		)

		r.Route("/basket", func(r chi.Router) {
			r.Get("/", controllers.BasketGet(d.Basket, d.Logger))
			r.Delete("/", controllers.BasketClear(d.Basket, d.Logger))
			r.Post("/items", controllers.BasketAddItem(d.Basket, d.Logger))
			r.Put("/items/{productID}", controllers.BasketUpdateQuantity(d.Basket, d.Logger))
			r.Delete("/items/{productID}", controllers.BasketRemoveItem(d.Basket, d.Logger))
		})

		r.Post("/checkout", controllers.Checkout(d.Checkout, d.Logger))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(d.Orders, d.Sellers, d.Logger))
			r.Get("/{orderID}", controllers.OrderGet(d.Orders, d.Logger))
			r.Put("/{orderID}/{action}", controllers.OrderTransition(d.Orders, d.Logger))
			r.Delete("/{orderID}", controllers.OrderDelete(d.Orders, d.Logger))
			r.Post("/{orderID}/ratings", controllers.OrderRate(d.Orders, d.Ratings, d.Logger))
		})
	})

	return r
}
