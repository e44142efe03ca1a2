package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/medimarket/storefront-backend/api/routes"
	basketsvc "github.com/medimarket/storefront-backend/internal/basket"
	checkoutsvc "github.com/medimarket/storefront-backend/internal/checkout"
	orderssvc "github.com/medimarket/storefront-backend/internal/orders"
	ratingssvc "github.com/medimarket/storefront-backend/internal/ratings"
	"github.com/medimarket/storefront-backend/internal/sellers"
	"github.com/medimarket/storefront-backend/pkg/backend"
	"github.com/medimarket/storefront-backend/pkg/cache"
	"github.com/medimarket/storefront-backend/pkg/config"
	"github.com/medimarket/storefront-backend/pkg/logger"
	"github.com/medimarket/storefront-backend/pkg/metrics"
	"github.com/medimarket/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	backendClient, err := backend.NewClient(cfg.Backend, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build backend client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	transitionMetrics := metrics.NewTransitionMetrics(registry)

	basketStore, err := basketsvc.NewRedisStore(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build basket store", err)
		os.Exit(1)
	}
	basketService, err := basketsvc.NewService(basketStore)
	if err != nil {
		logg.Error(context.Background(), "failed to build basket service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(basketService, backendClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build checkout service", err)
		os.Exit(1)
	}

	ordersService, err := orderssvc.NewService(backendClient, logg, transitionMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to build orders service", err)
		os.Exit(1)
	}

	ratingsService, err := ratingssvc.NewService(backendClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build ratings service", err)
		os.Exit(1)
	}

	sellerDirectory, err := sellers.NewDirectory(backendClient, cache.NewRedisStore(redisClient), redisClient.SellerKey, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build seller directory", err)
		os.Exit(1)
	}

	handler := routes.NewRouter(routes.Deps{
		Config:   cfg,
		Logger:   logg,
		RedisP:   redisClient,
		Idem:     redisClient,
		Basket:   basketService,
		Checkout: checkoutService,
		Orders:   ordersService,
		Ratings:  ratingsService,
		Sellers:  sellerDirectory,
		Gatherer: registry,
	})

	addr := ":" + cfg.App.Port
	logg.Info(logg.WithField(context.Background(), "addr", addr), "api.listening")
	if err := http.ListenAndServe(addr, handler); err != nil {
		logg.Error(context.Background(), "server stopped", err)
		os.Exit(1)
	}
}
