package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/cartoptions-backend/internal/cart"
	"github.com/angelmondragon/cartoptions-backend/internal/catalog"
	"github.com/angelmondragon/cartoptions-backend/internal/customeroptions"
	"github.com/angelmondragon/cartoptions-backend/internal/orderitemoptions"
	"github.com/angelmondragon/cartoptions-backend/pkg/config"
	"github.com/angelmondragon/cartoptions-backend/pkg/db"
	"github.com/angelmondragon/cartoptions-backend/pkg/enums"
	"github.com/angelmondragon/cartoptions-backend/pkg/logger"
	"github.com/angelmondragon/cartoptions-backend/pkg/metrics"
	"github.com/angelmondragon/cartoptions-backend/pkg/redis"
)

// newCartService assembles the add-item chain: catalog lookup, base adder,
// customer option attacher, then the transactional cart service.
// redisClient may be nil, in which case catalog lookups always hit the database.
func newCartService(cfg *config.Config, dbClient *db.Client, redisClient *redis.Client, reg prometheus.Registerer, logg *logger.Logger) (cart.Service, error) {
	currency, err := enums.ParseCurrency(cfg.Cart.Currency)
	if err != nil {
		return nil, fmt.Errorf("cart currency: %w", err)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	var catalogSvc catalog.Service
	if redisClient != nil {
		catalogSvc, err = catalog.NewService(catalog.NewCachedFinder(catalogRepo, redisClient, cfg.Cache.CatalogTTL, logg))
	} else {
		catalogSvc, err = catalog.NewService(catalogRepo)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog service: %w", err)
	}

	cartRepo := cart.NewRepository(dbClient.DB())
	processor := cart.NewProcessor()

	base, err := cart.NewBaseAdder(cartRepo, catalogSvc, processor, cfg.Cart.MaxItems)
	if err != nil {
		return nil, fmt.Errorf("base adder: %w", err)
	}

	attacher, err := customeroptions.NewAttacher(
		base,
		orderitemoptions.NewFactory(),
		processor,
		metrics.NewCustomerOptionMetrics(reg),
		logg,
	)
	if err != nil {
		return nil, fmt.Errorf("customer options attacher: %w", err)
	}

	return cart.NewService(cartRepo, dbClient, attacher, currency)
}
