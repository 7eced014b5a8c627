package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dukamarket/checkout-api/internal/api"
	"github.com/dukamarket/checkout-api/internal/checkout"
	"github.com/dukamarket/checkout-api/internal/config"
	"github.com/dukamarket/checkout-api/internal/confirmation"
	"github.com/dukamarket/checkout-api/internal/gateway"
	"github.com/dukamarket/checkout-api/internal/marketplace"
	"github.com/dukamarket/checkout-api/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Order snapshot store
	orderStore, err := store.New(cfg.Store, logger)
	if err != nil {
		logger.Fatal("Failed to initialize order store", zap.Error(err))
	}

	// Payment processor and marketplace collaborators
	paymentGateway := gateway.NewClient(cfg.Gateway, logger)
	core := marketplace.NewClient(cfg.Marketplace, logger)

	svc := checkout.NewService(orderStore, paymentGateway, core, core, core, logger)
	resolver := confirmation.NewResolver(orderStore, core, logger)

	router := api.NewRouter(cfg, svc, resolver, logger)

	logger.Info("Starting checkout API",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("store_backend", cfg.Store.Backend),
	)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
