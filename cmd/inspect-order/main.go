package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dukamarket/checkout-api/internal/config"
	"github.com/dukamarket/checkout-api/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/inspect-order/main.go <order-id>")
		fmt.Println("Example: go run cmd/inspect-order/main.go 6b1e7f2a-4c9d-4f1e-9a2b-1c3d5e7f9a0b")
		os.Exit(1)
	}

	orderID := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to the configured store backend
	orderStore, err := store.New(cfg.Store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize order store: %v\n", err)
		os.Exit(1)
	}

	snapshot, err := orderStore.Load(context.Background(), orderID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load order: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render snapshot: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(out))
}
