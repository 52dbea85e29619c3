package main

import (
	"context"

	appinventory "github.com/cafekit/orderflow/internal/application/inventory"
	"github.com/cafekit/orderflow/internal/config"
	httptransport "github.com/cafekit/orderflow/internal/infrastructure/http"
	mongodb "github.com/cafekit/orderflow/internal/infrastructure/mongo"
	"github.com/cafekit/orderflow/internal/pkg/httpserver"
	"github.com/cafekit/orderflow/internal/pkg/logging"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load("inventory", ":3003")
	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo_connect_failed", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(ctx) }()

	service := appinventory.NewService(mongodb.NewInventoryRepository(client.Database(cfg.MongoDatabase)))
	if err := service.Seed(ctx); err != nil {
		logger.Fatal("inventory_seed_failed", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	router := httptransport.NewRouter(cfg.ServiceName, logger, reg)
	httptransport.NewInventoryHandler(service).Register(router)

	httpserver.Run(cfg.HTTPAddr, router, logger)
}
