package main

import (
	"context"

	appcustomer "github.com/cafekit/orderflow/internal/application/customer"
	"github.com/cafekit/orderflow/internal/config"
	httptransport "github.com/cafekit/orderflow/internal/infrastructure/http"
	"github.com/cafekit/orderflow/internal/infrastructure/id"
	mongodb "github.com/cafekit/orderflow/internal/infrastructure/mongo"
	"github.com/cafekit/orderflow/internal/pkg/httpserver"
	"github.com/cafekit/orderflow/internal/pkg/logging"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load("customer", ":3004")
	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo_connect_failed", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(ctx) }()

	repo := mongodb.NewCustomerRepository(client.Database(cfg.MongoDatabase))
	service := appcustomer.NewService(repo, id.NewUUIDGenerator())
	if err := service.Seed(ctx); err != nil {
		logger.Fatal("customer_seed_failed", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	router := httptransport.NewRouter(cfg.ServiceName, logger, reg)
	httptransport.NewCustomerHandler(service).Register(router)

	httpserver.Run(cfg.HTTPAddr, router, logger)
}
