package main

import (
	"context"

	apporder "github.com/cafekit/orderflow/internal/application/order"
	"github.com/cafekit/orderflow/internal/config"
	httptransport "github.com/cafekit/orderflow/internal/infrastructure/http"
	"github.com/cafekit/orderflow/internal/infrastructure/id"
	mongodb "github.com/cafekit/orderflow/internal/infrastructure/mongo"
	"github.com/cafekit/orderflow/internal/infrastructure/rest"
	"github.com/cafekit/orderflow/internal/pkg/httpserver"
	"github.com/cafekit/orderflow/internal/pkg/logging"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load("order", ":3002")
	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo_connect_failed", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(ctx) }()

	// Every collaborator is reached through the gateway so routing stays in
	// one place.
	hc := rest.NewHTTPClient(cfg.RequestTimeout)
	customers := rest.NewCustomerClient(cfg.GatewayURL, hc)
	catalog := rest.NewMenuClient(cfg.GatewayURL, hc)
	ledger := rest.NewInventoryClient(cfg.GatewayURL, hc)

	reg := prometheus.NewRegistry()
	service := apporder.NewService(
		mongodb.NewOrderRepository(client.Database(cfg.MongoDatabase)),
		id.NewUUIDGenerator(),
		customers,
		catalog,
		ledger,
		apporder.NewMetrics(reg),
	)

	router := httptransport.NewRouter(cfg.ServiceName, logger, reg)
	httptransport.NewOrderHandler(service).Register(router)

	httpserver.Run(cfg.HTTPAddr, router, logger)
}
