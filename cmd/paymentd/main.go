package main

import (
	"context"

	apppayment "github.com/cafekit/orderflow/internal/application/payment"
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
	cfg := config.Load("payment", ":3005")
	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo_connect_failed", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(ctx) }()

	hc := rest.NewHTTPClient(cfg.RequestTimeout)
	orders := rest.NewOrderClient(cfg.GatewayURL, hc)

	reg := prometheus.NewRegistry()
	service := apppayment.NewService(
		mongodb.NewPaymentRepository(client.Database(cfg.MongoDatabase)),
		orders,
		id.NewUUIDGenerator(),
		apppayment.NewMetrics(reg),
	)

	router := httptransport.NewRouter(cfg.ServiceName, logger, reg)
	httptransport.NewPaymentHandler(service).Register(router)

	httpserver.Run(cfg.HTTPAddr, router, logger)
}
