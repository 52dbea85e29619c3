package main

import (
	"github.com/cafekit/orderflow/internal/config"
	"github.com/cafekit/orderflow/internal/gateway"
	httptransport "github.com/cafekit/orderflow/internal/infrastructure/http"
	"github.com/cafekit/orderflow/internal/pkg/httpserver"
	"github.com/cafekit/orderflow/internal/pkg/logging"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load("gateway", ":3000")
	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()

	proxy, err := gateway.New(cfg.Gateway)
	if err != nil {
		logger.Fatal("gateway_config_invalid", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	router := httptransport.NewRouter(cfg.ServiceName, logger, reg)
	router.Mount("/", proxy)

	httpserver.Run(cfg.HTTPAddr, router, logger)
}
