package httptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const handlerTimeout = 15 * time.Second

// NewRouter builds the chi router every service shares: request id, panic
// recovery, handler timeout, request-scoped logging, HTTP metrics, /health
// and /metrics.
func NewRouter(serviceName string, logger *zap.Logger, reg *prometheus.Registry) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(handlerTimeout))
	r.Use(RequestLogger(logger))
	r.Use(NewHTTPMetrics(reg).Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "UP", "service": serviceName})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}
