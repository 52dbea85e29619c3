// Package gateway routes external traffic to the backing services by path
// prefix. It is the single entry point clients and the services themselves
// use; services never dial each other directly.
package gateway

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/cafekit/orderflow/internal/config"
	"github.com/cafekit/orderflow/internal/pkg/logging"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// route binds a public path prefix to a backend. stripPrefix controls whether
// the prefix is removed before forwarding: the menu, order and payment
// services mount their routes under the same prefix the gateway exposes,
// while the inventory and customer services serve prefix-free paths.
type route struct {
	prefix      string
	backend     string
	stripPrefix bool
}

// New builds the proxy handler from the configured backend addresses.
func New(backends config.GatewayBackends) (http.Handler, error) {
	routes := []route{
		{prefix: "/menu", backend: backends.MenuURL},
		{prefix: "/orders", backend: backends.OrderURL},
		{prefix: "/inventory", backend: backends.InventoryURL, stripPrefix: true},
		{prefix: "/customers", backend: backends.CustomerURL, stripPrefix: true},
		{prefix: "/payments", backend: backends.PaymentURL},
	}

	r := chi.NewRouter()
	for _, rt := range routes {
		proxy, err := newProxy(rt)
		if err != nil {
			return nil, err
		}
		r.Mount(rt.prefix, proxy)
	}
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"UP","service":"gateway"}`))
	})
	return r, nil
}

func newProxy(rt route) (http.Handler, error) {
	target, err := url.Parse(rt.backend)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, req *http.Request, err error) {
		logging.FromContext(req.Context()).Warn("gateway_backend_unreachable",
			zap.String("prefix", rt.prefix),
			zap.String("backend", rt.backend),
			zap.Error(err),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"kind":"downstream_unavailable","error":"backend unreachable"}`))
	}

	if rt.stripPrefix {
		return http.StripPrefix(rt.prefix, proxy), nil
	}
	return proxy, nil
}
