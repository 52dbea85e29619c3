package config

import (
	"os"
	"time"
)

// Config is loaded from the environment once in main and injected into every
// component at construction. Collaborator endpoints are always reached through
// the gateway; only the gateway itself knows backend addresses.
type Config struct {
	ServiceName string
	Env         string
	HTTPAddr    string

	MongoURI      string
	MongoDatabase string

	// GatewayURL is the base URL for all outbound collaborator calls.
	GatewayURL string
	// RequestTimeout bounds every outbound collaborator call. The upstream
	// design left this open; 5s is the bound chosen here.
	RequestTimeout time.Duration

	Gateway GatewayBackends
}

// GatewayBackends maps logical path prefixes to backend instances. Only the
// gateway binary reads these.
type GatewayBackends struct {
	MenuURL      string
	OrderURL     string
	InventoryURL string
	CustomerURL  string
	PaymentURL   string
}

func Load(serviceName, defaultAddr string) Config {
	return Config{
		ServiceName:    getenv("SERVICE_NAME", serviceName),
		Env:            getenv("ENV", "dev"),
		HTTPAddr:       getenv("HTTP_ADDR", defaultAddr),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getenv("MONGO_DB", "cafe-"+serviceName),
		GatewayURL:     getenv("GATEWAY_URL", "http://localhost:3000"),
		RequestTimeout: getduration("REQUEST_TIMEOUT", 5*time.Second),
		Gateway: GatewayBackends{
			MenuURL:      getenv("MENU_SERVICE", "http://localhost:3001"),
			OrderURL:     getenv("ORDER_SERVICE", "http://localhost:3002"),
			InventoryURL: getenv("INVENTORY_SERVICE", "http://localhost:3003"),
			CustomerURL:  getenv("CUSTOMER_SERVICE", "http://localhost:3004"),
			PaymentURL:   getenv("PAYMENT_SERVICE", "http://localhost:3005"),
		},
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
