package httptransport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appcustomer "github.com/cafekit/orderflow/internal/application/customer"
	appinventory "github.com/cafekit/orderflow/internal/application/inventory"
	appmenu "github.com/cafekit/orderflow/internal/application/menu"
	"github.com/cafekit/orderflow/internal/infrastructure/memory"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testIDs struct{ n int }

func (s *testIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func menuServer(t *testing.T) *httptest.Server {
	t.Helper()
	service := appmenu.NewService(memory.NewMenuRepository())
	require.NoError(t, service.Seed(context.Background()))

	router := NewRouter("menu", zap.NewNop(), prometheus.NewRegistry())
	NewMenuHandler(service).Register(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func inventoryServer(t *testing.T) *httptest.Server {
	t.Helper()
	service := appinventory.NewService(memory.NewInventoryRepository())
	require.NoError(t, service.Seed(context.Background()))

	router := NewRouter("inventory", zap.NewNop(), prometheus.NewRegistry())
	NewInventoryHandler(service).Register(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func customerServer(t *testing.T) *httptest.Server {
	t.Helper()
	service := appcustomer.NewService(memory.NewCustomerRepository(), &testIDs{})
	require.NoError(t, service.Seed(context.Background()))

	router := NewRouter("customer", zap.NewNop(), prometheus.NewRegistry())
	NewCustomerHandler(service).Register(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
}

func TestMenuRoutes(t *testing.T) {
	srv := menuServer(t)

	resp, err := http.Get(srv.URL + "/menu")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var items []menuItemResponse
	decodeBody(t, resp, &items)
	require.Len(t, items, 4)
	assert.Equal(t, "Latte", items[0].Name)
	assert.Equal(t, int64(400), items[0].PriceCents)

	resp, err = http.Get(srv.URL + "/menu/99")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body errorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, string(apperr.KindMenuItemNotFound), body.Kind)
}

func TestInventoryReserveRoute(t *testing.T) {
	srv := inventoryServer(t)

	resp, err := http.Post(srv.URL+"/update", "application/json",
		strings.NewReader(`{"items":[{"item_id":"1","quantity":10}]}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/stock/1")
	require.NoError(t, err)
	var stock stockResponse
	decodeBody(t, resp, &stock)
	assert.Equal(t, 90, stock.Quantity)
}

func TestInventoryReserveRefusal(t *testing.T) {
	srv := inventoryServer(t)

	resp, err := http.Post(srv.URL+"/update", "application/json",
		strings.NewReader(`{"items":[{"item_id":"2","quantity":60}]}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var refusal reserveRefusalResponse
	decodeBody(t, resp, &refusal)
	assert.Equal(t, string(apperr.KindInsufficientStock), refusal.Kind)
	require.Len(t, refusal.Shortfalls, 1)
	assert.Equal(t, shortfallJSON{ItemID: "2", Requested: 60, Available: 50}, refusal.Shortfalls[0])
}

func TestInventoryReserveBadJSON(t *testing.T) {
	srv := inventoryServer(t)

	resp, err := http.Post(srv.URL+"/update", "application/json", strings.NewReader(`{"bogus":`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCustomerRoutes(t *testing.T) {
	srv := customerServer(t)

	resp, err := http.Get(srv.URL + "/1")
	require.NoError(t, err)
	var c customerResponse
	decodeBody(t, resp, &c)
	assert.Equal(t, "Emma Johnson", c.Name)
	assert.Equal(t, int64(10), c.LoyaltyPoints)

	resp, err = http.Post(srv.URL+"/update-points", "application/json",
		strings.NewReader(`{"customer_id":"1","points":11}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &c)
	assert.Equal(t, int64(21), c.LoyaltyPoints)

	resp, err = http.Post(srv.URL+"/register", "application/json",
		strings.NewReader(`{"name":"Ana Lima","email":"ana@example.com"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &c)
	assert.Equal(t, int64(10), c.LoyaltyPoints)

	// Duplicate email is a conflict.
	resp, err = http.Post(srv.URL+"/register", "application/json",
		strings.NewReader(`{"name":"Other","email":"ana@example.com"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHealthRoute(t *testing.T) {
	srv := menuServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "UP", body["status"])
	assert.Equal(t, "menu", body["service"])
}

func TestMetricsRoute(t *testing.T) {
	srv := menuServer(t)

	// Drive one request through the middleware, then scrape.
	resp, err := http.Get(srv.URL + "/menu")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "http_requests_total")
}
