package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apporder "github.com/cafekit/orderflow/internal/application/order"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *http.Client {
	return NewHTTPClient(2 * time.Second)
}

func TestCustomerClientGetCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"customer_id":    "1",
			"name":           "Emma Johnson",
			"email":          "emma@example.com",
			"loyalty_points": 10,
		})
	}))
	defer srv.Close()

	c := NewCustomerClient(srv.URL, testClient())
	got, err := c.GetCustomer(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Emma Johnson", got.Name)
	assert.Equal(t, int64(10), got.LoyaltyPoints)
}

func TestCustomerClientRemoteKindWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"kind":  "customer_not_found",
			"error": "customer 9 not found",
		})
	}))
	defer srv.Close()

	c := NewCustomerClient(srv.URL, testClient())
	_, err := c.GetCustomer(context.Background(), "9")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindCustomerNotFound))
	assert.Contains(t, err.Error(), "customer 9 not found")
}

func TestCustomerClientBare404FallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := NewCustomerClient(srv.URL, testClient())
	_, err := c.GetCustomer(context.Background(), "9")
	assert.True(t, apperr.IsKind(err, apperr.KindCustomerNotFound))
}

func TestCustomerClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse all connections

	c := NewCustomerClient(srv.URL, testClient())
	_, err := c.GetCustomer(context.Background(), "1")
	assert.True(t, apperr.IsKind(err, apperr.KindDownstreamUnavailable))
}

func TestCustomerClientAwardPoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/customers/update-points", r.URL.Path)

		var body struct {
			CustomerID string `json:"customer_id"`
			Points     int64  `json:"points"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1", body.CustomerID)
		assert.Equal(t, int64(11), body.Points)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"customer_id":    "1",
			"name":           "Emma Johnson",
			"loyalty_points": 21,
		})
	}))
	defer srv.Close()

	c := NewCustomerClient(srv.URL, testClient())
	got, err := c.AwardPoints(context.Background(), "1", 11)
	require.NoError(t, err)
	assert.Equal(t, int64(21), got.LoyaltyPoints)
}

func TestMenuClientGetItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/menu/2", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          "2",
			"name":        "Blueberry Muffin",
			"price_cents": 300,
			"stock":       50,
		})
	}))
	defer srv.Close()

	c := NewMenuClient(srv.URL, testClient())
	item, err := c.GetItem(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Blueberry Muffin", item.Name)
	assert.Equal(t, int64(300), item.Price)
	assert.Equal(t, 50, item.Stock)
}

func TestMenuClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := NewMenuClient(srv.URL, testClient())
	_, err := c.GetItem(context.Background(), "99")
	assert.True(t, apperr.IsKind(err, apperr.KindMenuItemNotFound))
}

func TestInventoryClientReserveSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/inventory/update", r.URL.Path)

		var body struct {
			Items []struct {
				ItemID   string `json:"item_id"`
				Quantity int    `json:"quantity"`
			} `json:"items"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Items, 2)
		assert.Equal(t, "1", body.Items[0].ItemID)
		assert.Equal(t, 2, body.Items[0].Quantity)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "reserved"})
	}))
	defer srv.Close()

	c := NewInventoryClient(srv.URL, testClient())
	shortfalls, err := c.Reserve(context.Background(), []apporder.ReserveLine{
		{ItemID: "1", Quantity: 2},
		{ItemID: "2", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Empty(t, shortfalls)
}

func TestInventoryClientReserveRefusalIsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"kind":  "insufficient_stock",
			"error": "insufficient stock for one or more items",
			"shortfalls": []map[string]any{
				{"item_id": "2", "requested": 60, "available": 50},
			},
		})
	}))
	defer srv.Close()

	c := NewInventoryClient(srv.URL, testClient())
	shortfalls, err := c.Reserve(context.Background(), []apporder.ReserveLine{{ItemID: "2", Quantity: 60}})
	require.NoError(t, err, "a refusal is an expected outcome, not a transport failure")
	require.Len(t, shortfalls, 1)
	assert.Equal(t, apporder.Shortfall{ItemID: "2", Requested: 60, Available: 50}, shortfalls[0])
}

func TestInventoryClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewInventoryClient(srv.URL, testClient())
	_, err := c.Reserve(context.Background(), []apporder.ReserveLine{{ItemID: "1", Quantity: 1}})
	assert.True(t, apperr.IsKind(err, apperr.KindDownstreamUnavailable))
}

func TestOrderClientGetOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/o-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"order_id":    "o-1",
			"customer_id": "c-1",
			"items": []map[string]any{
				{"item_id": "1", "name": "Latte", "quantity": 2, "unit_price_cents": 400},
			},
			"total_cents": 800,
			"status":      "confirmed",
		})
	}))
	defer srv.Close()

	c := NewOrderClient(srv.URL, testClient())
	o, err := c.GetOrder(context.Background(), "o-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", o.CustomerID)
	assert.Equal(t, int64(800), o.Total)
	require.Len(t, o.Lines, 1)
	assert.Equal(t, int64(400), o.Lines[0].UnitPrice)
}

func TestOrderClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := NewOrderClient(srv.URL, testClient())
	_, err := c.GetOrder(context.Background(), "missing")
	assert.True(t, apperr.IsKind(err, apperr.KindOrderNotFound))
}
