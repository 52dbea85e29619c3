package rest

import (
	"context"
	"net/http"
	"net/url"
	"time"

	domain "github.com/cafekit/orderflow/internal/domain/order"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
)

// OrderClient is the Payment Verifier's read path into the orchestrator,
// through the gateway's /orders prefix.
type OrderClient struct {
	baseURL string
	hc      *http.Client
}

func NewOrderClient(gatewayURL string, hc *http.Client) *OrderClient {
	return &OrderClient{baseURL: gatewayURL, hc: hc}
}

type orderPayload struct {
	OrderID    string             `json:"order_id"`
	CustomerID string             `json:"customer_id"`
	Items      []orderLinePayload `json:"items"`
	TotalCents int64              `json:"total_cents"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
}

type orderLinePayload struct {
	ItemID         string `json:"item_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

func (c *OrderClient) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var payload orderPayload
	u := joinURL(c.baseURL, "/orders/"+url.PathEscape(id))
	if err := getJSON(ctx, c.hc, u, &payload, apperr.KindOrderNotFound); err != nil {
		return nil, err
	}

	lines := make([]domain.Line, 0, len(payload.Items))
	for _, l := range payload.Items {
		lines = append(lines, domain.Line{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPriceCents,
		})
	}
	return &domain.Order{
		ID:         payload.OrderID,
		CustomerID: payload.CustomerID,
		Lines:      lines,
		Total:      payload.TotalCents,
		Status:     domain.Status(payload.Status),
		CreatedAt:  payload.CreatedAt,
	}, nil
}
