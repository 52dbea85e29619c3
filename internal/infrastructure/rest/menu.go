package rest

import (
	"context"
	"net/http"
	"net/url"

	domain "github.com/cafekit/orderflow/internal/domain/menu"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
)

// MenuClient reaches the Catalog Reader through the gateway's /menu prefix.
type MenuClient struct {
	baseURL string
	hc      *http.Client
}

func NewMenuClient(gatewayURL string, hc *http.Client) *MenuClient {
	return &MenuClient{baseURL: gatewayURL, hc: hc}
}

type menuItemPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Stock      int    `json:"stock"`
}

func (c *MenuClient) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	var payload menuItemPayload
	u := joinURL(c.baseURL, "/menu/"+url.PathEscape(id))
	if err := getJSON(ctx, c.hc, u, &payload, apperr.KindMenuItemNotFound); err != nil {
		return nil, err
	}
	return &domain.Item{
		ID:    payload.ID,
		Name:  payload.Name,
		Price: payload.PriceCents,
		Stock: payload.Stock,
	}, nil
}
