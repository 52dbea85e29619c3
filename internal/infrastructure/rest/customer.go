package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	domain "github.com/cafekit/orderflow/internal/domain/customer"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
)

// CustomerClient reaches the Identity Lookup service through the gateway's
// /customers prefix.
type CustomerClient struct {
	baseURL string
	hc      *http.Client
}

func NewCustomerClient(gatewayURL string, hc *http.Client) *CustomerClient {
	return &CustomerClient{baseURL: gatewayURL, hc: hc}
}

type customerPayload struct {
	CustomerID    string    `json:"customer_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	LoyaltyPoints int64     `json:"loyalty_points"`
	RegisteredAt  time.Time `json:"registered_at"`
}

func (c *CustomerClient) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	var payload customerPayload
	u := joinURL(c.baseURL, "/customers/"+url.PathEscape(id))
	if err := getJSON(ctx, c.hc, u, &payload, apperr.KindCustomerNotFound); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

func (c *CustomerClient) AwardPoints(ctx context.Context, id string, points int64) (*domain.Customer, error) {
	body := struct {
		CustomerID string `json:"customer_id"`
		Points     int64  `json:"points"`
	}{CustomerID: id, Points: points}

	resp, err := postJSON(ctx, c.hc, joinURL(c.baseURL, "/customers/update-points"), body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteError(resp, apperr.KindCustomerNotFound)
	}
	var payload customerPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperr.Wrap(apperr.KindDownstreamUnavailable, err, "decode update-points response")
	}
	return payload.toDomain(), nil
}

func (p customerPayload) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:            p.CustomerID,
		Name:          p.Name,
		Email:         p.Email,
		LoyaltyPoints: p.LoyaltyPoints,
		RegisteredAt:  p.RegisteredAt,
	}
}
