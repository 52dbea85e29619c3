package rest

import (
	"context"
	"encoding/json"
	"net/http"

	apporder "github.com/cafekit/orderflow/internal/application/order"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
)

// InventoryClient reaches the Stock Ledger through the gateway's /inventory
// prefix. It implements the orchestrator's StockLedger port.
type InventoryClient struct {
	baseURL string
	hc      *http.Client
}

func NewInventoryClient(gatewayURL string, hc *http.Client) *InventoryClient {
	return &InventoryClient{baseURL: gatewayURL, hc: hc}
}

type reserveRequest struct {
	Items []reserveItem `json:"items"`
}

type reserveItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type reserveRefusal struct {
	Kind       string             `json:"kind"`
	Error      string             `json:"error"`
	Shortfalls []shortfallPayload `json:"shortfalls"`
}

type shortfallPayload struct {
	ItemID    string `json:"item_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// Reserve posts the whole batch in one call. A 409 carries the ledger's
// shortfall list and is returned as data, not as an error: the refusal is an
// expected saga outcome, not a transport failure.
func (c *InventoryClient) Reserve(ctx context.Context, lines []apporder.ReserveLine) ([]apporder.Shortfall, error) {
	req := reserveRequest{Items: make([]reserveItem, 0, len(lines))}
	for _, l := range lines {
		req.Items = append(req.Items, reserveItem{ItemID: l.ItemID, Quantity: l.Quantity})
	}

	resp, err := postJSON(ctx, c.hc, joinURL(c.baseURL, "/inventory/update"), req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil, nil
	case http.StatusConflict:
		var refusal reserveRefusal
		if err := json.NewDecoder(resp.Body).Decode(&refusal); err != nil {
			return nil, apperr.Wrap(apperr.KindDownstreamUnavailable, err, "decode reservation refusal")
		}
		shortfalls := make([]apporder.Shortfall, 0, len(refusal.Shortfalls))
		for _, sf := range refusal.Shortfalls {
			shortfalls = append(shortfalls, apporder.Shortfall{
				ItemID:    sf.ItemID,
				Requested: sf.Requested,
				Available: sf.Available,
			})
		}
		return shortfalls, nil
	default:
		return nil, remoteError(resp, "")
	}
}
