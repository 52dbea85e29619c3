package httptransport

import (
	"net/http"
	"time"

	appinventory "github.com/cafekit/orderflow/internal/application/inventory"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
	"github.com/go-chi/chi/v5"
)

type InventoryHandler struct {
	service *appinventory.Service
}

func NewInventoryHandler(service *appinventory.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// Register mounts the ledger routes. The gateway strips the /inventory prefix
// before forwarding, so the paths here are prefix-free.
func (h *InventoryHandler) Register(r chi.Router) {
	r.Post("/update", h.reserve)
	r.Get("/stock/{itemID}", h.getStock)
}

type reserveStockRequest struct {
	Items []reserveStockItem `json:"items"`
}

type reserveStockItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type reserveRefusalResponse struct {
	Kind       string          `json:"kind"`
	Error      string          `json:"error"`
	Shortfalls []shortfallJSON `json:"shortfalls"`
}

type shortfallJSON struct {
	ItemID    string `json:"item_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

type stockResponse struct {
	ItemID      string    `json:"item_id"`
	Quantity    int       `json:"quantity"`
	LastUpdated time.Time `json:"last_updated"`
}

func (h *InventoryHandler) reserve(w http.ResponseWriter, r *http.Request) {
	var req reserveStockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	lines := make([]appinventory.ReserveLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, appinventory.ReserveLine{ItemID: it.ItemID, Quantity: it.Quantity})
	}

	shortfalls, err := h.service.Reserve(r.Context(), lines)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(shortfalls) > 0 {
		out := make([]shortfallJSON, 0, len(shortfalls))
		for _, sf := range shortfalls {
			out = append(out, shortfallJSON{
				ItemID:    sf.ItemID,
				Requested: sf.Requested,
				Available: sf.Available,
			})
		}
		writeJSON(w, http.StatusConflict, reserveRefusalResponse{
			Kind:       string(apperr.KindInsufficientStock),
			Error:      "insufficient stock for one or more items",
			Shortfalls: out,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reserved"})
}

func (h *InventoryHandler) getStock(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetStock(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stockResponse{
		ItemID:      item.ItemID,
		Quantity:    item.Quantity,
		LastUpdated: item.UpdatedAt,
	})
}
