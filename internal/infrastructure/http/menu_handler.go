package httptransport

import (
	"net/http"

	appmenu "github.com/cafekit/orderflow/internal/application/menu"
	domain "github.com/cafekit/orderflow/internal/domain/menu"
	"github.com/go-chi/chi/v5"
)

type MenuHandler struct {
	service *appmenu.Service
}

func NewMenuHandler(service *appmenu.Service) *MenuHandler {
	return &MenuHandler{service: service}
}

func (h *MenuHandler) Register(r chi.Router) {
	r.Get("/menu", h.listMenu)
	r.Get("/menu/{itemID}", h.getItem)
}

type menuItemResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Stock      int    `json:"stock"`
}

func (h *MenuHandler) listMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAvailable(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]menuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toMenuItemResponse(item))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *MenuHandler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetItem(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

func toMenuItemResponse(item *domain.Item) menuItemResponse {
	return menuItemResponse{
		ID:         item.ID,
		Name:       item.Name,
		PriceCents: item.Price,
		Stock:      item.Stock,
	}
}
