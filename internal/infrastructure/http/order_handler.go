package httptransport

import (
	"net/http"
	"time"

	apporder "github.com/cafekit/orderflow/internal/application/order"
	domain "github.com/cafekit/orderflow/internal/domain/order"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	service *apporder.Service
}

func NewOrderHandler(service *apporder.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(r chi.Router) {
	r.Post("/orders", h.createOrder)
	r.Get("/orders/{orderID}", h.getOrder)
	r.Get("/orders/customer/{customerID}", h.listByCustomer)
}

type createOrderRequest struct {
	CustomerID string           `json:"customer_id"`
	Items      []orderItemInput `json:"items"`
}

type orderItemInput struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type orderResponse struct {
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	Items      []orderLineJSON `json:"items"`
	TotalCents int64           `json:"total_cents"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

type orderLineJSON struct {
	ItemID         string `json:"item_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	lines := make([]apporder.LineInput, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, apporder.LineInput{ItemID: it.ItemID, Quantity: it.Quantity})
	}

	result, err := h.service.CreateOrder(r.Context(), req.CustomerID, lines)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(result.Order))
}

func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) listByCustomer(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetOrdersByCustomer(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func toOrderResponse(o *domain.Order) orderResponse {
	lines := make([]orderLineJSON, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLineJSON{
			ItemID:         l.ItemID,
			Name:           l.Name,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPrice,
		})
	}
	return orderResponse{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Items:      lines,
		TotalCents: o.Total,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
	}
}
