package httptransport

import (
	"net/http"
	"time"

	apppayment "github.com/cafekit/orderflow/internal/application/payment"
	domain "github.com/cafekit/orderflow/internal/domain/payment"
	"github.com/go-chi/chi/v5"
)

type PaymentHandler struct {
	service *apppayment.Service
}

func NewPaymentHandler(service *apppayment.Service) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(r chi.Router) {
	r.Post("/payments", h.recordPayment)
	r.Get("/payments/{paymentID}", h.getPayment)
	r.Get("/payments/order/{orderID}", h.getByOrder)
}

type recordPaymentRequest struct {
	OrderID     string `json:"order_id"`
	CustomerID  string `json:"customer_id"`
	AmountCents int64  `json:"amount_cents"`
}

type paymentResponse struct {
	PaymentID      string    `json:"payment_id"`
	OrderID        string    `json:"order_id"`
	CustomerID     string    `json:"customer_id"`
	AmountCents    int64     `json:"amount_cents"`
	Status         string    `json:"status"`
	TransactionRef string    `json:"transaction_reference"`
	CreatedAt      time.Time `json:"created_at"`
}

func (h *PaymentHandler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	p, err := h.service.RecordPayment(r.Context(), req.OrderID, req.CustomerID, req.AmountCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentResponse(p))
}

func (h *PaymentHandler) getPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetPayment(r.Context(), chi.URLParam(r, "paymentID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(p))
}

func (h *PaymentHandler) getByOrder(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetPaymentByOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(p))
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		PaymentID:      p.ID,
		OrderID:        p.OrderID,
		CustomerID:     p.CustomerID,
		AmountCents:    p.Amount,
		Status:         string(p.Status),
		TransactionRef: p.TransactionRef,
		CreatedAt:      p.CreatedAt,
	}
}
