package httptransport

import (
	"net/http"
	"time"

	appcustomer "github.com/cafekit/orderflow/internal/application/customer"
	domain "github.com/cafekit/orderflow/internal/domain/customer"
	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	service *appcustomer.Service
}

func NewCustomerHandler(service *appcustomer.Service) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// Register mounts the identity routes. The gateway strips the /customers
// prefix before forwarding, so the paths here are prefix-free.
func (h *CustomerHandler) Register(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/update-points", h.updatePoints)
	r.Get("/{customerID}", h.getCustomer)
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updatePointsRequest struct {
	CustomerID string `json:"customer_id"`
	Points     int64  `json:"points"`
}

type customerResponse struct {
	CustomerID    string    `json:"customer_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	LoyaltyPoints int64     `json:"loyalty_points"`
	RegisteredAt  time.Time `json:"registered_at"`
}

func (h *CustomerHandler) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(c))
}

func (h *CustomerHandler) updatePoints(w http.ResponseWriter, r *http.Request) {
	var req updatePointsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	c, err := h.service.AwardPoints(r.Context(), req.CustomerID, req.Points)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(c))
}

func (h *CustomerHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	c, err := h.service.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomerResponse(c))
}

func toCustomerResponse(c *domain.Customer) customerResponse {
	return customerResponse{
		CustomerID:    c.ID,
		Name:          c.Name,
		Email:         c.Email,
		LoyaltyPoints: c.LoyaltyPoints,
		RegisteredAt:  c.RegisteredAt,
	}
}
