package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cafekit/orderflow/internal/pkg/apperr"
)

type errorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Kind:  string(apperr.KindValidation),
		Error: err.Error(),
	})
}

// writeError renders the structured taxonomy error: kind plus detail, with
// the status derived from the kind.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	detail := err.Error()
	var ae *apperr.Error
	if errors.As(err, &ae) {
		detail = ae.Detail
	}
	writeJSON(w, statusForKind(kind), errorResponse{Kind: string(kind), Error: detail})
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation,
		apperr.KindInsufficientStock,
		apperr.KindAmountMismatch,
		apperr.KindCustomerMismatch:
		return http.StatusBadRequest
	case apperr.KindCustomerNotFound,
		apperr.KindMenuItemNotFound,
		apperr.KindOrderNotFound,
		apperr.KindPaymentNotFound:
		return http.StatusNotFound
	case apperr.KindInventoryUnavailable, apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindDownstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
