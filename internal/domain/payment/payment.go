package payment

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("payment: not found")
	ErrInvalidAmount = errors.New("payment: amount must be greater than zero")
)

type Status string

// StatusCompleted is the only modeled state; the verifier records finished
// payments, it does not track partial or failed attempts.
const StatusCompleted Status = "completed"

type Payment struct {
	ID         string
	OrderID    string
	CustomerID string
	Amount     int64 // cents
	Status     Status
	// TransactionRef is opaque and informational; it is not an idempotency key.
	TransactionRef string
	CreatedAt      time.Time
}

func New(id, orderID, customerID string, amount int64, transactionRef string) (*Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return &Payment{
		ID:             id,
		OrderID:        orderID,
		CustomerID:     customerID,
		Amount:         amount,
		Status:         StatusCompleted,
		TransactionRef: transactionRef,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
