package order

import (
	"errors"
	"time"
)

var (
	ErrNotFound               = errors.New("order: not found")
	ErrNoLines                = errors.New("order: at least one line item is required")
	ErrInvalidQuantity        = errors.New("order: quantity must be greater than zero")
	ErrInvalidPrice           = errors.New("order: unit price must be zero or greater")
	ErrInvalidStateTransition = errors.New("order: invalid state transition")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	// StatusRolledBack marks an order whose stock reservation was refused.
	// Rolled-back orders are deleted from the store, so the status is never
	// visible on a read path.
	StatusRolledBack Status = "rolled_back"
)

// Line is a snapshot of a catalog item taken at order-creation time. Later
// catalog edits never alter it.
type Line struct {
	ItemID    string
	Name      string
	Quantity  int
	UnitPrice int64 // cents
}

type Order struct {
	ID         string
	CustomerID string
	Lines      []Line
	Total      int64 // cents; computed once in New, never recomputed
	Status     Status
	// FailureReason records why a rollback happened; empty on the happy path.
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// New builds a pending order and derives its total from the line snapshots.
func New(id, customerID string, lines []Line) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	var total int64
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if l.UnitPrice < 0 {
			return nil, ErrInvalidPrice
		}
		total += int64(l.Quantity) * l.UnitPrice
	}

	now := time.Now().UTC()
	return &Order{
		ID:         id,
		CustomerID: customerID,
		Lines:      append([]Line(nil), lines...),
		Total:      total,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Confirm transitions the order after stock reservation and persistence both
// succeeded.
func (o *Order) Confirm() error {
	next, err := o.state().OnStockReserved(o)
	if err != nil {
		return err
	}
	o.Status = next.Status()
	o.touch()
	return nil
}

// RollBack marks the order for the compensating delete after the ledger
// refused the reservation.
func (o *Order) RollBack(reason string) error {
	next, err := o.state().OnStockRejected(o, reason)
	if err != nil {
		return err
	}
	o.Status = next.Status()
	o.touch()
	return nil
}

// LoyaltyPoints is the best-effort award for this order: one point per whole
// currency unit of the total.
func (o *Order) LoyaltyPoints() int64 {
	return o.Total / 100
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	return &clone
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}
