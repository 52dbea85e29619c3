package payment

import "context"

type Repository interface {
	Insert(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	// FindByOrder returns the first payment recorded for the order. Multiple
	// payments per order are possible; no uniqueness is enforced.
	FindByOrder(ctx context.Context, orderID string) (*Payment, error)
}
