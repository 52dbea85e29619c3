package order

import "context"

type Repository interface {
	Insert(ctx context.Context, order *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	FindByCustomer(ctx context.Context, customerID string) ([]*Order, error)
	Update(ctx context.Context, order *Order) error
	// Delete is the compensating action after a refused stock reservation.
	Delete(ctx context.Context, id string) error
}
