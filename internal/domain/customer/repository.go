package customer

import "context"

type Repository interface {
	Insert(ctx context.Context, customer *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	Count(ctx context.Context) (int64, error)
}
