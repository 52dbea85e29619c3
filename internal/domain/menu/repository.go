package menu

import "context"

type Repository interface {
	Get(ctx context.Context, id string) (*Item, error)
	// ListInStock returns items with stock greater than zero.
	ListInStock(ctx context.Context) ([]*Item, error)
	Save(ctx context.Context, item *Item) error
	Count(ctx context.Context) (int64, error)
}
