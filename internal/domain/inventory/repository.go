package inventory

import "context"

type Repository interface {
	Get(ctx context.Context, itemID string) (*Item, error)
	Save(ctx context.Context, item *Item) error
	Count(ctx context.Context) (int64, error)
}
