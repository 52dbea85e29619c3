package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/cafekit/orderflow/internal/domain/menu"
)

type MenuRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Item
}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{items: make(map[string]*domain.Item)}
}

func (r *MenuRepository) Get(ctx context.Context, id string) (*domain.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item.Clone(), nil
}

func (r *MenuRepository) ListInStock(ctx context.Context) ([]*domain.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Item
	for _, item := range r.items {
		if item.Stock > 0 {
			out = append(out, item.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MenuRepository) Save(ctx context.Context, item *domain.Item) error {
	_ = ctx
	if item == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item.Clone()
	return nil
}

func (r *MenuRepository) Count(ctx context.Context) (int64, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}
