package menu

import (
	"context"
	"errors"

	domain "github.com/cafekit/orderflow/internal/domain/menu"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
)

type Service struct {
	repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	if id == "" {
		return nil, apperr.New(apperr.KindValidation, "item id is required")
	}
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperr.Wrap(apperr.KindMenuItemNotFound, err, "menu item %s not found", id)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to fetch menu item %s", id)
	}
	return item, nil
}

// ListAvailable returns every item with stock remaining.
func (s *Service) ListAvailable(ctx context.Context) ([]*domain.Item, error) {
	items, err := s.repo.ListInStock(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to list menu items")
	}
	return items, nil
}

// Seed loads the sample menu on first boot.
func (s *Service) Seed(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	seed := []*domain.Item{
		{ID: "1", Name: "Latte", Price: 400, Stock: 100},
		{ID: "2", Name: "Blueberry Muffin", Price: 300, Stock: 50},
		{ID: "3", Name: "Espresso", Price: 350, Stock: 100},
		{ID: "4", Name: "Chocolate Croissant", Price: 350, Stock: 40},
	}
	for _, item := range seed {
		if err := s.repo.Save(ctx, item); err != nil {
			return err
		}
	}
	return nil
}
