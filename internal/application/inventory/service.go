package inventory

import (
	"context"
	"errors"
	"sync"

	domain "github.com/cafekit/orderflow/internal/domain/inventory"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
	"github.com/cafekit/orderflow/internal/pkg/logging"
	"go.uber.org/zap"
)

type ReserveLine struct {
	ItemID   string
	Quantity int
}

type Shortfall struct {
	ItemID    string
	Requested int
	Available int
}

// Service is the stock ledger. A single mutex serializes every reservation
// batch, making it the linearization point the orchestrator relies on: the
// batch either decrements every requested quantity or touches nothing.
type Service struct {
	mu   sync.Mutex
	repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

// Reserve decrements stock for the whole batch atomically. Unknown item ids
// are lazily recorded at quantity zero and therefore report as shortfalls
// rather than as a distinct not-found error.
func (s *Service) Reserve(ctx context.Context, lines []ReserveLine) ([]Shortfall, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "inventory_service"))

	if len(lines) == 0 {
		return nil, apperr.New(apperr.KindValidation, "at least one item is required")
	}
	for _, l := range lines {
		if l.ItemID == "" {
			return nil, apperr.New(apperr.KindValidation, "item id is required")
		}
		if l.Quantity <= 0 {
			return nil, apperr.New(apperr.KindValidation, "quantity for item %s must be greater than zero", l.ItemID)
		}
	}

	// A batch may name the same item on several lines; the check and the
	// decrement must both see the summed quantity, so aggregate first.
	batch := aggregate(lines)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Phase 1: load everything and collect shortfalls before any decrement.
	items := make([]*domain.Item, 0, len(batch))
	var shortfalls []Shortfall
	for _, l := range batch {
		item, err := s.repo.Get(ctx, l.ItemID)
		if errors.Is(err, domain.ErrNotFound) {
			item, err = domain.NewItem(l.ItemID, 0)
			if err != nil {
				return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to create stock record for %s", l.ItemID)
			}
			if err := s.repo.Save(ctx, item); err != nil {
				return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to create stock record for %s", l.ItemID)
			}
		} else if err != nil {
			return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to load stock for %s", l.ItemID)
		}
		if item.Quantity < l.Quantity {
			shortfalls = append(shortfalls, Shortfall{
				ItemID:    l.ItemID,
				Requested: l.Quantity,
				Available: item.Quantity,
			})
		}
		items = append(items, item)
	}
	if len(shortfalls) > 0 {
		logger.Info("reservation_refused", zap.Int("shortfalls", len(shortfalls)))
		return shortfalls, nil
	}

	// Phase 2: every item is covered; decrement and persist.
	for i, l := range batch {
		if err := items[i].Deduct(l.Quantity); err != nil {
			return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to deduct stock for %s", l.ItemID)
		}
		if err := s.repo.Save(ctx, items[i]); err != nil {
			logger.Error("stock_save_failed", zap.String("item_id", l.ItemID), zap.Error(err))
			return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to save stock for %s", l.ItemID)
		}
	}

	logger.Info("reservation_committed", zap.Int("items", len(batch)))
	return nil, nil
}

// aggregate sums duplicate item ids into one line per item, keeping the
// first-seen order.
func aggregate(lines []ReserveLine) []ReserveLine {
	totals := make(map[string]int, len(lines))
	out := make([]ReserveLine, 0, len(lines))
	for _, l := range lines {
		if _, seen := totals[l.ItemID]; !seen {
			out = append(out, ReserveLine{ItemID: l.ItemID})
		}
		totals[l.ItemID] += l.Quantity
	}
	for i := range out {
		out[i].Quantity = totals[out[i].ItemID]
	}
	return out
}

func (s *Service) GetStock(ctx context.Context, itemID string) (*domain.Item, error) {
	if itemID == "" {
		return nil, apperr.New(apperr.KindValidation, "item id is required")
	}
	item, err := s.repo.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperr.Wrap(apperr.KindMenuItemNotFound, err, "item %s not found in inventory", itemID)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to fetch stock for %s", itemID)
	}
	return item, nil
}

// Seed loads the sample stock levels on first boot.
func (s *Service) Seed(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	defaults := []struct {
		id  string
		qty int
	}{
		{"1", 100}, // Latte
		{"2", 50},  // Blueberry Muffin
		{"3", 100}, // Espresso
		{"4", 40},  // Chocolate Croissant
	}
	for _, d := range defaults {
		item, err := domain.NewItem(d.id, d.qty)
		if err != nil {
			return err
		}
		if err := s.repo.Save(ctx, item); err != nil {
			return err
		}
	}
	return nil
}
