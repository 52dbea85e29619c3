package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/cafekit/orderflow/internal/domain/payment"
)

type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
	// order insertion order matters for FindByOrder when multiple payments
	// exist for one order
	ids []string
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[string]*domain.Payment)}
}

func (r *PaymentRepository) Insert(ctx context.Context, p *domain.Payment) error {
	_ = ctx
	if p == nil || p.ID == "" {
		return fmt.Errorf("payment repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[p.ID]; exists {
		return fmt.Errorf("payment repository: duplicate id %s", p.ID)
	}
	r.payments[p.ID] = p.Clone()
	r.ids = append(r.ids, p.ID)
	return nil
}

func (r *PaymentRepository) Get(ctx context.Context, id string) (*domain.Payment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *PaymentRepository) FindByOrder(ctx context.Context, orderID string) (*domain.Payment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.ids {
		if p := r.payments[id]; p != nil && p.OrderID == orderID {
			return p.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}
