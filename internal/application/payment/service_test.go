package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	domorder "github.com/cafekit/orderflow/internal/domain/order"
	"github.com/cafekit/orderflow/internal/infrastructure/memory"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("pay-%d", s.n)
}

type stubOrders struct {
	order *domorder.Order
	err   error
}

func (s *stubOrders) GetOrder(_ context.Context, id string) (*domorder.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.order == nil || s.order.ID != id {
		return nil, apperr.New(apperr.KindOrderNotFound, "order %s not found", id)
	}
	return s.order, nil
}

func newService(orders *stubOrders) *Service {
	return NewService(memory.NewPaymentRepository(), orders, &seqIDs{}, nil)
}

func confirmedOrder() *domorder.Order {
	return &domorder.Order{
		ID:         "o-1",
		CustomerID: "c-1",
		Total:      1100,
		Status:     domorder.StatusConfirmed,
	}
}

func TestRecordPaymentSuccess(t *testing.T) {
	s := newService(&stubOrders{order: confirmedOrder()})

	p, err := s.RecordPayment(context.Background(), "o-1", "c-1", 1100)
	require.NoError(t, err)

	assert.Equal(t, "o-1", p.OrderID)
	assert.Equal(t, int64(1100), p.Amount)
	assert.True(t, strings.HasPrefix(p.TransactionRef, "TR-"))

	got, err := s.GetPayment(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.TransactionRef, got.TransactionRef)
}

func TestRecordPaymentAmountMismatch(t *testing.T) {
	s := newService(&stubOrders{order: confirmedOrder()})
	ctx := context.Background()

	// Off by a single cent in either direction is a refusal.
	for _, amount := range []int64{1099, 1101, 1} {
		_, err := s.RecordPayment(ctx, "o-1", "c-1", amount)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindAmountMismatch))
	}

	// Nothing was persisted by the refused attempts.
	_, err := s.GetPaymentByOrder(ctx, "o-1")
	assert.True(t, apperr.IsKind(err, apperr.KindPaymentNotFound))

	_, err = s.RecordPayment(ctx, "o-1", "c-1", 1100)
	assert.NoError(t, err)
}

func TestRecordPaymentCustomerMismatch(t *testing.T) {
	s := newService(&stubOrders{order: confirmedOrder()})

	_, err := s.RecordPayment(context.Background(), "o-1", "c-2", 1100)
	assert.True(t, apperr.IsKind(err, apperr.KindCustomerMismatch))
}

func TestRecordPaymentOrderNotFound(t *testing.T) {
	s := newService(&stubOrders{})

	_, err := s.RecordPayment(context.Background(), "missing", "c-1", 1100)
	assert.True(t, apperr.IsKind(err, apperr.KindOrderNotFound))
}

func TestRecordPaymentOrderServiceUnreachable(t *testing.T) {
	// An unreachable orchestrator collapses into the same outcome as a
	// missing order.
	s := newService(&stubOrders{err: errors.New("dial tcp: connection refused")})

	_, err := s.RecordPayment(context.Background(), "o-1", "c-1", 1100)
	assert.True(t, apperr.IsKind(err, apperr.KindOrderNotFound))
}

func TestRecordPaymentValidation(t *testing.T) {
	s := newService(&stubOrders{order: confirmedOrder()})
	ctx := context.Background()

	_, err := s.RecordPayment(ctx, "", "c-1", 1100)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = s.RecordPayment(ctx, "o-1", "", 1100)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = s.RecordPayment(ctx, "o-1", "c-1", 0)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = s.RecordPayment(ctx, "o-1", "c-1", -500)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestRecordPaymentNoUniquenessPerOrder(t *testing.T) {
	// Nothing deduplicates payments per order; both records survive and the
	// by-order lookup returns the first.
	s := newService(&stubOrders{order: confirmedOrder()})
	ctx := context.Background()

	first, err := s.RecordPayment(ctx, "o-1", "c-1", 1100)
	require.NoError(t, err)
	second, err := s.RecordPayment(ctx, "o-1", "c-1", 1100)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	byOrder, err := s.GetPaymentByOrder(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, byOrder.ID)
}

func TestGetPaymentNotFound(t *testing.T) {
	s := newService(&stubOrders{})

	_, err := s.GetPayment(context.Background(), "missing")
	assert.True(t, apperr.IsKind(err, apperr.KindPaymentNotFound))

	_, err = s.GetPaymentByOrder(context.Background(), "missing")
	assert.True(t, apperr.IsKind(err, apperr.KindPaymentNotFound))
}
