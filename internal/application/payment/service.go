package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	domain "github.com/cafekit/orderflow/internal/domain/payment"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
	"github.com/cafekit/orderflow/internal/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Metrics counts recorded payments by outcome; nil disables recording.
type Metrics struct {
	Recorded *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Recorded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_recorded_total",
				Help: "Total number of payment recording attempts by outcome.",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.Recorded)
	return m
}

func (m *Metrics) outcome(outcome string) {
	if m == nil {
		return
	}
	m.Recorded.WithLabelValues(outcome).Inc()
}

// Service verifies a payment against the owning order before recording it.
// It performs no side effect on any other resource, so it carries no
// compensation logic and never retries the order read.
type Service struct {
	repo    domain.Repository
	orders  OrderReader
	ids     IDGenerator
	metrics *Metrics

	mu     sync.Mutex
	random *rand.Rand
}

func NewService(repo domain.Repository, orders OrderReader, ids IDGenerator, metrics *Metrics) *Service {
	return &Service{
		repo:    repo,
		orders:  orders,
		ids:     ids,
		metrics: metrics,
		random:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Service) RecordPayment(ctx context.Context, orderID, customerID string, amount int64) (_ *domain.Payment, err error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "payment_service"))
	defer func() {
		if err != nil {
			s.metrics.outcome(string(apperr.KindOf(err)))
		} else {
			s.metrics.outcome("success")
		}
	}()

	if orderID == "" || customerID == "" {
		return nil, apperr.New(apperr.KindValidation, "order id and customer id are required")
	}
	if amount <= 0 {
		return nil, apperr.New(apperr.KindValidation, "amount must be greater than zero")
	}

	// Cross-check against the authoritative order record. Unreachable and
	// absent collapse into the same caller-visible outcome.
	order, oerr := s.orders.GetOrder(ctx, orderID)
	if oerr != nil {
		logger.Info("order_verification_failed", zap.String("order_id", orderID), zap.Error(oerr))
		return nil, apperr.Wrap(apperr.KindOrderNotFound, oerr, "order %s not found or could not be verified", orderID)
	}
	if order.Total != amount {
		return nil, apperr.New(apperr.KindAmountMismatch,
			"payment amount does not match order total. expected: %d, received: %d", order.Total, amount)
	}
	if order.CustomerID != customerID {
		return nil, apperr.New(apperr.KindCustomerMismatch, "customer id does not match order")
	}

	p, derr := domain.New(s.ids.NewID(), orderID, customerID, amount, s.transactionRef())
	if derr != nil {
		return nil, apperr.Wrap(apperr.KindValidation, derr, "invalid payment: %v", derr)
	}
	if ierr := s.repo.Insert(ctx, p); ierr != nil {
		logger.Error("payment_insert_failed", zap.String("order_id", orderID), zap.Error(ierr))
		return nil, apperr.Wrap(apperr.KindPersistence, ierr, "failed to persist payment")
	}

	logger.Info("payment_recorded",
		zap.String("payment_id", p.ID),
		zap.String("order_id", orderID),
		zap.Int64("amount_cents", amount),
	)
	return p, nil
}

func (s *Service) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	if id == "" {
		return nil, apperr.New(apperr.KindValidation, "payment id is required")
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperr.Wrap(apperr.KindPaymentNotFound, err, "payment %s not found", id)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to fetch payment %s", id)
	}
	return p, nil
}

func (s *Service) GetPaymentByOrder(ctx context.Context, orderID string) (*domain.Payment, error) {
	if orderID == "" {
		return nil, apperr.New(apperr.KindValidation, "order id is required")
	}
	p, err := s.repo.FindByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperr.Wrap(apperr.KindPaymentNotFound, err, "payment not found for order %s", orderID)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to fetch payment for order %s", orderID)
	}
	return p, nil
}

// transactionRef generates the opaque processor-style reference recorded with
// each payment.
func (s *Service) transactionRef() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("TR-%d-%d", time.Now().UnixMilli(), s.random.Intn(1000))
}
