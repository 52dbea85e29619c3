package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/cafekit/orderflow/internal/domain/order"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
	"github.com/cafekit/orderflow/internal/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const tracerName = "orderflow/application/order"

// Service orchestrates the fulfillment saga: customer check, catalog pricing,
// speculative persist, authoritative stock reservation with a compensating
// delete, best-effort loyalty award, confirmation. All collaborator calls are
// blocking and strictly sequential.
type Service struct {
	repo      domain.Repository
	ids       IDGenerator
	customers CustomerDirectory
	catalog   Catalog
	ledger    StockLedger
	metrics   *Metrics
}

func NewService(
	repo domain.Repository,
	ids IDGenerator,
	customers CustomerDirectory,
	catalog Catalog,
	ledger StockLedger,
	metrics *Metrics,
) *Service {
	return &Service{
		repo:      repo,
		ids:       ids,
		customers: customers,
		catalog:   catalog,
		ledger:    ledger,
		metrics:   metrics,
	}
}

type LineInput struct {
	ItemID   string
	Quantity int
}

// LoyaltyOutcome reports the best-effort points award separately from the
// saga's error channel: a set Err means the award failed but the order still
// succeeded.
type LoyaltyOutcome struct {
	Points  int64
	Awarded bool
	Err     error
}

type CreateOrderResult struct {
	Order   *domain.Order
	Loyalty LoyaltyOutcome
}

func (s *Service) CreateOrder(ctx context.Context, customerID string, lines []LineInput) (_ *CreateOrderResult, err error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "order_service"))

	ctx, span := otel.Tracer(tracerName).Start(ctx, "Saga.CreateOrder")
	span.SetAttributes(
		attribute.String("order.customer_id", customerID),
		attribute.Int("order.line_count", len(lines)),
	)
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = string(apperr.KindOf(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
		s.metrics.observeOutcome(outcome, time.Since(start).Seconds())
	}()

	if customerID == "" {
		return nil, apperr.New(apperr.KindValidation, "customer id is required")
	}
	if len(lines) == 0 {
		return nil, apperr.New(apperr.KindValidation, "at least one line item is required")
	}
	for _, l := range lines {
		if l.ItemID == "" {
			return nil, apperr.New(apperr.KindValidation, "item id is required")
		}
		if l.Quantity <= 0 {
			return nil, apperr.New(apperr.KindValidation, "quantity for item %s must be greater than zero", l.ItemID)
		}
	}

	// Step 1: customer existence. Unreachable and not-found are deliberately
	// indistinguishable to the caller; no side effects exist yet.
	if _, cerr := s.customers.GetCustomer(ctx, customerID); cerr != nil {
		logger.Info("customer_check_failed", zap.String("customer_id", customerID), zap.Error(cerr))
		return nil, apperr.Wrap(apperr.KindCustomerNotFound, cerr, "customer %s not found", customerID)
	}

	// Step 2: price every line against the catalog, snapshotting name and
	// unit price. The stock comparison here is an optimistic pre-check only;
	// the ledger decides for real in step 4.
	orderLines := make([]domain.Line, 0, len(lines))
	for _, l := range lines {
		item, merr := s.catalog.GetItem(ctx, l.ItemID)
		if merr != nil {
			if apperr.IsKind(merr, apperr.KindMenuItemNotFound) {
				return nil, apperr.Wrap(apperr.KindMenuItemNotFound, merr, "menu item %s not found", l.ItemID)
			}
			logger.Error("catalog_fetch_failed", zap.String("item_id", l.ItemID), zap.Error(merr))
			return nil, apperr.Wrap(apperr.KindDownstreamUnavailable, merr, "catalog lookup for item %s failed", l.ItemID)
		}
		if item.Stock < l.Quantity {
			return nil, apperr.New(apperr.KindInsufficientStock, "not enough stock for %s", item.Name)
		}
		orderLines = append(orderLines, domain.Line{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  l.Quantity,
			UnitPrice: item.Price,
		})
	}

	// Step 3: first durable side effect and the rollback boundary for step 4.
	entity, derr := domain.New(s.ids.NewID(), customerID, orderLines)
	if derr != nil {
		return nil, apperr.Wrap(apperr.KindValidation, derr, "invalid order: %v", derr)
	}
	if ierr := s.repo.Insert(ctx, entity); ierr != nil {
		logger.Error("order_insert_failed", zap.String("order_id", entity.ID), zap.Error(ierr))
		return nil, apperr.Wrap(apperr.KindPersistence, ierr, "failed to persist order")
	}
	span.SetAttributes(attribute.String("order.id", entity.ID))

	// Step 4: authoritative reservation. Any refusal or failure here triggers
	// the single compensating action of the saga: delete the pending order.
	shortfalls, rerr := s.ledger.Reserve(ctx, toReserveLines(orderLines))
	if rerr != nil {
		s.compensate(ctx, logger, entity, "stock ledger unreachable")
		return nil, apperr.Wrap(apperr.KindInventoryUnavailable, rerr, "failed to reserve stock")
	}
	if len(shortfalls) > 0 {
		detail := shortfallDetail(shortfalls)
		s.compensate(ctx, logger, entity, detail)
		return nil, apperr.New(apperr.KindInventoryUnavailable, "insufficient inventory: %s", detail)
	}

	// Step 5: loyalty accrual is best-effort; a failure is reported on the
	// result, logged, and counted, but never rolls back stock or the order.
	loyalty := LoyaltyOutcome{Points: entity.LoyaltyPoints()}
	if _, perr := s.customers.AwardPoints(ctx, customerID, loyalty.Points); perr != nil {
		logger.Warn("loyalty_award_failed",
			zap.String("order_id", entity.ID),
			zap.String("customer_id", customerID),
			zap.Int64("points", loyalty.Points),
			zap.Error(perr),
		)
		s.metrics.loyaltyFailure()
		loyalty.Err = perr
	} else {
		loyalty.Awarded = true
	}

	// Step 6: confirm. Stock is reserved and the order is durable. A refused
	// transition here is a state-machine bug, not a storage failure.
	if cerr := entity.Confirm(); cerr != nil {
		return nil, apperr.Wrap(apperr.KindInternal, cerr, "failed to confirm order %s: %v", entity.ID, cerr)
	}
	if uerr := s.repo.Update(ctx, entity); uerr != nil {
		logger.Error("order_confirm_failed", zap.String("order_id", entity.ID), zap.Error(uerr))
		return nil, apperr.Wrap(apperr.KindPersistence, uerr, "failed to confirm order")
	}

	logger.Info("create_order_success",
		zap.String("order_id", entity.ID),
		zap.String("customer_id", customerID),
		zap.Int64("total_cents", entity.Total),
		zap.Bool("loyalty_awarded", loyalty.Awarded),
	)
	return &CreateOrderResult{Order: entity, Loyalty: loyalty}, nil
}

// compensate deletes the speculative order after a refused reservation. A
// failed delete leaves a pending zombie; it is logged loudly because no
// automatic repair exists.
func (s *Service) compensate(ctx context.Context, logger *zap.Logger, entity *domain.Order, reason string) {
	if rbErr := entity.RollBack(reason); rbErr != nil {
		logger.Error("order_rollback_state_failed", zap.String("order_id", entity.ID), zap.Error(rbErr))
	}
	if delErr := s.repo.Delete(ctx, entity.ID); delErr != nil {
		logger.Error("order_compensation_delete_failed",
			zap.String("order_id", entity.ID),
			zap.String("reason", reason),
			zap.Error(delErr),
		)
		return
	}
	s.metrics.compensation()
	logger.Info("order_rolled_back",
		zap.String("order_id", entity.ID),
		zap.String("reason", reason),
	)
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, apperr.New(apperr.KindValidation, "order id is required")
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperr.Wrap(apperr.KindOrderNotFound, err, "order %s not found", id)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to fetch order %s", id)
	}
	return o, nil
}

func (s *Service) GetOrdersByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	if customerID == "" {
		return nil, apperr.New(apperr.KindValidation, "customer id is required")
	}
	out, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to fetch orders for customer %s", customerID)
	}
	return out, nil
}

func toReserveLines(lines []domain.Line) []ReserveLine {
	out := make([]ReserveLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, ReserveLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return out
}

func shortfallDetail(shortfalls []Shortfall) string {
	parts := make([]string, 0, len(shortfalls))
	for _, sf := range shortfalls {
		parts = append(parts, fmt.Sprintf("item %s: requested %d, available %d", sf.ItemID, sf.Requested, sf.Available))
	}
	return strings.Join(parts, "; ")
}
