package customer

import (
	"context"
	"errors"

	domain "github.com/cafekit/orderflow/internal/domain/customer"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
	"github.com/cafekit/orderflow/internal/pkg/logging"
	"go.uber.org/zap"
)

type IDGenerator interface {
	NewID() string
}

type Service struct {
	repo domain.Repository
	ids  IDGenerator
}

func NewService(repo domain.Repository, ids IDGenerator) *Service {
	return &Service{repo: repo, ids: ids}
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	if id == "" {
		return nil, apperr.New(apperr.KindValidation, "customer id is required")
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperr.Wrap(apperr.KindCustomerNotFound, err, "customer %s not found", id)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to fetch customer %s", id)
	}
	return c, nil
}

// AwardPoints credits loyalty points to an existing customer. Awards are
// additive; the caller cannot subtract.
func (s *Service) AwardPoints(ctx context.Context, id string, points int64) (*domain.Customer, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "customer_service"))

	if id == "" {
		return nil, apperr.New(apperr.KindValidation, "customer id is required")
	}
	if points < 0 {
		return nil, apperr.New(apperr.KindValidation, "points must be zero or greater")
	}

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperr.Wrap(apperr.KindCustomerNotFound, err, "customer %s not found", id)
		}
		return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to fetch customer %s", id)
	}
	if err := c.AwardPoints(points); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, "invalid points award: %v", err)
	}
	if err := s.repo.Update(ctx, c); err != nil {
		logger.Error("points_update_failed", zap.String("customer_id", id), zap.Error(err))
		return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to update loyalty points")
	}

	logger.Info("points_awarded",
		zap.String("customer_id", id),
		zap.Int64("points", points),
		zap.Int64("balance", c.LoyaltyPoints),
	)
	return c, nil
}

// Register creates a customer with the welcome bonus. Emails are unique.
func (s *Service) Register(ctx context.Context, name, email string) (*domain.Customer, error) {
	if name == "" || email == "" {
		return nil, apperr.New(apperr.KindValidation, "name and email are required")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Wrap(apperr.KindConflict, domain.ErrDuplicateEmail, "customer with email %s already exists", email)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to check email %s", email)
	}

	c := domain.New(s.ids.NewID(), name, email)
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, err, "failed to register customer")
	}
	return c, nil
}

// Seed loads the sample customers on first boot.
func (s *Service) Seed(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	seed := []*domain.Customer{
		{ID: "1", Name: "Emma Johnson", Email: "emma@example.com", LoyaltyPoints: 10},
		{ID: "2", Name: "Michael Smith", Email: "michael@example.com", LoyaltyPoints: 15},
	}
	for _, c := range seed {
		if err := s.repo.Insert(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
