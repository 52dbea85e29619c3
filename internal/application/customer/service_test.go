package customer

import (
	"context"
	"fmt"
	"testing"

	"github.com/cafekit/orderflow/internal/infrastructure/memory"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("cust-%d", s.n)
}

func seededService(t *testing.T) *Service {
	t.Helper()
	s := NewService(memory.NewCustomerRepository(), &seqIDs{})
	require.NoError(t, s.Seed(context.Background()))
	return s
}

func TestGet(t *testing.T) {
	s := seededService(t)

	c, err := s.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Emma Johnson", c.Name)
	assert.Equal(t, int64(10), c.LoyaltyPoints)

	_, err = s.Get(context.Background(), "missing")
	assert.True(t, apperr.IsKind(err, apperr.KindCustomerNotFound))

	_, err = s.Get(context.Background(), "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestAwardPoints(t *testing.T) {
	s := seededService(t)
	ctx := context.Background()

	c, err := s.AwardPoints(ctx, "1", 11)
	require.NoError(t, err)
	assert.Equal(t, int64(21), c.LoyaltyPoints)

	// Awards accumulate; a zero award is legal and changes nothing.
	c, err = s.AwardPoints(ctx, "1", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(21), c.LoyaltyPoints)

	stored, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(21), stored.LoyaltyPoints)
}

func TestAwardPointsRejectsNegative(t *testing.T) {
	s := seededService(t)

	_, err := s.AwardPoints(context.Background(), "1", -5)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestAwardPointsUnknownCustomer(t *testing.T) {
	s := seededService(t)

	_, err := s.AwardPoints(context.Background(), "missing", 5)
	assert.True(t, apperr.IsKind(err, apperr.KindCustomerNotFound))
}

func TestRegister(t *testing.T) {
	s := seededService(t)

	c, err := s.Register(context.Background(), "Ana Lima", "ana@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, int64(10), c.LoyaltyPoints, "new customers get the welcome bonus")

	got, err := s.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := seededService(t)

	_, err := s.Register(context.Background(), "Someone Else", "emma@example.com")
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestRegisterValidation(t *testing.T) {
	s := seededService(t)

	_, err := s.Register(context.Background(), "", "a@example.com")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = s.Register(context.Background(), "A Name", "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
