package menu

import (
	"context"
	"testing"

	domain "github.com/cafekit/orderflow/internal/domain/menu"
	"github.com/cafekit/orderflow/internal/infrastructure/memory"
	"github.com/cafekit/orderflow/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededService(t *testing.T) (*Service, *memory.MenuRepository) {
	t.Helper()
	repo := memory.NewMenuRepository()
	s := NewService(repo)
	require.NoError(t, s.Seed(context.Background()))
	return s, repo
}

func TestGetItem(t *testing.T) {
	s, _ := seededService(t)

	item, err := s.GetItem(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Latte", item.Name)
	assert.Equal(t, int64(400), item.Price)

	_, err = s.GetItem(context.Background(), "missing")
	assert.True(t, apperr.IsKind(err, apperr.KindMenuItemNotFound))

	_, err = s.GetItem(context.Background(), "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestListAvailableSkipsSoldOut(t *testing.T) {
	s, repo := seededService(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.Item{ID: "2", Name: "Blueberry Muffin", Price: 300, Stock: 0}))

	items, err := s.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, item := range items {
		assert.NotEqual(t, "2", item.ID)
		assert.Greater(t, item.Stock, 0)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	s, repo := seededService(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.Item{ID: "1", Name: "Latte", Price: 450, Stock: 80}))
	require.NoError(t, s.Seed(ctx))

	item, err := s.GetItem(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(450), item.Price, "reseeding a populated store must not reset prices")
}
