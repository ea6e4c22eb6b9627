package users_test

import (
	"context"
	"testing"

	"github.com/KeshavWanjale/usercrud/internal/users"
	"github.com/KeshavWanjale/usercrud/pkg/errors"
	"github.com/KeshavWanjale/usercrud/pkg/logger"
	"github.com/KeshavWanjale/usercrud/pkg/metrics"
	"github.com/KeshavWanjale/usercrud/testutil"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T) *users.GormStore {
	db := testutil.NewTestDB(t, users.Migrate)
	return users.NewStore(logger.Slog(zap.NewNop()), db)
}

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	alice, err := store.Create(ctx, users.CreateIn{Name: "Alice", Age: 30})
	require.NoError(t, err)
	assert.Equal(t, uint(1), alice.ID)

	bob, err := store.Create(ctx, users.CreateIn{Name: "Bob", Age: 41})
	require.NoError(t, err)
	assert.Equal(t, uint(2), bob.ID)

	got, err := store.User(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, users.User{ID: 1, Name: "Alice", Age: 30}, *got)

	updated, err := store.Update(ctx, alice.ID, users.UpdateIn{Name: "Alicia", Age: 0})
	require.NoError(t, err)
	assert.Equal(t, users.User{ID: 1, Name: "Alicia", Age: 0}, *updated)

	got, err = store.User(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Age, "zero age must be written")

	list, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []uint{1, 2}, []uint{list[0].ID, list[1].ID})

	require.NoError(t, store.Delete(ctx, alice.ID))
	_, err = store.User(ctx, alice.ID)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestStoreNotFound(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	_, err := store.User(ctx, 42)
	assert.True(t, errors.Is(err, errors.NotFound))

	_, err = store.Update(ctx, 42, users.UpdateIn{Name: "Ghost", Age: 1})
	assert.True(t, errors.Is(err, errors.NotFound))

	err = store.Delete(ctx, 42)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestStoreCountsOutcomes(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	notFound := metrics.UserOperations.WithLabelValues("get", "not_found")
	before := promtestutil.ToFloat64(notFound)

	_, err := store.User(ctx, 7)
	require.Error(t, err)

	assert.Equal(t, before+1, promtestutil.ToFloat64(notFound))
}
