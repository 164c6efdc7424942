package store

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-explorer/backend/internal/model"
	"github.com/pageza/recipe-explorer/backend/internal/query"
	"github.com/pageza/recipe-explorer/backend/internal/testhelpers"
)

type countingStore struct {
	RecipeStore
	finds int
}

func (c *countingStore) Find(ctx context.Context, p query.Predicate, w query.Window) (Result, error) {
	c.finds++
	return c.RecipeStore.Find(ctx, p, w)
}

func TestCacheKeyDependsOnInputs(t *testing.T) {
	w := query.Window{Page: 1, Limit: 10}
	a, err := cacheKey(0, query.Predicate{}, w)
	require.NoError(t, err)
	b, err := cacheKey(0, query.Compile(query.FilterInput{}), w)
	require.NoError(t, err)
	assert.Equal(t, a, b, "an empty search shares the listing's cache entry")

	c, err := cacheKey(1, query.Predicate{}, w)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	d, err := cacheKey(0, query.Predicate{}, query.Window{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}

func TestCachedStore(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{RecipeStore: NewSQLStore(testhelpers.SetupSQLiteDatabase(t))}
	log, _ := test.NewNullLogger()
	cached := NewCachedStore(backing, testhelpers.SetupRedisClient(t), time.Minute, log)

	require.NoError(t, cached.Replace(ctx, testhelpers.Catalog()))

	p := query.Compile(query.FilterInput{Title: "pie"})
	w := query.Window{Page: 1, Limit: 10}

	first, err := cached.Find(ctx, p, w)
	require.NoError(t, err)
	second, err := cached.Find(ctx, p, w)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, backing.finds, "second read must be served from redis")

	require.NoError(t, cached.Replace(ctx, []model.Recipe{{ID: "x", Title: "Pumpkin pie"}}))

	third, err := cached.Find(ctx, p, w)
	require.NoError(t, err)
	assert.Equal(t, 2, backing.finds, "replace must invalidate cached pages")
	assert.Equal(t, int64(1), third.Total)

	empty, err := cached.Find(ctx, query.Compile(query.FilterInput{Title: "nothing"}), w)
	require.NoError(t, err)
	again, err := cached.Find(ctx, query.Compile(query.FilterInput{Title: "nothing"}), w)
	require.NoError(t, err)
	assert.NotNil(t, again.Data)
	assert.Equal(t, empty, again)

	require.NoError(t, cached.Ping(ctx))
}
