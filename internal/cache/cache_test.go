package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type ranked struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Likes int    `json:"likes"`
}

func TestGetJSONMiss(t *testing.T) {
	withMiniredis(t)

	var dest ranked
	found, err := GetJSON(context.Background(), "absent", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetAndGetJSON(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	in := ranked{ID: 3, Name: "Seven Chances", Likes: 12}
	require.NoError(t, SetJSON(ctx, "films:popular:1", in, time.Minute))

	var out ranked
	found, err := GetJSON(ctx, "films:popular:1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestCacheAsidePopulatesOnMiss(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *[]ranked) func() error {
		return func() error {
			calls++
			*dest = []ranked{{ID: 1, Name: "College"}}
			return nil
		}
	}

	var films []ranked
	require.NoError(t, CacheAside(ctx, PopularFilmsKey(10), &films, time.Minute, fetch(&films)))
	assert.Equal(t, 1, calls)
	require.Len(t, films, 1)

	// Second read is served from the cache.
	var again []ranked
	require.NoError(t, CacheAside(ctx, PopularFilmsKey(10), &again, time.Minute, fetch(&again)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, films, again)
}

func TestCacheAsidePropagatesFetchError(t *testing.T) {
	withMiniredis(t)

	wantErr := errors.New("store down")
	var dest ranked
	err := CacheAside(context.Background(), "k", &dest, time.Minute, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestInvalidatePopularFilms(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PopularFilmsKey(5), []ranked{}, time.Minute))
	require.NoError(t, SetJSON(ctx, PopularFilmsKey(10), []ranked{}, time.Minute))
	require.NoError(t, SetJSON(ctx, "films:other", "keep", time.Minute))

	InvalidatePopularFilms(ctx)

	assert.False(t, mr.Exists(PopularFilmsKey(5)))
	assert.False(t, mr.Exists(PopularFilmsKey(10)))
	assert.True(t, mr.Exists("films:other"))
}

func TestHelpersAreNoOpsWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var dest ranked
	found, err := GetJSON(ctx, "k", &dest)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, "k", dest, time.Minute))

	calls := 0
	err = CacheAside(ctx, "k", &dest, time.Minute, func() error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)

	InvalidatePopularFilms(ctx)
}
