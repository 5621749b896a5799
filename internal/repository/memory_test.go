package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"filmgraph/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFixtures(t *testing.T) (FilmRepository, UserRepository, LikeRepository, FriendshipRepository) {
	t.Helper()
	likes := NewMemoryLikeRepository()
	friendships := NewMemoryFriendshipRepository()
	films := NewMemoryFilmRepository(likes)
	users := NewMemoryUserRepository(likes, friendships)
	return films, users, likes, friendships
}

func newFilm(name string) *models.Film {
	return &models.Film{
		Name:        name,
		Description: "test film",
		ReleaseDate: models.NewDate(2000, time.January, 1),
		Duration:    100,
	}
}

func newUser(login string) *models.User {
	return &models.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: models.NewDate(1990, time.May, 5),
	}
}

func TestMemoryFilmIDsAreMonotonicAndNeverReused(t *testing.T) {
	t.Parallel()
	films, _, _, _ := memFixtures(t)
	ctx := context.Background()

	a := newFilm("a")
	b := newFilm("b")
	require.NoError(t, films.Create(ctx, a))
	require.NoError(t, films.Create(ctx, b))
	assert.Equal(t, uint(1), a.ID)
	assert.Equal(t, uint(2), b.ID)

	// Deleting the highest id must not free it for reuse.
	deleted, err := films.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	c := newFilm("c")
	require.NoError(t, films.Create(ctx, c))
	assert.Equal(t, uint(3), c.ID)
}

func TestMemoryFilmUpdateMissingIsNotFound(t *testing.T) {
	t.Parallel()
	films, _, _, _ := memFixtures(t)
	ctx := context.Background()

	film := newFilm("ghost")
	film.ID = 42
	err := films.Update(ctx, film)
	assert.True(t, models.IsNotFound(err))
}

func TestMemoryFilmDeleteReturnsFalseWhenAbsent(t *testing.T) {
	t.Parallel()
	films, _, _, _ := memFixtures(t)

	deleted, err := films.Delete(context.Background(), 99)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryFilmRowsDoNotShareState(t *testing.T) {
	t.Parallel()
	films, _, _, _ := memFixtures(t)
	ctx := context.Background()

	film := newFilm("isolated")
	film.Genres = []models.Genre{{ID: 1, Name: "Comedy"}}
	require.NoError(t, films.Create(ctx, film))

	// Mutating the caller's copy must not leak into the store.
	film.Genres[0].Name = "Mutated"

	stored, err := films.GetByID(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, "Comedy", stored.Genres[0].Name)
}

func TestMemoryFilmDeleteDropsLikes(t *testing.T) {
	t.Parallel()
	films, users, likes, _ := memFixtures(t)
	ctx := context.Background()

	film := newFilm("liked")
	require.NoError(t, films.Create(ctx, film))
	user := newUser("fan")
	require.NoError(t, users.Create(ctx, user))
	require.NoError(t, likes.Add(ctx, film.ID, user.ID))

	_, err := films.Delete(ctx, film.ID)
	require.NoError(t, err)

	count, err := likes.Count(ctx, film.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryUserDeleteDropsEdges(t *testing.T) {
	t.Parallel()
	films, users, likes, friendships := memFixtures(t)
	ctx := context.Background()

	alice := newUser("alice")
	bob := newUser("bob")
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	film := newFilm("shared")
	require.NoError(t, films.Create(ctx, film))
	require.NoError(t, likes.Add(ctx, film.ID, alice.ID))
	require.NoError(t, friendships.Upsert(ctx, alice.ID, bob.ID, models.FriendshipStatusPending))
	require.NoError(t, friendships.Upsert(ctx, bob.ID, alice.ID, models.FriendshipStatusPending))

	deleted, err := users.Delete(ctx, alice.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	count, err := likes.Count(ctx, film.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	ids, err := friendships.FriendIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMemoryLikeAddIsIdempotent(t *testing.T) {
	t.Parallel()
	_, _, likes, _ := memFixtures(t)
	ctx := context.Background()

	require.NoError(t, likes.Add(ctx, 1, 7))
	require.NoError(t, likes.Add(ctx, 1, 7))

	count, err := likes.Count(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryLikeRemoveAbsentIsNoOp(t *testing.T) {
	t.Parallel()
	_, _, likes, _ := memFixtures(t)
	assert.NoError(t, likes.Remove(context.Background(), 1, 7))
}

func TestMemoryFriendshipUpsertOverwritesStatus(t *testing.T) {
	t.Parallel()
	_, _, _, friendships := memFixtures(t)
	ctx := context.Background()

	require.NoError(t, friendships.Upsert(ctx, 1, 2, models.FriendshipStatusConfirmed))
	require.NoError(t, friendships.Upsert(ctx, 1, 2, models.FriendshipStatusPending))

	ids, err := friendships.FriendIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, ids)
}

func TestMemoryFriendshipIsDirected(t *testing.T) {
	t.Parallel()
	_, _, _, friendships := memFixtures(t)
	ctx := context.Background()

	require.NoError(t, friendships.Upsert(ctx, 1, 2, models.FriendshipStatusPending))

	ids, err := friendships.FriendIDs(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMemoryCommonFriendIDs(t *testing.T) {
	t.Parallel()
	_, _, _, friendships := memFixtures(t)
	ctx := context.Background()

	require.NoError(t, friendships.Upsert(ctx, 1, 3, models.FriendshipStatusPending))
	require.NoError(t, friendships.Upsert(ctx, 1, 4, models.FriendshipStatusPending))
	require.NoError(t, friendships.Upsert(ctx, 2, 3, models.FriendshipStatusPending))
	require.NoError(t, friendships.Upsert(ctx, 2, 5, models.FriendshipStatusPending))

	ids, err := friendships.CommonFriendIDs(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, ids)
}

func TestMemoryStoresAreSafeForConcurrentUse(t *testing.T) {
	t.Parallel()
	films, _, likes, _ := memFixtures(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			film := newFilm(fmt.Sprintf("film-%d", i))
			if err := films.Create(ctx, film); err != nil {
				t.Error(err)
				return
			}
			_ = likes.Add(ctx, film.ID, uint(i+1))
			_, _ = films.List(ctx)
			_, _ = likes.Counts(ctx)
		}(i)
	}
	wg.Wait()

	all, err := films.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 20)

	// Every id assigned exactly once.
	seen := make(map[uint]bool)
	for _, f := range all {
		assert.False(t, seen[f.ID])
		seen[f.ID] = true
	}
}

func TestMemoryReferenceCatalog(t *testing.T) {
	t.Parallel()
	genres, mpa, err := NewMemoryReferenceRepositories()
	require.NoError(t, err)
	ctx := context.Background()

	gs, err := genres.List(ctx)
	require.NoError(t, err)
	assert.Len(t, gs, 6)

	ms, err := mpa.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ms, 5)

	g, err := genres.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Comedy", g.Name)

	_, err = mpa.GetByID(ctx, 99)
	assert.True(t, models.IsNotFound(err))
}
