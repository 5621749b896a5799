// Package seed provides helpers to create demo data for the application.
// These helpers are intended for development and testing only.
package seed

import (
	"context"
	"math/rand"

	"filmgraph/internal/models"
	"filmgraph/internal/observability"
	"filmgraph/internal/service"
)

// Options controls how much demo data Run creates.
type Options struct {
	Users             int
	Films             int
	MaxLikesPerFilm   int
	MaxFriendsPerUser int
	// Seed fixes the random source so repeated runs produce the same data.
	// Zero means time-based.
	Seed int64
}

// DefaultOptions returns a small but lively data set.
func DefaultOptions() Options {
	return Options{
		Users:             20,
		Films:             40,
		MaxLikesPerFilm:   10,
		MaxFriendsPerUser: 6,
	}
}

// Run populates the stores with users, films, likes, and friendship edges.
// Everything goes through the service layer so seeded data always satisfies
// the validation rules.
func Run(ctx context.Context, films *service.FilmService, users *service.UserService, opts Options) error {
	f := NewFactory(films, users, opts)

	seededUsers := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser(ctx)
		if err != nil {
			return err
		}
		seededUsers = append(seededUsers, user)
	}

	seededFilms := make([]*models.Film, 0, opts.Films)
	for i := 0; i < opts.Films; i++ {
		film, err := f.CreateFilm(ctx)
		if err != nil {
			return err
		}
		seededFilms = append(seededFilms, film)
	}

	// Likes: each film gets a random subset of users.
	for _, film := range seededFilms {
		likes := f.rand.Intn(opts.MaxLikesPerFilm + 1)
		for _, user := range pickUsers(f.rand, seededUsers, likes) {
			if err := films.AddLike(ctx, film.ID, user.ID); err != nil {
				return err
			}
		}
	}

	// Friendships: directed edges, a few of them confirmed back.
	for _, user := range seededUsers {
		edges := f.rand.Intn(opts.MaxFriendsPerUser + 1)
		for _, friend := range pickUsers(f.rand, seededUsers, edges) {
			if friend.ID == user.ID {
				continue
			}
			if err := users.AddFriend(ctx, user.ID, friend.ID); err != nil {
				return err
			}
			if f.rand.Intn(2) == 0 {
				if err := users.ConfirmFriend(ctx, user.ID, friend.ID); err != nil {
					return err
				}
			}
		}
	}

	observability.GlobalLogger.InfoContext(ctx, "seeding complete",
		"users", len(seededUsers),
		"films", len(seededFilms),
		"run_id", observability.ExtractCorrelationID(ctx),
	)
	return nil
}

// pickUsers returns up to n distinct users chosen at random.
func pickUsers(r *rand.Rand, users []*models.User, n int) []*models.User {
	if n >= len(users) {
		n = len(users)
	}
	picked := make([]*models.User, len(users))
	copy(picked, users)
	r.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n]
}
