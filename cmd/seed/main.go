// Command seed populates the database with demo users, films, likes, and
// friendships. Development tool only.
package main

import (
	"context"
	"flag"
	"log"

	"filmgraph/internal/cache"
	"filmgraph/internal/config"
	"filmgraph/internal/database"
	"filmgraph/internal/middleware"
	"filmgraph/internal/observability"
	"filmgraph/internal/repository"
	"filmgraph/internal/seed"
	"filmgraph/internal/service"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	flag.IntVar(&opts.Films, "films", opts.Films, "number of films to create")
	flag.IntVar(&opts.MaxLikesPerFilm, "max-likes", opts.MaxLikesPerFilm, "maximum likes per film")
	flag.IntVar(&opts.MaxFriendsPerUser, "max-friends", opts.MaxFriendsPerUser, "maximum friendship edges per user")
	flag.Int64Var(&opts.Seed, "seed", 0, "random seed (0 = time-based)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.StorageBackend != config.StoragePostgres {
		log.Fatal("Seeding requires STORAGE_BACKEND=postgres; the in-memory backend does not outlive the process")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	cache.Init(cfg.RedisURL, middleware.Logger)

	filmRepo := repository.NewFilmRepository(db)
	userRepo := repository.NewUserRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	mpaRepo := repository.NewMpaRatingRepository(db)

	filmService := service.NewFilmService(filmRepo, userRepo, likeRepo, genreRepo, mpaRepo)
	userService := service.NewUserService(userRepo, friendshipRepo)

	// Tag the whole run with one id so its log lines correlate.
	ctx := observability.WithCorrelationID(context.Background(), observability.GenerateCorrelationID())
	if err := seed.Run(ctx, filmService, userService, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
