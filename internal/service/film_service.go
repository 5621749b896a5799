// Package service contains business logic orchestrating validation,
// repositories, caching, and metrics.
package service

import (
	"context"
	"sort"

	"filmgraph/internal/cache"
	"filmgraph/internal/models"
	"filmgraph/internal/observability"
	"filmgraph/internal/repository"
	"filmgraph/internal/validation"
)

// DefaultPopularCount is the ranking size when the caller does not ask for one.
const DefaultPopularCount = 10

// FilmService handles film catalog operations, the like graph, and the
// popularity ranking.
type FilmService struct {
	filmRepo  repository.FilmRepository
	userRepo  repository.UserRepository
	likeRepo  repository.LikeRepository
	genreRepo repository.GenreRepository
	mpaRepo   repository.MpaRatingRepository
}

// NewFilmService creates a new film service.
func NewFilmService(
	filmRepo repository.FilmRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	genreRepo repository.GenreRepository,
	mpaRepo repository.MpaRatingRepository,
) *FilmService {
	return &FilmService{
		filmRepo:  filmRepo,
		userRepo:  userRepo,
		likeRepo:  likeRepo,
		genreRepo: genreRepo,
		mpaRepo:   mpaRepo,
	}
}

// CreateFilm validates the film, checks its references, and stores it.
// Validation runs before any id is assigned, so a rejected film never
// consumes an id.
func (s *FilmService) CreateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := validation.ValidateFilm(film); err != nil {
		return nil, err
	}
	normalizeMpa(film)
	film.Genres = dedupeGenres(film.Genres)
	if err := s.resolveReferences(ctx, film); err != nil {
		return nil, err
	}

	if err := s.filmRepo.Create(ctx, film); err != nil {
		return nil, err
	}
	return s.filmRepo.GetByID(ctx, film.ID)
}

// UpdateFilm replaces the stored film identified by film.ID.
func (s *FilmService) UpdateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := validation.ValidateFilm(film); err != nil {
		return nil, err
	}
	normalizeMpa(film)
	film.Genres = dedupeGenres(film.Genres)
	if err := s.resolveReferences(ctx, film); err != nil {
		return nil, err
	}

	if err := s.filmRepo.Update(ctx, film); err != nil {
		return nil, err
	}
	return s.filmRepo.GetByID(ctx, film.ID)
}

// GetFilm returns the film with the given id.
func (s *FilmService) GetFilm(ctx context.Context, id uint) (*models.Film, error) {
	return s.filmRepo.GetByID(ctx, id)
}

// ListFilms returns every stored film.
func (s *FilmService) ListFilms(ctx context.Context) ([]models.Film, error) {
	return s.filmRepo.List(ctx)
}

// DeleteFilm removes the film and its likes.
func (s *FilmService) DeleteFilm(ctx context.Context, id uint) error {
	deleted, err := s.filmRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Film", id)
	}
	cache.InvalidatePopularFilms(ctx)
	return nil
}

// AddLike records that the user likes the film. Liking twice is a no-op.
func (s *FilmService) AddLike(ctx context.Context, filmID, userID uint) error {
	if err := s.requireFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.likeRepo.Add(ctx, filmID, userID); err != nil {
		return err
	}
	observability.LikeMutations.WithLabelValues("add").Inc()
	cache.InvalidatePopularFilms(ctx)
	return nil
}

// RemoveLike removes the user's like from the film. Removing an absent like
// is a no-op.
func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID uint) error {
	if err := s.requireFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.likeRepo.Remove(ctx, filmID, userID); err != nil {
		return err
	}
	observability.LikeMutations.WithLabelValues("remove").Inc()
	cache.InvalidatePopularFilms(ctx)
	return nil
}

// LikeCount returns the number of likes on the film.
func (s *FilmService) LikeCount(ctx context.Context, filmID uint) (int, error) {
	exists, err := s.filmRepo.ExistsByID(ctx, filmID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, models.NewNotFoundError("Film", filmID)
	}
	return s.likeRepo.Count(ctx, filmID)
}

// PopularFilms returns up to count films ordered by like count descending;
// ties break toward the lower film id. Zero-like films participate.
func (s *FilmService) PopularFilms(ctx context.Context, count int) ([]models.Film, error) {
	if count <= 0 {
		count = DefaultPopularCount
	}

	var films []models.Film
	hit := true
	err := cache.CacheAside(ctx, cache.PopularFilmsKey(count), &films, cache.PopularFilmsTTL, func() error {
		hit = false
		ranked, err := s.rankFilms(ctx, count)
		if err != nil {
			return err
		}
		films = ranked
		return nil
	})
	if err != nil {
		return nil, err
	}
	if hit {
		observability.PopularCacheResults.WithLabelValues("hit").Inc()
	} else {
		observability.PopularCacheResults.WithLabelValues("miss").Inc()
	}
	return films, nil
}

func (s *FilmService) rankFilms(ctx context.Context, count int) ([]models.Film, error) {
	films, err := s.filmRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.likeRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(films, func(i, j int) bool {
		li, lj := counts[films[i].ID], counts[films[j].ID]
		if li != lj {
			return li > lj
		}
		return films[i].ID < films[j].ID
	})
	if len(films) > count {
		films = films[:count]
	}
	return films, nil
}

func (s *FilmService) requireFilmAndUser(ctx context.Context, filmID, userID uint) error {
	exists, err := s.filmRepo.ExistsByID(ctx, filmID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Film", filmID)
	}
	exists, err = s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("User", userID)
	}
	return nil
}

// resolveReferences replaces the bare MPA and genre ids on the film with full
// catalog records, failing with NOT_FOUND for an unknown id. Responses then
// carry the catalog names no matter which backend served the write.
func (s *FilmService) resolveReferences(ctx context.Context, film *models.Film) error {
	if film.MpaID != nil {
		mpa, err := s.mpaRepo.GetByID(ctx, *film.MpaID)
		if err != nil {
			return err
		}
		film.Mpa = mpa
	}
	for i, g := range film.Genres {
		genre, err := s.genreRepo.GetByID(ctx, g.ID)
		if err != nil {
			return err
		}
		film.Genres[i] = *genre
	}
	return nil
}

// normalizeMpa mirrors the embedded Mpa id into the foreign key column.
func normalizeMpa(film *models.Film) {
	if film.Mpa != nil {
		id := film.Mpa.ID
		film.MpaID = &id
	} else {
		film.MpaID = nil
	}
}

// dedupeGenres drops repeated genre ids, keeping first-seen order.
func dedupeGenres(genres []models.Genre) []models.Genre {
	if len(genres) < 2 {
		return genres
	}
	seen := make(map[uint]struct{}, len(genres))
	out := genres[:0]
	for _, g := range genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		out = append(out, g)
	}
	return out
}
