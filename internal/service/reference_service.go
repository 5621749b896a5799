package service

import (
	"context"

	"filmgraph/internal/models"
	"filmgraph/internal/repository"
)

// ReferenceService exposes the immutable genre and MPA-rating catalogs.
type ReferenceService struct {
	genreRepo repository.GenreRepository
	mpaRepo   repository.MpaRatingRepository
}

// NewReferenceService creates a new reference catalog service.
func NewReferenceService(genreRepo repository.GenreRepository, mpaRepo repository.MpaRatingRepository) *ReferenceService {
	return &ReferenceService{genreRepo: genreRepo, mpaRepo: mpaRepo}
}

// ListGenres returns every genre ordered by id.
func (s *ReferenceService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return s.genreRepo.List(ctx)
}

// GetGenre returns the genre with the given id.
func (s *ReferenceService) GetGenre(ctx context.Context, id uint) (*models.Genre, error) {
	return s.genreRepo.GetByID(ctx, id)
}

// ListMpaRatings returns every MPA rating ordered by id.
func (s *ReferenceService) ListMpaRatings(ctx context.Context) ([]models.MpaRating, error) {
	return s.mpaRepo.List(ctx)
}

// GetMpaRating returns the MPA rating with the given id.
func (s *ReferenceService) GetMpaRating(ctx context.Context, id uint) (*models.MpaRating, error) {
	return s.mpaRepo.GetByID(ctx, id)
}
