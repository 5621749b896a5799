package repository

import (
	"context"

	"gorm.io/gorm"

	"filmgraph/internal/models"
)

// GenreRepository reads the immutable genre catalog.
type GenreRepository interface {
	List(ctx context.Context) ([]models.Genre, error)
	GetByID(ctx context.Context, id uint) (*models.Genre, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

// MpaRatingRepository reads the immutable MPA-rating catalog.
type MpaRatingRepository interface {
	List(ctx context.Context) ([]models.MpaRating, error)
	GetByID(ctx context.Context, id uint) (*models.MpaRating, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository creates a new genre repository backed by the database.
func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) List(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.WithContext(ctx).Order("id").Find(&genres).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return genres, nil
}

func (r *genreRepository) GetByID(ctx context.Context, id uint) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).First(&genre, id).Error; err != nil {
		return nil, translate(err, "Genre", id)
	}
	return &genre, nil
}

func (r *genreRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Genre{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

type mpaRatingRepository struct {
	db *gorm.DB
}

// NewMpaRatingRepository creates a new MPA rating repository backed by the database.
func NewMpaRatingRepository(db *gorm.DB) MpaRatingRepository {
	return &mpaRatingRepository{db: db}
}

func (r *mpaRatingRepository) List(ctx context.Context) ([]models.MpaRating, error) {
	var ratings []models.MpaRating
	if err := r.db.WithContext(ctx).Order("id").Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}

func (r *mpaRatingRepository) GetByID(ctx context.Context, id uint) (*models.MpaRating, error) {
	var rating models.MpaRating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		return nil, translate(err, "MPA rating", id)
	}
	return &rating, nil
}

func (r *mpaRatingRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MpaRating{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
