package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"filmgraph/internal/models"
)

// LikeRepository manages the user-to-film like relation with set semantics:
// Add is idempotent and Remove of an absent like is a no-op.
type LikeRepository interface {
	Add(ctx context.Context, filmID, userID uint) error
	Remove(ctx context.Context, filmID, userID uint) error
	Count(ctx context.Context, filmID uint) (int, error)
	// Counts returns like counts for every film that has at least one like.
	Counts(ctx context.Context) (map[uint]int, error)
}

// likeRepository implements LikeRepository
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository backed by the database.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Add(ctx context.Context, filmID, userID uint) error {
	like := models.Like{FilmID: filmID, UserID: userID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) Remove(ctx context.Context, filmID, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) Count(ctx context.Context, filmID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("film_id = ?", filmID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return int(count), nil
}

func (r *likeRepository) Counts(ctx context.Context) (map[uint]int, error) {
	var rows []struct {
		FilmID uint
		Total  int
	}
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("film_id, COUNT(*) AS total").
		Group("film_id").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.FilmID] = row.Total
	}
	return counts, nil
}
