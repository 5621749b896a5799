// Package repository provides data access layer implementations for the
// application. Every entity store exposes one interface with two
// implementations: a GORM-backed relational store and an in-memory store.
// Higher layers depend only on the interfaces, so swapping the backend is a
// composition change.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"filmgraph/internal/models"
)

// FilmRepository defines the interface for film data operations.
// Create assigns a fresh id; Update has full-replace semantics and fails with
// NOT_FOUND when the id is absent.
type FilmRepository interface {
	Create(ctx context.Context, film *models.Film) error
	Update(ctx context.Context, film *models.Film) error
	GetByID(ctx context.Context, id uint) (*models.Film, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]models.Film, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// filmRepository implements FilmRepository
type filmRepository struct {
	db *gorm.DB
}

// NewFilmRepository creates a new film repository backed by the database.
func NewFilmRepository(db *gorm.DB) FilmRepository {
	return &filmRepository{db: db}
}

func (r *filmRepository) Create(ctx context.Context, film *models.Film) error {
	// The film row and its genre join rows go in one transaction; a crash
	// cannot leave a film without its genres. Omit keeps GORM from writing
	// the reference tables themselves.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Genres.*", "Mpa").Create(film).Error
	})
	if err != nil {
		return translate(err, "Film", film.ID)
	}
	return nil
}

func (r *filmRepository) Update(ctx context.Context, film *models.Film) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Film{}).
			Where("id = ?", film.ID).
			Select("name", "description", "release_date", "duration", "mpa_id").
			Updates(film)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(film).Omit("Genres.*").Association("Genres").Replace(film.Genres)
	})
	if err != nil {
		return translate(err, "Film", film.ID)
	}
	return nil
}

func (r *filmRepository) GetByID(ctx context.Context, id uint) (*models.Film, error) {
	var film models.Film
	if err := r.db.WithContext(ctx).
		Preload("Mpa").
		Preload("Genres").
		First(&film, id).Error; err != nil {
		return nil, translate(err, "Film", id)
	}
	return &film, nil
}

func (r *filmRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Film{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *filmRepository) List(ctx context.Context) ([]models.Film, error) {
	var films []models.Film
	if err := r.db.WithContext(ctx).
		Preload("Mpa").
		Preload("Genres").
		Find(&films).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return films, nil
}

func (r *filmRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("film_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Film{ID: id}).Association("Genres").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&models.Film{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return deleted, nil
}
