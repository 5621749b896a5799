package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"filmgraph/internal/models"
)

// pgUniqueViolation is the Postgres SQLSTATE for unique-constraint failures.
const pgUniqueViolation = "23505"

// translate maps a storage error to the application error taxonomy.
// Record-not-found becomes NOT_FOUND for the given resource, constraint
// rejections become CONFLICT, anything else is an opaque internal error.
func translate(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return models.NewConflictError(resource+" already exists", err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewConflictError(resource+" already exists", err)
	}
	return models.NewInternalError(err)
}
