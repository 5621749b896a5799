// Package validation contains pure field-level checks for domain records.
// Checks run before a record enters a store; referential checks (MPA, genre,
// user, film ids) belong to the service layer, not here.
package validation

import (
	"strings"

	"filmgraph/internal/models"
)

const maxDescriptionLen = 200

// ValidateFilm checks film fields in order: name, description, release date,
// duration. The first failing rule wins.
func ValidateFilm(film *models.Film) error {
	if strings.TrimSpace(film.Name) == "" {
		return models.NewValidationError("Film name must not be empty")
	}
	if len([]rune(film.Description)) > maxDescriptionLen {
		return models.NewValidationError("Film description must be at most 200 characters")
	}
	if !film.ReleaseDate.IsZero() && film.ReleaseDate.Before(models.EarliestReleaseDate) {
		return models.NewValidationError("Release date must not be before 1895-12-28")
	}
	if film.Duration <= 0 {
		return models.NewValidationError("Film duration must be a positive number of minutes")
	}
	return nil
}
