package validation

import (
	"strings"

	"filmgraph/internal/models"
)

// ValidateUser checks user fields and normalizes the display name: when Name
// is blank it is replaced by Login. That substitution is a documented side
// effect, not an error.
func ValidateUser(user *models.User) error {
	if strings.TrimSpace(user.Email) == "" {
		return models.NewValidationError("Email must not be empty")
	}
	if !strings.Contains(user.Email, "@") {
		return models.NewValidationError("Email must contain the @ character")
	}
	if strings.TrimSpace(user.Login) == "" {
		return models.NewValidationError("Login must not be empty")
	}
	if strings.ContainsAny(user.Login, " \t") {
		return models.NewValidationError("Login must not contain whitespace")
	}
	if user.Birthday.IsZero() {
		return models.NewValidationError("Birthday must be set")
	}
	if user.Birthday.After(models.Today()) {
		return models.NewValidationError("Birthday must not be in the future")
	}

	if strings.TrimSpace(user.Name) == "" {
		user.Name = user.Login
	}
	return nil
}
