package userRepo

import (
	"context"

	"fixly/models"
)

// UserRepository defines methods for user account data access.
type UserRepository interface {
	// Create inserts a new user record. Returns apperr.Conflict when
	// the email is already registered.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
