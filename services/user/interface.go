package user

import (
	"context"

	providerRepo "fixly/database/repository/provider"
	userRepo "fixly/database/repository/user"
	"fixly/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// UserService handles accounts and sessions. The booking core only
// ever consumes it through the user repository's role lookup; this
// service exists so the HTTP layer has registration and login.
type UserService interface {
	// Register creates an account and, for providers, an empty
	// provider profile. Returns the user and a session token.
	Register(ctx context.Context, input models.UserRegistration) (*models.User, string, error)
	// Authenticate verifies credentials and issues a session token.
	Authenticate(ctx context.Context, email, password string) (*models.User, string, error)
	// Revoke invalidates a session token.
	Revoke(ctx context.Context, token string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	Providers providerRepo.ProviderRepository
	AuthCache *redis.Client // optional; nil disables session revocation
	Logger    *zap.Logger
}
