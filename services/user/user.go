package user

import (
	"context"
	"strings"
	"time"

	"fixly/apperr"
	"fixly/models"
	"fixly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 24 * time.Hour

// Register creates the account and issues a session token. Provider
// accounts also get an empty profile so the stats aggregator always
// has a document to write into.
func (s *DefaultUserService) Register(ctx context.Context, input models.UserRegistration) (*models.User, string, error) {
	if !input.Role.Valid() {
		return nil, "", apperr.Validation("role must be %q or %q", models.RoleCustomer, models.RoleProvider)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        strings.ToLower(input.Email),
		PasswordHash: string(hash),
		Phone:        input.Phone,
		Role:         input.Role,
		CreatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	if user.Role == models.RoleProvider {
		profile := &models.ProviderProfile{
			UserID:       user.ID,
			Services:     []models.ServiceOffering{},
			Availability: map[string]models.DayAvailability{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.Providers.Create(ctx, profile); err != nil {
			return nil, "", err
		}
	}

	token, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.Logger.Info("user registered",
		zap.String("userId", user.ID),
		zap.String("role", string(user.Role)))
	return user, token, nil
}

// Authenticate verifies credentials. Lookup and password failures are
// both reported as access denied so callers cannot probe for emails.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.Repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, "", apperr.AccessDenied("invalid email or password")
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.AccessDenied("invalid email or password")
	}

	token, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Revoke drops the session entry so the token stops validating even
// before its JWT expiry.
func (s *DefaultUserService) Revoke(ctx context.Context, token string) error {
	if s.AuthCache == nil {
		return nil
	}
	return s.AuthCache.Del(ctx, "session:"+utils.HashToken(token)).Err()
}

func (s *DefaultUserService) issueSession(ctx context.Context, user *models.User) (string, error) {
	token, err := utils.GenerateToken(user.ID, string(user.Role), sessionTTL)
	if err != nil {
		return "", err
	}
	if s.AuthCache != nil {
		key := "session:" + utils.HashToken(token)
		if err := s.AuthCache.Set(ctx, key, user.ID, sessionTTL).Err(); err != nil {
			return "", err
		}
	}
	return token, nil
}
