package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"timetracker/internal/forms"
	"timetracker/internal/models"
	"timetracker/internal/repository"
)

// AuthService checks credentials and provisions users.
type AuthService struct {
	repo *repository.UserRepository
}

func NewAuthService(repo *repository.UserRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Authenticate returns the user matching the credentials, or ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if err = notFound(err, "failed to load user"); err == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser loads a user by id; a missing user is ErrNotFound.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err, "failed to load user")
	}
	return user, nil
}

// CreateUser hashes the password and stores a new user.
func (s *AuthService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	if errs := forms.Validate(&forms.LoginForm{Username: username, Password: password}); errs != nil {
		return nil, errs
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}
	user := &models.User{Username: username, PasswordHash: string(hash)}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.Wrapf(err, "failed to create user %q", username)
	}
	log.Printf("Created user: ID=%s, Username=%s", user.ID, user.Username)
	return user, nil
}
