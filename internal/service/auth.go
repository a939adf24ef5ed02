package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"pydenweb/internal/model"
	"pydenweb/internal/repository"
)

// ErrInvalidCredentials covers both unknown accounts and wrong passwords so
// the two cases are indistinguishable to a caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// seedHashCost matches the cost the original deployment used for the admin hash.
const seedHashCost = 12

// AuthService authenticates admin operators and seeds the initial account.
type AuthService interface {
	// Authenticate verifies email and password against the stored bcrypt hash.
	Authenticate(ctx context.Context, email, password string) (*model.User, error)

	// EnsureAdmin creates the admin account if it does not exist yet.
	// A blank email disables seeding.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	users repository.UserRepository
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if password == "" {
		return fmt.Errorf("admin password is required when admin email is set")
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), seedHashCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := s.users.Create(ctx, &model.User{Email: email, PasswordHash: string(hash)}); err != nil {
		// Another instance may have seeded concurrently.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("create admin account: %w", err)
	}
	return nil
}
