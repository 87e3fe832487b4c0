// Package auth is the access guard: bearer-token authorization over a
// live session registry, plus the login/signup/logout operations that
// feed it.
package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tableside/internal/domain"
	"tableside/internal/logger"
	"tableside/internal/repository"
)

const bcryptCost = 10

type Service struct {
	users    repository.Users
	registry *Registry
	lg       *logger.Logger
}

func NewService(users repository.Users, registry *Registry, lg *logger.Logger) *Service {
	return &Service{users: users, registry: registry, lg: lg}
}

// Authorize resolves the token and, when roles is non-empty, requires
// the identity's role to be a member.
func (s *Service) Authorize(token string, roles ...string) (Identity, error) {
	if token == "" {
		return Identity{}, domain.ErrUnauthenticated
	}
	id, ok := s.registry.Lookup(token)
	if !ok {
		return Identity{}, domain.ErrUnauthenticated
	}
	if len(roles) == 0 {
		return id, nil
	}
	for _, r := range roles {
		if id.Role == r {
			return id, nil
		}
	}
	return Identity{}, domain.ErrForbidden
}

// Login verifies credentials and issues a fresh opaque token.
func (s *Service) Login(ctx context.Context, username, password string) (string, string, error) {
	u, ok, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return "", "", fmt.Errorf("failed to look up user: %w", err)
	}
	if !ok {
		return "", "", domain.Invalidf("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", "", domain.Invalidf("invalid credentials")
	}

	token := uuid.NewString()
	s.registry.Insert(token, Identity{UserID: u.ID, Role: u.Role, Username: u.Username})
	s.lg.Info("login", map[string]any{"username": u.Username, "role": u.Role})
	return token, u.Role, nil
}

// Signup creates an account with a hashed password. Username conflicts
// are a validation error, as in a form resubmission.
func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) (string, error) {
	if req.Username == "" || req.Password == "" || req.Role == "" {
		return "", domain.Invalidf("all fields are required")
	}
	if _, exists, err := s.users.ByUsername(ctx, req.Username); err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	} else if exists {
		return "", domain.Invalidf("username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	s.lg.Info("user_created", map[string]any{"username": u.Username, "role": u.Role})
	return u.ID, nil
}

// Logout drops the token. Unknown tokens are ignored.
func (s *Service) Logout(token string) {
	s.registry.Remove(token)
}
