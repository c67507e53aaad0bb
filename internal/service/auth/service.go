package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/hospitalar/visitas-api/internal/model"
	"github.com/hospitalar/visitas-api/internal/repository"
	apperrors "github.com/hospitalar/visitas-api/pkg/errors"
	"github.com/hospitalar/visitas-api/pkg/security"
	"github.com/hospitalar/visitas-api/pkg/session"
)

// Distinguishable authentication failures. Handlers may collapse them into
// a single generic message toward the client.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
)

type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ValidateSession(token string) (string, error)
}

type Service struct {
	userRepo repository.UserRepository
	hasher   security.PasswordHasher
	sessions *session.Manager
}

func NewService(userRepo repository.UserRepository, hasher security.PasswordHasher, sessions *session.Manager) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		sessions: sessions,
	}
}

// Authenticate verifies the credentials and, on success, issues a session
// token bound to the user's email.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperrors.BadRequest("email and password are required", nil)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperrors.Unauthorized("invalid credentials", ErrUserNotFound)
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, "", apperrors.Unauthorized("invalid credentials", ErrIncorrectPassword)
	}

	token, err := s.sessions.Issue(user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session: %w", err)
	}

	return user, token, nil
}

// ValidateSession resolves a session token to its subject email. Expired or
// malformed tokens behave as an absent session.
func (s *Service) ValidateSession(token string) (string, error) {
	return s.sessions.Validate(token)
}
