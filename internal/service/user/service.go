package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hospitalar/visitas-api/internal/model"
	"github.com/hospitalar/visitas-api/internal/repository"
	apperrors "github.com/hospitalar/visitas-api/pkg/errors"
	"github.com/hospitalar/visitas-api/pkg/logger"
	"github.com/hospitalar/visitas-api/pkg/security"
)

type UserService interface {
	RegisterUser(ctx context.Context, req *model.RegisterUserRequest) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	EnsureDefaultAdmin(ctx context.Context, name, email, password string) error
}

type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
	log    *logger.Logger
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher, log *logger.Logger) *Service {
	return &Service{repo: repo, hasher: hasher, log: log}
}

func (s *Service) RegisterUser(ctx context.Context, req *model.RegisterUserRequest) (*model.User, error) {
	if req.Role != model.UserRoleAdmin && req.Role != model.UserRoleReceptionist {
		return nil, apperrors.BadRequest("invalid role", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("email already registered", err)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// EnsureDefaultAdmin creates the well-known admin account if absent. It is
// idempotent: a concurrent or repeated bootstrap that loses the unique-email
// race still reports success.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, name, email, password string) error {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}

	_, err := s.RegisterUser(ctx, &model.RegisterUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     model.UserRoleAdmin,
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrConflict {
			return nil
		}
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	s.log.Info("default admin account created", "email", email)
	return nil
}
