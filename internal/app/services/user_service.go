package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/uniactivity/internal/app/models"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
	"github.com/yigit/uniactivity/internal/pkg/validation"
)

// UserService defines the interface for user operations
type UserService interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userStore UserStore
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore UserStore, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userStore: userStore,
		logger:    logger,
	}
}

// validateUser normalizes and validates a user before it is stored
func (s *userServiceImpl) validateUser(user *models.User) error {
	if user == nil {
		return fmt.Errorf("%w: user is nil", apperrors.ErrValidationFailed)
	}

	user.Name = strings.TrimSpace(user.Name)
	if user.Name == "" {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "name cannot be empty")
	}

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if !validation.IsEmail(user.Email) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("invalid email address: %s", user.Email))
	}

	user.Identification = strings.TrimSpace(user.Identification)
	if user.Identification == "" {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "identification cannot be empty")
	}

	role, ok := models.ParseRole(string(user.Role))
	if !ok {
		return apperrors.NewCustomError(apperrors.ErrInvalidRole, fmt.Sprintf("unknown role: %s", user.Role))
	}
	user.Role = role

	return nil
}

// CreateUser registers a new user. Email and identification must be unique.
func (s *userServiceImpl) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.validateUser(user); err != nil {
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if apperrors.Is(err, apperrors.ErrEmailAlreadyExists, apperrors.ErrIdentifierExists) {
			s.logger.Debug().Err(err).Str("email", user.Email).Msg("Rejected duplicate user")
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Str("userId", user.ID).Str("role", string(user.Role)).Msg("User created")
	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userServiceImpl) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, fmt.Sprintf("user %s not found", id))
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return user, nil
}
