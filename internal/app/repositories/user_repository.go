package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniactivity/internal/app/models"
	"github.com/yigit/uniactivity/internal/db"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
	"github.com/yigit/uniactivity/internal/pkg/dberrors"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *db.PostgresDB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{db: database}
}

// Create inserts a user and assigns an id when it has none
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	sql, args, err := psql.Insert("users").
		Columns("id", "name", "role", "identification", "email").
		Values(user.ID, user.Name, string(user.Role), user.Identification, user.Email).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&user.CreatedAt)
	switch {
	case err == nil:
		return nil
	case dberrors.IsDuplicateConstraintError(err, "users_email_key"):
		return apperrors.ErrEmailAlreadyExists
	case dberrors.IsDuplicateConstraintError(err, "users_identification_key"):
		return apperrors.ErrIdentifierExists
	case dberrors.IsUniqueViolation(err):
		return apperrors.NewConflictError("user id already exists")
	}
	return fmt.Errorf("error creating user: %w", err)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	sql, args, err := psql.Select("id", "name", "role", "identification", "email", "created_at").
		From("users").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var user models.User
	var role string
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Name, &role, &user.Identification, &user.Email, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	user.Role = models.RoleType(role)
	return &user, nil
}

// Count returns the number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}
