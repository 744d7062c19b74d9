package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/uniactivity/internal/app/models"
	"github.com/yigit/uniactivity/internal/app/services"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
)

type userRepository struct {
	db *DB
}

var _ services.UserStore = (*userRepository)(nil) // interface compliance check

// NewUserRepository creates a user store backed by db
func NewUserRepository(db *DB) services.UserStore {
	return &userRepository{db: db}
}

func (repo *userRepository) Create(_ context.Context, user *models.User) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	var conflict error
	repo.db.users.each(func(u *models.User) bool {
		switch {
		case u.Email == user.Email:
			conflict = apperrors.ErrEmailAlreadyExists
		case u.Identification == user.Identification:
			conflict = apperrors.ErrIdentifierExists
		}
		return conflict == nil
	})
	if conflict != nil {
		return conflict
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if _, exists := repo.db.users.rows[user.ID]; exists {
		return apperrors.NewConflictError("user id already exists")
	}
	user.CreatedAt = repo.db.now().UTC()

	row := *user
	repo.db.users.insert(row.ID, &row)
	return nil
}

func (repo *userRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if u, ok := repo.db.users.rows[id]; ok {
		user := *u
		return &user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (repo *userRepository) Count(_ context.Context) (int64, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return int64(len(repo.db.users.rows)), nil
}
