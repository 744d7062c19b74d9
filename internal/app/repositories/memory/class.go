package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/uniactivity/internal/app/models"
	"github.com/yigit/uniactivity/internal/app/services"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
)

type classRepository struct {
	db *DB
}

var _ services.ClassStore = (*classRepository)(nil) // interface compliance check

// NewClassRepository creates a class store backed by db
func NewClassRepository(db *DB) services.ClassStore {
	return &classRepository{db: db}
}

func cloneClass(c *models.Class) models.Class {
	out := *c
	out.Sessions = append([]models.Session(nil), c.Sessions...)
	out.Resources = append([]models.Equipment(nil), c.Resources...)
	return out
}

func (repo *classRepository) query(match func(c *models.Class) bool) []models.Class {
	classes := make([]models.Class, 0)
	repo.db.classes.each(func(c *models.Class) bool {
		if match(c) {
			classes = append(classes, cloneClass(c))
		}
		return true
	})
	return classes
}

func (repo *classRepository) Create(_ context.Context, classes ...*models.Class) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	seen := make(map[string]bool, len(classes))
	for _, class := range classes {
		if class.ID == "" {
			continue
		}
		if _, exists := repo.db.classes.rows[class.ID]; exists || seen[class.ID] {
			return apperrors.NewConflictError("class id already exists")
		}
		seen[class.ID] = true
	}

	now := repo.db.now().UTC()
	for _, class := range classes {
		if class.ID == "" {
			class.ID = uuid.NewString()
		}
		class.CreatedAt = now
		class.UpdatedAt = now

		row := cloneClass(class)
		repo.db.classes.insert(row.ID, &row)
	}
	return nil
}

func (repo *classRepository) Update(_ context.Context, class *models.Class) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	existing, ok := repo.db.classes.rows[class.ID]
	if !ok {
		return apperrors.ErrClassNotFound
	}
	class.CreatedAt = existing.CreatedAt
	class.UpdatedAt = repo.db.now().UTC()

	row := cloneClass(class)
	repo.db.classes.rows[class.ID] = &row
	return nil
}

func (repo *classRepository) Delete(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.classes.rows[id]; !ok {
		return apperrors.ErrClassNotFound
	}
	repo.db.classes.remove(id)

	var orphaned []string
	repo.db.assistances.each(func(a *models.Assistance) bool {
		if a.ClassID == id {
			orphaned = append(orphaned, a.ID)
		}
		return true
	})
	for _, aid := range orphaned {
		repo.db.assistances.remove(aid)
	}
	return nil
}

func (repo *classRepository) GetByID(_ context.Context, id string) (*models.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if c, ok := repo.db.classes.rows[id]; ok {
		class := cloneClass(c)
		return &class, nil
	}
	return nil, apperrors.ErrClassNotFound
}

func (repo *classRepository) GetAll(_ context.Context) ([]models.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(func(*models.Class) bool { return true }), nil
}

func (repo *classRepository) GetByType(_ context.Context, classType string) ([]models.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(func(c *models.Class) bool { return c.Type == classType }), nil
}

func (repo *classRepository) GetActiveOn(_ context.Context, day time.Time) ([]models.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(func(c *models.Class) bool { return !c.ActiveUntil().Before(day) }), nil
}

// GetBySessionWindow compares session times as strings, like the database query does
func (repo *classRepository) GetBySessionWindow(_ context.Context, day, start, end string) ([]models.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(func(c *models.Class) bool {
		for _, s := range c.Sessions {
			if s.Day == day && s.StartTime >= start && (end == "" || s.EndTime <= end) {
				return true
			}
		}
		return false
	}), nil
}
