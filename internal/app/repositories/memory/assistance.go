package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/uniactivity/internal/app/models"
	"github.com/yigit/uniactivity/internal/app/services"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
)

type assistanceRepository struct {
	db *DB
}

var _ services.AssistanceStore = (*assistanceRepository)(nil) // interface compliance check

// NewAssistanceRepository creates an assistance store backed by db
func NewAssistanceRepository(db *DB) services.AssistanceStore {
	return &assistanceRepository{db: db}
}

func cloneAssistance(a *models.Assistance) models.Assistance {
	out := *a
	if a.SessionID != nil {
		id := *a.SessionID
		out.SessionID = &id
	}
	if a.InstructorID != nil {
		id := *a.InstructorID
		out.InstructorID = &id
	}
	return out
}

func sameSession(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func matches(a *models.Assistance, f services.AssistanceFilter) bool {
	switch {
	case f.UserID != "" && a.UserID != f.UserID:
		return false
	case f.ClassID != "" && a.ClassID != f.ClassID:
		return false
	case f.Confirmed != nil && a.Confirm != *f.Confirmed:
		return false
	case f.StartAfter != nil && !a.StartTime.After(*f.StartAfter):
		return false
	case f.StartBefore != nil && !a.StartTime.Before(*f.StartBefore):
		return false
	case f.StartFrom != nil && a.StartTime.Before(*f.StartFrom):
		return false
	case f.StartTo != nil && a.StartTime.After(*f.StartTo):
		return false
	}
	return true
}

// Enroll checks duplicates and capacity and inserts records under the write lock
func (repo *assistanceRepository) Enroll(_ context.Context, maxStudents int, records []*models.Assistance) error {
	if len(records) == 0 {
		return nil
	}

	repo.db.Lock()
	defer repo.db.Unlock()

	classID := records[0].ClassID
	var enrolled int
	var duplicate bool
	repo.db.assistances.each(func(a *models.Assistance) bool {
		if a.ClassID != classID {
			return true
		}
		enrolled++
		for _, r := range records {
			if a.UserID == r.UserID && sameSession(a.SessionID, r.SessionID) {
				duplicate = true
				return false
			}
		}
		return true
	})
	if duplicate {
		return apperrors.ErrAlreadyEnrolled
	}
	if enrolled >= maxStudents {
		return apperrors.ErrCapacityReached
	}

	now := repo.db.now().UTC()
	for _, r := range records {
		r.ID = uuid.NewString()
		r.Confirm = false
		r.InstructorID = nil
		r.CreatedAt = now
		r.UpdatedAt = now
		row := cloneAssistance(r)
		repo.db.assistances.insert(row.ID, &row)
	}
	return nil
}

func (repo *assistanceRepository) FindByUserAndClass(_ context.Context, userID, classID, sessionID string) (*models.Assistance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var found *models.Assistance
	repo.db.assistances.each(func(a *models.Assistance) bool {
		if a.UserID != userID || a.ClassID != classID {
			return true
		}
		if (sessionID == "" && a.SessionID == nil) || (a.SessionID != nil && *a.SessionID == sessionID) {
			record := cloneAssistance(a)
			found = &record
			return false
		}
		return true
	})
	if found == nil {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return found, nil
}

func (repo *assistanceRepository) DeleteByUserAndClass(_ context.Context, userID, classID string) (int64, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var ids []string
	repo.db.assistances.each(func(a *models.Assistance) bool {
		if a.UserID == userID && a.ClassID == classID {
			ids = append(ids, a.ID)
		}
		return true
	})
	for _, id := range ids {
		repo.db.assistances.remove(id)
	}
	return int64(len(ids)), nil
}

func (repo *assistanceRepository) MarkConfirmed(_ context.Context, id, instructorID string) (*models.Assistance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	a, ok := repo.db.assistances.rows[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	if a.Confirm {
		return nil, apperrors.ErrAlreadyConfirmed
	}

	a.Confirm = true
	if instructorID != "" {
		a.InstructorID = &instructorID
	}
	a.UpdatedAt = repo.db.now().UTC()

	record := cloneAssistance(a)
	return &record, nil
}

func (repo *assistanceRepository) List(_ context.Context, filter services.AssistanceFilter) ([]models.Assistance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]models.Assistance, 0)
	repo.db.assistances.each(func(a *models.Assistance) bool {
		if matches(a, filter) {
			records = append(records, cloneAssistance(a))
		}
		return true
	})
	return records, nil
}

func (repo *assistanceRepository) Count(_ context.Context, filter services.AssistanceFilter) (int64, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var count int64
	repo.db.assistances.each(func(a *models.Assistance) bool {
		if matches(a, filter) {
			count++
		}
		return true
	})
	return count, nil
}
