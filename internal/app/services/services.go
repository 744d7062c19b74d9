package services

import (
	"context"
	"time"

	"github.com/yigit/uniactivity/internal/app/models"
)

// Services defined in this package:
// - UserService: sign-up and user lookup
// - ClassService: class CRUD plus session and class recurrence expansion
// - InscriptionService: enrollment, cancellation and pending enrollments
// - AssistanceService: attendance confirmation and attendance queries

// UserStore persists users
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	// GetByID returns apperrors.ErrUserNotFound when no user has the id
	GetByID(ctx context.Context, id string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// ClassStore persists classes
type ClassStore interface {
	// Create stores every class or none of them. A taken id is apperrors.ErrConflict.
	Create(ctx context.Context, classes ...*models.Class) error
	// Update replaces the stored class; apperrors.ErrClassNotFound when it does not exist
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Class, error)
	GetAll(ctx context.Context) ([]models.Class, error)
	GetByType(ctx context.Context, classType string) ([]models.Class, error)
	// GetActiveOn returns classes whose last day is day or later
	GetActiveOn(ctx context.Context, day time.Time) ([]models.Class, error)
	// GetBySessionWindow returns classes with at least one session on day that starts at or
	// after start and ends at or before end
	GetBySessionWindow(ctx context.Context, day, start, end string) ([]models.Class, error)
}

// AssistanceFilter narrows assistance queries. Zero values do not filter.
type AssistanceFilter struct {
	UserID      string
	ClassID     string
	Confirmed   *bool
	StartAfter  *time.Time // exclusive
	StartBefore *time.Time // exclusive
	StartFrom   *time.Time // inclusive
	StartTo     *time.Time // inclusive
}

// AssistanceStore persists assistance records
type AssistanceStore interface {
	// Enroll stores records atomically. It fails with apperrors.ErrAlreadyEnrolled when the
	// user already holds a class-level record for the class, and with
	// apperrors.ErrCapacityReached when the class already has maxStudents records, counting
	// class-level and session records alike.
	Enroll(ctx context.Context, maxStudents int, records []*models.Assistance) error
	// FindByUserAndClass returns the class-level record when sessionID is empty, otherwise the
	// record of that session. apperrors.ErrEnrollmentNotFound when there is none.
	FindByUserAndClass(ctx context.Context, userID, classID, sessionID string) (*models.Assistance, error)
	// DeleteByUserAndClass removes every record of the pair and returns how many were removed
	DeleteByUserAndClass(ctx context.Context, userID, classID string) (int64, error)
	// MarkConfirmed confirms a pending record. apperrors.ErrAlreadyConfirmed when the record
	// was confirmed in the meantime.
	MarkConfirmed(ctx context.Context, id, instructorID string) (*models.Assistance, error)
	List(ctx context.Context, filter AssistanceFilter) ([]models.Assistance, error)
	Count(ctx context.Context, filter AssistanceFilter) (int64, error)
}

func boolPtr(b bool) *bool {
	return &b
}
