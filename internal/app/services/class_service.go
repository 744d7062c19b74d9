package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/uniactivity/internal/app/models"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
)

// ClassService defines the interface for class operations
type ClassService interface {
	GetAllClasses(ctx context.Context) ([]models.Class, error)
	GetClassByID(ctx context.Context, id string) (*models.Class, error)
	CreateClass(ctx context.Context, class *models.Class) ([]models.Class, error)
	UpdateClass(ctx context.Context, id string, class *models.Class) (*models.Class, error)
	DeleteClass(ctx context.Context, id string) error
	GetClassesByType(ctx context.Context, classType string) ([]models.Class, error)
	GetActiveClasses(ctx context.Context, now time.Time) ([]models.Class, error)
	GetClassesBySessionWindow(ctx context.Context, day, startTime, endTime string) ([]models.Class, error)
}

// classServiceImpl implements ClassService
type classServiceImpl struct {
	classStore ClassStore
	logger     zerolog.Logger
}

// NewClassService creates a new ClassService
func NewClassService(classStore ClassStore, logger zerolog.Logger) ClassService {
	return &classServiceImpl{
		classStore: classStore,
		logger:     logger,
	}
}

func (s *classServiceImpl) validateClass(class *models.Class) error {
	if class == nil {
		return fmt.Errorf("%w: class is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(class.Name) == "" {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "name cannot be empty")
	}
	if class.MaxStudents <= 0 {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "maxStudents must be positive")
	}
	if class.EndTime.Before(class.StartTime) {
		return apperrors.NewCustomError(apperrors.ErrInvalidSchedule, "endTime cannot be before startTime")
	}
	if class.StartDate != nil && class.EndDate != nil && class.EndDate.Before(*class.StartDate) {
		return apperrors.NewCustomError(apperrors.ErrInvalidSchedule, "endDate cannot be before startDate")
	}
	return ValidateRepetition(class.Repetition)
}

// GetAllClasses returns every class
func (s *classServiceImpl) GetAllClasses(ctx context.Context) ([]models.Class, error) {
	classes, err := s.classStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting classes: %w", err)
	}
	return classes, nil
}

// GetClassByID retrieves a class by ID
func (s *classServiceImpl) GetClassByID(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.classStore.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrClassNotFound, fmt.Sprintf("class %s not found", id))
		}
		return nil, fmt.Errorf("error finding class: %w", err)
	}
	return class, nil
}

// CreateClass stores a class and every occurrence derived from it. The base class comes
// first with its sessions extended weekly up to its end date, followed by one copy per
// repetition unit. The base and its copies are stored together or not at all; nothing is
// stored when the repetition or a session template is invalid.
func (s *classServiceImpl) CreateClass(ctx context.Context, class *models.Class) ([]models.Class, error) {
	if err := s.validateClass(class); err != nil {
		return nil, err
	}

	for i := range class.Sessions {
		if strings.TrimSpace(class.Sessions[i].ID) == "" {
			class.Sessions[i].ID = uuid.NewString()
		}
	}

	repeatedSessions, err := GenerateRepeatedSessions(class)
	if err != nil {
		return nil, err
	}
	copies, err := RepeatClass(class)
	if err != nil {
		return nil, err
	}
	class.Sessions = append(class.Sessions, repeatedSessions...)

	batch := make([]*models.Class, 0, len(copies)+1)
	batch = append(batch, class)
	for i := range copies {
		batch = append(batch, &copies[i])
	}
	if err := s.classStore.Create(ctx, batch...); err != nil {
		return nil, fmt.Errorf("error creating class: %w", err)
	}

	created := make([]models.Class, 0, len(batch))
	for _, c := range batch {
		created = append(created, *c)
	}

	s.logger.Info().
		Str("classId", class.ID).
		Int("sessions", len(class.Sessions)).
		Int("repetitions", len(copies)).
		Msg("Class created")

	return created, nil
}

// UpdateClass replaces the class stored under id
func (s *classServiceImpl) UpdateClass(ctx context.Context, id string, class *models.Class) (*models.Class, error) {
	if err := s.validateClass(class); err != nil {
		return nil, err
	}

	class.ID = id
	if err := s.classStore.Update(ctx, class); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrClassNotFound, fmt.Sprintf("class %s not found", id))
		}
		return nil, fmt.Errorf("error updating class: %w", err)
	}

	s.logger.Info().Str("classId", id).Msg("Class updated")
	return class, nil
}

// DeleteClass deletes a class by ID. Its assistance records go with it.
func (s *classServiceImpl) DeleteClass(ctx context.Context, id string) error {
	if err := s.classStore.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewCustomError(apperrors.ErrClassNotFound, fmt.Sprintf("class %s not found", id))
		}
		return fmt.Errorf("error deleting class: %w", err)
	}

	s.logger.Info().Str("classId", id).Msg("Class deleted")
	return nil
}

// GetClassesByType returns classes of the given activity type
func (s *classServiceImpl) GetClassesByType(ctx context.Context, classType string) ([]models.Class, error) {
	classes, err := s.classStore.GetByType(ctx, classType)
	if err != nil {
		return nil, fmt.Errorf("error getting classes by type: %w", err)
	}
	return classes, nil
}

// GetActiveClasses returns classes that end today or later
func (s *classServiceImpl) GetActiveClasses(ctx context.Context, now time.Time) ([]models.Class, error) {
	classes, err := s.classStore.GetActiveOn(ctx, calendarDate(now))
	if err != nil {
		return nil, fmt.Errorf("error getting active classes: %w", err)
	}
	return classes, nil
}

// GetClassesBySessionWindow returns classes having a session on day inside [startTime, endTime]
func (s *classServiceImpl) GetClassesBySessionWindow(ctx context.Context, day, startTime, endTime string) ([]models.Class, error) {
	if strings.TrimSpace(day) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "day is required")
	}
	classes, err := s.classStore.GetBySessionWindow(ctx, day, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("error getting classes by schedule: %w", err)
	}
	return classes, nil
}
