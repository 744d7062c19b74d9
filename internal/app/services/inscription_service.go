package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/uniactivity/internal/app/models"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
	"github.com/yigit/uniactivity/internal/pkg/helpers"
)

// InscriptionService defines the interface for enrollment operations
type InscriptionService interface {
	Enroll(ctx context.Context, userID, classID string, startTime *time.Time) ([]models.Assistance, error)
	Cancel(ctx context.Context, userID, classID string) error
	PendingForUser(ctx context.Context, userID string, now time.Time) ([]models.Assistance, error)
	PendingAll(ctx context.Context, now time.Time) ([]models.Assistance, error)
}

// inscriptionServiceImpl implements InscriptionService
type inscriptionServiceImpl struct {
	userStore       UserStore
	classStore      ClassStore
	assistanceStore AssistanceStore
	logger          zerolog.Logger
}

// NewInscriptionService creates a new InscriptionService
func NewInscriptionService(
	userStore UserStore,
	classStore ClassStore,
	assistanceStore AssistanceStore,
	logger zerolog.Logger,
) InscriptionService {
	return &inscriptionServiceImpl{
		userStore:       userStore,
		classStore:      classStore,
		assistanceStore: assistanceStore,
		logger:          logger,
	}
}

// Enroll reserves a seat for the user in the class. One pending record covers the class and
// one more is added per distinct session of the class. startTime defaults to the class start.
func (s *inscriptionServiceImpl) Enroll(ctx context.Context, userID, classID string, startTime *time.Time) ([]models.Assistance, error) {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, fmt.Sprintf("user %s not found", userID))
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	class, err := s.classStore.GetByID(ctx, classID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrClassNotFound, fmt.Sprintf("class %s not found", classID))
		}
		return nil, fmt.Errorf("error finding class: %w", err)
	}

	records := buildEnrollmentRecords(userID, class, startTime)
	if err := s.assistanceStore.Enroll(ctx, class.MaxStudents, records); err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrAlreadyEnrolled):
			s.logger.Debug().Str("userId", userID).Str("classId", classID).Msg("Rejected duplicate enrollment")
			return nil, apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled,
				fmt.Sprintf("user %s is already enrolled in class %s", userID, classID))
		case apperrors.Is(err, apperrors.ErrCapacityReached):
			s.logger.Debug().Str("classId", classID).Int("maxStudents", class.MaxStudents).Msg("Rejected enrollment, class is full")
			return nil, apperrors.NewCustomError(apperrors.ErrCapacityReached,
				fmt.Sprintf("class %s has reached its capacity of %d", classID, class.MaxStudents))
		}
		return nil, fmt.Errorf("error enrolling user: %w", err)
	}

	s.logger.Info().
		Str("userId", userID).
		Str("classId", classID).
		Int("records", len(records)).
		Msg("Enrollment created")

	enrolled := make([]models.Assistance, 0, len(records))
	for _, r := range records {
		enrolled = append(enrolled, *r)
	}
	return enrolled, nil
}

// buildEnrollmentRecords creates the class-level record followed by one record per distinct
// session id. Repeated sessions share their template id, so the first occurrence wins.
func buildEnrollmentRecords(userID string, class *models.Class, startTime *time.Time) []*models.Assistance {
	classStart := class.StartTime
	if startTime != nil {
		classStart = *startTime
	}

	records := []*models.Assistance{{
		UserID:    userID,
		ClassID:   class.ID,
		StartTime: classStart,
	}}

	seen := make(map[string]bool, len(class.Sessions))
	for _, session := range class.Sessions {
		if session.ID == "" || seen[session.ID] {
			continue
		}
		seen[session.ID] = true

		sessionStart := classStart
		if t, _, err := helpers.ParseDateTime(session.StartTime); err == nil {
			sessionStart = t
		}
		sessionID := session.ID
		records = append(records, &models.Assistance{
			UserID:    userID,
			ClassID:   class.ID,
			SessionID: &sessionID,
			StartTime: sessionStart,
		})
	}
	return records
}

// Cancel removes every record the user holds for the class
func (s *inscriptionServiceImpl) Cancel(ctx context.Context, userID, classID string) error {
	removed, err := s.assistanceStore.DeleteByUserAndClass(ctx, userID, classID)
	if err != nil {
		return fmt.Errorf("error cancelling enrollment: %w", err)
	}
	if removed == 0 {
		return apperrors.NewCustomError(apperrors.ErrEnrollmentNotFound,
			fmt.Sprintf("user %s is not enrolled in class %s", userID, classID))
	}

	s.logger.Info().Str("userId", userID).Str("classId", classID).Int64("records", removed).Msg("Enrollment cancelled")
	return nil
}

// PendingForUser returns the user's unconfirmed records scheduled after now
func (s *inscriptionServiceImpl) PendingForUser(ctx context.Context, userID string, now time.Time) ([]models.Assistance, error) {
	records, err := s.assistanceStore.List(ctx, AssistanceFilter{
		UserID:     userID,
		Confirmed:  boolPtr(false),
		StartAfter: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("error getting pending enrollments: %w", err)
	}
	return records, nil
}

// PendingAll returns every unconfirmed record scheduled after now
func (s *inscriptionServiceImpl) PendingAll(ctx context.Context, now time.Time) ([]models.Assistance, error) {
	records, err := s.assistanceStore.List(ctx, AssistanceFilter{
		Confirmed:  boolPtr(false),
		StartAfter: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("error getting pending enrollments: %w", err)
	}
	return records, nil
}
