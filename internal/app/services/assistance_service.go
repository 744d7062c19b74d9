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

// AssistanceService defines the interface for attendance operations
type AssistanceService interface {
	Confirm(ctx context.Context, userID, classID, sessionID, instructorID string) (*models.Assistance, error)
	ConfirmedAll(ctx context.Context) ([]models.Assistance, error)
	AbsencesBefore(ctx context.Context, now time.Time) ([]models.Assistance, error)
	CountConfirmedInRange(ctx context.Context, userID string, start, end time.Time) (int64, error)
	CountConfirmedForClass(ctx context.Context, userID, classID string) (int64, error)
	HistoryForUser(ctx context.Context, userID string) ([]models.Assistance, error)
}

// assistanceServiceImpl implements AssistanceService
type assistanceServiceImpl struct {
	assistanceStore AssistanceStore
	logger          zerolog.Logger
}

// NewAssistanceService creates a new AssistanceService
func NewAssistanceService(assistanceStore AssistanceStore, logger zerolog.Logger) AssistanceService {
	return &assistanceServiceImpl{
		assistanceStore: assistanceStore,
		logger:          logger,
	}
}

// Confirm marks the user's record for the class, or for one session when sessionID is set,
// as attended and witnessed by instructorID.
func (s *assistanceServiceImpl) Confirm(ctx context.Context, userID, classID, sessionID, instructorID string) (*models.Assistance, error) {
	record, err := s.assistanceStore.FindByUserAndClass(ctx, userID, classID, sessionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrNotEnrolled, notEnrolledMessage(userID, classID, sessionID))
		}
		return nil, fmt.Errorf("error finding enrollment: %w", err)
	}

	if record.Confirm {
		return nil, apperrors.NewCustomError(apperrors.ErrAlreadyConfirmed, "attendance already confirmed")
	}

	confirmed, err := s.assistanceStore.MarkConfirmed(ctx, record.ID, instructorID)
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrAlreadyConfirmed):
			return nil, apperrors.NewCustomError(apperrors.ErrAlreadyConfirmed, "attendance already confirmed")
		case apperrors.IsNotFound(err):
			// cancelled between lookup and update
			return nil, apperrors.NewCustomError(apperrors.ErrNotEnrolled, notEnrolledMessage(userID, classID, sessionID))
		}
		return nil, fmt.Errorf("error confirming attendance: %w", err)
	}

	s.logger.Info().
		Str("assistanceId", confirmed.ID).
		Str("userId", userID).
		Str("classId", classID).
		Str("sessionId", sessionID).
		Str("instructorId", instructorID).
		Msg("Attendance confirmed")

	return confirmed, nil
}

func notEnrolledMessage(userID, classID, sessionID string) string {
	if sessionID != "" {
		return fmt.Sprintf("user %s is not enrolled in session %s of class %s", userID, sessionID, classID)
	}
	return fmt.Sprintf("user %s is not enrolled in class %s", userID, classID)
}

// ConfirmedAll returns every confirmed record
func (s *assistanceServiceImpl) ConfirmedAll(ctx context.Context) ([]models.Assistance, error) {
	records, err := s.assistanceStore.List(ctx, AssistanceFilter{Confirmed: boolPtr(true)})
	if err != nil {
		return nil, fmt.Errorf("error getting confirmed attendance: %w", err)
	}
	return records, nil
}

// AbsencesBefore returns unconfirmed records scheduled strictly before now
func (s *assistanceServiceImpl) AbsencesBefore(ctx context.Context, now time.Time) ([]models.Assistance, error) {
	records, err := s.assistanceStore.List(ctx, AssistanceFilter{
		Confirmed:   boolPtr(false),
		StartBefore: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("error getting absences: %w", err)
	}
	return records, nil
}

// CountConfirmedInRange counts the user's confirmed records between the start of the start
// day and the end of the end day. Zero is reported as apperrors.ErrNoAttendance.
func (s *assistanceServiceImpl) CountConfirmedInRange(ctx context.Context, userID string, start, end time.Time) (int64, error) {
	from := helpers.StartOfDay(start)
	to := helpers.EndOfDay(end)
	if to.Before(from) {
		return 0, apperrors.NewCustomError(apperrors.ErrValidationFailed, "end date cannot be before start date")
	}

	count, err := s.assistanceStore.Count(ctx, AssistanceFilter{
		UserID:    userID,
		Confirmed: boolPtr(true),
		StartFrom: &from,
		StartTo:   &to,
	})
	if err != nil {
		return 0, fmt.Errorf("error counting attendance: %w", err)
	}
	if count == 0 {
		return 0, apperrors.NewCustomError(apperrors.ErrNoAttendance,
			fmt.Sprintf("no attendance on record for user %s", userID))
	}
	return count, nil
}

// CountConfirmedForClass counts the user's confirmed records for the class. Zero is
// reported as apperrors.ErrNoAttendance.
func (s *assistanceServiceImpl) CountConfirmedForClass(ctx context.Context, userID, classID string) (int64, error) {
	count, err := s.assistanceStore.Count(ctx, AssistanceFilter{
		UserID:    userID,
		ClassID:   classID,
		Confirmed: boolPtr(true),
	})
	if err != nil {
		return 0, fmt.Errorf("error counting attendance: %w", err)
	}
	if count == 0 {
		return 0, apperrors.NewCustomError(apperrors.ErrNoAttendance,
			fmt.Sprintf("no attendance on record for user %s in class %s", userID, classID))
	}
	return count, nil
}

// HistoryForUser returns the user's confirmed records in store order
func (s *assistanceServiceImpl) HistoryForUser(ctx context.Context, userID string) ([]models.Assistance, error) {
	records, err := s.assistanceStore.List(ctx, AssistanceFilter{
		UserID:    userID,
		Confirmed: boolPtr(true),
	})
	if err != nil {
		return nil, fmt.Errorf("error getting attendance history: %w", err)
	}
	return records, nil
}
