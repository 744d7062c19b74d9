package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/yigit/uniactivity/internal/app/models"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
	"github.com/yigit/uniactivity/internal/pkg/helpers"
)

const sessionInterval = 7 // days

// GenerateRepeatedSessions expands the first session template of class into weekly
// occurrences up to and including the class end date. The generated sessions reuse the
// template id and day label. Only the first template is used as a basis, even when the
// class has several.
func GenerateRepeatedSessions(class *models.Class) ([]models.Session, error) {
	if class == nil || len(class.Sessions) == 0 || class.EndDate == nil {
		return nil, nil
	}

	template := class.Sessions[0]
	start, startLayout, err := helpers.ParseDateTime(template.StartTime)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidSchedule,
			fmt.Sprintf("session %q has an invalid start time: %s", template.ID, template.StartTime))
	}
	end, endLayout, err := helpers.ParseDateTime(template.EndTime)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidSchedule,
			fmt.Sprintf("session %q has an invalid end time: %s", template.ID, template.EndTime))
	}

	lastDay := calendarDate(*class.EndDate)
	var sessions []models.Session
	for {
		start = start.AddDate(0, 0, sessionInterval)
		end = end.AddDate(0, 0, sessionInterval)
		if calendarDate(start).After(lastDay) {
			break
		}
		sessions = append(sessions, models.Session{
			ID:        template.ID,
			Day:       template.Day,
			StartTime: start.Format(startLayout),
			EndTime:   end.Format(endLayout),
		})
	}

	return sessions, nil
}

// RepeatClass expands a class with a repetition descriptor into one copy per week or month
// whose start time is not after EndTimeRepetition. Copies carry no repetition of their own.
// Classes without a repetition, or without an end of repetition, yield nothing.
func RepeatClass(base *models.Class) ([]models.Class, error) {
	if base == nil || base.Repetition == nil {
		return nil, nil
	}

	advance, err := repetitionStep(*base.Repetition)
	if err != nil {
		return nil, err
	}
	if base.EndTimeRepetition == nil {
		return nil, nil
	}

	var classes []models.Class
	for k := 1; ; k++ {
		start := advance(base.StartTime, k)
		if start.After(*base.EndTimeRepetition) {
			break
		}
		classes = append(classes, models.Class{
			Name:         base.Name,
			MaxStudents:  base.MaxStudents,
			Type:         base.Type,
			StartTime:    start,
			EndTime:      advance(base.EndTime, k),
			Resources:    append([]models.Equipment(nil), base.Resources...),
			InstructorID: base.InstructorID,
		})
	}

	return classes, nil
}

// ValidateRepetition checks a repetition descriptor without expanding it
func ValidateRepetition(repetition *string) error {
	if repetition == nil {
		return nil
	}
	_, err := repetitionStep(*repetition)
	return err
}

func repetitionStep(repetition string) (func(time.Time, int) time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(repetition)) {
	case models.RepetitionWeekly:
		return func(t time.Time, k int) time.Time {
			return t.AddDate(0, 0, 7*k)
		}, nil
	case models.RepetitionMonthly:
		return addMonths, nil
	default:
		return nil, apperrors.NewCustomError(apperrors.ErrUnsupportedRepetition,
			fmt.Sprintf("unsupported repetition type: %s", repetition))
	}
}

// addMonths moves t forward k calendar months, clamping to the last day of the target month
// (Jan 31 + 1 month = Feb 29 in a leap year). Each occurrence is computed from the base so
// a clamp does not carry over to later months.
func addMonths(t time.Time, k int) time.Time {
	y, m, d := t.Date()
	lastDay := time.Date(y, m+time.Month(k)+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(y, m+time.Month(k), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
