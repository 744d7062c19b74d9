package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniactivity/internal/app/models"
	"github.com/yigit/uniactivity/internal/app/services"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
)

func TestInscriptionService_Enroll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "u1")
	class := f.class(t, 10,
		models.Session{ID: "s1", Day: "MONDAY", StartTime: "2024-01-01T10:00", EndTime: "2024-01-01T11:00"},
		models.Session{ID: "s1", Day: "MONDAY", StartTime: "2024-01-08T10:00", EndTime: "2024-01-08T11:00"},
		models.Session{ID: "s2", Day: "FRIDAY", StartTime: "2024-01-05T10:00", EndTime: "2024-01-05T11:00"},
	)

	records, err := f.inscriptionService.Enroll(ctx, "u1", class.ID, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Nil(t, records[0].SessionID)
	assert.Equal(t, class.StartTime, records[0].StartTime)
	assert.Equal(t, "s1", *records[1].SessionID)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), records[1].StartTime)
	assert.Equal(t, "s2", *records[2].SessionID)
	for _, r := range records {
		assert.False(t, r.Confirm)
		assert.Equal(t, models.AssistancePending, r.Status())
		assert.NotEmpty(t, r.ID)
	}
}

func TestInscriptionService_EnrollStartTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "u1")
	class := f.class(t, 10)

	start := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	records, err := f.inscriptionService.Enroll(ctx, "u1", class.ID, &start)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, start, records[0].StartTime)
}

func TestInscriptionService_EnrollErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		setup    func(t *testing.T, f *fixture) (userID, classID string)
		wantErr  error
		wantKind error
	}{
		{
			name: "unknown user",
			setup: func(t *testing.T, f *fixture) (string, string) {
				return "ghost", f.class(t, 1).ID
			},
			wantErr:  apperrors.ErrUserNotFound,
			wantKind: apperrors.ErrInvalidArgument,
		},
		{
			name: "unknown class",
			setup: func(t *testing.T, f *fixture) (string, string) {
				return f.user(t, "u1").ID, "ghost"
			},
			wantErr:  apperrors.ErrClassNotFound,
			wantKind: apperrors.ErrInvalidArgument,
		},
		{
			name: "already enrolled",
			setup: func(t *testing.T, f *fixture) (string, string) {
				f.user(t, "u1")
				class := f.class(t, 5)
				_, err := f.inscriptionService.Enroll(ctx, "u1", class.ID, nil)
				require.NoError(t, err)
				return "u1", class.ID
			},
			wantErr:  apperrors.ErrAlreadyEnrolled,
			wantKind: apperrors.ErrInvalidState,
		},
		{
			name: "session records fill the class",
			setup: func(t *testing.T, f *fixture) (string, string) {
				f.user(t, "u1")
				f.user(t, "u2")
				class := f.class(t, 2, models.Session{ID: "s1", StartTime: "2024-01-01T10:00", EndTime: "2024-01-01T11:00"})
				_, err := f.inscriptionService.Enroll(ctx, "u1", class.ID, nil)
				require.NoError(t, err)
				return "u2", class.ID
			},
			wantErr:  apperrors.ErrCapacityReached,
			wantKind: apperrors.ErrInvalidState,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			userID, classID := tt.setup(t, f)

			records, err := f.inscriptionService.Enroll(ctx, userID, classID, nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Nil(t, records)
		})
	}
}

func TestInscriptionService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "u1")
	class := f.class(t, 5, models.Session{ID: "s1", StartTime: "2024-01-01T10:00", EndTime: "2024-01-01T11:00"})

	err := f.inscriptionService.Cancel(ctx, "u1", class.ID)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = f.inscriptionService.Enroll(ctx, "u1", class.ID, nil)
	require.NoError(t, err)
	require.NoError(t, f.inscriptionService.Cancel(ctx, "u1", class.ID))

	_, err = f.assistances.FindByUserAndClass(ctx, "u1", class.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
	count, err := f.assistances.Count(ctx, services.AssistanceFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Zero(t, count)

	// the seat is free again
	_, err = f.inscriptionService.Enroll(ctx, "u1", class.ID, nil)
	assert.NoError(t, err)
}

func TestInscriptionService_Pending(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "u1")
	f.user(t, "u2")
	class := f.class(t, 5)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)
	_, err := f.inscriptionService.Enroll(ctx, "u1", class.ID, &future)
	require.NoError(t, err)
	_, err = f.inscriptionService.Enroll(ctx, "u2", class.ID, &past)
	require.NoError(t, err)

	all, err := f.inscriptionService.PendingAll(ctx, now)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "u1", all[0].UserID)

	mine, err := f.inscriptionService.PendingForUser(ctx, "u2", now)
	require.NoError(t, err)
	assert.Empty(t, mine)

	mine, err = f.inscriptionService.PendingForUser(ctx, "u1", now)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
