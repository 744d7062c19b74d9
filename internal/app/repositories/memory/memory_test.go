package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniactivity/internal/app/models"
	"github.com/yigit/uniactivity/internal/app/services"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
)

func TestAssistanceRepository_EnrollConcurrentCapacity(t *testing.T) {
	ctx := context.Background()
	store := NewAssistanceRepository(Open())

	const capacity = 5
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs <- store.Enroll(ctx, capacity, []*models.Assistance{{
				UserID:  string(rune('a' + n)),
				ClassID: "class-1",
			}})
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, full int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case apperrors.Is(err, apperrors.ErrCapacityReached):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, capacity, ok)
	assert.Equal(t, 15, full)

	count, err := store.Count(ctx, services.AssistanceFilter{ClassID: "class-1"})
	require.NoError(t, err)
	assert.EqualValues(t, capacity, count)
}

func TestAssistanceRepository_SessionRecordsUseCapacity(t *testing.T) {
	ctx := context.Background()
	session := "s1"
	enrollment := func(userID string) []*models.Assistance {
		return []*models.Assistance{
			{UserID: userID, ClassID: "c1"},
			{UserID: userID, ClassID: "c1", SessionID: &session},
		}
	}

	tests := []struct {
		name        string
		maxStudents int
		wantErr     error
	}{
		{name: "class and session records fill two seats", maxStudents: 2, wantErr: apperrors.ErrCapacityReached},
		{name: "third seat still free", maxStudents: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewAssistanceRepository(Open())
			require.NoError(t, store.Enroll(ctx, tt.maxStudents, enrollment("u1")))

			err := store.Enroll(ctx, tt.maxStudents, enrollment("u2"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			err = store.Enroll(ctx, 10, []*models.Assistance{{UserID: "u1", ClassID: "c1"}})
			assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
		})
	}
}

func TestAssistanceRepository_MarkConfirmed(t *testing.T) {
	ctx := context.Background()
	store := NewAssistanceRepository(Open())
	records := []*models.Assistance{{UserID: "u1", ClassID: "c1"}}
	require.NoError(t, store.Enroll(ctx, 1, records))

	confirmed, err := store.MarkConfirmed(ctx, records[0].ID, "teacher-1")
	require.NoError(t, err)
	assert.True(t, confirmed.Confirm)
	require.NotNil(t, confirmed.InstructorID)
	assert.Equal(t, "teacher-1", *confirmed.InstructorID)

	_, err = store.MarkConfirmed(ctx, records[0].ID, "teacher-1")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyConfirmed)

	_, err = store.MarkConfirmed(ctx, "missing", "teacher-1")
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestAssistanceRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	store := NewAssistanceRepository(Open())
	noon := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Enroll(ctx, 10, []*models.Assistance{{UserID: "u1", ClassID: "past", StartTime: noon.Add(-time.Hour)}}))
	require.NoError(t, store.Enroll(ctx, 10, []*models.Assistance{{UserID: "u1", ClassID: "now", StartTime: noon}}))
	require.NoError(t, store.Enroll(ctx, 10, []*models.Assistance{{UserID: "u1", ClassID: "future", StartTime: noon.Add(time.Hour)}}))

	before, err := store.List(ctx, services.AssistanceFilter{StartBefore: &noon})
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, "past", before[0].ClassID)

	after, err := store.List(ctx, services.AssistanceFilter{StartAfter: &noon})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "future", after[0].ClassID)

	inclusive, err := store.Count(ctx, services.AssistanceFilter{StartFrom: &noon, StartTo: &noon})
	require.NoError(t, err)
	assert.EqualValues(t, 1, inclusive)

	session := "s1"
	require.NoError(t, store.Enroll(ctx, 10, []*models.Assistance{
		{UserID: "u2", ClassID: "now", StartTime: noon},
		{UserID: "u2", ClassID: "now", SessionID: &session, StartTime: noon},
	}))
	byClass, err := store.List(ctx, services.AssistanceFilter{ClassID: "now"})
	require.NoError(t, err)
	assert.Len(t, byClass, 3)
}

func TestClassRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := Open()
	classes := NewClassRepository(db)
	assistances := NewAssistanceRepository(db)

	class := &models.Class{Name: "Chess", MaxStudents: 2}
	require.NoError(t, classes.Create(ctx, class))
	require.NoError(t, assistances.Enroll(ctx, 2, []*models.Assistance{{UserID: "u1", ClassID: class.ID}}))

	require.NoError(t, classes.Delete(ctx, class.ID))
	_, err := classes.GetByID(ctx, class.ID)
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)

	count, err := assistances.Count(ctx, services.AssistanceFilter{ClassID: class.ID})
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, classes.Delete(ctx, class.ID), apperrors.ErrClassNotFound)
}

func TestClassRepository_CreateBatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewClassRepository(Open())
	require.NoError(t, repo.Create(ctx, &models.Class{ID: "c1", Name: "Chess"}))

	tests := []struct {
		name  string
		batch []*models.Class
	}{
		{name: "taken id", batch: []*models.Class{{ID: "c2", Name: "Yoga"}, {ID: "c1", Name: "Chess"}}},
		{name: "repeated id", batch: []*models.Class{{ID: "c3", Name: "Yoga"}, {ID: "c3", Name: "Yoga"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.batch...)
			assert.ErrorIs(t, err, apperrors.ErrConflict)

			all, err := repo.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}

	require.NoError(t, repo.Create(ctx, &models.Class{Name: "Yoga"}, &models.Class{Name: "Yoga"}))
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestClassRepository_Queries(t *testing.T) {
	ctx := context.Background()
	repo := NewClassRepository(Open())

	endDate := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	yoga := &models.Class{
		Name:    "Yoga",
		Type:    "wellness",
		EndTime: time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
		EndDate: &endDate,
		Sessions: []models.Session{
			{ID: "s1", Day: "MONDAY", StartTime: "2024-01-01T10:00", EndTime: "2024-01-01T11:00"},
		},
	}
	chess := &models.Class{
		Name:    "Chess",
		Type:    "games",
		EndTime: time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, yoga))
	require.NoError(t, repo.Create(ctx, chess))

	byType, err := repo.GetByType(ctx, "wellness")
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, yoga.ID, byType[0].ID)

	active, err := repo.GetActiveOn(ctx, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, active, 2)

	active, err = repo.GetActiveOn(ctx, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, yoga.ID, active[0].ID)

	window, err := repo.GetBySessionWindow(ctx, "MONDAY", "2024-01-01T09:00", "2024-01-01T12:00")
	require.NoError(t, err)
	assert.Len(t, window, 1)

	window, err = repo.GetBySessionWindow(ctx, "MONDAY", "2024-01-01T10:30", "2024-01-01T12:00")
	require.NoError(t, err)
	assert.Empty(t, window)

	yoga.Name = "Hatha Yoga"
	require.NoError(t, repo.Update(ctx, yoga))
	got, err := repo.GetByID(ctx, yoga.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hatha Yoga", got.Name)

	assert.ErrorIs(t, repo.Update(ctx, &models.Class{ID: "missing"}), apperrors.ErrClassNotFound)
}

func TestUserRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(Open())

	require.NoError(t, repo.Create(ctx, &models.User{Name: "Emily", Email: "emily@gmail.com", Identification: "9864573", Role: models.RoleStudent}))

	err := repo.Create(ctx, &models.User{Name: "Other", Email: "emily@gmail.com", Identification: "1"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	err = repo.Create(ctx, &models.User{Name: "Other", Email: "other@gmail.com", Identification: "9864573"})
	assert.ErrorIs(t, err, apperrors.ErrIdentifierExists)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
