package services_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniactivity/internal/app/models"
	"github.com/yigit/uniactivity/internal/app/repositories/memory"
	"github.com/yigit/uniactivity/internal/app/services"
)

type fixture struct {
	users       services.UserStore
	classes     services.ClassStore
	assistances services.AssistanceStore

	userService        services.UserService
	classService       services.ClassService
	inscriptionService services.InscriptionService
	assistanceService  services.AssistanceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.Open()
	log := zerolog.New(io.Discard)

	f := &fixture{
		users:       memory.NewUserRepository(db),
		classes:     memory.NewClassRepository(db),
		assistances: memory.NewAssistanceRepository(db),
	}
	f.userService = services.NewUserService(f.users, log)
	f.classService = services.NewClassService(f.classes, log)
	f.inscriptionService = services.NewInscriptionService(f.users, f.classes, f.assistances, log)
	f.assistanceService = services.NewAssistanceService(f.assistances, log)
	return f
}

func (f *fixture) user(t *testing.T, id string) *models.User {
	t.Helper()
	u := &models.User{
		ID:             id,
		Name:           "User " + id,
		Email:          id + "@school.edu",
		Identification: "ID-" + id,
		Role:           models.RoleStudent,
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) class(t *testing.T, maxStudents int, sessions ...models.Session) *models.Class {
	t.Helper()
	c := &models.Class{
		Name:         "Football",
		Type:         "sport",
		MaxStudents:  maxStudents,
		StartTime:    time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		InstructorID: "teacher-1",
		Sessions:     sessions,
	}
	require.NoError(t, f.classes.Create(context.Background(), c))
	return c
}

func ptr[T any](v T) *T {
	return &v
}
