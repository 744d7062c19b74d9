package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/uniactivity/internal/app/models"
	appServices "github.com/yigit/uniactivity/internal/app/services"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
)

// DefaultStudent is created on first start so the API has a user to enroll
func DefaultStudent() *appModels.User {
	return &appModels.User{
		ID:             "4795",
		Name:           "Emily",
		Role:           appModels.RoleStudent,
		Identification: "9864573",
		Email:          "emily@gmail.com",
	}
}

// CreateDefaultData creates the default student when the user store is empty.
func CreateDefaultData(ctx context.Context, userStore appServices.UserStore, lgr zerolog.Logger) error {
	count, err := userStore.Count(ctx)
	if err != nil {
		return fmt.Errorf("error counting users: %w", err)
	}
	if count > 0 {
		lgr.Debug().Int64("users", count).Msg("Users present, skipping default data")
		return nil
	}

	student := DefaultStudent()
	if err := userStore.Create(ctx, student); err != nil {
		// another instance seeded first
		if errors.Is(err, apperrors.ErrConflict) {
			return nil
		}
		return fmt.Errorf("error creating default student: %w", err)
	}

	lgr.Info().Str("userId", student.ID).Str("email", student.Email).Msg("Default student created")
	return nil
}
