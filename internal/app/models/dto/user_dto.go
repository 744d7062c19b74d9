package dto

import (
	"time"

	"github.com/yigit/uniactivity/internal/app/models"
)

// CreateUserRequest represents sign-up data
type CreateUserRequest struct {
	ID             string `json:"id" binding:"omitempty,max=64" example:"4795"`
	Name           string `json:"name" binding:"required,max=120" example:"Emily"`
	Type           string `json:"type" binding:"required" example:"STUDENT"`
	Identification string `json:"identification" binding:"required,max=32" example:"9864573"`
	Email          string `json:"email" binding:"required,email" example:"emily@gmail.com"`
}

// ToModel converts the request to a user
func (r *CreateUserRequest) ToModel() *models.User {
	return &models.User{
		ID:             r.ID,
		Name:           r.Name,
		Role:           models.RoleType(r.Type),
		Identification: r.Identification,
		Email:          r.Email,
	}
}

// UserResponse represents a user returned by the API
type UserResponse struct {
	ID             string    `json:"id" example:"4795"`
	Name           string    `json:"name" example:"Emily"`
	Type           string    `json:"type" example:"STUDENT"`
	Identification string    `json:"identification" example:"9864573"`
	Email          string    `json:"email" example:"emily@gmail.com"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewUserResponse converts a user to its response form
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Type:           string(user.Role),
		Identification: user.Identification,
		Email:          user.Email,
		CreatedAt:      user.CreatedAt,
	}
}
