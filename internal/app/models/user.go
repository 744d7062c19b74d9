package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Role           RoleType  `json:"type" db:"role"`
	Identification string    `json:"identification" db:"identification"` // External identification number, unique
	Email          string    `json:"email" db:"email"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
