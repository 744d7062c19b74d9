package models

import (
	"time"
)

// AssistanceStatus is the lifecycle state of an assistance record
type AssistanceStatus string

const (
	AssistancePending   AssistanceStatus = "PENDING"
	AssistanceConfirmed AssistanceStatus = "CONFIRMED"
)

// Assistance joins a user to a class, or to one session of a class. While Confirm is false
// the record is an enrollment; once confirmed it is an attendance record witnessed by
// InstructorID.
type Assistance struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"userId" db:"user_id"`
	ClassID      string    `json:"classId" db:"class_id"`
	SessionID    *string   `json:"sessionId,omitempty" db:"session_id"`
	InstructorID *string   `json:"instructorId,omitempty" db:"instructor_id"`
	StartTime    time.Time `json:"startTime" db:"start_time"`
	Confirm      bool      `json:"confirm" db:"confirm"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Status maps the confirm flag to a lifecycle state
func (a *Assistance) Status() AssistanceStatus {
	if a.Confirm {
		return AssistanceConfirmed
	}
	return AssistancePending
}

// IsClassLevel reports whether the record covers the whole class rather than one session
func (a *Assistance) IsClassLevel() bool {
	return a.SessionID == nil
}
