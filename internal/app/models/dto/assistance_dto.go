package dto

import (
	"time"

	"github.com/yigit/uniactivity/internal/app/models"
)

// EnrollRequest represents an enrollment request
type EnrollRequest struct {
	UserID    string `json:"userId" binding:"required" example:"4795"`
	ClassID   string `json:"classId" binding:"required" example:"7b0c6a7e-8a4e-4a53-9f0e-0c7b1d1f2a11"`
	StartTime string `json:"startTime" binding:"omitempty,timestamp" example:"2024-01-08T10:00:00"`
}

// CancelEnrollmentRequest identifies the enrollment to cancel
type CancelEnrollmentRequest struct {
	UserID  string `form:"userId" binding:"required"`
	ClassID string `form:"classId" binding:"required"`
}

// ConfirmAttendanceRequest represents an attendance confirmation. InstructorID defaults to
// the authenticated user.
type ConfirmAttendanceRequest struct {
	UserID       string `json:"userId" binding:"required" example:"4795"`
	ClassID      string `json:"classId" binding:"required" example:"7b0c6a7e-8a4e-4a53-9f0e-0c7b1d1f2a11"`
	SessionID    string `json:"sessionId" example:"monday-morning"`
	InstructorID string `json:"instructorId" example:"teacher-1"`
}

// DateRangeQuery is an inclusive range of calendar days
type DateRangeQuery struct {
	Start string `form:"start" binding:"required,isodate" example:"2024-01-01"`
	End   string `form:"end" binding:"required,isodate" example:"2024-01-31"`
}

// SessionWindowQuery selects classes by session day and time window
type SessionWindowQuery struct {
	Day       string `form:"day" binding:"required" example:"MONDAY"`
	StartTime string `form:"startTime" example:"2024-01-01T08:00:00"`
	EndTime   string `form:"endTime" example:"2024-01-01T12:00:00"`
}

// AssistanceResponse represents an enrollment or attendance record
type AssistanceResponse struct {
	ID           string    `json:"id" example:"1f7e3c1a-2d0b-4a8c-9a55-3f0a6f5e2c10"`
	UserID       string    `json:"userId" example:"4795"`
	ClassID      string    `json:"classId" example:"7b0c6a7e-8a4e-4a53-9f0e-0c7b1d1f2a11"`
	SessionID    *string   `json:"sessionId,omitempty" example:"monday-morning"`
	InstructorID *string   `json:"instructorId,omitempty" example:"teacher-1"`
	StartTime    time.Time `json:"startTime"`
	Confirm      bool      `json:"confirm" example:"false"`
	Status       string    `json:"status" example:"PENDING" enums:"PENDING,CONFIRMED"`
}

// NewAssistanceResponse converts a record to its response form
func NewAssistanceResponse(a *models.Assistance) AssistanceResponse {
	return AssistanceResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		ClassID:      a.ClassID,
		SessionID:    a.SessionID,
		InstructorID: a.InstructorID,
		StartTime:    a.StartTime,
		Confirm:      a.Confirm,
		Status:       string(a.Status()),
	}
}

// NewAssistanceListResponse converts records to their response form
func NewAssistanceListResponse(records []models.Assistance) []AssistanceResponse {
	resp := make([]AssistanceResponse, 0, len(records))
	for i := range records {
		resp = append(resp, NewAssistanceResponse(&records[i]))
	}
	return resp
}
