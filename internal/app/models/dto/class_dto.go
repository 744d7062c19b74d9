package dto

import (
	"fmt"
	"time"

	"github.com/yigit/uniactivity/internal/app/models"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
	"github.com/yigit/uniactivity/internal/pkg/helpers"
)

// SessionRequest is one session template of a class
type SessionRequest struct {
	ID        string `json:"id" example:"monday-morning"`
	Day       string `json:"day" binding:"required" example:"MONDAY"`
	StartTime string `json:"startTime" binding:"required" example:"2024-01-01T10:00:00"`
	EndTime   string `json:"endTime" binding:"required" example:"2024-01-01T12:00:00"`
}

// EquipmentRequest is a resource the class needs
type EquipmentRequest struct {
	Name     string `json:"name" binding:"required" example:"yoga mat"`
	Quantity int    `json:"quantity" binding:"min=0" example:"10"`
}

// ClassRequest is used both to create a class and to replace it
type ClassRequest struct {
	Name              string             `json:"name" binding:"required,max=200" example:"Yoga"`
	MaxStudents       int                `json:"maxStudents" binding:"required,min=1" example:"20"`
	Type              string             `json:"type" binding:"required" example:"wellness"`
	StartDate         string             `json:"startDate" binding:"omitempty,isodate" example:"2024-01-01"`
	EndDate           string             `json:"endDate" binding:"omitempty,isodate" example:"2024-06-30"`
	StartTime         string             `json:"startTime" binding:"required" example:"2024-01-01T10:00:00"`
	EndTime           string             `json:"endTime" binding:"required" example:"2024-01-01T12:00:00"`
	Sessions          []SessionRequest   `json:"sessions" binding:"omitempty,dive"`
	Resources         []EquipmentRequest `json:"resources" binding:"omitempty,dive"`
	InstructorID      string             `json:"instructorId" example:"teacher-1"`
	Repetition        *string            `json:"repetition" example:"weekly"`
	EndTimeRepetition string             `json:"endTimeRepetition" binding:"omitempty,timestamp" example:"2024-03-01T23:59:59"`
}

func invalidField(field, value string) error {
	return apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("invalid %s: %q", field, value)).
		WithDetails(map[string]interface{}{"field": field})
}

// ToModel parses the request into a class. A bare date for endTimeRepetition covers the
// whole day.
func (r *ClassRequest) ToModel() (*models.Class, error) {
	class := &models.Class{
		Name:         r.Name,
		MaxStudents:  r.MaxStudents,
		Type:         r.Type,
		InstructorID: r.InstructorID,
		Repetition:   r.Repetition,
	}

	var err error
	if class.StartDate, err = helpers.ParseOptionalDate(r.StartDate); err != nil {
		return nil, invalidField("startDate", r.StartDate)
	}
	if class.EndDate, err = helpers.ParseOptionalDate(r.EndDate); err != nil {
		return nil, invalidField("endDate", r.EndDate)
	}
	if class.StartTime, _, err = helpers.ParseDateTime(r.StartTime); err != nil {
		return nil, invalidField("startTime", r.StartTime)
	}
	if class.EndTime, _, err = helpers.ParseDateTime(r.EndTime); err != nil {
		return nil, invalidField("endTime", r.EndTime)
	}

	if r.EndTimeRepetition != "" {
		if t, _, err := helpers.ParseDateTime(r.EndTimeRepetition); err == nil {
			class.EndTimeRepetition = &t
		} else if d, err := helpers.ParseDate(r.EndTimeRepetition); err == nil {
			end := helpers.EndOfDay(d)
			class.EndTimeRepetition = &end
		} else {
			return nil, invalidField("endTimeRepetition", r.EndTimeRepetition)
		}
	}

	for _, s := range r.Sessions {
		if _, _, err := helpers.ParseDateTime(s.StartTime); err != nil {
			return nil, invalidField("sessions.startTime", s.StartTime)
		}
		if _, _, err := helpers.ParseDateTime(s.EndTime); err != nil {
			return nil, invalidField("sessions.endTime", s.EndTime)
		}
		class.Sessions = append(class.Sessions, models.Session{
			ID:        s.ID,
			Day:       s.Day,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	for _, e := range r.Resources {
		class.Resources = append(class.Resources, models.Equipment{Name: e.Name, Quantity: e.Quantity})
	}

	return class, nil
}

// ClassResponse represents a class returned by the API
type ClassResponse struct {
	ID                string             `json:"id" example:"7b0c6a7e-8a4e-4a53-9f0e-0c7b1d1f2a11"`
	Name              string             `json:"name" example:"Yoga"`
	MaxStudents       int                `json:"maxStudents" example:"20"`
	Type              string             `json:"type" example:"wellness"`
	StartDate         string             `json:"startDate,omitempty" example:"2024-01-01"`
	EndDate           string             `json:"endDate,omitempty" example:"2024-06-30"`
	StartTime         time.Time          `json:"startTime"`
	EndTime           time.Time          `json:"endTime"`
	Sessions          []models.Session   `json:"sessions"`
	Resources         []models.Equipment `json:"resources"`
	InstructorID      string             `json:"instructorId,omitempty" example:"teacher-1"`
	Repetition        *string            `json:"repetition,omitempty" example:"weekly"`
	EndTimeRepetition *time.Time         `json:"endTimeRepetition,omitempty"`
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(helpers.DateLayout)
}

// NewClassResponse converts a class to its response form
func NewClassResponse(class *models.Class) ClassResponse {
	resp := ClassResponse{
		ID:                class.ID,
		Name:              class.Name,
		MaxStudents:       class.MaxStudents,
		Type:              class.Type,
		StartDate:         formatDate(class.StartDate),
		EndDate:           formatDate(class.EndDate),
		StartTime:         class.StartTime,
		EndTime:           class.EndTime,
		Sessions:          class.Sessions,
		Resources:         class.Resources,
		InstructorID:      class.InstructorID,
		Repetition:        class.Repetition,
		EndTimeRepetition: class.EndTimeRepetition,
	}
	if resp.Sessions == nil {
		resp.Sessions = []models.Session{}
	}
	if resp.Resources == nil {
		resp.Resources = []models.Equipment{}
	}
	return resp
}

// NewClassListResponse converts classes to their response form
func NewClassListResponse(classes []models.Class) []ClassResponse {
	resp := make([]ClassResponse, 0, len(classes))
	for i := range classes {
		resp = append(resp, NewClassResponse(&classes[i]))
	}
	return resp
}
