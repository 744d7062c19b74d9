package models

import (
	"time"
)

// Class defines an activity offered to users, stored in the 'classes' table
type Class struct {
	ID                string      `json:"id" db:"id"`
	Name              string      `json:"name" db:"name"`
	MaxStudents       int         `json:"maxStudents" db:"max_students"`
	Type              string      `json:"type" db:"type"`
	StartDate         *time.Time  `json:"startDate,omitempty" db:"start_date"`
	EndDate           *time.Time  `json:"endDate,omitempty" db:"end_date"`
	StartTime         time.Time   `json:"startTime" db:"start_time"`
	EndTime           time.Time   `json:"endTime" db:"end_time"`
	Sessions          []Session   `json:"sessions,omitempty" db:"sessions"`
	Resources         []Equipment `json:"resources,omitempty" db:"resources"`
	InstructorID      string      `json:"instructorId" db:"instructor_id"`
	Repetition        *string     `json:"repetition,omitempty" db:"repetition"`
	EndTimeRepetition *time.Time  `json:"endTimeRepetition,omitempty" db:"end_time_repetition"`
	CreatedAt         time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time   `json:"updatedAt" db:"updated_at"`
}

// Session is one recurring time slot of a class. Start and end are kept as the
// timestamp strings the client sent.
type Session struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Equipment is a resource a class needs
type Equipment struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ActiveUntil returns the last day the class runs. Classes without an explicit end date
// run until their end time.
func (c *Class) ActiveUntil() time.Time {
	if c.EndDate != nil {
		return *c.EndDate
	}
	return c.EndTime
}

// HasSessions reports whether the class carries session templates
func (c *Class) HasSessions() bool {
	return len(c.Sessions) > 0
}
