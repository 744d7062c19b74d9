package models

import "strings"

// RoleType defines the user role type
type RoleType string

const (
	RoleAdministrator RoleType = "ADMINISTRATOR"
	RolePrefect       RoleType = "PREFECT"
	RoleStudent       RoleType = "STUDENT"
	RoleWellnessStaff RoleType = "WELLNESS_STAFF"
	RoleMonitor       RoleType = "MONITOR"
	RoleTeacher       RoleType = "TEACHER"
)

var roles = []RoleType{
	RoleAdministrator,
	RolePrefect,
	RoleStudent,
	RoleWellnessStaff,
	RoleMonitor,
	RoleTeacher,
}

// ParseRole accepts any casing and "wellness staff" / "wellness-staff" spellings.
func ParseRole(value string) (RoleType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	for _, r := range roles {
		if string(r) == normalized {
			return r, true
		}
	}
	return "", false
}

// Repetition units accepted by the class repeater
const (
	RepetitionWeekly  = "weekly"
	RepetitionMonthly = "monthly"
)
