package model

import (
	"oec/shared/model"
	"time"
)

const (
	EmployeeTableName  = "employees"
	EmployeeEntityName = "employee"

	EmployeeFieldID        = "id"
	EmployeeFieldName      = "name"
	EmployeeFieldPosition  = "position"
	EmployeeFieldBadgeCode = "badge_code"
	EmployeeFieldActive    = "active"
)

const (
	AttendanceTableName  = "attendance"
	AttendanceEntityName = "attendance"

	AttendanceFieldID         = "id"
	AttendanceFieldEmployeeID = "employee_id"
	AttendanceFieldType       = "type"
	AttendanceFieldScannedAt  = "scanned_at"
)

const (
	TypeCheckIn  = "check_in"
	TypeCheckOut = "check_out"
)

type Employee struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Position  string `db:"position"`
	Phone     string `db:"phone"`
	BadgeCode string `db:"badge_code"`
	Active    bool   `db:"active"`
	model.Metadata
}

type Attendance struct {
	ID         string    `db:"id"`
	EmployeeID string    `db:"employee_id"`
	Type       string    `db:"type"`
	ScannedAt  time.Time `db:"scanned_at"`
	model.Metadata
}

// NextType alternates scans within a day. last is the employee's latest scan of the same day, if any.
func NextType(last *Attendance) string {
	if last == nil || last.Type == TypeCheckOut {
		return TypeCheckIn
	}

	return TypeCheckOut
}

// StartOfDay is midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
