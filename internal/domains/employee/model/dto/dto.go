package dto

import (
	"oec/internal/domains/employee/model"
	"oec/shared"
	gDto "oec/shared/dto"
	gModel "oec/shared/model"
	"time"

	"github.com/google/uuid"
)

type CreateEmployeeRequest struct {
	Name      string `json:"name"       validate:"required,max=100"`
	Position  string `json:"position"   validate:"required,max=100"`
	Phone     string `json:"phone"      validate:"omitempty,e164"`
	BadgeCode string `json:"badge_code" validate:"required,alphanum,max=64"`
}

func (c *CreateEmployeeRequest) ToModel(user string, now time.Time) model.Employee {
	return model.Employee{
		ID:        uuid.NewString(),
		Name:      c.Name,
		Position:  c.Position,
		Phone:     c.Phone,
		BadgeCode: c.BadgeCode,
		Active:    true,
		Metadata:  gModel.NewMetadata(user, now),
	}
}

type UpdateEmployeeRequest struct {
	Name      string `db:"name"       json:"name"       validate:"omitempty,max=100"`
	Position  string `db:"position"   json:"position"   validate:"omitempty,max=100"`
	Phone     string `db:"phone"      json:"phone"      validate:"omitempty,e164"`
	BadgeCode string `db:"badge_code" json:"badge_code" validate:"omitempty,alphanum,max=64"`
	Active    *bool  `db:"active"     json:"active"`
}

type EmployeeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Position  string `json:"position"`
	Phone     string `json:"phone"`
	BadgeCode string `json:"badge_code"`
	Active    bool   `json:"active"`
	gDto.Metadata
}

func (r *EmployeeResponse) FromModel(model model.Employee) {
	r.ID = model.ID
	r.Name = model.Name
	r.Position = model.Position
	r.Phone = model.Phone
	r.BadgeCode = model.BadgeCode
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetEmployeesResponse) FromModels(models []model.Employee, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Employees = make([]EmployeeResponse, len(models))
	for i, mod := range models {
		r.Employees[i].FromModel(mod)
	}
}

type ScanRequest struct {
	BadgeCode string `json:"badge_code" validate:"required,max=64"`
}

type AttendanceResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name,omitempty"`
	Type         string    `json:"type"`
	ScannedAt    time.Time `json:"scanned_at"`
}

func (r *AttendanceResponse) FromModel(model model.Attendance) {
	r.ID = model.ID
	r.EmployeeID = model.EmployeeID
	r.Type = model.Type
	r.ScannedAt = model.ScannedAt
}

type GetAttendanceResponse struct {
	Attendance []AttendanceResponse `json:"attendance"`
	TotalPage  int                  `json:"total_page"`
	TotalData  int                  `json:"total_data"`
}

func (r *GetAttendanceResponse) FromModels(models []model.Attendance, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Attendance = make([]AttendanceResponse, len(models))
	for i, mod := range models {
		r.Attendance[i].FromModel(mod)
	}
}
