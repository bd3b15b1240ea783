package dto

import (
	"oec/internal/domains/user/model"
	"oec/shared"
	gDto "oec/shared/dto"
	"time"
)

type UserResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	FullName       string     `json:"full_name"`
	Phone          string     `json:"phone"`
	CompanyID      string     `json:"company_id,omitempty"`
	CompanyName    string     `json:"company_name,omitempty"`
	Building       string     `json:"building,omitempty"`
	ApprovalStatus string     `json:"approval_status"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	Active         bool       `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.CompanyID = model.CompanyID
	r.CompanyName = model.CompanyName
	r.Building = model.Building
	r.ApprovalStatus = model.ApprovalStatus
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

// UpdateUserRequest is the superadmin view of an account.
type UpdateUserRequest struct {
	Role     string `db:"role"      json:"role"      validate:"omitempty,oneof=superadmin admin keyholder store_manager company_representative individual"`
	Building string `db:"building"  json:"building"  validate:"omitempty,oneof=building_a building_b"`
	FullName string `db:"full_name" json:"full_name" validate:"omitempty,min=2,max=100"`
	Phone    string `db:"phone"     json:"phone"     validate:"omitempty,max=20"`
	Active   *bool  `db:"active"    json:"active"`
	// ClearBuilding removes the assignment so the account sees every building.
	ClearBuilding bool `json:"clear_building"`
}

func (u UpdateUserRequest) Empty() bool {
	return u == UpdateUserRequest{}
}

type UpdateProfileRequest struct {
	FullName string `db:"full_name" json:"full_name" validate:"omitempty,min=2,max=100"`
	Phone    string `db:"phone"     json:"phone"     validate:"omitempty,max=20"`
}

type ApprovalRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}
