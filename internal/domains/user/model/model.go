package model

import (
	"oec/shared/constant"
	"oec/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID             = "id"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldRole           = "role"
	FieldFullName       = "full_name"
	FieldPhone          = "phone"
	FieldCompanyID      = "company_id"
	FieldCompanyName    = "company_name"
	FieldBuilding       = "building"
	FieldApprovalStatus = "approval_status"
	FieldLastLogin      = "last_login"
	FieldActive         = "active"
)

type User struct {
	ID             string     `db:"id"`
	Email          string     `db:"email"`
	Password       string     `db:"password"`
	Role           string     `db:"role"`
	FullName       string     `db:"full_name"`
	Phone          string     `db:"phone"`
	CompanyID      string     `db:"company_id"`
	CompanyName    string     `db:"company_name"`
	Building       string     `db:"building"`
	ApprovalStatus string     `db:"approval_status"`
	LastLogin      *time.Time `db:"last_login"`
	Active         bool       `db:"active"`
	model.Metadata
}

// IsStaff reports whether the user works for the center rather than books with it.
func (u User) IsStaff() bool {
	return IsStaffRole(u.Role)
}

// CanBook reports whether the account may submit bookings. Company accounts need approval first.
func (u User) CanBook() bool {
	if !u.Active {
		return false
	}

	if u.Role == constant.RoleCompanyRepresentative {
		return u.ApprovalStatus == constant.ApprovalStatusApproved
	}

	return true
}

func IsStaffRole(role string) bool {
	return slices.Contains([]string{
		constant.RoleSuperAdmin,
		constant.RoleAdmin,
		constant.RoleKeyholder,
		constant.RoleStoreManager,
	}, role)
}
