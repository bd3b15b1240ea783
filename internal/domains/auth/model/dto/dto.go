package dto

import (
	"oec/infras/jwt"
	userModel "oec/internal/domains/user/model"
	userDto "oec/internal/domains/user/model/dto"
	"oec/shared/constant"
	gModel "oec/shared/model"
	"time"

	"github.com/google/uuid"
)

const (
	AccountIndividual = "individual"
	AccountCompany    = "company"
)

type RegisterRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8"`
	FullName    string `json:"full_name"    validate:"required,min=2,max=100"`
	Phone       string `json:"phone"        validate:"required,max=20"`
	AccountType string `json:"account_type" validate:"required,oneof=individual company"`
	CompanyName string `json:"company_name" validate:"required_if=AccountType company,max=150"`
}

// ToUserModel builds the account. Company accounts wait for a superadmin decision.
func (r *RegisterRequest) ToUserModel(hashedPassword string, now time.Time) userModel.User {
	user := userModel.User{
		ID:             uuid.NewString(),
		Email:          r.Email,
		Password:       hashedPassword,
		Role:           constant.RoleIndividual,
		FullName:       r.FullName,
		Phone:          r.Phone,
		ApprovalStatus: constant.ApprovalStatusApproved,
		Active:         true,
		Metadata:       gModel.NewMetadata(constant.ContextGuest, now),
	}

	if r.AccountType == AccountCompany {
		user.Role = constant.RoleCompanyRepresentative
		user.CompanyID = uuid.NewString()
		user.CompanyName = r.CompanyName
		user.ApprovalStatus = constant.ApprovalStatusPending
	}

	return user
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	TokenType    string               `json:"token_type"`
	ExpiresIn    int64                `json:"expires_in"`
	User         userDto.UserResponse `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}

// Identity is what the access token carries for user.
func Identity(user userModel.User) jwt.Identity {
	return jwt.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Building:  user.Building,
		CompanyID: user.CompanyID,
	}
}
