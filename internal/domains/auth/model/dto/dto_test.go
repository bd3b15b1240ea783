package dto_test

import (
	"testing"
	"time"

	"oec/infras/jwt"
	"oec/internal/domains/auth/model/dto"
	userModel "oec/internal/domains/user/model"
	"oec/shared/constant"
	"oec/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("individual", func(t *testing.T) {
		req := dto.RegisterRequest{Email: "abebe@example.com", FullName: "Abebe", AccountType: dto.AccountIndividual}

		user := req.ToUserModel("hash", now)

		assert.Equal(t, constant.RoleIndividual, user.Role)
		assert.Equal(t, constant.ApprovalStatusApproved, user.ApprovalStatus)
		assert.Empty(t, user.CompanyID)
		assert.True(t, user.CanBook())
		assert.Equal(t, constant.ContextGuest, user.CreatedBy)
	})

	t.Run("company starts pending", func(t *testing.T) {
		req := dto.RegisterRequest{Email: "ops@acme.et", FullName: "Hana", AccountType: dto.AccountCompany, CompanyName: "Acme"}

		user := req.ToUserModel("hash", now)

		assert.Equal(t, constant.RoleCompanyRepresentative, user.Role)
		assert.Equal(t, constant.ApprovalStatusPending, user.ApprovalStatus)
		assert.NotEmpty(t, user.CompanyID)
		assert.Equal(t, "Acme", user.CompanyName)
		assert.False(t, user.CanBook())
	})
}

func TestRegisterRequest_Validation(t *testing.T) {
	req := dto.RegisterRequest{
		Email:       "ops@acme.et",
		Password:    "secret-pass",
		FullName:    "Hana",
		Phone:       "0911000000",
		AccountType: dto.AccountCompany,
	}

	err := validator.ValidateStruct(&req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CompanyName")

	req.CompanyName = "Acme"
	assert.NoError(t, validator.ValidateStruct(&req))
}

func TestIdentity(t *testing.T) {
	identity := dto.Identity(userModel.User{
		ID:        "u-1",
		Email:     "admin@oec.et",
		Role:      constant.RoleAdmin,
		Building:  constant.BuildingA,
		CompanyID: "",
	})

	assert.Equal(t, jwt.Identity{UserID: "u-1", Email: "admin@oec.et", Role: constant.RoleAdmin, Building: constant.BuildingA}, identity)
}
