package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"oec/config"
	"oec/infras/jwt"
	jwtMocks "oec/infras/jwt/mocks"
	"oec/infras/otel/mocks"
	"oec/internal/domains/auth/model/dto"
	"oec/internal/domains/auth/service"
	userMocks "oec/internal/domains/user/mocks"
	userModel "oec/internal/domains/user/model"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"
	"oec/shared/password"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*userMocks.MockUser, *jwtMocks.MockJWT, service.Auth) {
	ctrl := gomock.NewController(t)

	repo := userMocks.NewMockUser(ctrl)
	tokens := jwtMocks.NewMockJWT(ctrl)

	return repo, tokens, service.New(repo, &config.Config{}, mocks.NewOtel(), tokens)
}

func hashed(t *testing.T, plain string) string {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	return hash
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{
		Email:       "ops@acme.et",
		Password:    "secret-pass",
		FullName:    "Hana",
		Phone:       "0911000000",
		AccountType: dto.AccountCompany,
		CompanyName: "Acme",
	}

	t.Run("company account starts pending", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user userModel.User) error {
			assert.Equal(t, constant.RoleCompanyRepresentative, user.Role)
			assert.Equal(t, constant.ApprovalStatusPending, user.ApprovalStatus)
			assert.NotEqual(t, req.Password, user.Password)
			assert.NoError(t, password.Verify(req.Password, user.Password))

			return nil
		})

		require.NoError(t, svc.Register(context.Background(), req))
	})

	t.Run("email taken", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := svc.Register(context.Background(), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("email taken concurrently", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		err := svc.Register(context.Background(), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	validUser := userModel.User{
		ID:       "user-id-123",
		Email:    "admin@oec.et",
		Password: hashed(t, "password"),
		Role:     constant.RoleAdmin,
		Building: constant.BuildingA,
		FullName: "Test User",
		Active:   true,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(repo *userMocks.MockUser, tokens *jwtMocks.MockJWT)
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "admin@oec.et", Password: "password"},
			setupMock: func(repo *userMocks.MockUser, tokens *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				tokens.EXPECT().
					GenerateTokenPair(jwt.Identity{UserID: validUser.ID, Email: validUser.Email, Role: constant.RoleAdmin, Building: constant.BuildingA}).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer"}, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login failure does not block",
			req:  dto.LoginRequest{Email: "admin@oec.et", Password: "password"},
			setupMock: func(repo *userMocks.MockUser, tokens *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				tokens.EXPECT().GenerateTokenPair(gomock.Any()).Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
		},
		{
			name: "user not found",
			req:  dto.LoginRequest{Email: "nobody@oec.et", Password: "password"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "admin@oec.et", Password: "wrongpassword"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "admin@oec.et", Password: "password"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				inactiveUser := validUser
				inactiveUser.Active = false

				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactiveUser, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "admin@oec.et", Password: "password"},
			setupMock: func(repo *userMocks.MockUser, tokens *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				tokens.EXPECT().GenerateTokenPair(gomock.Any()).Return(nil, errors.New("token generation failed"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "database error",
			req:  dto.LoginRequest{Email: "admin@oec.et", Password: "password"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, tokens, svc := newService(t)
			tt.setupMock(repo, tokens)

			result, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", result.AccessToken)
			assert.Equal(t, "refresh-token", result.RefreshToken)
			assert.Equal(t, validUser.ID, result.User.ID)
			assert.NotNil(t, result.User.LastLogin)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	claims := &jwt.Claims{Identity: jwt.Identity{UserID: "user-1", Role: constant.RoleIndividual}}

	t.Run("reissues with current role", func(t *testing.T) {
		repo, tokens, svc := newService(t)

		tokens.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "user-1", Email: "k@oec.et", Role: constant.RoleKeyholder, Building: constant.BuildingB, Active: true}, nil)
		tokens.EXPECT().
			GenerateTokenPair(jwt.Identity{UserID: "user-1", Email: "k@oec.et", Role: constant.RoleKeyholder, Building: constant.BuildingB}).
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		require.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
		assert.Equal(t, "new-refresh", res.RefreshToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		_, tokens, svc := newService(t)

		tokens.EXPECT().ValidateToken("bad", jwt.RefreshToken).Return(nil, jwt.ErrInvalidToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("deactivated since issue", func(t *testing.T) {
		repo, tokens, svc := newService(t)

		tokens.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "user-1", Active: false}, nil)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	user := userModel.User{ID: "user-1", Password: hashed(t, "old-password"), Active: true}

	t.Run("success", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				hash, ok := fields[userModel.FieldPassword].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify("new-password", hash))
				assert.Equal(t, "user-1", fields[constant.FieldModifiedBy])

				return nil
			})

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"})

		require.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("user gone", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
