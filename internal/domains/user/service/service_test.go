package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"oec/config"
	"oec/infras/otel/mocks"
	userMocks "oec/internal/domains/user/mocks"
	"oec/internal/domains/user/model"
	"oec/internal/domains/user/model/dto"
	"oec/internal/domains/user/service"
	cacheMocks "oec/shared/cache/mocks"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*userMocks.MockUser, service.User) {
	ctrl := gomock.NewController(t)

	repo := userMocks.NewMockUser(ctrl)

	cache := cacheMocks.NewMockRedisCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return repo, service.New(repo, &config.Config{}, cache, mocks.NewOtel())
}

func superadmin() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "root")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleSuperAdmin)
}

func TestService_Me(t *testing.T) {
	t.Run("returns the caller without password", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "root", Email: "root@oec.et", Password: "hash", Role: constant.RoleSuperAdmin}, nil)

		res, err := svc.Me(superadmin())

		require.NoError(t, err)
		assert.Equal(t, "root@oec.et", res.Email)
		assert.Equal(t, constant.RoleSuperAdmin, res.Role)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, svc := newService(t)

		_, err := svc.Me(context.Background())

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestService_Update(t *testing.T) {
	t.Run("assigns role and building", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1"}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.RoleKeyholder, fields[model.FieldRole])
				assert.Equal(t, constant.BuildingB, fields[model.FieldBuilding])
				assert.Equal(t, "root", fields[constant.FieldModifiedBy])

				return nil
			})

		err := svc.Update(superadmin(), dto.UpdateUserRequest{Role: constant.RoleKeyholder, Building: constant.BuildingB}, "u-1")

		require.NoError(t, err)
	})

	t.Run("clears building", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Building: constant.BuildingA}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.Empty, fields[model.FieldBuilding])

				return nil
			})

		require.NoError(t, svc.Update(superadmin(), dto.UpdateUserRequest{ClearBuilding: true}, "u-1"))
	})

	t.Run("empty", func(t *testing.T) {
		_, svc := newService(t)

		err := svc.Update(superadmin(), dto.UpdateUserRequest{}, "u-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("cannot demote self", func(t *testing.T) {
		_, svc := newService(t)

		err := svc.Update(superadmin(), dto.UpdateUserRequest{Role: constant.RoleAdmin}, "root")

		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("missing", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		err := svc.Update(superadmin(), dto.UpdateUserRequest{Phone: "0911"}, "ghost")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestService_SetApproval(t *testing.T) {
	t.Run("approves pending company", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "c-1", Role: constant.RoleCompanyRepresentative, ApprovalStatus: constant.ApprovalStatusPending}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.ApprovalStatusApproved, fields[model.FieldApprovalStatus])

				return nil
			})

		require.NoError(t, svc.SetApproval(superadmin(), dto.ApprovalRequest{Status: constant.ApprovalStatusApproved}, "c-1"))
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "c-1", Role: constant.RoleCompanyRepresentative, ApprovalStatus: constant.ApprovalStatusRejected}, nil)

		require.NoError(t, svc.SetApproval(superadmin(), dto.ApprovalRequest{Status: constant.ApprovalStatusRejected}, "c-1"))
	})

	t.Run("individual accounts", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "i-1", Role: constant.RoleIndividual}, nil)

		err := svc.SetApproval(superadmin(), dto.ApprovalRequest{Status: constant.ApprovalStatusApproved}, "i-1")

		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		_, svc := newService(t)

		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(svc.Delete(superadmin(), "root")))
	})

	t.Run("with bookings", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1"}, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		assert.Equal(t, http.StatusConflict, failure.GetCode(svc.Delete(superadmin(), "u-1")))
	})

	t.Run("success", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1"}, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, svc.Delete(superadmin(), "u-1"))
	})
}

func TestService_GetAll(t *testing.T) {
	repo, svc := newService(t)
	params := gDto.QueryParams{Page: 1, Limit: 10}

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.User{{ID: "u-1", Role: constant.RoleAdmin}}, nil)

	res, err := svc.GetAll(superadmin(), params, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	require.Len(t, res.Users, 1)
	assert.Equal(t, constant.RoleAdmin, res.Users[0].Role)
}
