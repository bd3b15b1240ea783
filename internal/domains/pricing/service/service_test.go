package service_test

import (
	"context"
	"errors"
	"testing"

	"oec/config"
	"oec/infras/otel/mocks"
	pricingMocks "oec/internal/domains/pricing/mocks"
	"oec/internal/domains/pricing/model"
	"oec/internal/domains/pricing/model/dto"
	"oec/internal/domains/pricing/service"
	cacheMocks "oec/shared/cache/mocks"
	"oec/shared/constant"
	"oec/shared/failure"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*pricingMocks.MockPricing, *cacheMocks.MockRedisCache, service.Pricing) {
	ctrl := gomock.NewController(t)

	repo := pricingMocks.NewMockPricing(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return repo, cache, service.New(repo, cfg, cache, mocks.NewOtel())
}

func TestPricingService_Current(t *testing.T) {
	t.Run("cache hit skips the database", func(t *testing.T) {
		_, cache, svc := newService(t)

		cache.EXPECT().Get(gomock.Any(), "pricing:current", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, value any) error {
				settings, _ := value.(*model.Settings)
				settings.Version = 4

				return nil
			})

		res, err := svc.Current(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 4, res.Version)
	})

	t.Run("nothing saved yet resolves to zero prices", func(t *testing.T) {
		repo, cache, svc := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		repo.EXPECT().Current(gomock.Any()).Return(model.Settings{}, nil)

		res, err := svc.Current(context.Background())

		require.NoError(t, err)
		assert.True(t, res.HallRentalCost.IsZero())
	})
}

func TestPricingService_Update(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	req := dto.UpdatePricingRequest{
		Version:        2,
		HallRentalCost: decimal.NewFromInt(3000),
		LunchLevel1:    decimal.NewFromInt(150),
	}

	t.Run("inserts the next version", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().Current(gomock.Any()).Return(model.Settings{Version: 2}, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, settings model.Settings) error {
			assert.Equal(t, 3, settings.Version)
			assert.Equal(t, "admin-1", settings.CreatedBy)
			assert.True(t, settings.HallRentalCost.Equal(decimal.NewFromInt(3000)))

			return nil
		})

		require.NoError(t, svc.Update(ctx, req))
	})

	t.Run("stale version is rejected without writing", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().Current(gomock.Any()).Return(model.Settings{Version: 5}, nil)

		err := svc.Update(ctx, req)

		assert.ErrorIs(t, err, failure.StaleVersionError)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("concurrent insert of the same version is stale", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().Current(gomock.Any()).Return(model.Settings{Version: 2}, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		assert.ErrorIs(t, svc.Update(ctx, req), failure.StaleVersionError)
	})

	t.Run("negative prices never reach the database", func(t *testing.T) {
		_, _, svc := newService(t)

		negative := req
		negative.RefreshmentLevel2 = decimal.NewFromInt(-10)

		err := svc.Update(ctx, negative)

		assert.Equal(t, 400, failure.GetCode(err))
		assert.ErrorContains(t, err, "refreshment_level2")
	})
}
