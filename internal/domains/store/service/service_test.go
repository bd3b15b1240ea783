package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"oec/config"
	"oec/infras/otel/mocks"
	postgresMocks "oec/infras/postgres/mocks"
	storeMocks "oec/internal/domains/store/mocks"
	"oec/internal/domains/store/model"
	"oec/internal/domains/store/model/dto"
	"oec/internal/domains/store/service"
	cacheMocks "oec/shared/cache/mocks"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type storeFixture struct {
	items        *storeMocks.MockItem
	transactions *storeMocks.MockTransaction
	transactor   *postgresMocks.MockTransactor
	svc          service.Store
}

func newFixture(t *testing.T) storeFixture {
	ctrl := gomock.NewController(t)

	f := storeFixture{
		items:        storeMocks.NewMockItem(ctrl),
		transactions: storeMocks.NewMockTransaction(ctrl),
		transactor:   postgresMocks.NewMockTransactor(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	cache := cacheMocks.NewMockRedisCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.items, f.transactions, f.transactor, cfg, cache, mocks.NewOtel())

	return f
}

func (f storeFixture) runTx() {
	f.transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
		return fn(nil)
	})
}

func storeContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "manager-1")
}

func TestService_Move(t *testing.T) {
	t.Run("out within stock decrements and records", func(t *testing.T) {
		f := newFixture(t)
		f.runTx()

		f.items.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Item{ID: "item-1", Quantity: 5}, nil)
		f.items.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 2, fields[model.ItemFieldQuantity])
				assert.Equal(t, "manager-1", fields[constant.FieldModifiedBy])

				return nil
			})
		f.transactions.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, tr model.Transaction) error {
				assert.Equal(t, "item-1", tr.ItemID)
				assert.Equal(t, model.DirectionOut, tr.Direction)
				assert.Equal(t, 3, tr.Quantity)
				require.NotNil(t, tr.EmployeeID)
				assert.Equal(t, "0b7c1a8e-4d6f-4f3a-9e57-6a2c1d9b8e10", *tr.EmployeeID)

				return nil
			})

		res, err := f.svc.Move(storeContext(), dto.MoveRequest{
			Direction:  model.DirectionOut,
			Quantity:   3,
			Reason:     "kitchen",
			EmployeeID: "0b7c1a8e-4d6f-4f3a-9e57-6a2c1d9b8e10",
		}, "item-1")

		require.NoError(t, err)
		assert.Equal(t, 2, res.Quantity)
		assert.Equal(t, model.DirectionOut, res.Transaction.Direction)
	})

	t.Run("in increments without employee", func(t *testing.T) {
		f := newFixture(t)
		f.runTx()

		f.items.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Item{ID: "item-1", Quantity: 5}, nil)
		f.items.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.transactions.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, tr model.Transaction) error {
				assert.Nil(t, tr.EmployeeID)

				return nil
			})

		res, err := f.svc.Move(storeContext(), dto.MoveRequest{Direction: model.DirectionIn, Quantity: 10}, "item-1")

		require.NoError(t, err)
		assert.Equal(t, 15, res.Quantity)
	})

	t.Run("out beyond stock writes nothing", func(t *testing.T) {
		f := newFixture(t)
		f.runTx()

		f.items.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Item{ID: "item-1", Quantity: 5}, nil)

		res, err := f.svc.Move(storeContext(), dto.MoveRequest{Direction: model.DirectionOut, Quantity: 8}, "item-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, model.ErrInsufficientStock.Error(), err.Error())
		assert.Zero(t, res.Quantity)
	})

	t.Run("missing item", func(t *testing.T) {
		f := newFixture(t)
		f.runTx()

		f.items.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Item{}, nil)

		_, err := f.svc.Move(storeContext(), dto.MoveRequest{Direction: model.DirectionIn, Quantity: 1}, "ghost")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newFixture(t)
		f.runTx()

		f.items.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Item{ID: "item-1", Quantity: 5}, nil)
		f.items.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.transactions.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		_, err := f.svc.Move(storeContext(), dto.MoveRequest{
			Direction:  model.DirectionIn,
			Quantity:   1,
			EmployeeID: "0b7c1a8e-4d6f-4f3a-9e57-6a2c1d9b8e10",
		}, "item-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("database failure", func(t *testing.T) {
		f := newFixture(t)
		f.transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.Move(storeContext(), dto.MoveRequest{Direction: model.DirectionIn, Quantity: 1}, "item-1")

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestService_CreateItem(t *testing.T) {
	f := newFixture(t)

	f.items.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, item model.Item) error {
		assert.Zero(t, item.Quantity)
		assert.Equal(t, "Rice", item.Name)
		assert.Equal(t, "manager-1", item.CreatedBy)

		return nil
	})

	res, err := f.svc.CreateItem(storeContext(), dto.CreateItemRequest{Name: "Rice", Category: "food", Unit: "kg"})

	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Zero(t, res.Quantity)
}

func TestService_UpdateItem(t *testing.T) {
	f := newFixture(t)

	f.items.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{ID: "item-1", Quantity: 4}, nil)
	f.items.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "Basmati", fields[model.ItemFieldName])
			assert.NotContains(t, fields, model.ItemFieldQuantity)

			return nil
		})

	require.NoError(t, f.svc.UpdateItem(storeContext(), dto.UpdateItemRequest{Name: "Basmati"}, "item-1"))
}

func TestService_DeleteItem(t *testing.T) {
	t.Run("with transactions", func(t *testing.T) {
		f := newFixture(t)

		f.items.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{ID: "item-1"}, nil)
		f.transactions.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.DeleteItem(storeContext(), "item-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("unused", func(t *testing.T) {
		f := newFixture(t)

		f.items.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{ID: "item-1"}, nil)
		f.transactions.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.items.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.DeleteItem(storeContext(), "item-1"))
	})

	t.Run("transaction recorded concurrently", func(t *testing.T) {
		f := newFixture(t)

		f.items.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{ID: "item-1"}, nil)
		f.transactions.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.items.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		err := f.svc.DeleteItem(storeContext(), "item-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		f.items.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{}, nil)

		err := f.svc.DeleteItem(storeContext(), "ghost")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestService_GetTransactions(t *testing.T) {
	f := newFixture(t)
	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.transactions.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	f.transactions.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).
		Return([]model.Transaction{{ID: "t-1", ItemID: "item-1", Direction: model.DirectionIn, Quantity: 2}}, nil)

	res, err := f.svc.GetTransactions(storeContext(), params, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "t-1", res.Transactions[0].ID)
}
