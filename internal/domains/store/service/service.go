package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Store=MockStoreService

import (
	"context"
	"errors"
	"fmt"

	"oec/config"
	"oec/infras/otel"
	"oec/infras/postgres"
	"oec/internal/domains/store/model"
	"oec/internal/domains/store/model/dto"
	"oec/internal/domains/store/repository"
	"oec/shared"
	"oec/shared/cache"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"
	"oec/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetItem    = "store:get"
	cacheGetAllItem = "store:gets"
	cacheCountItem  = "store:count"
)

type Store interface {
	CreateItem(ctx context.Context, req dto.CreateItemRequest) (dto.ItemResponse, error)
	GetItems(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetItemsResponse, error)
	GetItem(ctx context.Context, id string) (dto.ItemResponse, error)
	UpdateItem(ctx context.Context, req dto.UpdateItemRequest, id string) error
	DeleteItem(ctx context.Context, id string) error
	Move(ctx context.Context, req dto.MoveRequest, itemID string) (dto.MoveResponse, error)
	GetTransactions(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTransactionsResponse, error)
}

type serviceImpl struct {
	items        repository.Item
	transactions repository.Transaction
	transactor   postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(items repository.Item, transactions repository.Transaction, transactor postgres.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Store {
	return &serviceImpl{
		items:        items,
		transactions: transactions,
		transactor:   transactor,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) CreateItem(ctx context.Context, req dto.CreateItemRequest) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	item := req.ToModel(user, timezone.Now())

	if err = s.items.Insert(ctx, item); err != nil {
		log.Error().Err(err).Msg("failed to insert store item")

		return res, fmt.Errorf("failed to insert store item: %w", err)
	}

	res.FromModel(item)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllItem)
		shared.InvalidateCaches(c, s.cache, cacheCountItem)
	}()

	return res, nil
}

func (s *serviceImpl) GetItems(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetItems")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllItem, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.items.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get store items")

		return res, fmt.Errorf("failed to get store items: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save store items to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountItem, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.items.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count store items")

		return res, fmt.Errorf("failed to count store items: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save store item count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetItem(ctx context.Context, id string) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetItem, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	item, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(item)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save store item to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateItem(ctx context.Context, req dto.UpdateItemRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.get(ctx, id); err != nil {
		return err
	}

	if err = s.items.Update(ctx, shared.TransformFields(req, user), shared.FilterByID(id, model.ItemFieldID, model.ItemTableName)); err != nil {
		log.Error().Err(err).Msg("failed to update store item")

		return fmt.Errorf("failed to update store item: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) DeleteItem(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.get(ctx, id); err != nil {
		return err
	}

	used, err := s.transactions.Exist(ctx, shared.FilterByID(id, model.TransactionFieldItemID, model.TransactionTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check store transactions")

		return fmt.Errorf("failed to check store transactions: %w", err)
	}

	if used {
		return failure.Conflict("store item has transactions and cannot be deleted") // nolint:wrapcheck
	}

	if err = s.items.Delete(ctx, shared.FilterByID(id, model.ItemFieldID, model.ItemTableName)); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("store item has transactions and cannot be deleted") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete store item")

		return fmt.Errorf("failed to delete store item: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Move applies one ledger entry. The item row stays locked from the read until commit, and a
// rejected move writes nothing.
func (s *serviceImpl) Move(ctx context.Context, req dto.MoveRequest, itemID string) (res dto.MoveResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Move")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()
	filter := shared.FilterByID(itemID, model.ItemFieldID, model.ItemTableName)
	transaction := req.ToModel(itemID, user, now)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		item, err := s.items.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock store item: %w", err)
		}

		if item.ID == constant.Empty {
			return failure.NotFound("store item not found") // nolint:wrapcheck
		}

		quantity, err := item.Apply(req.Direction, req.Quantity)
		if errors.Is(err, model.ErrInsufficientStock) {
			return failure.Conflict(err.Error()) // nolint:wrapcheck
		}

		fields := map[string]any{
			model.ItemFieldQuantity:    quantity,
			model.ItemFieldLastUpdated: now,
			constant.FieldModifiedAt:   now,
			constant.FieldModifiedBy:   user,
		}

		if err = s.items.UpdateTx(ctx, tx, fields, filter); err != nil {
			return fmt.Errorf("failed to update store quantity: %w", err)
		}

		if err = s.transactions.InsertTx(ctx, tx, transaction); err != nil {
			if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
				return failure.BadRequestFromString("employee not found") // nolint:wrapcheck
			}

			return fmt.Errorf("failed to insert store transaction: %w", err)
		}

		res.Quantity = quantity

		return nil
	})
	if err != nil {
		if failure.GetCode(err) >= 500 {
			log.Error().Err(err).Str("item", itemID).Msg("failed to move stock")
		}

		return res, err
	}

	res.Transaction.FromModel(transaction)

	s.invalidate(ctx, itemID)

	return res, nil
}

func (s *serviceImpl) GetTransactions(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTransactionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTransactions")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.transactions.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count store transactions")

		return res, fmt.Errorf("failed to count store transactions: %w", err)
	}

	models, err := s.transactions.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get store transactions")

		return res, fmt.Errorf("failed to get store transactions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Item, error) {
	item, err := s.items.Get(ctx, shared.FilterByID(id, model.ItemFieldID, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get store item")

		return item, fmt.Errorf("failed to get store item: %w", err)
	}

	if item.ID == constant.Empty {
		return item, failure.NotFound("store item not found") // nolint:wrapcheck
	}

	return item, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetItem, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete store item cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllItem)
		shared.InvalidateCaches(c, s.cache, cacheCountItem)
	}()
}
