package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Content=MockContentService

import (
	"context"
	"fmt"

	"oec/config"
	"oec/infras/otel"
	"oec/internal/domains/content/model"
	"oec/internal/domains/content/model/dto"
	"oec/internal/domains/content/repository"
	"oec/shared"
	"oec/shared/cache"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"
	"oec/shared/timezone"

	"github.com/jmoiron/sqlx/types"
	"github.com/rs/zerolog/log"
)

const cacheGetContent = "content:get"

type Content interface {
	Get(ctx context.Context, key string) (dto.ContentResponse, error)
	// Put creates the document when Version is 0, otherwise replaces the loaded version.
	Put(ctx context.Context, key string, req dto.PutContentRequest) (dto.ContentResponse, error)
}

type serviceImpl struct {
	repo  repository.Content
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Content, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Content {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, key string) (res dto.ContentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetContent")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetContent, key)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	content, err := s.get(ctx, key)
	if err != nil {
		return res, err
	}

	if content.Key == constant.Empty {
		return res, failure.NotFound("content not found") // nolint:wrapcheck
	}

	res.FromModel(content)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save content to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Put(ctx context.Context, key string, req dto.PutContentRequest) (res dto.ContentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PutContent")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	current, err := s.get(ctx, key)
	if err != nil {
		return res, err
	}

	switch {
	case current.Key == constant.Empty && req.Version == 0:
		content := req.ToModel(key, user, now)

		if err = s.repo.Insert(ctx, content); err != nil {
			if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
				return res, failure.StaleVersionError
			}

			log.Error().Err(err).Msg("failed to insert content")

			return res, fmt.Errorf("failed to insert content: %w", err)
		}

		res.FromModel(content)
	case current.Key == constant.Empty:
		return res, failure.NotFound("content not found") // nolint:wrapcheck
	case current.Version != req.Version:
		return res, failure.StaleVersionError
	default:
		var affected int64

		affected, err = s.repo.UpdateAffected(ctx, map[string]any{
			model.FieldBody:          types.JSONText(req.Body),
			model.FieldVersion:       current.Version + 1,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.FieldKey, Operator: gDto.FilterOperatorEq, Value: key, Table: model.TableName},
				gDto.Filter{Field: model.FieldVersion, Operator: gDto.FilterOperatorEq, Value: req.Version, Table: model.TableName, ArgName: "current_version"},
			},
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to update content")

			return res, fmt.Errorf("failed to update content: %w", err)
		}

		if affected == 0 {
			return res, failure.StaleVersionError
		}

		current.Body = types.JSONText(req.Body)
		current.Version++
		current.ModifiedAt = now
		current.ModifiedBy = user

		res.FromModel(current)
	}

	go func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), shared.BuildCacheKey(cacheGetContent, key)); err != nil {
			log.Error().Err(err).Msg("failed to delete content cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, key string) (model.Content, error) {
	content, err := s.repo.Get(ctx, shared.FilterByID(key, model.FieldKey, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get content")

		return content, fmt.Errorf("failed to get content: %w", err)
	}

	return content, nil
}
