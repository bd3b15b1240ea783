package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Pricing=MockPricingService

import (
	"context"
	"fmt"
	"strings"

	"oec/config"
	"oec/infras/otel"
	"oec/internal/domains/pricing/model"
	"oec/internal/domains/pricing/model/dto"
	"oec/internal/domains/pricing/repository"
	"oec/shared"
	"oec/shared/cache"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCurrentPricing = "pricing:current"
)

type Pricing interface {
	// Current is the settings snapshot every price computation of one request works from.
	Current(ctx context.Context) (model.Settings, error)
	Get(ctx context.Context) (dto.PricingResponse, error)
	Update(ctx context.Context, req dto.UpdatePricingRequest) error
	History(ctx context.Context, req gDto.QueryParams) (dto.GetPricingHistoryResponse, error)
}

type serviceImpl struct {
	repo  repository.Pricing
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Pricing, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Pricing {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Current(ctx context.Context) (res model.Settings, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Current")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.cache.Get(ctx, cacheGetCurrentPricing, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Current(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get current pricing")

		return res, fmt.Errorf("failed to get current pricing: %w", err)
	}

	if res.Version == 0 {
		log.Warn().Msg("no pricing settings saved yet, every default price resolves to zero")

		return res, nil
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetCurrentPricing, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pricing to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.PricingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.Current(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(current)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePricingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	next := req.ToModel(user)

	if negative := next.NegativeFields(); len(negative) > 0 {
		return failure.BadRequestFromString("price must not be negative: " + strings.Join(negative, ", ")) // nolint:wrapcheck
	}

	current, err := s.repo.Current(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get current pricing")

		return fmt.Errorf("failed to get current pricing: %w", err)
	}

	if current.Version != req.Version {
		log.Warn().Int("current", current.Version).Int("requested", req.Version).Msg("stale pricing update rejected")

		return failure.StaleVersionError
	}

	if err = s.repo.Insert(ctx, next); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return failure.StaleVersionError
		}

		log.Error().Err(err).Msg("failed to insert pricing version")

		return fmt.Errorf("failed to insert pricing version: %w", err)
	}

	log.Info().Int("version", next.Version).Str("by", user).Msg("pricing updated")

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, cacheGetCurrentPricing); err != nil {
			log.Error().Err(err).Msg("failed to delete pricing cache")
		}
	}()

	return nil
}

func (s *serviceImpl) History(ctx context.Context, req gDto.QueryParams) (res dto.GetPricingHistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".History")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count pricing versions")

		return res, fmt.Errorf("failed to count pricing versions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get pricing versions")

		return res, fmt.Errorf("failed to get pricing versions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}
