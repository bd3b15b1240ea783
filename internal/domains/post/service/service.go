package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Post=MockPostService

import (
	"context"
	"fmt"

	"oec/config"
	"oec/infras/otel"
	"oec/infras/s3"
	"oec/internal/domains/post/model"
	"oec/internal/domains/post/model/dto"
	"oec/internal/domains/post/repository"
	"oec/shared"
	"oec/shared/cache"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"
	"oec/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPost    = "post:get"
	cacheGetAllPost = "post:gets"
	cacheCountPost  = "post:count"

	errSlugTaken   = "slug is already used by another post"
	errSlugInvalid = "slug must contain letters or digits"
)

type Post interface {
	Create(ctx context.Context, req dto.CreatePostRequest) (dto.PostResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPostsResponse, error)
	GetPublished(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPostsResponse, error)
	Get(ctx context.Context, id string) (dto.PostResponse, error)
	GetPublishedByID(ctx context.Context, id string) (dto.PostResponse, error)
	Update(ctx context.Context, req dto.UpdatePostRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Post
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Post, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Post {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePostRequest) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreatePost")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	post := req.ToModel(user, timezone.Now())

	if post.Slug == constant.Empty {
		return res, failure.BadRequestFromString(errSlugInvalid) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, post); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict(errSlugTaken) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to insert post")

		return res, fmt.Errorf("failed to insert post: %w", err)
	}

	res.FromModel(post)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPost)
		shared.InvalidateCaches(c, s.cache, cacheCountPost)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPostsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPosts")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) GetPublished(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPostsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPublishedPosts")
	defer scope.End()
	defer scope.TraceIfError(err)

	published := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{publishedFilter()},
	}

	if len(filter.Filters) > 0 {
		published.Filters = append(published.Filters, filter)
	}

	return s.list(ctx, req, published)
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPostsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPost, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	posts, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get posts")

		return res, fmt.Errorf("failed to get posts: %w", err)
	}

	res.FromModels(posts, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save posts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPost, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count posts")

		return total, fmt.Errorf("failed to count posts: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save post count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPost")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.cached(ctx, id)
}

// GetPublishedByID hides drafts behind the same not found answer as missing posts.
func (s *serviceImpl) GetPublishedByID(ctx context.Context, id string) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPublishedPost")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.cached(ctx, id)
	if err != nil {
		return res, err
	}

	if !res.Published {
		return dto.PostResponse{}, failure.NotFound("post not found") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) cached(ctx context.Context, id string) (res dto.PostResponse, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetPost, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	post, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(post)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save post to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePostRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePost")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if req.Slug != constant.Empty {
		if req.Slug = model.Slugify(req.Slug); req.Slug == constant.Empty {
			return failure.BadRequestFromString(errSlugInvalid) // nolint:wrapcheck
		}
	}

	fields := shared.TransformFields(req, user)

	if req.Published != nil {
		switch {
		case *req.Published && current.PublishedAt == nil:
			fields[model.FieldPublishedAt] = fields[constant.FieldModifiedAt]
		case !*req.Published:
			fields[model.FieldPublishedAt] = nil
		}
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return failure.Conflict(errSlugTaken) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update post")

		return fmt.Errorf("failed to update post: %w", err)
	}

	if req.CoverImage != constant.Empty && req.CoverImage != current.CoverImage {
		s.deleteCover(ctx, current.CoverImage)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeletePost")
	defer scope.End()
	defer scope.TraceIfError(err)

	post, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete post")

		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.deleteCover(ctx, post.CoverImage)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Post, error) {
	post, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get post")

		return post, fmt.Errorf("failed to get post: %w", err)
	}

	if post.ID == constant.Empty {
		return post, failure.NotFound("post not found") // nolint:wrapcheck
	}

	return post, nil
}

// deleteCover removes a replaced or orphaned cover. URLs from other hosts are left alone.
func (s *serviceImpl) deleteCover(ctx context.Context, url string) {
	if url == constant.Empty {
		return
	}

	objectName := s.s3.GetObjectNameFromURL(constant.Empty, url)
	if objectName == constant.Empty {
		return
	}

	go func() {
		if err := s.s3.DeleteFile(context.WithoutCancel(ctx), constant.Empty, constant.Empty, objectName); err != nil {
			log.Warn().Err(err).Str("object", objectName).Msg("failed to delete post cover")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPost, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete post cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPost)
		shared.InvalidateCaches(c, s.cache, cacheCountPost)
	}()
}

func publishedFilter() gDto.Filter {
	return gDto.Filter{
		Field:    model.FieldPublished,
		Operator: gDto.FilterOperatorEq,
		Value:    true,
		Table:    model.TableName,
		ArgName:  "published_only",
	}
}
