package post

import (
	"net/http"

	"oec/infras/otel"
	"oec/internal/domains/post/model"
	"oec/internal/domains/post/model/dto"
	"oec/internal/domains/post/service"
	"oec/shared"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/validator"
	"oec/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Post
	otel    otel.Otel
}

func New(service service.Post, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/posts", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPublished)
		routerGroup.Get("/{id}", handler.GetPublishedByID)
	})

	router.Route("/admin/posts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Create)
		routerGroup.Get("/", handler.GetAll)
		routerGroup.Get("/{id}", handler.GetByID)
		routerGroup.Patch("/{id}", handler.Update)
		routerGroup.Delete("/{id}", handler.Delete)
	})
}

func listRequest(r *http.Request) (gDto.QueryParams, gDto.FilterGroup) {
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.FieldPublishedAt, model.FieldPublishedAt, model.FieldTitle, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if title := r.URL.Query().Get(model.FieldTitle); title != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Operator: gDto.FilterOperatorLike,
			Value:    title,
			Table:    model.TableName,
		})
	}

	return queryParams, filterGroup
}

// GetPublished lists published posts for the public site.
// @Summary Get published posts
// @Tags Post
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param title query string false "Filter by title"
// @Success 200 {object} response.Data[dto.GetPostsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/posts [get]
func (handler *Handler) GetPublished(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublishedPosts")
	defer scope.End()

	queryParams, filterGroup := listRequest(r)

	posts, err := handler.service.GetPublished(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get published posts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, posts)
}

// GetPublishedByID returns a published post.
// @Summary Get a published post
// @Tags Post
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.Data[dto.PostResponse]
// @Failure 404 {object} response.Error
// @Router /v1/posts/{id} [get]
func (handler *Handler) GetPublishedByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublishedPost")
	defer scope.End()

	post, err := handler.service.GetPublishedByID(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get published post")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, post)
}

// Create writes a post.
// @Summary Create a post
// @Tags Post
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "Post"
// @Success 201 {object} response.Data[dto.PostResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "slug taken"
// @Router /v1/admin/posts [post]
// @Security BearerAuth
func (handler *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePost")
	defer scope.End()

	var req dto.CreatePostRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	post, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create post")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Post created by user " + user)

	response.WithJSON(w, http.StatusCreated, post)
}

// GetAll lists drafts and published posts.
// @Summary Get all posts
// @Tags Post
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param title query string false "Filter by title"
// @Param published query boolean false "Filter by published"
// @Success 200 {object} response.Data[dto.GetPostsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/admin/posts [get]
// @Security BearerAuth
func (handler *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPosts")
	defer scope.End()

	queryParams, filterGroup := listRequest(r)

	if published := r.URL.Query().Get(model.FieldPublished); published != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPublished,
			Operator: gDto.FilterOperatorEq,
			Value:    shared.ConvertStringToBool(published),
			Table:    model.TableName,
		})
	}

	posts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get posts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, posts)
}

// GetByID returns a post including drafts.
// @Summary Get a post
// @Tags Post
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.Data[dto.PostResponse]
// @Failure 404 {object} response.Error
// @Router /v1/admin/posts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPost")
	defer scope.End()

	post, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get post")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, post)
}

// Update edits, publishes or unpublishes a post.
// @Summary Update a post
// @Tags Post
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body dto.UpdatePostRequest true "Fields"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admin/posts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePost")
	defer scope.End()

	var req dto.UpdatePostRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update post")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Post updated successfully")
}

// Delete removes a post and its cover image.
// @Summary Delete a post
// @Tags Post
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/admin/posts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePost")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete post")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Post deleted successfully")
}
