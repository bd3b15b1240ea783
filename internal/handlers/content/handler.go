package content

import (
	"net/http"
	"strings"

	"oec/infras/otel"
	"oec/internal/domains/content/model"
	"oec/internal/domains/content/model/dto"
	"oec/internal/domains/content/service"
	"oec/shared/constant"
	"oec/shared/validator"
	"oec/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var keyRule = "required,oneof=" + strings.Join(model.Keys, " ")

type Handler struct {
	service service.Content
	otel    otel.Otel
}

func New(service service.Content, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contents", func(routerGroup chi.Router) {
		routerGroup.Get("/{key}", handler.Get)
		routerGroup.Put("/{key}", handler.Put)
	})
}

// Get returns a public site document.
// @Summary Get site content
// @Tags Content
// @Produce json
// @Param key path string true "site, announcements, agreement_template or brand"
// @Success 200 {object} response.Data[dto.ContentResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/contents/{key} [get]
func (handler *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContent")
	defer scope.End()

	key := chi.URLParam(r, constant.RequestParamKey)
	if err := validator.ValidateVar(key, keyRule); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	content, err := handler.service.Get(ctx, key)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to get content")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, content)
}

// Put replaces a site document.
// @Summary Update site content
// @Description Send the version that was loaded, or 0 to create the document. A newer stored version answers 409.
// @Tags Content
// @Accept json
// @Produce json
// @Param key path string true "site, announcements, agreement_template or brand"
// @Param request body dto.PutContentRequest true "Document"
// @Success 200 {object} response.Data[dto.ContentResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/contents/{key} [put]
// @Security BearerAuth
func (handler *Handler) Put(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PutContent")
	defer scope.End()

	key := chi.URLParam(r, constant.RequestParamKey)
	if err := validator.ValidateVar(key, keyRule); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	var req dto.PutContentRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	content, err := handler.service.Put(ctx, key, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to put content")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, content)
}
