package pricing

import (
	"net/http"

	"oec/infras/otel"
	"oec/internal/domains/pricing/model"
	"oec/internal/domains/pricing/model/dto"
	"oec/internal/domains/pricing/service"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/validator"
	"oec/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Pricing
	otel    otel.Otel
}

func New(service service.Pricing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pricing", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPricing)
		routerGroup.Put("/", handler.UpdatePricing)
		routerGroup.Get("/history", handler.GetPricingHistory)
	})
}

// GetPricing returns the current price list.
// @Summary Current pricing
// @Tags Pricing
// @Produce json
// @Success 200 {object} response.Data[dto.PricingResponse] "Current pricing"
// @Failure 500 {object} response.Error
// @Router /v1/pricing [get]
func (handler *Handler) GetPricing(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPricing")
	defer scope.End()

	pricing, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pricing")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, pricing)
}

// UpdatePricing saves a new version of the price list.
// @Summary Update pricing
// @Description Send the version you edited; a newer version saved meanwhile gives 409.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.UpdatePricingRequest true "New prices"
// @Success 200 {object} response.Message "Pricing updated successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing [put]
// @Security BearerAuth
func (handler *Handler) UpdatePricing(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePricing")
	defer scope.End()

	req := dto.UpdatePricingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update pricing")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Pricing updated successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Pricing updated successfully")
}

// GetPricingHistory lists every saved version, newest first.
// @Summary Pricing history
// @Tags Pricing
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPricingHistoryResponse] "Versions"
// @Failure 500 {object} response.Error
// @Router /v1/pricing/history [get]
// @Security BearerAuth
func (handler *Handler) GetPricingHistory(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPricingHistory")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSort(model.FieldVersion, model.FieldVersion)

	history, err := handler.service.History(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pricing history")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, history)
}
