package facility

import (
	"net/http"

	"oec/infras/otel"
	"oec/internal/domains/facility/model"
	"oec/internal/domains/facility/model/dto"
	"oec/internal/domains/facility/service"
	"oec/shared"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/validator"
	"oec/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service service.Facility
	otel    otel.Otel
}

func New(service service.Facility, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/facilities", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFacility)
		routerGroup.Get("/", handler.GetFacilities)
		routerGroup.Get("/{id}", handler.GetFacilityByID)
		routerGroup.Patch("/{id}", handler.UpdateFacility)
		routerGroup.Delete("/{id}", handler.DeleteFacility)
	})
}

// CreateFacility handles the creation of a new hall, section or dormitory room.
// @Summary Create a facility
// @Description Create a bookable facility. Leave rental_cost empty to use the category default.
// @Tags Facility
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Facility name"
// @Param category formData string true "hall, section or dormitory"
// @Param building formData string true "building_a or building_b"
// @Param rental_cost formData number false "Per day rental cost"
// @Param capacity formData integer false "Seats"
// @Param beds formData integer false "Beds"
// @Param floor formData integer false "Floor"
// @Param description formData string false "Description"
// @Param active formData boolean false "Bookable"
// @Param image formData file false "Facility image"
// @Success 201 {object} response.Message "Facility created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities [post]
// @Security BearerAuth
func (handler *Handler) CreateFacility(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFacility")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateFacilityRequest{
		Name:        request.FormValue("name"),
		Category:    request.FormValue("category"),
		Building:    request.FormValue("building"),
		Description: request.FormValue("description"),
		Active:      shared.ConvertStringToBool(request.FormValue("active")),
	}

	if cost, err := decimal.NewFromString(request.FormValue("rental_cost")); err == nil {
		req.RentalCost = decimal.NewNullDecimal(cost)
	}

	req.Capacity = formInt(request, "capacity")
	req.Beds = formInt(request, "beds")
	req.Floor = formInt(request, "floor")

	file, fileHeader, err := request.FormFile("image")
	if err == nil {
		req.Image = dto.NewImage(file, fileHeader)

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create facility")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Facility created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Facility created successfully")
}

// GetFacilities lists facilities.
// @Summary Get all facilities
// @Description Retrieve facilities with optional filtering and pagination.
// @Tags Facility
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param category query string false "Filter by category"
// @Param building query string false "Filter by building"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetFacilitiesResponse] "List of facilities"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities [get]
func (handler *Handler) GetFacilities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFacilities")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.FieldName, model.FieldName, model.FieldCategory, model.FieldBuilding, model.FieldCapacity, constant.FieldCreatedAt)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if name := query.Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	for _, field := range []string{model.FieldCategory, model.FieldBuilding} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	if active := shared.ConvertStringToBool(query.Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	facilities, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get facilities")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Facilities retrieved successfully")

	response.WithJSON(w, http.StatusOK, facilities)
}

// GetFacilityByID retrieves a facility by its ID.
// @Summary Get a facility by ID
// @Tags Facility
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} response.Data[dto.FacilityResponse] "Facility details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id} [get]
func (handler *Handler) GetFacilityByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFacilityByID")
	defer scope.End()

	facility, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get facility by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, facility)
}

// UpdateFacility updates an existing facility by its ID.
// @Summary Update a facility by ID
// @Tags Facility
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Facility ID"
// @Param name formData string false "Facility name"
// @Param building formData string false "building_a or building_b"
// @Param rental_cost formData number false "Per day rental cost"
// @Param clear_rental_cost formData boolean false "Fall back to the category default"
// @Param capacity formData integer false "Seats"
// @Param beds formData integer false "Beds"
// @Param floor formData integer false "Floor"
// @Param description formData string false "Description"
// @Param active formData boolean false "Bookable"
// @Param image formData file false "Facility image"
// @Success 200 {object} response.Message "Facility updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateFacility(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFacility")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateFacilityRequest{
		Name:        r.FormValue("name"),
		Building:    r.FormValue("building"),
		Description: r.FormValue("description"),
		Active:      shared.ConvertStringToBool(r.FormValue("active")),
		Capacity:    shared.ConvertStringToInt(r.FormValue("capacity")),
		Beds:        shared.ConvertStringToInt(r.FormValue("beds")),
		Floor:       shared.ConvertStringToInt(r.FormValue("floor")),
	}

	if reset := shared.ConvertStringToBool(r.FormValue("clear_rental_cost")); reset != nil {
		req.ClearRentalCost = *reset
	}

	if cost, err := decimal.NewFromString(r.FormValue("rental_cost")); err == nil {
		req.RentalCost = &cost
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = dto.NewImage(file, fileHeader)

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update facility")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Facility updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Facility updated successfully")
}

// DeleteFacility deletes a facility by its ID. Past bookings keep their copy of it.
// @Summary Delete a facility by ID
// @Tags Facility
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} response.Message "Facility deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFacility(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFacility")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete facility")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Facility deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Facility deleted successfully")
}

func formInt(request *http.Request, key string) int {
	if value := shared.ConvertStringToInt(request.FormValue(key)); value != nil {
		return *value
	}

	return 0
}
