package store

import (
	"net/http"

	"oec/infras/otel"
	"oec/internal/domains/store/model"
	"oec/internal/domains/store/model/dto"
	"oec/internal/domains/store/service"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/validator"
	"oec/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Store
	otel    otel.Otel
}

func New(service service.Store, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/store", func(routerGroup chi.Router) {
		routerGroup.Post("/items", handler.CreateItem)
		routerGroup.Get("/items", handler.GetItems)
		routerGroup.Get("/items/{id}", handler.GetItemByID)
		routerGroup.Patch("/items/{id}", handler.UpdateItem)
		routerGroup.Delete("/items/{id}", handler.DeleteItem)
		routerGroup.Post("/items/{id}/transactions", handler.Move)
		routerGroup.Get("/transactions", handler.GetTransactions)
	})
}

// CreateItem registers a stock item with zero quantity.
// @Summary Create a store item
// @Tags Store
// @Accept json
// @Produce json
// @Param request body dto.CreateItemRequest true "Item"
// @Success 201 {object} response.Data[dto.ItemResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/store/items [post]
// @Security BearerAuth
func (handler *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	var req dto.CreateItemRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	item, err := handler.service.CreateItem(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create store item")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, item)
}

// GetItems lists stock items.
// @Summary Get store items
// @Tags Store
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Data[dto.GetItemsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/store/items [get]
// @Security BearerAuth
func (handler *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItems")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.ItemFieldName, model.ItemFieldName, model.ItemFieldCategory, model.ItemFieldQuantity, model.ItemFieldLastUpdated)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if name := query.Get(model.ItemFieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.ItemFieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.ItemTableName,
		})
	}

	if category := query.Get(model.ItemFieldCategory); category != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.ItemFieldCategory,
			Operator: gDto.FilterOperatorEq,
			Value:    category,
			Table:    model.ItemTableName,
		})
	}

	items, err := handler.service.GetItems(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get store items")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, items)
}

// GetItemByID returns one stock item.
// @Summary Get a store item
// @Tags Store
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Data[dto.ItemResponse]
// @Failure 404 {object} response.Error
// @Router /v1/store/items/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItemByID")
	defer scope.End()

	item, err := handler.service.GetItem(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get store item")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, item)
}

// UpdateItem renames or recategorises an item. Quantity only moves through transactions.
// @Summary Update a store item
// @Tags Store
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body dto.UpdateItemRequest true "Fields"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/store/items/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItem")
	defer scope.End()

	var req dto.UpdateItemRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateItem(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update store item")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Store item updated successfully")
}

// DeleteItem removes an item that has never moved.
// @Summary Delete a store item
// @Tags Store
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/store/items/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteItem")
	defer scope.End()

	if err := handler.service.DeleteItem(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete store item")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Store item deleted successfully")
}

// Move records stock coming in or going out.
// @Summary Record a stock movement
// @Tags Store
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body dto.MoveRequest true "Movement"
// @Success 201 {object} response.Data[dto.MoveResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "insufficient stock"
// @Router /v1/store/items/{id}/transactions [post]
// @Security BearerAuth
func (handler *Handler) Move(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Move")
	defer scope.End()

	var req dto.MoveRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Move(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to move stock")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetTransactions lists the ledger.
// @Summary Get store transactions
// @Tags Store
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param item_id query string false "Filter by item"
// @Param direction query string false "in or out"
// @Param employee_id query string false "Filter by employee"
// @Success 200 {object} response.Data[dto.GetTransactionsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/store/transactions [get]
// @Security BearerAuth
func (handler *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransactions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(constant.FieldCreatedAt, constant.FieldCreatedAt)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.TransactionFieldItemID, model.TransactionFieldDirection, model.TransactionFieldEmployeeID} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TransactionTableName,
			})
		}
	}

	transactions, err := handler.service.GetTransactions(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get store transactions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, transactions)
}
