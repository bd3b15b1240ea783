package employee

import (
	"net/http"

	"oec/infras/otel"
	"oec/internal/domains/employee/model"
	"oec/internal/domains/employee/model/dto"
	"oec/internal/domains/employee/service"
	"oec/shared"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/timezone"
	"oec/shared/validator"
	"oec/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Employee
	otel    otel.Otel
}

func New(service service.Employee, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/employees", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Create)
		routerGroup.Get("/", handler.GetAll)
		routerGroup.Get("/{id}", handler.GetByID)
		routerGroup.Patch("/{id}", handler.Update)
		routerGroup.Delete("/{id}", handler.Delete)
	})

	router.Route("/attendance", func(routerGroup chi.Router) {
		routerGroup.Post("/scan", handler.Scan)
		routerGroup.Get("/", handler.GetAttendance)
	})
}

// Create registers a staff member and their badge.
// @Summary Create an employee
// @Tags Employee
// @Accept json
// @Produce json
// @Param request body dto.CreateEmployeeRequest true "Employee"
// @Success 201 {object} response.Data[dto.EmployeeResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "badge code taken"
// @Router /v1/employees [post]
// @Security BearerAuth
func (handler *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEmployee")
	defer scope.End()

	var req dto.CreateEmployeeRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	employee, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create employee")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, employee)
}

// GetAll lists employees.
// @Summary Get employees
// @Tags Employee
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param position query string false "Filter by position"
// @Param active query boolean false "Filter by active"
// @Success 200 {object} response.Data[dto.GetEmployeesResponse]
// @Failure 400 {object} response.Error
// @Router /v1/employees [get]
// @Security BearerAuth
func (handler *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEmployees")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.EmployeeFieldName, model.EmployeeFieldName, model.EmployeeFieldPosition, constant.FieldCreatedAt)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.EmployeeFieldName, model.EmployeeFieldPosition} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorLike,
				Value:    value,
				Table:    model.EmployeeTableName,
			})
		}
	}

	if active := query.Get(model.EmployeeFieldActive); active != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.EmployeeFieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    shared.ConvertStringToBool(active),
			Table:    model.EmployeeTableName,
		})
	}

	employees, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get employees")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, employees)
}

// GetByID returns one employee.
// @Summary Get an employee
// @Tags Employee
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} response.Data[dto.EmployeeResponse]
// @Failure 404 {object} response.Error
// @Router /v1/employees/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEmployee")
	defer scope.End()

	employee, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get employee")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, employee)
}

// Update changes employee details or deactivates the badge.
// @Summary Update an employee
// @Tags Employee
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param request body dto.UpdateEmployeeRequest true "Fields"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/employees/{id} [patch]
// @Security BearerAuth
func (handler *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEmployee")
	defer scope.End()

	var req dto.UpdateEmployeeRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update employee")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Employee updated successfully")
}

// Delete removes an employee without history.
// @Summary Delete an employee
// @Tags Employee
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/employees/{id} [delete]
// @Security BearerAuth
func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEmployee")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete employee")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Employee deleted successfully")
}

// Scan records a badge at the gate scanner.
// @Summary Scan a badge
// @Tags Attendance
// @Accept json
// @Produce json
// @Param request body dto.ScanRequest true "Badge"
// @Success 201 {object} response.Data[dto.AttendanceResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "repeat scan ignored"
// @Failure 422 {object} response.Error
// @Router /v1/attendance/scan [post]
// @Security BearerAuth
func (handler *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Scan")
	defer scope.End()

	var req dto.ScanRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	attendance, err := handler.service.Scan(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("scan not recorded")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, attendance)
}

// GetAttendance lists scans.
// @Summary Get attendance
// @Tags Attendance
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param employee_id query string false "Filter by employee"
// @Param type query string false "check_in or check_out"
// @Param date query string false "Day, YYYY-MM-DD"
// @Success 200 {object} response.Data[dto.GetAttendanceResponse]
// @Failure 400 {object} response.Error
// @Router /v1/attendance [get]
// @Security BearerAuth
func (handler *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAttendance")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.AttendanceFieldScannedAt, model.AttendanceFieldScannedAt)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.AttendanceFieldEmployeeID, model.AttendanceFieldType} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.AttendanceTableName,
			})
		}
	}

	if date := query.Get("date"); date != constant.Empty {
		day, err := timezone.Parse(constant.DayFormat, date)
		if err != nil {
			scope.TraceError(err)

			response.WithError(w, validator.ValidateVar(date, "day"))

			return
		}

		filterGroup.Filters = append(filterGroup.Filters,
			gDto.Filter{
				Field:    model.AttendanceFieldScannedAt,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    day,
				Table:    model.AttendanceTableName,
				ArgName:  "scanned_from",
			},
			gDto.Filter{
				Field:    model.AttendanceFieldScannedAt,
				Operator: gDto.FilterOperatorLessEq,
				Value:    day.AddDate(0, 0, 1).Add(-1),
				Table:    model.AttendanceTableName,
				ArgName:  "scanned_to",
			},
		)
	}

	attendance, err := handler.service.GetAttendance(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get attendance")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, attendance)
}
