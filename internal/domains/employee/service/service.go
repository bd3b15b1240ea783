package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Employee=MockEmployeeService

import (
	"context"
	"fmt"

	"oec/config"
	"oec/infras/otel"
	"oec/internal/domains/employee/model"
	"oec/internal/domains/employee/model/dto"
	"oec/internal/domains/employee/repository"
	"oec/shared"
	"oec/shared/cache"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"
	"oec/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheScan     = "attendance:scan"
	errBadgeTaken = "badge code is already assigned"
)

type Employee interface {
	Create(ctx context.Context, req dto.CreateEmployeeRequest) (dto.EmployeeResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEmployeesResponse, error)
	Get(ctx context.Context, id string) (dto.EmployeeResponse, error)
	Update(ctx context.Context, req dto.UpdateEmployeeRequest, id string) error
	Delete(ctx context.Context, id string) error
	// Scan records a badge scan. Repeats inside the debounce window are rejected.
	Scan(ctx context.Context, req dto.ScanRequest) (dto.AttendanceResponse, error)
	GetAttendance(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAttendanceResponse, error)
}

type serviceImpl struct {
	employees  repository.Employee
	attendance repository.Attendance
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(employees repository.Employee, attendance repository.Attendance, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Employee {
	return &serviceImpl{
		employees:  employees,
		attendance: attendance,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEmployeeRequest) (res dto.EmployeeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateEmployee")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	employee := req.ToModel(user, timezone.Now())

	if err = s.employees.Insert(ctx, employee); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict(errBadgeTaken) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to insert employee")

		return res, fmt.Errorf("failed to insert employee: %w", err)
	}

	res.FromModel(employee)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEmployeesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetEmployees")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.employees.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count employees")

		return res, fmt.Errorf("failed to count employees: %w", err)
	}

	models, err := s.employees.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get employees")

		return res, fmt.Errorf("failed to get employees: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.EmployeeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetEmployee")
	defer scope.End()
	defer scope.TraceIfError(err)

	employee, err := s.get(ctx, shared.FilterByID(id, model.EmployeeFieldID, model.EmployeeTableName))
	if err != nil {
		return res, err
	}

	res.FromModel(employee)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateEmployeeRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateEmployee")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.EmployeeFieldID, model.EmployeeTableName)

	if _, err = s.get(ctx, filter); err != nil {
		return err
	}

	if err = s.employees.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return failure.Conflict(errBadgeTaken) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update employee")

		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteEmployee")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.EmployeeFieldID, model.EmployeeTableName)

	if _, err = s.get(ctx, filter); err != nil {
		return err
	}

	if err = s.employees.Delete(ctx, filter); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("employee has attendance or store records, deactivate instead") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete employee")

		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

func (s *serviceImpl) Scan(ctx context.Context, req dto.ScanRequest) (res dto.AttendanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Scan")
	defer scope.End()
	defer scope.TraceIfError(err)

	employee, err := s.get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.EmployeeFieldBadgeCode,
				Operator: gDto.FilterOperatorEq,
				Value:    req.BadgeCode,
				Table:    model.EmployeeTableName,
			},
		},
	})
	if err != nil {
		return res, err
	}

	if !employee.Active {
		return res, failure.UnprocessableEntity("employee is inactive") // nolint:wrapcheck
	}

	now := timezone.Now()

	// Cache failures let the scan through.
	fresh, err := s.cache.SaveIfAbsent(ctx, shared.BuildCacheKey(cacheScan, employee.ID), now, s.cfg.Booking.ScanDebounceSeconds)
	if err != nil {
		log.Warn().Err(err).Str("employee", employee.ID).Msg("failed to debounce scan")
	} else if !fresh {
		return res, failure.Conflict("scan ignored, badge was just scanned") // nolint:wrapcheck
	}

	last, err := s.attendance.GetAll(ctx, gDto.QueryParams{
		Limit:   1,
		SortBy:  model.AttendanceFieldScannedAt,
		SortDir: gDto.SortDirDesc,
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.AttendanceFieldEmployeeID,
				Operator: gDto.FilterOperatorEq,
				Value:    employee.ID,
				Table:    model.AttendanceTableName,
			},
			gDto.Filter{
				Field:    model.AttendanceFieldScannedAt,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    model.StartOfDay(now),
				Table:    model.AttendanceTableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get last attendance")

		return res, fmt.Errorf("failed to get last attendance: %w", err)
	}

	var previous *model.Attendance
	if len(last) > 0 {
		previous = &last[0]
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	attendance := model.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: employee.ID,
		Type:       model.NextType(previous),
		ScannedAt:  now,
	}
	attendance.CreatedAt, attendance.ModifiedAt = now, now
	attendance.CreatedBy, attendance.ModifiedBy = user, user

	if err = s.attendance.Insert(ctx, attendance); err != nil {
		log.Error().Err(err).Msg("failed to insert attendance")

		return res, fmt.Errorf("failed to insert attendance: %w", err)
	}

	res.FromModel(attendance)
	res.EmployeeName = employee.Name

	return res, nil
}

func (s *serviceImpl) GetAttendance(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAttendanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAttendance")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.attendance.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count attendance")

		return res, fmt.Errorf("failed to count attendance: %w", err)
	}

	models, err := s.attendance.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get attendance")

		return res, fmt.Errorf("failed to get attendance: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, filter gDto.FilterGroup) (model.Employee, error) {
	employee, err := s.employees.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get employee")

		return employee, fmt.Errorf("failed to get employee: %w", err)
	}

	if employee.ID == constant.Empty {
		return employee, failure.NotFound("employee not found") // nolint:wrapcheck
	}

	return employee, nil
}
