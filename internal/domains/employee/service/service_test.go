package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"oec/config"
	"oec/infras/otel/mocks"
	employeeMocks "oec/internal/domains/employee/mocks"
	"oec/internal/domains/employee/model"
	"oec/internal/domains/employee/model/dto"
	"oec/internal/domains/employee/service"
	cacheMocks "oec/shared/cache/mocks"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type employeeFixture struct {
	employees  *employeeMocks.MockEmployee
	attendance *employeeMocks.MockAttendance
	cache      *cacheMocks.MockRedisCache
	svc        service.Employee
}

func newFixture(t *testing.T) employeeFixture {
	ctrl := gomock.NewController(t)

	f := employeeFixture{
		employees:  employeeMocks.NewMockEmployee(ctrl),
		attendance: employeeMocks.NewMockAttendance(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Booking.ScanDebounceSeconds = 2

	f.svc = service.New(f.employees, f.attendance, cfg, f.cache, mocks.NewOtel())

	return f
}

func scannerContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "gate-admin")
}

func guard() model.Employee {
	return model.Employee{ID: "emp-1", Name: "Tolosa", BadgeCode: "B1001", Active: true}
}

func TestService_Scan(t *testing.T) {
	t.Run("first scan of the day checks in", func(t *testing.T) {
		f := newFixture(t)

		f.employees.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guard(), nil)
		f.cache.EXPECT().SaveIfAbsent(gomock.Any(), "attendance:scan:emp-1", gomock.Any(), 2).Return(true, nil)
		f.attendance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Attendance, error) {
				assert.Equal(t, 1, params.Limit)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)
				require.Len(t, filter.Filters, 2)

				since, ok := filter.Filters[1].(gDto.Filter).Value.(time.Time)
				require.True(t, ok)
				assert.Zero(t, since.Hour())

				return nil, nil
			})
		f.attendance.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, attendance model.Attendance) error {
				assert.Equal(t, model.TypeCheckIn, attendance.Type)
				assert.Equal(t, "emp-1", attendance.EmployeeID)
				assert.Equal(t, "gate-admin", attendance.CreatedBy)

				return nil
			})

		res, err := f.svc.Scan(scannerContext(), dto.ScanRequest{BadgeCode: "B1001"})

		require.NoError(t, err)
		assert.Equal(t, model.TypeCheckIn, res.Type)
		assert.Equal(t, "Tolosa", res.EmployeeName)
	})

	t.Run("second scan checks out", func(t *testing.T) {
		f := newFixture(t)

		f.employees.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guard(), nil)
		f.cache.EXPECT().SaveIfAbsent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.attendance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Attendance{{ID: "att-1", EmployeeID: "emp-1", Type: model.TypeCheckIn}}, nil)
		f.attendance.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Scan(scannerContext(), dto.ScanRequest{BadgeCode: "B1001"})

		require.NoError(t, err)
		assert.Equal(t, model.TypeCheckOut, res.Type)
	})

	t.Run("repeat inside the window is ignored", func(t *testing.T) {
		f := newFixture(t)

		f.employees.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guard(), nil)
		f.cache.EXPECT().SaveIfAbsent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Scan(scannerContext(), dto.ScanRequest{BadgeCode: "B1001"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("cache outage still records", func(t *testing.T) {
		f := newFixture(t)

		f.employees.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guard(), nil)
		f.cache.EXPECT().SaveIfAbsent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused"))
		f.attendance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.attendance.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Scan(scannerContext(), dto.ScanRequest{BadgeCode: "B1001"})

		require.NoError(t, err)
	})

	t.Run("unknown badge", func(t *testing.T) {
		f := newFixture(t)

		f.employees.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Employee{}, nil)

		_, err := f.svc.Scan(scannerContext(), dto.ScanRequest{BadgeCode: "NOPE"})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("inactive employee", func(t *testing.T) {
		f := newFixture(t)

		inactive := guard()
		inactive.Active = false

		f.employees.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)

		_, err := f.svc.Scan(scannerContext(), dto.ScanRequest{BadgeCode: "B1001"})

		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})
}

func TestService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.employees.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, employee model.Employee) error {
				assert.True(t, employee.Active)
				assert.Equal(t, "B2002", employee.BadgeCode)

				return nil
			})

		res, err := f.svc.Create(scannerContext(), dto.CreateEmployeeRequest{Name: "Hawi", Position: "Cleaner", BadgeCode: "B2002"})

		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("badge taken", func(t *testing.T) {
		f := newFixture(t)

		f.employees.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		_, err := f.svc.Create(scannerContext(), dto.CreateEmployeeRequest{Name: "Hawi", Position: "Cleaner", BadgeCode: "B1001"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestService_Update(t *testing.T) {
	f := newFixture(t)
	active := false

	f.employees.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guard(), nil)
	f.employees.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, &active, fields[model.EmployeeFieldActive])
			assert.NotContains(t, fields, model.EmployeeFieldBadgeCode)

			return nil
		})

	err := f.svc.Update(scannerContext(), dto.UpdateEmployeeRequest{Active: &active}, "emp-1")

	require.NoError(t, err)
}

func TestService_Delete(t *testing.T) {
	t.Run("referenced employee", func(t *testing.T) {
		f := newFixture(t)

		f.employees.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guard(), nil)
		f.employees.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		err := f.svc.Delete(scannerContext(), "emp-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		f.employees.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Employee{}, nil)

		err := f.svc.Delete(scannerContext(), "emp-9")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestService_GetAttendance(t *testing.T) {
	f := newFixture(t)

	f.attendance.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.attendance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Attendance{{ID: "a1", Type: model.TypeCheckIn}, {ID: "a2", Type: model.TypeCheckOut}}, nil)

	res, err := f.svc.GetAttendance(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Attendance, 2)
}
