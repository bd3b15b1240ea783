package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"oec/infras/otel"
	"oec/infras/postgres"
	"oec/internal/domains/employee/model"
	gDto "oec/shared/dto"
	gRepo "oec/shared/repository"
)

type Employee interface {
	Insert(ctx context.Context, model model.Employee) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Employee, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Employee, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Attendance interface {
	Insert(ctx context.Context, model model.Attendance) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Attendance, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type employeeRepository struct {
	gRepo.Repository[model.Employee]
}

func New(db *postgres.Connection, otel otel.Otel) Employee {
	return &employeeRepository{
		Repository: gRepo.NewRepository[model.Employee](model.EmployeeEntityName, model.EmployeeTableName, model.EmployeeFieldID, db, otel),
	}
}

type attendanceRepository struct {
	gRepo.Repository[model.Attendance]
}

func NewAttendance(db *postgres.Connection, otel otel.Otel) Attendance {
	return &attendanceRepository{
		Repository: gRepo.NewRepository[model.Attendance](model.AttendanceEntityName, model.AttendanceTableName, model.AttendanceFieldID, db, otel),
	}
}
