package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"oec/infras/otel"
	"oec/infras/postgres"
	"oec/internal/domains/pricing/model"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	gRepo "oec/shared/repository"
)

type Pricing interface {
	Insert(ctx context.Context, model model.Settings) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Settings, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Current(ctx context.Context) (model.Settings, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Settings]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Pricing {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Settings](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Current returns the highest version, or zero settings when none was saved yet.
func (r *repositoryImpl) Current(ctx context.Context) (model.Settings, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".pricing.Current")
	defer scope.End()

	rows, err := r.GetAll(ctx, gDto.QueryParams{
		Limit:   1,
		SortBy:  model.FieldVersion,
		SortDir: gDto.SortDirDesc,
	}, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)

		return model.Settings{}, fmt.Errorf("failed to get current pricing: %w", err)
	}

	if len(rows) == 0 {
		return model.Settings{}, nil
	}

	return rows[0], nil
}
