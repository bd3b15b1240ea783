package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"oec/infras/otel"
	"oec/infras/postgres"
	"oec/internal/domains/content/model"
	gDto "oec/shared/dto"
	gRepo "oec/shared/repository"
)

type Content interface {
	Insert(ctx context.Context, model model.Content) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Content, error)
	UpdateAffected(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repository struct {
	gRepo.Repository[model.Content]
}

func New(db *postgres.Connection, otel otel.Otel) Content {
	return &repository{
		Repository: gRepo.NewRepository[model.Content](model.EntityName, model.TableName, model.FieldKey, db, otel),
	}
}
