package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"oec/infras/otel"
	"oec/infras/postgres"
	"oec/internal/domains/post/model"
	gDto "oec/shared/dto"
	gRepo "oec/shared/repository"
)

type Post interface {
	Insert(ctx context.Context, model model.Post) error
	InsertBulk(ctx context.Context, models []model.Post) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Post, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Post, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repository struct {
	gRepo.Repository[model.Post]
}

func New(db *postgres.Connection, otel otel.Otel) Post {
	return &repository{
		Repository: gRepo.NewRepository[model.Post](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
