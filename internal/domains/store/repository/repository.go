package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"oec/infras/otel"
	"oec/infras/postgres"
	"oec/internal/domains/store/model"
	gDto "oec/shared/dto"
	gRepo "oec/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Item interface {
	Insert(ctx context.Context, model model.Item) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Item, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (model.Item, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Item, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Transaction interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Transaction) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Transaction, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type itemRepository struct {
	gRepo.Repository[model.Item]
}

func New(db *postgres.Connection, otel otel.Otel) Item {
	return &itemRepository{
		Repository: gRepo.NewRepository[model.Item](model.ItemEntityName, model.ItemTableName, model.ItemFieldID, db, otel),
	}
}

type transactionRepository struct {
	gRepo.Repository[model.Transaction]
}

func NewTransaction(db *postgres.Connection, otel otel.Otel) Transaction {
	return &transactionRepository{
		Repository: gRepo.NewRepository[model.Transaction](model.TransactionEntityName, model.TransactionTableName, model.TransactionFieldID, db, otel),
	}
}
