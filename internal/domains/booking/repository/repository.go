package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"oec/infras/otel"
	"oec/infras/postgres"
	"oec/internal/domains/booking/model"
	"oec/internal/domains/booking/planner"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/logger"
	gRepo "oec/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateAffected(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Reservations(ctx context.Context, start, end time.Time) ([]planner.Reservation, error)
}

type Item interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Item) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Item, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type reservationRow struct {
	BookingID string    `db:"booking_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	ItemID    string    `db:"item_id"`
}

// Reservations lists the items held by every booking whose range touches [start, end].
// Rejected bookings hold nothing.
func (r *repositoryImpl) Reservations(ctx context.Context, start, end time.Time) ([]planner.Reservation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Reservations")
	defer scope.End()

	query := fmt.Sprintf(`SELECT DISTINCT b.id AS booking_id, b.start_date, b.end_date, i.item_id
		FROM %s b JOIN %s i ON i.booking_id = b.id
		WHERE b.approval_status != :rejected AND b.start_date <= :end_date AND b.end_date >= :start_date
		ORDER BY b.id`, model.TableName, model.ItemTableName)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := r.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	var rows []reservationRow

	err = prepare.SelectContext(ctx, &rows, map[string]any{
		"rejected":   model.ApprovalRejected,
		"start_date": start,
		"end_date":   end,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}

	reservations := []planner.Reservation{}
	index := map[string]int{}

	for _, row := range rows {
		i, ok := index[row.BookingID]
		if !ok {
			i = len(reservations)
			index[row.BookingID] = i
			reservations = append(reservations, planner.Reservation{Start: row.StartDate, End: row.EndDate})
		}

		reservations[i].ItemIDs = append(reservations[i].ItemIDs, row.ItemID)
	}

	return reservations, nil
}

type itemRepositoryImpl struct {
	gRepo.Repository[model.Item]
}

func NewItem(db *postgres.Connection, otel otel.Otel) Item {
	return &itemRepositoryImpl{
		Repository: gRepo.NewRepository[model.Item](model.ItemEntityName, model.ItemTableName, model.ItemFieldID, db, otel),
	}
}
