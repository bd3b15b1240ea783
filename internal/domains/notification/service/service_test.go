package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"oec/config"
	kafkaLib "oec/infras/kafka"
	kafkaMocks "oec/infras/kafka/mocks"
	"oec/infras/otel/mocks"
	notificationMocks "oec/internal/domains/notification/mocks"
	"oec/internal/domains/notification/model"
	"oec/internal/domains/notification/service"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*notificationMocks.MockNotification, *kafkaMocks.MockClient, service.Notification) {
	ctrl := gomock.NewController(t)

	repo := notificationMocks.NewMockNotification(ctrl)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.Notification = "oec.notifications"

	return repo, client, service.New(repo, cfg, client, mocks.NewOtel())
}

func event() model.BookingCreated {
	return model.BookingCreated{
		BookingID:     "booking-1",
		Category:      "facility",
		Building:      constant.BuildingA,
		RequesterName: "Abebe",
		CompanyName:   "Acme",
		Email:         "abebe@example.com",
		StartDate:     "2026-05-01",
		EndDate:       "2026-05-02",
		TotalCost:     decimal.NewFromInt(9000),
	}
}

func TestNotificationService_PublishBookingCreated(t *testing.T) {
	t.Run("publishes keyed message on the topic", func(t *testing.T) {
		_, client, svc := newService(t)

		client.EXPECT().Publish(gomock.Any(), "oec.notifications", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, messages ...kafkaLib.Message) error {
				require.Len(t, messages, 1)
				assert.Equal(t, model.EventBookingCreated, messages[0].Key)

				return nil
			})

		require.NoError(t, svc.PublishBookingCreated(context.Background(), event()))
	})

	t.Run("broker failure is returned", func(t *testing.T) {
		_, client, svc := newService(t)

		client.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(kafkaLib.ErrNotConfigured)

		assert.ErrorIs(t, svc.PublishBookingCreated(context.Background(), event()), kafkaLib.ErrNotConfigured)
	})
}

func TestNotificationService_Handle(t *testing.T) {
	body, err := json.Marshal(event())
	require.NoError(t, err)

	t.Run("stores inbox entry for the booking building", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n model.Notification) error {
			assert.Equal(t, "booking-1", n.BookingID)
			assert.Equal(t, constant.BuildingA, n.Building)
			assert.Equal(t, constant.RoleAdmin, n.Audience)
			assert.Equal(t, "New facility booking", n.Title)
			assert.Contains(t, n.Message, "Abebe (Acme)")
			assert.Contains(t, n.Message, "9000.00")

			return nil
		})

		err := svc.Handle(context.Background(), kafkaGo.Message{Key: []byte(model.EventBookingCreated), Value: body})
		require.NoError(t, err)
	})

	t.Run("insert failure keeps the offset", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		err := svc.Handle(context.Background(), kafkaGo.Message{Key: []byte(model.EventBookingCreated), Value: body})
		assert.Error(t, err)
	})

	t.Run("garbage and unknown keys are dropped", func(t *testing.T) {
		_, _, svc := newService(t)

		assert.NoError(t, svc.Handle(context.Background(), kafkaGo.Message{Key: []byte(model.EventBookingCreated), Value: []byte("{")}))
		assert.NoError(t, svc.Handle(context.Background(), kafkaGo.Message{Key: []byte("other"), Value: body}))
	})
}

func TestNotificationService_GetAll(t *testing.T) {
	t.Run("building admin sees own building and broadcasts", func(t *testing.T) {
		repo, _, svc := newService(t)

		ctx := context.WithValue(context.Background(), constant.ContextKeyBuilding, constant.BuildingB)
		params := gDto.QueryParams{Page: 1, Limit: 10}

		repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "notifications.building = :building OR notifications.building = :broadcast")
			assert.Equal(t, constant.BuildingB, args["building"])

			return 1, nil
		})
		repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Notification{{ID: "n-1"}}, nil)

		res, err := svc.GetAll(ctx, params)

		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		require.Len(t, res.Notifications, 1)
		assert.False(t, res.Notifications[0].Read)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	t.Run("marks read", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		require.NoError(t, svc.MarkRead(context.Background(), "n-1"))
	})

	t.Run("missing or foreign notification", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		err := svc.MarkRead(context.Background(), "n-9")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
