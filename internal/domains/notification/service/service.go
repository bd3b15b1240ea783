package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Notification=MockNotificationService

import (
	"context"
	"fmt"

	"oec/config"
	"oec/infras/kafka"
	"oec/infras/otel"
	"oec/internal/domains/notification/model"
	"oec/internal/domains/notification/model/dto"
	"oec/internal/domains/notification/repository"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"
	"oec/shared/timezone"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

type Notification interface {
	// PublishBookingCreated puts the event on the notification topic. Delivery is at most once.
	PublishBookingCreated(ctx context.Context, event model.BookingCreated) error
	// Handle stores the inbox entry for one consumed message.
	Handle(ctx context.Context, message kafkaGo.Message) error
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetNotificationsResponse, error)
	MarkRead(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Notification
	cfg   *config.Config
	kafka kafka.Client
	otel  otel.Otel
}

func New(repo repository.Notification, cfg *config.Config, kafka kafka.Client, otel otel.Otel) Notification {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		kafka: kafka,
		otel:  otel,
	}
}

func (s *serviceImpl) PublishBookingCreated(ctx context.Context, event model.BookingCreated) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PublishBookingCreated")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.kafka.Publish(ctx, s.cfg.Kafka.Topics.Notification, kafka.Message{
		Key:   model.EventBookingCreated,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("booking", event.BookingID).Msg("failed to publish booking created")

		return fmt.Errorf("failed to publish booking created: %w", err)
	}

	return nil
}

func (s *serviceImpl) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Handle")
	defer scope.End()
	defer scope.TraceIfError(err)

	switch key := string(message.Key); key {
	case model.EventBookingCreated:
		event, err := kafka.DecodeKafkaMessage[model.BookingCreated](message)
		if err != nil {
			// Undecodable messages are committed and dropped.
			log.Error().Err(err).Msg("dropping undecodable booking created message")

			return nil
		}

		if err = s.repo.Insert(ctx, dto.NotificationFromBookingCreated(event, timezone.Now())); err != nil {
			log.Error().Err(err).Msg("failed to insert notification")

			return fmt.Errorf("failed to insert notification: %w", err)
		}

		return nil
	default:
		log.Warn().Str("key", key).Msg("ignoring unknown notification message")

		return nil
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetNotificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := s.inboxFilter(ctx)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count notifications")

		return res, fmt.Errorf("failed to count notifications: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return res, fmt.Errorf("failed to get notifications: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) MarkRead(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	filter := s.inboxFilter(ctx)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldID,
		Operator: gDto.FilterOperatorEq,
		Value:    id,
		Table:    model.TableName,
	})

	affected, err := s.repo.UpdateAffected(ctx, map[string]any{
		model.FieldReadAt:        now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to mark notification read")

		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("notification not found") // nolint:wrapcheck
	}

	return nil
}

// inboxFilter limits a building-assigned admin to their building plus broadcast entries.
func (s *serviceImpl) inboxFilter(ctx context.Context) gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	building, _ := ctx.Value(constant.ContextKeyBuilding).(string)
	if building == constant.Empty {
		return filter
	}

	filter.Filters = append(filter.Filters, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldBuilding, Operator: gDto.FilterOperatorEq, Value: building, Table: model.TableName},
			gDto.Filter{Field: model.FieldBuilding, Operator: gDto.FilterOperatorEq, Value: constant.Empty, Table: model.TableName, ArgName: "broadcast"},
		},
	})

	return filter
}
