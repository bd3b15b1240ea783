package event

import (
	"context"
	"errors"
	"oec/config"
	"oec/infras/kafka"
	"oec/infras/otel"
	notificationService "oec/internal/domains/notification/service"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

// Consumer drains the notification topic into the admin inbox.
type Consumer struct {
	Config       *config.Config
	Kafka        kafka.Client
	Notification notificationService.Notification
	Otel         otel.Otel
}

func New(cfg *config.Config, kafka kafka.Client, notification notificationService.Notification, otel otel.Otel) *Consumer {
	return &Consumer{
		Config:       cfg,
		Kafka:        kafka,
		Notification: notification,
		Otel:         otel,
	}
}

// Run blocks until SIGINT or SIGTERM.
func (c *Consumer) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := c.Kafka.Consume(ctx, c.Config.Kafka.ConsumerGroup, c.Config.Kafka.Topics.Notification, c.Notification.Handle)
	if err != nil {
		if errors.Is(err, kafka.ErrNotConfigured) {
			log.Fatal().Err(err).Msg("KAFKA_BROKERS is not set, nothing to consume")
		}

		log.Error().Err(err).Msg("Notification consumer stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := c.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}

	if err := c.Otel.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}

	log.Info().Msg("Notification consumer shut down")
}
