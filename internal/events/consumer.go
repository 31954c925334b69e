package events

import (
	"context"
	"errors"

	"hotelbooking/config"
	"hotelbooking/infras/kafka"
	"hotelbooking/infras/metrics"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

var ErrKafkaDisabled = errors.New("kafka is disabled")

// Consumer reads reservation events and records them. It is the body of cmd/worker.
type Consumer struct {
	client  kafka.Client
	metrics metrics.Metrics
	cfg     *config.Config
}

func NewConsumer(cfg *config.Config, client kafka.Client, metrics metrics.Metrics) *Consumer {
	return &Consumer{
		client:  client,
		metrics: metrics,
		cfg:     cfg,
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	if !c.cfg.Kafka.Enable {
		return ErrKafkaDisabled
	}

	topic := c.cfg.Kafka.Topic.Reservation
	log.Info().Str("topic", topic).Str("group", c.cfg.Kafka.ConsumerGroup).Msg("Starting reservation event consumer")

	return c.client.Consume(ctx, c.cfg.Kafka.ConsumerGroup, topic, c.Handle) //nolint:wrapcheck
}

func (c *Consumer) Handle(_ context.Context, message kafkaGo.Message) error {
	event, err := kafka.Decode[Reservation](message)
	if err != nil {
		return err //nolint:wrapcheck
	}

	log.Info().
		Str("type", event.Type).
		Str("reservation_id", event.ReservationID).
		Str("room_id", event.RoomID).
		Str("hotel_id", event.HotelID).
		Str("traveler_id", event.TravelerID).
		Str("check_in", event.CheckIn).
		Str("check_out", event.CheckOut).
		Str("status", event.Status).
		Time("occurred_at", event.OccurredAt).
		Msg("reservation event received")

	c.metrics.ObserveEvent(message.Topic, event.Type)

	return nil
}
