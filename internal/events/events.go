package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotelbooking/config"
	"hotelbooking/infras/kafka"
	"hotelbooking/infras/otel"
	"hotelbooking/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationCancelled = "reservation.cancelled"
	TypeReservationConfirmed = "reservation.confirmed"
)

// Reservation is the payload written to the reservation topic, keyed by reservation id.
type Reservation struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	RoomID        string    `json:"room_id"`
	HotelID       string    `json:"hotel_id"`
	TravelerID    string    `json:"traveler_id"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Guests        int       `json:"guests"`
	TotalAmount   float64   `json:"total_amount"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	ReservationCreated(ctx context.Context, event Reservation) error
	ReservationCancelled(ctx context.Context, event Reservation) error
	ReservationConfirmed(ctx context.Context, event Reservation) error
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

// NewPublisher returns a publisher that drops every event when Kafka is disabled.
func NewPublisher(cfg *config.Config, client kafka.Client, otel otel.Otel) Publisher {
	if !cfg.Kafka.Enable || client == nil {
		log.Info().Msg("Kafka is disabled, reservation events will not be published")

		return noopPublisher{}
	}

	return &kafkaPublisher{
		client: client,
		topic:  cfg.Kafka.Topic.Reservation,
		otel:   otel,
	}
}

func (p *kafkaPublisher) ReservationCreated(ctx context.Context, event Reservation) error {
	event.Type = TypeReservationCreated

	return p.publish(ctx, event)
}

func (p *kafkaPublisher) ReservationCancelled(ctx context.Context, event Reservation) error {
	event.Type = TypeReservationCancelled

	return p.publish(ctx, event)
}

func (p *kafkaPublisher) ReservationConfirmed(ctx context.Context, event Reservation) error {
	event.Type = TypeReservationConfirmed

	return p.publish(ctx, event)
}

func (p *kafkaPublisher) publish(ctx context.Context, event Reservation) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	scope.SetAttributes(map[string]any{
		"event.type":     event.Type,
		"reservation.id": event.ReservationID,
	})

	if err = p.client.SendMessages(ctx, p.topic, kafka.Message{Key: event.ReservationID, Value: event}); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	return nil
}

type noopPublisher struct{}

func (noopPublisher) ReservationCreated(context.Context, Reservation) error   { return nil }
func (noopPublisher) ReservationCancelled(context.Context, Reservation) error { return nil }
func (noopPublisher) ReservationConfirmed(context.Context, Reservation) error { return nil }
