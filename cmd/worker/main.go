package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"hotelbooking/config"
	"hotelbooking/di"
	"hotelbooking/internal/events"
	"hotelbooking/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := di.InitializeConsumer()

	if err := consumer.Run(ctx); err != nil {
		if errors.Is(err, events.ErrKafkaDisabled) {
			log.Warn().Msg("Kafka is disabled, nothing to consume")

			return
		}

		if !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("reservation event consumer stopped")
			stop()
			os.Exit(1)
		}
	}

	log.Info().Msg("Reservation event consumer stopped.")
}
