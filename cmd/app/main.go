package main

import (
	"hotelbooking/config"
	"hotelbooking/di"
	"hotelbooking/helper"
	"hotelbooking/shared/logger"

	"github.com/rs/zerolog/log"
)

//go:generate go run github.com/swaggo/swag/cmd/swag init -g ./cmd/app/main.go -o ../../docs -d ../../

// @title Hotel Booking API
// @version 1.0
// @description Hotel catalog, availability search and reservations for travelers and agents.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Runner(cfg, helper.ActionUp); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
