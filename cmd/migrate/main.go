package main

import (
	"hotelbooking/config"
	"hotelbooking/helper"
	"hotelbooking/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/drop/step-up) is required")
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	action, err := helper.ParseAction(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid migration direction")
	}

	if err := helper.Runner(cfg, action); err != nil {
		logger.ErrorWithStack(err)
		os.Exit(1)
	}
}
