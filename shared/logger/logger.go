package logger

import (
	"io"
	"os"
	"time"

	"hotelbooking/config"
	"hotelbooking/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console logger at trace level. SetLogLevel narrows it
// once the configuration is known.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// ErrorWithStack logs err with the stack of the caller.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL. Outside development the output
// switches to JSON lines tagged with the app name.
func SetLogLevel(config *config.Config) {
	SetOutput(config, os.Stdout)

	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == constant.Empty {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}

// SetOutput picks the writer format for the configured environment.
func SetOutput(config *config.Config, out io.Writer) {
	if config.Server.Env == constant.Empty || config.Server.Env == constant.ServerEnvDevelopment {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})

		return
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("app", config.App.Name).Logger()
}
