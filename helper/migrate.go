package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"hotelbooking/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const DefaultMigrationSource = "file://migrations/postgres"

type Action string

const (
	ActionUp     Action = "up"
	ActionDown   Action = "down"
	ActionStepUp Action = "step-up"
	ActionDrop   Action = "drop"
)

func ParseAction(value string) (Action, error) {
	switch action := Action(value); action {
	case ActionUp, ActionDown, ActionStepUp, ActionDrop:
		return action, nil
	default:
		return "", fmt.Errorf("invalid migration action %q, use 'up', 'down', 'drop' or 'step-up'", value)
	}
}

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// DSN builds the write-side connection string used by migrate.
func DSN(config *config.Config) string {
	write := config.DB.Postgres.Write

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)
	query.Set("x-migrations-table", config.DB.Postgres.MigrationTable)

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     getDBName(config, write.Name),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// RunWithSource applies action to the database at dsn using migrations from source.
func RunWithSource(source, dsn string, action Action) error {
	mig, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil || dbErr != nil {
			log.Error().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrate instance")
		}
	}()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migration %s: %w", action, err)
	}

	version, dirty, verErr := mig.Version()
	if verErr != nil && !errors.Is(verErr, migrate.ErrNilVersion) {
		log.Warn().Err(verErr).Msg("could not read migration version")
	}

	log.Info().Str("action", string(action)).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

func Runner(config *config.Config, action Action) error {
	return RunWithSource(DefaultMigrationSource, DSN(config), action)
}
