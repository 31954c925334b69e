package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"     default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
		RequestTimeoutSeconds int `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"15"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"NAME"     default:"hotelbooking"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		LoginThrottle struct {
			Enable         bool    `envconfig:"ENABLE"`
			RatePerSecond  float64 `envconfig:"RATE_PER_SECOND"  default:"1"`
			Burst          int     `envconfig:"BURST"            default:"5"`
			IdleTTLSeconds int     `envconfig:"IDLE_TTL_SECONDS" default:"600"`
		} `envconfig:"LOGIN_THROTTLE"`
		Booking struct {
			DefaultStatus         string `envconfig:"DEFAULT_STATUS"          default:"confirmed"`
			IdempotencyTTLSeconds int    `envconfig:"IDEMPOTENCY_TTL_SECONDS" default:"86400"`
		} `envconfig:"BOOKING"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"       default:"3"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"hotelbooking"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topic struct {
			Reservation string `envconfig:"RESERVATION" default:"hotelbooking.reservations"`
		} `envconfig:"TOPIC"`
	} `envconfig:"KAFKA"`

	Metrics struct {
		Enable    bool   `envconfig:"ENABLE"`
		Namespace string `envconfig:"NAMESPACE" default:"hotelbooking"`
	} `envconfig:"METRICS"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		for _, warning := range conf.Warnings() {
			log.Warn().Msg(warning)
		}

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Configuration initialized without .env file")
		}
	}

	return &conf
}

// Warnings reports backend settings that are missing. The service still starts;
// the affected backends fail on first use instead of at boot.
func (c *Config) Warnings() []string {
	warnings := []string{}

	if c.DB.Postgres.Write.Host == "" {
		warnings = append(warnings, "DB_POSTGRES_WRITE_HOST is not set, database writes will fail")
	}

	if c.DB.Postgres.Read.Host == "" {
		warnings = append(warnings, "DB_POSTGRES_READ_HOST is not set, database reads will fail")
	}

	if c.Cache.Redis.Primary.Host == "" {
		warnings = append(warnings, "CACHE_REDIS_PRIMARY_HOST is not set, cache and session revocation are unavailable")
	}

	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		warnings = append(warnings, "JWT secrets are not set, issued tokens are insecure")
	}

	if c.Kafka.Enable && len(c.Kafka.Brokers) == 0 {
		warnings = append(warnings, "KAFKA_ENABLE is set without KAFKA_BROKERS, events will not be delivered")
	}

	return warnings
}
