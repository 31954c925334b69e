//go:build wireinject
// +build wireinject

package di

import (
	"hotelbooking/config"
	"hotelbooking/infras/jwt"
	"hotelbooking/infras/kafka"
	"hotelbooking/infras/metrics"
	"hotelbooking/infras/otel"
	"hotelbooking/infras/postgres"
	"hotelbooking/infras/redis"
	"hotelbooking/infras/s3"
	"hotelbooking/internal/events"
	"hotelbooking/permissions"
	"hotelbooking/shared/cache"
	"hotelbooking/transport/http"
	"hotelbooking/transport/http/middleware"
	"hotelbooking/transport/http/router"

	"github.com/google/wire"

	authRepository "hotelbooking/internal/domains/auth/repository"
	authService "hotelbooking/internal/domains/auth/service"
	availabilityRepository "hotelbooking/internal/domains/availability/repository"
	availabilityService "hotelbooking/internal/domains/availability/service"
	hotelRepository "hotelbooking/internal/domains/hotel/repository"
	hotelService "hotelbooking/internal/domains/hotel/service"
	reservationRepository "hotelbooking/internal/domains/reservation/repository"
	reservationService "hotelbooking/internal/domains/reservation/service"
	roomRepository "hotelbooking/internal/domains/room/repository"
	roomService "hotelbooking/internal/domains/room/service"
	userRepository "hotelbooking/internal/domains/user/repository"
	viewService "hotelbooking/internal/domains/view/service"

	authHandler "hotelbooking/internal/handlers/auth"
	availabilityHandler "hotelbooking/internal/handlers/availability"
	hotelHandler "hotelbooking/internal/handlers/hotel"
	reservationHandler "hotelbooking/internal/handlers/reservation"
	roomHandler "hotelbooking/internal/handlers/room"
	viewHandler "hotelbooking/internal/handlers/view"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.NewPublisher,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authRepository.NewToken,
	authService.New,
)

var catalogDomain = wire.NewSet(
	hotelRepository.New,
	hotelService.New,
	roomRepository.New,
	roomService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationRepository.NewGuest,
	reservationRepository.NewEmergencyContact,
	reservationService.New,
)

var viewDomain = wire.NewSet(
	viewService.New,
)

var domains = wire.NewSet(
	authDomain,
	catalogDomain,
	availabilityDomain,
	reservationDomain,
	viewDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	hotelHandler.New,
	roomHandler.New,
	availabilityHandler.New,
	reservationHandler.New,
	viewHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeConsumer() *events.Consumer {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		metrics.New,
		events.NewConsumer,
	)

	return &events.Consumer{}
}
