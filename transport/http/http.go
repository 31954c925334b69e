package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"hotelbooking/config"
	"hotelbooking/infras/metrics"
	"hotelbooking/shared/constant"
	"hotelbooking/transport/http/middleware"
	"hotelbooking/transport/http/response"
	"hotelbooking/transport/http/router"

	_ "hotelbooking/docs" // swagger spec

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const (
	readHeaderTimeout     = 10 * time.Second
	defaultRequestTimeout = 15 * time.Second
)

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	Metrics    metrics.Metrics

	state  atomic.Int32
	once   sync.Once
	mux    *chi.Mux
	server *http.Server
}

func New(cfg *config.Config, r router.Router, mw middleware.AppMiddleware, m metrics.Metrics) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: mw,
		Metrics:    m,
	}
}

func (h *HTTP) Serve() {
	h.setup()

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	h.setupGracefulShutdown()

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}

	log.Info().Msg("HTTP server stopped.")
}

// ServeHTTP lets the router run behind another server, e.g. a serverless entrypoint.
func (h *HTTP) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	h.setup()
	h.mux.ServeHTTP(writer, request)
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		h.setupRoutes()
		h.state.Store(int32(ServerStateReady))
	})
}

func (h *HTTP) setupRoutes() {
	h.mux = chi.NewRouter()

	requestTimeout := time.Duration(h.Config.Server.RequestTimeoutSeconds) * time.Second
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	h.mux.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		h.Middleware.Logger,
		chiMiddleware.Recoverer,
		h.Middleware.Tracing,
		h.Middleware.Metrics,
		h.Middleware.CORS(),
		h.Middleware.RateLimit(),
		chiMiddleware.Timeout(requestTimeout),
	)

	h.mux.Get("/health", h.health)

	if h.Config.Metrics.Enable {
		h.mux.Handle("/metrics", h.Metrics.Handler())
	}

	if h.Config.Server.Env != constant.ServerEnvProduction {
		h.mux.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	h.Router.SetupRoutes(h.mux)
}

func (h *HTTP) health(writer http.ResponseWriter, _ *http.Request) {
	switch h.State() {
	case ServerStateReady:
		response.WithMessage(writer, http.StatusOK, constant.ResponseHealthy)
	case ServerStateInGracePeriod:
		response.WithPreparingShutdown(writer)
	case ServerStateInCleanupPeriod:
		response.WithUnhealthy(writer)
	default:
		response.WithUnhealthy(writer)
	}
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

// respondToSigterm reports 503 on /health during the grace period so the load
// balancer drains the instance, then lets in-flight requests finish.
func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")
		h.shutdown(0)

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.state.Store(int32(ServerStateInGracePeriod))

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.state.Store(int32(ServerStateInCleanupPeriod))

	h.shutdown(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

func (h *HTTP) shutdown(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), max(timeout, time.Second))
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server did not shut down cleanly")
	}
}
