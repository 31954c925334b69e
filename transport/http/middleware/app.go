package middleware

import (
	"fmt"
	"net/http"
	"time"

	"hotelbooking/config"
	"hotelbooking/infras/metrics"
	"hotelbooking/infras/otel"
	"hotelbooking/shared/cache"
	"hotelbooking/shared/constant"
	"hotelbooking/transport/http/response"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

const (
	otelHTTPScopeName = "http"
	unmatchedRoute    = "unmatched"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	Logger(next http.Handler) http.Handler
	Metrics(next http.Handler) http.Handler
	CORS() func(http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
	LoginThrottle(next http.Handler) http.Handler
}

type appMiddleware struct {
	otel     otel.Otel
	config   *config.Config
	cache    cache.RedisCache
	metrics  metrics.Metrics
	throttle *throttle
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache, metrics metrics.Metrics) AppMiddleware {
	loginThrottle := config.App.LoginThrottle

	return &appMiddleware{
		otel:    otel,
		config:  config,
		cache:   cache,
		metrics: metrics,
		throttle: newThrottle(
			loginThrottle.RatePerSecond,
			loginThrottle.Burst,
			time.Duration(loginThrottle.IdleTTLSeconds)*time.Second,
		),
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		spanName := fmt.Sprintf("%s %s", request.Method, request.URL.Path)

		ctx, scope := a.otel.NewScope(request.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
			"http.user_agent": request.UserAgent(),
			"http.host":       request.Host,
			"http.source":     clientIP(request),
		})

		ww := chiMiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		next.ServeHTTP(ww, request.WithContext(ctx))

		scope.SetAttributes(map[string]any{
			"http.route":       routePattern(request),
			"http.status_code": ww.Status(),
		})
	})
}

// Logger writes one structured line per request.
func (a *appMiddleware) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)

		next.ServeHTTP(ww, request)

		event := log.Info()
		if ww.Status() >= http.StatusInternalServerError {
			event = log.Error()
		}

		event.
			Str("request_id", chiMiddleware.GetReqID(request.Context())).
			Str("method", request.Method).
			Str("path", request.URL.Path).
			Str("route", routePattern(request)).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("latency", time.Since(start)).
			Str("ip", clientIP(request)).
			Msg("request handled")
	})
}

func (a *appMiddleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)

		next.ServeHTTP(ww, request)

		a.metrics.ObserveHTTP(routePattern(request), request.Method, ww.Status(), time.Since(start))
	})
}

func (a *appMiddleware) CORS() func(http.Handler) http.Handler {
	corsConfig := a.config.App.CORS
	if !corsConfig.Enable {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
		ExposedHeaders: []string{
			constant.RequestHeaderRateLimit,
			constant.RequestHeaderRateLimitRemaining,
			constant.RequestHeaderRateLimitReset,
			constant.RequestHeaderRetryAfter,
			constant.RequestHeaderRequestID,
		},
	})
}

// LoginThrottle limits sign-in attempts per client IP.
func (a *appMiddleware) LoginThrottle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !a.config.App.LoginThrottle.Enable {
			next.ServeHTTP(writer, request)

			return
		}

		clientIP := clientIP(request)
		if !a.throttle.allow(clientIP, time.Now()) {
			log.Warn().Str("ip", clientIP).Msg("login attempts throttled")

			writer.Header().Set(constant.RequestHeaderRetryAfter, "1")
			response.WithRequestLimitExceeded(writer)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil {
		return unmatchedRoute
	}

	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}

	return unmatchedRoute
}
