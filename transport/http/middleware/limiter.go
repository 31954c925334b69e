package middleware

import (
	"net"
	"net/http"
	"strconv"

	"hotelbooking/shared"
	"hotelbooking/shared/constant"
	"hotelbooking/transport/http/response"

	"github.com/rs/zerolog/log"
)

const cacheKeyRateLimit = "limiter"

// RateLimit counts requests per client in a fixed window kept in redis. When
// redis is unreachable requests pass unmetered.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limiter := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !limiter.Enable {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r))

			count, ttl, err := a.cache.Incr(r.Context(), key, limiter.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, request not metered")
				next.ServeHTTP(w, r)

				return
			}

			reset := strconv.Itoa(max(1, int(ttl.Seconds())))

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(limiter.MaxRequests)-count), 10))
			w.Header().Set(constant.RequestHeaderRateLimitReset, reset)

			if count > int64(limiter.MaxRequests) {
				w.Header().Set(constant.RequestHeaderRetryAfter, reset)
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP is the caller address without its port. Proxy headers are already
// folded into RemoteAddr by chi's RealIP middleware.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
