package middleware

import (
	"net"
	"net/http"
	"strconv"

	"dipsport/shared"
	"dipsport/shared/constant"
	"dipsport/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit counts requests per client address in fixed windows. A failing counter lets the request through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limits := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !limits.Enable || limits.MaxRequests <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r))

			count, err := a.cache.Increment(r.Context(), key, limits.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, letting request through")
				next.ServeHTTP(w, r)

				return
			}

			remaining := max(0, int64(limits.MaxRequests)-count)

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limits.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(remaining, 10))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limits.WindowSeconds))

			if count > int64(limits.MaxRequests) {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP expects chi's RealIP middleware to have already rewritten RemoteAddr from proxy headers.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
