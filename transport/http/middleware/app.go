package middleware

import (
	"fmt"
	"net/http"
	"time"

	"dipsport/config"
	"dipsport/infras/otel"
	"dipsport/shared/cache"
	"dipsport/shared/constant"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
	CORS() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

// Tracing opens the request span and writes one access log line per request.
func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, fmt.Sprintf("%s %s", r.Method, r.URL.Path))
		defer scope.End()

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		scope.SetAttributes(map[string]any{
			"app.name":         a.config.App.Name,
			"http.path":        r.URL.Path,
			"http.route":       route,
			"http.method":      r.Method,
			"http.user_agent":  r.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":        r.Host,
			"http.source":      a.getClientIP(r),
			"http.status_code": ww.Status(),
		})

		event := log.Info()
		if ww.Status() >= http.StatusInternalServerError {
			event = log.Error()
		}

		event.
			Str("method", r.Method).
			Str("route", route).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("took", time.Since(started)).
			Str("request_id", chiMiddleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

func (a *appMiddleware) CORS() func(http.Handler) http.Handler {
	settings := a.config.App.CORS
	if !settings.Enable {
		return func(next http.Handler) http.Handler { return next }
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   settings.AllowedOrigins,
		AllowedMethods:   settings.AllowedMethods,
		AllowedHeaders:   settings.AllowedHeaders,
		AllowCredentials: settings.AllowCredentials,
		MaxAge:           settings.MaxAgeSeconds,
	})
}
