package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dipsport/config"
	"dipsport/infras/jwt"
	otelMocks "dipsport/infras/otel/mocks"
	authMocks "dipsport/internal/domains/auth/service/mocks"
	"dipsport/permissions"
	cacheMocks "dipsport/shared/cache/mocks"
	"dipsport/shared/constant"
	"dipsport/shared/failure"
	"dipsport/transport/http/middleware"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	tests := []struct {
		name          string
		count         int64
		err           error
		wantStatus    int
		wantRemaining string
	}{
		{name: "first request", count: 1, wantStatus: http.StatusOK, wantRemaining: "1"},
		{name: "last allowed request", count: 2, wantStatus: http.StatusOK, wantRemaining: "0"},
		{name: "over the limit", count: 3, wantStatus: http.StatusTooManyRequests, wantRemaining: "0"},
		{name: "counter unavailable", err: errors.New("redis down"), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)
			redisCache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.7", 60).Return(tt.count, tt.err)

			app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, redisCache)
			handler := app.RateLimit()(http.HandlerFunc(okHandler))

			req := httptest.NewRequest(http.MethodGet, "/v1/stadiums", nil)
			req.RemoteAddr = "10.0.0.7:51234"
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}

	t.Run("disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		app := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, cacheMocks.NewMockRedisCache(ctrl))

		rec := httptest.NewRecorder()
		app.RateLimit()(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get(constant.RequestHeaderRateLimit))
	})
}

const permissionTable = `{
  "endpoints": [
    {"path": "/v1/bookings/{code}", "method": "GET", "permissions": [], "skip": true},
    {"path": "/v1/bookings/{code}/status", "method": "PATCH", "permissions": ["admin", "superadmin"]},
    {"path": "/v1/auth/register", "method": "POST", "permissions": ["superadmin"]}
  ]
}`

func newRouter(t *testing.T, auth *authMocks.MockAuth, apiKey string) http.Handler {
	t.Helper()

	table, err := permissions.Parse([]byte(permissionTable))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	mw := middleware.NewAuthRoleMiddleware(auth, otelMocks.NewOtel(), table, cfg)

	echoRole := func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)
		w.Header().Set("X-Role", role)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(mw.APIKey, mw.Auth, mw.RBAC)
		r.Get("/v1/bookings/{code}", echoRole)
		r.Patch("/v1/bookings/{code}/status", echoRole)
		r.Post("/v1/auth/register", echoRole)
	})

	return router
}

func TestAuthRole(t *testing.T) {
	adminClaims := &jwt.Claims{AdminID: "a-1", Email: "admin@undip.ac.id", Role: constant.RoleAdmin}

	tests := []struct {
		name       string
		method     string
		path       string
		header     map[string]string
		setup      func(auth *authMocks.MockAuth)
		wantStatus int
		wantRole   string
	}{
		{
			name:       "public route without token",
			method:     http.MethodGet,
			path:       "/v1/bookings/DS-1",
			wantStatus: http.StatusOK,
		},
		{
			name:   "public route ignores a rejected token",
			method: http.MethodGet,
			path:   "/v1/bookings/DS-1",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer stale"},
			setup: func(auth *authMocks.MockAuth) {
				auth.EXPECT().Authenticate(gomock.Any(), "stale").Return(nil, failure.Unauthorized("token revoked"))
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "public route keeps a valid identity",
			method: http.MethodGet,
			path:   "/v1/bookings/DS-1",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setup: func(auth *authMocks.MockAuth) {
				auth.EXPECT().Authenticate(gomock.Any(), "good").Return(adminClaims, nil)
			},
			wantStatus: http.StatusOK,
			wantRole:   constant.RoleAdmin,
		},
		{
			name:       "protected route without token",
			method:     http.MethodPatch,
			path:       "/v1/bookings/DS-1/status",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "protected route with malformed header",
			method:     http.MethodPatch,
			path:       "/v1/bookings/DS-1/status",
			header:     map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "admin approves booking",
			method: http.MethodPatch,
			path:   "/v1/bookings/DS-1/status",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setup: func(auth *authMocks.MockAuth) {
				auth.EXPECT().Authenticate(gomock.Any(), "good").Return(adminClaims, nil)
			},
			wantStatus: http.StatusOK,
			wantRole:   constant.RoleAdmin,
		},
		{
			name:   "admin cannot register admins",
			method: http.MethodPost,
			path:   "/v1/auth/register",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setup: func(auth *authMocks.MockAuth) {
				auth.EXPECT().Authenticate(gomock.Any(), "good").Return(adminClaims, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "internal api key bypasses auth",
			method:     http.MethodPost,
			path:       "/v1/auth/register",
			header:     map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong api key",
			method:     http.MethodPost,
			path:       "/v1/auth/register",
			header:     map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := authMocks.NewMockAuth(ctrl)

			if tt.setup != nil {
				tt.setup(auth)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			newRouter(t, auth, "internal-key").ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRole, rec.Header().Get("X-Role"))
		})
	}
}
