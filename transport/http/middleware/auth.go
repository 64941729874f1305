package middleware

import (
	"context"
	"net/http"

	"dipsport/config"
	"dipsport/infras/jwt"
	"dipsport/infras/otel"
	authService "dipsport/internal/domains/auth/service"
	"dipsport/permissions"
	"dipsport/shared/constant"
	"dipsport/shared/failure"
	"dipsport/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type internalKey struct{}

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	auth       authService.Auth
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(auth authService.Auth, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		auth:       auth,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func (m *authRoleImpl) endpoint(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || m.permission == nil {
		return request.URL.Path, permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	return path, m.permission.FindPermissions(path, request.Method)
}

// Auth authenticates the bearer token. Public endpoints still accept a valid token so admins
// calling them keep their identity; an invalid token on a public endpoint is ignored.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		if internal, _ := ctx.Value(internalKey{}).(bool); internal {
			next.ServeHTTP(writer, request)

			return
		}

		path, permission := m.endpoint(request)
		public := permission.Skip || m.permission == nil || m.permission.Skip

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
			"http.public":     public,
		})

		header := request.Header.Get(constant.RequestHeaderAuthorization)
		if header == constant.Empty {
			if public {
				next.ServeHTTP(writer, request)

				return
			}

			response.WithError(writer, failure.Unauthorized("Missing authorization header"))

			return
		}

		token, err := jwt.ExtractTokenFromHeader(header)
		if err != nil {
			if public {
				next.ServeHTTP(writer, request)

				return
			}

			response.WithError(writer, failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.auth.Authenticate(ctx, token)
		if err != nil {
			scope.TraceError(err)

			if public {
				next.ServeHTTP(writer, request)

				return
			}

			response.WithError(writer, err)

			return
		}

		ctx = context.WithValue(request.Context(), constant.ContextKeyUserID, claims.AdminID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the authenticated role against the roles allowed for the endpoint. Requires Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if internal, _ := ctx.Value(internalKey{}).(bool); internal {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		_, permission := m.endpoint(request)
		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !m.permission.Skip && !permission.Allows(role) {
			scope.TraceError(failure.ForbiddenError)
			scope.SetAttributes(map[string]any{
				"user_role":     role,
				"allowed_roles": permission.Permissions,
			})

			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey marks requests carrying the internal API key as trusted service calls.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == constant.Empty {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == constant.Empty || apiKey != m.cfg.App.APIKey {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(request.Context(), internalKey{}, true)))
	})
}
