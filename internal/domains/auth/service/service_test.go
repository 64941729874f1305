package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dipsport/infras/jwt"
	jwtMocks "dipsport/infras/jwt/mocks"
	otelMocks "dipsport/infras/otel/mocks"
	adminMocks "dipsport/internal/domains/admin/mocks"
	adminModel "dipsport/internal/domains/admin/model"
	"dipsport/internal/domains/auth/model/dto"
	"dipsport/internal/domains/auth/service"
	"dipsport/shared/cache"
	cacheMocks "dipsport/shared/cache/mocks"
	"dipsport/shared/constant"
	"dipsport/shared/failure"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// bcrypt hash of "password".
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

type fixedClock time.Time

func (c fixedClock) Now() time.Time {
	return time.Time(c)
}

var now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type deps struct {
	admins *adminMocks.MockAdmin
	logs   *adminMocks.MockLog
	cache  *cacheMocks.MockRedisCache
	jwt    *jwtMocks.MockJWT
}

func newService(t *testing.T) (service.Auth, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := deps{
		admins: adminMocks.NewMockAdmin(ctrl),
		logs:   adminMocks.NewMockLog(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
		jwt:    jwtMocks.NewMockJWT(ctrl),
	}

	return service.New(d.admins, d.logs, d.cache, d.jwt, fixedClock(now), otelMocks.NewOtel()), d
}

func activeAdmin() adminModel.Admin {
	return adminModel.Admin{
		ID:       "admin-1",
		Name:     "Sari",
		Email:    "sari@venue.test",
		Password: passwordHash,
		Role:     constant.RoleAdmin,
		IsActive: true,
	}
}

func claims(tokenType jwt.TokenType, id string, ttl time.Duration) *jwt.Claims {
	return &jwt.Claims{
		AdminID: "admin-1",
		Type:    tokenType,
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        id,
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

var pair = &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}

func TestAuth_Login(t *testing.T) {
	inactive := activeAdmin()
	inactive.IsActive = false

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(d deps)
		wantCode  int
	}{
		{
			name: "issues tokens and writes a login log",
			req:  dto.LoginRequest{Email: "sari@venue.test", Password: "password"},
			setupMock: func(d deps) {
				d.admins.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeAdmin(), nil)
				d.jwt.EXPECT().GenerateTokenPair("admin-1", "sari@venue.test", constant.RoleAdmin).Return(pair, nil)
				d.admins.EXPECT().Update(gomock.Any(), map[string]any{adminModel.FieldLastLogin: now}, gomock.Any()).Return(nil)
				d.logs.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, entry adminModel.Log) error {
					assert.Equal(t, adminModel.ActionLogin, entry.Action)
					assert.Equal(t, "admin-1", entry.AdminID)

					return nil
				})
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@venue.test", Password: "password"},
			setupMock: func(d deps) {
				d.admins.EXPECT().Get(gomock.Any(), gomock.Any()).Return(adminModel.Admin{}, nil)
			},
			wantCode: 401,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "sari@venue.test", Password: "hunter22"},
			setupMock: func(d deps) {
				d.admins.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeAdmin(), nil)
			},
			wantCode: 401,
		},
		{
			name: "deactivated admin",
			req:  dto.LoginRequest{Email: "sari@venue.test", Password: "password"},
			setupMock: func(d deps) {
				d.admins.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: 403,
		},
		{
			name: "repository failure",
			req:  dto.LoginRequest{Email: "sari@venue.test", Password: "password"},
			setupMock: func(d deps) {
				d.admins.EXPECT().Get(gomock.Any(), gomock.Any()).Return(adminModel.Admin{}, errors.New("db down"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newService(t)
			tt.setupMock(d)

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, "access", res.AccessToken)
				assert.Equal(t, "refresh", res.RefreshToken)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAuth_Register(t *testing.T) {
	t.Run("creates an admin", func(t *testing.T) {
		svc, d := newService(t)

		d.admins.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		d.admins.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, admin adminModel.Admin) error {
			assert.NotEqual(t, "secret123", admin.Password)
			assert.Equal(t, constant.RoleAdmin, admin.Role)

			return nil
		})

		res, err := svc.Register(context.Background(), dto.RegisterRequest{Name: "Budi", Email: "budi@venue.test", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "budi@venue.test", res.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, d := newService(t)

		d.admins.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "budi@venue.test", Password: "secret123"})
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestAuth_Logout(t *testing.T) {
	svc, d := newService(t)

	access := claims(jwt.AccessToken, "jti-access", 10*time.Minute)
	refresh := claims(jwt.RefreshToken, "jti-refresh", time.Hour)

	d.jwt.EXPECT().ValidateToken("access", jwt.AccessToken).Return(access, nil)
	d.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(refresh, nil)
	d.cache.EXPECT().Save(gomock.Any(), "auth:revoked:jti-access", "admin-1", 600).Return(nil)
	d.cache.EXPECT().Save(gomock.Any(), "auth:revoked:jti-refresh", "admin-1", 3600).Return(nil)
	d.logs.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, entry adminModel.Log) error {
		assert.Equal(t, adminModel.ActionLogout, entry.Action)

		return nil
	})

	err := svc.Logout(context.Background(), "access", dto.LogoutRequest{RefreshToken: "refresh"})
	assert.NoError(t, err)
}

func TestAuth_Authenticate(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(d deps)
		wantCode  int
	}{
		{
			name: "valid token",
			setupMock: func(d deps) {
				d.jwt.EXPECT().ValidateToken("tok", jwt.AccessToken).Return(claims(jwt.AccessToken, "jti", time.Minute), nil)
				d.cache.EXPECT().Get(gomock.Any(), "auth:revoked:jti", gomock.Any()).Return(cache.Nil)
			},
		},
		{
			name: "revoked token",
			setupMock: func(d deps) {
				d.jwt.EXPECT().ValidateToken("tok", jwt.AccessToken).Return(claims(jwt.AccessToken, "jti", time.Minute), nil)
				d.cache.EXPECT().Get(gomock.Any(), "auth:revoked:jti", gomock.Any()).Return(nil)
			},
			wantCode: 401,
		},
		{
			name: "expired token",
			setupMock: func(d deps) {
				d.jwt.EXPECT().ValidateToken("tok", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: 401,
		},
		{
			name: "revocation store unavailable",
			setupMock: func(d deps) {
				d.jwt.EXPECT().ValidateToken("tok", jwt.AccessToken).Return(claims(jwt.AccessToken, "jti", time.Minute), nil)
				d.cache.EXPECT().Get(gomock.Any(), "auth:revoked:jti", gomock.Any()).Return(errors.New("redis down"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newService(t)
			tt.setupMock(d)

			got, err := svc.Authenticate(context.Background(), "tok")

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, "admin-1", got.AdminID)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAuth_RefreshTokenRotates(t *testing.T) {
	svc, d := newService(t)

	refresh := claims(jwt.RefreshToken, "jti-refresh", time.Hour)

	gomock.InOrder(
		d.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(refresh, nil),
		d.cache.EXPECT().Get(gomock.Any(), "auth:revoked:jti-refresh", gomock.Any()).Return(cache.Nil),
		d.admins.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeAdmin(), nil),
		d.cache.EXPECT().Save(gomock.Any(), "auth:revoked:jti-refresh", "admin-1", 3600).Return(nil),
		d.jwt.EXPECT().GenerateTokenPair("admin-1", "sari@venue.test", constant.RoleAdmin).Return(pair, nil),
	)

	res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})
	require.NoError(t, err)
	assert.Equal(t, "access", res.AccessToken)
}

func TestAuth_ChangePassword(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	t.Run("wrong current password", func(t *testing.T) {
		svc, d := newService(t)
		d.admins.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeAdmin(), nil)

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newsecret1"})
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("updates hash", func(t *testing.T) {
		svc, d := newService(t)
		d.admins.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeAdmin(), nil)
		d.admins.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ any) error {
				assert.NotEqual(t, passwordHash, fields[adminModel.FieldPassword])
				assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

				return nil
			})

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newsecret1"})
		assert.NoError(t, err)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{})
		assert.Equal(t, 401, failure.GetCode(err))
	})
}
