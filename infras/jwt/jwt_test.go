package jwt_test

import (
	"testing"
	"time"

	"dipsport/config"
	"dipsport/infras/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "dipsport"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg)
}

func TestJWT_RoundTrip(t *testing.T) {
	svc := newService()

	pair, err := svc.GenerateTokenPair("admin-1", "admin@venue.test", "superadmin")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "superadmin", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.InDelta(t, (15 * time.Minute).Seconds(), claims.TTL(time.Now()).Seconds(), 5)

	refresh, err := svc.ValidateToken(pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, refresh.ID)
}

func TestJWT_RejectsWrongType(t *testing.T) {
	svc := newService()

	pair, err := svc.GenerateTokenPair("admin-1", "admin@venue.test", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken("garbage", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "", wantErr: true},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
