package dto_test

import (
	"testing"

	"dipsport/infras/jwt"
	"dipsport/internal/domains/auth/model/dto"
	"dipsport/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_ToModel(t *testing.T) {
	req := dto.RegisterRequest{Name: "Sari", Email: "sari@venue.test", Password: "secret123"}

	admin := req.ToModel("admin-root", "hashed")

	assert.NotEmpty(t, admin.ID)
	assert.Equal(t, "hashed", admin.Password)
	assert.Equal(t, constant.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.Equal(t, "admin-root", admin.CreatedBy)

	req.Role = constant.RoleSuperAdmin
	assert.Equal(t, constant.RoleSuperAdmin, req.ToModel("x", "y").Role)
}

func TestTokenResponse_FromTokenPair(t *testing.T) {
	var res dto.TokenResponse

	res.FromTokenPair(&jwt.TokenPair{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900})

	assert.Equal(t, dto.TokenResponse{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900}, res)
}
