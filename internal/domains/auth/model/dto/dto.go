package dto

import (
	"dipsport/infras/jwt"
	adminModel "dipsport/internal/domains/admin/model"
	"dipsport/shared/constant"
	gModel "dipsport/shared/model"
	"dipsport/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin superadmin"`
}

func (r *RegisterRequest) ToModel(actor, hashedPassword string) adminModel.Admin {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleAdmin
	}

	return adminModel.Admin{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Email:    r.Email,
		Password: hashedPassword,
		Role:     role,
		IsActive: true,
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *TokenResponse) FromTokenPair(pair *jwt.TokenPair) {
	r.AccessToken = pair.AccessToken
	r.RefreshToken = pair.RefreshToken
	r.TokenType = pair.TokenType
	r.ExpiresIn = pair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest optionally carries the refresh token so both halves of the session are revoked.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}
