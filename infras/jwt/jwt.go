package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dipsport/config"
	"dipsport/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

const bearerPrefix = "Bearer "

// Claims identifies an admin session. RegisteredClaims.ID is the token id used for revocation.
type Claims struct {
	AdminID string    `json:"admin_id"`
	Email   string    `json:"email"`
	Role    string    `json:"role"`
	Type    TokenType `json:"type"`
	jwt.RegisteredClaims
}

// TTL is the time left before the token expires, never negative.
func (c *Claims) TTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}

	return max(c.ExpiresAt.Sub(now), 0)
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(adminID, email, role string) (*TokenPair, error)
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
}

type signer struct {
	secret []byte
	ttl    time.Duration
}

type Service struct {
	issuer  string
	signers map[TokenType]signer
}

func New(cfg *config.Config) JWT {
	return &Service{
		issuer: cfg.App.Name,
		signers: map[TokenType]signer{
			AccessToken:  {secret: []byte(cfg.JWT.AccessSecret), ttl: time.Duration(cfg.JWT.AccessExpireMin) * time.Minute},
			RefreshToken: {secret: []byte(cfg.JWT.RefreshSecret), ttl: time.Duration(cfg.JWT.RefreshExpireMin) * time.Minute},
		},
	}
}

func (s *Service) GenerateTokenPair(adminID, email, role string) (*TokenPair, error) {
	now := timezone.Now()

	access, err := s.sign(adminID, email, role, AccessToken, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.sign(adminID, email, role, RefreshToken, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    strings.TrimSpace(bearerPrefix),
		ExpiresIn:    int64(s.signers[AccessToken].ttl.Seconds()),
	}, nil
}

func (s *Service) sign(adminID, email, role string, tokenType TokenType, issuedAt time.Time) (string, error) {
	signer, ok := s.signers[tokenType]
	if !ok {
		return "", fmt.Errorf("unknown token type: %s", tokenType)
	}

	claims := Claims{
		AdminID: adminID,
		Email:   email,
		Role:    role,
		Type:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(signer.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signer.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *Service) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	signer, ok := s.signers[tokenType]
	if !ok {
		return nil, fmt.Errorf("unknown token type: %s", tokenType)
	}

	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return signer.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	if claims.Type != tokenType || claims.AdminID == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader returns the token of a "Bearer <token>" Authorization header.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	token, ok := strings.CutPrefix(authHeader, bearerPrefix)
	if !ok || token == "" {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	return token, nil
}
