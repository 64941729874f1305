package service

import (
	"context"
	"errors"
	"fmt"

	"dipsport/infras/jwt"
	"dipsport/infras/otel"
	adminModel "dipsport/internal/domains/admin/model"
	adminDto "dipsport/internal/domains/admin/model/dto"
	adminRepo "dipsport/internal/domains/admin/repository"
	"dipsport/internal/domains/auth/model/dto"
	"dipsport/shared"
	"dipsport/shared/cache"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	"dipsport/shared/failure"
	"dipsport/shared/password"
	"dipsport/shared/timezone"

	"github.com/rs/zerolog/log"
)

const revokedPrefix = "auth:revoked"

var errInvalidCredentials = failure.Unauthorized("invalid email or password")

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (adminDto.AdminResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
	Logout(ctx context.Context, accessToken string, req dto.LogoutRequest) error
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
	Me(ctx context.Context) (adminDto.AdminResponse, error)
	// Authenticate validates an access token and rejects revoked ones.
	Authenticate(ctx context.Context, accessToken string) (*jwt.Claims, error)
}

type serviceImpl struct {
	adminRepo adminRepo.Admin
	logRepo   adminRepo.Log
	cache     cache.RedisCache
	jwt       jwt.JWT
	clock     timezone.Clock
	otel      otel.Otel
}

func New(adminRepo adminRepo.Admin, logRepo adminRepo.Log, cache cache.RedisCache, jwt jwt.JWT, clock timezone.Clock, otel otel.Otel) Auth {
	return &serviceImpl{
		adminRepo: adminRepo,
		logRepo:   logRepo,
		cache:     cache,
		jwt:       jwt,
		clock:     clock,
		otel:      otel,
	}
}

func byEmail(email string) gDto.FilterGroup {
	return shared.FilterByID(email, adminModel.FieldEmail, adminModel.TableName)
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, adminModel.FieldID, adminModel.TableName)
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res adminDto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.adminRepo.Exist(ctx, byEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if admin exists")

		return res, fmt.Errorf("failed to check if admin exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered") //nolint:wrapcheck
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := req.ToModel(shared.Actor(ctx), hashed)

	if err = s.adminRepo.Insert(ctx, admin); err != nil {
		log.Error().Err(err).Msg("failed to create admin")

		return res, fmt.Errorf("failed to create admin: %w", err)
	}

	res.FromModel(admin)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	admin, err := s.adminRepo.Get(ctx, byEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with unknown email")

		return res, errInvalidCredentials
	}

	if err := password.Verify(req.Password, admin.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, errInvalidCredentials
	}

	if !admin.IsActive {
		return res, failure.Forbidden("admin account is deactivated") //nolint:wrapcheck
	}

	pair, err := s.jwt.GenerateTokenPair(admin.ID, admin.Email, admin.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := s.clock.Now()

	if err := s.adminRepo.Update(ctx, map[string]any{adminModel.FieldLastLogin: now}, byID(admin.ID)); err != nil {
		log.Warn().Err(err).Str("admin_id", admin.ID).Msg("failed to update last login")
	}

	s.record(ctx, adminModel.NewLog(admin.ID, adminModel.ActionLogin, adminModel.TableName, admin.ID, "admin logged in", now))

	res.FromTokenPair(pair)

	return res, nil
}

// Logout revokes the access token and, when given, the matching refresh token until they expire.
func (s *serviceImpl) Logout(ctx context.Context, accessToken string, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwt.ValidateToken(accessToken, jwt.AccessToken)
	if err != nil {
		return failure.Unauthorized("invalid access token") //nolint:wrapcheck
	}

	if err = s.revoke(ctx, claims); err != nil {
		return err
	}

	if req.RefreshToken != constant.Empty {
		refresh, err := s.jwt.ValidateToken(req.RefreshToken, jwt.RefreshToken)
		if err == nil && refresh.AdminID == claims.AdminID {
			if err := s.revoke(ctx, refresh); err != nil {
				return err
			}
		}
	}

	s.record(ctx, adminModel.NewLog(claims.AdminID, adminModel.ActionLogout, adminModel.TableName, claims.AdminID, "admin logged out", s.clock.Now()))

	return nil
}

// RefreshToken rotates the session: the presented refresh token is revoked and a new pair issued.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwt.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token") //nolint:wrapcheck
	}

	revoked, err := s.revoked(ctx, claims.ID)
	if err != nil {
		return res, err
	}

	if revoked {
		return res, failure.Unauthorized("refresh token has been revoked") //nolint:wrapcheck
	}

	admin, err := s.adminRepo.Get(ctx, byID(claims.AdminID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty || !admin.IsActive {
		return res, failure.Unauthorized("admin account is not available") //nolint:wrapcheck
	}

	if err = s.revoke(ctx, claims); err != nil {
		return res, err
	}

	pair, err := s.jwt.GenerateTokenPair(admin.ID, admin.Email, admin.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(pair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	admin, err := s.current(ctx)
	if err != nil {
		return err
	}

	if err := password.Verify(req.CurrentPassword, admin.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") //nolint:wrapcheck
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	fields := map[string]any{
		adminModel.FieldPassword: hashed,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: admin.ID,
	}

	if err = s.adminRepo.Update(ctx, fields, byID(admin.ID)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) Me(ctx context.Context) (res adminDto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	admin, err := s.current(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(admin)

	return res, nil
}

func (s *serviceImpl) Authenticate(ctx context.Context, accessToken string) (*jwt.Claims, error) {
	claims, err := s.jwt.ValidateToken(accessToken, jwt.AccessToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, failure.Unauthorized("token has expired") //nolint:wrapcheck
		}

		return nil, failure.Unauthorized("invalid token") //nolint:wrapcheck
	}

	revoked, err := s.revoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}

	if revoked {
		return nil, failure.Unauthorized("token has been revoked") //nolint:wrapcheck
	}

	return claims, nil
}

func (s *serviceImpl) current(ctx context.Context) (adminModel.Admin, error) {
	id, ok := shared.AdminID(ctx)
	if !ok {
		return adminModel.Admin{}, failure.Unauthorized("authentication required") //nolint:wrapcheck
	}

	admin, err := s.adminRepo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return admin, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return admin, failure.NotFound("admin not found") //nolint:wrapcheck
	}

	return admin, nil
}

func (s *serviceImpl) revoke(ctx context.Context, claims *jwt.Claims) error {
	ttl := int(claims.TTL(s.clock.Now()).Seconds())
	if ttl <= 0 {
		return nil
	}

	if err := s.cache.Save(ctx, shared.BuildCacheKey(revokedPrefix, claims.ID), claims.AdminID, ttl); err != nil {
		log.Error().Err(err).Str("token_id", claims.ID).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// revoked fails closed: a cache error rejects the token.
func (s *serviceImpl) revoked(ctx context.Context, tokenID string) (bool, error) {
	var holder string

	err := s.cache.Get(ctx, shared.BuildCacheKey(revokedPrefix, tokenID), &holder)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, cache.Nil) {
		return false, nil
	}

	log.Error().Err(err).Str("token_id", tokenID).Msg("failed to check token revocation")

	return false, fmt.Errorf("failed to check token revocation: %w", err)
}

func (s *serviceImpl) record(ctx context.Context, entry adminModel.Log) {
	if err := s.logRepo.Insert(ctx, entry); err != nil {
		log.Error().Err(err).Str("action", entry.Action).Str("admin_id", entry.AdminID).Msg("failed to write admin log")
	}
}
