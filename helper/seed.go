package helper

import (
	"context"
	"errors"
	"fmt"

	"dipsport/config"
	adminModel "dipsport/internal/domains/admin/model"
	adminRepo "dipsport/internal/domains/admin/repository"
	authDto "dipsport/internal/domains/auth/model/dto"
	"dipsport/shared"
	"dipsport/shared/constant"
	"dipsport/shared/password"
	"dipsport/shared/validator"

	"github.com/rs/zerolog/log"
)

// SeedSuperadmin creates the first superadmin from SEED_SUPERADMIN_* unless that email is
// already registered. Further admins are registered through the API by a superadmin.
func SeedSuperadmin(ctx context.Context, cfg *config.Config, repo adminRepo.Admin) error {
	seed := cfg.Seed.Superadmin
	if seed.Email == constant.Empty || seed.Password == constant.Empty {
		return errors.New("SEED_SUPERADMIN_EMAIL and SEED_SUPERADMIN_PASSWORD are required")
	}

	req := authDto.RegisterRequest{
		Name:     seed.Name,
		Email:    seed.Email,
		Password: seed.Password,
		Role:     constant.RoleSuperAdmin,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		return fmt.Errorf("invalid superadmin seed: %w", err)
	}

	exists, err := repo.Exist(ctx, shared.FilterByID(req.Email, adminModel.FieldEmail, adminModel.TableName))
	if err != nil {
		return fmt.Errorf("check superadmin: %w", err)
	}

	if exists {
		log.Info().Str("email", req.Email).Msg("Superadmin already present, nothing to seed")

		return nil
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("hash superadmin password: %w", err)
	}

	if err = repo.Insert(ctx, req.ToModel(constant.ContextSystem, hash)); err != nil {
		return fmt.Errorf("insert superadmin: %w", err)
	}

	log.Info().Str("email", req.Email).Msg("Superadmin seeded")

	return nil
}
