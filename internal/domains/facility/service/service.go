package service

import (
	"context"
	"fmt"

	"dipsport/infras/otel"
	"dipsport/infras/postgres"
	"dipsport/internal/domains/facility/model"
	"dipsport/internal/domains/facility/model/dto"
	"dipsport/internal/domains/facility/repository"
	stadiumModel "dipsport/internal/domains/stadium/model"
	"dipsport/shared"
	"dipsport/shared/cache"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	"dipsport/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Facility interface {
	Create(ctx context.Context, req dto.CreateFacilityRequest) (dto.FacilityResponse, error)
	Get(ctx context.Context, id string) (dto.FacilityResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFacilitiesResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Facility
	linkRepo repository.Link
	tx       postgres.Transactor
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Facility, linkRepo repository.Link, tx postgres.Transactor, cache cache.RedisCache, otel otel.Otel) Facility {
	return &serviceImpl{
		repo:     repo,
		linkRepo: linkRepo,
		tx:       tx,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFacilityRequest) (res dto.FacilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".facility.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	facility := req.ToModel(shared.Actor(ctx))

	if err = s.repo.Insert(ctx, facility); err != nil {
		log.Error().Err(err).Msg("failed to create facility")

		return res, fmt.Errorf("failed to create facility: %w", err)
	}

	res.FromModel(facility)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FacilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".facility.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	facility, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility")

		return res, fmt.Errorf("failed to get facility: %w", err)
	}

	if facility.ID == constant.Empty {
		return res, failure.NotFound("facility not found") //nolint:wrapcheck
	}

	res.FromModel(facility)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFacilitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".facility.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count facilities")

		return res, fmt.Errorf("failed to count facilities: %w", err)
	}

	facilities, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get facilities")

		return res, fmt.Errorf("failed to get facilities: %w", err)
	}

	res.FromModels(facilities, total, params.Limit)

	return res, nil
}

// Delete removes the facility and detaches it from every stadium in one transaction.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".facility.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if facility exists")

		return fmt.Errorf("failed to check if facility exists: %w", err)
	}

	if !exist {
		return failure.NotFound("facility not found") //nolint:wrapcheck
	}

	err = s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		links := shared.FilterByID(id, model.FieldLinkFacilityID, model.LinkTableName)
		if err := s.linkRepo.DeleteTx(ctx, tx, links); err != nil {
			return fmt.Errorf("failed to detach facility: %w", err)
		}

		if err := s.repo.DeleteTx(ctx, tx, filter); err != nil {
			return fmt.Errorf("failed to delete facility: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete facility")

		return err
	}

	// Stadium detail responses embed facility names.
	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, stadiumModel.CacheGet)

	return nil
}
