package service

import (
	"context"
	"fmt"

	"dipsport/infras/otel"
	"dipsport/internal/domains/admin/model/dto"
	"dipsport/internal/domains/admin/repository"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"

	"github.com/rs/zerolog/log"
)

type AdminLog interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLogsResponse, error)
}

type serviceImpl struct {
	repo repository.Log
	otel otel.Otel
}

func New(repo repository.Log, otel otel.Otel) AdminLog {
	return &serviceImpl{repo: repo, otel: otel}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".adminLog.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count admin logs")

		return res, fmt.Errorf("failed to count admin logs: %w", err)
	}

	logs, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin logs")

		return res, fmt.Errorf("failed to get admin logs: %w", err)
	}

	res.FromModels(logs, total, params.Limit)

	return res, nil
}
