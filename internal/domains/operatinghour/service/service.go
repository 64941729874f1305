package service

import (
	"context"
	"fmt"
	"time"

	"dipsport/config"
	"dipsport/infras/otel"
	"dipsport/internal/domains/booking/availability"
	"dipsport/internal/domains/operatinghour/model"
	"dipsport/internal/domains/operatinghour/model/dto"
	"dipsport/internal/domains/operatinghour/repository"
	stadiumModel "dipsport/internal/domains/stadium/model"
	stadiumRepo "dipsport/internal/domains/stadium/repository"
	"dipsport/shared"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	"dipsport/shared/failure"
	"dipsport/shared/timezone"

	"github.com/rs/zerolog/log"
)

type OperatingHour interface {
	availability.WindowProvider
	Set(ctx context.Context, stadiumID string, req dto.SetOperatingHourRequest) (dto.OperatingHourResponse, error)
	GetAll(ctx context.Context, stadiumID string) ([]dto.OperatingHourResponse, error)
	Delete(ctx context.Context, stadiumID, day string) error
}

type serviceImpl struct {
	repo        repository.OperatingHour
	stadiumRepo stadiumRepo.Stadium
	global      availability.Window
	otel        otel.Otel
}

func New(repo repository.OperatingHour, stadiumRepo stadiumRepo.Stadium, cfg *config.Config, otel otel.Otel) OperatingHour {
	return &serviceImpl{
		repo:        repo,
		stadiumRepo: stadiumRepo,
		global:      availability.Window{Open: cfg.App.OperatingHour.Open, Close: cfg.App.OperatingHour.Close},
		otel:        otel,
	}
}

func byStadiumDay(stadiumID, day string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStadiumID, Value: stadiumID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldDay, Value: day, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

// WindowFor returns the stadium's window for the weekday of date, or the global window.
func (s *serviceImpl) WindowFor(ctx context.Context, stadiumID string, date time.Time) (res availability.Window, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".operatinghour.WindowFor")
	defer scope.End()

	if stadiumID == "" {
		return s.global, nil
	}

	hour, err := s.repo.Get(ctx, byStadiumDay(stadiumID, model.DayOf(date)))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("stadium_id", stadiumID).Msg("failed to get operating hour")

		return res, fmt.Errorf("failed to get operating hour: %w", err)
	}

	if hour.ID == constant.Empty {
		return s.global, nil
	}

	return availability.Window{Open: hour.OpenHour, Close: hour.CloseHour}, nil
}

func (s *serviceImpl) Set(ctx context.Context, stadiumID string, req dto.SetOperatingHourRequest) (res dto.OperatingHourResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".operatinghour.Set")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err := s.stadiumRepo.Exist(ctx, shared.FilterByIDNotDeleted(stadiumID, stadiumModel.FieldID, stadiumModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if stadium exists")

		return res, fmt.Errorf("failed to check if stadium exists: %w", err)
	}

	if !exist {
		return res, failure.ErrStadiumNotFound
	}

	actor := shared.Actor(ctx)
	filter := byStadiumDay(stadiumID, req.Day)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get operating hour")

		return res, fmt.Errorf("failed to get operating hour: %w", err)
	}

	if current.ID == constant.Empty {
		hour := req.ToModel(stadiumID, actor)
		if err = s.repo.Insert(ctx, hour); err != nil {
			log.Error().Err(err).Msg("failed to create operating hour")

			return res, fmt.Errorf("failed to create operating hour: %w", err)
		}

		res.FromModel(hour)

		return res, nil
	}

	update := map[string]any{
		model.FieldOpenHour:      req.OpenHour,
		model.FieldCloseHour:     req.CloseHour,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}
	if err = s.repo.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Msg("failed to update operating hour")

		return res, fmt.Errorf("failed to update operating hour: %w", err)
	}

	current.OpenHour = req.OpenHour
	current.CloseHour = req.CloseHour
	res.FromModel(current)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, stadiumID string) (res []dto.OperatingHourResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".operatinghour.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(stadiumID, model.FieldStadiumID, model.TableName)

	hours, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get operating hours")

		return res, fmt.Errorf("failed to get operating hours: %w", err)
	}

	return dto.FromModels(hours), nil
}

func (s *serviceImpl) Delete(ctx context.Context, stadiumID, day string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".operatinghour.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.Delete(ctx, byStadiumDay(stadiumID, day)); err != nil {
		log.Error().Err(err).Msg("failed to delete operating hour")

		return fmt.Errorf("failed to delete operating hour: %w", err)
	}

	return nil
}
