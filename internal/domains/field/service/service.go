package service

import (
	"context"
	"fmt"

	"dipsport/config"
	"dipsport/infras/otel"
	"dipsport/infras/postgres"
	"dipsport/infras/s3"
	"dipsport/internal/domains/admin/audit"
	adminModel "dipsport/internal/domains/admin/model"
	adminRepo "dipsport/internal/domains/admin/repository"
	bookingModel "dipsport/internal/domains/booking/model"
	bookingRepo "dipsport/internal/domains/booking/repository"
	"dipsport/internal/domains/field/model"
	"dipsport/internal/domains/field/model/dto"
	"dipsport/internal/domains/field/repository"
	stadiumModel "dipsport/internal/domains/stadium/model"
	stadiumRepo "dipsport/internal/domains/stadium/repository"
	"dipsport/shared"
	"dipsport/shared/cache"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	"dipsport/shared/failure"
	"dipsport/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Field interface {
	Create(ctx context.Context, req dto.CreateFieldRequest) (dto.FieldResponse, error)
	Get(ctx context.Context, id string) (dto.FieldResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFieldsResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateFieldRequest) error
	SetStatus(ctx context.Context, id string, req dto.SetStatusRequest) error
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, id string, req dto.AddImageRequest) (dto.ImageResponse, error)
	UploadImage(ctx context.Context, id string, req dto.UploadImageRequest) (dto.ImageResponse, error)
	DeleteImage(ctx context.Context, id, imageID string) error
}

type serviceImpl struct {
	repo        repository.Field
	imageRepo   repository.Image
	stadiumRepo stadiumRepo.Stadium
	detailRepo  bookingRepo.Detail
	logRepo     adminRepo.Log
	tx          postgres.Transactor
	s3          s3.S3
	cache       cache.RedisCache
	cfg         *config.Config
	otel        otel.Otel
}

func New(
	repo repository.Field,
	imageRepo repository.Image,
	stadiumRepo stadiumRepo.Stadium,
	detailRepo bookingRepo.Detail,
	logRepo adminRepo.Log,
	tx postgres.Transactor,
	s3 s3.S3,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) Field {
	return &serviceImpl{
		repo:        repo,
		imageRepo:   imageRepo,
		stadiumRepo: stadiumRepo,
		detailRepo:  detailRepo,
		logRepo:     logRepo,
		tx:          tx,
		s3:          s3,
		cache:       cache,
		cfg:         cfg,
		otel:        otel,
	}
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByIDNotDeleted(id, model.FieldID, model.TableName)
}

func byField(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldImageFieldID, model.ImageTableName)
}

// Create adds an active field. The parent stadium row is locked so a concurrent deactivation
// cannot slip between the check and the insert.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFieldRequest) (res dto.FieldResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".field.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	field := req.ToModel(shared.Actor(ctx))

	err = s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.lockActiveStadium(ctx, tx, req.StadiumID); err != nil {
			return err
		}

		if err := s.repo.InsertTx(ctx, tx, field); err != nil {
			return fmt.Errorf("failed to create field: %w", err)
		}

		return nil
	})
	if err != nil {
		if failure.GetKind(err) == constant.Empty {
			log.Error().Err(err).Msg("failed to create field")
		}

		return res, err
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(field)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FieldResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".field.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for field")

		return res, nil
	}

	field, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get field")

		return res, fmt.Errorf("failed to get field: %w", err)
	}

	if field.ID == constant.Empty || field.DeletedAt != nil {
		return res, failure.ErrFieldNotFound
	}

	images, err := s.imageRepo.GetAll(ctx, gDto.QueryParams{}, byField(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get field images")

		return res, fmt.Errorf("failed to get field images: %w", err)
	}

	res.FromModel(field)
	res.WithImages(images)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save field to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFieldsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".field.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for fields")

		return res, nil
	}

	filter = shared.WithoutDeleted(filter, model.TableName)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count fields")

		return res, fmt.Errorf("failed to count fields: %w", err)
	}

	fields, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get fields")

		return res, fmt.Errorf("failed to get fields: %w", err)
	}

	res.FromModels(fields, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save fields to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateFieldRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".field.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	field, err := s.repo.Get(ctx, byID(id), model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get field")

		return fmt.Errorf("failed to get field: %w", err)
	}

	if field.ID == constant.Empty {
		return failure.ErrFieldNotFound
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, shared.Actor(ctx)), byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to update field")

		return fmt.Errorf("failed to update field: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// SetStatus activates or deactivates a field. Activation requires an active, live stadium.
func (s *serviceImpl) SetStatus(ctx context.Context, id string, req dto.SetStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".field.SetStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		field, err := s.lock(ctx, tx, id)
		if err != nil {
			return err
		}

		if field.Status == req.Status {
			return nil
		}

		if req.Status == constant.StatusActive {
			if err := s.lockActiveStadium(ctx, tx, field.StadiumID); err != nil {
				return err
			}
		}

		change := map[string]any{
			model.FieldStatus:        req.Status,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: shared.Actor(ctx),
		}
		if err := s.repo.UpdateTx(ctx, tx, change, byID(id)); err != nil {
			return fmt.Errorf("failed to update field status: %w", err)
		}

		return audit.Record(ctx, tx, s.logRepo, adminModel.ActionFieldStatus, model.TableName, id,
			fmt.Sprintf("field %s status %s -> %s", field.Name, field.Status, req.Status))
	})
	if err != nil {
		if failure.GetKind(err) == constant.Empty {
			log.Error().Err(err).Str("id", id).Msg("failed to change field status")
		}

		return err
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete removes the field under the configured policy unless it still holds pending or
// approved bookings.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".field.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hard := s.cfg.App.DeletePolicy == config.DeletePolicyHard

	var objects []string

	err = s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		field, err := s.lock(ctx, tx, id)
		if err != nil {
			return err
		}

		active, err := s.detailRepo.ActiveOnFieldsTx(ctx, tx, []string{id})
		if err != nil {
			return fmt.Errorf("failed to check active bookings: %w", err)
		}

		if active {
			return failure.ErrActiveBookingsExist.WithMessage(fmt.Sprintf("field %s still has pending or approved bookings", field.Name))
		}

		if hard {
			objects, err = s.purge(ctx, tx, id)
		} else {
			err = s.retire(ctx, tx, id)
		}

		if err != nil {
			return err
		}

		return audit.Record(ctx, tx, s.logRepo, adminModel.ActionFieldDelete, model.TableName, id,
			fmt.Sprintf("field %s deleted", field.Name))
	})
	if err != nil {
		if failure.GetKind(err) == constant.Empty {
			log.Error().Err(err).Str("id", id).Msg("failed to delete field")
		}

		return err
	}

	log.Info().Str("id", id).Bool("hard", hard).Msg("field deleted")

	s.removeObjects(ctx, objects)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) retire(ctx context.Context, tx *sqlx.Tx, id string) error {
	change := map[string]any{
		model.FieldStatus:        constant.StatusInactive,
		model.FieldDeletedAt:     timezone.Now(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: shared.Actor(ctx),
	}

	if err := s.repo.UpdateTx(ctx, tx, change, byID(id)); err != nil {
		return fmt.Errorf("failed to retire field: %w", err)
	}

	return nil
}

func (s *serviceImpl) purge(ctx context.Context, tx *sqlx.Tx, id string) ([]string, error) {
	images, err := s.imageRepo.GetAllTx(ctx, tx, gDto.QueryParams{}, byField(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get field images: %w", err)
	}

	details := shared.FilterByID(id, bookingModel.FieldDetailFieldID, bookingModel.DetailTableName)
	if err := s.detailRepo.DeleteTx(ctx, tx, details); err != nil {
		return nil, fmt.Errorf("failed to delete booking details: %w", err)
	}

	if err := s.imageRepo.DeleteTx(ctx, tx, byField(id)); err != nil {
		return nil, fmt.Errorf("failed to delete field images: %w", err)
	}

	if err := s.repo.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return nil, fmt.Errorf("failed to delete field: %w", err)
	}

	objects := make([]string, len(images))
	for i, image := range images {
		objects[i] = image.ImageURL
	}

	return objects, nil
}

func (s *serviceImpl) AddImage(ctx context.Context, id string, req dto.AddImageRequest) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".field.AddImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureLive(ctx, id); err != nil {
		return res, err
	}

	return s.insertImage(ctx, id, req.ImageURL)
}

func (s *serviceImpl) UploadImage(ctx context.Context, id string, req dto.UploadImageRequest) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".field.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureLive(ctx, id); err != nil {
		return res, err
	}

	url, err := s.s3.Upload(ctx, model.EntityName, req.ImageFile, req.Image)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload field image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	res, err = s.insertImage(ctx, id, url)
	if err != nil {
		s.removeObjects(ctx, []string{url})

		return res, err
	}

	return res, nil
}

func (s *serviceImpl) insertImage(ctx context.Context, id, url string) (res dto.ImageResponse, err error) {
	image := model.Image{
		ID:        uuid.NewString(),
		FieldID:   id,
		ImageURL:  url,
		CreatedAt: timezone.Now(),
	}

	if err = s.imageRepo.Insert(ctx, image); err != nil {
		log.Error().Err(err).Msg("failed to save field image")

		return res, fmt.Errorf("failed to save field image: %w", err)
	}

	s.invalidate(ctx, id)

	res.FromModel(image)

	return res, nil
}

func (s *serviceImpl) DeleteImage(ctx context.Context, id, imageID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".field.DeleteImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: imageID, Operator: gDto.FilterOperatorEq, Table: model.ImageTableName},
			gDto.Filter{Field: model.FieldImageFieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.ImageTableName},
		},
	}

	image, err := s.imageRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get field image")

		return fmt.Errorf("failed to get field image: %w", err)
	}

	if image.ID == constant.Empty {
		return failure.NotFound("field image not found") //nolint:wrapcheck
	}

	if err = s.imageRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete field image")

		return fmt.Errorf("failed to delete field image: %w", err)
	}

	s.removeObjects(ctx, []string{image.ImageURL})
	s.invalidate(ctx, id)

	return nil
}

// lockActiveStadium locks the parent row. A missing stadium is STADIUM_NOT_FOUND while an
// inactive or soft-deleted one is PARENT_INACTIVE.
func (s *serviceImpl) lockActiveStadium(ctx context.Context, tx *sqlx.Tx, stadiumID string) error {
	stadium, err := s.stadiumRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(stadiumID, stadiumModel.FieldID, stadiumModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get stadium: %w", err)
	}

	if stadium.ID == constant.Empty {
		return failure.ErrStadiumNotFound.WithMessage(fmt.Sprintf("stadium %s not found", stadiumID))
	}

	if !stadium.Live() || stadium.Status != constant.StatusActive {
		return failure.ErrParentInactive.WithMessage(fmt.Sprintf("stadium %s is not active", stadium.Name))
	}

	return nil
}

func (s *serviceImpl) lock(ctx context.Context, tx *sqlx.Tx, id string) (model.Field, error) {
	field, err := s.repo.GetForUpdateTx(ctx, tx, byID(id))
	if err != nil {
		return field, fmt.Errorf("failed to get field: %w", err)
	}

	if field.ID == constant.Empty || field.DeletedAt != nil {
		return field, failure.ErrFieldNotFound
	}

	return field, nil
}

func (s *serviceImpl) ensureLive(ctx context.Context, id string) error {
	field, err := s.repo.Get(ctx, byID(id), model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get field")

		return fmt.Errorf("failed to get field: %w", err)
	}

	if field.ID == constant.Empty {
		return failure.ErrFieldNotFound
	}

	return nil
}

func (s *serviceImpl) removeObjects(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		for _, url := range urls {
			if err := s.s3.Remove(c, url); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("failed to remove field image object")
			}
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete field cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
	}()
}
