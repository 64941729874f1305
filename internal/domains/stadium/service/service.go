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
	facilityModel "dipsport/internal/domains/facility/model"
	facilityRepo "dipsport/internal/domains/facility/repository"
	fieldModel "dipsport/internal/domains/field/model"
	fieldRepo "dipsport/internal/domains/field/repository"
	hourModel "dipsport/internal/domains/operatinghour/model"
	hourRepo "dipsport/internal/domains/operatinghour/repository"
	"dipsport/internal/domains/stadium/model"
	"dipsport/internal/domains/stadium/model/dto"
	"dipsport/internal/domains/stadium/repository"
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

type Stadium interface {
	Create(ctx context.Context, req dto.CreateStadiumRequest) (dto.StadiumResponse, error)
	Get(ctx context.Context, id string) (dto.StadiumResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetStadiumsResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateStadiumRequest) error
	SetStatus(ctx context.Context, id string, req dto.SetStatusRequest) error
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, id string, req dto.AddImageRequest) (dto.ImageResponse, error)
	UploadImage(ctx context.Context, id string, req dto.UploadImageRequest) (dto.ImageResponse, error)
	DeleteImage(ctx context.Context, id, imageID string) error
	AttachFacility(ctx context.Context, id, facilityID string) error
	DetachFacility(ctx context.Context, id, facilityID string) error
}

// Repositories groups the stores a stadium cascade touches.
type Repositories struct {
	Stadium    repository.Stadium
	Image      repository.Image
	Field      fieldRepo.Field
	FieldImage fieldRepo.Image
	Detail     bookingRepo.Detail
	Facility   facilityRepo.Facility
	Link       facilityRepo.Link
	Hour       hourRepo.OperatingHour
	Log        adminRepo.Log
}

type serviceImpl struct {
	repos Repositories
	tx    postgres.Transactor
	s3    s3.S3
	cache cache.RedisCache
	cfg   *config.Config
	otel  otel.Otel
}

func New(repos Repositories, tx postgres.Transactor, s3 s3.S3, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Stadium {
	return &serviceImpl{
		repos: repos,
		tx:    tx,
		s3:    s3,
		cache: cache,
		cfg:   cfg,
		otel:  otel,
	}
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByIDNotDeleted(id, model.FieldID, model.TableName)
}

func byStadium(id, field, table string) gDto.FilterGroup {
	return shared.FilterByID(id, field, table)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateStadiumRequest) (res dto.StadiumResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stadium.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	stadium := req.ToModel(shared.Actor(ctx))

	if err = s.repos.Stadium.Insert(ctx, stadium); err != nil {
		log.Error().Err(err).Msg("failed to create stadium")

		return res, fmt.Errorf("failed to create stadium: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(stadium)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.StadiumResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stadium.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for stadium")

		return res, nil
	}

	stadium, err := s.repos.Stadium.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get stadium")

		return res, fmt.Errorf("failed to get stadium: %w", err)
	}

	if !stadium.Live() {
		return res, failure.ErrStadiumNotFound
	}

	images, err := s.repos.Image.GetAll(ctx, gDto.QueryParams{}, byStadium(id, model.FieldImageStadiumID, model.ImageTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get stadium images")

		return res, fmt.Errorf("failed to get stadium images: %w", err)
	}

	facilities, err := s.facilities(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(stadium)
	res.WithRelations(images, facilities)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save stadium to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) facilities(ctx context.Context, stadiumID string) ([]facilityModel.Facility, error) {
	links, err := s.repos.Link.GetAll(ctx, gDto.QueryParams{}, byStadium(stadiumID, facilityModel.FieldLinkStadiumID, facilityModel.LinkTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get stadium facilities")

		return nil, fmt.Errorf("failed to get stadium facilities: %w", err)
	}

	if len(links) == 0 {
		return nil, nil
	}

	ids := make([]string, len(links))
	for i, link := range links {
		ids[i] = link.FacilityID
	}

	facilities, err := s.repos.Facility.GetAll(ctx, gDto.QueryParams{SortBy: facilityModel.FieldName, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: facilityModel.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: facilityModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get facilities")

		return nil, fmt.Errorf("failed to get facilities: %w", err)
	}

	return facilities, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetStadiumsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stadium.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for stadiums")

		return res, nil
	}

	filter = shared.WithoutDeleted(filter, model.TableName)

	total, err := s.repos.Stadium.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count stadiums")

		return res, fmt.Errorf("failed to count stadiums: %w", err)
	}

	stadiums, err := s.repos.Stadium.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get stadiums")

		return res, fmt.Errorf("failed to get stadiums: %w", err)
	}

	res.FromModels(stadiums, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save stadiums to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateStadiumRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stadium.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureLive(ctx, id); err != nil {
		return err
	}

	if err = s.repos.Stadium.Update(ctx, shared.TransformFields(req, shared.Actor(ctx)), byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to update stadium")

		return fmt.Errorf("failed to update stadium: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// SetStatus changes the stadium status. Deactivation forces every field of the stadium inactive
// in the same transaction; activation leaves field statuses untouched.
func (s *serviceImpl) SetStatus(ctx context.Context, id string, req dto.SetStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stadium.SetStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.Actor(ctx)

	err = s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		stadium, err := s.lock(ctx, tx, id)
		if err != nil {
			return err
		}

		if stadium.Status == req.Status {
			return nil
		}

		if err := s.repos.Stadium.UpdateTx(ctx, tx, statusChange(req.Status, actor), byID(id)); err != nil {
			return fmt.Errorf("failed to update stadium status: %w", err)
		}

		if req.Status == constant.StatusInactive {
			fields := shared.FilterByID(id, fieldModel.FieldStadiumID, fieldModel.TableName)
			if err := s.repos.Field.UpdateTx(ctx, tx, statusChange(constant.StatusInactive, actor), fields); err != nil {
				return fmt.Errorf("failed to deactivate stadium fields: %w", err)
			}
		}

		return audit.Record(ctx, tx, s.repos.Log, adminModel.ActionStadiumStatus, model.TableName, id,
			fmt.Sprintf("stadium %s status %s -> %s", stadium.Name, stadium.Status, req.Status))
	})
	if err != nil {
		if failure.GetKind(err) == constant.Empty {
			log.Error().Err(err).Str("id", id).Msg("failed to change stadium status")
		}

		return err
	}

	s.invalidate(ctx, id, fieldModel.CacheGet, fieldModel.CacheGetAll)

	return nil
}

// Delete removes the stadium under the configured policy. It is refused while any of its fields
// holds a pending or approved booking.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stadium.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var objects []string

	err = s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		stadium, err := s.lock(ctx, tx, id)
		if err != nil {
			return err
		}

		fields, err := s.repos.Field.GetAllTx(ctx, tx, gDto.QueryParams{}, shared.FilterByID(id, fieldModel.FieldStadiumID, fieldModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get stadium fields: %w", err)
		}

		fieldIDs := make([]string, len(fields))
		for i, field := range fields {
			fieldIDs[i] = field.ID
		}

		if len(fieldIDs) > 0 {
			active, err := s.repos.Detail.ActiveOnFieldsTx(ctx, tx, fieldIDs)
			if err != nil {
				return fmt.Errorf("failed to check active bookings: %w", err)
			}

			if active {
				return failure.ErrActiveBookingsExist.WithMessage(fmt.Sprintf("stadium %s still has pending or approved bookings", stadium.Name))
			}
		}

		if s.cfg.App.DeletePolicy == config.DeletePolicyHard {
			objects, err = s.purge(ctx, tx, id, fieldIDs)
		} else {
			err = s.retire(ctx, tx, id)
		}

		if err != nil {
			return err
		}

		return audit.Record(ctx, tx, s.repos.Log, adminModel.ActionStadiumDelete, model.TableName, id,
			fmt.Sprintf("stadium %s deleted (%s)", stadium.Name, s.policy()))
	})
	if err != nil {
		if failure.GetKind(err) == constant.Empty {
			log.Error().Err(err).Str("id", id).Msg("failed to delete stadium")
		}

		return err
	}

	log.Info().Str("id", id).Str("policy", s.policy()).Int("objects", len(objects)).Msg("stadium deleted")

	s.removeObjects(ctx, objects)
	s.invalidate(ctx, id, fieldModel.CacheGet, fieldModel.CacheGetAll)

	return nil
}

func (s *serviceImpl) policy() string {
	if s.cfg.App.DeletePolicy == config.DeletePolicyHard {
		return config.DeletePolicyHard
	}

	return config.DeletePolicySoft
}

// retire deactivates and soft-deletes the stadium together with its live fields.
func (s *serviceImpl) retire(ctx context.Context, tx *sqlx.Tx, id string) error {
	actor := shared.Actor(ctx)
	now := timezone.Now()

	change := statusChange(constant.StatusInactive, actor)
	change[constant.FieldDeletedAt] = now

	fields := shared.WithoutDeleted(shared.FilterByID(id, fieldModel.FieldStadiumID, fieldModel.TableName), fieldModel.TableName)
	if err := s.repos.Field.UpdateTx(ctx, tx, change, fields); err != nil {
		return fmt.Errorf("failed to retire stadium fields: %w", err)
	}

	if err := s.repos.Stadium.UpdateTx(ctx, tx, change, byID(id)); err != nil {
		return fmt.Errorf("failed to retire stadium: %w", err)
	}

	return nil
}

// purge removes the stadium and everything hanging off it, children first, and returns the
// image URLs whose objects should be removed once the transaction commits.
func (s *serviceImpl) purge(ctx context.Context, tx *sqlx.Tx, id string, fieldIDs []string) ([]string, error) {
	var objects []string

	if len(fieldIDs) > 0 {
		inFields := func(column, table string) gDto.FilterGroup {
			return gDto.FilterGroup{
				Filters: []any{gDto.Filter{Field: column, Value: fieldIDs, Operator: gDto.FilterOperatorIn, Table: table}},
			}
		}

		fieldImages, err := s.repos.FieldImage.GetAllTx(ctx, tx, gDto.QueryParams{}, inFields(fieldModel.FieldImageFieldID, fieldModel.ImageTableName))
		if err != nil {
			return nil, fmt.Errorf("failed to get field images: %w", err)
		}

		for _, image := range fieldImages {
			objects = append(objects, image.ImageURL)
		}

		if err := s.repos.Detail.DeleteTx(ctx, tx, inFields(bookingModel.FieldDetailFieldID, bookingModel.DetailTableName)); err != nil {
			return nil, fmt.Errorf("failed to delete booking details: %w", err)
		}

		if err := s.repos.FieldImage.DeleteTx(ctx, tx, inFields(fieldModel.FieldImageFieldID, fieldModel.ImageTableName)); err != nil {
			return nil, fmt.Errorf("failed to delete field images: %w", err)
		}

		if err := s.repos.Field.DeleteTx(ctx, tx, shared.FilterByID(id, fieldModel.FieldStadiumID, fieldModel.TableName)); err != nil {
			return nil, fmt.Errorf("failed to delete fields: %w", err)
		}
	}

	imageFilter := byStadium(id, model.FieldImageStadiumID, model.ImageTableName)

	images, err := s.repos.Image.GetAllTx(ctx, tx, gDto.QueryParams{}, imageFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to get stadium images: %w", err)
	}

	for _, image := range images {
		objects = append(objects, image.ImageURL)
	}

	if err := s.repos.Image.DeleteTx(ctx, tx, imageFilter); err != nil {
		return nil, fmt.Errorf("failed to delete stadium images: %w", err)
	}

	if err := s.repos.Link.DeleteTx(ctx, tx, byStadium(id, facilityModel.FieldLinkStadiumID, facilityModel.LinkTableName)); err != nil {
		return nil, fmt.Errorf("failed to delete facility links: %w", err)
	}

	if err := s.repos.Hour.DeleteTx(ctx, tx, byStadium(id, hourModel.FieldStadiumID, hourModel.TableName)); err != nil {
		return nil, fmt.Errorf("failed to delete operating hours: %w", err)
	}

	if err := s.repos.Stadium.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return nil, fmt.Errorf("failed to delete stadium: %w", err)
	}

	return objects, nil
}

func (s *serviceImpl) AddImage(ctx context.Context, id string, req dto.AddImageRequest) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stadium.AddImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureLive(ctx, id); err != nil {
		return res, err
	}

	return s.insertImage(ctx, id, req.ImageURL)
}

func (s *serviceImpl) UploadImage(ctx context.Context, id string, req dto.UploadImageRequest) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stadium.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureLive(ctx, id); err != nil {
		return res, err
	}

	url, err := s.s3.Upload(ctx, model.EntityName, req.ImageFile, req.Image)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload stadium image")

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
		StadiumID: id,
		ImageURL:  url,
		CreatedAt: timezone.Now(),
	}

	if err = s.repos.Image.Insert(ctx, image); err != nil {
		log.Error().Err(err).Msg("failed to save stadium image")

		return res, fmt.Errorf("failed to save stadium image: %w", err)
	}

	s.invalidate(ctx, id)

	res.FromModel(image)

	return res, nil
}

func (s *serviceImpl) DeleteImage(ctx context.Context, id, imageID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stadium.DeleteImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: imageID, Operator: gDto.FilterOperatorEq, Table: model.ImageTableName},
			gDto.Filter{Field: model.FieldImageStadiumID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.ImageTableName},
		},
	}

	image, err := s.repos.Image.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get stadium image")

		return fmt.Errorf("failed to get stadium image: %w", err)
	}

	if image.ID == constant.Empty {
		return failure.NotFound("stadium image not found") //nolint:wrapcheck
	}

	if err = s.repos.Image.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete stadium image")

		return fmt.Errorf("failed to delete stadium image: %w", err)
	}

	s.removeObjects(ctx, []string{image.ImageURL})
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) AttachFacility(ctx context.Context, id, facilityID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stadium.AttachFacility")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureLive(ctx, id); err != nil {
		return err
	}

	exist, err := s.repos.Facility.Exist(ctx, shared.FilterByID(facilityID, facilityModel.FieldID, facilityModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if facility exists")

		return fmt.Errorf("failed to check if facility exists: %w", err)
	}

	if !exist {
		return failure.NotFound("facility not found") //nolint:wrapcheck
	}

	linked, err := s.repos.Link.Exist(ctx, link(id, facilityID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check stadium facility")

		return fmt.Errorf("failed to check stadium facility: %w", err)
	}

	if linked {
		return nil
	}

	err = s.repos.Link.Insert(ctx, facilityModel.StadiumFacility{StadiumID: id, FacilityID: facilityID, CreatedAt: timezone.Now()})
	if err != nil {
		log.Error().Err(err).Msg("failed to attach facility")

		return fmt.Errorf("failed to attach facility: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) DetachFacility(ctx context.Context, id, facilityID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stadium.DetachFacility")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repos.Link.Delete(ctx, link(id, facilityID)); err != nil {
		log.Error().Err(err).Msg("failed to detach facility")

		return fmt.Errorf("failed to detach facility: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func link(stadiumID, facilityID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: facilityModel.FieldLinkStadiumID, Value: stadiumID, Operator: gDto.FilterOperatorEq, Table: facilityModel.LinkTableName},
			gDto.Filter{Field: facilityModel.FieldLinkFacilityID, Value: facilityID, Operator: gDto.FilterOperatorEq, Table: facilityModel.LinkTableName},
		},
	}
}

func statusChange(status, actor string) map[string]any {
	return map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}
}

func (s *serviceImpl) ensureLive(ctx context.Context, id string) error {
	exist, err := s.repos.Stadium.Exist(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if stadium exists")

		return fmt.Errorf("failed to check if stadium exists: %w", err)
	}

	if !exist {
		return failure.ErrStadiumNotFound
	}

	return nil
}

func (s *serviceImpl) lock(ctx context.Context, tx *sqlx.Tx, id string) (model.Stadium, error) {
	stadium, err := s.repos.Stadium.GetForUpdateTx(ctx, tx, byID(id))
	if err != nil {
		return stadium, fmt.Errorf("failed to get stadium: %w", err)
	}

	if !stadium.Live() {
		return stadium, failure.ErrStadiumNotFound
	}

	return stadium, nil
}

// removeObjects deletes stored images in the background. Failures only leave orphaned objects.
func (s *serviceImpl) removeObjects(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		for _, url := range urls {
			if err := s.s3.Remove(c, url); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("failed to remove stadium image object")
			}
		}
	}()
}

// invalidate drops the cached stadium and listings, plus any extra prefixes touched by a cascade.
func (s *serviceImpl) invalidate(ctx context.Context, id string, prefixes ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete stadium cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)

		for _, prefix := range prefixes {
			shared.InvalidateCaches(c, s.cache, prefix)
		}
	}()
}
