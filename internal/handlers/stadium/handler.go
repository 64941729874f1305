package stadium

import (
	"net/http"

	"dipsport/infras/otel"
	hourDto "dipsport/internal/domains/operatinghour/model/dto"
	hourService "dipsport/internal/domains/operatinghour/service"
	"dipsport/internal/domains/stadium/model"
	"dipsport/internal/domains/stadium/model/dto"
	"dipsport/internal/domains/stadium/service"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	"dipsport/shared/failure"
	"dipsport/shared/validator"
	"dipsport/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	paramImageID    = "imageID"
	paramFacilityID = "facilityID"
	paramDay        = "day"
)

type Handler struct {
	service service.Stadium
	hours   hourService.OperatingHour
	otel    otel.Otel
}

func New(service service.Stadium, hours hourService.OperatingHour, otel otel.Otel) Handler {
	return Handler{
		service: service,
		hours:   hours,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/stadiums", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateStadium)
		routerGroup.Get("/", handler.GetStadiums)
		routerGroup.Get("/{id}", handler.GetStadiumByID)
		routerGroup.Patch("/{id}", handler.UpdateStadium)
		routerGroup.Patch("/{id}/status", handler.SetStadiumStatus)
		routerGroup.Delete("/{id}", handler.DeleteStadium)

		routerGroup.Post("/{id}/images", handler.AddStadiumImage)
		routerGroup.Post("/{id}/images/upload", handler.UploadStadiumImage)
		routerGroup.Delete("/{id}/images/{imageID}", handler.DeleteStadiumImage)

		routerGroup.Post("/{id}/facilities/{facilityID}", handler.AttachFacility)
		routerGroup.Delete("/{id}/facilities/{facilityID}", handler.DetachFacility)

		routerGroup.Get("/{id}/operating-hours", handler.GetOperatingHours)
		routerGroup.Put("/{id}/operating-hours", handler.SetOperatingHour)
		routerGroup.Delete("/{id}/operating-hours/{day}", handler.DeleteOperatingHour)
	})
}

// CreateStadium handles the creation of a new stadium.
// @Summary Create a new stadium
// @Description Create a stadium. New stadiums start ACTIVE.
// @Tags Stadium
// @Accept json
// @Produce json
// @Param request body dto.CreateStadiumRequest true "Create Stadium Request"
// @Success 201 {object} response.Data[dto.StadiumResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stadiums [post]
// @Security BearerAuth
func (handler *Handler) CreateStadium(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateStadium")
	defer scope.End()

	req := dto.CreateStadiumRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	stadium, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create stadium")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Stadium created successfully")

	response.WithJSON(w, http.StatusCreated, stadium)
}

// GetStadiums retrieves stadiums.
// @Summary Get all stadiums
// @Description Retrieve stadiums with optional filtering and pagination. Soft-deleted stadiums are never listed.
// @Tags Stadium
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name (contains)"
// @Param status query string false "Filter by status (ACTIVE, INACTIVE)"
// @Success 200 {object} response.Data[dto.GetStadiumsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stadiums [get]
func (handler *Handler) GetStadiums(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStadiums")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sortable(model.FieldName, model.FieldStatus, constant.FieldCreatedAt)

	filter := gDto.FilterFromQuery(r.URL.Query(), model.TableName,
		gDto.QueryField{Param: model.FieldName, Operator: gDto.FilterOperatorLike},
		gDto.QueryField{Param: model.FieldStatus},
	)

	stadiums, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get stadiums")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stadiums)
}

// GetStadiumByID retrieves a stadium with its images and facilities.
// @Summary Get a stadium by ID
// @Tags Stadium
// @Produce json
// @Param id path string true "Stadium ID"
// @Success 200 {object} response.Data[dto.StadiumResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stadiums/{id} [get]
func (handler *Handler) GetStadiumByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStadiumByID")
	defer scope.End()

	stadium, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get stadium by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stadium)
}

// UpdateStadium updates the mutable attributes of a stadium.
// @Summary Update a stadium
// @Tags Stadium
// @Accept json
// @Produce json
// @Param id path string true "Stadium ID"
// @Param request body dto.UpdateStadiumRequest true "Update Stadium Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stadiums/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStadium(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStadium")
	defer scope.End()

	req := dto.UpdateStadiumRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update stadium")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Stadium updated successfully")
}

// SetStadiumStatus activates or deactivates a stadium.
// @Summary Set stadium status
// @Description Deactivating a stadium makes every field under it unbookable.
// @Tags Stadium
// @Accept json
// @Produce json
// @Param id path string true "Stadium ID"
// @Param request body dto.SetStatusRequest true "Status"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stadiums/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) SetStadiumStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetStadiumStatus")
	defer scope.End()

	req := dto.SetStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetStatus(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set stadium status")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Stadium status updated successfully")
}

// DeleteStadium deletes a stadium according to the configured delete policy.
// @Summary Delete a stadium
// @Tags Stadium
// @Produce json
// @Param id path string true "Stadium ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stadiums/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteStadium(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteStadium")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete stadium")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Stadium deleted successfully")
}

// AddStadiumImage attaches an already hosted image to a stadium.
// @Summary Add a stadium image by URL
// @Tags Stadium
// @Accept json
// @Produce json
// @Param id path string true "Stadium ID"
// @Param request body dto.AddImageRequest true "Image URL"
// @Success 201 {object} response.Data[dto.ImageResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stadiums/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) AddStadiumImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddStadiumImage")
	defer scope.End()

	req := dto.AddImageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	image, err := handler.service.AddImage(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add stadium image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, image)
}

// UploadStadiumImage stores an image in object storage and attaches it to a stadium.
// @Summary Upload a stadium image
// @Tags Stadium
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Stadium ID"
// @Param file formData file true "Image file"
// @Success 201 {object} response.Data[dto.ImageResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stadiums/{id}/images/upload [post]
// @Security BearerAuth
func (handler *Handler) UploadStadiumImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadStadiumImage")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, header, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read form file")

		response.WithError(w, failure.BadRequest(err))

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{Image: header, ImageFile: file}
	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate uploaded image")

		response.WithError(w, err)

		return
	}

	image, err := handler.service.UploadImage(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload stadium image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, image)
}

// DeleteStadiumImage removes an image from a stadium.
// @Summary Delete a stadium image
// @Tags Stadium
// @Produce json
// @Param id path string true "Stadium ID"
// @Param imageID path string true "Image ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stadiums/{id}/images/{imageID} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteStadiumImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteStadiumImage")
	defer scope.End()

	err := handler.service.DeleteImage(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, paramImageID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete stadium image")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Stadium image deleted successfully")
}

// AttachFacility links a facility to a stadium.
// @Summary Attach a facility
// @Tags Stadium
// @Produce json
// @Param id path string true "Stadium ID"
// @Param facilityID path string true "Facility ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stadiums/{id}/facilities/{facilityID} [post]
// @Security BearerAuth
func (handler *Handler) AttachFacility(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AttachFacility")
	defer scope.End()

	err := handler.service.AttachFacility(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, paramFacilityID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to attach facility")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Facility attached successfully")
}

// DetachFacility unlinks a facility from a stadium.
// @Summary Detach a facility
// @Tags Stadium
// @Produce json
// @Param id path string true "Stadium ID"
// @Param facilityID path string true "Facility ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stadiums/{id}/facilities/{facilityID} [delete]
// @Security BearerAuth
func (handler *Handler) DetachFacility(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DetachFacility")
	defer scope.End()

	err := handler.service.DetachFacility(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, paramFacilityID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to detach facility")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Facility detached successfully")
}

// GetOperatingHours lists the per-day opening windows of a stadium.
// @Summary Get operating hours
// @Tags Stadium
// @Produce json
// @Param id path string true "Stadium ID"
// @Success 200 {object} response.Data[[]hourDto.OperatingHourResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stadiums/{id}/operating-hours [get]
func (handler *Handler) GetOperatingHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOperatingHours")
	defer scope.End()

	hours, err := handler.hours.GetAll(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get operating hours")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hours)
}

// SetOperatingHour creates or replaces the opening window of one day.
// @Summary Set an operating hour
// @Tags Stadium
// @Accept json
// @Produce json
// @Param id path string true "Stadium ID"
// @Param request body hourDto.SetOperatingHourRequest true "Operating hour"
// @Success 200 {object} response.Data[hourDto.OperatingHourResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stadiums/{id}/operating-hours [put]
// @Security BearerAuth
func (handler *Handler) SetOperatingHour(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetOperatingHour")
	defer scope.End()

	req := hourDto.SetOperatingHourRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	hour, err := handler.hours.Set(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set operating hour")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hour)
}

// DeleteOperatingHour removes the window of one day so the default window applies again.
// @Summary Delete an operating hour
// @Tags Stadium
// @Produce json
// @Param id path string true "Stadium ID"
// @Param day path string true "Day (MONDAY..SUNDAY)"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stadiums/{id}/operating-hours/{day} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteOperatingHour(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOperatingHour")
	defer scope.End()

	if err := handler.hours.Delete(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, paramDay)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete operating hour")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Operating hour deleted successfully")
}
