package field

import (
	"net/http"

	"dipsport/infras/otel"
	"dipsport/internal/domains/field/model"
	"dipsport/internal/domains/field/model/dto"
	"dipsport/internal/domains/field/service"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	"dipsport/shared/failure"
	"dipsport/shared/validator"
	"dipsport/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const paramImageID = "imageID"

type Handler struct {
	service service.Field
	otel    otel.Otel
}

func New(service service.Field, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/fields", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateField)
		routerGroup.Get("/", handler.GetFields)
		routerGroup.Get("/{id}", handler.GetFieldByID)
		routerGroup.Patch("/{id}", handler.UpdateField)
		routerGroup.Patch("/{id}/status", handler.SetFieldStatus)
		routerGroup.Delete("/{id}", handler.DeleteField)

		routerGroup.Post("/{id}/images", handler.AddFieldImage)
		routerGroup.Post("/{id}/images/upload", handler.UploadFieldImage)
		routerGroup.Delete("/{id}/images/{imageID}", handler.DeleteFieldImage)
	})
}

// CreateField handles the creation of a new field.
// @Summary Create a new field
// @Description Create a field under a stadium. New fields start ACTIVE.
// @Tags Field
// @Accept json
// @Produce json
// @Param request body dto.CreateFieldRequest true "Create Field Request"
// @Success 201 {object} response.Data[dto.FieldResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/fields [post]
// @Security BearerAuth
func (handler *Handler) CreateField(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateField")
	defer scope.End()

	req := dto.CreateFieldRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	field, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create field")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Field created successfully")

	response.WithJSON(w, http.StatusCreated, field)
}

// GetFields retrieves fields.
// @Summary Get all fields
// @Description Retrieve fields with optional filtering and pagination. Soft-deleted fields are never listed.
// @Tags Field
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name (contains)"
// @Param stadium_id query string false "Filter by stadium"
// @Param status query string false "Filter by status (ACTIVE, INACTIVE)"
// @Success 200 {object} response.Data[dto.GetFieldsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/fields [get]
func (handler *Handler) GetFields(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFields")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sortable(model.FieldName, model.FieldPrice, model.FieldStatus, constant.FieldCreatedAt)

	filter := gDto.FilterFromQuery(r.URL.Query(), model.TableName,
		gDto.QueryField{Param: model.FieldName, Operator: gDto.FilterOperatorLike},
		gDto.QueryField{Param: model.FieldStadiumID},
		gDto.QueryField{Param: model.FieldStatus},
	)

	fields, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get fields")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, fields)
}

// GetFieldByID retrieves a field with its images.
// @Summary Get a field by ID
// @Tags Field
// @Produce json
// @Param id path string true "Field ID"
// @Success 200 {object} response.Data[dto.FieldResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/fields/{id} [get]
func (handler *Handler) GetFieldByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFieldByID")
	defer scope.End()

	field, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get field by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, field)
}

// UpdateField updates the mutable attributes of a field.
// @Summary Update a field
// @Tags Field
// @Accept json
// @Produce json
// @Param id path string true "Field ID"
// @Param request body dto.UpdateFieldRequest true "Update Field Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/fields/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateField")
	defer scope.End()

	req := dto.UpdateFieldRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update field")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Field updated successfully")
}

// SetFieldStatus activates or deactivates a field.
// @Summary Set field status
// @Description An INACTIVE field cannot be booked.
// @Tags Field
// @Accept json
// @Produce json
// @Param id path string true "Field ID"
// @Param request body dto.SetStatusRequest true "Status"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/fields/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) SetFieldStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetFieldStatus")
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
		log.Error().Err(err).Msg("failed to set field status")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Field status updated successfully")
}

// DeleteField deletes a field according to the configured delete policy.
// @Summary Delete a field
// @Tags Field
// @Produce json
// @Param id path string true "Field ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/fields/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteField(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteField")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete field")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Field deleted successfully")
}

// AddFieldImage attaches an already hosted image to a field.
// @Summary Add a field image by URL
// @Tags Field
// @Accept json
// @Produce json
// @Param id path string true "Field ID"
// @Param request body dto.AddImageRequest true "Image URL"
// @Success 201 {object} response.Data[dto.ImageResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/fields/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) AddFieldImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddFieldImage")
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
		log.Error().Err(err).Msg("failed to add field image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, image)
}

// UploadFieldImage stores an image in object storage and attaches it to a field.
// @Summary Upload a field image
// @Tags Field
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Field ID"
// @Param file formData file true "Image file"
// @Success 201 {object} response.Data[dto.ImageResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/fields/{id}/images/upload [post]
// @Security BearerAuth
func (handler *Handler) UploadFieldImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadFieldImage")
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
		log.Error().Err(err).Msg("failed to upload field image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, image)
}

// DeleteFieldImage removes an image from a field.
// @Summary Delete a field image
// @Tags Field
// @Produce json
// @Param id path string true "Field ID"
// @Param imageID path string true "Image ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/fields/{id}/images/{imageID} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFieldImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFieldImage")
	defer scope.End()

	err := handler.service.DeleteImage(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, paramImageID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete field image")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Field image deleted successfully")
}
