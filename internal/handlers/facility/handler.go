package facility

import (
	"net/http"

	"dipsport/infras/otel"
	"dipsport/internal/domains/facility/model"
	"dipsport/internal/domains/facility/model/dto"
	"dipsport/internal/domains/facility/service"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	"dipsport/shared/validator"
	"dipsport/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Facility
	otel    otel.Otel
}

func New(service service.Facility, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/facilities", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFacility)
		routerGroup.Get("/", handler.GetFacilities)
		routerGroup.Get("/{id}", handler.GetFacilityByID)
		routerGroup.Delete("/{id}", handler.DeleteFacility)
	})
}

// CreateFacility handles the creation of a new facility.
// @Summary Create a facility
// @Tags Facility
// @Accept json
// @Produce json
// @Param request body dto.CreateFacilityRequest true "Create Facility Request"
// @Success 201 {object} response.Data[dto.FacilityResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities [post]
// @Security BearerAuth
func (handler *Handler) CreateFacility(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFacility")
	defer scope.End()

	req := dto.CreateFacilityRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	facility, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create facility")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, facility)
}

// GetFacilities retrieves facilities.
// @Summary Get all facilities
// @Tags Facility
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name (contains)"
// @Success 200 {object} response.Data[dto.GetFacilitiesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities [get]
func (handler *Handler) GetFacilities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFacilities")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sortable(model.FieldName, constant.FieldCreatedAt)

	filter := gDto.FilterFromQuery(r.URL.Query(), model.TableName,
		gDto.QueryField{Param: model.FieldName, Operator: gDto.FilterOperatorLike},
	)

	facilities, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get facilities")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, facilities)
}

// GetFacilityByID retrieves a facility.
// @Summary Get a facility by ID
// @Tags Facility
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} response.Data[dto.FacilityResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id} [get]
func (handler *Handler) GetFacilityByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFacilityByID")
	defer scope.End()

	facility, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get facility by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, facility)
}

// DeleteFacility deletes a facility and unlinks it from every stadium.
// @Summary Delete a facility
// @Tags Facility
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFacility(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFacility")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete facility")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Facility deleted successfully")
}
