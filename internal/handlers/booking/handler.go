package booking

import (
	"fmt"
	"net/http"
	"strconv"

	"dipsport/infras/otel"
	"dipsport/internal/domains/booking/model"
	"dipsport/internal/domains/booking/model/dto"
	"dipsport/internal/domains/booking/service"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	"dipsport/shared/failure"
	"dipsport/shared/validator"
	"dipsport/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryFieldID = "field_id"
	queryDate    = "date"
	queryHour    = "hour"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{code}", handler.GetBookingByCode)
		routerGroup.Patch("/{code}/status", handler.ChangeBookingStatus)
		routerGroup.Patch("/{code}/payment", handler.ChangeBookingPayment)
	})

	router.Get("/availability", handler.CheckAvailability)
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Book one or more hourly slots. The booking starts PENDING and UNPAID and the slots are held until it is cancelled.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking " + booking.Code + " created")

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookings retrieves bookings with their slots.
// @Summary Get all bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (PENDING, APPROVED, DONE, CANCELLED)"
// @Param payment_status query string false "Filter by payment status (UNPAID, PAID)"
// @Param email query string false "Filter by booker email"
// @Param is_academic query bool false "Filter academic bookings"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sortable(model.FieldCode, model.FieldStatus, model.FieldPaymentStatus, model.FieldCreatedAt)

	filter := gDto.FilterFromQuery(r.URL.Query(), model.TableName,
		gDto.QueryField{Param: model.FieldStatus},
		gDto.QueryField{Param: model.FieldPaymentStatus},
		gDto.QueryField{Param: model.FieldEmail},
		gDto.QueryField{Param: model.FieldIsAcademic},
	)

	bookings, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByCode retrieves a booking by its public code.
// @Summary Get a booking by code
// @Tags Booking
// @Produce json
// @Param code path string true "Booking code"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{code} [get]
func (handler *Handler) GetBookingByCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByCode")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamCode))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by code")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// ChangeBookingStatus moves a booking through its lifecycle.
// @Summary Change booking status
// @Description Allowed transitions: PENDING to APPROVED or CANCELLED, APPROVED to DONE or CANCELLED.
// @Tags Booking
// @Accept json
// @Produce json
// @Param code path string true "Booking code"
// @Param request body dto.ChangeStatusRequest true "Status"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{code}/status [patch]
// @Security BearerAuth
func (handler *Handler) ChangeBookingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangeBookingStatus")
	defer scope.End()

	req := dto.ChangeStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.ChangeStatus(ctx, chi.URLParam(r, constant.RequestParamCode), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change booking status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking " + booking.Code + " moved to " + booking.Status)

	response.WithJSON(w, http.StatusOK, booking)
}

// ChangeBookingPayment records whether a booking has been paid.
// @Summary Change booking payment status
// @Tags Booking
// @Accept json
// @Produce json
// @Param code path string true "Booking code"
// @Param request body dto.ChangePaymentRequest true "Payment status"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{code}/payment [patch]
// @Security BearerAuth
func (handler *Handler) ChangeBookingPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangeBookingPayment")
	defer scope.End()

	req := dto.ChangePaymentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.ChangePayment(ctx, chi.URLParam(r, constant.RequestParamCode), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change booking payment status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// CheckAvailability reports whether a single slot can be booked.
// @Summary Check slot availability
// @Description A rejected slot is still a 200 response carrying the rejection kind and reason.
// @Tags Booking
// @Produce json
// @Param field_id query string true "Field ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param hour query int true "Start hour (0-23)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	query := r.URL.Query()

	hour, err := strconv.Atoi(query.Get(queryHour))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse hour")

		response.WithError(w, failure.BadRequestFromString(fmt.Sprintf("invalid %s parameter", queryHour)))

		return
	}

	req := dto.AvailabilityRequest{
		FieldID: query.Get(queryFieldID),
		Date:    query.Get(queryDate),
		Hour:    hour,
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate availability query")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CheckAvailability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
