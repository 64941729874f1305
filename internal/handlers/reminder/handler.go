package reminder

import (
	"net/http"

	"dipsport/infras/otel"
	"dipsport/internal/domains/reminder/model/dto"
	"dipsport/internal/domains/reminder/service"
	"dipsport/shared/constant"
	"dipsport/shared/validator"
	"dipsport/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reminder
	otel    otel.Otel
}

func New(service service.Reminder, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/reminders/sweep", handler.Sweep)
}

// Sweep runs the reminder sweep on demand.
// @Summary Run the reminder sweep
// @Description Notifies every approved booking that holds a slot on the day after reference_date (default today).
// @Tags Reminder
// @Accept json
// @Produce json
// @Param request body dto.SweepRequest false "Sweep Request"
// @Success 200 {object} response.Data[dto.SweepResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reminders/sweep [post]
// @Security BearerAuth
func (handler *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Sweep")
	defer scope.End()

	req := dto.SweepRequest{}

	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	res, err := handler.service.Sweep(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to run reminder sweep")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
