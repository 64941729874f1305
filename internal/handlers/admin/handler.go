package admin

import (
	"net/http"

	"dipsport/infras/otel"
	"dipsport/internal/domains/admin/model"
	"dipsport/internal/domains/admin/service"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	"dipsport/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.AdminLog
	otel    otel.Otel
}

func New(service service.AdminLog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/admin-logs", handler.GetLogs)
}

// GetLogs lists the audit trail of admin actions.
// @Summary Get admin logs
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param admin_id query string false "Filter by admin"
// @Param action query string false "Filter by action"
// @Param target_table query string false "Filter by target table"
// @Success 200 {object} response.Data[any]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin-logs [get]
// @Security BearerAuth
func (handler *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sortable(model.FieldLogAction, model.FieldLogCreatedAt)

	filter := gDto.FilterFromQuery(r.URL.Query(), model.LogTableName,
		gDto.QueryField{Param: model.FieldLogAdminID},
		gDto.QueryField{Param: model.FieldLogAction},
		gDto.QueryField{Param: model.FieldLogTargetTable},
	)

	logs, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get admin logs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, logs)
}
