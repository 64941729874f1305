package router

import (
	"dipsport/internal/handlers/admin"
	"dipsport/internal/handlers/auth"
	"dipsport/internal/handlers/booking"
	"dipsport/internal/handlers/facility"
	"dipsport/internal/handlers/field"
	"dipsport/internal/handlers/reminder"
	"dipsport/internal/handlers/stadium"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Stadium  stadium.Handler
	Field    field.Handler
	Facility facility.Handler
	Booking  booking.Handler
	Reminder reminder.Handler
	Admin    admin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Stadium.Router(routerGroup)
		r.DomainHandlers.Field.Router(routerGroup)
		r.DomainHandlers.Facility.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Reminder.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
