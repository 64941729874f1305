//go:build wireinject
// +build wireinject

package di

import (
	"dipsport/config"
	"dipsport/infras/jwt"
	"dipsport/infras/notifier"
	"dipsport/infras/otel"
	"dipsport/infras/postgres"
	"dipsport/infras/redis"
	"dipsport/infras/s3"
	"dipsport/shared/cache"
	"dipsport/shared/timezone"
	"dipsport/transport/http"
	"dipsport/transport/http/middleware"
	"dipsport/transport/http/router"

	adminRepository "dipsport/internal/domains/admin/repository"
	adminService "dipsport/internal/domains/admin/service"
	authService "dipsport/internal/domains/auth/service"
	"dipsport/internal/domains/booking/availability"
	bookingRepository "dipsport/internal/domains/booking/repository"
	bookingService "dipsport/internal/domains/booking/service"
	facilityRepository "dipsport/internal/domains/facility/repository"
	facilityService "dipsport/internal/domains/facility/service"
	fieldRepository "dipsport/internal/domains/field/repository"
	fieldService "dipsport/internal/domains/field/service"
	hourRepository "dipsport/internal/domains/operatinghour/repository"
	hourService "dipsport/internal/domains/operatinghour/service"
	reminderService "dipsport/internal/domains/reminder/service"
	stadiumRepository "dipsport/internal/domains/stadium/repository"
	stadiumService "dipsport/internal/domains/stadium/service"

	adminHandler "dipsport/internal/handlers/admin"
	authHandler "dipsport/internal/handlers/auth"
	bookingHandler "dipsport/internal/handlers/booking"
	facilityHandler "dipsport/internal/handlers/facility"
	fieldHandler "dipsport/internal/handlers/field"
	reminderHandler "dipsport/internal/handlers/reminder"
	stadiumHandler "dipsport/internal/handlers/stadium"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	notifier.New,
	timezone.NewClock,
	ProvideScheduler,
	ProvidePermissions,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	adminRepository.New,
	adminRepository.NewLog,
	stadiumRepository.New,
	stadiumRepository.NewImage,
	fieldRepository.New,
	fieldRepository.NewImage,
	facilityRepository.New,
	facilityRepository.NewLink,
	hourRepository.New,
	bookingRepository.New,
	bookingRepository.NewDetail,
)

var domains = wire.NewSet(
	repositories,
	wire.Struct(new(stadiumService.Repositories), "*"),
	wire.Bind(new(availability.WindowProvider), new(hourService.OperatingHour)),
	availability.New,
	adminService.New,
	authService.New,
	stadiumService.New,
	fieldService.New,
	facilityService.New,
	hourService.New,
	bookingService.New,
	reminderService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	adminHandler.New,
	authHandler.New,
	bookingHandler.New,
	facilityHandler.New,
	fieldHandler.New,
	reminderHandler.New,
	stadiumHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil, nil
}
