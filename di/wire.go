//go:build wireinject
// +build wireinject

package di

import (
	"oec/config"
	"oec/infras/airtable"
	"oec/infras/jwt"
	"oec/infras/kafka"
	"oec/infras/otel"
	"oec/infras/postgres"
	"oec/infras/redis"
	"oec/infras/s3"
	"oec/permissions"
	"oec/shared/cache"
	"oec/transport/event"
	"oec/transport/http"
	"oec/transport/http/middleware"
	"oec/transport/http/router"

	"github.com/google/wire"

	authService "oec/internal/domains/auth/service"
	bookingRepository "oec/internal/domains/booking/repository"
	bookingService "oec/internal/domains/booking/service"
	contentRepository "oec/internal/domains/content/repository"
	contentService "oec/internal/domains/content/service"
	employeeRepository "oec/internal/domains/employee/repository"
	employeeService "oec/internal/domains/employee/service"
	facilityRepository "oec/internal/domains/facility/repository"
	facilityService "oec/internal/domains/facility/service"
	notificationRepository "oec/internal/domains/notification/repository"
	notificationService "oec/internal/domains/notification/service"
	postRepository "oec/internal/domains/post/repository"
	postService "oec/internal/domains/post/service"
	pricingRepository "oec/internal/domains/pricing/repository"
	pricingService "oec/internal/domains/pricing/service"
	storeRepository "oec/internal/domains/store/repository"
	storeService "oec/internal/domains/store/service"
	uploadService "oec/internal/domains/upload/service"
	userRepository "oec/internal/domains/user/repository"
	userService "oec/internal/domains/user/service"
	authHandler "oec/internal/handlers/auth"
	bookingHandler "oec/internal/handlers/booking"
	contentHandler "oec/internal/handlers/content"
	employeeHandler "oec/internal/handlers/employee"
	facilityHandler "oec/internal/handlers/facility"
	notificationHandler "oec/internal/handlers/notification"
	postHandler "oec/internal/handlers/post"
	pricingHandler "oec/internal/handlers/pricing"
	storeHandler "oec/internal/handlers/store"
	uploadHandler "oec/internal/handlers/upload"
	userHandler "oec/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	airtable.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	userService.New,
)

var facilityDomain = wire.NewSet(
	facilityRepository.New,
	facilityService.New,
)

var pricingDomain = wire.NewSet(
	pricingRepository.New,
	pricingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewItem,
	bookingService.New,
)

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.New,
)

var storeDomain = wire.NewSet(
	storeRepository.New,
	storeRepository.NewTransaction,
	storeService.New,
)

var uploadDomain = wire.NewSet(
	uploadService.New,
)

var employeeDomain = wire.NewSet(
	employeeRepository.New,
	employeeRepository.NewAttendance,
	employeeService.New,
)

var contentDomain = wire.NewSet(
	contentRepository.New,
	contentService.New,
)

var postDomain = wire.NewSet(
	postRepository.New,
	postService.New,
)

var domains = wire.NewSet(
	authDomain,
	facilityDomain,
	pricingDomain,
	bookingDomain,
	notificationDomain,
	storeDomain,
	uploadDomain,
	employeeDomain,
	contentDomain,
	postDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	facilityHandler.New,
	pricingHandler.New,
	bookingHandler.New,
	notificationHandler.New,
	storeHandler.New,
	uploadHandler.New,
	employeeHandler.New,
	contentHandler.New,
	postHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeNotifier() *event.Consumer {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		postgres.New,
		notificationDomain,
		event.New,
	)

	return &event.Consumer{}
}
