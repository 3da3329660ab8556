// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"hotelier/config"
	"hotelier/infras/jwt"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/infras/redis"
	"hotelier/infras/s3"
	"hotelier/internal/domains/auth/service"
	repository4 "hotelier/internal/domains/booking/repository"
	service5 "hotelier/internal/domains/booking/service"
	"hotelier/internal/domains/customer/repository"
	service4 "hotelier/internal/domains/customer/service"
	repository3 "hotelier/internal/domains/room/repository"
	service3 "hotelier/internal/domains/room/service"
	repository2 "hotelier/internal/domains/roomtype/repository"
	service2 "hotelier/internal/domains/roomtype/service"
	"hotelier/internal/handlers/auth"
	"hotelier/internal/handlers/booking"
	"hotelier/internal/handlers/customer"
	"hotelier/internal/handlers/room"
	"hotelier/internal/handlers/roomtype"
	"hotelier/permissions"
	"hotelier/shared/cache"
	"hotelier/transport/http"
	"hotelier/transport/http/middleware"
	"hotelier/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryCustomer := repository.New(connection, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service.New(repositoryCustomer, configConfig, otelOtel, jwtJWT)
	handler := auth.New(serviceAuth, otelOtel)
	roomType := repository2.New(connection, otelOtel)
	repositoryRoom := repository3.New(connection, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceRoomType := service2.New(roomType, repositoryRoom, configConfig, redisCache, otelOtel)
	roomtypeHandler := roomtype.New(serviceRoomType, otelOtel)
	s3S3 := s3.New(configConfig, otelOtel)
	serviceRoom := service3.New(repositoryRoom, roomType, configConfig, redisCache, otelOtel, s3S3)
	roomHandler := room.New(serviceRoom, otelOtel)
	serviceCustomer := service4.New(repositoryCustomer, configConfig, redisCache, otelOtel)
	customerHandler := customer.New(serviceCustomer, otelOtel)
	repositoryBooking := repository4.New(connection, otelOtel)
	kafkaClient := kafka.New(configConfig)
	serviceBooking := service5.New(repositoryBooking, repositoryRoom, repositoryCustomer, configConfig, redisCache, otelOtel, kafkaClient)
	bookingHandler := booking.New(serviceBooking, otelOtel)
	domainHandlers := router.DomainHandlers{
		Auth:     handler,
		RoomType: roomtypeHandler,
		Room:     roomHandler,
		Customer: customerHandler,
		Booking:  bookingHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware, authRole)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get, permissions.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, kafka.New, s3.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var roomTypeDomain = wire.NewSet(repository2.New, service2.New)

var roomDomain = wire.NewSet(repository3.New, service3.New)

var customerDomain = wire.NewSet(repository.New, service4.New)

var bookingDomain = wire.NewSet(repository4.New, service5.New)

var authDomain = wire.NewSet(service.New)

var domains = wire.NewSet(
	roomTypeDomain,
	roomDomain,
	customerDomain,
	bookingDomain,
	authDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), auth.New, roomtype.New, room.New, customer.New, booking.New, router.New)
