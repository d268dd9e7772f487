package router

import (
	"github.com/aldisetiawan/go-user-address-api/internal/application"
	"github.com/aldisetiawan/go-user-address-api/internal/container"
	"github.com/aldisetiawan/go-user-address-api/internal/infrastructure/postgres"
	handlers "github.com/aldisetiawan/go-user-address-api/internal/interface/http"
	"github.com/aldisetiawan/go-user-address-api/internal/interface/middleware"
	"github.com/aldisetiawan/go-user-address-api/internal/router/modules"
)

// InitModules builds the repository/service/handler graph from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := postgres.NewUserRepository(pool)
	addressRepo := postgres.NewAddressRepository(pool)

	userSvc := application.NewUserService(
		userRepo,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRabbitPub(),
		cfg.AppName,
		logger,
	)
	addressSvc := application.NewAddressService(addressRepo, userRepo)
	authSvc := application.NewAuthService(userSvc, userRepo, container.GetJWT(), logger)

	authMW := middleware.Auth(container.GetJWT(), userRepo.GetByID)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), authMW))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), authMW))
	r.Add(modules.NewAddressModule(handlers.NewAddressHandler(addressSvc, logger), authMW))
}
