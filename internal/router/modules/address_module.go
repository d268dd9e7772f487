package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/aldisetiawan/go-user-address-api/internal/container"
	handlers "github.com/aldisetiawan/go-user-address-api/internal/interface/http"
	"github.com/aldisetiawan/go-user-address-api/internal/interface/middleware"
)

// AddressModule wires address CRUD.
// Public: list, get, create, update, delete.
// Protected: set default (the default belongs to the authenticated user).
type AddressModule struct {
	Handler *handlers.AddressHandler
	Auth    gin.HandlerFunc
}

func NewAddressModule(h *handlers.AddressHandler, auth gin.HandlerFunc) *AddressModule {
	return &AddressModule{Handler: h, Auth: auth}
}

func (m *AddressModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	limiter := middleware.RateLimit(container.GetRedis(), cfg.GlobalRateLimit, cfg.RateLimitWindow, middleware.KeyByUserID("global"))

	addresses := rg.Group("/addresses")
	addresses.GET("", m.Handler.List)
	addresses.GET("/:id", m.Handler.Get)
	addresses.POST("", m.Handler.Create)
	addresses.PUT("/:id", m.Handler.Update)
	addresses.DELETE("/:id", m.Handler.Delete)

	addresses.PUT("/:id/default", m.Auth, limiter, m.Handler.SetDefault)
}
