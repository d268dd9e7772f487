package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/aldisetiawan/go-user-address-api/internal/container"
	handlers "github.com/aldisetiawan/go-user-address-api/internal/interface/http"
	"github.com/aldisetiawan/go-user-address-api/internal/interface/middleware"
)

// UserModule wires user CRUD, search and avatar upload.
// Public: list, search, get, create, update.
// Protected: delete (admin only), avatar upload.
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	limiter := middleware.RateLimit(container.GetRedis(), cfg.GlobalRateLimit, cfg.RateLimitWindow, middleware.KeyByUserID("global"))

	users := rg.Group("/users")
	users.GET("", m.Handler.List)
	users.GET("/search", m.Handler.Search)
	users.GET("/:id", m.Handler.Get)
	users.POST("", m.Handler.Create)
	users.PUT("/:id", m.Handler.Update)

	users.DELETE("/:id", m.Auth, limiter, middleware.RequireRoles("admin"), m.Handler.Delete)
	users.POST("/:id/avatar", m.Auth, limiter, m.Handler.UploadAvatar)
}
