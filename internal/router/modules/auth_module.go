package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/aldisetiawan/go-user-address-api/internal/container"
	handlers "github.com/aldisetiawan/go-user-address-api/internal/interface/http"
	"github.com/aldisetiawan/go-user-address-api/internal/interface/middleware"
)

// AuthModule wires login, refresh and profile.
// Public (IP rate limited): POST /auth/login, POST /auth/refresh-token.
// Protected: GET /auth/profile.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	rdb := container.GetRedis()
	loginLimiter := middleware.RateLimit(rdb, cfg.LoginRateLimit, cfg.RateLimitWindow, middleware.KeyByIP("login"))
	refreshLimiter := middleware.RateLimit(rdb, cfg.RefreshRateLimit, cfg.RateLimitWindow, middleware.KeyByIP("refresh"))
	globalLimiter := middleware.RateLimit(rdb, cfg.GlobalRateLimit, cfg.RateLimitWindow, middleware.KeyByUserID("global"))

	auth := rg.Group("/auth")
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.POST("/refresh-token", refreshLimiter, m.Handler.Refresh)

	auth.GET("/profile", m.Auth, globalLimiter, m.Handler.Profile)
}
