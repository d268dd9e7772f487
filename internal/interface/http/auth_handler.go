package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aldisetiawan/go-user-address-api/internal/application"
	"github.com/aldisetiawan/go-user-address-api/pkg/response"
	"github.com/aldisetiawan/go-user-address-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in application.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToFieldErrors(err))
		return
	}
	tokens, err := h.Svc.Login(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, tokens, "login successful")
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var in application.RefreshInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToFieldErrors(err))
		return
	}
	tokens, err := h.Svc.Refresh(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, tokens, "token refreshed")
}

// Profile returns the authenticated user; Auth middleware has already
// resolved and validated the subject.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.Svc.Profile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, user, "profile retrieved")
}
