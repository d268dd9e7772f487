package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aldisetiawan/go-user-address-api/internal/domain/entity"
	"github.com/aldisetiawan/go-user-address-api/pkg/helpers"
	"github.com/aldisetiawan/go-user-address-api/pkg/response"
)

// UserResolver loads the token subject from the store so revoked or deleted
// accounts are rejected even while their tokens are still signed-valid.
type UserResolver func(ctx context.Context, id string) (*entity.User, error)

// Auth validates the Authorization bearer token, re-resolves the subject and
// sets userID, userEmail and userRoles in the Gin context on success.
func Auth(jwt *helpers.JWTManager, resolve UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortFail(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			switch {
			case errors.Is(err, helpers.ErrTokenExpired):
				response.AbortFail(c, http.StatusUnauthorized, "access token expired", nil)
			case errors.Is(err, helpers.ErrWrongTokenType):
				response.AbortFail(c, http.StatusUnauthorized, "token is not an access token", nil)
			default:
				response.AbortFail(c, http.StatusUnauthorized, "invalid access token", nil)
			}
			return
		}

		user, err := resolve(c.Request.Context(), claims.Subject)
		if err != nil {
			response.AbortFail(c, http.StatusInternalServerError, "internal server error", nil)
			return
		}
		if user == nil {
			response.AbortFail(c, http.StatusUnauthorized, "user no longer exists", nil)
			return
		}
		if !user.IsActive {
			response.AbortFail(c, http.StatusUnauthorized, "account is inactive", nil)
			return
		}

		c.Set("userID", user.ID)
		c.Set("userEmail", user.Email)
		c.Set("userRoles", user.Roles)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
