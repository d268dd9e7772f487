package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aldisetiawan/go-user-address-api/pkg/response"
)

// RequireRoles allows the request through when the authenticated user holds
// at least one of the given roles. Must run after Auth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		held, _ := c.Get("userRoles")
		userRoles, _ := held.([]string)
		for _, want := range roles {
			for _, have := range userRoles {
				if have == want {
					c.Next()
					return
				}
			}
		}
		response.AbortFail(c, http.StatusForbidden, "forbidden: insufficient permissions", nil)
	}
}
