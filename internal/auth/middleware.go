package auth

import (
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-portal/internal/response"
	"github.com/gin-gonic/gin"
)

// Require rejects requests without a valid bearer token (401) and those
// whose role is not in roles (403).
func Require(tm *TokenManager, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorBody{Error: "missing bearer token"})
			return
		}

		id, err := tm.Verify(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorBody{Error: "invalid token"})
			return
		}

		if !hasRole(roles, id.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorBody{Error: "forbidden"})
			return
		}

		SetIdentity(c, id)
		c.Next()
	}
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
