package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(tm *TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/client", Require(tm, RoleClient), func(c *gin.Context) {
		c.String(http.StatusOK, GetClientID(c))
	})
	r.GET("/admin", Require(tm, RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, GetClientID(c))
	})
	return r
}

func TestRequire(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	r := newRouter(tm)

	clientToken, _, err := tm.Issue(Identity{Subject: "client-1", Role: RoleClient})
	require.NoError(t, err)
	adminToken, _, err := tm.Issue(Identity{Subject: "admin", Role: RoleAdmin})
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
		body   string
	}{
		{"no header", "/client", "", http.StatusUnauthorized, ""},
		{"not bearer", "/client", "Basic abc", http.StatusUnauthorized, ""},
		{"bad token", "/client", "Bearer nope", http.StatusUnauthorized, ""},
		{"client ok", "/client", "Bearer " + clientToken, http.StatusOK, "client-1"},
		{"client on admin route", "/admin", "Bearer " + clientToken, http.StatusForbidden, ""},
		{"admin on client route", "/client", "Bearer " + adminToken, http.StatusForbidden, ""},
		{"admin ok", "/admin", "Bearer " + adminToken, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}
