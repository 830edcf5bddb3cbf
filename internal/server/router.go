// Package server assembles the HTTP router and the gRPC health server.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-portal/internal/auth"
	authH "github.com/fekuna/omnipos-portal/internal/auth/handler"
	catalogH "github.com/fekuna/omnipos-portal/internal/catalog/handler"
	catH "github.com/fekuna/omnipos-portal/internal/category/handler"
	clientH "github.com/fekuna/omnipos-portal/internal/client/handler"
	coefH "github.com/fekuna/omnipos-portal/internal/coefficient/handler"
	greetH "github.com/fekuna/omnipos-portal/internal/greeting/handler"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/metrics"
	prodH "github.com/fekuna/omnipos-portal/internal/product/handler"
	"github.com/fekuna/omnipos-portal/internal/response"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Auth        *authH.AuthHandler
	Category    *catH.CategoryHandler
	Product     *prodH.ProductHandler
	Client      *clientH.ClientHandler
	Coefficient *coefH.CoefficientHandler
	Catalog     *catalogH.CatalogHandler
	Greeting    *greetH.GreetingHandler
}

type RouterOptions struct {
	Tokens  *auth.TokenManager
	Limiter *IPRateLimiter
	Metrics *metrics.Metrics
	DB      Pinger
	Logger  logger.ZapLogger
}

func NewRouter(h Handlers, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), AccessLog(opts.Logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	r.GET("/healthz", healthz(opts.DB))

	api := r.Group("/api/v1")
	h.Auth.RegisterRoutes(api)

	public := api.Group("")
	if opts.Limiter != nil {
		public.Use(opts.Limiter.Middleware())
	}
	h.Greeting.RegisterPublicRoutes(public)

	clientArea := api.Group("", auth.Require(opts.Tokens, auth.RoleClient))
	h.Catalog.RegisterRoutes(clientArea)

	admin := api.Group("/admin", auth.Require(opts.Tokens, auth.RoleAdmin))
	h.Category.RegisterRoutes(admin)
	h.Product.RegisterRoutes(admin)
	h.Client.RegisterRoutes(admin)
	h.Coefficient.RegisterRoutes(admin)
	h.Catalog.RegisterAdminRoutes(admin)
	h.Greeting.RegisterRoutes(admin)

	return r
}

func healthz(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, response.ErrorBody{Error: "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
