package handler

import (
	"github.com/fekuna/omnipos-portal/internal/auth"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	uc     auth.UseCase
	logger logger.ZapLogger
}

func NewAuthHandler(uc auth.UseCase, log logger.ZapLogger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/login", h.Login)
	g.POST("/admin/login", h.AdminLogin)
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.uc.LoginClient(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, token)
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.uc.LoginAdmin(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, token)
}
