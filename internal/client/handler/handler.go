package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-portal/internal/client"
	"github.com/fekuna/omnipos-portal/internal/client/dto"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/response"
	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	uc     client.UseCase
	logger logger.ZapLogger
}

func NewClientHandler(uc client.UseCase, log logger.ZapLogger) *ClientHandler {
	return &ClientHandler{
		uc:     uc,
		logger: log,
	}
}

// RegisterRoutes mounts client administration and category assignment endpoints.
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/clients")
	g.POST("", h.CreateClient)
	g.GET("", h.ListClients)
	g.GET("/:id", h.GetClient)
	g.PUT("/:id", h.UpdateClient)
	g.DELETE("/:id", h.DeleteClient)

	g.GET("/:id/categories", h.ListCategories)
	g.POST("/:id/categories", h.AssignCategory)
	g.PUT("/:id/categories", h.SetCategories)
	g.DELETE("/:id/categories/:category_id", h.UnassignCategory)
}

type createClientRequest struct {
	Login       string `json:"login" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	CompanyName string `json:"company_name"`
}

type updateClientRequest struct {
	Login       string `json:"login" binding:"required"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	CompanyName string `json:"company_name"`
}

type assignRequest struct {
	CategoryID string `json:"category_id" binding:"required"`
}

type setCategoriesRequest struct {
	CategoryIDs []string `json:"category_ids"`
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cl, err := h.uc.CreateClient(c.Request.Context(), &dto.CreateClientInput{
		Login:       req.Login,
		Password:    req.Password,
		Email:       req.Email,
		Phone:       req.Phone,
		Location:    req.Location,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, cl)
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	cl, err := h.uc.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, cl)
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	page, pageSize := response.Pagination(c)
	clients, total, err := h.uc.ListClients(c.Request.Context(), &dto.ClientFilters{
		SearchQuery: c.Query("q"),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.List(c, clients, total, page, pageSize)
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cl, err := h.uc.UpdateClient(c.Request.Context(), &dto.UpdateClientInput{
		ID:          c.Param("id"),
		Login:       req.Login,
		Password:    req.Password,
		Email:       req.Email,
		Phone:       req.Phone,
		Location:    req.Location,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, cl)
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.uc.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) ListCategories(c *gin.Context) {
	cats, err := h.uc.ListClientCategories(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, cats)
}

func (h *ClientHandler) AssignCategory(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.uc.AssignCategory(c.Request.Context(), c.Param("id"), req.CategoryID); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) SetCategories(c *gin.Context) {
	var req setCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cats, err := h.uc.SetCategories(c.Request.Context(), c.Param("id"), req.CategoryIDs)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, cats)
}

func (h *ClientHandler) UnassignCategory(c *gin.Context) {
	if err := h.uc.UnassignCategory(c.Request.Context(), c.Param("id"), c.Param("category_id")); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
