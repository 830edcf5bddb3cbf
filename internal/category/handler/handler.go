package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-portal/internal/category"
	"github.com/fekuna/omnipos-portal/internal/category/dto"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/response"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

// RegisterRoutes mounts the admin category endpoints on rg.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/categories")
	g.POST("", h.CreateCategory)
	g.GET("", h.ListCategories)
	g.GET("/:id", h.GetCategory)
	g.PUT("/:id", h.UpdateCategory)
	g.DELETE("/:id", h.DeleteCategory)
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &dto.CreateCategoryInput{Name: req.Name})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, cat)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	cat, err := h.uc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, cat)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	page, pageSize := response.Pagination(c)
	cats, total, err := h.uc.ListCategories(c.Request.Context(), &dto.CategoryFilters{
		SearchQuery: c.Query("q"),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.List(c, cats, total, page, pageSize)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &dto.UpdateCategoryInput{
		ID:   c.Param("id"),
		Name: req.Name,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, cat)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.uc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
