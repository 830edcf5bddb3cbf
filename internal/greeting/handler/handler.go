package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-portal/internal/greeting"
	"github.com/fekuna/omnipos-portal/internal/greeting/dto"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/response"
	"github.com/gin-gonic/gin"
)

type GreetingHandler struct {
	uc     greeting.UseCase
	logger logger.ZapLogger
}

func NewGreetingHandler(uc greeting.UseCase, log logger.ZapLogger) *GreetingHandler {
	return &GreetingHandler{
		uc:     uc,
		logger: log,
	}
}

// RegisterRoutes mounts page and lead administration.
func (h *GreetingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/greetings")
	g.POST("", h.CreatePage)
	g.GET("", h.ListPages)
	g.GET("/:id", h.GetPage)
	g.PUT("/:id", h.UpdatePage)
	g.DELETE("/:id", h.DeletePage)
	g.GET("/:id/leads", h.ListLeads)
}

// RegisterPublicRoutes mounts the anonymous QR landing endpoints.
func (h *GreetingHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/greetings")
	g.GET("/:slug", h.GetPublicPage)
	g.POST("/:slug/leads", h.CaptureLead)
}

type pageRequest struct {
	Slug     string `json:"slug" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message"`
	IsActive *bool  `json:"is_active"`
}

func (r pageRequest) active() bool {
	return r.IsActive == nil || *r.IsActive
}

type leadRequest struct {
	Email string `json:"email" binding:"required"`
}

type publicPage struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (h *GreetingHandler) CreatePage(c *gin.Context) {
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	page, err := h.uc.CreatePage(c.Request.Context(), &dto.CreatePageInput{
		Slug:     req.Slug,
		Title:    req.Title,
		Message:  req.Message,
		IsActive: req.active(),
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, page)
}

func (h *GreetingHandler) GetPage(c *gin.Context) {
	page, err := h.uc.GetPage(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, page)
}

func (h *GreetingHandler) ListPages(c *gin.Context) {
	page, pageSize := response.Pagination(c)
	pages, total, err := h.uc.ListPages(c.Request.Context(), &dto.PageFilters{
		ActiveOnly: c.Query("active") == "true",
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.List(c, pages, total, page, pageSize)
}

func (h *GreetingHandler) UpdatePage(c *gin.Context) {
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	page, err := h.uc.UpdatePage(c.Request.Context(), &dto.UpdatePageInput{
		ID:       c.Param("id"),
		Slug:     req.Slug,
		Title:    req.Title,
		Message:  req.Message,
		IsActive: req.active(),
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, page)
}

func (h *GreetingHandler) DeletePage(c *gin.Context) {
	if err := h.uc.DeletePage(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GreetingHandler) ListLeads(c *gin.Context) {
	page, pageSize := response.Pagination(c)
	leads, total, err := h.uc.ListLeads(c.Request.Context(), &dto.LeadFilters{
		PageID:   c.Param("id"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.List(c, leads, total, page, pageSize)
}

func (h *GreetingHandler) GetPublicPage(c *gin.Context) {
	page, err := h.uc.GetPublicPage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, publicPage{Slug: page.Slug, Title: page.Title, Message: page.Message})
}

// CaptureLead answers 201 for a new lead and 200 when the address was
// already captured for this page.
func (h *GreetingHandler) CaptureLead(c *gin.Context) {
	var req leadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	lead, created, err := h.uc.CaptureLead(c.Request.Context(), c.Param("slug"), req.Email)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if created {
		response.Created(c, lead)
		return
	}
	response.Success(c, lead)
}
