package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-portal/internal/coefficient"
	"github.com/fekuna/omnipos-portal/internal/coefficient/dto"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CoefficientHandler struct {
	uc     coefficient.UseCase
	logger logger.ZapLogger
}

func NewCoefficientHandler(uc coefficient.UseCase, log logger.ZapLogger) *CoefficientHandler {
	return &CoefficientHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CoefficientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/coefficients")
	g.POST("", h.CreateCoefficient)
	g.GET("", h.ListCoefficients)
	g.GET("/:id", h.GetCoefficient)
	g.PUT("/:id", h.UpdateCoefficient)
	g.DELETE("/:id", h.DeleteCoefficient)
}

type createRequest struct {
	ClientID    string          `json:"client_id" binding:"required"`
	ProductID   string          `json:"product_id" binding:"required"`
	Coefficient decimal.Decimal `json:"coefficient"`
}

type updateRequest struct {
	Coefficient decimal.Decimal `json:"coefficient"`
}

func (h *CoefficientHandler) CreateCoefficient(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	coef, err := h.uc.CreateCoefficient(c.Request.Context(), &dto.CreateCoefficientInput{
		ClientID:    req.ClientID,
		ProductID:   req.ProductID,
		Coefficient: req.Coefficient,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, coef)
}

func (h *CoefficientHandler) GetCoefficient(c *gin.Context) {
	coef, err := h.uc.GetCoefficient(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, coef)
}

func (h *CoefficientHandler) ListCoefficients(c *gin.Context) {
	page, pageSize := response.Pagination(c)
	coefs, total, err := h.uc.ListCoefficients(c.Request.Context(), &dto.CoefficientFilters{
		ClientID:  c.Query("client_id"),
		ProductID: c.Query("product_id"),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.List(c, coefs, total, page, pageSize)
}

func (h *CoefficientHandler) UpdateCoefficient(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	coef, err := h.uc.UpdateCoefficient(c.Request.Context(), &dto.UpdateCoefficientInput{
		ID:          c.Param("id"),
		Coefficient: req.Coefficient,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, coef)
}

func (h *CoefficientHandler) DeleteCoefficient(c *gin.Context) {
	if err := h.uc.DeleteCoefficient(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
