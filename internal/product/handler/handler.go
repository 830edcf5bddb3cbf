package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/product"
	"github.com/fekuna/omnipos-portal/internal/product/dto"
	"github.com/fekuna/omnipos-portal/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/products")
	g.POST("", h.CreateProduct)
	g.GET("", h.ListProducts)
	g.GET("/:id", h.GetProduct)
	g.PUT("/:id", h.UpdateProduct)
	g.DELETE("/:id", h.DeleteProduct)
}

// productRequest accepts cost_price as a JSON number or a decimal string.
type productRequest struct {
	CategoryID string          `json:"category_id" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	ImageURL   string          `json:"image_url"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &dto.CreateProductInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		CostPrice:  req.CostPrice,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, p)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, p)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, pageSize := response.Pagination(c)
	products, total, err := h.uc.ListProducts(c.Request.Context(), &dto.ProductFilters{
		CategoryID:  c.Query("category_id"),
		SearchQuery: c.Query("q"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.List(c, products, total, page, pageSize)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:         c.Param("id"),
		CategoryID: req.CategoryID,
		Name:       req.Name,
		CostPrice:  req.CostPrice,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, p)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
