package handler

import (
	"github.com/fekuna/omnipos-portal/internal/apperror"
	"github.com/fekuna/omnipos-portal/internal/auth"
	"github.com/fekuna/omnipos-portal/internal/catalog"
	"github.com/fekuna/omnipos-portal/internal/catalog/dto"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/response"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

// RegisterRoutes mounts the client-facing catalog. rg must already require
// an authenticated client.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/catalog")
	g.GET("", h.GetPriceList)
	g.GET("/categories", h.ListCategories)
}

// RegisterAdminRoutes mounts the price preview used by administrators.
func (h *CatalogHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/clients/:id/prices", h.PreviewPrices)
}

func (h *CatalogHandler) GetPriceList(c *gin.Context) {
	clientID := auth.GetClientID(c)
	if clientID == "" {
		response.Error(c, h.logger, apperror.ErrUnauthorized)
		return
	}

	list, err := h.uc.GetPriceList(c.Request.Context(), clientID, &dto.PriceListFilters{
		CategoryID:  c.Query("category_id"),
		SearchQuery: c.Query("q"),
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, list)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	clientID := auth.GetClientID(c)
	if clientID == "" {
		response.Error(c, h.logger, apperror.ErrUnauthorized)
		return
	}

	cats, err := h.uc.ListVisibleCategories(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, cats)
}

// PreviewPrices resolves the products named by repeated product_id query
// parameters at the given client's coefficients.
func (h *CatalogHandler) PreviewPrices(c *gin.Context) {
	productIDs := c.QueryArray("product_id")
	if len(productIDs) == 0 {
		response.BadRequest(c, "at least one product_id is required")
		return
	}

	items, err := h.uc.ResolvePrices(c.Request.Context(), c.Param("id"), productIDs)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, items)
}
