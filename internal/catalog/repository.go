package catalog

import (
	"context"

	"github.com/fekuna/omnipos-portal/internal/catalog/dto"
	"github.com/fekuna/omnipos-portal/internal/model"
)

type Repository interface {
	// FindVisible returns the products in the client's assigned categories,
	// each carrying the client's override when one exists.
	FindVisible(ctx context.Context, clientID string, filters *dto.PriceListFilters) ([]model.PricedProduct, error)
	// ResolvePrices annotates the given products with the client's overrides.
	// It does not apply the access filter and does not check the client exists.
	ResolvePrices(ctx context.Context, clientID string, productIDs []string) ([]model.PricedProduct, error)
}
