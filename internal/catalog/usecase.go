package catalog

import (
	"context"

	"github.com/fekuna/omnipos-portal/internal/catalog/dto"
	"github.com/fekuna/omnipos-portal/internal/model"
)

type UseCase interface {
	GetPriceList(ctx context.Context, clientID string, filters *dto.PriceListFilters) (*model.PriceList, error)
	ListVisibleCategories(ctx context.Context, clientID string) ([]model.Category, error)
	ResolvePrices(ctx context.Context, clientID string, productIDs []string) ([]model.PricedProduct, error)
}

// RateSource supplies currency rates. It never fails; unknown rates are nil.
type RateSource interface {
	Current(ctx context.Context) model.Rates
}
