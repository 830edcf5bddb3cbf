package usecase

import (
	"context"

	"github.com/fekuna/omnipos-portal/internal/apperror"
	"github.com/fekuna/omnipos-portal/internal/catalog"
	"github.com/fekuna/omnipos-portal/internal/catalog/dto"
	"github.com/fekuna/omnipos-portal/internal/category"
	"github.com/fekuna/omnipos-portal/internal/client"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type catalogUseCase struct {
	repo       catalog.Repository
	clientRepo client.Repository
	catRepo    category.Repository
	rates      catalog.RateSource
	logger     logger.ZapLogger
}

func NewCatalogUseCase(
	repo catalog.Repository,
	clientRepo client.Repository,
	catRepo category.Repository,
	rates catalog.RateSource,
	log logger.ZapLogger,
) catalog.UseCase {
	return &catalogUseCase{
		repo:       repo,
		clientRepo: clientRepo,
		catRepo:    catRepo,
		rates:      rates,
		logger:     log,
	}
}

// GetPriceList builds the client's personalised catalog. Unlike
// ResolvePrices it fails with not-found for an unknown client.
func (uc *catalogUseCase) GetPriceList(ctx context.Context, clientID string, filters *dto.PriceListFilters) (*model.PriceList, error) {
	if err := uc.ensureClient(ctx, clientID); err != nil {
		return nil, err
	}
	if filters != nil && filters.CategoryID != "" && !model.ValidID(filters.CategoryID) {
		// A malformed category filter matches nothing, like an unknown one.
		f := *filters
		f.CategoryID = uuid.Nil.String()
		filters = &f
	}

	categories, err := uc.catRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	items, err := uc.repo.FindVisible(ctx, clientID, filters)
	if err != nil {
		return nil, err
	}

	rates := uc.rates.Current(ctx)
	for i := range items {
		if v, ok := rates.Convert(items[i].Price, model.CurrencyEUR); ok {
			items[i].PriceEUR = &v
		}
		if v, ok := rates.Convert(items[i].Price, model.CurrencyUSD); ok {
			items[i].PriceUSD = &v
		}
	}

	uc.logger.Debug("price list built",
		zap.String("client_id", clientID),
		zap.Int("categories", len(categories)),
		zap.Int("items", len(items)),
		zap.Bool("rates_known", rates.Known()),
	)

	return &model.PriceList{
		ClientID:   clientID,
		Currency:   rates.Base,
		Rates:      rates,
		Categories: categories,
		Items:      items,
	}, nil
}

func (uc *catalogUseCase) ListVisibleCategories(ctx context.Context, clientID string) ([]model.Category, error) {
	if err := uc.ensureClient(ctx, clientID); err != nil {
		return nil, err
	}
	return uc.catRepo.FindByClient(ctx, clientID)
}

// ResolvePrices applies a client's overrides to arbitrary products. An
// unknown client id resolves every product at the default coefficient.
func (uc *catalogUseCase) ResolvePrices(ctx context.Context, clientID string, productIDs []string) ([]model.PricedProduct, error) {
	if !model.ValidID(clientID) {
		// Matches no override row, so every product falls back to 1.0.
		clientID = uuid.Nil.String()
	}

	ids := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		if model.ValidID(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return []model.PricedProduct{}, nil
	}
	return uc.repo.ResolvePrices(ctx, clientID, ids)
}

func (uc *catalogUseCase) ensureClient(ctx context.Context, clientID string) error {
	if !model.ValidID(clientID) {
		return apperror.NotFound("client")
	}
	c, err := uc.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return err
	}
	if c == nil {
		return apperror.NotFound("client")
	}
	return nil
}
