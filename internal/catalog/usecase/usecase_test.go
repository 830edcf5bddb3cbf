package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-portal/internal/apperror"
	"github.com/fekuna/omnipos-portal/internal/catalog"
	"github.com/fekuna/omnipos-portal/internal/catalog/dto"
	catalogRepoPkg "github.com/fekuna/omnipos-portal/internal/catalog/repository"
	catRepoPkg "github.com/fekuna/omnipos-portal/internal/category/repository"
	clientRepoPkg "github.com/fekuna/omnipos-portal/internal/client/repository"
	"github.com/fekuna/omnipos-portal/internal/database/dbtest"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRates model.Rates

func (s staticRates) Current(context.Context) model.Rates { return model.Rates(s) }

func newUseCase(t *testing.T, rates catalog.RateSource) (catalog.UseCase, *sqlx.DB) {
	db := dbtest.New(t)
	uc := NewCatalogUseCase(
		catalogRepoPkg.NewPGRepository(db),
		clientRepoPkg.NewPGRepository(db),
		catRepoPkg.NewPGRepository(db),
		rates,
		logger.NewNop(),
	)
	return uc, db
}

func TestGetPriceListAcmeExample(t *testing.T) {
	eur := decimal.RequireFromString("90")
	now := time.Now().UTC()
	uc, db := newUseCase(t, staticRates{Base: "RUB", EUR: &eur, FetchedAt: &now})

	filters := dbtest.SeedCategory(t, db, "Filters")
	paints := dbtest.SeedCategory(t, db, "Paints")
	filterA := dbtest.SeedProduct(t, db, filters, "Filter A", "45.00")
	paintX := dbtest.SeedProduct(t, db, paints, "Paint X", "12.00")
	acme := dbtest.SeedClient(t, db, "acme")
	dbtest.Assign(t, db, acme, filters)
	dbtest.SeedCoefficient(t, db, acme, filterA, "1.20")
	dbtest.SeedCoefficient(t, db, acme, paintX, "2.00")

	list, err := uc.GetPriceList(context.Background(), acme, nil)
	require.NoError(t, err)

	assert.Equal(t, acme, list.ClientID)
	assert.Equal(t, "RUB", list.Currency)
	require.Len(t, list.Categories, 1)
	assert.Equal(t, "Filters", list.Categories[0].Name)

	require.Len(t, list.Items, 1)
	item := list.Items[0]
	assert.Equal(t, "Filter A", item.Name)
	assert.Equal(t, "54.00", item.Price.StringFixed(2))
	require.NotNil(t, item.PriceEUR)
	assert.Equal(t, "0.60", item.PriceEUR.StringFixed(2))
	assert.Nil(t, item.PriceUSD)
}

func TestGetPriceListDegradesWithoutRates(t *testing.T) {
	uc, db := newUseCase(t, staticRates{Base: "RUB"})
	filters := dbtest.SeedCategory(t, db, "Filters")
	dbtest.SeedProduct(t, db, filters, "Filter A", "45.00")
	acme := dbtest.SeedClient(t, db, "acme")
	dbtest.Assign(t, db, acme, filters)

	list, err := uc.GetPriceList(context.Background(), acme, nil)
	require.NoError(t, err)
	assert.False(t, list.Rates.Known())
	require.Len(t, list.Items, 1)
	assert.Nil(t, list.Items[0].PriceEUR)
	assert.True(t, list.Items[0].Price.Equal(decimal.RequireFromString("45")))
}

func TestGetPriceListUnknownClient(t *testing.T) {
	uc, _ := newUseCase(t, staticRates{Base: "RUB"})

	_, err := uc.GetPriceList(context.Background(), uuid.New().String(), nil)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = uc.ListVisibleCategories(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetPriceListNoAssignments(t *testing.T) {
	uc, db := newUseCase(t, staticRates{Base: "RUB"})
	filters := dbtest.SeedCategory(t, db, "Filters")
	dbtest.SeedProduct(t, db, filters, "Filter A", "45.00")
	acme := dbtest.SeedClient(t, db, "acme")

	list, err := uc.GetPriceList(context.Background(), acme, nil)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Empty(t, list.Categories)
}

func TestMalformedClientID(t *testing.T) {
	uc, db := newUseCase(t, staticRates{Base: "RUB"})
	ctx := context.Background()
	filters := dbtest.SeedCategory(t, db, "Filters")
	filterA := dbtest.SeedProduct(t, db, filters, "Filter A", "45.00")

	_, err := uc.GetPriceList(ctx, "acme", nil)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = uc.ListVisibleCategories(ctx, "acme")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// The resolver stays lenient and skips ids that cannot name a product.
	items, err := uc.ResolvePrices(ctx, "acme", []string{filterA, "paint-x"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, filterA, items[0].ID)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("45")))

	items, err = uc.ResolvePrices(ctx, "acme", []string{"paint-x"})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMalformedCategoryFilterMatchesNothing(t *testing.T) {
	uc, db := newUseCase(t, staticRates{Base: "RUB"})
	filters := dbtest.SeedCategory(t, db, "Filters")
	dbtest.SeedProduct(t, db, filters, "Filter A", "45.00")
	acme := dbtest.SeedClient(t, db, "acme")
	dbtest.Assign(t, db, acme, filters)

	list, err := uc.GetPriceList(context.Background(), acme, &dto.PriceListFilters{CategoryID: "filters"})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Len(t, list.Categories, 1)
}
