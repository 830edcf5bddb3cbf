package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-portal/internal/apperror"
	clientRepoPkg "github.com/fekuna/omnipos-portal/internal/client/repository"
	"github.com/fekuna/omnipos-portal/internal/coefficient"
	"github.com/fekuna/omnipos-portal/internal/coefficient/dto"
	coefRepoPkg "github.com/fekuna/omnipos-portal/internal/coefficient/repository"
	"github.com/fekuna/omnipos-portal/internal/database/dbtest"
	"github.com/fekuna/omnipos-portal/internal/logger"
	prodRepoPkg "github.com/fekuna/omnipos-portal/internal/product/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) (coefficient.UseCase, *sqlx.DB) {
	db := dbtest.New(t)
	uc := NewCoefficientUseCase(
		coefRepoPkg.NewPGRepository(db),
		clientRepoPkg.NewPGRepository(db),
		prodRepoPkg.NewPGRepository(db),
		logger.NewNop(),
	)
	return uc, db
}

func TestCreateCoefficientValidation(t *testing.T) {
	uc, db := newUseCase(t)
	ctx := context.Background()
	cat := dbtest.SeedCategory(t, db, "Filters")
	product := dbtest.SeedProduct(t, db, cat, "Filter A", "45.00")
	acme := dbtest.SeedClient(t, db, "acme")

	tests := []struct {
		name  string
		input dto.CreateCoefficientInput
		want  error
	}{
		{"zero", dto.CreateCoefficientInput{ClientID: acme, ProductID: product, Coefficient: decimal.Zero}, apperror.ErrInvalidInput},
		{"negative", dto.CreateCoefficientInput{ClientID: acme, ProductID: product, Coefficient: decimal.RequireFromString("-1")}, apperror.ErrInvalidInput},
		{"unknown client", dto.CreateCoefficientInput{ClientID: uuid.New().String(), ProductID: product, Coefficient: decimal.RequireFromString("1.2")}, apperror.ErrNotFound},
		{"unknown product", dto.CreateCoefficientInput{ClientID: acme, ProductID: uuid.New().String(), Coefficient: decimal.RequireFromString("1.2")}, apperror.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateCoefficient(ctx, &tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, dbtest.Count(t, db, "client_product_coefficients", ""))
}

func TestCreateThenDuplicate(t *testing.T) {
	uc, db := newUseCase(t)
	ctx := context.Background()
	cat := dbtest.SeedCategory(t, db, "Filters")
	product := dbtest.SeedProduct(t, db, cat, "Filter A", "45.00")
	acme := dbtest.SeedClient(t, db, "acme")

	input := &dto.CreateCoefficientInput{ClientID: acme, ProductID: product, Coefficient: decimal.RequireFromString("1.20")}
	coef, err := uc.CreateCoefficient(ctx, input)
	require.NoError(t, err)

	_, err = uc.CreateCoefficient(ctx, input)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	updated, err := uc.UpdateCoefficient(ctx, &dto.UpdateCoefficientInput{ID: coef.ID, Coefficient: decimal.RequireFromString("1.35")})
	require.NoError(t, err)
	assert.Equal(t, "1.35", updated.Coefficient.String())

	_, err = uc.UpdateCoefficient(ctx, &dto.UpdateCoefficientInput{ID: coef.ID, Coefficient: decimal.Zero})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestMissingCoefficient(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	id := uuid.New().String()

	_, err := uc.GetCoefficient(ctx, id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = uc.UpdateCoefficient(ctx, &dto.UpdateCoefficientInput{ID: id, Coefficient: decimal.NewFromInt(2)})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.ErrorIs(t, uc.DeleteCoefficient(ctx, id), apperror.ErrNotFound)
}

func TestMalformedIDsNeverReachTheStore(t *testing.T) {
	uc, db := newUseCase(t)
	ctx := context.Background()
	require.NoError(t, db.Close())
	k := decimal.RequireFromString("1.2")

	_, err := uc.GetCoefficient(ctx, "x")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.ErrorIs(t, uc.DeleteCoefficient(ctx, "x"), apperror.ErrNotFound)

	_, err = uc.UpdateCoefficient(ctx, &dto.UpdateCoefficientInput{ID: "x", Coefficient: k})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = uc.CreateCoefficient(ctx, &dto.CreateCoefficientInput{ClientID: "x", ProductID: uuid.New().String(), Coefficient: k})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	items, total, err := uc.ListCoefficients(ctx, &dto.CoefficientFilters{ProductID: "x"})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

func TestCoefficientFitsStoredScale(t *testing.T) {
	uc, db := newUseCase(t)
	ctx := context.Background()
	cat := dbtest.SeedCategory(t, db, "Filters")
	product := dbtest.SeedProduct(t, db, cat, "Filter A", "45.00")
	acme := dbtest.SeedClient(t, db, "acme")

	coef, err := uc.CreateCoefficient(ctx, &dto.CreateCoefficientInput{
		ClientID:    acme,
		ProductID:   product,
		Coefficient: decimal.RequireFromString("1.23456"),
	})
	require.NoError(t, err)
	assert.True(t, coef.Coefficient.Equal(decimal.RequireFromString("1.2346")), coef.Coefficient.String())

	stored, err := uc.GetCoefficient(ctx, coef.ID)
	require.NoError(t, err)
	assert.True(t, stored.Coefficient.Equal(coef.Coefficient), stored.Coefficient.String())

	tests := []struct {
		name string
		k    string
	}{
		{"rounds to zero", "0.00004"},
		{"overflows the column", "1000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.UpdateCoefficient(ctx, &dto.UpdateCoefficientInput{ID: coef.ID, Coefficient: decimal.RequireFromString(tt.k)})
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		})
	}
}
