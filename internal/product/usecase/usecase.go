package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-portal/internal/apperror"
	"github.com/fekuna/omnipos-portal/internal/category"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/model"
	"github.com/fekuna/omnipos-portal/internal/product"
	"github.com/fekuna/omnipos-portal/internal/product/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo    product.Repository
	catRepo category.Repository
	logger  logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, catRepo category.Repository, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:    repo,
		catRepo: catRepo,
		logger:  log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	name, cost, err := validate(input.Name, input.CostPrice)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &model.Product{
		BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CategoryID: input.CategoryID,
		Name:       name,
		CostPrice:  cost,
		ImageURL:   optional(input.ImageURL),
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.logger.Info("product created",
		zap.String("product_id", p.ID),
		zap.String("category_id", p.CategoryID),
		zap.String("cost_price", p.CostPrice.String()),
	)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if !model.ValidID(id) {
		return nil, apperror.NotFound("product")
	}
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("product")
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters.CategoryID != "" && !model.ValidID(filters.CategoryID) {
		return []model.Product{}, 0, nil
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	name, cost, err := validate(input.Name, input.CostPrice)
	if err != nil {
		return nil, err
	}

	p, err := uc.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.CategoryID != p.CategoryID {
		if err := uc.ensureCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	p.CategoryID = input.CategoryID
	p.Name = name
	p.CostPrice = cost
	p.ImageURL = optional(input.ImageURL)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	if !model.ValidID(id) {
		return apperror.NotFound("product")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

func (uc *productUseCase) ensureCategory(ctx context.Context, id string) error {
	if id == "" {
		return apperror.Invalid("category_id is required")
	}
	if !model.ValidID(id) {
		return apperror.NotFound("category")
	}
	cat, err := uc.catRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return apperror.NotFound("category")
	}
	return nil
}

// validate returns the trimmed name and the cost price rounded to the
// stored scale.
func validate(name string, costPrice decimal.Decimal) (string, decimal.Decimal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", decimal.Decimal{}, apperror.Invalid("product name is required")
	}
	cost := costPrice.Round(model.CostPriceScale)
	if cost.IsNegative() {
		return "", decimal.Decimal{}, apperror.Invalid("cost_price must not be negative")
	}
	if cost.GreaterThanOrEqual(model.MaxCostPrice) {
		return "", decimal.Decimal{}, apperror.Invalid("cost_price is too large")
	}
	return name, cost, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
