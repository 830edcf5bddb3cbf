package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-portal/internal/apperror"
	"github.com/fekuna/omnipos-portal/internal/client"
	"github.com/fekuna/omnipos-portal/internal/coefficient"
	"github.com/fekuna/omnipos-portal/internal/coefficient/dto"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/model"
	"github.com/fekuna/omnipos-portal/internal/product"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type coefficientUseCase struct {
	repo        coefficient.Repository
	clientRepo  client.Repository
	productRepo product.Repository
	logger      logger.ZapLogger
}

func NewCoefficientUseCase(
	repo coefficient.Repository,
	clientRepo client.Repository,
	productRepo product.Repository,
	log logger.ZapLogger,
) coefficient.UseCase {
	return &coefficientUseCase{
		repo:        repo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		logger:      log,
	}
}

func (uc *coefficientUseCase) CreateCoefficient(ctx context.Context, input *dto.CreateCoefficientInput) (*model.Coefficient, error) {
	k, err := validate(input.Coefficient)
	if err != nil {
		return nil, err
	}

	if !model.ValidID(input.ClientID) {
		return nil, apperror.NotFound("client")
	}
	c, err := uc.clientRepo.FindByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound("client")
	}

	if !model.ValidID(input.ProductID) {
		return nil, apperror.NotFound("product")
	}
	p, err := uc.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("product")
	}

	now := time.Now().UTC()
	coef := &model.Coefficient{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ClientID:    input.ClientID,
		ProductID:   input.ProductID,
		Coefficient: k,
	}

	if err := uc.repo.Create(ctx, coef); err != nil {
		return nil, err
	}

	uc.logger.Info("coefficient created",
		zap.String("coefficient_id", coef.ID),
		zap.String("client_id", coef.ClientID),
		zap.String("product_id", coef.ProductID),
		zap.String("coefficient", coef.Coefficient.String()),
	)
	return coef, nil
}

func (uc *coefficientUseCase) GetCoefficient(ctx context.Context, id string) (*model.Coefficient, error) {
	if !model.ValidID(id) {
		return nil, apperror.NotFound("coefficient")
	}
	coef, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coef == nil {
		return nil, apperror.NotFound("coefficient")
	}
	return coef, nil
}

func (uc *coefficientUseCase) ListCoefficients(ctx context.Context, filters *dto.CoefficientFilters) ([]model.Coefficient, int, error) {
	if (filters.ClientID != "" && !model.ValidID(filters.ClientID)) ||
		(filters.ProductID != "" && !model.ValidID(filters.ProductID)) {
		return []model.Coefficient{}, 0, nil
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *coefficientUseCase) UpdateCoefficient(ctx context.Context, input *dto.UpdateCoefficientInput) (*model.Coefficient, error) {
	k, err := validate(input.Coefficient)
	if err != nil {
		return nil, err
	}

	coef, err := uc.GetCoefficient(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	old := coef.Coefficient
	coef.Coefficient = k
	coef.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, coef); err != nil {
		return nil, err
	}

	uc.logger.Info("coefficient updated",
		zap.String("coefficient_id", coef.ID),
		zap.String("from", old.String()),
		zap.String("to", coef.Coefficient.String()),
	)
	return coef, nil
}

func (uc *coefficientUseCase) DeleteCoefficient(ctx context.Context, id string) error {
	if !model.ValidID(id) {
		return apperror.NotFound("coefficient")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("coefficient deleted", zap.String("coefficient_id", id))
	return nil
}

// validate rounds k to the stored scale and rejects multipliers that are not
// positive after rounding or do not fit the column.
func validate(k decimal.Decimal) (decimal.Decimal, error) {
	k = k.Round(model.CoefficientScale)
	if !k.IsPositive() {
		return decimal.Decimal{}, apperror.Invalid("coefficient must be greater than zero")
	}
	if k.GreaterThanOrEqual(model.MaxCoefficient) {
		return decimal.Decimal{}, apperror.Invalid("coefficient is too large")
	}
	return k, nil
}
