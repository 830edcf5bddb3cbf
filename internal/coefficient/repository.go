package coefficient

import (
	"context"

	"github.com/fekuna/omnipos-portal/internal/coefficient/dto"
	"github.com/fekuna/omnipos-portal/internal/model"
)

type Repository interface {
	Create(ctx context.Context, coef *model.Coefficient) error
	FindByID(ctx context.Context, id string) (*model.Coefficient, error)
	FindAll(ctx context.Context, filters *dto.CoefficientFilters) ([]model.Coefficient, int, error)
	Update(ctx context.Context, coef *model.Coefficient) error
	Delete(ctx context.Context, id string) error
}
