package coefficient

import (
	"context"

	"github.com/fekuna/omnipos-portal/internal/coefficient/dto"
	"github.com/fekuna/omnipos-portal/internal/model"
)

type UseCase interface {
	CreateCoefficient(ctx context.Context, input *dto.CreateCoefficientInput) (*model.Coefficient, error)
	GetCoefficient(ctx context.Context, id string) (*model.Coefficient, error)
	ListCoefficients(ctx context.Context, filters *dto.CoefficientFilters) ([]model.Coefficient, int, error)
	UpdateCoefficient(ctx context.Context, input *dto.UpdateCoefficientInput) (*model.Coefficient, error)
	DeleteCoefficient(ctx context.Context, id string) error
}
