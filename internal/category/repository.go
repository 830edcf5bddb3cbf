package category

import (
	"context"

	"github.com/fekuna/omnipos-portal/internal/category/dto"
	"github.com/fekuna/omnipos-portal/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error

	// FindByClient returns only the categories assigned to the client.
	FindByClient(ctx context.Context, clientID string) ([]model.Category, error)
}
