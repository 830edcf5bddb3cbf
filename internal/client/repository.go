package client

import (
	"context"

	"github.com/fekuna/omnipos-portal/internal/client/dto"
	"github.com/fekuna/omnipos-portal/internal/model"
)

type Repository interface {
	Create(ctx context.Context, client *model.Client) error
	FindByID(ctx context.Context, id string) (*model.Client, error)
	FindByLogin(ctx context.Context, login string) (*model.Client, error)
	FindAll(ctx context.Context, filters *dto.ClientFilters) ([]model.Client, int, error)
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id string) error

	// Category assignments
	Assign(ctx context.Context, clientID, categoryID string) error
	Unassign(ctx context.Context, clientID, categoryID string) error
	ReplaceAssignments(ctx context.Context, clientID string, categoryIDs []string) error
}
