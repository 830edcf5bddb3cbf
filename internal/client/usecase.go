package client

import (
	"context"

	"github.com/fekuna/omnipos-portal/internal/client/dto"
	"github.com/fekuna/omnipos-portal/internal/model"
)

type UseCase interface {
	CreateClient(ctx context.Context, input *dto.CreateClientInput) (*model.Client, error)
	GetClient(ctx context.Context, id string) (*model.Client, error)
	ListClients(ctx context.Context, filters *dto.ClientFilters) ([]model.Client, int, error)
	UpdateClient(ctx context.Context, input *dto.UpdateClientInput) (*model.Client, error)
	DeleteClient(ctx context.Context, id string) error
	Authenticate(ctx context.Context, login, password string) (*model.Client, error)

	AssignCategory(ctx context.Context, clientID, categoryID string) error
	UnassignCategory(ctx context.Context, clientID, categoryID string) error
	SetCategories(ctx context.Context, clientID string, categoryIDs []string) ([]model.Category, error)
	ListClientCategories(ctx context.Context, clientID string) ([]model.Category, error)
}
