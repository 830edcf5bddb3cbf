package greeting

import (
	"context"

	"github.com/fekuna/omnipos-portal/internal/greeting/dto"
	"github.com/fekuna/omnipos-portal/internal/model"
)

type Repository interface {
	CreatePage(ctx context.Context, page *model.GreetingPage) error
	FindPageByID(ctx context.Context, id string) (*model.GreetingPage, error)
	FindPageBySlug(ctx context.Context, slug string) (*model.GreetingPage, error)
	FindAllPages(ctx context.Context, filters *dto.PageFilters) ([]model.GreetingPage, int, error)
	UpdatePage(ctx context.Context, page *model.GreetingPage) error
	DeletePage(ctx context.Context, id string) error

	CreateLead(ctx context.Context, lead *model.Lead) error
	FindLead(ctx context.Context, pageID, email string) (*model.Lead, error)
	FindLeads(ctx context.Context, filters *dto.LeadFilters) ([]model.Lead, int, error)
}
