package greeting

import (
	"context"

	"github.com/fekuna/omnipos-portal/internal/greeting/dto"
	"github.com/fekuna/omnipos-portal/internal/model"
)

// EventLeadCaptured is published once per newly stored lead.
const EventLeadCaptured = "lead.captured"

type UseCase interface {
	CreatePage(ctx context.Context, input *dto.CreatePageInput) (*model.GreetingPage, error)
	GetPage(ctx context.Context, id string) (*model.GreetingPage, error)
	ListPages(ctx context.Context, filters *dto.PageFilters) ([]model.GreetingPage, int, error)
	UpdatePage(ctx context.Context, input *dto.UpdatePageInput) (*model.GreetingPage, error)
	DeletePage(ctx context.Context, id string) error
	ListLeads(ctx context.Context, filters *dto.LeadFilters) ([]model.Lead, int, error)

	GetPublicPage(ctx context.Context, slug string) (*model.GreetingPage, error)
	// CaptureLead stores email against the page. Capturing the same address
	// twice returns the existing lead and created=false.
	CaptureLead(ctx context.Context, slug, email string) (lead *model.Lead, created bool, err error)
}
