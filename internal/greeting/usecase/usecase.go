package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/fekuna/omnipos-portal/internal/apperror"
	"github.com/fekuna/omnipos-portal/internal/broker"
	"github.com/fekuna/omnipos-portal/internal/greeting"
	"github.com/fekuna/omnipos-portal/internal/greeting/dto"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = 3 * time.Second

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type greetingUseCase struct {
	repo      greeting.Repository
	publisher broker.Publisher
	validate  *validator.Validate
	logger    logger.ZapLogger
}

func NewGreetingUseCase(repo greeting.Repository, publisher broker.Publisher, log logger.ZapLogger) greeting.UseCase {
	return &greetingUseCase{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
		logger:    log,
	}
}

func (uc *greetingUseCase) CreatePage(ctx context.Context, input *dto.CreatePageInput) (*model.GreetingPage, error) {
	slug, title, err := validatePage(input.Slug, input.Title)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	page := &model.GreetingPage{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Slug:      slug,
		Title:     title,
		Message:   strings.TrimSpace(input.Message),
		IsActive:  input.IsActive,
	}

	if err := uc.repo.CreatePage(ctx, page); err != nil {
		return nil, err
	}

	uc.logger.Info("greeting page created", zap.String("page_id", page.ID), zap.String("slug", page.Slug))
	return page, nil
}

func (uc *greetingUseCase) GetPage(ctx context.Context, id string) (*model.GreetingPage, error) {
	if !model.ValidID(id) {
		return nil, apperror.NotFound("greeting page")
	}
	page, err := uc.repo.FindPageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, apperror.NotFound("greeting page")
	}
	return page, nil
}

func (uc *greetingUseCase) ListPages(ctx context.Context, filters *dto.PageFilters) ([]model.GreetingPage, int, error) {
	return uc.repo.FindAllPages(ctx, filters)
}

func (uc *greetingUseCase) UpdatePage(ctx context.Context, input *dto.UpdatePageInput) (*model.GreetingPage, error) {
	slug, title, err := validatePage(input.Slug, input.Title)
	if err != nil {
		return nil, err
	}

	page, err := uc.GetPage(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	page.Slug = slug
	page.Title = title
	page.Message = strings.TrimSpace(input.Message)
	page.IsActive = input.IsActive
	page.UpdatedAt = time.Now().UTC()

	if err := uc.repo.UpdatePage(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (uc *greetingUseCase) DeletePage(ctx context.Context, id string) error {
	if !model.ValidID(id) {
		return apperror.NotFound("greeting page")
	}
	if err := uc.repo.DeletePage(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("greeting page deleted", zap.String("page_id", id))
	return nil
}

func (uc *greetingUseCase) ListLeads(ctx context.Context, filters *dto.LeadFilters) ([]model.Lead, int, error) {
	if _, err := uc.GetPage(ctx, filters.PageID); err != nil {
		return nil, 0, err
	}
	return uc.repo.FindLeads(ctx, filters)
}

// GetPublicPage hides inactive pages behind not-found.
func (uc *greetingUseCase) GetPublicPage(ctx context.Context, slug string) (*model.GreetingPage, error) {
	page, err := uc.repo.FindPageBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	if page == nil || !page.IsActive {
		return nil, apperror.NotFound("greeting page")
	}
	return page, nil
}

func (uc *greetingUseCase) CaptureLead(ctx context.Context, slug, email string) (*model.Lead, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := uc.validate.Var(email, "required,email,max=254"); err != nil {
		return nil, false, apperror.Invalid("a valid email address is required")
	}

	page, err := uc.GetPublicPage(ctx, slug)
	if err != nil {
		return nil, false, err
	}

	existing, err := uc.repo.FindLead(ctx, page.ID, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	lead := &model.Lead{
		ID:        uuid.New().String(),
		PageID:    page.ID,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.CreateLead(ctx, lead); err != nil {
		// Lost a race with an identical capture; hand back the winner.
		if errors.Is(err, apperror.ErrConflict) {
			winner, findErr := uc.repo.FindLead(ctx, page.ID, email)
			if findErr == nil && winner != nil {
				return winner, false, nil
			}
		}
		return nil, false, err
	}

	uc.logger.Info("lead captured", zap.String("page_id", page.ID), zap.String("lead_id", lead.ID))
	uc.publishCaptured(ctx, page, lead)
	return lead, true, nil
}

// publishCaptured never fails the capture; delivery problems are logged.
func (uc *greetingUseCase) publishCaptured(ctx context.Context, page *model.GreetingPage, lead *model.Lead) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := broker.NewEvent(greeting.EventLeadCaptured, dto.LeadCapturedPayload{
		LeadID:   lead.ID,
		PageID:   page.ID,
		PageSlug: page.Slug,
		Email:    lead.Email,
	})
	if err := uc.publisher.Publish(ctx, page.ID, event); err != nil {
		uc.logger.Warn("lead event not published",
			zap.String("lead_id", lead.ID),
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
	}
}

func validatePage(slug, title string) (string, string, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !slugPattern.MatchString(slug) {
		return "", "", apperror.Invalid("slug must be lowercase letters, digits and single hyphens")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", apperror.Invalid("title is required")
	}
	return slug, title, nil
}
