package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-portal/internal/apperror"
	"github.com/fekuna/omnipos-portal/internal/category"
	"github.com/fekuna/omnipos-portal/internal/client"
	"github.com/fekuna/omnipos-portal/internal/client/dto"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt cost used for client passwords.
var HashCost = bcrypt.DefaultCost

type clientUseCase struct {
	repo    client.Repository
	catRepo category.Repository
	logger  logger.ZapLogger
}

func NewClientUseCase(repo client.Repository, catRepo category.Repository, log logger.ZapLogger) client.UseCase {
	return &clientUseCase{
		repo:    repo,
		catRepo: catRepo,
		logger:  log,
	}
}

func (uc *clientUseCase) CreateClient(ctx context.Context, input *dto.CreateClientInput) (*model.Client, error) {
	login := strings.TrimSpace(input.Login)
	if login == "" {
		return nil, apperror.Invalid("login is required")
	}
	if input.Password == "" {
		return nil, apperror.Invalid("password is required")
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &model.Client{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Login:        login,
		PasswordHash: hash,
		Email:        optional(input.Email),
		Phone:        optional(input.Phone),
		Location:     optional(input.Location),
		CompanyName:  optional(input.CompanyName),
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	uc.logger.Info("client created", zap.String("client_id", c.ID), zap.String("login", c.Login))
	return c, nil
}

func (uc *clientUseCase) GetClient(ctx context.Context, id string) (*model.Client, error) {
	if !model.ValidID(id) {
		return nil, apperror.NotFound("client")
	}
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound("client")
	}
	return c, nil
}

func (uc *clientUseCase) ListClients(ctx context.Context, filters *dto.ClientFilters) ([]model.Client, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *clientUseCase) UpdateClient(ctx context.Context, input *dto.UpdateClientInput) (*model.Client, error) {
	login := strings.TrimSpace(input.Login)
	if login == "" {
		return nil, apperror.Invalid("login is required")
	}

	c, err := uc.GetClient(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Password != "" {
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		c.PasswordHash = hash
	}
	c.Login = login
	c.Email = optional(input.Email)
	c.Phone = optional(input.Phone)
	c.Location = optional(input.Location)
	c.CompanyName = optional(input.CompanyName)
	c.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *clientUseCase) DeleteClient(ctx context.Context, id string) error {
	if !model.ValidID(id) {
		return apperror.NotFound("client")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("client deleted", zap.String("client_id", id))
	return nil
}

// Authenticate checks a login/password pair. Unknown logins and wrong
// passwords are indistinguishable to the caller.
func (uc *clientUseCase) Authenticate(ctx context.Context, login, password string) (*model.Client, error) {
	c, err := uc.repo.FindByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.logger.Warn("stored password hash unusable", zap.String("client_id", c.ID), zap.Error(err))
		}
		return nil, apperror.ErrInvalidCredentials
	}
	return c, nil
}

func (uc *clientUseCase) AssignCategory(ctx context.Context, clientID, categoryID string) error {
	if _, err := uc.GetClient(ctx, clientID); err != nil {
		return err
	}
	if err := uc.ensureCategory(ctx, categoryID); err != nil {
		return err
	}

	if err := uc.repo.Assign(ctx, clientID, categoryID); err != nil {
		return err
	}

	uc.logger.Info("category assigned",
		zap.String("client_id", clientID),
		zap.String("category_id", categoryID),
	)
	return nil
}

func (uc *clientUseCase) UnassignCategory(ctx context.Context, clientID, categoryID string) error {
	if !model.ValidID(clientID) || !model.ValidID(categoryID) {
		return apperror.NotFound("category assignment")
	}
	if err := uc.repo.Unassign(ctx, clientID, categoryID); err != nil {
		return err
	}

	uc.logger.Info("category unassigned",
		zap.String("client_id", clientID),
		zap.String("category_id", categoryID),
	)
	return nil
}

// SetCategories replaces the client's assignment set and returns the result.
// Duplicate ids in the input collapse to one assignment.
func (uc *clientUseCase) SetCategories(ctx context.Context, clientID string, categoryIDs []string) ([]model.Category, error) {
	if _, err := uc.GetClient(ctx, clientID); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(categoryIDs))
	unique := make([]string, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		if err := uc.ensureCategory(ctx, id); err != nil {
			return nil, err
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	if err := uc.repo.ReplaceAssignments(ctx, clientID, unique); err != nil {
		return nil, fmt.Errorf("replace assignments: %w", err)
	}

	uc.logger.Info("category assignments replaced",
		zap.String("client_id", clientID),
		zap.Int("count", len(unique)),
	)
	return uc.catRepo.FindByClient(ctx, clientID)
}

func (uc *clientUseCase) ListClientCategories(ctx context.Context, clientID string) ([]model.Category, error) {
	if _, err := uc.GetClient(ctx, clientID); err != nil {
		return nil, err
	}
	return uc.catRepo.FindByClient(ctx, clientID)
}

func (uc *clientUseCase) ensureCategory(ctx context.Context, id string) error {
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

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperror.Invalid("password is too long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
