package usecase

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/fekuna/omnipos-portal/config"
	"github.com/fekuna/omnipos-portal/internal/apperror"
	"github.com/fekuna/omnipos-portal/internal/auth"
	"github.com/fekuna/omnipos-portal/internal/client"
	"github.com/fekuna/omnipos-portal/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authUseCase struct {
	clients client.UseCase
	tokens  *auth.TokenManager
	admin   config.AdminConfig
	logger  logger.ZapLogger
}

func NewAuthUseCase(clients client.UseCase, tokens *auth.TokenManager, admin config.AdminConfig, log logger.ZapLogger) auth.UseCase {
	return &authUseCase{
		clients: clients,
		tokens:  tokens,
		admin:   admin,
		logger:  log,
	}
}

func (uc *authUseCase) LoginClient(ctx context.Context, login, password string) (*auth.Token, error) {
	c, err := uc.clients.Authenticate(ctx, login, password)
	if err != nil {
		if errors.Is(err, apperror.ErrInvalidCredentials) {
			uc.logger.Info("client login rejected", zap.String("login", login))
		}
		return nil, err
	}

	uc.logger.Info("client logged in", zap.String("client_id", c.ID))
	return uc.issue(auth.Identity{Subject: c.ID, Role: auth.RoleClient})
}

// LoginAdmin checks the single admin credential held in configuration.
func (uc *authUseCase) LoginAdmin(ctx context.Context, login, password string) (*auth.Token, error) {
	loginOK := subtle.ConstantTimeCompare([]byte(login), []byte(uc.admin.Login)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(uc.admin.PasswordHash), []byte(password))
	if !loginOK || passErr != nil {
		uc.logger.Warn("admin login rejected", zap.String("login", login))
		return nil, apperror.ErrInvalidCredentials
	}

	uc.logger.Info("admin logged in", zap.String("login", login))
	return uc.issue(auth.Identity{Subject: uc.admin.Login, Role: auth.RoleAdmin})
}

func (uc *authUseCase) issue(id auth.Identity) (*auth.Token, error) {
	token, expiresAt, err := uc.tokens.Issue(id)
	if err != nil {
		return nil, err
	}
	return &auth.Token{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Role:        id.Role,
	}, nil
}
