package auth

import (
	"context"
	"time"
)

type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        string    `json:"role"`
}

type UseCase interface {
	LoginClient(ctx context.Context, login, password string) (*Token, error)
	LoginAdmin(ctx context.Context, login, password string) (*Token, error)
}
