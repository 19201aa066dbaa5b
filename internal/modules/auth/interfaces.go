package auth

import (
	"context"

	"shopcart/internal/domain"
)

// UserRepositoryInterface covers only the methods the auth service uses.
type UserRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetRefreshToken(ctx context.Context, userID int64, token string) error
	ReplaceRefreshToken(ctx context.Context, userID int64, prev, next string) (bool, error)
}

type tokenCodec interface {
	SignAccess(userID int64) (string, error)
	SignRefresh(userID int64) (string, error)
}
