package auth

import (
	"context"
	"errors"
	"strings"

	"shopcart/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// Service contains the login/logout business logic. It owns the write side
// of the persisted refresh record; the auth middleware only reads it.
type Service struct {
	users UserRepositoryInterface
	codec tokenCodec
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

func NewService(users UserRepositoryInterface, codec tokenCodec) *Service {
	return &Service{users: users, codec: codec}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Blocked {
		return nil, ErrAccountBlocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.codec.SignAccess(user.ID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.codec.SignRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	// Overwrites any previously stored token: logging in kills every other
	// live session for this account.
	if err := s.users.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	user.RefreshToken = ""
	return &LoginResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout clears the persisted refresh record, but only when it still matches
// the token the client presented. A mismatch means the session was already
// superseded by a newer login, which must stay intact.
func (s *Service) Logout(ctx context.Context, userID int64, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	_, err := s.users.ReplaceRefreshToken(ctx, userID, refreshToken, "")
	return err
}
