package auth

import (
	"context"
)

type AuthService interface {
	// Login verifies the password. An account without a password adopts the
	// submitted one and the response reports FirstLogin.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt int64) error
	CurrentUser(ctx context.Context, email string) (SessionUser, error)
}
