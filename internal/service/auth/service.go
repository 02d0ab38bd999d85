package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/workholic/workholic-go/internal/domain/auth"
	"github.com/workholic/workholic-go/internal/domain/user"
	"github.com/workholic/workholic-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength applies to passwords chosen on first login.
const MinPasswordLength = 6

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.LoginResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	firstLogin := userData.NeedsPassword()
	if firstLogin {
		// The first password submitted becomes the account password.
		if len(loginReq.Password) < MinPasswordLength {
			return auth.LoginResponse{}, user.ErrInvalidPasswordLength
		}
		hashed, err := a.hashPassword(loginReq.Password)
		if err != nil {
			return auth.LoginResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := a.UserRepository.UpdatePassword(ctx, userData.Email, hashed); err != nil {
			return auth.LoginResponse{}, fmt.Errorf("failed to set password: %w", err)
		}
		slog.Info("password set on first login", "email", userData.Email)
	} else if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(userData)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		Role:                 string(userData.Role),
		FirstLogin:           firstLogin,
		User:                 sessionUser(userData),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, tokenID string, expiresAt int64) error {
	if tokenID == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(tokenID, expiresAt)
	return nil
}

// CurrentUser implements auth.AuthService.
func (a *AuthServiceImpl) CurrentUser(ctx context.Context, email string) (auth.SessionUser, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.SessionUser{}, auth.ErrUnauthenticated
		}
		return auth.SessionUser{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return sessionUser(userData), nil
}

func sessionUser(u user.User) auth.SessionUser {
	return auth.SessionUser{
		Email:    u.Email,
		Name:     u.Name,
		Role:     string(u.Role),
		Schedule: u.Schedule,
	}
}
