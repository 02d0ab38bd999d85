package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/workholic/workholic-go/internal/domain/auth"
	"github.com/workholic/workholic-go/internal/handler/http/middleware"
	"github.com/workholic/workholic-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	CurrentUser(w http.ResponseWriter, r *http.Request)
	Test(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Call service
	loginResp, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Warn("Login failed", "email", loginReq.Email, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User logged in", "email", loginResp.User.Email, "first_login", loginResp.FirstLogin)
	response.Success(w, loginResp)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	if err := a.authService.Logout(r.Context(), claims.TokenID, claims.ExpiresAt); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out")
}

// CurrentUser implements AuthHandler.
func (a *AuthHandlerImpl) CurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	sessionUser, err := a.authService.CurrentUser(r.Context(), claims.Email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, response.Fields{"user": sessionUser})
}

// Test implements AuthHandler.
func (a *AuthHandlerImpl) Test(w http.ResponseWriter, r *http.Request) {
	response.SuccessWithMessage(w, "Server is running")
}
