package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/quicksnatch-server/internal/logger"
	"github.com/dtroode/quicksnatch-server/internal/model"
)

// AuthService defines registration, login and token operations.
type AuthService interface {
	Register(ctx context.Context, username, password, confirmPassword string) error
	Login(ctx context.Context, username, password string) (model.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{authService: authService, logger: logger}
}

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Redirect     string `json:"redirect,omitempty"`
}

type messageResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// Register creates a new player account.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.authService.Register(r.Context(), req.Username, req.Password, req.ConfirmPassword); err != nil {
		h.logger.Info("Auth handler: registration failed",
			"username", req.Username,
			"error", err.Error())
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{
		Message:  "Registration successful! Please login.",
		Redirect: "/login",
	})
}

// Login exchanges credentials for a token pair.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	res, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		Redirect:     res.Redirect,
	})
}

// Refresh rotates a refresh token.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "refresh_token is required"})
		return
	}

	pair, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// Logout revokes a refresh token.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "refresh_token is required"})
		return
	}

	if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
