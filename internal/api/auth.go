package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/erazemk/algorithmia/internal/auth"
	"github.com/erazemk/algorithmia/internal/logger"
	"github.com/erazemk/algorithmia/internal/model"
	"github.com/erazemk/algorithmia/internal/store"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	responder
	DB        *sql.DB
	JWTSecret string
	TokenTTL  time.Duration
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=20"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token  string        `json:"token"`
	Player *model.Player `json:"player"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.invalid(w, r, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(&req); err != nil {
		h.invalid(w, r, err)
		return
	}
	if len(req.Password) > auth.MaxPasswordBytes {
		h.fail(w, r, fmt.Errorf("%w: password must be at most %d bytes", model.ErrValidation, auth.MaxPasswordBytes))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	player, err := store.CreatePlayer(r.Context(), h.DB, model.NewPlayer(req.Name, req.Email, hash, model.RolePlayer))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, h.TokenTTL, player.ID, player.Email, player.Role)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("player registered", "player", player.ID, "email", player.Email)
	jsonSuccess(w, http.StatusCreated, "Welcome to Algorithmia, "+player.Name+"!", tokenResponse{Token: token, Player: player})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.invalid(w, r, err)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(&req); err != nil {
		h.invalid(w, r, err)
		return
	}

	player, err := store.GetPlayerByEmail(r.Context(), h.DB, req.Email)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if player == nil || !auth.CheckPassword(player.PasswordHash, req.Password) {
		logger.FromContext(r.Context()).Warn("login failed", "email", req.Email, "remote", r.RemoteAddr)
		h.fail(w, r, model.ErrInvalidCredentials)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, h.TokenTTL, player.ID, player.Email, player.Role)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("player logged in", "player", player.ID, "role", player.Role)
	jsonSuccess(w, http.StatusOK, "Welcome back, "+player.Name+"!", tokenResponse{Token: token, Player: player})
}

// Logout handles POST /api/auth/logout by revoking the presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentity(r.Context())
	if identity == nil {
		h.fail(w, r, model.ErrUnauthenticated)
		return
	}

	expiresAt := time.Now().Add(auth.TokenExpiry)
	if identity.Claims.ExpiresAt != nil {
		expiresAt = identity.Claims.ExpiresAt.Time
	}
	if err := store.RevokeToken(r.Context(), h.DB, identity.Claims.ID, expiresAt); err != nil {
		h.fail(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("player logged out", "player", identity.Claims.PlayerID)
	jsonSuccess(w, http.StatusOK, "Logged out", nil)
}
