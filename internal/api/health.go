package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/algorithmia/internal/db"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	responder
	DB *sql.DB
}

type healthResponse struct {
	Status        string `json:"status"`
	SchemaVersion int64  `json:"schema_version"`
}

// Health handles GET /healthz.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.PingContext(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	version, err := db.SchemaVersion(r.Context(), h.DB)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusOK, "ok", healthResponse{Status: "ok", SchemaVersion: version})
}

type welcomeResponse struct {
	Endpoints []string `json:"endpoints"`
}

// endpoints lists the public API surface for the welcome message.
var endpoints = []string{
	"POST /api/auth/register",
	"POST /api/auth/login",
	"POST /api/auth/logout",
	"GET /api/items",
	"POST /api/items",
	"GET /api/quests/available",
	"POST /api/quests",
	"GET /api/player/profile",
	"POST /api/player/accept-quest/{questId}",
	"POST /api/player/complete-quest/{questId}",
	"POST /api/player/use-item/{itemId}",
	"POST /api/player/abandon-quest/{questId}",
}

// Welcome handles GET /api/.
func Welcome(w http.ResponseWriter, r *http.Request) {
	jsonSuccess(w, http.StatusOK, "Welcome to the Kingdom of Algorithmia", welcomeResponse{Endpoints: endpoints})
}
