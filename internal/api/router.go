package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/erazemk/algorithmia/internal/auth"
	"github.com/erazemk/algorithmia/internal/catalog"
	"github.com/erazemk/algorithmia/internal/metrics"
	"github.com/erazemk/algorithmia/internal/model"
	"github.com/erazemk/algorithmia/internal/progression"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	DB        *sql.DB
	Engine    *progression.Engine
	Catalog   *catalog.Catalog
	Gate      *auth.Gate
	JWTSecret string
	TokenTTL  time.Duration
	Dev       bool
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()
	rs := responder{Dev: d.Dev}

	authHandler := &AuthHandler{responder: rs, DB: d.DB, JWTSecret: d.JWTSecret, TokenTTL: d.TokenTTL}
	playerHandler := &PlayerHandler{responder: rs, Engine: d.Engine}
	questsHandler := &QuestsHandler{responder: rs, Engine: d.Engine, Catalog: d.Catalog}
	itemsHandler := &ItemsHandler{responder: rs, Catalog: d.Catalog}
	healthHandler := &HealthHandler{responder: rs, DB: d.DB}

	authMW := AuthMiddleware(d.Gate, rs)
	requireAdmin := RequireRole(model.RoleAdmin, rs)

	// Public.
	mux.HandleFunc("GET /api/{$}", Welcome)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("GET /api/quests/available", questsHandler.Available)
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Authenticated.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/player/profile", authMW(http.HandlerFunc(playerHandler.Profile)))
	mux.Handle("POST /api/player/accept-quest/{questId}", authMW(http.HandlerFunc(playerHandler.AcceptQuest)))
	mux.Handle("POST /api/player/complete-quest/{questId}", authMW(http.HandlerFunc(playerHandler.CompleteQuest)))
	mux.Handle("POST /api/player/use-item/{itemId}", authMW(http.HandlerFunc(playerHandler.UseItem)))
	mux.Handle("POST /api/player/abandon-quest/{questId}", authMW(http.HandlerFunc(playerHandler.AbandonQuest)))

	// Admin.
	mux.Handle("POST /api/items", authMW(requireAdmin(http.HandlerFunc(itemsHandler.Create))))
	mux.Handle("POST /api/quests", authMW(requireAdmin(http.HandlerFunc(questsHandler.Create))))

	return LoggingMiddleware(metrics.Middleware(mux))
}
