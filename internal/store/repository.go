package store

import (
	"context"
	"database/sql"

	"github.com/erazemk/algorithmia/internal/model"
)

// Repository adapts the player functions to the progression engine's storage interface.
type Repository struct {
	DB *sql.DB
}

// NewRepository returns a Repository backed by db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{DB: db}
}

// LoadPlayer returns the player with id, or nil if missing.
func (r *Repository) LoadPlayer(ctx context.Context, id int64) (*model.Player, error) {
	return GetPlayer(ctx, r.DB, id)
}

// SavePlayer persists p, failing with model.ErrConflict if it changed since loading.
func (r *Repository) SavePlayer(ctx context.Context, p *model.Player) error {
	return SavePlayer(ctx, r.DB, p)
}

// IsTokenRevoked reports whether jti is on the revocation list.
func (r *Repository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	return IsTokenRevoked(ctx, r.DB, jti)
}
