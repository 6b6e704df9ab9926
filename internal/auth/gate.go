package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/erazemk/algorithmia/internal/model"
)

// PlayerLookup loads a player by id, returning nil, nil when it does not exist.
type PlayerLookup interface {
	LoadPlayer(ctx context.Context, id int64) (*model.Player, error)
}

// RevocationList reports whether a token id has been revoked.
type RevocationList interface {
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// Identity is the resolved caller of a request. Player is a read-only
// snapshot taken at resolution time.
type Identity struct {
	Claims *Claims
	Player *model.Player
}

// Gate turns an Authorization header into an Identity.
type Gate struct {
	Secret  string
	Players PlayerLookup
	Revoked RevocationList
}

// Resolve validates a "Bearer <token>" header. It fails with
// model.ErrUnauthenticated when no token is present, model.ErrInvalidToken when
// the token is malformed, expired, badly signed or revoked, and
// model.ErrPlayerNotFound when the token's player no longer exists.
func (g *Gate) Resolve(ctx context.Context, header string) (*Identity, error) {
	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	tokenStr = strings.TrimSpace(tokenStr)
	if !ok || tokenStr == "" {
		return nil, model.ErrUnauthenticated
	}

	claims, err := ValidateToken(g.Secret, tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}

	if g.Revoked != nil {
		revoked, err := g.Revoked.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrPersistence, err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: token revoked", model.ErrInvalidToken)
		}
	}

	player, err := g.Players.LoadPlayer(ctx, claims.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrPersistence, err)
	}
	if player == nil {
		return nil, fmt.Errorf("%w: id %d", model.ErrPlayerNotFound, claims.PlayerID)
	}

	return &Identity{Claims: claims, Player: player}, nil
}
