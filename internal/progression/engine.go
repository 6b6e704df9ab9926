// Package progression implements the player state machine: accepting,
// completing and abandoning quests, using items, and building the profile view.
//
// Every mutation runs under a per-player lock around load, mutate and save.
// The store additionally rejects a save whose version is stale, so concurrent
// processes sharing a database cannot both apply the same transition.
package progression

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erazemk/algorithmia/internal/logger"
	"github.com/erazemk/algorithmia/internal/metrics"
	"github.com/erazemk/algorithmia/internal/model"
)

// PlayerRepository loads and stores player records. LoadPlayer returns nil, nil
// for an unknown id. SavePlayer returns model.ErrConflict if the record changed
// since it was loaded.
type PlayerRepository interface {
	LoadPlayer(ctx context.Context, id int64) (*model.Player, error)
	SavePlayer(ctx context.Context, p *model.Player) error
}

// Catalog resolves immutable item and quest definitions. Lookups return nil, nil
// for unknown ids.
type Catalog interface {
	Item(ctx context.Context, id int64) (*model.Item, error)
	Quest(ctx context.Context, id int64) (*model.Quest, error)
	AvailableQuests(ctx context.Context) ([]model.Quest, error)
}

// Engine applies progression transitions to player records.
type Engine struct {
	players              PlayerRepository
	catalog              Catalog
	effects              *EffectRegistry
	locks                *LockManager
	now                  func() time.Time
	enforceRequiredItems bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for quest start timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithEffects replaces the item effect registry.
func WithEffects(r *EffectRegistry) Option {
	return func(e *Engine) { e.effects = r }
}

// WithRequiredItems makes AcceptQuest check that the player holds every item
// the quest requires. The items are not consumed.
func WithRequiredItems(enforce bool) Option {
	return func(e *Engine) { e.enforceRequiredItems = enforce }
}

// NewEngine creates an Engine over the given storage and catalog.
func NewEngine(players PlayerRepository, catalog Catalog, opts ...Option) *Engine {
	e := &Engine{
		players: players,
		catalog: catalog,
		effects: NewEffectRegistry(),
		locks:   NewLockManager(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Effects returns the registry used for item use, for registering new item types.
func (e *Engine) Effects() *EffectRegistry {
	return e.effects
}

// mutate runs fn against a freshly loaded player while holding that player's
// lock. The player is saved only when fn reports a change and returns no error.
func (e *Engine) mutate(ctx context.Context, playerID int64, fn func(p *model.Player) (bool, error)) (*model.Player, error) {
	lock := e.locks.GetLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	p, err := e.loadPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	changed, err := fn(p)
	if err != nil {
		return nil, err
	}
	if !changed {
		return p, nil
	}

	if err := e.players.SavePlayer(ctx, p); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, err
		}
		return nil, wrapPersistence(err)
	}
	return p, nil
}

func (e *Engine) loadPlayer(ctx context.Context, playerID int64) (*model.Player, error) {
	p, err := e.players.LoadPlayer(ctx, playerID)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: id %d", model.ErrPlayerNotFound, playerID)
	}
	if p.Inventory == nil {
		p.Inventory = model.Inventory{}
	}
	return p, nil
}

func (e *Engine) quest(ctx context.Context, questID int64) (*model.Quest, error) {
	q, err := e.catalog.Quest(ctx, questID)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	if q == nil {
		return nil, fmt.Errorf("%w: id %d", model.ErrQuestNotFound, questID)
	}
	return q, nil
}

func (e *Engine) item(ctx context.Context, itemID int64) (*model.Item, error) {
	item, err := e.catalog.Item(ctx, itemID)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	return item, nil
}

// rejected records a refused transition and passes err through.
func rejected(ctx context.Context, op string, err error) error {
	if errors.Is(err, model.ErrPersistence) {
		logger.FromContext(ctx).Error("progression storage failure", "op", op, "error", err)
		return err
	}
	if errors.Is(err, model.ErrInvalidQuestConfig) {
		logger.FromContext(ctx).Error("invalid quest configuration", "op", op, "error", err)
	}
	metrics.TransitionsRejected.WithLabelValues(outcome(err)).Inc()
	return err
}

func outcome(err error) string {
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return "player_not_found"
	case errors.Is(err, model.ErrQuestNotFound):
		return "quest_not_found"
	case errors.Is(err, model.ErrQuestUnavailable):
		return "quest_unavailable"
	case errors.Is(err, model.ErrInvalidQuestConfig):
		return "invalid_quest_config"
	case errors.Is(err, model.ErrInsufficientLevel):
		return "insufficient_level"
	case errors.Is(err, model.ErrAlreadyActive):
		return "already_active"
	case errors.Is(err, model.ErrAlreadyCompleted):
		return "already_completed"
	case errors.Is(err, model.ErrNotActive):
		return "not_active"
	case errors.Is(err, model.ErrMissingRequiredItems):
		return "missing_required_items"
	case errors.Is(err, model.ErrItemNotOwned):
		return "item_not_owned"
	case errors.Is(err, model.ErrItemNotFound):
		return "item_not_found"
	case errors.Is(err, model.ErrConflict):
		return "conflict"
	default:
		return "other"
	}
}

func wrapPersistence(err error) error {
	return fmt.Errorf("%w: %w", model.ErrPersistence, err)
}
