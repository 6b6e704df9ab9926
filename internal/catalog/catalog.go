// Package catalog serves item and quest definitions through an expiring LRU cache.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/erazemk/algorithmia/internal/metrics"
	"github.com/erazemk/algorithmia/internal/model"
	"github.com/erazemk/algorithmia/internal/store"
)

// Catalog reads immutable catalog entries from the database. Lookups by id are
// cached; misses for unknown ids are not.
type Catalog struct {
	db     *sql.DB
	items  *expirable.LRU[int64, *model.Item]
	quests *expirable.LRU[int64, *model.Quest]
}

// New returns a Catalog caching up to size entries of each kind for ttl.
func New(db *sql.DB, size int, ttl time.Duration) *Catalog {
	return &Catalog{
		db:     db,
		items:  expirable.NewLRU[int64, *model.Item](size, nil, ttl),
		quests: expirable.NewLRU[int64, *model.Quest](size, nil, ttl),
	}
}

// Item returns the item with id, or nil if it does not exist.
func (c *Catalog) Item(ctx context.Context, id int64) (*model.Item, error) {
	if item, ok := c.items.Get(id); ok {
		metrics.CatalogCacheHits.WithLabelValues("item").Inc()
		cp := *item
		return &cp, nil
	}
	metrics.CatalogCacheMisses.WithLabelValues("item").Inc()

	item, err := store.GetItem(ctx, c.db, id)
	if err != nil || item == nil {
		return nil, err
	}
	c.items.Add(id, item)
	cp := *item
	return &cp, nil
}

// Quest returns the quest with id, or nil if it does not exist.
func (c *Catalog) Quest(ctx context.Context, id int64) (*model.Quest, error) {
	if quest, ok := c.quests.Get(id); ok {
		metrics.CatalogCacheHits.WithLabelValues("quest").Inc()
		return cloneQuest(quest), nil
	}
	metrics.CatalogCacheMisses.WithLabelValues("quest").Inc()

	quest, err := store.GetQuest(ctx, c.db, id)
	if err != nil || quest == nil {
		return nil, err
	}
	c.quests.Add(id, quest)
	return cloneQuest(quest), nil
}

// Items lists every item ordered by type, then name.
func (c *Catalog) Items(ctx context.Context) ([]model.Item, error) {
	return store.ListItems(ctx, c.db)
}

// AvailableQuests lists active quests with status available, lowest level first.
func (c *Catalog) AvailableQuests(ctx context.Context) ([]model.Quest, error) {
	return store.ListAvailableQuests(ctx, c.db)
}

// CreateItem adds an item to the catalog.
func (c *Catalog) CreateItem(ctx context.Context, item *model.Item) (*model.Item, error) {
	if !item.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown item type %q", model.ErrValidation, item.Type)
	}
	created, err := store.CreateItem(ctx, c.db, item)
	if err != nil {
		return nil, err
	}
	c.items.Add(created.ID, created)
	cp := *created
	return &cp, nil
}

// CreateQuest adds a quest after checking that every referenced item exists.
func (c *Catalog) CreateQuest(ctx context.Context, quest *model.Quest) (*model.Quest, error) {
	refs := append(append([]int64{}, quest.Requirements.RequiredItems...), quest.Rewards.Items...)
	missing, err := store.MissingItems(ctx, c.db, refs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: unknown item ids %v", model.ErrValidation, missing)
	}

	created, err := store.CreateQuest(ctx, c.db, quest)
	if err != nil {
		return nil, err
	}
	c.quests.Add(created.ID, created)
	return cloneQuest(created), nil
}

// Purge drops every cached entry.
func (c *Catalog) Purge() {
	c.items.Purge()
	c.quests.Purge()
}

func cloneQuest(q *model.Quest) *model.Quest {
	cp := *q
	cp.Requirements.RequiredItems = append([]int64(nil), q.Requirements.RequiredItems...)
	cp.Rewards.Items = append([]int64(nil), q.Rewards.Items...)
	return &cp
}
