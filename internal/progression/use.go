package progression

import (
	"context"
	"fmt"

	"github.com/erazemk/algorithmia/internal/logger"
	"github.com/erazemk/algorithmia/internal/metrics"
	"github.com/erazemk/algorithmia/internal/model"
)

// UseResult is returned by UseItem.
type UseResult struct {
	Item      *model.Item            `json:"item"`
	Effect    EffectResult           `json:"effect"`
	Inventory []model.InventoryEntry `json:"inventory"`
}

// UseItem applies the item's effect and consumes one unit from the inventory.
// Ownership is checked before the item is resolved, so an unknown id the
// player does not hold reports ErrItemNotOwned.
func (e *Engine) UseItem(ctx context.Context, playerID, itemID int64) (*UseResult, error) {
	var (
		item   *model.Item
		effect EffectResult
	)

	p, err := e.mutate(ctx, playerID, func(p *model.Player) (bool, error) {
		if p.Inventory.Quantity(itemID) <= 0 {
			return false, fmt.Errorf("%w: item %d", model.ErrItemNotOwned, itemID)
		}

		it, err := e.item(ctx, itemID)
		if err != nil {
			return false, err
		}
		if it == nil {
			return false, fmt.Errorf("%w: id %d", model.ErrItemNotFound, itemID)
		}
		item = it

		effect = e.effects.Lookup(it.Type).Apply(p, it)
		p.Inventory.Take(itemID)
		return true, nil
	})
	if err != nil {
		return nil, rejected(ctx, "use_item", err)
	}

	metrics.ItemsUsed.WithLabelValues(string(item.Type)).Inc()
	logger.FromContext(ctx).Info("item used",
		"player_id", playerID, "item_id", itemID, "type", item.Type, "health_delta", effect.HealthDelta)

	return &UseResult{
		Item:      item,
		Effect:    effect,
		Inventory: e.inventoryEntries(ctx, p.Inventory),
	}, nil
}

// inventoryEntries lists stacks enriched with catalog details.
func (e *Engine) inventoryEntries(ctx context.Context, inv model.Inventory) []model.InventoryEntry {
	entries := inv.Entries()
	for i := range entries {
		item, err := e.catalog.Item(ctx, entries[i].ItemID)
		if err != nil || item == nil {
			continue
		}
		entries[i].ItemName = item.Name
		entries[i].ItemType = item.Type
		entries[i].ItemDescription = item.Description
	}
	return entries
}
