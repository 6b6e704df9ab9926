package model

import "sort"

// Inventory maps item IDs to a positive quantity.
type Inventory map[int64]int

// InventoryEntry is one stack of an item held by a player.
type InventoryEntry struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`

	// Joined fields (not always populated).
	ItemName        string   `json:"item_name,omitempty"`
	ItemType        ItemType `json:"item_type,omitempty"`
	ItemDescription string   `json:"item_description,omitempty"`
}

// Quantity returns how many of itemID are held.
func (inv Inventory) Quantity(itemID int64) int {
	return inv[itemID]
}

// Add increases the stack for itemID by n.
func (inv Inventory) Add(itemID int64, n int) {
	if n <= 0 {
		return
	}
	inv[itemID] += n
}

// Take removes one unit of itemID, deleting the stack when it reaches zero.
// It reports false if the item was not held.
func (inv Inventory) Take(itemID int64) bool {
	qty := inv[itemID]
	if qty <= 0 {
		delete(inv, itemID)
		return false
	}
	if qty == 1 {
		delete(inv, itemID)
	} else {
		inv[itemID] = qty - 1
	}
	return true
}

// Entries returns the stacks ordered by item ID.
func (inv Inventory) Entries() []InventoryEntry {
	entries := make([]InventoryEntry, 0, len(inv))
	for id, qty := range inv {
		if qty > 0 {
			entries = append(entries, InventoryEntry{ItemID: id, Quantity: qty})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ItemID < entries[j].ItemID })
	return entries
}

