package model

import "time"

// ItemType classifies what an item does when used.
type ItemType string

// Item types.
const (
	ItemTypePotion ItemType = "potion"
	ItemTypeWeapon ItemType = "weapon"
	ItemTypeArmor  ItemType = "armor"
	ItemTypeQuest  ItemType = "quest"
	ItemTypeMisc   ItemType = "misc"
)

// DefaultItemDescription is used when an item is created without one.
const DefaultItemDescription = "A mysterious object..."

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypePotion, ItemTypeWeapon, ItemTypeArmor, ItemTypeQuest, ItemTypeMisc:
		return true
	}
	return false
}

// Item is an immutable catalog entry for a usable or equippable object.
type Item struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        ItemType   `json:"type"`
	Effect      ItemEffect `json:"effect"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ItemEffect holds the nominal values an item applies.
type ItemEffect struct {
	Health     int `json:"health"`
	Experience int `json:"experience"`
	Strength   int `json:"strength"`
}

// ItemRef is a lightweight item reference used in views.
type ItemRef struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Type ItemType `json:"type,omitempty"`
}
