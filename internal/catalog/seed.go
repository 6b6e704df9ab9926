package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/erazemk/algorithmia/internal/model"
	"github.com/erazemk/algorithmia/internal/store"
)

type seedQuest struct {
	title       string
	description string
	minLevel    int
	required    []string
	experience  int
	gold        int
	rewards     []string
}

var seedItems = []model.Item{
	{Name: "Health Potion", Description: "Restores 50 health points", Type: model.ItemTypePotion,
		Effect: model.ItemEffect{Health: 50}},
	{Name: "Flaming Sword", Description: "A burning blade that deals fire damage", Type: model.ItemTypeWeapon,
		Effect: model.ItemEffect{Strength: 15}},
	{Name: "Wooden Shield", Description: "A simple but effective shield", Type: model.ItemTypeArmor,
		Effect: model.ItemEffect{Strength: 10}},
	{Name: "Amulet of Protection", Description: "Grants magical protection against attacks", Type: model.ItemTypeMisc,
		Effect: model.ItemEffect{Health: 20, Strength: 5}},
	{Name: "Mana Potion", Description: "Restores 30 mana points", Type: model.ItemTypePotion},
	{Name: "Scroll of Experience", Description: "Grants experience when used", Type: model.ItemTypeMisc,
		Effect: model.ItemEffect{Experience: 100}},
	{Name: "Ancient Coin", Description: "An old coin needed for a quest", Type: model.ItemTypeQuest},
}

var seedQuests = []seedQuest{
	{
		title:       "The First Adventure",
		description: "Kill 3 rats in the city sewers.",
		minLevel:    1,
		experience:  150,
		gold:        50,
		rewards:     []string{"Health Potion"},
	},
	{
		title:       "Goblin Hunt",
		description: "Goblins are raiding the nearby farms. Eliminate 5 goblins in the neighbouring forest.",
		minLevel:    3,
		experience:  300,
		gold:        100,
		rewards:     []string{"Flaming Sword", "Health Potion"},
	},
	{
		title:       "The Ancestral Stone",
		description: "Recover the ancestral stone stolen from the ruined temple. Beware of the guardians!",
		minLevel:    5,
		required:    []string{"Ancient Coin"},
		experience:  500,
		gold:        200,
		rewards:     []string{"Amulet of Protection", "Scroll of Experience"},
	},
	{
		title:       "Village Defense",
		description: "Help strengthen the village defenses by bringing supplies to the blacksmith.",
		minLevel:    2,
		experience:  200,
		gold:        75,
		rewards:     []string{"Wooden Shield"},
	},
	{
		title:       "Herb of the Ancients",
		description: "Find the rare medicinal herb in the marshes to heal the sick villagers.",
		minLevel:    4,
		experience:  400,
		gold:        150,
		rewards:     []string{"Health Potion", "Mana Potion", "Scroll of Experience"},
	},
}

// Seed populates an empty catalog with the default items and quests.
// It reports whether anything was inserted.
func Seed(ctx context.Context, db *sql.DB) (bool, error) {
	n, err := store.CountItems(ctx, db)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	ids := make(map[string]int64, len(seedItems))
	for i := range seedItems {
		item, err := store.CreateItem(ctx, db, &seedItems[i])
		if err != nil {
			return false, fmt.Errorf("seeding item %q: %w", seedItems[i].Name, err)
		}
		ids[item.Name] = item.ID
	}

	resolve := func(names []string) []int64 {
		out := make([]int64, 0, len(names))
		for _, name := range names {
			out = append(out, ids[name])
		}
		return out
	}

	for _, sq := range seedQuests {
		_, err := store.CreateQuest(ctx, db, &model.Quest{
			Title:       sq.title,
			Description: sq.description,
			Status:      model.QuestStatusAvailable,
			IsActive:    true,
			Requirements: model.Requirements{
				MinLevel:      sq.minLevel,
				RequiredItems: resolve(sq.required),
			},
			Rewards: model.Rewards{
				Experience: sq.experience,
				Gold:       sq.gold,
				Items:      resolve(sq.rewards),
			},
		})
		if err != nil {
			return false, fmt.Errorf("seeding quest %q: %w", sq.title, err)
		}
	}

	slog.Info("catalog seeded", "items", len(seedItems), "quests", len(seedQuests))
	return true, nil
}
