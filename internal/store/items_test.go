package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/algorithmia/internal/db"
	"github.com/erazemk/algorithmia/internal/model"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, &model.Item{
		Name:   "Health Potion",
		Type:   model.ItemTypePotion,
		Effect: model.ItemEffect{Health: 50},
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Name != "Health Potion" {
		t.Errorf("expected name 'Health Potion', got %q", item.Name)
	}
	if item.Description != model.DefaultItemDescription {
		t.Errorf("expected default description, got %q", item.Description)
	}
	if item.Effect.Health != 50 {
		t.Errorf("expected health effect 50, got %d", item.Effect.Health)
	}

	missing, err := GetItem(ctx, database, 999)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing item")
	}
}

func TestCreateItemDuplicateName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateItem(ctx, database, &model.Item{Name: "Ancient Coin", Type: model.ItemTypeQuest})
	_, err := CreateItem(ctx, database, &model.Item{Name: "Ancient Coin", Type: model.ItemTypeQuest})
	if !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestCreateItemRejectsUnknownType(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := CreateItem(context.Background(), database, &model.Item{Name: "Rock", Type: "rock"})
	if err == nil {
		t.Error("expected CHECK constraint to reject unknown type")
	}
}

func TestListItemsOrdering(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateItem(ctx, database, &model.Item{Name: "Wooden Shield", Type: model.ItemTypeArmor})
	CreateItem(ctx, database, &model.Item{Name: "Mana Potion", Type: model.ItemTypePotion})
	CreateItem(ctx, database, &model.Item{Name: "Health Potion", Type: model.ItemTypePotion})

	items, err := ListItems(ctx, database)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	want := []string{"Wooden Shield", "Health Potion", "Mana Potion"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("item %d: expected %q, got %q", i, name, items[i].Name)
		}
	}

	n, _ := CountItems(ctx, database)
	if n != 3 {
		t.Errorf("expected 3 items, got %d", n)
	}
}

func TestMissingItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	coin, _ := CreateItem(ctx, database, &model.Item{Name: "Ancient Coin", Type: model.ItemTypeQuest})

	missing, err := MissingItems(ctx, database, []int64{coin.ID, 42, 42, coin.ID})
	if err != nil {
		t.Fatalf("MissingItems: %v", err)
	}
	if len(missing) != 1 || missing[0] != 42 {
		t.Errorf("expected [42], got %v", missing)
	}
}
