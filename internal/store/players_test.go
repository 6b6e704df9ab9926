package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erazemk/algorithmia/internal/db"
	"github.com/erazemk/algorithmia/internal/model"
)

func TestCreateAndGetPlayer(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	player, err := CreatePlayer(ctx, database, model.NewPlayer("Aria", "Aria@Example.com", "hash123", model.RolePlayer))
	if err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}
	if player.Name != "Aria" {
		t.Errorf("expected name 'Aria', got %q", player.Name)
	}
	if player.Email != "aria@example.com" {
		t.Errorf("expected lowercased email, got %q", player.Email)
	}
	if player.Level != 1 || player.Experience != 0 || player.Gold != 0 {
		t.Errorf("unexpected starting progression: level=%d exp=%d gold=%d", player.Level, player.Experience, player.Gold)
	}
	if player.Stats.Health != 100 || player.Stats.MaxHealth != 100 || player.Stats.Strength != 10 {
		t.Errorf("unexpected starting stats: %+v", player.Stats)
	}
	if player.Version != 1 {
		t.Errorf("expected version 1, got %d", player.Version)
	}

	got, err := GetPlayer(ctx, database, player.ID)
	if err != nil {
		t.Fatalf("GetPlayer: %v", err)
	}
	if got == nil {
		t.Fatal("expected player, got nil")
	}
	if len(got.Inventory) != 0 || len(got.ActiveQuests) != 0 || len(got.CompletedQuests) != 0 {
		t.Error("expected empty collections for a new player")
	}
}

func TestCreatePlayerDuplicateEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreatePlayer(ctx, database, model.NewPlayer("Aria", "aria@example.com", "hash", model.RolePlayer)); err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}
	_, err := CreatePlayer(ctx, database, model.NewPlayer("Other", "ARIA@example.com", "hash", model.RolePlayer))
	if !errors.Is(err, model.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestGetPlayerByEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreatePlayer(ctx, database, model.NewPlayer("Aria", "aria@example.com", "hash", model.RoleAdmin))

	player, err := GetPlayerByEmail(ctx, database, "Aria@Example.com")
	if err != nil {
		t.Fatalf("GetPlayerByEmail: %v", err)
	}
	if player == nil {
		t.Fatal("expected player, got nil")
	}
	if player.Role != model.RoleAdmin {
		t.Errorf("expected role admin, got %q", player.Role)
	}

	missing, err := GetPlayerByEmail(ctx, database, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetPlayerByEmail: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing player")
	}
}

func TestGetPlayerMissing(t *testing.T) {
	database := db.NewTestDB(t)

	player, err := GetPlayer(context.Background(), database, 999)
	if err != nil {
		t.Fatalf("GetPlayer: %v", err)
	}
	if player != nil {
		t.Error("expected nil for missing player")
	}
}

func TestSavePlayerRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	potion, _ := CreateItem(ctx, database, &model.Item{Name: "Health Potion", Type: model.ItemTypePotion})
	sword, _ := CreateItem(ctx, database, &model.Item{Name: "Flaming Sword", Type: model.ItemTypeWeapon})
	first, _ := CreateQuest(ctx, database, &model.Quest{Title: "First", Description: "d", IsActive: true,
		Requirements: model.Requirements{MinLevel: 1}})
	second, _ := CreateQuest(ctx, database, &model.Quest{Title: "Second", Description: "d", IsActive: true,
		Requirements: model.Requirements{MinLevel: 1}})

	player, _ := CreatePlayer(ctx, database, model.NewPlayer("Aria", "aria@example.com", "hash", model.RolePlayer))

	player.Level = 2
	player.Experience = 150
	player.Gold = 50
	player.Stats.QuestsCompleted = 1
	player.Stats.TotalExperience = 250
	player.Stats.TotalGold = 50
	player.Inventory.Add(potion.ID, 2)
	player.Inventory.Add(sword.ID, 1)
	player.ActiveQuests = append(player.ActiveQuests, model.ActiveQuest{QuestID: second.ID, StartedAt: time.Now()})
	player.CompletedQuests = append(player.CompletedQuests, first.ID)

	if err := SavePlayer(ctx, database, player); err != nil {
		t.Fatalf("SavePlayer: %v", err)
	}
	if player.Version != 2 {
		t.Errorf("expected version 2 after save, got %d", player.Version)
	}

	got, err := GetPlayer(ctx, database, player.ID)
	if err != nil {
		t.Fatalf("GetPlayer: %v", err)
	}
	if got.Level != 2 || got.Experience != 150 || got.Gold != 50 {
		t.Errorf("unexpected progression: level=%d exp=%d gold=%d", got.Level, got.Experience, got.Gold)
	}
	if got.Stats.TotalExperience != 250 || got.Stats.QuestsCompleted != 1 {
		t.Errorf("unexpected stats: %+v", got.Stats)
	}
	if got.Inventory.Quantity(potion.ID) != 2 || got.Inventory.Quantity(sword.ID) != 1 {
		t.Errorf("unexpected inventory: %v", got.Inventory)
	}
	if len(got.ActiveQuests) != 1 || got.ActiveQuests[0].QuestID != second.ID {
		t.Errorf("unexpected active quests: %+v", got.ActiveQuests)
	}
	if len(got.CompletedQuests) != 1 || got.CompletedQuests[0] != first.ID {
		t.Errorf("unexpected completed quests: %v", got.CompletedQuests)
	}
	if got.Version != 2 {
		t.Errorf("expected stored version 2, got %d", got.Version)
	}

	// Taking the only sword removes the row entirely.
	got.Inventory.Take(sword.ID)
	if err := SavePlayer(ctx, database, got); err != nil {
		t.Fatalf("SavePlayer: %v", err)
	}
	again, _ := GetPlayer(ctx, database, player.ID)
	if _, ok := again.Inventory[sword.ID]; ok {
		t.Error("expected empty stack to be removed")
	}
}

func TestSavePlayerStaleVersion(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	player, _ := CreatePlayer(ctx, database, model.NewPlayer("Aria", "aria@example.com", "hash", model.RolePlayer))
	staleCopy := *player
	stale := &staleCopy

	player.Gold = 10
	if err := SavePlayer(ctx, database, player); err != nil {
		t.Fatalf("SavePlayer: %v", err)
	}

	stale.Gold = 999
	err := SavePlayer(ctx, database, stale)
	if !errors.Is(err, model.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if stale.Version != 1 {
		t.Errorf("expected stale version to stay 1, got %d", stale.Version)
	}

	got, _ := GetPlayer(ctx, database, player.ID)
	if got.Gold != 10 {
		t.Errorf("expected gold 10 from the winning write, got %d", got.Gold)
	}
}

func TestCountPlayers(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreatePlayer(ctx, database, model.NewPlayer("Aria", "a@example.com", "hash", model.RolePlayer))
	CreatePlayer(ctx, database, model.NewPlayer("Bran", "b@example.com", "hash", model.RolePlayer))

	n, err := CountPlayers(ctx, database)
	if err != nil {
		t.Fatalf("CountPlayers: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 players, got %d", n)
	}
}
