package db

import (
	"context"
	"testing"
)

func TestMigrateIsIdempotent(t *testing.T) {
	database := NewTestDB(t)
	ctx := context.Background()

	if err := Migrate(ctx, database); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	version, err := SchemaVersion(ctx, database)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != 2 {
		t.Errorf("expected schema version 2, got %d", version)
	}
}

func TestSchemaHasPlayerTables(t *testing.T) {
	database := NewTestDB(t)

	for _, table := range []string{"players", "player_inventory", "player_active_quests", "player_completed_quests", "items", "quests"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestInventoryRejectsZeroQuantity(t *testing.T) {
	database := NewTestDB(t)

	if _, err := database.Exec(`INSERT INTO items (name, type) VALUES ('Stone', 'misc')`); err != nil {
		t.Fatalf("insert item: %v", err)
	}
	if _, err := database.Exec(`INSERT INTO players (name, email, password_hash) VALUES ('Aria', 'a@b.c', 'x')`); err != nil {
		t.Fatalf("insert player: %v", err)
	}

	_, err := database.Exec(`INSERT INTO player_inventory (player_id, item_id, quantity) VALUES (1, 1, 0)`)
	if err == nil {
		t.Error("expected CHECK constraint to reject zero quantity")
	}
}
