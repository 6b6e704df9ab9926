package main

import (
	"context"
	"testing"

	"github.com/erazemk/algorithmia/internal/auth"
	"github.com/erazemk/algorithmia/internal/db"
	"github.com/erazemk/algorithmia/internal/model"
	"github.com/erazemk/algorithmia/internal/store"
)

func TestBootstrapAdminOnEmptyDatabase(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	password, err := bootstrapAdmin(ctx, database, "root@example.com")
	if err != nil {
		t.Fatalf("bootstrapAdmin: %v", err)
	}
	if len(password) != 16 {
		t.Fatalf("expected 16-character password, got %q", password)
	}

	admin, err := store.GetPlayerByEmail(ctx, database, "root@example.com")
	if err != nil || admin == nil {
		t.Fatalf("admin not created: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Errorf("expected admin role, got %q", admin.Role)
	}
	if !auth.CheckPassword(admin.PasswordHash, password) {
		t.Error("printed password does not match stored hash")
	}
}

func TestBootstrapAdminSkipsExistingPlayers(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := bootstrapAdmin(ctx, database, "root@example.com"); err != nil {
		t.Fatalf("first bootstrap: %v", err)
	}

	password, err := bootstrapAdmin(ctx, database, "other@example.com")
	if err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if password != "" {
		t.Error("expected no second admin")
	}

	n, _ := store.CountPlayers(ctx, database)
	if n != 1 {
		t.Errorf("expected 1 player, got %d", n)
	}
}

func TestGeneratePasswordLength(t *testing.T) {
	for _, length := range []int{1, 8, 32} {
		p, err := generatePassword(length)
		if err != nil {
			t.Fatalf("generatePassword(%d): %v", length, err)
		}
		if len(p) != length {
			t.Errorf("expected length %d, got %d", length, len(p))
		}
	}
}
