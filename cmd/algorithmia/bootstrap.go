package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/erazemk/algorithmia/internal/auth"
	"github.com/erazemk/algorithmia/internal/model"
	"github.com/erazemk/algorithmia/internal/store"
)

// adminName is the display name of the bootstrap account.
const adminName = "Admin"

// bootstrapAdmin creates the admin account when no players exist yet.
// It returns the generated password, or "" when nothing was created.
func bootstrapAdmin(ctx context.Context, database *sql.DB, email string) (string, error) {
	n, err := store.CountPlayers(ctx, database)
	if err != nil {
		return "", fmt.Errorf("counting players: %w", err)
	}
	if n > 0 {
		return "", nil
	}

	password, err := generatePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	if _, err := store.CreatePlayer(ctx, database, model.NewPlayer(adminName, email, hash, model.RoleAdmin)); err != nil {
		return "", fmt.Errorf("creating admin player: %w", err)
	}

	slog.Info("admin account created", "email", email)
	return password, nil
}

// printAdminCredentials prints the bootstrap credentials to stdout.
func printAdminCredentials(email, password string) {
	fmt.Println("Admin account created:")
	fmt.Printf("  Email:    %s\n", email)
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password, it cannot be recovered.")
	fmt.Println()
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
