package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/algorithmia/internal/model"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const playerColumns = `id, name, email, password_hash, role, level, experience, gold,
	health, max_health, strength, mana, max_mana,
	quests_completed, total_experience, total_gold, version, created_at, updated_at`

// CreatePlayer inserts a new player and returns the stored record.
// Email uniqueness violations are reported as model.ErrEmailTaken.
func CreatePlayer(ctx context.Context, db *sql.DB, p *model.Player) (*model.Player, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO players (name, email, password_hash, role, level, experience, gold,
		                      health, max_health, strength, mana, max_mana)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, strings.ToLower(p.Email), p.PasswordHash, p.Role, p.Level, p.Experience, p.Gold,
		p.Stats.Health, p.Stats.MaxHealth, p.Stats.Strength, p.Stats.Mana, p.Stats.MaxMana,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("creating player: %w", model.ErrEmailTaken)
		}
		return nil, fmt.Errorf("creating player: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting player id: %w", err)
	}

	return GetPlayer(ctx, db, id)
}

// GetPlayer returns a player with inventory and quest lists, or nil if missing.
func GetPlayer(ctx context.Context, db *sql.DB, id int64) (*model.Player, error) {
	row := db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	p, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting player: %w", err)
	}
	if err := loadPlayerCollections(ctx, db, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPlayerByEmail returns a player by (case-insensitive) email, or nil if missing.
func GetPlayerByEmail(ctx context.Context, db *sql.DB, email string) (*model.Player, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE email = ?`, strings.ToLower(email))
	p, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting player by email: %w", err)
	}
	if err := loadPlayerCollections(ctx, db, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CountPlayers returns the number of registered players.
func CountPlayers(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting players: %w", err)
	}
	return n, nil
}

// SavePlayer writes all mutable player state in one transaction.
//
// The update is conditional on p.Version matching the stored version; on a
// mismatch nothing is written and model.ErrConflict is returned. On success
// p.Version is advanced. Completed quests are only ever inserted.
func SavePlayer(ctx context.Context, db *sql.DB, p *model.Player) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE players SET name = ?, level = ?, experience = ?, gold = ?,
		        health = ?, max_health = ?, strength = ?, mana = ?, max_mana = ?,
		        quests_completed = ?, total_experience = ?, total_gold = ?,
		        version = version + 1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND version = ?`,
		p.Name, p.Level, p.Experience, p.Gold,
		p.Stats.Health, p.Stats.MaxHealth, p.Stats.Strength, p.Stats.Mana, p.Stats.MaxMana,
		p.Stats.QuestsCompleted, p.Stats.TotalExperience, p.Stats.TotalGold,
		p.ID, p.Version,
	)
	if err != nil {
		return fmt.Errorf("updating player: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking player update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("saving player %d at version %d: %w", p.ID, p.Version, model.ErrConflict)
	}

	if err := replaceInventory(ctx, tx, p); err != nil {
		return err
	}
	if err := replaceActiveQuests(ctx, tx, p); err != nil {
		return err
	}
	for _, questID := range p.CompletedQuests {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO player_completed_quests (player_id, quest_id) VALUES (?, ?)`,
			p.ID, questID,
		); err != nil {
			return fmt.Errorf("recording completed quest: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing player: %w", err)
	}
	p.Version++
	return nil
}

func replaceInventory(ctx context.Context, tx *sql.Tx, p *model.Player) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM player_inventory WHERE player_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clearing inventory: %w", err)
	}
	for _, e := range p.Inventory.Entries() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO player_inventory (player_id, item_id, quantity) VALUES (?, ?, ?)`,
			p.ID, e.ItemID, e.Quantity,
		); err != nil {
			return fmt.Errorf("writing inventory: %w", err)
		}
	}
	return nil
}

func replaceActiveQuests(ctx context.Context, tx *sql.Tx, p *model.Player) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM player_active_quests WHERE player_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clearing active quests: %w", err)
	}
	for _, aq := range p.ActiveQuests {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO player_active_quests (player_id, quest_id, started_at, progress) VALUES (?, ?, ?, ?)`,
			p.ID, aq.QuestID, aq.StartedAt.UTC(), aq.Progress,
		); err != nil {
			return fmt.Errorf("writing active quest: %w", err)
		}
	}
	return nil
}

func scanPlayer(row *sql.Row) (*model.Player, error) {
	p := &model.Player{}
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Role, &p.Level, &p.Experience, &p.Gold,
		&p.Stats.Health, &p.Stats.MaxHealth, &p.Stats.Strength, &p.Stats.Mana, &p.Stats.MaxMana,
		&p.Stats.QuestsCompleted, &p.Stats.TotalExperience, &p.Stats.TotalGold,
		&p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// loadPlayerCollections fills inventory and quest lists. Each result set is
// drained before the next query since the pool holds a single connection.
func loadPlayerCollections(ctx context.Context, q querier, p *model.Player) error {
	inv, err := loadInventory(ctx, q, p.ID)
	if err != nil {
		return err
	}
	active, err := loadActiveQuests(ctx, q, p.ID)
	if err != nil {
		return err
	}
	completed, err := loadCompletedQuests(ctx, q, p.ID)
	if err != nil {
		return err
	}
	p.Inventory = inv
	p.ActiveQuests = active
	p.CompletedQuests = completed
	return nil
}

func loadInventory(ctx context.Context, q querier, playerID int64) (model.Inventory, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT item_id, quantity FROM player_inventory WHERE player_id = ?`, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	defer rows.Close()

	inv := model.Inventory{}
	for rows.Next() {
		var itemID int64
		var qty int
		if err := rows.Scan(&itemID, &qty); err != nil {
			return nil, fmt.Errorf("scanning inventory: %w", err)
		}
		inv[itemID] = qty
	}
	return inv, rows.Err()
}

func loadActiveQuests(ctx context.Context, q querier, playerID int64) ([]model.ActiveQuest, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT quest_id, started_at, progress FROM player_active_quests
		 WHERE player_id = ? ORDER BY started_at, quest_id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading active quests: %w", err)
	}
	defer rows.Close()

	active := []model.ActiveQuest{}
	for rows.Next() {
		var aq model.ActiveQuest
		if err := rows.Scan(&aq.QuestID, &aq.StartedAt, &aq.Progress); err != nil {
			return nil, fmt.Errorf("scanning active quest: %w", err)
		}
		active = append(active, aq)
	}
	return active, rows.Err()
}

func loadCompletedQuests(ctx context.Context, q querier, playerID int64) ([]int64, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT quest_id FROM player_completed_quests WHERE player_id = ? ORDER BY rowid`, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading completed quests: %w", err)
	}
	defer rows.Close()

	completed := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning completed quest: %w", err)
		}
		completed = append(completed, id)
	}
	return completed, rows.Err()
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
