package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/algorithmia/internal/model"
)

const questColumns = `id, title, description, status, min_level, reward_experience, reward_gold, is_active, created_at`

// CreateQuest inserts a quest with its required and reward items in one transaction.
// Reward item order is preserved, duplicates included.
func CreateQuest(ctx context.Context, db *sql.DB, q *model.Quest) (*model.Quest, error) {
	status := q.Status
	if status == "" {
		status = model.QuestStatusAvailable
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO quests (title, description, status, min_level, reward_experience, reward_gold, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.Title, q.Description, status, q.Requirements.MinLevel,
		q.Rewards.Experience, q.Rewards.Gold, q.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("creating quest: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting quest id: %w", err)
	}

	for _, itemID := range q.Requirements.RequiredItems {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO quest_required_items (quest_id, item_id) VALUES (?, ?)`,
			id, itemID,
		); err != nil {
			return nil, fmt.Errorf("adding required item: %w", err)
		}
	}
	for pos, itemID := range q.Rewards.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO quest_reward_items (quest_id, position, item_id) VALUES (?, ?, ?)`,
			id, pos, itemID,
		); err != nil {
			return nil, fmt.Errorf("adding reward item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing quest: %w", err)
	}

	return GetQuest(ctx, db, id)
}

// GetQuest returns a quest with its item lists, or nil if missing.
func GetQuest(ctx context.Context, db *sql.DB, id int64) (*model.Quest, error) {
	q := &model.Quest{}
	err := db.QueryRowContext(ctx,
		`SELECT `+questColumns+` FROM quests WHERE id = ?`, id,
	).Scan(&q.ID, &q.Title, &q.Description, &q.Status, &q.Requirements.MinLevel,
		&q.Rewards.Experience, &q.Rewards.Gold, &q.IsActive, &q.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting quest: %w", err)
	}
	if err := loadQuestItems(ctx, db, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ListAvailableQuests returns active quests with status available, easiest first.
func ListAvailableQuests(ctx context.Context, db *sql.DB) ([]model.Quest, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+questColumns+` FROM quests
		 WHERE is_active = 1 AND status = ?
		 ORDER BY min_level, id`, model.QuestStatusAvailable,
	)
	if err != nil {
		return nil, fmt.Errorf("listing quests: %w", err)
	}

	quests := []model.Quest{}
	for rows.Next() {
		var q model.Quest
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.Status, &q.Requirements.MinLevel,
			&q.Rewards.Experience, &q.Rewards.Gold, &q.IsActive, &q.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning quest: %w", err)
		}
		quests = append(quests, q)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("listing quests: %w", err)
	}
	rows.Close()

	for i := range quests {
		if err := loadQuestItems(ctx, db, &quests[i]); err != nil {
			return nil, err
		}
	}
	return quests, nil
}

func loadQuestItems(ctx context.Context, q querier, quest *model.Quest) error {
	required, err := queryIDs(ctx, q,
		`SELECT item_id FROM quest_required_items WHERE quest_id = ? ORDER BY item_id`, quest.ID)
	if err != nil {
		return fmt.Errorf("loading required items: %w", err)
	}
	rewards, err := queryIDs(ctx, q,
		`SELECT item_id FROM quest_reward_items WHERE quest_id = ? ORDER BY position`, quest.ID)
	if err != nil {
		return fmt.Errorf("loading reward items: %w", err)
	}
	quest.Requirements.RequiredItems = required
	quest.Rewards.Items = rewards
	return nil
}

func queryIDs(ctx context.Context, q querier, query string, args ...any) ([]int64, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
