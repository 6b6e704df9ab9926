package model

import "time"

// Quest statuses. The status is informational; a player's own quest lists are authoritative.
const (
	QuestStatusAvailable  = "available"
	QuestStatusInProgress = "in_progress"
	QuestStatusCompleted  = "completed"
)

// Quest is an immutable catalog entry describing requirements and rewards.
type Quest struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Status       string       `json:"status"`
	Requirements Requirements `json:"requirements"`
	Rewards      Rewards      `json:"rewards"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Requirements gate quest acceptance.
type Requirements struct {
	MinLevel      int     `json:"min_level"`
	RequiredItems []int64 `json:"required_items"`
}

// Rewards are granted on completion. Items may repeat; each occurrence grants one unit.
type Rewards struct {
	Experience int     `json:"experience"`
	Items      []int64 `json:"items"`
	Gold       int     `json:"gold"`
}

// QuestRef is a lightweight quest reference used in views.
type QuestRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}
