package model

import (
	"fmt"
	"time"
)

// Player is an account progressing through levels, quests, and inventory.
type Player struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	PasswordHash    string        `json:"-"`
	Role            string        `json:"role"`
	Level           int           `json:"level"`
	Experience      int           `json:"experience"`
	Gold            int           `json:"gold"`
	Stats           Stats         `json:"stats"`
	Inventory       Inventory     `json:"-"`
	ActiveQuests    []ActiveQuest `json:"active_quests"`
	CompletedQuests []int64       `json:"completed_quests"`
	Version         int64         `json:"-"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Stats holds a player's vital attributes and lifetime counters.
type Stats struct {
	Health          int `json:"health"`
	MaxHealth       int `json:"max_health"`
	Strength        int `json:"strength"`
	Mana            int `json:"mana"`
	MaxMana         int `json:"max_mana"`
	QuestsCompleted int `json:"quests_completed"`
	TotalExperience int `json:"total_experience"`
	TotalGold       int `json:"total_gold"`
}

// ActiveQuest is a quest accepted by a player but not yet completed.
type ActiveQuest struct {
	QuestID   int64     `json:"quest_id"`
	StartedAt time.Time `json:"started_at"`
	Progress  int       `json:"progress"`
}

// Roles.
const (
	RoleAdmin  = "admin"
	RolePlayer = "player"
)

// Starting values for a freshly registered player.
const (
	StartingLevel    = 1
	StartingHealth   = 100
	StartingStrength = 10
	StartingMana     = 50
)

// ExperiencePerLevel scales the experience needed to leave a level.
const ExperiencePerLevel = 100

// PasswordMinLength is the shortest accepted password.
const PasswordMinLength = 6

// NewPlayer returns a player with default stats and empty collections.
func NewPlayer(name, email, passwordHash, role string) *Player {
	return &Player{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Level:        StartingLevel,
		Stats: Stats{
			Health:    StartingHealth,
			MaxHealth: StartingHealth,
			Strength:  StartingStrength,
			Mana:      StartingMana,
			MaxMana:   StartingMana,
		},
		Inventory:       Inventory{},
		ActiveQuests:    []ActiveQuest{},
		CompletedQuests: []int64{},
	}
}

// LevelThreshold returns the experience at which a player of the given level levels up.
func LevelThreshold(level int) int {
	return level * ExperiencePerLevel
}

// ExperienceToNextLevel returns the threshold for the player's current level.
func (p *Player) ExperienceToNextLevel() int {
	return LevelThreshold(p.Level)
}

// ActiveQuest returns the active entry for questID, or nil.
func (p *Player) ActiveQuest(questID int64) *ActiveQuest {
	for i := range p.ActiveQuests {
		if p.ActiveQuests[i].QuestID == questID {
			return &p.ActiveQuests[i]
		}
	}
	return nil
}

// IsQuestActive reports whether questID is in the player's active quests.
func (p *Player) IsQuestActive(questID int64) bool {
	return p.ActiveQuest(questID) != nil
}

// HasCompleted reports whether questID is in the player's completed quests.
func (p *Player) HasCompleted(questID int64) bool {
	for _, id := range p.CompletedQuests {
		if id == questID {
			return true
		}
	}
	return false
}

// RemoveActiveQuest drops questID from the active quests. It reports whether
// an entry was removed.
func (p *Player) RemoveActiveQuest(questID int64) bool {
	for i, aq := range p.ActiveQuests {
		if aq.QuestID == questID {
			p.ActiveQuests = append(p.ActiveQuests[:i], p.ActiveQuests[i+1:]...)
			return true
		}
	}
	return false
}

// RoleAtLeast checks if role meets or exceeds the minimum required role.
func RoleAtLeast(role, minimum string) bool {
	levels := map[string]int{
		RoleAdmin:  2,
		RolePlayer: 1,
	}
	have, ok := levels[role]
	need, known := levels[minimum]
	return ok && known && have >= need
}

// ValidatePassword checks the password policy.
func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters", PasswordMinLength)
	}
	return nil
}
