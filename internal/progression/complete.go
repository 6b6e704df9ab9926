package progression

import (
	"context"
	"fmt"

	"github.com/erazemk/algorithmia/internal/logger"
	"github.com/erazemk/algorithmia/internal/metrics"
	"github.com/erazemk/algorithmia/internal/model"
)

// Summary is the player's progression state after a transition.
type Summary struct {
	Level                 int         `json:"level"`
	Experience            int         `json:"experience"`
	ExperienceToNextLevel int         `json:"experience_to_next_level"`
	Gold                  int         `json:"gold"`
	Stats                 model.Stats `json:"stats"`
}

// CompletionResult is returned by CompleteQuest.
type CompletionResult struct {
	Rewards []string      `json:"rewards"`
	Summary Summary       `json:"player"`
	Player  *model.Player `json:"-"`
	Quest   *model.Quest  `json:"completed_quest"`
}

// CompleteQuest grants the quest's rewards and moves it from active to completed.
//
// The quest must exist, be active in the catalog and in the player's active
// quests, and not already be completed. Every reward item must resolve before
// anything is applied, so a broken quest leaves the player untouched.
func (e *Engine) CompleteQuest(ctx context.Context, playerID, questID int64) (*CompletionResult, error) {
	var (
		quest     *model.Quest
		breakdown []string
		levels    int
	)

	p, err := e.mutate(ctx, playerID, func(p *model.Player) (bool, error) {
		q, err := e.quest(ctx, questID)
		if err != nil {
			return false, err
		}
		quest = q

		if !q.IsActive {
			return false, fmt.Errorf("%w: %q", model.ErrQuestUnavailable, q.Title)
		}
		if !p.IsQuestActive(q.ID) {
			return false, fmt.Errorf("%w: %q", model.ErrNotActive, q.Title)
		}
		if p.HasCompleted(q.ID) {
			return false, fmt.Errorf("%w: %q", model.ErrAlreadyCompleted, q.Title)
		}

		rewardItems := make([]*model.Item, 0, len(q.Rewards.Items))
		for _, id := range q.Rewards.Items {
			item, err := e.item(ctx, id)
			if err != nil {
				return false, err
			}
			if item == nil {
				return false, fmt.Errorf("%w: quest %d rewards unknown item %d", model.ErrInvalidQuestConfig, q.ID, id)
			}
			rewardItems = append(rewardItems, item)
		}

		breakdown, levels = applyRewards(p, q, rewardItems)
		return true, nil
	})
	if err != nil {
		return nil, rejected(ctx, "complete_quest", err)
	}

	metrics.QuestsCompleted.Inc()
	metrics.LevelsGained.Add(float64(levels))
	metrics.GoldAwarded.Add(float64(quest.Rewards.Gold))
	logger.FromContext(ctx).Info("quest completed",
		"player_id", playerID, "quest_id", questID, "level", p.Level, "levels_gained", levels)

	return &CompletionResult{
		Rewards: breakdown,
		Summary: summarize(p),
		Player:  p,
		Quest:   quest,
	}, nil
}

// applyRewards mutates p with the quest's rewards and returns the
// human-readable breakdown and the number of levels gained.
func applyRewards(p *model.Player, q *model.Quest, items []*model.Item) ([]string, int) {
	breakdown := []string{}

	oldLevel := p.Level
	levels := ApplyExperience(p, q.Rewards.Experience)
	if levels > 0 {
		breakdown = append(breakdown, fmt.Sprintf("Level %d -> %d", oldLevel, p.Level))
	}
	if q.Rewards.Experience > 0 {
		breakdown = append(breakdown, fmt.Sprintf("+%d XP", q.Rewards.Experience))
	}

	if q.Rewards.Gold > 0 {
		p.Gold += q.Rewards.Gold
		breakdown = append(breakdown, fmt.Sprintf("+%d gold", q.Rewards.Gold))
	}

	for _, item := range items {
		p.Inventory.Add(item.ID, 1)
		breakdown = append(breakdown, "Received "+item.Name)
	}

	p.RemoveActiveQuest(q.ID)
	p.CompletedQuests = append(p.CompletedQuests, q.ID)

	p.Stats.QuestsCompleted++
	p.Stats.TotalExperience += q.Rewards.Experience
	p.Stats.TotalGold += q.Rewards.Gold

	return breakdown, levels
}

func summarize(p *model.Player) Summary {
	return Summary{
		Level:                 p.Level,
		Experience:            p.Experience,
		ExperienceToNextLevel: p.ExperienceToNextLevel(),
		Gold:                  p.Gold,
		Stats:                 p.Stats,
	}
}
