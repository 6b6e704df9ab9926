package progression

import (
	"context"

	"github.com/erazemk/algorithmia/internal/logger"
	"github.com/erazemk/algorithmia/internal/metrics"
	"github.com/erazemk/algorithmia/internal/model"
)

// AbandonResult is returned by AbandonQuest.
type AbandonResult struct {
	Abandoned    bool                `json:"abandoned"`
	ActiveQuests []model.ActiveQuest `json:"active_quests"`
}

// AbandonQuest drops questID from the player's active quests without penalty.
// Abandoning a quest that is not active is a no-op and writes nothing.
// Completed quests are never affected.
func (e *Engine) AbandonQuest(ctx context.Context, playerID, questID int64) (*AbandonResult, error) {
	var abandoned bool

	p, err := e.mutate(ctx, playerID, func(p *model.Player) (bool, error) {
		abandoned = p.RemoveActiveQuest(questID)
		return abandoned, nil
	})
	if err != nil {
		return nil, rejected(ctx, "abandon_quest", err)
	}

	if abandoned {
		metrics.QuestsAbandoned.Inc()
		logger.FromContext(ctx).Info("quest abandoned", "player_id", playerID, "quest_id", questID)
	}

	return &AbandonResult{Abandoned: abandoned, ActiveQuests: p.ActiveQuests}, nil
}
