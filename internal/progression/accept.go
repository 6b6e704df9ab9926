package progression

import (
	"context"
	"fmt"

	"github.com/erazemk/algorithmia/internal/logger"
	"github.com/erazemk/algorithmia/internal/metrics"
	"github.com/erazemk/algorithmia/internal/model"
)

// AcceptResult is returned by AcceptQuest.
type AcceptResult struct {
	Quest        *model.Quest        `json:"quest"`
	RewardItems  []model.ItemRef     `json:"reward_items"`
	ActiveQuests []model.ActiveQuest `json:"active_quests"`
}

// AcceptQuest adds questID to the player's active quests.
//
// Preconditions are checked in order and the first failure is returned:
// the quest exists, is active, has a sane minimum level, the player meets it,
// the quest is neither active nor completed for the player, and (when
// enforcement is on) the player holds every required item.
func (e *Engine) AcceptQuest(ctx context.Context, playerID, questID int64) (*AcceptResult, error) {
	var quest *model.Quest

	p, err := e.mutate(ctx, playerID, func(p *model.Player) (bool, error) {
		q, err := e.quest(ctx, questID)
		if err != nil {
			return false, err
		}
		quest = q

		if !q.IsActive {
			return false, fmt.Errorf("%w: %q", model.ErrQuestUnavailable, q.Title)
		}
		if q.Requirements.MinLevel < 1 {
			return false, fmt.Errorf("%w: quest %d has min level %d", model.ErrInvalidQuestConfig, q.ID, q.Requirements.MinLevel)
		}
		if p.Level < q.Requirements.MinLevel {
			return false, fmt.Errorf("%w: required %d, have %d", model.ErrInsufficientLevel, q.Requirements.MinLevel, p.Level)
		}
		if p.IsQuestActive(q.ID) {
			return false, fmt.Errorf("%w: %q", model.ErrAlreadyActive, q.Title)
		}
		if p.HasCompleted(q.ID) {
			return false, fmt.Errorf("%w: %q", model.ErrAlreadyCompleted, q.Title)
		}
		if e.enforceRequiredItems {
			var missing []int64
			for _, id := range q.Requirements.RequiredItems {
				if p.Inventory.Quantity(id) <= 0 {
					missing = append(missing, id)
				}
			}
			if len(missing) > 0 {
				return false, fmt.Errorf("%w: %v", model.ErrMissingRequiredItems, missing)
			}
		}

		p.ActiveQuests = append(p.ActiveQuests, model.ActiveQuest{
			QuestID:   q.ID,
			StartedAt: e.now().UTC(),
		})
		return true, nil
	})
	if err != nil {
		return nil, rejected(ctx, "accept_quest", err)
	}

	metrics.QuestsAccepted.Inc()
	logger.FromContext(ctx).Info("quest accepted", "player_id", playerID, "quest_id", questID)

	return &AcceptResult{
		Quest:        quest,
		RewardItems:  e.itemRefs(ctx, quest.Rewards.Items),
		ActiveQuests: p.ActiveQuests,
	}, nil
}

// itemRefs resolves ids to name references, skipping ids that no longer resolve.
func (e *Engine) itemRefs(ctx context.Context, ids []int64) []model.ItemRef {
	refs := make([]model.ItemRef, 0, len(ids))
	for _, id := range ids {
		item, err := e.catalog.Item(ctx, id)
		if err != nil || item == nil {
			logger.FromContext(ctx).Warn("quest item unresolved", "item_id", id, "error", err)
			continue
		}
		refs = append(refs, model.ItemRef{ID: item.ID, Name: item.Name, Type: item.Type})
	}
	return refs
}
