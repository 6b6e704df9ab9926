package progression

import (
	"context"
	"time"

	"github.com/erazemk/algorithmia/internal/model"
)

// ProfileView is the full player snapshot with catalog names resolved.
type ProfileView struct {
	ID                    int64                  `json:"id"`
	Name                  string                 `json:"name"`
	Email                 string                 `json:"email"`
	Role                  string                 `json:"role"`
	Level                 int                    `json:"level"`
	Experience            int                    `json:"experience"`
	ExperienceToNextLevel int                    `json:"experience_to_next_level"`
	Gold                  int                    `json:"gold"`
	Stats                 model.Stats            `json:"stats"`
	Inventory             []model.InventoryEntry `json:"inventory"`
	ActiveQuests          []ActiveQuestView      `json:"active_quests"`
	CompletedQuests       []model.QuestRef       `json:"completed_quests"`
	CreatedAt             time.Time              `json:"created_at"`
}

// ActiveQuestView is an active quest with its title.
type ActiveQuestView struct {
	QuestID   int64     `json:"quest_id"`
	Title     string    `json:"title"`
	StartedAt time.Time `json:"started_at"`
	Progress  int       `json:"progress"`
}

// Profile returns the player's enriched snapshot. It takes no lock; a
// concurrent mutation is either fully visible or not at all.
func (e *Engine) Profile(ctx context.Context, playerID int64) (*ProfileView, error) {
	p, err := e.loadPlayer(ctx, playerID)
	if err != nil {
		return nil, rejected(ctx, "profile", err)
	}
	return e.profileOf(ctx, p), nil
}

func (e *Engine) profileOf(ctx context.Context, p *model.Player) *ProfileView {
	view := &ProfileView{
		ID:                    p.ID,
		Name:                  p.Name,
		Email:                 p.Email,
		Role:                  p.Role,
		Level:                 p.Level,
		Experience:            p.Experience,
		ExperienceToNextLevel: p.ExperienceToNextLevel(),
		Gold:                  p.Gold,
		Stats:                 p.Stats,
		Inventory:             e.inventoryEntries(ctx, p.Inventory),
		ActiveQuests:          make([]ActiveQuestView, 0, len(p.ActiveQuests)),
		CompletedQuests:       make([]model.QuestRef, 0, len(p.CompletedQuests)),
		CreatedAt:             p.CreatedAt,
	}

	for _, aq := range p.ActiveQuests {
		view.ActiveQuests = append(view.ActiveQuests, ActiveQuestView{
			QuestID:   aq.QuestID,
			Title:     e.questTitle(ctx, aq.QuestID),
			StartedAt: aq.StartedAt,
			Progress:  aq.Progress,
		})
	}
	for _, id := range p.CompletedQuests {
		view.CompletedQuests = append(view.CompletedQuests, model.QuestRef{ID: id, Title: e.questTitle(ctx, id)})
	}
	return view
}

func (e *Engine) questTitle(ctx context.Context, id int64) string {
	q, err := e.catalog.Quest(ctx, id)
	if err != nil || q == nil {
		return ""
	}
	return q.Title
}

// AvailableQuest is a listed quest with its required and reward item names resolved.
type AvailableQuest struct {
	model.Quest
	RequiredItems []model.ItemRef `json:"required_items"`
	RewardItems   []model.ItemRef `json:"reward_items"`
}

// ListAvailableQuests returns the quests open for acceptance, easiest first.
func (e *Engine) ListAvailableQuests(ctx context.Context) ([]AvailableQuest, error) {
	quests, err := e.catalog.AvailableQuests(ctx)
	if err != nil {
		return nil, rejected(ctx, "list_quests", wrapPersistence(err))
	}
	out := make([]AvailableQuest, 0, len(quests))
	for _, q := range quests {
		out = append(out, AvailableQuest{
			Quest:         q,
			RequiredItems: e.itemRefs(ctx, q.Requirements.RequiredItems),
			RewardItems:   e.itemRefs(ctx, q.Rewards.Items),
		})
	}
	return out, nil
}
