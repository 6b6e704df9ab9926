package progression

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/erazemk/algorithmia/internal/model"
)

// memoryRepo is an in-memory PlayerRepository with the same version semantics as the store.
type memoryRepo struct {
	mu      sync.Mutex
	players map[int64]*model.Player
	saves   int
	saveErr error
}

func newMemoryRepo(players ...*model.Player) *memoryRepo {
	r := &memoryRepo{players: map[int64]*model.Player{}}
	for _, p := range players {
		if p.Version == 0 {
			p.Version = 1
		}
		r.players[p.ID] = clonePlayer(p)
	}
	return r
}

// clonePlayer deep-copies p so the repo never shares state with the engine.
func clonePlayer(p *model.Player) *model.Player {
	c := *p
	c.Inventory = make(model.Inventory, len(p.Inventory))
	for id, qty := range p.Inventory {
		c.Inventory[id] = qty
	}
	c.ActiveQuests = append([]model.ActiveQuest(nil), p.ActiveQuests...)
	c.CompletedQuests = append([]int64(nil), p.CompletedQuests...)
	return &c
}

func (r *memoryRepo) LoadPlayer(_ context.Context, id int64) (*model.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return nil, nil
	}
	return clonePlayer(p), nil
}

func (r *memoryRepo) SavePlayer(_ context.Context, p *model.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	stored, ok := r.players[p.ID]
	if !ok || stored.Version != p.Version {
		return model.ErrConflict
	}
	p.Version++
	r.players[p.ID] = clonePlayer(p)
	r.saves++
	return nil
}

func (r *memoryRepo) get(id int64) *model.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clonePlayer(r.players[id])
}

// memoryCatalog is an in-memory Catalog.
type memoryCatalog struct {
	items  map[int64]*model.Item
	quests map[int64]*model.Quest
	err    error
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{items: map[int64]*model.Item{}, quests: map[int64]*model.Quest{}}
}

func (c *memoryCatalog) addItem(item model.Item) *model.Item {
	c.items[item.ID] = &item
	return &item
}

func (c *memoryCatalog) addQuest(q model.Quest) *model.Quest {
	c.quests[q.ID] = &q
	return &q
}

func (c *memoryCatalog) Item(_ context.Context, id int64) (*model.Item, error) {
	if c.err != nil {
		return nil, c.err
	}
	item, ok := c.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (c *memoryCatalog) Quest(_ context.Context, id int64) (*model.Quest, error) {
	if c.err != nil {
		return nil, c.err
	}
	q, ok := c.quests[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (c *memoryCatalog) AvailableQuests(_ context.Context) ([]model.Quest, error) {
	if c.err != nil {
		return nil, c.err
	}
	var out []model.Quest
	for _, q := range c.quests {
		if q.IsActive && q.Status == model.QuestStatusAvailable {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Requirements.MinLevel != out[j].Requirements.MinLevel {
			return out[i].Requirements.MinLevel < out[j].Requirements.MinLevel
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

var errDiskFull = errors.New("disk full")

const (
	potionID int64 = 1
	swordID  int64 = 2
	coinID   int64 = 3
	shieldID int64 = 4

	firstQuestID  int64 = 10
	goblinQuestID int64 = 11
	stoneQuestID  int64 = 12
	retiredID     int64 = 13
	brokenID      int64 = 14
	badLevelID    int64 = 15
)

// fixture builds a catalog modelled on the default seed plus a few broken quests.
func fixture() *memoryCatalog {
	c := newMemoryCatalog()
	c.addItem(model.Item{ID: potionID, Name: "Health Potion", Type: model.ItemTypePotion, Effect: model.ItemEffect{Health: 50}})
	c.addItem(model.Item{ID: swordID, Name: "Flaming Sword", Type: model.ItemTypeWeapon, Effect: model.ItemEffect{Strength: 15}})
	c.addItem(model.Item{ID: coinID, Name: "Ancient Coin", Type: model.ItemTypeQuest})
	c.addItem(model.Item{ID: shieldID, Name: "Wooden Shield", Type: model.ItemTypeArmor, Effect: model.ItemEffect{Strength: 10}})

	c.addQuest(model.Quest{ID: firstQuestID, Title: "The First Adventure", Status: model.QuestStatusAvailable, IsActive: true,
		Requirements: model.Requirements{MinLevel: 1},
		Rewards:      model.Rewards{Experience: 150, Gold: 50, Items: []int64{potionID}}})
	c.addQuest(model.Quest{ID: goblinQuestID, Title: "Goblin Hunt", Status: model.QuestStatusAvailable, IsActive: true,
		Requirements: model.Requirements{MinLevel: 3},
		Rewards:      model.Rewards{Experience: 300, Gold: 100, Items: []int64{swordID, potionID}}})
	c.addQuest(model.Quest{ID: stoneQuestID, Title: "The Ancestral Stone", Status: model.QuestStatusAvailable, IsActive: true,
		Requirements: model.Requirements{MinLevel: 1, RequiredItems: []int64{coinID}},
		Rewards:      model.Rewards{Experience: 500, Gold: 200}})
	c.addQuest(model.Quest{ID: retiredID, Title: "Retired", Status: model.QuestStatusAvailable, IsActive: false,
		Requirements: model.Requirements{MinLevel: 1}})
	c.addQuest(model.Quest{ID: brokenID, Title: "Broken Rewards", Status: model.QuestStatusAvailable, IsActive: true,
		Requirements: model.Requirements{MinLevel: 1},
		Rewards:      model.Rewards{Experience: 100, Gold: 10, Items: []int64{potionID, 999}}})
	c.addQuest(model.Quest{ID: badLevelID, Title: "Zero Level", Status: model.QuestStatusAvailable, IsActive: true,
		Requirements: model.Requirements{MinLevel: 0}})
	return c
}

func newPlayer(id int64) *model.Player {
	p := model.NewPlayer("Aria", "aria@example.com", "hash", model.RolePlayer)
	p.ID = id
	p.Version = 1
	return p
}
