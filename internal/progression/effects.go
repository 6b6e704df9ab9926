package progression

import (
	"fmt"
	"sync"

	"github.com/erazemk/algorithmia/internal/model"
)

// EffectResult describes what using an item did.
type EffectResult struct {
	Message     string `json:"message"`
	HealthDelta int    `json:"health_delta"`
}

// ItemEffect applies an item's effect to a player. Implementations mutate p
// in place; the engine handles the inventory decrement and persistence.
type ItemEffect interface {
	Apply(p *model.Player, item *model.Item) EffectResult
}

// EffectFunc adapts a function to ItemEffect.
type EffectFunc func(p *model.Player, item *model.Item) EffectResult

// Apply calls f.
func (f EffectFunc) Apply(p *model.Player, item *model.Item) EffectResult {
	return f(p, item)
}

// EffectRegistry maps item types to effects, with a generic fallback for
// types that have none registered.
type EffectRegistry struct {
	mu       sync.RWMutex
	effects  map[model.ItemType]ItemEffect
	fallback ItemEffect
}

// NewEffectRegistry returns a registry with the built-in potion and weapon effects.
func NewEffectRegistry() *EffectRegistry {
	r := &EffectRegistry{
		effects:  make(map[model.ItemType]ItemEffect),
		fallback: EffectFunc(genericEffect),
	}
	r.Register(model.ItemTypePotion, EffectFunc(potionEffect))
	r.Register(model.ItemTypeWeapon, EffectFunc(weaponEffect))
	return r
}

// Register sets the effect for an item type, replacing any previous one.
func (r *EffectRegistry) Register(t model.ItemType, effect ItemEffect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects[t] = effect
}

// Lookup returns the effect for t, or the generic fallback.
func (r *EffectRegistry) Lookup(t model.ItemType) ItemEffect {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if effect, ok := r.effects[t]; ok {
		return effect
	}
	return r.fallback
}

// potionEffect heals up to maxHealth and reports the health actually restored.
func potionEffect(p *model.Player, item *model.Item) EffectResult {
	before := p.Stats.Health
	p.Stats.Health = min(p.Stats.Health+item.Effect.Health, p.Stats.MaxHealth)
	if p.Stats.Health < before {
		p.Stats.Health = before
	}
	delta := p.Stats.Health - before
	return EffectResult{
		Message:     fmt.Sprintf("Health +%d HP", delta),
		HealthDelta: delta,
	}
}

func weaponEffect(_ *model.Player, item *model.Item) EffectResult {
	return EffectResult{Message: fmt.Sprintf("%s effect activated", item.Name)}
}

func genericEffect(_ *model.Player, _ *model.Item) EffectResult {
	return EffectResult{Message: "Item used"}
}
