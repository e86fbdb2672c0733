package spell

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// CooldownStrategy tracks when spells become castable again.
type CooldownStrategy interface {
	AddCooldown(sp *Spell)
	IsReady(sp *Spell) bool
	ClearCooldown(sp *Spell, alsoCategory bool)
	ClearCooldowns()
}

// Cooldown is one running cooldown. Category is zero for per-spell entries.
type Cooldown struct {
	SpellID  ID
	Category uint32
	Until    time.Time
}

type cooldownTable struct {
	now      func() time.Time
	spells   map[ID]time.Time
	category map[uint32]time.Time
}

func newCooldownTable(now func() time.Time) cooldownTable {
	if now == nil {
		now = time.Now
	}
	return cooldownTable{
		now:      now,
		spells:   make(map[ID]time.Time),
		category: make(map[uint32]time.Time),
	}
}

func (t *cooldownTable) add(sp *Spell, cd time.Duration) {
	now := t.now()
	if cd > 0 {
		t.spells[sp.ID] = now.Add(cd)
	}
	if sp.Category != 0 && sp.CategoryCooldownTime > 0 {
		t.category[sp.Category] = now.Add(time.Duration(sp.CategoryCooldownTime) * time.Millisecond)
	}
}

func (t *cooldownTable) isReady(sp *Spell) bool {
	now := t.now()
	if until, ok := t.spells[sp.ID]; ok {
		if now.Before(until) {
			return false
		}
		delete(t.spells, sp.ID)
	}
	if sp.Category != 0 {
		if until, ok := t.category[sp.Category]; ok {
			if now.Before(until) {
				return false
			}
			delete(t.category, sp.Category)
		}
	}
	return true
}

func (t *cooldownTable) clear(sp *Spell, alsoCategory bool) {
	delete(t.spells, sp.ID)
	if alsoCategory && sp.Category != 0 {
		delete(t.category, sp.Category)
	}
}

func (t *cooldownTable) clearAll() {
	clear(t.spells)
	clear(t.category)
}

// NPCCooldowns keeps cooldowns in memory only. CooldownFor may override the
// cooldown of individual spells, e.g. with randomized per-entry values.
type NPCCooldowns struct {
	cooldownTable
	CooldownFor func(sp *Spell) (time.Duration, bool)
}

func NewNPCCooldowns(now func() time.Time) *NPCCooldowns {
	return &NPCCooldowns{cooldownTable: newCooldownTable(now)}
}

func (c *NPCCooldowns) AddCooldown(sp *Spell) {
	cd := time.Duration(sp.CooldownTime) * time.Millisecond
	if c.CooldownFor != nil {
		if d, ok := c.CooldownFor(sp); ok {
			cd = d
		}
	}
	c.add(sp, cd)
}

func (c *NPCCooldowns) IsReady(sp *Spell) bool                     { return c.isReady(sp) }
func (c *NPCCooldowns) ClearCooldown(sp *Spell, alsoCategory bool) { c.clear(sp, alsoCategory) }
func (c *NPCCooldowns) ClearCooldowns()                            { c.clearAll() }

// CooldownStore persists player cooldowns.
type CooldownStore interface {
	LoadCooldowns(ctx context.Context, charID uint32) ([]Cooldown, error)
	SaveCooldowns(ctx context.Context, charID uint32, cds []Cooldown) error
}

// PlayerCooldowns keeps cooldowns in memory and writes them to a store
// when Save is called.
type PlayerCooldowns struct {
	cooldownTable
	charID uint32
	store  CooldownStore
	dirty  bool
}

func NewPlayerCooldowns(charID uint32, store CooldownStore, now func() time.Time) *PlayerCooldowns {
	return &PlayerCooldowns{cooldownTable: newCooldownTable(now), charID: charID, store: store}
}

func (c *PlayerCooldowns) AddCooldown(sp *Spell) {
	c.add(sp, time.Duration(sp.CooldownTime)*time.Millisecond)
	c.dirty = true
}

func (c *PlayerCooldowns) IsReady(sp *Spell) bool { return c.isReady(sp) }

func (c *PlayerCooldowns) ClearCooldown(sp *Spell, alsoCategory bool) {
	c.clear(sp, alsoCategory)
	c.dirty = true
}

func (c *PlayerCooldowns) ClearCooldowns() {
	c.clearAll()
	c.dirty = true
}

func (c *PlayerCooldowns) Dirty() bool    { return c.dirty }
func (c *PlayerCooldowns) CharID() uint32 { return c.charID }

// Snapshot returns the running cooldowns ordered by spell id then category.
func (c *PlayerCooldowns) Snapshot() []Cooldown {
	now := c.now()
	var out []Cooldown
	for id, until := range c.spells {
		if until.After(now) {
			out = append(out, Cooldown{SpellID: id, Until: until})
		}
	}
	for cat, until := range c.category {
		if until.After(now) {
			out = append(out, Cooldown{Category: cat, Until: until})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SpellID != out[j].SpellID {
			return out[i].SpellID < out[j].SpellID
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Load replaces the in-memory state with the stored cooldowns.
func (c *PlayerCooldowns) Load(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	cds, err := c.store.LoadCooldowns(ctx, c.charID)
	if err != nil {
		return fmt.Errorf("load cooldowns of %d: %w", c.charID, err)
	}
	c.clearAll()
	for _, cd := range cds {
		if cd.Category != 0 {
			c.category[cd.Category] = cd.Until
		} else {
			c.spells[cd.SpellID] = cd.Until
		}
	}
	c.dirty = false
	return nil
}

// Save writes the running cooldowns when something changed since the last save.
func (c *PlayerCooldowns) Save(ctx context.Context) error {
	if c.store == nil || !c.dirty {
		return nil
	}
	if err := c.store.SaveCooldowns(ctx, c.charID, c.Snapshot()); err != nil {
		return fmt.Errorf("save cooldowns of %d: %w", c.charID, err)
	}
	c.dirty = false
	return nil
}
