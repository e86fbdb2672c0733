package spell

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Owner is the unit a Collection belongs to.
type Owner interface {
	TriggerSelf(sp *Spell) error
	CancelAura(sp *Spell) bool
}

// Collection is the set of spells a unit knows plus its cooldowns.
type Collection struct {
	CooldownStrategy

	owner  Owner
	spells map[ID]*Spell
	log    *zap.Logger
}

func NewCollection(owner Owner, cd CooldownStrategy, log *zap.Logger) *Collection {
	if log == nil {
		log = zap.NewNop()
	}
	if cd == nil {
		cd = NewNPCCooldowns(nil)
	}
	return &Collection{
		CooldownStrategy: cd,
		owner:            owner,
		spells:           make(map[ID]*Spell),
		log:              log,
	}
}

// AddSpellByID looks id up in h and adds it.
func (c *Collection) AddSpellByID(h *Handler, id ID) error {
	sp := h.Get(id)
	if sp == nil {
		return fmt.Errorf("add spell %d: %w", id, ErrUnknownSpell)
	}
	c.AddSpell(sp)
	return nil
}

// AddSpell adds sp. Passive spells are cast on the owner right away and
// additionally taught spells are added too.
func (c *Collection) AddSpell(sp *Spell) {
	if _, ok := c.spells[sp.ID]; ok {
		return
	}
	c.spells[sp.ID] = sp
	c.onAdd(sp)
}

func (c *Collection) AddSpells(sps ...*Spell) {
	for _, sp := range sps {
		c.AddSpell(sp)
	}
}

// OnlyAdd adds sp without any side effects.
func (c *Collection) OnlyAdd(sp *Spell) {
	c.spells[sp.ID] = sp
}

func (c *Collection) onAdd(sp *Spell) {
	if sp.IsPassive && c.owner != nil {
		if err := c.owner.TriggerSelf(sp); err != nil {
			c.log.Warn("passive spell not applied", zap.Uint32("spell_id", uint32(sp.ID)), zap.Error(err))
		}
	}
	for _, taught := range sp.AdditionallyTaughtSpells {
		c.AddSpell(taught)
	}
}

func (c *Collection) Contains(id ID) bool {
	_, ok := c.spells[id]
	return ok
}

func (c *Collection) Get(id ID) *Spell { return c.spells[id] }

// Remove drops the spell with the given id and cancels its passive aura.
func (c *Collection) Remove(id ID) bool {
	sp := c.spells[id]
	if sp == nil {
		return false
	}
	c.Replace(sp, nil)
	return true
}

// Replace removes old (if present) and adds replacement (if not nil).
func (c *Collection) Replace(old, replacement *Spell) {
	if old != nil {
		if _, ok := c.spells[old.ID]; ok {
			delete(c.spells, old.ID)
			if old.IsPassive && c.owner != nil {
				c.owner.CancelAura(old)
			}
		}
	}
	if replacement != nil {
		c.AddSpell(replacement)
	}
}

func (c *Collection) Clear() {
	for _, sp := range c.All() {
		c.Replace(sp, nil)
	}
}

func (c *Collection) Count() int      { return len(c.spells) }
func (c *Collection) HasSpells() bool { return len(c.spells) > 0 }

// All returns the spells ordered by id.
func (c *Collection) All() []*Spell {
	out := make([]*Spell, 0, len(c.spells))
	for _, sp := range c.spells {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
