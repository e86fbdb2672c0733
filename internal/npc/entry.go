// Package npc holds the NPC templates, the NPCs spawned from them and the
// brains that drive them.
package npc

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/data"
	"github.com/realmcore/server/internal/spell"
)

// BrainCreator builds the brain of a freshly created NPC.
type BrainCreator func(n *NPC) Brain

// cooldownRange is a per-entry cooldown override. A zero max means a fixed
// cooldown of min.
type cooldownRange struct {
	min, max time.Duration
}

func (r cooldownRange) roll(rnd *rand.Rand) time.Duration {
	if r.max <= r.min || rnd == nil {
		return r.min
	}
	return r.min + time.Duration(rnd.Int63n(int64(r.max-r.min)+1))
}

// Entry is the template every NPC of one kind is created from.
type Entry struct {
	ID          uint32
	Name        string
	Title       string
	MinLevel    int
	MaxLevel    int
	MaxHealth   int
	BasePower   int
	PowerType   constants.PowerType
	Class       constants.ClassID
	DisplayIDs  []uint32
	Faction     constants.FactionTemplateID
	NPCFlags    constants.NPCFlags
	UnitFlags   constants.UnitFlags
	Armor       int
	Resistances [constants.DamageSchoolCount - 1]int
	Stats       [constants.StatCount]int
	MinDamage   float32
	MaxDamage   float32
	AttackTime  int // ms
	MapID       uint32
	BrainName   string

	// Spells are cast by the brain in list order.
	Spells       []*spell.Spell
	BrainCreator BrainCreator

	mgr       *Manager
	cooldowns map[spell.ID]cooldownRange
}

func newEntry(mgr *Manager, e *data.NpcEntry) *Entry {
	entry := &Entry{
		ID:          e.ID,
		Name:        e.Name,
		Title:       e.Title,
		MinLevel:    max(e.MinLevel, 1),
		MaxLevel:    max(e.MaxLevel, e.MinLevel, 1),
		MaxHealth:   max(e.MaxHealth, 1),
		BasePower:   e.BasePower,
		PowerType:   constants.PowerType(e.PowerType),
		Class:       constants.ClassID(e.Class),
		DisplayIDs:  e.DisplayIDs,
		Faction:     constants.FactionTemplateID(e.Faction),
		NPCFlags:    constants.NPCFlags(e.NPCFlags),
		UnitFlags:   constants.UnitFlags(e.UnitFlags),
		Armor:       e.Armor,
		Resistances: e.Resistances,
		Stats:       e.Stats,
		MinDamage:   e.MinDamage,
		MaxDamage:   e.MaxDamage,
		AttackTime:  e.AttackTime,
		MapID:       e.Map,
		BrainName:   e.Brain,
		mgr:         mgr,
		cooldowns:   make(map[spell.ID]cooldownRange),
	}
	if entry.AttackTime <= 0 {
		entry.AttackTime = 2000
	}
	return entry
}

func (e *Entry) String() string { return fmt.Sprintf("%s (%d)", e.Name, e.ID) }

// AddSpell appends the spells with the given ids to the entry's list.
func (e *Entry) AddSpell(ids ...spell.ID) error {
	for _, id := range ids {
		sp := e.mgr.spells.Get(id)
		if sp == nil {
			return fmt.Errorf("add spell %d to %s: %w", id, e, spell.ErrUnknownSpell)
		}
		e.AddSpells(sp)
	}
	return nil
}

// AddSpells appends spells that are not in the list yet.
func (e *Entry) AddSpells(sps ...*spell.Spell) {
	for _, sp := range sps {
		if !e.HasSpell(sp.ID) {
			e.Spells = append(e.Spells, sp)
		}
	}
}

func (e *Entry) HasSpell(id spell.ID) bool {
	for _, sp := range e.Spells {
		if sp.ID == id {
			return true
		}
	}
	return false
}

// SetCooldown overrides the cooldown of a spell for NPCs of this entry.
func (e *Entry) SetCooldown(id spell.ID, d time.Duration) {
	e.cooldowns[id] = cooldownRange{min: d}
}

// SetCooldownRange makes NPCs of this entry roll the cooldown of a spell
// between min and max on every cast.
func (e *Entry) SetCooldownRange(id spell.ID, min, max time.Duration) {
	e.cooldowns[id] = cooldownRange{min: min, max: max}
}

// Cooldown rolls the overridden cooldown of sp, if any.
func (e *Entry) Cooldown(sp *spell.Spell, rnd *rand.Rand) (time.Duration, bool) {
	r, ok := e.cooldowns[sp.ID]
	if !ok {
		return 0, false
	}
	return r.roll(rnd), true
}

// RollLevel picks a level in the entry's range.
func (e *Entry) RollLevel(rnd *rand.Rand) int {
	if e.MaxLevel <= e.MinLevel || rnd == nil {
		return e.MinLevel
	}
	return e.MinLevel + rnd.Intn(e.MaxLevel-e.MinLevel+1)
}

// DisplayID picks one of the entry's display ids, 0 without any.
func (e *Entry) DisplayID(rnd *rand.Rand) uint32 {
	switch len(e.DisplayIDs) {
	case 0:
		return 0
	case 1:
		return e.DisplayIDs[0]
	}
	if rnd == nil {
		return e.DisplayIDs[0]
	}
	return e.DisplayIDs[rnd.Intn(len(e.DisplayIDs))]
}

// Dump writes the entry and its spell list.
func (e *Entry) Dump(w io.Writer, indent string) {
	fmt.Fprintf(w, "%sNPC: %s\n", indent, e)
	in := indent + "\t"
	if e.Title != "" {
		fmt.Fprintf(w, "%sTitle: %s\n", in, e.Title)
	}
	fmt.Fprintf(w, "%sLevel: %d-%d\n", in, e.MinLevel, e.MaxLevel)
	fmt.Fprintf(w, "%sHealth: %d\n", in, e.MaxHealth)
	if e.BasePower > 0 {
		fmt.Fprintf(w, "%sPower: %d %s\n", in, e.BasePower, e.PowerType)
	}
	fmt.Fprintf(w, "%sFaction: %d\n", in, e.Faction)
	if e.MapID != 0 {
		fmt.Fprintf(w, "%sMap: %d\n", in, e.MapID)
	}
	for _, sp := range e.Spells {
		cd := ""
		if r, ok := e.cooldowns[sp.ID]; ok {
			if r.max > r.min {
				cd = fmt.Sprintf(" [cooldown %s-%s]", r.min, r.max)
			} else {
				cd = fmt.Sprintf(" [cooldown %s]", r.min)
			}
		}
		fmt.Fprintf(w, "%sSpell: %s%s\n", in, sp, cd)
	}
}
