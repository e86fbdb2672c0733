package unit

import (
	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/core/ecs"
	"github.com/realmcore/server/internal/spell"
)

// ThreatList accumulates the threat other units generated against an NPC
// and caches the top entry. Game loop only, no locks.
type ThreatList struct {
	threat map[ecs.EntityID]int
	top    ecs.EntityID
}

func NewThreatList() *ThreatList {
	return &ThreatList{threat: make(map[ecs.EntityID]int)}
}

// Add accumulates amount for id and switches the top entry when id passes it.
func (t *ThreatList) Add(id ecs.EntityID, amount int) {
	if amount <= 0 || id.IsZero() {
		return
	}
	t.threat[id] += amount
	if t.top.IsZero() {
		t.top = id
		return
	}
	if id != t.top && t.threat[id] > t.threat[t.top] {
		t.top = id
	}
}

// Top returns the entry with the most threat, zero when empty.
func (t *ThreatList) Top() ecs.EntityID {
	if !t.top.IsZero() {
		return t.top
	}
	best := -1
	for id, v := range t.threat {
		if v > best || (v == best && id < t.top) {
			best = v
			t.top = id
		}
	}
	return t.top
}

func (t *ThreatList) Get(id ecs.EntityID) int { return t.threat[id] }

// Remove drops id, e.g. when it died or left the world.
func (t *ThreatList) Remove(id ecs.EntityID) {
	delete(t.threat, id)
	if t.top == id {
		t.top = 0
	}
}

func (t *ThreatList) Clear() {
	clear(t.threat)
	t.top = 0
}

func (t *ThreatList) Len() int { return len(t.threat) }

// Total is the sum of all threat, used to split experience.
func (t *ThreatList) Total() int {
	total := 0
	for _, v := range t.threat {
		total += v
	}
	return total
}

func (u *Unit) Threat() *ThreatList { return u.threat }

// ModThreat changes the percent of threat generated with the given schools.
func (u *Unit) ModThreat(schools []constants.DamageSchool, delta int) {
	for _, s := range schools {
		u.threatMods[s] += delta
	}
}

func (u *Unit) ThreatMod(school constants.DamageSchool) int { return u.threatMods[school] }

// GenerateThreat returns the threat caused by amount of the given school.
func (u *Unit) GenerateThreat(school constants.DamageSchool, amount int) int {
	if mod := u.threatMods[school]; mod != 0 {
		amount += amount * mod / 100
	}
	if amount < 0 {
		return 0
	}
	return amount
}

// spellModifier is an active flat or percent modifier aura effect.
type spellModifier struct {
	effect  *spell.Effect
	value   int
	percent bool
}

func (u *Unit) AddSpellModifier(e *spell.Effect, value int, percent bool) {
	u.spellMods = append(u.spellMods, spellModifier{effect: e, value: value, percent: percent})
}

func (u *Unit) RemoveSpellModifier(e *spell.Effect) {
	for i, m := range u.spellMods {
		if m.effect == e {
			u.spellMods = append(u.spellMods[:i], u.spellMods[i+1:]...)
			return
		}
	}
}

// ApplySpellModifier applies the modifiers of type t that affect sp: flat
// ones first, then the summed percent.
func (u *Unit) ApplySpellModifier(t spell.ModifierType, sp *spell.Spell, value int) int {
	if sp == nil || len(u.spellMods) == 0 {
		return value
	}
	flat, pct := 0, 0
	for _, m := range u.spellMods {
		if spell.ModifierType(m.effect.MiscValue) != t || !m.effect.Affects(sp) {
			continue
		}
		if m.percent {
			pct += m.value
		} else {
			flat += m.value
		}
	}
	value += flat
	if pct != 0 {
		value += value * pct / 100
	}
	return value
}
