package unit

import (
	"errors"
	"time"

	"github.com/realmcore/server/internal/core/ecs"
	"github.com/realmcore/server/internal/spell"
)

// GhostSpellID is the aura players wear while released as a spirit.
const GhostSpellID spell.ID = 8326

var ErrHigherRankActive = errors.New("a higher rank of the aura is active")

type auraEffect struct {
	ctx       spell.AuraEffectContext
	handler   spell.AuraEffectHandler
	amplitude time.Duration
	sinceTick time.Duration
}

// Aura is an applied spell effect on a unit.
type Aura struct {
	Spell    *spell.Spell
	CasterID ecs.EntityID
	Owner    *Unit
	Charges  int

	duration time.Duration // zero lasts until removed
	elapsed  time.Duration
	effects  []*auraEffect
	procs    []*procHandler
	removed  bool
}

// Remaining is the time left, zero for auras without a duration.
func (a *Aura) Remaining() time.Duration {
	if a.duration <= 0 {
		return 0
	}
	return a.duration - a.elapsed
}

func (a *Aura) Duration() time.Duration { return a.duration }
func (a *Aura) IsRemoved() bool         { return a.removed }

// Value returns the rolled value of the effect with the given index.
func (a *Aura) Value(effectIndex int) int {
	for _, e := range a.effects {
		if e.ctx.Effect.Index == effectIndex {
			return e.ctx.Value
		}
	}
	return 0
}

// Auras is the aura collection of one unit.
type Auras struct {
	owner *Unit
	list  []*Aura
}

func newAuras(owner *Unit) *Auras {
	return &Auras{owner: owner}
}

func (as *Auras) Count() int { return len(as.list) }

// All returns a copy of the active auras in application order.
func (as *Auras) All() []*Aura {
	return append([]*Aura(nil), as.list...)
}

func (as *Auras) Get(id spell.ID) *Aura {
	for _, a := range as.list {
		if a.Spell.ID == id {
			return a
		}
	}
	return nil
}

func (as *Auras) Contains(id spell.ID) bool { return as.Get(id) != nil }

func (as *Auras) Ghost() *Aura { return as.Get(GhostSpellID) }

// rank is the 1-based rank of sp in its line, 0 without a line.
func rank(sp *spell.Spell) int {
	if sp.Line == nil {
		return 0
	}
	for i, r := range sp.Line.Spells() {
		if r == sp {
			return i + 1
		}
	}
	return 0
}

// conflicting returns the aura that sp would replace: the same spell or
// another rank of its line. Harmful auras only conflict with those of the
// same caster.
func (as *Auras) conflicting(sp *spell.Spell, casterID ecs.EntityID) *Aura {
	for _, a := range as.list {
		same := a.Spell == sp || (sp.Line != nil && a.Spell.Line == sp.Line)
		if !same {
			continue
		}
		if sp.HasHarmfulEffects && a.CasterID != casterID {
			continue
		}
		return a
	}
	return nil
}

// AppliedEffect is an aura effect with its rolled value.
type AppliedEffect struct {
	Effect *spell.Effect
	Value  int
}

// Apply adds an aura of sp cast by caster. An existing aura of the same
// spell line is replaced unless it has a higher rank, or the same rank and
// the spell may not override equal ranks.
func (as *Auras) Apply(sp *spell.Spell, caster *Unit, effects []AppliedEffect) (*Aura, error) {
	owner := as.owner
	var casterID ecs.EntityID
	var casterActor spell.Actor
	if caster != nil {
		casterID = caster.id
		casterActor = caster
	}

	if old := as.conflicting(sp, casterID); old != nil {
		oldRank, newRank := rank(old.Spell), rank(sp)
		if oldRank > newRank || (old.Spell != sp && oldRank == newRank && !sp.CanOverrideEqualAuraRank) {
			return nil, ErrHigherRankActive
		}
		as.Remove(old, false)
	}

	a := &Aura{
		Spell:    sp,
		CasterID: casterID,
		Owner:    owner,
		Charges:  sp.ProcCharges,
	}
	var dc spell.DurationCaster
	if caster != nil {
		dc = caster
	}
	if ms := sp.Duration(dc, owner); ms > 0 {
		a.duration = time.Duration(ms) * time.Millisecond
	}

	for _, ae := range effects {
		h := ae.Effect.CreateAuraHandler()
		if h == nil {
			continue
		}
		a.effects = append(a.effects, &auraEffect{
			ctx: spell.AuraEffectContext{
				Effect: ae.Effect,
				Caster: casterActor,
				Owner:  owner,
				Value:  ae.Value,
			},
			handler:   h,
			amplitude: time.Duration(ae.Effect.Amplitude) * time.Millisecond,
		})
	}

	as.list = append(as.list, a)
	for _, e := range a.effects {
		e.handler.Apply(&e.ctx)
	}
	owner.registerProcHandlers(a)
	return a, nil
}

// Remove takes a off its owner and reverts its effects.
func (as *Auras) Remove(a *Aura, cancelled bool) bool {
	if a == nil || a.removed {
		return false
	}
	for i, x := range as.list {
		if x == a {
			as.list = append(as.list[:i], as.list[i+1:]...)
			break
		}
	}
	a.removed = true
	for _, e := range a.effects {
		e.handler.Remove(&e.ctx, cancelled)
	}
	as.owner.unregisterProcHandlers(a)
	return true
}

// Cancel removes the aura of sp, if any.
func (as *Auras) Cancel(sp *spell.Spell) bool {
	return as.Remove(as.Get(sp.ID), true)
}

// RemoveWhere removes every aura matching pred and returns how many.
func (as *Auras) RemoveWhere(pred func(*Aura) bool, cancelled bool) int {
	n := 0
	for _, a := range as.All() {
		if pred(a) && as.Remove(a, cancelled) {
			n++
		}
	}
	return n
}

func (as *Auras) Clear() {
	as.RemoveWhere(func(*Aura) bool { return true }, false)
}

// Update advances every aura by dt: periodic effects tick once per elapsed
// amplitude and expired auras are removed.
func (as *Auras) Update(dt time.Duration) {
	for _, a := range as.All() {
		if a.removed {
			continue
		}
		for _, e := range a.effects {
			ph, ok := e.handler.(spell.PeriodicAuraHandler)
			if !ok || e.amplitude <= 0 {
				continue
			}
			e.sinceTick += dt
			for e.sinceTick >= e.amplitude && !a.removed {
				e.sinceTick -= e.amplitude
				ph.Tick(&e.ctx)
			}
		}
		if a.removed {
			continue
		}
		a.elapsed += dt
		if a.duration > 0 && a.elapsed >= a.duration {
			as.Remove(a, false)
		}
	}
}

// CancelAura implements spell.Owner.
func (u *Unit) CancelAura(sp *spell.Spell) bool { return u.Auras.Cancel(sp) }
