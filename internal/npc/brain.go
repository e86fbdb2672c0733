package npc

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/spell"
	"github.com/realmcore/server/internal/unit"
)

// Brain decides what an NPC does every tick and reacts to combat events.
type Brain interface {
	unit.Listener
	Update(dt time.Duration)
}

// healBelowPct is the health percentage under which NPCs heal themselves.
const healBelowPct = 50

// MobBrain attacks whoever has the most threat. It casts the first ready
// spell of its entry and swings in melee otherwise.
type MobBrain struct {
	NPC        *NPC
	sinceSwing time.Duration
}

func NewMobBrain(n *NPC) Brain { return &MobBrain{NPC: n} }

func (b *MobBrain) Update(dt time.Duration) {
	n := b.NPC
	if !n.IsInCombat() {
		return
	}
	target := b.SelectTarget()
	if target == nil {
		n.LeaveCombat()
		return
	}

	b.sinceSwing += dt
	if b.CastReadySpell(target) {
		return
	}
	if b.sinceSwing >= b.swingTime() {
		b.sinceSwing = 0
		n.Strike(target)
	}
}

func (b *MobBrain) swingTime() time.Duration {
	return time.Duration(b.NPC.AttackTime()) * time.Millisecond
}

// SelectTarget targets the living unit with the most threat. Dead or
// vanished units are dropped from the threat list.
func (b *MobBrain) SelectTarget() *unit.Unit {
	n := b.NPC
	lookup := n.Context().Lookup
	threat := n.Threat()
	for threat.Len() > 0 {
		id := threat.Top()
		var t *unit.Unit
		if lookup != nil {
			t = lookup(id)
		}
		if t != nil && t.IsAlive() && t.IsInWorld() {
			n.SetTarget(t)
			return t
		}
		threat.Remove(id)
	}
	n.SetTarget(nil)
	return nil
}

// CastReadySpell casts the first spell of the entry that is ready and
// useful right now. Harmful spells go at target, the others at the NPC.
func (b *MobBrain) CastReadySpell(target *unit.Unit) bool {
	n := b.NPC
	for _, sp := range n.Entry.Spells {
		if sp.IsPassive || !n.Spells.IsReady(sp) {
			continue
		}
		t := target
		if !sp.HasHarmfulEffects {
			if !b.wantsBeneficial(sp) {
				continue
			}
			t = n.Unit
		}
		err := n.Cast(sp, t)
		if err == nil {
			return true
		}
		if !errors.Is(err, unit.ErrNotEnoughPower) {
			n.Context().Logger().Debug("npc cast failed",
				zap.Uint32("npc", n.Entry.ID), zap.Uint32("spell_id", uint32(sp.ID)), zap.Error(err))
		}
	}
	return false
}

func (b *MobBrain) wantsBeneficial(sp *spell.Spell) bool {
	n := b.NPC
	if sp.IsHealSpell {
		return n.HealthPct() < healBelowPct
	}
	return !n.Auras.Contains(sp.ID)
}

func (b *MobBrain) OnEnterCombat(attacker *unit.Unit) {
	if attacker != nil && b.NPC.Target() == nil {
		b.NPC.SetTarget(attacker)
	}
	// the first swing goes out on the next tick
	b.sinceSwing = b.swingTime()
}

func (b *MobBrain) OnLeaveCombat() {
	b.sinceSwing = 0
}

func (b *MobBrain) OnDamaged(*unit.Unit, int) {}

func (b *MobBrain) OnKilled(*unit.Unit) {
	b.sinceSwing = 0
}
