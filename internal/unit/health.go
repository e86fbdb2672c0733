package unit

import (
	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/core/ecs"
	"github.com/realmcore/server/internal/core/event"
	"github.com/realmcore/server/internal/spell"
)

func (u *Unit) Health() int   { return int(u.fields.UInt32(FieldHealth)) }
func (u *Unit) IsAlive() bool { return u.Health() > 0 }

// SetHealth clamps v to [0, MaxHealth]. Dropping to 0 kills the unit and
// rising from 0 resurrects a dead one.
func (u *Unit) SetHealth(v int) {
	if max := u.MaxHealth(); v > max {
		v = max
	}
	if v < 0 {
		v = 0
	}
	old := u.Health()
	if v == old {
		return
	}

	u.fields.SetUInt32(FieldHealth, uint32(v))
	event.Emit(u.ctx.Bus, event.HealthChanged{Unit: u.id, Old: old, New: v})
	if v == 0 {
		u.die()
		return
	}

	u.updateHealthAuraState()
	if old == 0 && u.DynamicFlags()&constants.DynFlagDead != 0 {
		u.DecMechanicCount(constants.MechanicRooted)
		if ghost := u.Auras.Ghost(); ghost != nil {
			u.Auras.Remove(ghost, false)
		} else {
			u.onResurrect()
		}
	}
}

// updateHealthAuraState keeps at most one health band set. Between 35% and
// 75% the state is left as it was.
func (u *Unit) updateHealthAuraState() {
	bands := constants.AuraStateHealth20Percent | constants.AuraStateHealth35Percent | constants.AuraStateHealthAbove75Pct
	var band constants.AuraStateMask
	switch pct := u.HealthPct(); {
	case pct < 20:
		band = constants.AuraStateHealth20Percent
	case pct < 35:
		band = constants.AuraStateHealth35Percent
	case pct >= 75:
		band = constants.AuraStateHealthAbove75Pct
	default:
		return
	}
	u.SetAuraState(u.AuraState()&^bands | band)
}

// Kill sets health to 0 with killer as the last attacker.
func (u *Unit) Kill(killer *Unit) {
	if !u.IsAlive() {
		return
	}
	if killer != nil {
		u.lastAttacker = killer
	}
	u.SetHealth(0)
}

func (u *Unit) die() {
	killer := u.lastAttacker
	u.lastAttacker = nil
	u.IncMechanicCount(constants.MechanicRooted)
	u.SetAuraState(0)
	u.SetDynamicFlags(u.DynamicFlags() | constants.DynFlagDead)
	u.SetStandState(constants.StandStateDead)
	u.Auras.RemoveWhere(func(a *Aura) bool { return !a.Spell.IsPassive }, false)
	u.LeaveCombat()
	u.SetTarget(nil)

	var killerID ecs.EntityID
	if killer != nil {
		killerID = killer.id
		killer.threat.Remove(u.id)
		if killer != u && u.YieldsXpOrHonor() {
			killer.Proc(&spell.ProcAction{Attacker: killer, Victim: u, Flags: spell.ProcGainExperience}, true)
		}
	}
	event.Emit(u.ctx.Bus, event.UnitDied{Unit: u.id, Killer: killerID})
	if u.Listener != nil {
		u.Listener.OnKilled(killer)
	}
}

func (u *Unit) onResurrect() {
	u.SetDynamicFlags(u.DynamicFlags() &^ constants.DynFlagDead)
	u.SetStandState(constants.StandStateStand)
	event.Emit(u.ctx.Bus, event.UnitResurrected{Unit: u.id})
}

func (u *Unit) BaseHealth() int { return int(u.fields.UInt32(FieldBaseHealth)) }

func (u *Unit) SetBaseHealth(v int) {
	u.fields.SetUInt32(FieldBaseHealth, uint32(v))
	u.UpdateMaxHealth()
}

func (u *Unit) MaxHealth() int { return int(u.fields.UInt32(FieldMaxHealth)) }

// MaxHealthMod is the flat max health bonus of auras.
func (u *Unit) MaxHealthMod() int { return int(u.fields.Int32(FieldMaxHealthModifier)) }

func (u *Unit) SetMaxHealthMod(v int) {
	u.fields.SetInt32(FieldMaxHealthModifier, int32(v))
	u.UpdateMaxHealth()
}

func (u *Unit) ModMaxHealth(delta int) { u.SetMaxHealthMod(u.MaxHealthMod() + delta) }

// staminaHealth is the health granted by stamina: the first 20 points give
// one health each, the rest ten.
func staminaHealth(sta int) int {
	if sta <= 20 {
		return sta
	}
	return 20 + (sta-20)*10
}

// UpdateMaxHealth recomputes max health and clamps the current value.
func (u *Unit) UpdateMaxHealth() {
	max := u.BaseHealth() + staminaHealth(u.Stamina()) + u.MaxHealthMod()
	if max < 1 {
		max = 1
	}
	u.fields.SetUInt32(FieldMaxHealth, uint32(max))
	if u.Health() > max {
		u.SetHealth(max)
	}
}

// HealthPct is the current health in percent of max health.
func (u *Unit) HealthPct() int {
	max := u.MaxHealth()
	if max == 0 {
		return 0
	}
	return u.Health() * 100 / max
}

func (u *Unit) SetHealthPct(pct int) {
	u.SetHealth(u.MaxHealth() * pct / 100)
}

// Cleanse removes every aura cast by someone else and restores health and
// power.
func (u *Unit) Cleanse() {
	u.Auras.RemoveWhere(func(a *Aura) bool { return a.CasterID != u.id }, true)
	u.SetHealth(u.MaxHealth())
	u.SetPower(u.BasePower())
}
