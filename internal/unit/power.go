package unit

import (
	"time"

	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/core/event"
	"github.com/realmcore/server/internal/spell"
	"github.com/realmcore/server/internal/update"
)

func (u *Unit) powerSlot(f update.Field) update.Field {
	return f + update.Field(u.PowerType())
}

// PowerCostModifier is the flat cost change of the unit's power type.
func (u *Unit) PowerCostModifier() int {
	return int(u.fields.Int32(u.powerSlot(FieldPowerCostModifier)))
}

func (u *Unit) SetPowerCostModifier(v int) {
	u.fields.SetInt32(u.powerSlot(FieldPowerCostModifier), int32(v))
}

// PowerCostMultiplier is the relative cost change of the unit's power type;
// 0 leaves costs unchanged, -0.2 makes spells 20% cheaper.
func (u *Unit) PowerCostMultiplier() float32 {
	return u.fields.Float32(u.powerSlot(FieldPowerCostMultiplier))
}

func (u *Unit) SetPowerCostMultiplier(v float32) {
	u.fields.SetFloat32(u.powerSlot(FieldPowerCostMultiplier), v)
}

// PowerCost applies the cost modifiers of the unit to a base cost.
func (u *Unit) PowerCost(_ constants.DamageSchool, sp *spell.Spell, cost int) int {
	cost += u.PowerCostModifier()
	if m := u.PowerCostMultiplier(); m != 0 {
		cost = spell.MultiMod(cost, m)
	}
	cost = u.ApplySpellModifier(spell.ModPowerCost, sp, cost)
	if cost < 0 {
		return 0
	}
	return cost
}

func (u *Unit) BasePower() int { return int(u.fields.UInt32(FieldBaseMana)) }

// SetBasePower changes the base power, recomputes max power and refills
// the bar, except for rage and energy which do not rest at full.
func (u *Unit) SetBasePower(v int) {
	u.fields.SetUInt32(FieldBaseMana, uint32(v))
	u.UpdateMaxPower()
	u.refillPower()
}

// SetBasePowerDontUpdate changes the base power without recomputing max
// power. The bar is still refilled like SetBasePower does.
func (u *Unit) SetBasePowerDontUpdate(v int) {
	u.fields.SetUInt32(FieldBaseMana, uint32(v))
	u.refillPower()
}

func (u *Unit) refillPower() {
	if pt := u.PowerType(); pt != constants.PowerRage && pt != constants.PowerEnergy {
		u.SetPower(u.MaxPower())
	}
}

func (u *Unit) MaxPower() int { return int(u.fields.UInt32(u.powerSlot(FieldMaxPower1))) }

// intellectMana is the mana granted by intellect, mirroring staminaHealth.
func intellectMana(intel int) int {
	if intel <= 20 {
		return intel
	}
	return 20 + (intel-20)*15
}

// UpdateMaxPower recomputes the max power of the current power type.
func (u *Unit) UpdateMaxPower() {
	max := u.BasePower()
	if u.PowerType() == constants.PowerMana {
		max += intellectMana(u.Intellect())
	}
	u.fields.SetUInt32(u.powerSlot(FieldMaxPower1), uint32(max))
	if u.storedPower() > max {
		u.setStoredPower(max)
	}
}

func (u *Unit) storedPower() int { return int(u.fields.UInt32(u.powerSlot(FieldPower1))) }

func (u *Unit) setStoredPower(v int) {
	u.fields.SetUInt32(u.powerSlot(FieldPower1), uint32(v))
	u.lastPowerUpdate = u.ctx.now()
}

// Power is the stored power plus what regenerated since it was last
// written, within [0, MaxPower].
func (u *Unit) Power() int {
	v := u.storedPower()
	if u.powerRegen != 0 {
		elapsed := u.ctx.now().Sub(u.lastPowerUpdate)
		v += int(int64(u.powerRegen) * int64(elapsed) / int64(time.Second))
	}
	if v < 0 {
		return 0
	}
	if max := u.MaxPower(); v > max {
		return max
	}
	return v
}

// SetPower stores v clamped to [0, MaxPower]. PowerChanged is only emitted
// when the value changed.
func (u *Unit) SetPower(v int) {
	if max := u.MaxPower(); v > max {
		v = max
	}
	if v < 0 {
		v = 0
	}
	old := u.storedPower()
	u.setStoredPower(v)
	if old != v {
		event.Emit(u.ctx.Bus, event.PowerChanged{Unit: u.id, PowerType: int(u.PowerType()), Value: v})
	}
}

// PowerRegenPerSecond is the rate Power interpolates with. Negative rates
// drain the bar.
func (u *Unit) PowerRegenPerSecond() int { return u.powerRegen }

// SetPowerRegenPerSecond commits what regenerated so far and switches to the
// new rate.
func (u *Unit) SetPowerRegenPerSecond(perSecond int) {
	if perSecond == u.powerRegen {
		return
	}
	u.FlushPower()
	u.powerRegen = perSecond
}

// FlushPower writes the interpolated power into the field.
func (u *Unit) FlushPower() {
	u.SetPower(u.Power())
}

// Energize adds power of type pt when it is the unit's power type.
func (u *Unit) Energize(pt constants.PowerType, amount int, _ spell.Actor) {
	if !u.IsAlive() || pt != u.PowerType() {
		return
	}
	u.SetPower(u.Power() + amount)
}
