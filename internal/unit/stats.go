package unit

import (
	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/scripting"
	"github.com/realmcore/server/internal/update"
)

// --- Stats ---

func (u *Unit) Strength() int  { return u.StatValue(constants.StatStrength) }
func (u *Unit) Agility() int   { return u.StatValue(constants.StatAgility) }
func (u *Unit) Stamina() int   { return u.StatValue(constants.StatStamina) }
func (u *Unit) Intellect() int { return u.StatValue(constants.StatIntellect) }
func (u *Unit) Spirit() int    { return u.StatValue(constants.StatSpirit) }

// StatValue is base + positive buffs - negative buffs.
func (u *Unit) StatValue(s constants.StatType) int {
	return u.baseStats[s] + u.StatBuffPositive(s) - u.StatBuffNegative(s)
}

func (u *Unit) BaseStatValue(s constants.StatType) int { return u.baseStats[s] }

// SetBaseStat changes the base of a stat. With update, the displayed value
// and everything derived from it are recomputed.
func (u *Unit) SetBaseStat(s constants.StatType, v int, update bool) {
	u.baseStats[s] = v
	if update {
		u.updateStat(s)
	}
}

func (u *Unit) ModBaseStat(s constants.StatType, delta int) {
	u.SetBaseStat(s, u.baseStats[s]+delta, true)
}

func (u *Unit) StatBuffPositive(s constants.StatType) int {
	return int(u.fields.Int32(FieldPosStat0 + update.Field(s)))
}

func (u *Unit) SetStatBuffPositive(s constants.StatType, v int) {
	u.fields.SetInt32(FieldPosStat0+update.Field(s), int32(v))
	u.updateStat(s)
}

func (u *Unit) StatBuffNegative(s constants.StatType) int {
	return int(u.fields.Int32(FieldNegStat0 + update.Field(s)))
}

func (u *Unit) SetStatBuffNegative(s constants.StatType, v int) {
	u.fields.SetInt32(FieldNegStat0+update.Field(s), int32(v))
	u.updateStat(s)
}

// AddStatMod applies a stat modifier. Passive modifiers change the base
// value, others the positive or negative buff slot.
func (u *Unit) AddStatMod(s constants.StatType, delta int, passive bool) {
	switch {
	case passive:
		u.ModBaseStat(s, delta)
	case delta > 0:
		u.SetStatBuffPositive(s, u.StatBuffPositive(s)+delta)
	case delta < 0:
		u.SetStatBuffNegative(s, u.StatBuffNegative(s)-delta)
	}
}

// RemoveStatMod reverts AddStatMod with the same arguments.
func (u *Unit) RemoveStatMod(s constants.StatType, delta int, passive bool) {
	switch {
	case passive:
		u.ModBaseStat(s, -delta)
	case delta > 0:
		u.SetStatBuffPositive(s, u.StatBuffPositive(s)-delta)
	case delta < 0:
		u.SetStatBuffNegative(s, u.StatBuffNegative(s)+delta)
	}
}

func (u *Unit) updateStat(s constants.StatType) {
	u.fields.SetInt32(FieldStat0+update.Field(s), int32(u.StatValue(s)))
	switch s {
	case constants.StatStamina:
		u.UpdateMaxHealth()
	case constants.StatIntellect:
		u.UpdateMaxPower()
	case constants.StatStrength, constants.StatAgility:
		u.UpdateAttackPower()
	}
}

func (u *Unit) statContext() scripting.StatContext {
	return scripting.StatContext{
		Level:     u.Level(),
		Strength:  u.Strength(),
		Agility:   u.Agility(),
		Stamina:   u.Stamina(),
		Intellect: u.Intellect(),
		Spirit:    u.Spirit(),
	}
}

// UpdateAttackPower recomputes melee and ranged attack power from the class
// formulas. Units without a class keep what was set on them.
func (u *Unit) UpdateAttackPower() {
	if u.class == nil {
		return
	}
	ctx := u.statContext()
	u.fields.SetInt32(FieldAttackPower, int32(u.class.MeleeAP(ctx)))
	u.fields.SetInt32(FieldRangedAttackPower, int32(u.class.RangedAP(ctx)))
}

func (u *Unit) AttackPower() int       { return int(u.fields.Int32(FieldAttackPower)) }
func (u *Unit) RangedAttackPower() int { return int(u.fields.Int32(FieldRangedAttackPower)) }

// MagicCritChance is the spell crit chance in percent.
func (u *Unit) MagicCritChance() float32 {
	if u.class == nil {
		return 0
	}
	return u.class.MagicCritChance(u.statContext())
}

// --- Resistances ---

func (u *Unit) Armor() int        { return u.Resistance(constants.SchoolPhysical) }
func (u *Unit) HolyResist() int   { return u.Resistance(constants.SchoolHoly) }
func (u *Unit) FireResist() int   { return u.Resistance(constants.SchoolFire) }
func (u *Unit) NatureResist() int { return u.Resistance(constants.SchoolNature) }
func (u *Unit) FrostResist() int  { return u.Resistance(constants.SchoolFrost) }
func (u *Unit) ShadowResist() int { return u.Resistance(constants.SchoolShadow) }
func (u *Unit) ArcaneResist() int { return u.Resistance(constants.SchoolArcane) }

// Resistance is base + positive buffs - negative buffs, never below 0.
func (u *Unit) Resistance(school constants.DamageSchool) int {
	v := u.baseResist[school] + u.ResistanceBuffPositive(school) - u.ResistanceBuffNegative(school)
	if v < 0 {
		return 0
	}
	return v
}

func (u *Unit) BaseResistance(school constants.DamageSchool) int { return u.baseResist[school] }

func (u *Unit) SetBaseResistance(school constants.DamageSchool, v int) {
	if v < 0 {
		v = 0
	}
	u.baseResist[school] = v
	u.updateResistance(school)
}

func (u *Unit) ModBaseResistance(school constants.DamageSchool, delta int) {
	u.SetBaseResistance(school, u.baseResist[school]+delta)
}

func (u *Unit) ModBaseResistances(schools []constants.DamageSchool, delta int) {
	for _, s := range schools {
		u.ModBaseResistance(s, delta)
	}
}

func (u *Unit) ResistanceBuffPositive(school constants.DamageSchool) int {
	return int(u.fields.Int32(FieldResistBuffModsPos + update.Field(school)))
}

func (u *Unit) ResistanceBuffNegative(school constants.DamageSchool) int {
	return int(u.fields.Int32(FieldResistBuffModsNeg + update.Field(school)))
}

// AddResistanceBuff moves delta into the positive or negative buff slot.
// The base value is left alone.
func (u *Unit) AddResistanceBuff(school constants.DamageSchool, delta int) {
	switch {
	case delta > 0:
		f := FieldResistBuffModsPos + update.Field(school)
		u.fields.SetInt32(f, u.fields.Int32(f)+int32(delta))
	case delta < 0:
		f := FieldResistBuffModsNeg + update.Field(school)
		u.fields.SetInt32(f, u.fields.Int32(f)-int32(delta))
	default:
		return
	}
	u.updateResistance(school)
}

// RemoveResistanceBuff reverts AddResistanceBuff with the same delta.
func (u *Unit) RemoveResistanceBuff(school constants.DamageSchool, delta int) {
	switch {
	case delta > 0:
		f := FieldResistBuffModsPos + update.Field(school)
		u.fields.SetInt32(f, u.fields.Int32(f)-int32(delta))
	case delta < 0:
		f := FieldResistBuffModsNeg + update.Field(school)
		u.fields.SetInt32(f, u.fields.Int32(f)+int32(delta))
	default:
		return
	}
	u.updateResistance(school)
}

func (u *Unit) updateResistance(school constants.DamageSchool) {
	u.fields.SetInt32(FieldResistances+update.Field(school), int32(u.Resistance(school)))
}
