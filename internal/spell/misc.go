package spell

import (
	"github.com/realmcore/server/internal/constants"
)

// PowerCaster supplies what CalcPowerCost reads from the caster.
type PowerCaster interface {
	Level() int
	BaseHealth() int
	BasePower() int
	// PowerCost applies the caster's cost modifiers to a base cost.
	PowerCost(school constants.DamageSchool, sp *Spell, cost int) int
}

// DurationCaster supplies what Duration reads from the caster.
type DurationCaster interface {
	ComboPoints() int
	ApplySpellModifier(t ModifierType, sp *Spell, value int) int
}

type MechanicTarget interface {
	MechanicDurationMod(m constants.SpellMechanic) int
}

// School is the first school of the spell.
func (s *Spell) School() constants.DamageSchool {
	if len(s.Schools) > 0 {
		return s.Schools[0]
	}
	if sc := constants.SchoolsOf(s.SchoolMask); len(sc) > 0 {
		return sc[0]
	}
	return constants.SchoolPhysical
}

// MatchesMask reports whether any bit of the spell's class mask is in mask.
func (s *Spell) MatchesMask(mask [3]uint32) bool {
	for i := range mask {
		if s.SpellClassMask[i]&mask[i] != 0 {
			return true
		}
	}
	return false
}

// MaxLevelDiff is the number of levels that scale the per-level cost.
func (s *Spell) MaxLevelDiff(level int) int {
	if s.MaxLevel >= s.BaseLevel && s.MaxLevel < level {
		return s.MaxLevel - s.BaseLevel
	}
	d := level - s.BaseLevel
	if d < 0 {
		return -d
	}
	return d
}

// BasePowerCost is the cost before the caster's modifiers.
func (s *Spell) BasePowerCost(caster PowerCaster) int {
	cost := s.PowerCost + s.PowerCostPerLevel*s.MaxLevelDiff(caster.Level())
	if s.PowerCostPercentage > 0 {
		base := caster.BasePower()
		if s.PowerType == constants.PowerHealth {
			base = caster.BaseHealth()
		}
		cost += s.PowerCostPercentage * base / 100
	}
	return cost
}

func (s *Spell) CalcPowerCost(caster PowerCaster, school constants.DamageSchool) int {
	return caster.PowerCost(school, s, s.BasePowerCost(caster))
}

func (s *Spell) HasCooldown() bool {
	return s.CooldownTime > 0 || s.CategoryCooldownTime > 0
}

// ShouldShowToClient reports whether casting the spell is visible to clients.
func (s *Spell) ShouldShowToClient() bool {
	return s.IsRangedAbility || s.Visual != 0 || s.Visual2 != 0 ||
		s.IsChanneled || s.CastDelay > 0 || s.HasCooldown()
}

// Duration returns the aura duration in milliseconds. Either argument may be nil.
func (s *Spell) Duration(caster DurationCaster, target MechanicTarget) int {
	millis := s.Durations.Min
	if caster != nil && s.Durations.Max > s.Durations.Min && s.IsFinishingMove {
		millis += caster.ComboPoints() * ((s.Durations.Max - s.Durations.Min) / 5)
	}
	if target != nil && s.Mechanic != constants.MechanicNone {
		if mod := target.MechanicDurationMod(s.Mechanic); mod != 0 {
			millis = MultiMod(millis, float32(mod)/100)
		}
	}
	if caster != nil {
		millis = caster.ApplySpellModifier(ModDuration, s, millis)
	}
	return millis
}

// MultiMod returns value increased by factor times value.
func MultiMod(value int, factor float32) int {
	return int(float32(value) + float32(value)*factor)
}

func (s *Spell) IsBeneficialFor(caster, target Actor) bool {
	return s.HarmType == HarmBeneficial ||
		(s.HarmType == HarmNeutral && (caster == nil || target == nil || !caster.MayAttack(target)))
}

func (s *Spell) IsHarmfulFor(caster, target Actor) bool {
	return s.HarmType == HarmHarmful ||
		(s.HarmType == HarmNeutral && caster != nil && target != nil && caster.MayAttack(target))
}
