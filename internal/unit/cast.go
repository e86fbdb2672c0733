package unit

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/core/event"
	"github.com/realmcore/server/internal/spell"
)

var (
	_ spell.Target = (*Unit)(nil)
	_ spell.Owner  = (*Unit)(nil)
)

var (
	ErrCasterDead     = errors.New("caster is dead")
	ErrNotReady       = errors.New("spell is not ready")
	ErrNotEnoughPower = errors.New("not enough power")
	ErrInvalidTarget  = errors.New("invalid target")
	ErrSpellNotKnown  = errors.New("spell not known")
)

func init() {
	spell.RegisterEffectHandler(spell.EffectSchoolDamage, schoolDamageEffect)
	spell.RegisterEffectHandler(spell.EffectHeal, healEffect)
	spell.RegisterEffectHandler(spell.EffectHealMaxHealth, healMaxHealthEffect)
	spell.RegisterEffectHandler(spell.EffectEnergize, energizeEffect)
	spell.RegisterEffectHandler(spell.EffectTriggerSpell, triggerSpellEffect)
	spell.RegisterEffectHandler(spell.EffectSummon, summonEffect)
	spell.RegisterEffectHandler(spell.EffectInstantKill, instantKillEffect)
	spell.RegisterEffectHandler(spell.EffectDummy, func(*spell.EffectContext) error { return nil })
	spell.RegisterEffectHandler(spell.EffectWeaponDamage, weaponDamageEffect)
	spell.RegisterEffectHandler(spell.EffectWeaponDamageNoSchool, weaponDamageEffect)
	spell.RegisterEffectHandler(spell.EffectNormalizedWeaponDamagePlus, weaponDamageEffect)
	spell.RegisterEffectHandler(spell.EffectWeaponPercentDamage, weaponPercentDamageEffect)
}

// weaponDamageEffect adds the effect value to one weapon swing.
func weaponDamageEffect(ctx *spell.EffectContext) error {
	caster := asUnit(ctx.Caster)
	if caster == nil {
		return ErrInvalidTarget
	}
	school := ctx.Effect.Spell.School()
	if ctx.Effect.Type == spell.EffectWeaponDamageNoSchool {
		school = constants.SchoolPhysical
	}
	ctx.Target.TakeDamage(caster.rollMeleeDamage()+ctx.Value, school, caster, ctx.Effect.Spell)
	return nil
}

// weaponPercentDamageEffect deals Value percent of a weapon swing.
func weaponPercentDamageEffect(ctx *spell.EffectContext) error {
	caster := asUnit(ctx.Caster)
	if caster == nil {
		return ErrInvalidTarget
	}
	dmg := caster.rollMeleeDamage() * ctx.Value / 100
	ctx.Target.TakeDamage(dmg, ctx.Effect.Spell.School(), caster, ctx.Effect.Spell)
	return nil
}

func schoolDamageEffect(ctx *spell.EffectContext) error {
	sp := ctx.Effect.Spell
	ctx.Target.TakeDamage(ctx.Value, sp.School(), ctx.Caster, sp)
	return nil
}

func healEffect(ctx *spell.EffectContext) error {
	ctx.Target.Heal(ctx.Value, ctx.Caster, ctx.Effect.Spell)
	return nil
}

func healMaxHealthEffect(ctx *spell.EffectContext) error {
	if t := asUnit(ctx.Target); t != nil {
		t.Heal(t.MaxHealth(), ctx.Caster, ctx.Effect.Spell)
	}
	return nil
}

func energizeEffect(ctx *spell.EffectContext) error {
	ctx.Target.Energize(constants.PowerType(ctx.Effect.MiscValue), ctx.Value, ctx.Caster)
	return nil
}

func triggerSpellEffect(ctx *spell.EffectContext) error {
	if ctx.Effect.TriggerSpell == nil {
		return fmt.Errorf("trigger spell %d: %w", ctx.Effect.TriggerSpellID, spell.ErrUnknownSpell)
	}
	return ctx.Caster.Trigger(ctx.Effect.TriggerSpell, ctx.Target)
}

// summonEffect asks the world to spawn the creature in MiscValue next to the
// caster.
func summonEffect(ctx *spell.EffectContext) error {
	caster := asUnit(ctx.Caster)
	if caster == nil {
		return ErrInvalidTarget
	}
	event.Emit(caster.ctx.Bus, event.SummonRequested{
		Summoner: caster.id,
		EntryID:  uint32(ctx.Effect.MiscValue),
		SpellID:  uint32(ctx.Effect.Spell.ID),
	})
	return nil
}

func instantKillEffect(ctx *spell.EffectContext) error {
	if t := asUnit(ctx.Target); t != nil {
		t.Kill(asUnit(ctx.Caster))
	}
	return nil
}

// Cast casts a spell the unit knows at target. Unlike Trigger it requires
// the spell to be ready and pays its power cost, then starts the cooldown.
func (u *Unit) Cast(sp *spell.Spell, target *Unit) error {
	if !u.IsAlive() {
		return ErrCasterDead
	}
	if !u.Spells.Contains(sp.ID) {
		return fmt.Errorf("cast %s: %w", sp, ErrSpellNotKnown)
	}
	if !u.Spells.IsReady(sp) {
		return fmt.Errorf("cast %s: %w", sp, ErrNotReady)
	}
	cost := sp.CalcPowerCost(u, sp.School())
	if cost > 0 {
		if sp.PowerType == constants.PowerHealth {
			if cost >= u.Health() {
				return fmt.Errorf("cast %s: %w", sp, ErrNotEnoughPower)
			}
		} else if cost > u.Power() {
			return fmt.Errorf("cast %s: %w", sp, ErrNotEnoughPower)
		}
	}
	if target == nil {
		target = u
	}
	if sp.HasHarmfulEffects && target != u && !target.IsAlive() && !sp.ReqDeadTarget {
		return fmt.Errorf("cast %s: %w", sp, ErrInvalidTarget)
	}

	if cost > 0 {
		if sp.PowerType == constants.PowerHealth {
			u.SetHealth(u.Health() - cost)
		} else {
			u.SetPower(u.Power() - cost)
		}
	}
	if sp.HasCooldown() {
		u.Spells.AddCooldown(sp)
	}
	return u.Trigger(sp, target)
}

// TriggerSelf casts sp on the unit itself without checks.
func (u *Unit) TriggerSelf(sp *spell.Spell) error { return u.Trigger(sp, u) }

// Trigger applies sp to target without cooldown or cost checks. Aura effects
// are collected per target and applied as one aura.
func (u *Unit) Trigger(sp *spell.Spell, target spell.Target) error {
	tu := asUnit(target)
	if tu == nil {
		tu = u
	}
	if !u.IsAlive() && !sp.IsPassive {
		return ErrCasterDead
	}

	var errs []error
	var order []*Unit
	auras := make(map[*Unit][]AppliedEffect)
	for _, e := range sp.Effects {
		if e.IsInvalid {
			continue
		}
		et := u.effectTarget(e, tu)
		value := u.effectValue(e)

		if e.Type.IsAuraApplying() {
			if _, seen := auras[et]; !seen {
				order = append(order, et)
			}
			auras[et] = append(auras[et], AppliedEffect{Effect: e, Value: value})
			continue
		}
		h := e.Handler()
		if h == nil {
			continue
		}
		if err := h(&spell.EffectContext{Effect: e, Caster: u, Target: et, Value: value}); err != nil {
			errs = append(errs, fmt.Errorf("effect %s of %s: %w", e, sp, err))
		}
	}

	for _, et := range order {
		if !et.IsAlive() && !sp.IsPassive {
			continue
		}
		if _, err := et.Auras.Apply(sp, u, auras[et]); err != nil && !errors.Is(err, ErrHigherRankActive) {
			errs = append(errs, fmt.Errorf("apply %s: %w", sp, err))
		}
	}

	for _, t := range sp.TargetTriggerSpells {
		if err := u.Trigger(t, tu); err != nil {
			errs = append(errs, err)
		}
	}
	for _, t := range sp.CasterTriggerSpells {
		if err := u.Trigger(t, u); err != nil {
			errs = append(errs, err)
		}
	}

	if !sp.IsPassive {
		u.procSpellCast(sp, tu)
	}
	if err := errors.Join(errs...); err != nil {
		u.ctx.log().Debug("spell effects failed", zap.Uint32("spell_id", uint32(sp.ID)), zap.Error(err))
		return err
	}
	return nil
}

// effectTarget picks the unit an effect lands on.
func (u *Unit) effectTarget(e *spell.Effect, target *Unit) *Unit {
	if e.HasTarget(spell.TargetSelf, spell.TargetLocationToSummon, spell.TargetSelfFishing) {
		return u
	}
	if e.ImplicitTargetA == spell.TargetNone && e.Spell.CasterIsTarget {
		return u
	}
	return target
}

func (u *Unit) effectValue(e *spell.Effect) int {
	v := e.CalcValue(u.comboPoints, u.ctx.rnd())
	v = u.ApplySpellModifier(spell.ModAllEffectValues, e.Spell, v)
	switch e.Index {
	case 0:
		v = u.ApplySpellModifier(spell.ModEffectValue1, e.Spell, v)
	case 1:
		v = u.ApplySpellModifier(spell.ModEffectValue2, e.Spell, v)
	}
	return v
}

func (u *Unit) procSpellCast(sp *spell.Spell, target *Unit) {
	magic := sp.School() != constants.SchoolPhysical
	var done, received spell.ProcTriggerFlags
	if sp.IsHarmfulFor(u, target) {
		done, received = spell.ProcDoneHarmfulSpell, spell.ProcReceivedHarmfulSpell
		if magic {
			done |= spell.ProcDoneHarmfulMagicSpell
			received |= spell.ProcReceivedHarmfulMagicSpell
		}
	} else {
		done, received = spell.ProcDoneBeneficialSpell, spell.ProcReceivedBeneficialSpell
		if magic {
			done |= spell.ProcDoneBeneficialMagicSpell
			received |= spell.ProcReceivedBeneficialMagicSpell
		}
	}
	u.Proc(&spell.ProcAction{Attacker: u, Victim: target, Spell: sp, Flags: done}, true)
	if target != u {
		target.Proc(&spell.ProcAction{Attacker: u, Victim: target, Spell: sp, Flags: received}, false)
	}
}

// mitigate reduces physical damage by armor and magic damage by the
// average resisted share.
func (u *Unit) mitigate(amount int, school constants.DamageSchool, attackerLevel int) int {
	res := u.Resistance(school)
	if res <= 0 || amount <= 0 {
		return amount
	}
	var reduction float64
	if school == constants.SchoolPhysical {
		reduction = float64(res) / float64(res+400+85*attackerLevel)
	} else {
		reduction = 0.75 * float64(res) / float64(5*max(attackerLevel, 1))
	}
	reduction = min(reduction, 0.75)
	return amount - int(float64(amount)*reduction)
}

// TakeDamage deals amount of school damage. The attacker, when known,
// gains threat and both sides enter combat.
func (u *Unit) TakeDamage(amount int, school constants.DamageSchool, attacker spell.Actor, sp *spell.Spell) {
	if !u.IsAlive() || amount <= 0 {
		return
	}
	au := asUnit(attacker)
	level := u.Level()
	if au != nil {
		level = au.Level()
	}
	amount = u.mitigate(amount, school, level)

	if au != nil && au != u {
		u.lastAttacker = au
		u.threat.Add(au.id, au.GenerateThreat(school, amount))
		u.EnterCombat(au)
		au.EnterCombat(u)
		if u.Target() == nil && !u.IsPlayer() {
			u.SetTarget(au)
		}
	}
	u.Auras.RemoveWhere(func(a *Aura) bool {
		return a.Spell.AuraInterruptFlags&spell.AuraInterruptOnDamage != 0 && a.Spell != sp
	}, true)

	u.SetHealth(u.Health() - amount)
	if u.Listener != nil && u.IsAlive() {
		u.Listener.OnDamaged(au, amount)
	}

	received, done := damageProcFlags(sp)
	action := &spell.ProcAction{Attacker: attacker, Victim: u, Spell: sp, Damage: amount, IsAttack: sp == nil}
	action.Flags = received
	u.Proc(action, false)
	if au != nil && au != u {
		doneAction := *action
		doneAction.Flags = done
		au.Proc(&doneAction, true)
	}
}

// damageProcFlags returns the proc flags of the victim and the attacker of
// damage dealt by sp, or by a melee swing when sp is nil.
func damageProcFlags(sp *spell.Spell) (received, done spell.ProcTriggerFlags) {
	received = spell.ProcReceivedAnyDamage
	if sp == nil {
		return received | spell.ProcReceivedMeleeAutoAttack, spell.ProcDoneMeleeAutoAttack
	}
	received |= spell.ProcReceivedHarmfulSpell
	done = spell.ProcDoneHarmfulSpell
	if sp.School() != constants.SchoolPhysical {
		received |= spell.ProcReceivedHarmfulMagicSpell
		done |= spell.ProcDoneHarmfulMagicSpell
	}
	if sp.HasPeriodicAuraEffects {
		received |= spell.ProcReceivedPeriodic
		done |= spell.ProcDonePeriodic
	}
	return received, done
}

// Heal restores amount health.
func (u *Unit) Heal(amount int, healer spell.Actor, sp *spell.Spell) {
	if !u.IsAlive() || amount <= 0 {
		return
	}
	u.SetHealth(u.Health() + amount)
}

func (u *Unit) MinDamage() float32 { return u.fields.Float32(FieldMinDamage) }
func (u *Unit) MaxDamage() float32 { return u.fields.Float32(FieldMaxDamage) }

func (u *Unit) SetMeleeDamage(min, max float32) {
	if max < min {
		max = min
	}
	u.fields.SetFloat32(FieldMinDamage, min)
	u.fields.SetFloat32(FieldMaxDamage, max)
}

// AttackTime is the main hand swing interval in milliseconds.
func (u *Unit) AttackTime() int      { return int(u.fields.UInt32(FieldBaseAttackTime)) }
func (u *Unit) SetAttackTime(ms int) { u.fields.SetUInt32(FieldBaseAttackTime, uint32(ms)) }

// Strike swings once at target with the main hand damage range.
func (u *Unit) Strike(target *Unit) {
	if target == nil || !u.IsAlive() || !target.IsAlive() {
		return
	}
	u.IsFighting = true
	target.TakeDamage(u.rollMeleeDamage(), constants.SchoolPhysical, u, nil)
}

// rollMeleeDamage rolls a value in the main hand damage range.
func (u *Unit) rollMeleeDamage() int {
	lo, hi := u.MinDamage(), u.MaxDamage()
	dmg := lo
	if hi > lo {
		dmg += u.ctx.rnd().Float32() * (hi - lo)
	}
	return int(dmg + 0.5)
}
