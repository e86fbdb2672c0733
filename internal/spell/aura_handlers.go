package spell

import (
	"go.uber.org/zap"

	"github.com/realmcore/server/internal/constants"
)

func init() {
	RegisterAuraHandler(AuraModThreat, func() AuraEffectHandler { return &ModThreatHandler{} })
	RegisterAuraHandler(AuraNoPvPCredit, func() AuraEffectHandler { return &NoPvPCreditHandler{} })
	RegisterAuraHandler(AuraModStat, func() AuraEffectHandler { return &ModStatHandler{} })
	RegisterAuraHandler(AuraModResistance, func() AuraEffectHandler { return &ModResistanceHandler{} })
	RegisterAuraHandler(AuraModIncreaseHealth, func() AuraEffectHandler { return &ModIncreaseHealthHandler{} })
	RegisterAuraHandler(AuraPeriodicDamage, func() AuraEffectHandler { return &PeriodicDamageHandler{} })
	RegisterAuraHandler(AuraPeriodicHeal, func() AuraEffectHandler { return &PeriodicHealHandler{} })
	RegisterAuraHandler(AuraPeriodicEnergize, func() AuraEffectHandler { return &PeriodicEnergizeHandler{} })
	RegisterAuraHandler(AuraPeriodicTriggerSpell, func() AuraEffectHandler { return &PeriodicTriggerSpellHandler{} })
	RegisterAuraHandler(AuraProcTriggerSpell, func() AuraEffectHandler { return &ProcTriggerSpellHandler{} })
	RegisterAuraHandler(AuraAddModifierFlat, func() AuraEffectHandler { return &AddModifierHandler{} })
	RegisterAuraHandler(AuraAddModifierPercent, func() AuraEffectHandler { return &AddModifierHandler{Percent: true} })
	RegisterAuraHandler(AuraDummy, func() AuraEffectHandler { return DummyHandler{} })
}

// ModThreatHandler changes generated threat for the schools in MiscValue.
type ModThreatHandler struct{}

func (ModThreatHandler) Apply(ctx *AuraEffectContext) {
	ctx.Owner.ModThreat(ctx.Effect.MiscSchools(), ctx.Value)
}

func (ModThreatHandler) Remove(ctx *AuraEffectContext, _ bool) {
	ctx.Owner.ModThreat(ctx.Effect.MiscSchools(), -ctx.Value)
}

// NoPvPCreditHandler makes the owner yield no honor while active.
type NoPvPCreditHandler struct{}

func (NoPvPCreditHandler) Apply(ctx *AuraEffectContext)          { ctx.Owner.ModNoPvPCredit(1) }
func (NoPvPCreditHandler) Remove(ctx *AuraEffectContext, _ bool) { ctx.Owner.ModNoPvPCredit(-1) }

// ModStatHandler modifies one stat, or all of them when MiscValue is -1.
type ModStatHandler struct{}

func (ModStatHandler) stats(e *Effect) []constants.StatType {
	if e.MiscValue < 0 {
		return constants.AllStats()
	}
	return []constants.StatType{constants.StatType(e.MiscValue)}
}

func (h ModStatHandler) Apply(ctx *AuraEffectContext) {
	for _, st := range h.stats(ctx.Effect) {
		ctx.Owner.AddStatMod(st, ctx.Value, ctx.Effect.Spell.IsPassive)
	}
}

func (h ModStatHandler) Remove(ctx *AuraEffectContext, _ bool) {
	for _, st := range h.stats(ctx.Effect) {
		ctx.Owner.RemoveStatMod(st, ctx.Value, ctx.Effect.Spell.IsPassive)
	}
}

// ModResistanceHandler buffs or debuffs the resistances in MiscValue.
type ModResistanceHandler struct{}

func (ModResistanceHandler) Apply(ctx *AuraEffectContext) {
	for _, s := range ctx.Effect.MiscSchools() {
		ctx.Owner.AddResistanceBuff(s, ctx.Value)
	}
}

func (ModResistanceHandler) Remove(ctx *AuraEffectContext, _ bool) {
	for _, s := range ctx.Effect.MiscSchools() {
		ctx.Owner.RemoveResistanceBuff(s, ctx.Value)
	}
}

type ModIncreaseHealthHandler struct{}

func (ModIncreaseHealthHandler) Apply(ctx *AuraEffectContext) { ctx.Owner.ModMaxHealth(ctx.Value) }
func (ModIncreaseHealthHandler) Remove(ctx *AuraEffectContext, _ bool) {
	ctx.Owner.ModMaxHealth(-ctx.Value)
}

type PeriodicDamageHandler struct{}

func (PeriodicDamageHandler) Apply(*AuraEffectContext)        {}
func (PeriodicDamageHandler) Remove(*AuraEffectContext, bool) {}

func (PeriodicDamageHandler) Tick(ctx *AuraEffectContext) {
	sp := ctx.Effect.Spell
	ctx.Owner.TakeDamage(ctx.Value, sp.School(), ctx.Caster, sp)
}

type PeriodicHealHandler struct{}

func (PeriodicHealHandler) Apply(*AuraEffectContext)        {}
func (PeriodicHealHandler) Remove(*AuraEffectContext, bool) {}

func (PeriodicHealHandler) Tick(ctx *AuraEffectContext) {
	ctx.Owner.Heal(ctx.Value, ctx.Caster, ctx.Effect.Spell)
}

// PeriodicEnergizeHandler restores the power type named by MiscValue.
type PeriodicEnergizeHandler struct{}

func (PeriodicEnergizeHandler) Apply(*AuraEffectContext)        {}
func (PeriodicEnergizeHandler) Remove(*AuraEffectContext, bool) {}

func (PeriodicEnergizeHandler) Tick(ctx *AuraEffectContext) {
	ctx.Owner.Energize(constants.PowerType(ctx.Effect.MiscValue), ctx.Value, ctx.Caster)
}

// PeriodicTriggerSpellHandler casts the trigger spell on the owner every tick.
type PeriodicTriggerSpellHandler struct{}

func (PeriodicTriggerSpellHandler) Apply(*AuraEffectContext)        {}
func (PeriodicTriggerSpellHandler) Remove(*AuraEffectContext, bool) {}

func (PeriodicTriggerSpellHandler) Tick(ctx *AuraEffectContext) {
	sp := ctx.Effect.TriggerSpell
	if sp == nil {
		return
	}
	caster := ctx.CasterTarget()
	if err := caster.Trigger(sp, ctx.Owner); err != nil {
		caster.Logger().Warn("periodic trigger failed",
			zap.Uint32("spell_id", uint32(sp.ID)), zap.Uint32("aura", uint32(ctx.Effect.Spell.ID)), zap.Error(err))
	}
}

// ProcTriggerSpellHandler casts the trigger spell when the aura procs. Harmful
// spells go to the other party of the action, the rest to the owner.
type ProcTriggerSpellHandler struct{}

func (ProcTriggerSpellHandler) Apply(*AuraEffectContext)        {}
func (ProcTriggerSpellHandler) Remove(*AuraEffectContext, bool) {}

func (ProcTriggerSpellHandler) CanProcBeTriggeredBy(ctx *AuraEffectContext, action *ProcAction) bool {
	return ctx.Effect.TriggerSpell != nil
}

func (ProcTriggerSpellHandler) OnProc(ctx *AuraEffectContext, action *ProcAction) {
	sp := ctx.Effect.TriggerSpell
	target := ctx.Owner
	if sp.HarmType == HarmHarmful {
		other := action.Victim
		if other != nil && other.EntityID() == ctx.Owner.EntityID() {
			other = action.Attacker
		}
		t, ok := other.(Target)
		if !ok || t == nil {
			return
		}
		target = t
	}
	if err := ctx.Owner.Trigger(sp, target); err != nil {
		ctx.Owner.Logger().Warn("proc trigger failed",
			zap.Uint32("spell_id", uint32(sp.ID)), zap.Uint32("aura", uint32(ctx.Effect.Spell.ID)), zap.Error(err))
	}
}

// AddModifierHandler registers a flat or percent spell modifier on the owner.
type AddModifierHandler struct {
	Percent bool
}

func (h *AddModifierHandler) Apply(ctx *AuraEffectContext) {
	ctx.Owner.AddSpellModifier(ctx.Effect, ctx.Value, h.Percent)
}

func (h *AddModifierHandler) Remove(ctx *AuraEffectContext, _ bool) {
	ctx.Owner.RemoveSpellModifier(ctx.Effect)
}

// DummyHandler does nothing. Dummy auras usually carry a custom creator.
type DummyHandler struct{}

func (DummyHandler) Apply(*AuraEffectContext)        {}
func (DummyHandler) Remove(*AuraEffectContext, bool) {}
