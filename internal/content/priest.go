package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/realmcore/server/internal/spell"
)

// Priest spell lines.
const (
	LinePriestFlashHeal       spell.LineID = "PriestFlashHeal"
	LinePriestHeal            spell.LineID = "PriestHeal"
	LinePriestGreaterHeal     spell.LineID = "PriestGreaterHeal"
	LinePriestBindingHeal     spell.LineID = "PriestBindingHeal"
	LinePriestPenance         spell.LineID = "PriestDisciplinePenance"
	LinePriestPrayerOfMending spell.LineID = "PriestPrayerOfMending"
	LinePriestPrayerOfHealing spell.LineID = "PriestPrayerOfHealing"
	LinePriestCircleOfHealing spell.LineID = "PriestHolyCircleOfHealing"
	LinePriestInspiration     spell.LineID = "PriestHolyInspiration"
	LinePriestSpiritTap       spell.LineID = "PriestShadowSpiritTap"
	LinePriestMindFlay        spell.LineID = "PriestShadowMindFlay"
	LinePriestShadowWeaving   spell.LineID = "PriestShadowShadowWeaving"
	LinePriestDispersion      spell.LineID = "PriestShadowDispersion"
	LinePriestVampiricEmbrace spell.LineID = "PriestShadowVampiricEmbrace"
	LinePriestShadowWordPain  spell.LineID = "PriestShadowWordPain"
	LinePriestShadowWordDeath spell.LineID = "PriestShadowWordDeath"
	LinePriestMindBlast       spell.LineID = "PriestMindBlast"
	LinePriestManaBurn        spell.LineID = "PriestManaBurn"
	LinePriestDevouringPlague spell.LineID = "PriestDevouringPlague"
	LinePriestVampiricTouch   spell.LineID = "PriestShadowVampiricTouch"
	LinePriestMindSear        spell.LineID = "PriestMindSear"
)

// DispersionMana is the mana regeneration spell Dispersion ticks.
const DispersionMana spell.ID = 60069

var errMissingEffect = errors.New("missing effect")

// FixPriest adjusts priest talents and abilities whose records lack the
// behaviour described in their tooltips.
func FixPriest(_ context.Context, d *Deps) error {
	h := d.Spells
	var errs []error
	apply := func(line spell.LineID, fn func(sp *spell.Spell) error) {
		err := h.ApplyLines(func(sp *spell.Spell) {
			if err := fn(sp); err != nil {
				errs = append(errs, fmt.Errorf("fix %s: %w", sp, err))
			}
		}, line)
		if err != nil {
			errs = append(errs, err)
		}
	}

	// Spirit Tap only procs on kills that reward experience or honor.
	apply(LinePriestSpiritTap, func(sp *spell.Spell) error {
		sp.ProcTriggerFlags = spell.ProcGainExperience
		return nil
	})

	// TODO: Inspiration should only proc on critical heals once heals can crit.
	apply(LinePriestInspiration, func(sp *spell.Spell) error {
		return sp.AddCasterProcLines(h,
			LinePriestFlashHeal,
			LinePriestHeal,
			LinePriestGreaterHeal,
			LinePriestBindingHeal,
			LinePriestPenance,
			LinePriestPrayerOfMending,
			LinePriestPrayerOfHealing,
			LinePriestCircleOfHealing)
	})

	// Mind Flay deals three times the value of its third effect over its
	// duration.
	apply(LinePriestMindFlay, func(sp *spell.Spell) error {
		if len(sp.Effects) < 3 {
			return fmt.Errorf("effect 2: %w", errMissingEffect)
		}
		src := sp.Effects[2]
		e := sp.AddAuraEffect(spell.AuraPeriodicDamage, spell.TargetSingleEnemy)
		e.BasePoints = src.BasePoints * 3
		e.Amplitude = src.Amplitude
		return nil
	})

	// Shadow Weaving lands on the priest and also procs from Mind Flay.
	apply(LinePriestShadowWeaving, func(sp *spell.Spell) error {
		e := sp.AuraEffect(spell.AuraAddTargetTrigger)
		if e == nil {
			return fmt.Errorf("AddTargetTrigger aura: %w", errMissingEffect)
		}
		e.ImplicitTargetA = spell.TargetSelf
		e.AddToAffectMask(h.Line(LinePriestMindFlay))
		return nil
	})

	// Dispersion also regenerates mana.
	apply(LinePriestDispersion, func(sp *spell.Spell) error {
		sp.AddPeriodicTriggerSpellEffect(DispersionMana, 1000, spell.TargetSelf)
		return nil
	})

	// Vampiric Embrace heals the priest for a share of the damage its shadow
	// spells deal.
	apply(LinePriestVampiricEmbrace, func(sp *spell.Spell) error {
		if len(sp.Effects) == 0 {
			return fmt.Errorf("effect 0: %w", errMissingEffect)
		}
		e := sp.Effects[0]
		e.IsProc = true
		e.AuraHandlerCreator = func() spell.AuraEffectHandler { return VampiricEmbraceHandler{} }
		sp.ProcTriggerFlags = spell.ProcSpellCast
		return sp.AddCasterProcLines(h,
			LinePriestMindFlay,
			LinePriestShadowWordPain,
			LinePriestShadowWordDeath,
			LinePriestMindBlast,
			LinePriestManaBurn,
			LinePriestDevouringPlague,
			LinePriestVampiricTouch,
			LinePriestMindSear)
	})

	return errors.Join(errs...)
}

// VampiricEmbraceHandler heals the aura owner by Value percent of the damage
// dealt by the proccing spell.
type VampiricEmbraceHandler struct{}

func (VampiricEmbraceHandler) Apply(*spell.AuraEffectContext)        {}
func (VampiricEmbraceHandler) Remove(*spell.AuraEffectContext, bool) {}

func (VampiricEmbraceHandler) CanProcBeTriggeredBy(_ *spell.AuraEffectContext, action *spell.ProcAction) bool {
	return action.Damage > 0
}

func (VampiricEmbraceHandler) OnProc(ctx *spell.AuraEffectContext, action *spell.ProcAction) {
	amount := action.Damage * ctx.Value / 100
	ctx.Owner.Heal(amount, ctx.Owner, ctx.Effect.Spell)
}
