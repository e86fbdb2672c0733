package spell

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/data"
)

// BuildHandler converts the loaded records into spells, lines, skill
// abilities and shapeshift entries. Records with unknown effect or aura names
// are reported and skipped; the rest are still added.
func BuildHandler(list *data.SpellList, log *zap.Logger) (*Handler, error) {
	h := NewHandler(log)
	var errs []error

	skills := make(map[uint32]*SkillLine, len(list.Skills))
	for _, s := range list.Skills {
		skills[s.ID] = &SkillLine{ID: constants.SkillID(s.ID), Name: s.Name, Category: constants.SkillCategory(s.Category)}
	}

	talents := make(map[string]*Talent)
	for i := range list.Spells {
		e := &list.Spells[i]
		sp, err := buildSpell(e)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if sk := skills[e.Skill]; sk != nil {
			sp.SetAbility(&SkillAbility{Skill: sk, ClassMask: classMask(sp.ClassID)})
		} else if e.Skill != 0 {
			errs = append(errs, fmt.Errorf("build spell %d: unknown skill %d", e.ID, e.Skill))
		}
		if e.Talent != "" {
			t := talents[e.Talent]
			if t == nil {
				t = &Talent{FullName: sp.Name, Tree: e.Talent}
				talents[e.Talent] = t
			}
			sp.Talent = t
		}
		h.Add(sp)
	}

	for _, e := range list.Spells {
		sp := h.Get(ID(e.ID))
		if sp == nil {
			continue
		}
		for _, id := range e.Teaches {
			taught := h.Get(ID(id))
			if taught == nil {
				errs = append(errs, fmt.Errorf("build spell %d: teaches %d: %w", e.ID, id, ErrUnknownSpell))
				continue
			}
			sp.AdditionallyTaughtSpells = append(sp.AdditionallyTaughtSpells, taught)
		}
	}

	errs = append(errs, buildLines(h, list)...)

	for _, s := range list.Shapeshifts {
		entry := &ShapeshiftEntry{
			Form:            constants.ShapeshiftForm(s.Form),
			Name:            s.Name,
			ModelIDAlliance: s.ModelAlliance,
			ModelIDHorde:    s.ModelHorde,
		}
		for _, id := range s.ActionBarSpells {
			entry.ActionBarSpells = append(entry.ActionBarSpells, ID(id))
		}
		h.AddShapeshiftEntry(entry)
	}

	return h, errors.Join(errs...)
}

func buildLines(h *Handler, list *data.SpellList) []error {
	var errs []error
	members := make(map[string][]*Spell)
	for _, e := range list.Spells {
		if e.Line == "" {
			continue
		}
		if sp := h.Get(ID(e.ID)); sp != nil {
			members[e.Line] = append(members[e.Line], sp)
		}
	}

	for _, le := range list.Lines {
		var ranks []*Spell
		if len(le.Ranks) > 0 {
			for _, id := range le.Ranks {
				sp := h.Get(ID(id))
				if sp == nil {
					errs = append(errs, fmt.Errorf("build line %s: rank %d: %w", le.ID, id, ErrUnknownSpell))
					continue
				}
				ranks = append(ranks, sp)
			}
		} else {
			ranks = members[le.ID]
			sort.Slice(ranks, func(i, j int) bool { return ranks[i].ID < ranks[j].ID })
		}
		name := le.Name
		if name == "" && len(ranks) > 0 {
			name = ranks[0].Name
		}
		h.AddLine(NewLine(LineID(le.ID), name, ranks...))
		delete(members, le.ID)
	}

	// Lines only referenced from spell records.
	for id, ranks := range members {
		sort.Slice(ranks, func(i, j int) bool { return ranks[i].ID < ranks[j].ID })
		h.AddLine(NewLine(LineID(id), ranks[0].Name, ranks...))
	}
	return errs
}

func classMask(c constants.ClassID) uint32 {
	if c == constants.ClassNone {
		return 0
	}
	return 1 << (uint(c) - 1)
}

func buildSpell(e *data.SpellEntry) (*Spell, error) {
	sp := New(ID(e.ID), e.Name)
	sp.RankDesc = e.Rank
	sp.Description = e.Description
	sp.ClassID = constants.ClassID(e.Class)
	sp.Category = e.Category
	sp.DispelType = constants.DispelType(e.DispelType)
	sp.Mechanic = constants.SpellMechanic(e.Mechanic)
	sp.Attributes = Attributes(e.Attributes)
	sp.AttributesEx = AttributesEx(e.AttributesEx)
	sp.AttributesExB = AttributesExB(e.AttributesExB)
	sp.AttributesExC = AttributesExC(e.AttributesExC)
	sp.AttributesExD = AttributesExD(e.AttributesExD)
	sp.ShapeshiftMask = constants.ShapeshiftMask(e.ShapeshiftMask)
	sp.ExcludeShapeshiftMask = constants.ShapeshiftMask(e.ExcludeShapeshiftMask)
	sp.TargetFlags = TargetFlags(e.TargetFlags)
	sp.RequiredCasterAuraState = constants.AuraStateMask(e.CasterAuraState)
	sp.RequiredTargetAuraState = constants.AuraStateMask(e.TargetAuraState)
	sp.CastDelay = e.CastTime
	sp.CooldownTime = e.Cooldown
	sp.CategoryCooldownTime = e.CategoryCooldown
	sp.InterruptFlags = InterruptFlags(e.InterruptFlags)
	sp.AuraInterruptFlags = AuraInterruptFlags(e.AuraInterruptFlags)
	sp.ChannelInterruptFlags = ChannelInterruptFlags(e.ChannelInterruptFlags)
	sp.ProcTriggerFlags = ProcTriggerFlags(e.ProcFlags)
	sp.ProcChance = e.ProcChance
	sp.ProcCharges = e.ProcCharges
	sp.MaxLevel = e.MaxLevel
	sp.BaseLevel = e.BaseLevel
	sp.Level = e.Level
	sp.Durations = Durations{Min: e.DurationMin, Max: e.DurationMax}
	if sp.Durations.Max < sp.Durations.Min {
		sp.Durations.Max = sp.Durations.Min
	}
	sp.PowerType = constants.PowerType(e.PowerType)
	sp.PowerCost = e.PowerCost
	sp.PowerCostPerLevel = e.PowerCostPerLevel
	sp.PowerPerSecond = e.PowerPerSecond
	sp.PowerCostPercentage = e.PowerCostPercentage
	sp.Range = Range{MinDist: e.RangeMin, MaxDist: e.RangeMax}
	sp.ProjectileSpeed = e.ProjectileSpeed
	sp.MaxStackCount = e.MaxStackCount
	sp.MaxTargets = e.MaxTargets
	sp.RequiredToolIDs = append([]uint32(nil), e.RequiredTools...)
	for _, c := range e.RequiredTotemCategories {
		sp.RequiredTotemCategories = append(sp.RequiredTotemCategories, constants.TotemCategory(c))
	}
	if e.RequiredItemClass != nil {
		sp.RequiredItemClass = constants.ItemClass(*e.RequiredItemClass)
	}
	sp.RequiredItemSubClassMask = constants.ItemSubClassMask(e.RequiredItemSubClass)
	sp.Visual = e.Visual
	sp.Visual2 = e.Visual2
	sp.SpellClassSet = e.SpellClassSet
	sp.SpellClassMask = e.SpellClassMask
	sp.SchoolMask = constants.DamageSchoolMask(e.SchoolMask)

	for i := range e.Effects {
		ee := &e.Effects[i]
		t, ok := ParseEffectType(ee.Type)
		if !ok {
			return nil, fmt.Errorf("build spell %d: effect %d: unknown type %q", e.ID, i, ee.Type)
		}
		at, ok := ParseAuraType(ee.Aura)
		if !ok {
			return nil, fmt.Errorf("build spell %d: effect %d: unknown aura %q", e.ID, i, ee.Aura)
		}
		eff := sp.AddEffect(t)
		eff.AuraType = at
		eff.BasePoints = ee.BasePoints
		eff.DiceSides = ee.DiceSides
		eff.PointsPerComboPoint = ee.PointsPerComboPoint
		eff.Amplitude = ee.Amplitude
		eff.ChainTargets = ee.ChainTargets
		eff.MiscValue = ee.MiscValue
		eff.MiscValueB = ee.MiscValueB
		eff.Radius = ee.Radius
		eff.TriggerSpellID = ID(ee.TriggerSpell)
		eff.ImplicitTargetA = ImplicitTargetType(ee.TargetA)
		eff.ImplicitTargetB = ImplicitTargetType(ee.TargetB)
		eff.AffectMask = ee.AffectMask
	}
	return sp, nil
}
