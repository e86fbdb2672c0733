package spell

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"

	"github.com/realmcore/server/internal/constants"
)

var fold = cases.Fold()

// FullName is the name with a prefix that tells what kind of spell it is.
func (s *Spell) FullName() string {
	name := s.Name
	if s.Talent != nil && s.Talent.FullName != "" {
		name = s.Talent.FullName
	}

	isAbility := s.Ability != nil && s.Ability.Skill != nil
	if isAbility && s.Talent == nil &&
		s.Ability.Skill.Category != constants.SkillCategoryLanguage &&
		s.Ability.Skill.Category != constants.SkillCategoryInvalid {
		name = s.Ability.Skill.Category.String() + " " + name
	}

	switch {
	case s.IsTeachSpell && !strings.HasPrefix(fold.String(s.Name), "learn"):
		name = "Learn " + name
	case s.IsTriggeredSpell:
		name = "Effect: " + name
	case !isAbility && s.IsDeprecated():
		name = "Unused " + name
	}
	return name
}

// IsDeprecated guesses from the name whether the record is a leftover.
func (s *Spell) IsDeprecated() bool {
	n := fold.String(s.Name)
	return strings.Contains(n, "test") || strings.HasPrefix(n, "zzold") || strings.Contains(n, "unused")
}

func (s *Spell) String() string {
	rank := ""
	if s.RankDesc != "" {
		rank = " " + s.RankDesc
	}
	return fmt.Sprintf("%s%s (Id: %d)", s.FullName(), rank, s.ID)
}

// Dump writes every non-default field and the effects of the spell.
func (s *Spell) Dump(w io.Writer, indent string) {
	fmt.Fprintf(w, "%sSpell: %s\n", indent, s)
	in := indent + "\t"
	p := func(name string, v any) { fmt.Fprintf(w, "%s%s: %v\n", in, name, v) }

	if s.Line != nil {
		p("Line", s.Line.ID)
	}
	if s.Category != 0 {
		p("Category", s.Category)
	}
	if s.Description != "" {
		p("Description", s.Description)
	}
	if s.Mechanic != constants.MechanicNone {
		p("Mechanic", s.Mechanic)
	}
	if s.DispelType != constants.DispelNone {
		p("DispelType", s.DispelType)
	}
	if s.Attributes != 0 {
		p("Attributes", fmt.Sprintf("0x%X", uint32(s.Attributes)))
	}
	if s.AttributesEx != 0 {
		p("AttributesEx", fmt.Sprintf("0x%X", uint32(s.AttributesEx)))
	}
	if s.AttributesExB != 0 {
		p("AttributesExB", fmt.Sprintf("0x%X", uint32(s.AttributesExB)))
	}
	if s.AttributesExC != 0 {
		p("AttributesExC", fmt.Sprintf("0x%X", uint32(s.AttributesExC)))
	}
	if s.TargetFlags != 0 {
		p("TargetFlags", fmt.Sprintf("0x%X", uint32(s.TargetFlags)))
	}
	if s.CastDelay != 0 {
		p("CastDelay", s.CastDelay)
	}
	if s.CooldownTime != 0 {
		p("Cooldown", s.CooldownTime)
	}
	if s.CategoryCooldownTime != 0 {
		p("CategoryCooldown", s.CategoryCooldownTime)
	}
	if s.ProcTriggerFlags != 0 {
		p("ProcTriggerFlags", fmt.Sprintf("0x%X", uint32(s.ProcTriggerFlags)))
	}
	if s.ProcChance != 0 {
		p("ProcChance", s.ProcChance)
	}
	if s.ProcCharges != 0 {
		p("ProcCharges", s.ProcCharges)
	}
	if s.BaseLevel != 0 || s.MaxLevel != 0 {
		p("Levels", fmt.Sprintf("%d-%d (spell level %d)", s.BaseLevel, s.MaxLevel, s.Level))
	}
	if s.Durations.Min != 0 || s.Durations.Max != 0 {
		p("Duration", fmt.Sprintf("%d-%d", s.Durations.Min, s.Durations.Max))
	}
	if s.PowerCost != 0 || s.PowerCostPercentage != 0 {
		p("PowerCost", fmt.Sprintf("%d %s (+%d/lvl, %d%%)", s.PowerCost, s.PowerType, s.PowerCostPerLevel, s.PowerCostPercentage))
	}
	p("Range", fmt.Sprintf("%g-%g", s.Range.MinDist, s.Range.MaxDist))
	if s.MaxStackCount != 0 {
		p("MaxStackCount", s.MaxStackCount)
	}
	if len(s.RequiredToolIDs) > 0 {
		p("RequiredTools", s.RequiredToolIDs)
	}
	if s.RequiredItemClass != constants.ItemClassNone {
		p("RequiredItem", fmt.Sprintf("class %d mask 0x%X", s.RequiredItemClass, uint32(s.RequiredItemSubClassMask)))
	}
	if s.SpellClassSet != 0 {
		p("SpellClassSet", s.SpellClassSet)
		p("SpellClassMask", fmt.Sprintf("%08X%08X%08X", s.SpellClassMask[0], s.SpellClassMask[1], s.SpellClassMask[2]))
	}
	p("Schools", s.Schools)
	p("HarmType", s.HarmType)
	if s.IsPassive {
		p("Passive", true)
	}
	if s.IsChanneled {
		p("Channeled", fmt.Sprintf("amplitude %d", s.ChannelAmplitude))
	}
	if s.IsWeaponAbility {
		p("WeaponAbility", s.EquipmentSlot)
	}
	if s.IsFinishingMove {
		p("FinishingMove", true)
	}
	if s.LearnSpell != nil {
		p("Teaches", s.LearnSpell)
	}
	if s.Ability != nil {
		p("Skill", s.Ability.SkillInfo())
	}
	if s.Talent != nil {
		p("Talent", s.Talent.Tree)
	}
	for _, t := range s.CasterTriggerSpells {
		p("CasterTrigger", t)
	}
	for _, t := range s.TargetTriggerSpells {
		p("TargetTrigger", t)
	}
	if len(s.CasterProcSpells) > 0 {
		p("CasterProcSpells", len(s.CasterProcSpells))
	}
	if len(s.TargetProcSpells) > 0 {
		p("TargetProcSpells", len(s.TargetProcSpells))
	}

	for _, e := range s.Effects {
		e.DumpInfo(w, in)
	}
}
