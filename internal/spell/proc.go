package spell

import (
	"fmt"

	"github.com/realmcore/server/internal/constants"
)

// WeaponInfo describes the weapon used in an attack action.
type WeaponInfo struct {
	ItemClass    constants.ItemClass
	SubClass     int
	IsRanged     bool
	MinDamage    float32
	MaxDamage    float32
	AttackTimeMs int
}

// ProcAction is the event an aura proc is evaluated against.
type ProcAction struct {
	Attacker Actor
	Victim   Actor
	Spell    *Spell
	Weapon   *WeaponInfo
	IsAttack bool
	Damage   int
	Flags    ProcTriggerFlags
}

// ProcHandler runs when a proc fires. Returning false keeps the charge.
type ProcHandler func(owner Actor, action *ProcAction, tmpl *ProcHandlerTemplate) bool

// ProcHandlerTemplate is a spell level proc callback attached to units that
// receive the spell.
type ProcHandlerTemplate struct {
	Flags       ProcTriggerFlags
	Chance      int
	Charges     int
	Validator   func(owner Actor, action *ProcAction) bool
	Handler     ProcHandler
	EffectValue int

	// IsAttackerTriggerer selects whether the proc fires for the caster
	// (true) or the target (false) of the triggering action.
	IsAttackerTriggerer bool
}

// AddTargetTriggerSpells sets spells cast on the target after this spell hits.
func (s *Spell) AddTargetTriggerSpells(h *Handler, ids ...ID) error {
	for _, id := range ids {
		sp := h.Get(id)
		if sp == nil {
			return fmt.Errorf("target trigger %d of %s: %w", id, s, ErrUnknownSpell)
		}
		s.TargetTriggerSpells = append(s.TargetTriggerSpells, sp)
	}
	return nil
}

// AddCasterTriggerSpells sets spells cast on the caster after this spell is cast.
func (s *Spell) AddCasterTriggerSpells(h *Handler, ids ...ID) error {
	for _, id := range ids {
		sp := h.Get(id)
		if sp == nil {
			return fmt.Errorf("caster trigger %d of %s: %w", id, s, ErrUnknownSpell)
		}
		s.CasterTriggerSpells = append(s.CasterTriggerSpells, sp)
	}
	return nil
}

// AddCasterProcSpells limits the auras of this spell to procs caused by the
// given spells cast by the aura owner.
func (s *Spell) AddCasterProcSpells(h *Handler, ids ...ID) error {
	if s.CasterProcSpells == nil {
		s.CasterProcSpells = make(map[*Spell]struct{})
	}
	for _, id := range ids {
		sp := h.Get(id)
		if sp == nil {
			return fmt.Errorf("caster proc spell %d of %s: %w", id, s, ErrUnknownSpell)
		}
		s.CasterProcSpells[sp] = struct{}{}
	}
	s.ProcTriggerFlags |= ProcSpellCast
	return nil
}

// AddCasterProcLines adds every rank of the given lines as caster proc spells.
func (s *Spell) AddCasterProcLines(h *Handler, lines ...LineID) error {
	if s.CasterProcSpells == nil {
		s.CasterProcSpells = make(map[*Spell]struct{})
	}
	for _, id := range lines {
		l := h.Line(id)
		if l == nil {
			return fmt.Errorf("caster proc line %s of %s: %w", id, s, ErrUnknownLine)
		}
		for _, sp := range l.Spells() {
			s.CasterProcSpells[sp] = struct{}{}
		}
	}
	s.ProcTriggerFlags |= ProcSpellCast
	return nil
}

// AddTargetProcSpells limits the auras of this spell to procs caused by the
// given spells cast on the aura owner.
func (s *Spell) AddTargetProcSpells(h *Handler, ids ...ID) error {
	if s.TargetProcSpells == nil {
		s.TargetProcSpells = make(map[*Spell]struct{})
	}
	for _, id := range ids {
		sp := h.Get(id)
		if sp == nil {
			return fmt.Errorf("target proc spell %d of %s: %w", id, s, ErrUnknownSpell)
		}
		s.TargetProcSpells[sp] = struct{}{}
	}
	s.ProcTriggerFlags |= ProcSpellCast
	return nil
}

func (s *Spell) AddTargetProcLines(h *Handler, lines ...LineID) error {
	if s.TargetProcSpells == nil {
		s.TargetProcSpells = make(map[*Spell]struct{})
	}
	for _, id := range lines {
		l := h.Line(id)
		if l == nil {
			return fmt.Errorf("target proc line %s of %s: %w", id, s, ErrUnknownLine)
		}
		for _, sp := range l.Spells() {
			s.TargetProcSpells[sp] = struct{}{}
		}
	}
	s.ProcTriggerFlags |= ProcSpellCast
	return nil
}

func (s *Spell) AddCasterProcHandler(t *ProcHandlerTemplate) {
	t.IsAttackerTriggerer = true
	s.CasterProcHandlers = append(s.CasterProcHandlers, t)
}

func (s *Spell) AddTargetProcHandler(t *ProcHandlerTemplate) {
	t.IsAttackerTriggerer = false
	s.TargetProcHandlers = append(s.TargetProcHandlers, t)
}

// CanProcBeTriggeredBy reports whether an aura of this spell on owner may
// proc from action. active is true when owner performed the action.
func (s *Spell) CanProcBeTriggeredBy(owner Actor, action *ProcAction, active bool) bool {
	if action == nil {
		return false
	}
	if active && s.CasterProcSpells != nil {
		_, ok := s.CasterProcSpells[action.Spell]
		return action.Spell != nil && ok
	}
	if !active && s.TargetProcSpells != nil {
		_, ok := s.TargetProcSpells[action.Spell]
		return action.Spell != nil && ok
	}
	if s.RequiredItemClass != constants.ItemClassNone {
		if !action.IsAttack || action.Weapon == nil {
			return false
		}
		if action.Weapon.ItemClass != s.RequiredItemClass {
			return false
		}
		return s.RequiredItemSubClassMask == 0 || s.RequiredItemSubClassMask.HasFlag(action.Weapon.SubClass)
	}
	return true
}
