package spell

// Effect returns the first effect of type t, or nil.
func (s *Spell) Effect(t EffectType) *Effect {
	for _, e := range s.Effects {
		if e.Type == t {
			return e
		}
	}
	return nil
}

// AuraEffect returns the first aura-applying effect with aura type t, or nil.
func (s *Spell) AuraEffect(t AuraType) *Effect {
	for _, e := range s.Effects {
		if e.Type.IsAuraApplying() && e.AuraType == t {
			return e
		}
	}
	return nil
}

func (s *Spell) HasEffect(t EffectType) bool { return s.Effect(t) != nil }

func (s *Spell) HasEffectWith(pred func(*Effect) bool) bool {
	return s.FirstEffectWith(pred) != nil
}

func (s *Spell) FirstEffectWith(pred func(*Effect) bool) *Effect {
	for _, e := range s.Effects {
		if pred(e) {
			return e
		}
	}
	return nil
}

// EffectsWith returns every effect that matches pred, in index order.
func (s *Spell) EffectsWith(pred func(*Effect) bool) []*Effect {
	var out []*Effect
	for _, e := range s.Effects {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// ForeachEffect calls fn for every effect in index order.
func (s *Spell) ForeachEffect(fn func(*Effect)) {
	for _, e := range s.Effects {
		fn(e)
	}
}

// AddEffect appends a new effect of type t and returns it.
func (s *Spell) AddEffect(t EffectType) *Effect {
	e := newEffect(s, len(s.Effects), t)
	s.Effects = append(s.Effects, e)
	return e
}

// AddAuraEffect appends an ApplyAura effect. The target defaults to the caster.
func (s *Spell) AddAuraEffect(t AuraType, targets ...ImplicitTargetType) *Effect {
	e := s.AddEffect(EffectApplyAura)
	e.AuraType = t
	e.ImplicitTargetA = firstTarget(targets, TargetSelf)
	return e
}

// AddCustomAuraEffect adds a Dummy aura whose handler comes from creator.
func (s *Spell) AddCustomAuraEffect(creator AuraHandlerCreator, targets ...ImplicitTargetType) *Effect {
	e := s.AddAuraEffect(AuraDummy, targets...)
	e.AuraHandlerCreator = creator
	return e
}

// AddTriggerSpellEffect adds an effect that casts the given spell.
func (s *Spell) AddTriggerSpellEffect(triggered ID, targets ...ImplicitTargetType) *Effect {
	e := s.AddEffect(EffectTriggerSpell)
	e.TriggerSpellID = triggered
	e.ImplicitTargetA = firstTarget(targets, TargetSelf)
	return e
}

// AddPeriodicTriggerSpellEffect adds an aura that casts the given spell every tick.
func (s *Spell) AddPeriodicTriggerSpellEffect(triggered ID, amplitude int, targets ...ImplicitTargetType) *Effect {
	e := s.AddAuraEffect(AuraPeriodicTriggerSpell, targets...)
	e.TriggerSpellID = triggered
	e.Amplitude = amplitude
	return e
}

// ReplaceEffect puts a blank effect in place of the first effect of type t.
// Without such an effect a blank one is appended.
func (s *Spell) ReplaceEffect(t EffectType) *Effect {
	for i, e := range s.Effects {
		if e.Type == t {
			return s.ReplaceEffectAt(i, EffectNone)
		}
	}
	return s.AddEffect(EffectNone)
}

// ReplaceEffectAt discards the effect at the given index and puts a blank
// effect of type t in its place.
func (s *Spell) ReplaceEffectAt(index int, t EffectType) *Effect {
	if index < 0 || index >= len(s.Effects) {
		return nil
	}
	e := newEffect(s, index, t)
	s.Effects[index] = e
	return e
}

// RemoveEffect drops the effect at index and renumbers the rest.
func (s *Spell) RemoveEffect(index int) {
	if index < 0 || index >= len(s.Effects) {
		return
	}
	s.Effects = append(s.Effects[:index], s.Effects[index+1:]...)
	for i, e := range s.Effects {
		e.Index = i
	}
}

func (s *Spell) ClearEffects() { s.Effects = nil }

func firstTarget(targets []ImplicitTargetType, def ImplicitTargetType) ImplicitTargetType {
	if len(targets) > 0 {
		return targets[0]
	}
	return def
}
