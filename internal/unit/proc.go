package unit

import (
	"github.com/realmcore/server/internal/spell"
)

// procHandler is a spell proc template bound to the aura that brought it.
type procHandler struct {
	tmpl    *spell.ProcHandlerTemplate
	aura    *Aura
	charges int
}

func (u *Unit) registerProcHandlers(a *Aura) {
	add := func(ts []*spell.ProcHandlerTemplate) {
		for _, t := range ts {
			ph := &procHandler{tmpl: t, aura: a, charges: t.Charges}
			a.procs = append(a.procs, ph)
			u.procHandlers = append(u.procHandlers, ph)
		}
	}
	add(a.Spell.CasterProcHandlers)
	add(a.Spell.TargetProcHandlers)
}

func (u *Unit) unregisterProcHandlers(a *Aura) {
	if len(a.procs) == 0 {
		return
	}
	kept := u.procHandlers[:0]
	for _, ph := range u.procHandlers {
		if ph.aura != a {
			kept = append(kept, ph)
		}
	}
	u.procHandlers = kept
	a.procs = nil
}

func (u *Unit) rollChance(chance int) bool {
	if chance <= 0 || chance >= 100 {
		return true
	}
	return u.ctx.rnd().Intn(100) < chance
}

// Proc lets the auras of u react to action. active is true when u performed
// the action and false when it was the victim.
func (u *Unit) Proc(action *spell.ProcAction, active bool) {
	if action == nil || action.Flags == spell.ProcNone {
		return
	}

	for _, a := range u.Auras.All() {
		if a.removed {
			continue
		}
		sp := a.Spell
		if !sp.ProcTriggerFlags.HasAnyFlag(action.Flags) || action.Spell == sp {
			continue
		}
		if !sp.CanProcBeTriggeredBy(u, action, active) {
			continue
		}
		if !u.rollChance(u.ApplySpellModifier(spell.ModProcChance, sp, sp.ProcChance)) {
			continue
		}

		fired := false
		for _, e := range a.effects {
			if !e.ctx.Effect.IsProc {
				continue
			}
			h, ok := e.handler.(spell.ProcAuraHandler)
			if !ok || !h.CanProcBeTriggeredBy(&e.ctx, action) {
				continue
			}
			h.OnProc(&e.ctx, action)
			fired = true
			if a.removed {
				break
			}
		}
		if fired && a.Charges > 0 {
			a.Charges--
			if a.Charges == 0 {
				u.Auras.Remove(a, false)
			}
		}
	}

	u.runProcHandlers(action, active)
}

func (u *Unit) runProcHandlers(action *spell.ProcAction, active bool) {
	for _, ph := range append([]*procHandler(nil), u.procHandlers...) {
		t := ph.tmpl
		if ph.aura.removed || t.IsAttackerTriggerer != active || !t.Flags.HasAnyFlag(action.Flags) {
			continue
		}
		if t.Validator != nil && !t.Validator(u, action) {
			continue
		}
		if !u.rollChance(t.Chance) {
			continue
		}
		if !t.Handler(u, action, t) || ph.charges <= 0 {
			continue
		}
		ph.charges--
		if ph.charges == 0 {
			u.Auras.Remove(ph.aura, false)
		}
	}
}
