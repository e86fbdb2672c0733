package unit

import (
	"time"

	"github.com/realmcore/server/internal/scripting"
)

// npcRegenPct is the share of max health a classless unit regains per pass
// out of combat.
const npcRegenPct = 5

func (u *Unit) regenContext() scripting.RegenContext {
	return scripting.RegenContext{
		StatContext: u.statContext(),
		InCombat:    u.inCombat,
		Power:       u.Power(),
		MaxPower:    u.MaxPower(),
	}
}

// Regenerate runs one regen pass. interval is the time between passes: the
// class power gain of one pass is spread over it through the interpolated
// power rate. Units without a class only heal, and only out of combat.
func (u *Unit) Regenerate(interval time.Duration) {
	if !u.IsAlive() {
		return
	}
	c := u.class
	if c == nil {
		if !u.inCombat && u.Health() < u.MaxHealth() {
			u.Heal(max(u.MaxHealth()*npcRegenPct/100, 1), u, nil)
		}
		return
	}

	ctx := u.regenContext()
	if hp := c.HealthRegen(ctx); hp > 0 && u.Health() < u.MaxHealth() {
		u.Heal(hp, u, nil)
	}
	if interval <= 0 {
		interval = time.Second
	}
	perPass := c.PowerRegen(ctx)
	u.SetPowerRegenPerSecond(int(int64(perPass) * int64(time.Second) / int64(interval)))
}
