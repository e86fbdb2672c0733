package system

import (
	"time"

	coresys "github.com/realmcore/server/internal/core/system"
	"github.com/realmcore/server/internal/unit"
	"github.com/realmcore/server/internal/world"
)

// AuraTickSystem ticks periodic aura effects and expires auras on every unit
// in the world. Phase 2 (Update).
type AuraTickSystem struct {
	world *world.State
}

func NewAuraTickSystem(ws *world.State) *AuraTickSystem {
	return &AuraTickSystem{world: ws}
}

func (s *AuraTickSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *AuraTickSystem) Update(dt time.Duration) {
	s.world.AllUnits(func(u *unit.Unit) {
		if u.IsInWorld() {
			u.Auras.Update(dt)
		}
	})
}
