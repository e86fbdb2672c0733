package system

import (
	"time"

	coresys "github.com/realmcore/server/internal/core/system"
	"github.com/realmcore/server/internal/unit"
	"github.com/realmcore/server/internal/world"
)

// RegenScript supplies the number of ticks between regen passes. Zero or
// less means the script does not set one.
type RegenScript interface {
	RegenInterval() int
}

// RegenSystem runs a health and power regen pass on every living unit each
// interval ticks. Phase 3 (PostUpdate).
type RegenSystem struct {
	world     *world.State
	interval  int           // ticks between passes
	period    time.Duration // interval in game time
	tickCount int
}

// NewRegenSystem takes the pass interval from the script when it sets one,
// otherwise fallback is rounded to whole ticks.
func NewRegenSystem(ws *world.State, script RegenScript, tickRate, fallback time.Duration) *RegenSystem {
	ticks := 0
	if script != nil {
		ticks = script.RegenInterval()
	}
	if ticks <= 0 {
		ticks = int(fallback / tickRate)
	}
	ticks = max(ticks, 1)
	return &RegenSystem{
		world:    ws,
		interval: ticks,
		period:   time.Duration(ticks) * tickRate,
	}
}

func (s *RegenSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

// Interval is the number of ticks between regen passes.
func (s *RegenSystem) Interval() int { return s.interval }

func (s *RegenSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.world.AllUnits(func(u *unit.Unit) {
		if u.IsInWorld() {
			u.Regenerate(s.period)
		}
	})
}
