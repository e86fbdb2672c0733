package system

import (
	"time"

	coresys "github.com/realmcore/server/internal/core/system"
	"github.com/realmcore/server/internal/world"
)

// CleanupSystem removes expired corpses and flushes the deferred entity
// destruction queue at tick end. Phase 6 (Cleanup).
type CleanupSystem struct {
	world *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.ReapCorpses()
	s.world.ECS().FlushDestroyQueue()
}
