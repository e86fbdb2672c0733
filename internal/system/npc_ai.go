package system

import (
	"time"

	coresys "github.com/realmcore/server/internal/core/system"
	"github.com/realmcore/server/internal/npc"
	"github.com/realmcore/server/internal/world"
)

// NpcAISystem runs the brain of every living NPC. Phase 2 (Update).
type NpcAISystem struct {
	world *world.State
}

func NewNpcAISystem(ws *world.State) *NpcAISystem {
	return &NpcAISystem{world: ws}
}

func (s *NpcAISystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *NpcAISystem) Update(dt time.Duration) {
	s.world.AllNpcs(func(n *npc.NPC) {
		n.Update(dt)
	})
}
