package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/core/ecs"
	coresys "github.com/realmcore/server/internal/core/system"
	"github.com/realmcore/server/internal/net/packet"
	"github.com/realmcore/server/internal/unit"
	"github.com/realmcore/server/internal/world"
)

// UpdateSink receives one field delta block per changed unit.
type UpdateSink interface {
	SendUpdate(id ecs.EntityID, block []byte)
}

// LogSink logs the size of every delta block. It stands in for the client
// connections.
type LogSink struct {
	Log *zap.Logger
}

func (l LogSink) SendUpdate(id ecs.EntityID, block []byte) {
	l.Log.Debug("unit update", zap.Uint64("entity", uint64(id)), zap.Int("bytes", len(block)))
}

// UpdateFlushSystem writes the changed fields of every unit into the sink and
// clears the dirty masks. Interpolated power is written back into the power
// field every power interval. Phase 4 (Output).
type UpdateFlushSystem struct {
	world      *world.State
	sink       UpdateSink
	powerEvery time.Duration
	sincePower time.Duration
}

func NewUpdateFlushSystem(ws *world.State, sink UpdateSink, powerInterval time.Duration) *UpdateFlushSystem {
	return &UpdateFlushSystem{world: ws, sink: sink, powerEvery: powerInterval}
}

func (s *UpdateFlushSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *UpdateFlushSystem) Update(dt time.Duration) {
	s.sincePower += dt
	flushPower := s.sincePower >= s.powerEvery
	if flushPower {
		s.sincePower = 0
	}

	s.world.AllUnits(func(u *unit.Unit) {
		if !u.IsInWorld() {
			return
		}
		if flushPower {
			u.FlushPower()
		}
		if !u.HasUpdates() {
			return
		}
		w := packet.NewWriter()
		u.WriteUpdate(w, false)
		s.sink.SendUpdate(u.EntityID(), w.Bytes())
		u.ClearUpdates()
	})
}
