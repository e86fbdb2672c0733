package system

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/core/event"
	coresys "github.com/realmcore/server/internal/core/system"
	"github.com/realmcore/server/internal/spell"
	"github.com/realmcore/server/internal/world"
)

const saveTimeout = 5 * time.Second

// SpellStore keeps the spells characters have learned.
type SpellStore interface {
	Add(ctx context.Context, charID uint32, ids ...spell.ID) error
}

// CooldownPersistSystem periodically saves the cooldowns of players that
// changed them and stores newly learned spells. Phase 5 (Persist).
type CooldownPersistSystem struct {
	world     *world.State
	spells    SpellStore
	log       *zap.Logger
	learned   map[uint32][]spell.ID
	tickCount int
	interval  int // auto-save every N ticks
}

func NewCooldownPersistSystem(ws *world.State, spells SpellStore, log *zap.Logger, intervalTicks int) *CooldownPersistSystem {
	s := &CooldownPersistSystem{
		world:    ws,
		spells:   spells,
		log:      log,
		learned:  make(map[uint32][]spell.ID),
		interval: max(intervalTicks, 1),
	}
	event.Subscribe(ws.Bus(), s.onSpellLearned)
	return s
}

func (s *CooldownPersistSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *CooldownPersistSystem) onSpellLearned(e event.SpellLearned) {
	if s.spells == nil {
		return
	}
	p := s.world.GetPlayer(e.Unit)
	if p == nil {
		return
	}
	s.learned[p.CharID] = append(s.learned[p.CharID], spell.ID(e.SpellID))
}

func (s *CooldownPersistSystem) Update(_ time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.saveLearned(ctx); err != nil {
		s.log.Error("save learned spells", zap.Error(err))
	}

	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	if err := s.world.PersistAll(ctx); err != nil {
		s.log.Error("auto-save cooldowns", zap.Error(err))
	}
}

// SaveAll stores everything pending. Called on shutdown.
func (s *CooldownPersistSystem) SaveAll(ctx context.Context) error {
	return errors.Join(s.saveLearned(ctx), s.world.PersistAll(ctx))
}

// saveLearned writes the queued spells. Characters whose write failed stay
// queued for the next tick.
func (s *CooldownPersistSystem) saveLearned(ctx context.Context) error {
	if len(s.learned) == 0 {
		return nil
	}
	var errs []error
	for charID, ids := range s.learned {
		if err := s.spells.Add(ctx, charID, ids...); err != nil {
			errs = append(errs, err)
			continue
		}
		delete(s.learned, charID)
		s.log.Debug("learned spells saved", zap.Uint32("char_id", charID), zap.Int("count", len(ids)))
	}
	return errors.Join(errs...)
}
