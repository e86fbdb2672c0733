package world

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/class"
	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/core/ecs"
	"github.com/realmcore/server/internal/core/event"
	"github.com/realmcore/server/internal/spell"
	"github.com/realmcore/server/internal/unit"
)

// Player is a character in the world.
type Player struct {
	*unit.Unit
	CharID    uint32
	Cooldowns *spell.PlayerCooldowns
}

// PlayerParams describe a character entering the world.
type PlayerParams struct {
	CharID   uint32
	Class    constants.ClassID
	Level    int
	Faction  constants.FactionTemplateID
	Spells   []spell.ID
	Location Location
}

// AddPlayer creates the unit of a character, loads its cooldowns and puts
// it into the world.
func (s *State) AddPlayer(ctx context.Context, pp PlayerParams) (*Player, error) {
	if _, ok := s.byCharID[pp.CharID]; ok {
		return nil, fmt.Errorf("add player %d: %w", pp.CharID, ErrPlayerInWorld)
	}
	var cls *class.Class
	if s.classes != nil {
		cls = s.classes.Get(pp.Class)
	}
	if cls == nil {
		return nil, fmt.Errorf("add player %d class %d: %w", pp.CharID, pp.Class, ErrUnknownClass)
	}

	cds := spell.NewPlayerCooldowns(pp.CharID, s.cooldowns, s.Now)
	if err := cds.Load(ctx); err != nil {
		return nil, fmt.Errorf("add player %d: %w", pp.CharID, err)
	}

	u := unit.New(s.ctx, unit.Params{
		ID:        s.ecs.CreateEntity(ecs.HighPlayer),
		Class:     cls,
		Cooldowns: cds,
	})
	u.SetFactionID(pp.Faction)
	u.SetLevel(pp.Level)
	u.SetHealth(u.MaxHealth())
	u.SetPower(u.MaxPower())

	p := &Player{Unit: u, CharID: pp.CharID, Cooldowns: cds}
	for _, id := range pp.Spells {
		if err := u.Spells.AddSpellByID(s.ctx.Spells, id); err != nil {
			s.log.Warn("stored spell skipped", zap.Uint32("char_id", pp.CharID), zap.Error(err))
		}
	}

	s.players.Set(u.EntityID(), p)
	s.byCharID[pp.CharID] = u.EntityID()
	s.add(u, pp.Location)
	s.log.Info("player entered world",
		zap.Uint32("char_id", pp.CharID), zap.Stringer("class", cls), zap.Int("level", u.Level()))
	return p, nil
}

// RemovePlayer saves the player's cooldowns and takes it out of the world.
// The player is removed even when the save fails.
func (s *State) RemovePlayer(ctx context.Context, charID uint32) error {
	p := s.GetByCharID(charID)
	if p == nil {
		return fmt.Errorf("remove player %d: %w", charID, ErrNotInWorld)
	}
	err := p.Cooldowns.Save(ctx)
	s.Despawn(p.EntityID())
	if err != nil {
		return fmt.Errorf("remove player %d: %w", charID, err)
	}
	return nil
}

// Learn teaches the player a spell and announces it.
func (p *Player) Learn(id spell.ID) error {
	if p.Spells.Contains(id) {
		return nil
	}
	if err := p.Spells.AddSpellByID(p.Context().Spells, id); err != nil {
		return err
	}
	event.Emit(p.Context().Bus, event.SpellLearned{Unit: p.EntityID(), SpellID: uint32(id)})
	return nil
}
