package world

import (
	"go.uber.org/zap"

	"github.com/realmcore/server/internal/core/event"
	"github.com/realmcore/server/internal/npc"
	"github.com/realmcore/server/internal/spell"
	"github.com/realmcore/server/internal/unit"
)

// AddSummon spawns entryID next to the summoner as its minion. A summoner
// keeps one summon: the previous one is despawned.
func (s *State) AddSummon(summoner *unit.Unit, entryID uint32, spellID spell.ID) (*npc.NPC, error) {
	loc, _ := s.LocationOf(summoner.EntityID())
	if old := summoner.Summon(); !old.IsZero() {
		summoner.SetSummon(0)
		s.Despawn(old)
	}

	n, err := s.AddNpc(entryID, loc)
	if err != nil {
		return nil, err
	}
	n.SetSummoner(summoner.EntityID())
	n.SetCreator(summoner.EntityID())
	n.SetCreationSpellID(spellID)
	n.SetMaster(summoner)
	if f := summoner.Faction(); f != nil {
		if err := n.SetFaction(f); err != nil {
			s.log.Warn("summon faction", zap.Uint32("entry", entryID), zap.Uint32("spell_id", uint32(spellID)), zap.Error(err))
		}
	}
	n.SetLevel(max(summoner.Level(), n.Level()))
	summoner.SetSummon(n.EntityID())

	if t := s.summonerTarget(summoner); t != nil {
		n.Threat().Add(t.EntityID(), 1)
		n.SetTarget(t)
		n.EnterCombat(t)
	}
	return n, nil
}

// GetSummon returns the current summon of a unit, or nil.
func (s *State) GetSummon(summoner *unit.Unit) *npc.NPC {
	id := summoner.Summon()
	if id.IsZero() {
		return nil
	}
	return s.GetNpc(id)
}

// summonerTarget is what the summon should attack: the summoner's target or
// else whoever the summoner hates most.
func (s *State) summonerTarget(summoner *unit.Unit) *unit.Unit {
	if t := summoner.Target(); t != nil && t.IsAlive() {
		return t
	}
	if summoner.Threat().Len() == 0 {
		return nil
	}
	t := s.Lookup(summoner.Threat().Top())
	if t == nil || !t.IsAlive() {
		return nil
	}
	return t
}

func (s *State) onSummonRequested(e event.SummonRequested) {
	summoner := s.Lookup(e.Summoner)
	if summoner == nil || !summoner.IsAlive() {
		return
	}
	n, err := s.AddSummon(summoner, e.EntryID, spell.ID(e.SpellID))
	if err != nil {
		s.log.Warn("summon failed",
			zap.Uint64("summoner", uint64(e.Summoner)), zap.Uint32("entry", e.EntryID), zap.Error(err))
		return
	}
	s.log.Debug("summoned",
		zap.Uint64("summoner", uint64(e.Summoner)), zap.Uint64("summon", uint64(n.EntityID())),
		zap.Uint32("entry", e.EntryID))
}
