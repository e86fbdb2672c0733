package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/class"
	"github.com/realmcore/server/internal/core/ecs"
	"github.com/realmcore/server/internal/core/event"
	"github.com/realmcore/server/internal/instance"
	"github.com/realmcore/server/internal/npc"
	"github.com/realmcore/server/internal/spell"
	"github.com/realmcore/server/internal/unit"
)

// DefaultCorpseDelay is used when Params.CorpseDelay is zero.
const DefaultCorpseDelay = time.Minute

var (
	ErrPlayerInWorld = errors.New("player already in world")
	ErrUnknownClass  = errors.New("unknown class")
	ErrNotInWorld    = errors.New("entity not in world")
)

// Location places an entity on a map. InstanceID is zero outside dungeons.
type Location struct {
	MapID      uint32
	InstanceID uint32
}

// Params are the dependencies of a State.
type Params struct {
	Bus       *event.Bus
	Spells    *spell.Handler
	NPCs      *npc.Manager
	Dungeons  *instance.Registry
	Classes   *class.Registry
	Models    *unit.Models
	Factions  *unit.Factions
	Cooldowns spell.CooldownStore // nil keeps player cooldowns in memory only
	Start     time.Time
	Rand      *rand.Rand
	// CorpseDelay is how long dead NPCs stay before ReapCorpses removes them.
	CorpseDelay time.Duration
	Log         *zap.Logger
}

// State owns every entity of the region. Accessed only from the game loop
// goroutine, so no locks.
type State struct {
	ecs     *ecs.World
	units   *ecs.PtrComponentStore[unit.Unit]
	npcs    *ecs.PtrComponentStore[npc.NPC]
	players *ecs.PtrComponentStore[Player]
	locs    *ecs.PtrComponentStore[Location]

	byCharID  map[uint32]ecs.EntityID
	corpses   map[ecs.EntityID]time.Time
	instances map[uint32]*instance.Instance

	entries     *npc.Manager
	dungeons    *instance.Registry
	classes     *class.Registry
	cooldowns   spell.CooldownStore
	corpseDelay time.Duration

	now time.Time
	ctx *unit.Context
	log *zap.Logger
}

func NewState(p Params) *State {
	if p.Log == nil {
		p.Log = zap.NewNop()
	}
	if p.Bus == nil {
		p.Bus = event.NewBus()
	}
	if p.Start.IsZero() {
		p.Start = time.Now()
	}
	if p.CorpseDelay <= 0 {
		p.CorpseDelay = DefaultCorpseDelay
	}
	s := &State{
		ecs:         ecs.NewWorld(),
		units:       ecs.NewPtrComponentStore[unit.Unit](),
		npcs:        ecs.NewPtrComponentStore[npc.NPC](),
		players:     ecs.NewPtrComponentStore[Player](),
		locs:        ecs.NewPtrComponentStore[Location](),
		byCharID:    make(map[uint32]ecs.EntityID),
		corpses:     make(map[ecs.EntityID]time.Time),
		instances:   make(map[uint32]*instance.Instance),
		entries:     p.NPCs,
		dungeons:    p.Dungeons,
		classes:     p.Classes,
		cooldowns:   p.Cooldowns,
		corpseDelay: p.CorpseDelay,
		now:         p.Start,
		log:         p.Log,
	}
	reg := s.ecs.Registry()
	reg.Register(s.units)
	reg.Register(s.npcs)
	reg.Register(s.players)
	reg.Register(s.locs)

	s.ctx = &unit.Context{
		Bus:      p.Bus,
		Spells:   p.Spells,
		Models:   p.Models,
		Factions: p.Factions,
		Now:      s.Now,
		Rand:     p.Rand,
		Log:      p.Log,
		Lookup:   s.Lookup,
	}

	event.Subscribe(p.Bus, s.onSummonRequested)
	event.Subscribe(p.Bus, s.onUnitDied)
	return s
}

// Now is the region clock. It only moves through Advance.
func (s *State) Now() time.Time { return s.now }

// Advance moves the region clock forward by dt.
func (s *State) Advance(dt time.Duration) { s.now = s.now.Add(dt) }

func (s *State) Context() *unit.Context { return s.ctx }
func (s *State) Bus() *event.Bus        { return s.ctx.Bus }
func (s *State) ECS() *ecs.World        { return s.ecs }

// Lookup returns the unit with id when it is in the world.
func (s *State) Lookup(id ecs.EntityID) *unit.Unit {
	u, ok := s.units.Get(id)
	if !ok || !u.IsInWorld() {
		return nil
	}
	return u
}

// Unit returns the unit with id whether or not it is in the world.
func (s *State) Unit(id ecs.EntityID) *unit.Unit {
	u, _ := s.units.Get(id)
	return u
}

func (s *State) GetNpc(id ecs.EntityID) *npc.NPC {
	n, _ := s.npcs.Get(id)
	return n
}

func (s *State) GetPlayer(id ecs.EntityID) *Player {
	p, _ := s.players.Get(id)
	return p
}

func (s *State) GetByCharID(charID uint32) *Player {
	id, ok := s.byCharID[charID]
	if !ok {
		return nil
	}
	p, _ := s.players.Get(id)
	return p
}

// LocationOf returns where the entity is, or false when it has no location.
func (s *State) LocationOf(id ecs.EntityID) (Location, bool) {
	l, ok := s.locs.Get(id)
	if !ok {
		return Location{}, false
	}
	return *l, true
}

func (s *State) AllUnits(fn func(*unit.Unit)) {
	s.units.Each(func(_ ecs.EntityID, u *unit.Unit) { fn(u) })
}

func (s *State) AllNpcs(fn func(*npc.NPC)) {
	s.npcs.Each(func(_ ecs.EntityID, n *npc.NPC) { fn(n) })
}

func (s *State) AllPlayers(fn func(*Player)) {
	s.players.Each(func(_ ecs.EntityID, p *Player) { fn(p) })
}

// NpcsIn calls fn for every NPC placed at loc.
func (s *State) NpcsIn(loc Location, fn func(*npc.NPC)) {
	ecs.Each2(s.npcs, s.locs, func(_ ecs.EntityID, n *npc.NPC, l *Location) {
		if *l == loc {
			fn(n)
		}
	})
}

func (s *State) UnitCount() int   { return s.units.Len() }
func (s *State) NpcCount() int    { return s.npcs.Len() }
func (s *State) PlayerCount() int { return s.players.Len() }

func (s *State) Instance(id uint32) *instance.Instance { return s.instances[id] }

func (s *State) add(u *unit.Unit, loc Location) {
	id := u.EntityID()
	s.units.Set(id, u)
	l := loc
	s.locs.Set(id, &l)
	u.SetInWorld(true)
}

// AddNpc spawns one NPC of the entry at loc.
func (s *State) AddNpc(entryID uint32, loc Location) (*npc.NPC, error) {
	if s.entries == nil {
		return nil, fmt.Errorf("spawn npc %d: %w", entryID, npc.ErrUnknownEntry)
	}
	e, err := s.entries.MustEntry(entryID)
	if err != nil {
		return nil, fmt.Errorf("spawn npc: %w", err)
	}
	n := e.Create(s.ctx, s.ecs.CreateEntity(ecs.HighUnit))
	s.npcs.Set(n.EntityID(), n)
	s.add(n.Unit, loc)
	return n, nil
}

// CreateInstance starts a new instance of the dungeon on mapID and spawns its
// NPCs. Spawns that fail are reported together; the instance is kept.
func (s *State) CreateInstance(mapID uint32) (*instance.Instance, error) {
	if s.dungeons == nil {
		return nil, fmt.Errorf("create instance of map %d: %w", mapID, instance.ErrUnknownDungeon)
	}
	inst, err := s.dungeons.Create(mapID)
	if err != nil {
		return nil, err
	}
	s.instances[inst.ID] = inst

	loc := Location{MapID: mapID, InstanceID: inst.ID}
	var errs []error
	spawned := 0
	for _, sp := range inst.Spawns {
		for n := 0; n < sp.Count; n++ {
			if _, err := s.AddNpc(sp.NpcID, loc); err != nil {
				errs = append(errs, err)
				break
			}
			spawned++
		}
	}
	s.log.Info("instance populated",
		zap.String("dungeon", inst.Dungeon.ID), zap.Uint32("instance", inst.ID), zap.Int("npcs", spawned))
	return inst, errors.Join(errs...)
}

// Despawn takes the entity out of the world. Its components are dropped by
// the next FlushDestroyQueue.
func (s *State) Despawn(id ecs.EntityID) {
	if !s.ecs.Alive(id) {
		return
	}
	if u, ok := s.units.Get(id); ok {
		if !u.IsInWorld() {
			return
		}
		u.SetInWorld(false)
		if summon := u.Summon(); !summon.IsZero() {
			u.SetSummon(0)
			s.Despawn(summon)
		}
	}
	if p, ok := s.players.Get(id); ok {
		delete(s.byCharID, p.CharID)
	}
	delete(s.corpses, id)
	s.ecs.MarkForDestruction(id)
}

// ReapCorpses despawns NPCs that have been dead for the corpse delay and
// returns how many were removed.
func (s *State) ReapCorpses() int {
	n := 0
	for id, died := range s.corpses {
		if s.now.Sub(died) >= s.corpseDelay {
			s.Despawn(id)
			n++
		}
	}
	return n
}

func (s *State) onUnitDied(e event.UnitDied) {
	u := s.Lookup(e.Unit)
	if u == nil {
		return
	}
	if summoner := u.Summoner(); !summoner.IsZero() {
		if owner := s.Unit(summoner); owner != nil && owner.Summon() == u.EntityID() {
			owner.SetSummon(0)
		}
		s.Despawn(u.EntityID())
		return
	}
	if e.Unit.IsNPC() {
		s.corpses[e.Unit] = s.now
	}
}

// PersistAll saves the cooldowns of every player that changed them.
func (s *State) PersistAll(ctx context.Context) error {
	var errs []error
	s.AllPlayers(func(p *Player) {
		if err := p.Cooldowns.Save(ctx); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}
