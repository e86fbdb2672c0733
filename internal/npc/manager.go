package npc

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/data"
	"github.com/realmcore/server/internal/scripting"
	"github.com/realmcore/server/internal/spell"
)

var ErrUnknownEntry = errors.New("unknown npc entry")

// Scaler adjusts health and power of an NPC for the level it spawned at.
// *scripting.Engine implements it.
type Scaler interface {
	ScaleNpc(ctx scripting.NpcScaleContext) scripting.ScaleResult
}

// Manager holds every NPC entry. Entries are changed by content code during
// startup and read-only once the world runs.
type Manager struct {
	entries map[uint32]*Entry
	spawns  []data.SpawnEntry
	brains  map[string]BrainCreator
	spells  *spell.Handler
	scaler  Scaler
	log     *zap.Logger
}

// NewManager converts the loaded table into entries. Spell ids listed in the
// table are resolved against spells; unknown ids are logged and skipped.
func NewManager(table *data.NpcTable, spells *spell.Handler, scaler Scaler, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		entries: make(map[uint32]*Entry),
		brains:  map[string]BrainCreator{"mob": NewMobBrain},
		spells:  spells,
		scaler:  scaler,
		log:     log,
	}
	if table == nil {
		return m
	}
	m.spawns = table.Spawns()
	for _, raw := range table.All() {
		e := newEntry(m, raw)
		for _, id := range raw.Spells {
			if err := e.AddSpell(spell.ID(id)); err != nil {
				log.Warn("npc spell skipped", zap.Uint32("npc", raw.ID), zap.Error(err))
			}
		}
		m.entries[e.ID] = e
	}
	return m
}

func (m *Manager) Spells() *spell.Handler { return m.spells }

// Add registers an entry built in code, replacing one with the same id.
func (m *Manager) Add(e *Entry) {
	e.mgr = m
	e.MinLevel = max(e.MinLevel, 1)
	e.MaxLevel = max(e.MaxLevel, e.MinLevel)
	if e.AttackTime <= 0 {
		e.AttackTime = 2000
	}
	if e.cooldowns == nil {
		e.cooldowns = make(map[spell.ID]cooldownRange)
	}
	m.entries[e.ID] = e
}

// RegisterBrain makes a brain available to entries by name.
func (m *Manager) RegisterBrain(name string, c BrainCreator) {
	m.brains[name] = c
}

// Entry returns the entry with the given id, or nil.
func (m *Manager) Entry(id uint32) *Entry { return m.entries[id] }

// MustEntry returns the entry with the given id or ErrUnknownEntry.
func (m *Manager) MustEntry(id uint32) (*Entry, error) {
	e := m.entries[id]
	if e == nil {
		return nil, fmt.Errorf("npc %d: %w", id, ErrUnknownEntry)
	}
	return e, nil
}

// Entries returns every entry ordered by id.
func (m *Manager) Entries() []*Entry {
	out := make([]*Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EntriesOnMap returns the entries that live on the given map.
func (m *Manager) EntriesOnMap(mapID uint32) []*Entry {
	var out []*Entry
	for _, e := range m.Entries() {
		if e.MapID == mapID {
			out = append(out, e)
		}
	}
	return out
}

func (m *Manager) Count() int { return len(m.entries) }

// Spawns returns the spawn list of the given map.
func (m *Manager) Spawns(mapID uint32) []data.SpawnEntry {
	var out []data.SpawnEntry
	for _, s := range m.spawns {
		if s.MapID == mapID {
			out = append(out, s)
		}
	}
	return out
}

func (m *Manager) AllSpawns() []data.SpawnEntry { return m.spawns }

// brainFor resolves the brain creator of e: its own, then a named one, then
// the default mob brain.
func (m *Manager) brainFor(e *Entry) BrainCreator {
	if e.BrainCreator != nil {
		return e.BrainCreator
	}
	if e.BrainName != "" {
		if c, ok := m.brains[e.BrainName]; ok {
			return c
		}
		m.log.Warn("unknown brain, using mob brain", zap.String("brain", e.BrainName), zap.Uint32("npc", e.ID))
	}
	return NewMobBrain
}
