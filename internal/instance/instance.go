// Package instance keeps the dungeon templates and creates instances of
// them.
package instance

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/data"
	"github.com/realmcore/server/internal/npc"
)

var (
	ErrUnknownDungeon   = errors.New("unknown dungeon")
	ErrDuplicateDungeon = errors.New("dungeon already registered")
	ErrNotInstanced     = errors.New("map is not instanced")
)

// Initializer prepares the content of a dungeon: NPC spells, brains and
// cooldowns of the entries on its map.
type Initializer func(d *Dungeon, npcs *npc.Manager) error

// Dungeon is an instanced map template.
type Dungeon struct {
	ID    string
	Name  string
	MapID uint32
	Info  *data.MapInfo

	init Initializer
}

// Instance is one running copy of a dungeon.
type Instance struct {
	ID      uint32
	Dungeon *Dungeon
	// Entries are the NPC entries that live on the dungeon's map.
	Entries []*npc.Entry
	Spawns  []data.SpawnEntry
}

// Registry holds every dungeon by map id.
type Registry struct {
	dungeons map[uint32]*Dungeon
	maps     *data.MapDataTable
	npcs     *npc.Manager
	nextID   uint32
	log      *zap.Logger
}

func NewRegistry(maps *data.MapDataTable, npcs *npc.Manager, log *zap.Logger) *Registry {
	return &Registry{
		dungeons: make(map[uint32]*Dungeon),
		maps:     maps,
		npcs:     npcs,
		log:      log,
	}
}

// Register adds a dungeon template for mapID. The map must be known and
// instanced when a map table is loaded.
func (r *Registry) Register(id, name string, mapID uint32, init Initializer) (*Dungeon, error) {
	if _, dup := r.dungeons[mapID]; dup {
		return nil, fmt.Errorf("register dungeon %s on map %d: %w", id, mapID, ErrDuplicateDungeon)
	}
	d := &Dungeon{ID: id, Name: name, MapID: mapID, init: init}
	if r.maps != nil {
		info := r.maps.GetInfo(mapID)
		if info == nil || !info.Instanced {
			return nil, fmt.Errorf("register dungeon %s on map %d: %w", id, mapID, ErrNotInstanced)
		}
		d.Info = info
	}
	r.dungeons[mapID] = d
	return d, nil
}

func (r *Registry) Get(mapID uint32) *Dungeon { return r.dungeons[mapID] }

// All returns the dungeons ordered by map id.
func (r *Registry) All() []*Dungeon {
	out := make([]*Dungeon, 0, len(r.dungeons))
	for _, d := range r.dungeons {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MapID < out[j].MapID })
	return out
}

// Initialize runs the initializer of every dungeon. A failing dungeon does
// not stop the others.
func (r *Registry) Initialize() error {
	var errs []error
	for _, d := range r.All() {
		if d.init == nil {
			continue
		}
		if err := d.init(d, r.npcs); err != nil {
			errs = append(errs, fmt.Errorf("init dungeon %s: %w", d.ID, err))
			continue
		}
		r.log.Debug("dungeon initialized", zap.String("dungeon", d.ID), zap.Uint32("map", d.MapID))
	}
	return errors.Join(errs...)
}

// Create starts a new instance of the dungeon on mapID and binds the NPC
// entries of that map to it.
func (r *Registry) Create(mapID uint32) (*Instance, error) {
	d := r.dungeons[mapID]
	if d == nil {
		return nil, fmt.Errorf("create instance of map %d: %w", mapID, ErrUnknownDungeon)
	}
	r.nextID++
	inst := &Instance{ID: r.nextID, Dungeon: d}
	if r.npcs != nil {
		inst.Entries = r.npcs.EntriesOnMap(mapID)
		inst.Spawns = r.npcs.Spawns(mapID)
	}
	r.log.Info("instance created",
		zap.String("dungeon", d.ID), zap.Uint32("instance", inst.ID), zap.Int("entries", len(inst.Entries)))
	return inst, nil
}

// Entry returns the bound entry with the given id, or nil.
func (inst *Instance) Entry(id uint32) *npc.Entry {
	for _, e := range inst.Entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}
