package unit

import (
	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/data"
)

// Faction is a faction template. Units of hostile factions attack each other.
type Faction struct {
	ID       constants.FactionTemplateID
	Name     string
	IsPlayer bool

	hostile  map[constants.FactionTemplateID]struct{}
	friendly map[constants.FactionTemplateID]struct{}
}

func (f *Faction) String() string { return f.Name }

// IsHostileTo reports whether f attacks other on sight.
func (f *Faction) IsHostileTo(other *Faction) bool {
	if f == nil || other == nil || f.ID == other.ID {
		return false
	}
	if _, ok := f.friendly[other.ID]; ok {
		return false
	}
	if _, ok := f.hostile[other.ID]; ok {
		return true
	}
	_, ok := other.hostile[f.ID]
	return ok
}

func (f *Faction) IsFriendlyTo(other *Faction) bool {
	if f == nil || other == nil {
		return false
	}
	if f.ID == other.ID {
		return true
	}
	_, ok := f.friendly[other.ID]
	return ok
}

// Factions holds every faction template by id.
type Factions struct {
	byID map[constants.FactionTemplateID]*Faction
}

func NewFactions(entries []data.FactionEntry) *Factions {
	fs := &Factions{byID: make(map[constants.FactionTemplateID]*Faction, len(entries))}
	for _, e := range entries {
		f := &Faction{
			ID:       constants.FactionTemplateID(e.ID),
			Name:     e.Name,
			IsPlayer: e.Player,
			hostile:  make(map[constants.FactionTemplateID]struct{}, len(e.Hostile)),
			friendly: make(map[constants.FactionTemplateID]struct{}, len(e.Friendly)),
		}
		for _, id := range e.Hostile {
			f.hostile[constants.FactionTemplateID(id)] = struct{}{}
		}
		for _, id := range e.Friendly {
			f.friendly[constants.FactionTemplateID(id)] = struct{}{}
		}
		fs.byID[f.ID] = f
	}
	return fs
}

// Get returns the faction with the given id, or nil.
func (fs *Factions) Get(id constants.FactionTemplateID) *Faction {
	if fs == nil {
		return nil
	}
	return fs.byID[id]
}

func (fs *Factions) Count() int { return len(fs.byID) }
