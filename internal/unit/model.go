package unit

import "github.com/realmcore/server/internal/data"

// Model is a display model with its collision sizes.
type Model struct {
	DisplayID      uint32
	BoundingRadius float32
	CombatReach    float32
	Scale          float32
}

// Models holds every display model by id.
type Models struct {
	byID map[uint32]*Model
}

func NewModels(entries []data.ModelEntry) *Models {
	ms := &Models{byID: make(map[uint32]*Model, len(entries))}
	for _, e := range entries {
		scale := e.Scale
		if scale == 0 {
			scale = 1
		}
		ms.byID[e.ID] = &Model{
			DisplayID:      e.ID,
			BoundingRadius: e.BoundingRadius,
			CombatReach:    e.CombatReach,
			Scale:          scale,
		}
	}
	return ms
}

func (ms *Models) Get(id uint32) *Model {
	if ms == nil {
		return nil
	}
	return ms.byID[id]
}

func (ms *Models) Count() int { return len(ms.byID) }
