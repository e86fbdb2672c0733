package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// NpcEntry holds static data for an NPC type loaded from YAML.
type NpcEntry struct {
	ID         uint32   `yaml:"id"`
	Name       string   `yaml:"name"`
	Title      string   `yaml:"title"`
	MinLevel   int      `yaml:"min_level"`
	MaxLevel   int      `yaml:"max_level"`
	MaxHealth  int      `yaml:"max_health"`
	BasePower  int      `yaml:"base_power"`
	PowerType  int      `yaml:"power_type"`
	Class      int      `yaml:"class"`
	DisplayIDs []uint32 `yaml:"display_ids"`
	Faction    uint32   `yaml:"faction"`
	NPCFlags   uint32   `yaml:"npc_flags"`
	UnitFlags  uint32   `yaml:"unit_flags"`
	Armor      int      `yaml:"armor"`
	// Resistances are indexed by school, Holy through Arcane.
	Resistances [6]int   `yaml:"resistances"`
	Stats       [5]int   `yaml:"stats"`
	Spells      []uint32 `yaml:"spells"`
	MinDamage   float32  `yaml:"min_damage"`
	MaxDamage   float32  `yaml:"max_damage"`
	AttackTime  int      `yaml:"attack_time"`
	Brain       string   `yaml:"brain"`
	Map         uint32   `yaml:"map"`
}

// SpawnEntry defines how many NPCs of an entry to spawn on a map.
type SpawnEntry struct {
	NpcID uint32 `yaml:"npc_id"`
	MapID uint32 `yaml:"map_id"`
	Count int    `yaml:"count"`
}

type npcListFile struct {
	Npcs   []NpcEntry   `yaml:"npcs"`
	Spawns []SpawnEntry `yaml:"spawns"`
}

// NpcTable holds all NPC entries indexed by id.
type NpcTable struct {
	entries map[uint32]*NpcEntry
	spawns  []SpawnEntry
}

// LoadNpcList loads NPC entries and spawns from a YAML file.
func LoadNpcList(path string) (*NpcTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read npc_list: %w", err)
	}
	var f npcListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse npc_list: %w", err)
	}
	t := &NpcTable{entries: make(map[uint32]*NpcEntry, len(f.Npcs)), spawns: f.Spawns}
	for i := range f.Npcs {
		e := &f.Npcs[i]
		if e.MaxLevel < e.MinLevel {
			e.MaxLevel = e.MinLevel
		}
		if _, dup := t.entries[e.ID]; dup {
			return nil, fmt.Errorf("parse npc_list: duplicate npc id %d", e.ID)
		}
		t.entries[e.ID] = e
	}
	return t, nil
}

// Get returns an NPC entry by id, or nil if not found.
func (t *NpcTable) Get(id uint32) *NpcEntry {
	return t.entries[id]
}

// Count returns the number of loaded entries.
func (t *NpcTable) Count() int {
	return len(t.entries)
}

// All returns the entries ordered by id.
func (t *NpcTable) All() []*NpcEntry {
	out := make([]*NpcEntry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (t *NpcTable) Spawns() []SpawnEntry { return t.spawns }
