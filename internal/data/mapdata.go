package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MapInfo holds metadata for a single map, loaded from maps.yaml.
type MapInfo struct {
	MapID      uint32 `yaml:"map_id"`
	Name       string `yaml:"name"`
	Instanced  bool   `yaml:"instanced"`
	MinLevel   int    `yaml:"min_level"`
	MaxLevel   int    `yaml:"max_level"`
	MaxPlayers int    `yaml:"max_players"`
	// ResetMinutes is how long an empty instance is kept before it is destroyed.
	ResetMinutes int `yaml:"reset_minutes"`
}

type mapListFile struct {
	Maps []MapInfo `yaml:"maps"`
}

// MapDataTable provides map metadata lookups.
type MapDataTable struct {
	maps map[uint32]*MapInfo
}

// LoadMapData loads map metadata from YAML.
func LoadMapData(path string) (*MapDataTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map list %s: %w", path, err)
	}
	var file mapListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse map list: %w", err)
	}

	table := &MapDataTable{maps: make(map[uint32]*MapInfo, len(file.Maps))}
	for i := range file.Maps {
		info := &file.Maps[i]
		if info.MaxLevel < info.MinLevel {
			info.MaxLevel = info.MinLevel
		}
		table.maps[info.MapID] = info
	}
	return table, nil
}

// Count returns the number of maps loaded.
func (t *MapDataTable) Count() int {
	return len(t.maps)
}

// GetInfo returns metadata for a map, or nil if not found.
func (t *MapDataTable) GetInfo(mapID uint32) *MapInfo {
	return t.maps[mapID]
}
