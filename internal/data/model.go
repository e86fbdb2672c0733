package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModelEntry is a creature display model.
type ModelEntry struct {
	ID             uint32  `yaml:"id"`
	BoundingRadius float32 `yaml:"bounding_radius"`
	CombatReach    float32 `yaml:"combat_reach"`
	Scale          float32 `yaml:"scale"`
}

// FactionEntry is a faction template. Hostile lists the faction ids it
// attacks on sight; Friendly lists the ones it never attacks.
type FactionEntry struct {
	ID       uint32   `yaml:"id"`
	Name     string   `yaml:"name"`
	Hostile  []uint32 `yaml:"hostile"`
	Friendly []uint32 `yaml:"friendly"`
	// Player marks factions used by player characters.
	Player bool `yaml:"player"`
}

type modelListFile struct {
	Models   []ModelEntry   `yaml:"models"`
	Factions []FactionEntry `yaml:"factions"`
}

// ModelList is the content of models.yaml.
type ModelList struct {
	Models   []ModelEntry
	Factions []FactionEntry
}

// LoadModelList loads display models and faction templates from YAML.
func LoadModelList(path string) (*ModelList, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read models: %w", err)
	}
	var f modelListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse models: %w", err)
	}
	for i := range f.Models {
		if f.Models[i].Scale == 0 {
			f.Models[i].Scale = 1
		}
	}
	return &ModelList{Models: f.Models, Factions: f.Factions}, nil
}
