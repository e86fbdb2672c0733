package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ClassEntry holds the static per-class values; formulas live in Lua.
type ClassEntry struct {
	ID             int    `yaml:"id"`
	Name           string `yaml:"name"`
	PowerType      int    `yaml:"power_type"`
	BaseHealth     int    `yaml:"base_health"`
	HealthPerLevel int    `yaml:"health_per_level"`
	BasePower      int    `yaml:"base_power"`
	PowerPerLevel  int    `yaml:"power_per_level"`
}

type classListFile struct {
	Classes []ClassEntry `yaml:"classes"`
}

// LoadClassList loads class definitions from YAML.
func LoadClassList(path string) ([]ClassEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read classes: %w", err)
	}
	var f classListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse classes: %w", err)
	}
	return f.Classes, nil
}
