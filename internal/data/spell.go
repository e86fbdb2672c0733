package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EffectEntry is one effect of a spell record.
type EffectEntry struct {
	Type                string    `yaml:"type"`
	Aura                string    `yaml:"aura"`
	BasePoints          int       `yaml:"base_points"`
	DiceSides           int       `yaml:"dice_sides"`
	PointsPerComboPoint float32   `yaml:"points_per_combo_point"`
	Amplitude           int       `yaml:"amplitude"`
	ChainTargets        int       `yaml:"chain_targets"`
	MiscValue           int       `yaml:"misc_value"`
	MiscValueB          int       `yaml:"misc_value_b"`
	Radius              float32   `yaml:"radius"`
	TriggerSpell        uint32    `yaml:"trigger_spell"`
	TargetA             int       `yaml:"target_a"`
	TargetB             int       `yaml:"target_b"`
	AffectMask          [3]uint32 `yaml:"affect_mask"`
}

// SpellEntry is a spell record as stored in spells.yaml. Flag words are
// plain integers (hex literals are fine).
type SpellEntry struct {
	ID          uint32 `yaml:"id"`
	Name        string `yaml:"name"`
	Rank        string `yaml:"rank"`
	Description string `yaml:"description"`
	Line        string `yaml:"line"`
	Class       int    `yaml:"class"`

	Category   uint32 `yaml:"category"`
	DispelType int    `yaml:"dispel_type"`
	Mechanic   int    `yaml:"mechanic"`

	Attributes    uint32 `yaml:"attributes"`
	AttributesEx  uint32 `yaml:"attributes_ex"`
	AttributesExB uint32 `yaml:"attributes_ex_b"`
	AttributesExC uint32 `yaml:"attributes_ex_c"`
	AttributesExD uint32 `yaml:"attributes_ex_d"`

	ShapeshiftMask        uint32 `yaml:"shapeshift_mask"`
	ExcludeShapeshiftMask uint32 `yaml:"exclude_shapeshift_mask"`
	TargetFlags           uint32 `yaml:"target_flags"`
	CasterAuraState       uint32 `yaml:"caster_aura_state"`
	TargetAuraState       uint32 `yaml:"target_aura_state"`

	CastTime         int `yaml:"cast_time"`
	Cooldown         int `yaml:"cooldown"`
	CategoryCooldown int `yaml:"category_cooldown"`

	InterruptFlags        uint32 `yaml:"interrupt_flags"`
	AuraInterruptFlags    uint32 `yaml:"aura_interrupt_flags"`
	ChannelInterruptFlags uint32 `yaml:"channel_interrupt_flags"`

	ProcFlags   uint32 `yaml:"proc_flags"`
	ProcChance  int    `yaml:"proc_chance"`
	ProcCharges int    `yaml:"proc_charges"`

	MaxLevel    int `yaml:"max_level"`
	BaseLevel   int `yaml:"base_level"`
	Level       int `yaml:"level"`
	DurationMin int `yaml:"duration_min"`
	DurationMax int `yaml:"duration_max"`

	PowerType           int `yaml:"power_type"`
	PowerCost           int `yaml:"power_cost"`
	PowerCostPerLevel   int `yaml:"power_cost_per_level"`
	PowerPerSecond      int `yaml:"power_per_second"`
	PowerCostPercentage int `yaml:"power_cost_pct"`

	RangeMin        float32 `yaml:"range_min"`
	RangeMax        float32 `yaml:"range_max"`
	ProjectileSpeed float32 `yaml:"projectile_speed"`
	MaxStackCount   int     `yaml:"max_stack"`
	MaxTargets      int     `yaml:"max_targets"`

	RequiredTools           []uint32 `yaml:"required_tools"`
	RequiredTotemCategories []uint32 `yaml:"required_totem_categories"`
	RequiredItemClass       *int     `yaml:"required_item_class"`
	RequiredItemSubClass    uint32   `yaml:"required_item_subclass_mask"`

	Visual         uint32    `yaml:"visual"`
	Visual2        uint32    `yaml:"visual2"`
	SpellClassSet  uint32    `yaml:"class_set"`
	SpellClassMask [3]uint32 `yaml:"class_mask"`
	SchoolMask     uint32    `yaml:"school_mask"`

	Skill   uint32   `yaml:"skill"`
	Talent  string   `yaml:"talent"`
	Teaches []uint32 `yaml:"also_teaches"`

	Effects []EffectEntry `yaml:"effects"`
}

// LineEntry names a spell line. Ranks are the spells that name the line, in
// id order, unless Ranks lists them explicitly.
type LineEntry struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Ranks []uint32 `yaml:"ranks"`
}

// SkillLineEntry is a skill line (e.g. Shadow Magic).
type SkillLineEntry struct {
	ID       uint32 `yaml:"id"`
	Name     string `yaml:"name"`
	Category int    `yaml:"category"`
}

type ShapeshiftEntry struct {
	Form            int      `yaml:"form"`
	Name            string   `yaml:"name"`
	ModelAlliance   uint32   `yaml:"model_alliance"`
	ModelHorde      uint32   `yaml:"model_horde"`
	ActionBarSpells []uint32 `yaml:"action_bar"`
}

// SpellList is the content of spells.yaml.
type SpellList struct {
	Skills      []SkillLineEntry  `yaml:"skills"`
	Lines       []LineEntry       `yaml:"lines"`
	Shapeshifts []ShapeshiftEntry `yaml:"shapeshifts"`
	Spells      []SpellEntry      `yaml:"spells"`
}

// LoadSpellList loads spell records from YAML.
func LoadSpellList(path string) (*SpellList, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spells: %w", err)
	}
	var f SpellList
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spells: %w", err)
	}
	seen := make(map[uint32]struct{}, len(f.Spells))
	for _, s := range f.Spells {
		if s.ID == 0 {
			return nil, fmt.Errorf("parse spells: spell %q has no id", s.Name)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("parse spells: duplicate spell id %d", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return &f, nil
}
