package class

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/data"
	"github.com/realmcore/server/internal/scripting"
)

// Formulas supplies scripted class formulas. Every method reports false when
// the script does not define the formula so the Go default applies.
type Formulas interface {
	CalcMeleeAP(classID int, ctx scripting.StatContext) (int, bool)
	CalcRangedAP(classID int, ctx scripting.StatContext) (int, bool)
	CalcMagicCrit(classID int, ctx scripting.StatContext) (float32, bool)
	CalcPowerRegen(classID int, ctx scripting.RegenContext) (int, bool)
	CalcHealthRegen(classID int, ctx scripting.RegenContext) (int, bool)
	PowerForLevel(classID, level, computed int) (int, bool)
}

// Class holds the static values of a class and evaluates its formulas.
type Class struct {
	ID             constants.ClassID
	Name           string
	PowerType      constants.PowerType
	BaseHealth     int
	HealthPerLevel int
	BasePower      int
	PowerPerLevel  int

	formulas Formulas
}

func (c *Class) String() string { return c.Name }

// MeleeAP returns the melee attack power from level, strength and agility.
func (c *Class) MeleeAP(ctx scripting.StatContext) int {
	if c.formulas != nil {
		if v, ok := c.formulas.CalcMeleeAP(int(c.ID), ctx); ok {
			return v
		}
	}
	return ctx.Level*2 + ctx.Strength*2 - 20
}

func (c *Class) RangedAP(ctx scripting.StatContext) int {
	if c.formulas != nil {
		if v, ok := c.formulas.CalcRangedAP(int(c.ID), ctx); ok {
			return v
		}
	}
	return ctx.Level + ctx.Agility - 10
}

// MagicCritChance returns the spell crit chance in percent.
func (c *Class) MagicCritChance(ctx scripting.StatContext) float32 {
	if c.formulas != nil {
		if v, ok := c.formulas.CalcMagicCrit(int(c.ID), ctx); ok {
			return v
		}
	}
	return float32(ctx.Intellect)/80 + 2.2
}

// PowerRegen returns the power gained per regen pass. Negative values decay.
func (c *Class) PowerRegen(ctx scripting.RegenContext) int {
	if c.formulas != nil {
		if v, ok := c.formulas.CalcPowerRegen(int(c.ID), ctx); ok {
			return v
		}
	}
	if c.PowerType != constants.PowerMana || ctx.InCombat {
		return 0
	}
	return ctx.Spirit/5 + 15
}

// HealthRegen returns the health gained per regen pass.
func (c *Class) HealthRegen(ctx scripting.RegenContext) int {
	if c.formulas != nil {
		if v, ok := c.formulas.CalcHealthRegen(int(c.ID), ctx); ok {
			return v
		}
	}
	if ctx.InCombat {
		return 0
	}
	return ctx.Spirit/2 + 6
}

// ComputedPower is the max power derived from the class table.
func (c *Class) ComputedPower(level int) int {
	return c.BasePower + c.PowerPerLevel*level
}

// PowerForLevel returns the max power at level. Classes with a fixed bar
// (rage, energy) override the computed value.
func (c *Class) PowerForLevel(level int) int {
	computed := c.ComputedPower(level)
	if c.formulas != nil {
		if v, ok := c.formulas.PowerForLevel(int(c.ID), level, computed); ok {
			return v
		}
	}
	return computed
}

func (c *Class) HealthForLevel(level int) int {
	return c.BaseHealth + c.HealthPerLevel*level
}

// Registry holds every class by id.
type Registry struct {
	classes map[constants.ClassID]*Class
}

type powerTyper interface {
	ClassPowerType(classID int) (int, bool)
}

// NewRegistry builds the registry from the class table. When formulas also
// report a power type for a class, it overrides the table value.
func NewRegistry(entries []data.ClassEntry, formulas Formulas, log *zap.Logger) (*Registry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pts, _ := formulas.(powerTyper)
	r := &Registry{classes: make(map[constants.ClassID]*Class, len(entries))}
	for _, e := range entries {
		id := constants.ClassID(e.ID)
		if id == constants.ClassNone || id >= constants.ClassEnd {
			return nil, fmt.Errorf("load class %q: invalid id %d", e.Name, e.ID)
		}
		c := &Class{
			ID:             id,
			Name:           e.Name,
			PowerType:      constants.PowerType(e.PowerType),
			BaseHealth:     e.BaseHealth,
			HealthPerLevel: e.HealthPerLevel,
			BasePower:      e.BasePower,
			PowerPerLevel:  e.PowerPerLevel,
			formulas:       formulas,
		}
		if pts != nil {
			if pt, ok := pts.ClassPowerType(e.ID); ok && constants.PowerType(pt) != c.PowerType {
				log.Debug("class power type from script",
					zap.String("class", c.Name), zap.Stringer("power", constants.PowerType(pt)))
				c.PowerType = constants.PowerType(pt)
			}
		}
		r.classes[id] = c
	}
	return r, nil
}

// Add registers c, replacing a class with the same id.
func (r *Registry) Add(c *Class, formulas Formulas) {
	c.formulas = formulas
	r.classes[c.ID] = c
}

func (r *Registry) Get(id constants.ClassID) *Class { return r.classes[id] }

func (r *Registry) Count() int { return len(r.classes) }

// All returns classes ordered by id.
func (r *Registry) All() []*Class {
	out := make([]*Class, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
