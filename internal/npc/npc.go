package npc

import (
	"time"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/core/ecs"
	"github.com/realmcore/server/internal/scripting"
	"github.com/realmcore/server/internal/spell"
	"github.com/realmcore/server/internal/unit"
)

// NPC is a unit created from an Entry and driven by a Brain.
type NPC struct {
	*unit.Unit
	Entry *Entry
	Brain Brain
}

// Create spawns a new NPC of the entry with the given id. The unit is not in
// the world yet.
func (e *Entry) Create(ctx *unit.Context, id ecs.EntityID) *NPC {
	rnd := ctx.Random()
	cds := spell.NewNPCCooldowns(ctx.Clock)
	cds.CooldownFor = func(sp *spell.Spell) (time.Duration, bool) {
		return e.Cooldown(sp, ctx.Random())
	}

	u := unit.New(ctx, unit.Params{ID: id, EntryID: e.ID, Cooldowns: cds})
	n := &NPC{Unit: u, Entry: e}

	if e.Class != 0 {
		u.SetClass(e.Class)
	}
	u.SetPowerType(e.PowerType)
	u.SetFactionID(e.Faction)
	if d := e.DisplayID(rnd); d != 0 {
		if err := u.SetDisplayID(d); err == nil {
			u.SetNativeDisplayID(d)
		}
	}
	u.SetNPCFlags(e.NPCFlags)
	u.SetUnitFlags(e.UnitFlags)
	for s, v := range e.Stats {
		u.SetBaseStat(constants.StatType(s), v, true)
	}
	u.SetBaseResistance(constants.SchoolPhysical, e.Armor)
	for i, v := range e.Resistances {
		u.SetBaseResistance(constants.DamageSchool(i+1), v)
	}
	u.SetMeleeDamage(e.MinDamage, e.MaxDamage)
	u.SetAttackTime(e.AttackTime)

	u.OnLevelChanged = n.scale
	u.SetLevel(e.RollLevel(rnd))

	u.Spells.AddSpells(e.Spells...)

	brain := NewMobBrain
	if e.mgr != nil {
		brain = e.mgr.brainFor(e)
	}
	n.Brain = brain(n)
	u.Listener = n.Brain
	return n
}

// scale sets health and power for the unit's level and refills both.
func (n *NPC) scale(u *unit.Unit) {
	e := n.Entry
	res := scripting.ScaleResult{MaxHealth: e.MaxHealth, BasePower: e.BasePower}
	if e.mgr != nil && e.mgr.scaler != nil {
		res = e.mgr.scaler.ScaleNpc(scripting.NpcScaleContext{
			EntryID:   int(e.ID),
			Level:     u.Level(),
			MinLevel:  e.MinLevel,
			MaxLevel:  e.MaxLevel,
			MaxHealth: e.MaxHealth,
			BasePower: e.BasePower,
		})
	}
	if res.MaxHealth < 1 {
		u.Context().Logger().Warn("scaled npc health below 1",
			zap.Uint32("npc", e.ID), zap.Int("level", u.Level()), zap.Int("health", res.MaxHealth))
		res.MaxHealth = 1
	}
	u.SetBaseHealth(res.MaxHealth)
	u.SetHealth(u.MaxHealth())
	u.SetBasePower(max(res.BasePower, 0))
}

// Update advances the brain of a living NPC.
func (n *NPC) Update(dt time.Duration) {
	if !n.IsAlive() || !n.IsInWorld() || n.Brain == nil {
		return
	}
	n.Brain.Update(dt)
}
