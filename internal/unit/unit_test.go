package unit

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/realmcore/server/internal/class"
	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/core/ecs"
	"github.com/realmcore/server/internal/core/event"
	"github.com/realmcore/server/internal/data"
	"github.com/realmcore/server/internal/net/packet"
	"github.com/realmcore/server/internal/spell"
	"github.com/realmcore/server/internal/update"
)

const (
	factionAlliance constants.FactionTemplateID = 1
	factionHorde    constants.FactionTemplateID = 2
	factionMonster  constants.FactionTemplateID = 16
)

type fixture struct {
	t     *testing.T
	ctx   *Context
	now   time.Time
	units map[ecs.EntityID]*Unit
	next  uint32
}

func newFixture(t *testing.T, h *spell.Handler) *fixture {
	t.Helper()
	if h == nil {
		h = spell.NewHandler(zap.NewNop())
	}
	h.Initialize()
	h.Finalize()

	f := &fixture{
		t:     t,
		now:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		units: make(map[ecs.EntityID]*Unit),
	}
	f.ctx = &Context{
		Bus:    event.NewBus(),
		Spells: h,
		Models: NewModels([]data.ModelEntry{
			{ID: 100, BoundingRadius: 0.5, CombatReach: 1.5, Scale: 1},
			{ID: 200, BoundingRadius: 1, CombatReach: 2, Scale: 1},
			{ID: 300, BoundingRadius: 0.4, CombatReach: 1.5, Scale: 1},
		}),
		Factions: NewFactions([]data.FactionEntry{
			{ID: 1, Name: "Alliance", Player: true, Hostile: []uint32{16}},
			{ID: 2, Name: "Horde", Player: true, Hostile: []uint32{16}},
			{ID: 16, Name: "Monster", Hostile: []uint32{1, 2}},
		}),
		Now:  func() time.Time { return f.now },
		Rand: rand.New(rand.NewSource(1)),
		Log:  zap.NewNop(),
	}
	f.ctx.Lookup = func(id ecs.EntityID) *Unit { return f.units[id] }
	return f
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func (f *fixture) spawn(high ecs.HighID, faction constants.FactionTemplateID, health int) *Unit {
	f.t.Helper()
	f.next++
	u := New(f.ctx, Params{ID: ecs.NewEntityID(high, f.next, 1), EntryID: 1})
	u.SetLevel(10)
	u.SetBaseHealth(health)
	u.SetHealth(health)
	u.SetBasePower(100)
	require.NoError(f.t, u.SetFaction(f.ctx.Factions.Get(faction)))
	u.SetInWorld(true)
	f.units[u.id] = u
	return u
}

func (f *fixture) npc(health int) *Unit { return f.spawn(ecs.HighUnit, factionMonster, health) }

func (f *fixture) player(health int) *Unit {
	return f.spawn(ecs.HighPlayer, factionAlliance, health)
}

func TestSetTargetCountsNPCAttackers(t *testing.T) {
	f := newFixture(t, nil)
	mob, p := f.npc(100), f.player(100)

	mob.SetTarget(p)
	assert.Equal(t, 1, p.NPCAttackerCount)
	assert.Equal(t, p.EntityID(), mob.Fields().EntityID(FieldTarget))

	p.SetTarget(mob)
	assert.Zero(t, mob.NPCAttackerCount, "players are not counted")

	mob.IsFighting = true
	mob.SetTarget(nil)
	assert.Zero(t, p.NPCAttackerCount)
	assert.False(t, mob.IsFighting)
	assert.True(t, mob.Fields().EntityID(FieldTarget).IsZero())
}

func TestTargetOutOfWorldIsDropped(t *testing.T) {
	f := newFixture(t, nil)
	mob, p := f.npc(100), f.player(100)
	mob.SetTarget(p)

	p.SetInWorld(false)
	assert.Nil(t, mob.Target())
	assert.Zero(t, p.NPCAttackerCount)
}

func TestFaction(t *testing.T) {
	f := newFixture(t, nil)
	mob, other, p := f.npc(100), f.npc(100), f.player(100)

	assert.ErrorIs(t, mob.SetFaction(nil), ErrNilFaction)
	assert.Equal(t, factionMonster, mob.FactionTemplateID())

	mob.SetFactionID(999)
	assert.Equal(t, factionMonster, mob.FactionTemplateID(), "unknown ids are ignored")

	assert.True(t, mob.MayAttack(p))
	assert.True(t, p.MayAttack(mob))
	assert.False(t, mob.MayAttack(other))
	assert.False(t, mob.MayAttack(mob))

	mob.SetFactionID(factionHorde)
	assert.Equal(t, "Horde", mob.Faction().Name)
	assert.False(t, mob.MayAttack(p))
}

func TestDisplayID(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)

	require.NoError(t, u.SetDisplayID(100))
	assert.ErrorIs(t, u.SetDisplayID(999), ErrInvalidDisplayID)
	assert.Equal(t, uint32(100), u.DisplayID())

	u.SetScale(2)
	assert.InDelta(t, 1.0, u.BoundingRadius(), 1e-6)
	assert.InDelta(t, 3.0, u.CombatReach(), 1e-6)

	require.NoError(t, u.SetDisplayID(200))
	assert.InDelta(t, 2.0, u.BoundingRadius(), 1e-6)
	assert.InDelta(t, 4.0, u.CombatReach(), 1e-6)
}

func TestSetNPCFlagsMarksDynamicFlags(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)
	u.Fields().ClearChanges()

	u.SetNPCFlags(constants.NPCFlagGossip)
	assert.True(t, u.Fields().IsDirty(FieldNPCFlags))
	assert.True(t, u.Fields().IsDirty(FieldDynamicFlags))
}

func TestStatModsUpdateMaxHealth(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)

	u.AddStatMod(constants.StatStamina, 30, false)
	assert.Equal(t, 30, u.StatBuffPositive(constants.StatStamina))
	assert.Equal(t, 30, u.Stamina())
	assert.Equal(t, 100+20+10*10, u.MaxHealth())
	assert.Equal(t, int32(30), u.Fields().Int32(FieldStat0+update.Field(constants.StatStamina)))

	u.RemoveStatMod(constants.StatStamina, 30, false)
	assert.Zero(t, u.StatBuffPositive(constants.StatStamina))
	assert.Zero(t, u.StatBuffNegative(constants.StatStamina))
	assert.Equal(t, 100, u.MaxHealth())

	u.AddStatMod(constants.StatStrength, -5, false)
	assert.Equal(t, 5, u.StatBuffNegative(constants.StatStrength))
	assert.Equal(t, -5, u.Strength())
	u.RemoveStatMod(constants.StatStrength, -5, false)
	assert.Zero(t, u.StatBuffNegative(constants.StatStrength))

	u.AddStatMod(constants.StatStamina, 10, true)
	assert.Equal(t, 10, u.BaseStatValue(constants.StatStamina))
	assert.Zero(t, u.StatBuffPositive(constants.StatStamina))
	assert.Equal(t, 110, u.MaxHealth())
}

func TestMaxHealthClampsHealth(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)

	u.ModMaxHealth(50)
	assert.Equal(t, 150, u.MaxHealth())
	assert.Equal(t, 100, u.Health())

	u.SetHealth(150)
	u.ModMaxHealth(-50)
	assert.Equal(t, 100, u.Health())
}

func TestResistanceBuffsKeepBase(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)
	fire := constants.SchoolFire

	u.SetBaseResistance(fire, 20)
	u.AddResistanceBuff(fire, 15)
	assert.Equal(t, 35, u.FireResist())
	assert.Equal(t, 20, u.BaseResistance(fire))
	assert.Equal(t, int32(35), u.Fields().Int32(FieldResistances+update.Field(fire)))

	u.AddResistanceBuff(fire, -50)
	assert.Zero(t, u.FireResist(), "resistances never go negative")

	u.RemoveResistanceBuff(fire, -50)
	u.RemoveResistanceBuff(fire, 15)
	assert.Equal(t, 20, u.FireResist())
	assert.Zero(t, u.ResistanceBuffPositive(fire))
	assert.Zero(t, u.ResistanceBuffNegative(fire))
}

func TestSetPowerTypeWraps(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)

	u.SetPowerType(constants.PowerType(constants.PowerTypeCount + 1))
	assert.Equal(t, constants.PowerRage, u.PowerType())

	u.SetPowerType(constants.PowerType(-constants.PowerTypeCount))
	assert.Equal(t, constants.PowerMana, u.PowerType())
}

func TestDeathAndResurrection(t *testing.T) {
	f := newFixture(t, nil)
	mob, p := f.npc(100), f.player(100)
	bus := f.ctx.Bus
	assert.Zero(t, event.Pending[event.UnitResurrected](bus), "spawning is not a resurrection")

	p.Threat().Add(mob.EntityID(), 10)
	mob.EnterCombat(p)
	mob.Kill(p)

	assert.False(t, mob.IsAlive())
	assert.Equal(t, 1, event.Pending[event.UnitDied](bus))
	assert.True(t, mob.DynamicFlags()&constants.DynFlagDead != 0)
	assert.Equal(t, constants.StandStateDead, mob.StandState())
	assert.True(t, mob.IsUnderMechanic(constants.MechanicRooted))
	assert.True(t, mob.UnitFlags().HasAnyFlag(constants.UnitFlagDisableMovement))
	assert.False(t, mob.IsInCombat())
	assert.Zero(t, p.Threat().Get(mob.EntityID()), "the dead leave the killer's threat list")

	mob.SetHealth(50)
	assert.True(t, mob.IsAlive())
	assert.Equal(t, 1, event.Pending[event.UnitResurrected](bus))
	assert.False(t, mob.IsUnderMechanic(constants.MechanicRooted))
	assert.False(t, mob.UnitFlags().HasAnyFlag(constants.UnitFlagDisableMovement))
	assert.Zero(t, mob.DynamicFlags()&constants.DynFlagDead)
}

func TestHealthAuraStates(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)
	assert.True(t, u.AuraState()&constants.AuraStateHealthAbove75Pct != 0)

	bands := constants.AuraStateHealth20Percent | constants.AuraStateHealth35Percent | constants.AuraStateHealthAbove75Pct

	u.SetHealth(10)
	assert.Equal(t, constants.AuraStateHealth20Percent, u.AuraState()&bands)

	u.SetHealthPct(30)
	assert.Equal(t, 30, u.Health())
	assert.Equal(t, constants.AuraStateHealth35Percent, u.AuraState()&bands)

	u.SetHealth(50)
	assert.Equal(t, constants.AuraStateHealth35Percent, u.AuraState()&bands, "35-75% keeps the last band")

	u.SetHealth(80)
	assert.Equal(t, constants.AuraStateHealthAbove75Pct, u.AuraState()&bands)
}

func TestMaxHealthModIsNetworked(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)
	before := u.MaxHealth()

	u.ModMaxHealth(50)
	assert.Equal(t, 50, u.MaxHealthMod())
	assert.Equal(t, int32(50), u.Fields().Int32(FieldMaxHealthModifier))
	assert.Equal(t, before+50, u.MaxHealth())

	u.ModMaxHealth(-50)
	assert.Zero(t, u.Fields().Int32(FieldMaxHealthModifier))
	assert.Equal(t, before, u.MaxHealth())
}

func TestPowerInterpolatesRegen(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)
	require.Equal(t, 100, u.Power())

	u.SetPower(0)
	u.SetPowerRegenPerSecond(10)
	f.advance(3 * time.Second)
	assert.Equal(t, 30, u.Power())
	assert.Zero(t, u.Fields().UInt32(FieldPower1), "the field is written lazily")

	u.FlushPower()
	assert.Equal(t, uint32(30), u.Fields().UInt32(FieldPower1))

	f.advance(time.Minute)
	assert.Equal(t, 100, u.Power())

	u.SetPowerRegenPerSecond(-20)
	f.advance(2 * time.Second)
	assert.Equal(t, 60, u.Power())
}

func TestSetPowerEmitsOnlyOnChange(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)
	bus := f.ctx.Bus
	before := event.Pending[event.PowerChanged](bus)

	u.SetPower(100)
	assert.Equal(t, before, event.Pending[event.PowerChanged](bus))

	u.SetPower(40)
	u.SetPower(500)
	assert.Equal(t, before+2, event.Pending[event.PowerChanged](bus))
	assert.Equal(t, 100, u.Power())
}

func TestSetBasePowerRefillsExceptRage(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)

	u.SetPower(10)
	u.SetBasePower(200)
	assert.Equal(t, 200, u.Power())

	u.SetPowerType(constants.PowerRage)
	u.SetBasePower(1000)
	assert.Equal(t, 1000, u.MaxPower())
	assert.Zero(t, u.Power())
}

func TestSetBasePowerDontUpdateKeepsMaxPower(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)
	require.Equal(t, 100, u.MaxPower())

	u.SetPower(10)
	u.SetBasePowerDontUpdate(200)
	assert.Equal(t, 200, u.BasePower())
	assert.Equal(t, 100, u.MaxPower())
	assert.Equal(t, 100, u.Power(), "mana is refilled to the old max")

	u.SetPowerType(constants.PowerRage)
	require.Equal(t, 200, u.MaxPower())
	u.SetPower(5)
	u.SetBasePowerDontUpdate(1000)
	assert.Equal(t, 200, u.MaxPower())
	assert.Equal(t, 5, u.Power(), "rage is not refilled")
}

func TestPowerCostModifiers(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)
	sp := spell.New(1, "Test")

	u.SetPowerCostModifier(5)
	assert.Equal(t, 25, u.PowerCost(constants.SchoolHoly, sp, 20))

	u.SetPowerCostMultiplier(-0.2)
	assert.Equal(t, 20, u.PowerCost(constants.SchoolHoly, sp, 20))

	u.SetPowerCostModifier(-100)
	assert.Zero(t, u.PowerCost(constants.SchoolHoly, sp, 20))
}

func TestShapeshiftSwapsModelAndSpells(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	claw := spell.New(1082, "Claw")
	h.Add(claw)
	h.AddShapeshiftEntry(&spell.ShapeshiftEntry{
		Form:            constants.ShapeshiftCat,
		ModelIDAlliance: 100,
		ModelIDHorde:    200,
		ActionBarSpells: []spell.ID{claw.ID},
	})
	f := newFixture(t, h)

	p := f.player(100)
	p.SetRace(constants.RaceOrc)
	p.SetNativeDisplayID(300)
	require.NoError(t, p.SetDisplayID(300))

	p.SetShapeshiftForm(constants.ShapeshiftCat)
	assert.Equal(t, constants.ShapeshiftCat, p.ShapeshiftForm())
	assert.Equal(t, uint32(200), p.DisplayID())
	assert.True(t, p.Spells.Contains(claw.ID))

	p.SetShapeshiftForm(constants.ShapeshiftNormal)
	assert.Equal(t, uint32(300), p.DisplayID())
	assert.False(t, p.Spells.Contains(claw.ID))
}

func TestPeriodicAuraTicksAndExpires(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	dot := spell.New(589, "Shadow Word: Pain")
	dot.Schools = []constants.DamageSchool{constants.SchoolShadow}
	dot.Durations = spell.Durations{Min: 3000, Max: 3000}
	e := dot.AddAuraEffect(spell.AuraPeriodicDamage, spell.TargetSingleEnemy)
	e.BasePoints = 10
	e.Amplitude = 1000
	h.Add(dot)
	f := newFixture(t, h)
	p, mob := f.player(100), f.npc(100)

	require.NoError(t, p.Trigger(dot, mob))
	a := mob.Auras.Get(dot.ID)
	require.NotNil(t, a)
	assert.Equal(t, 3*time.Second, a.Duration())
	assert.Equal(t, p.EntityID(), a.CasterID)

	mob.Auras.Update(2500 * time.Millisecond)
	assert.Equal(t, 80, mob.Health())
	assert.Equal(t, 500*time.Millisecond, a.Remaining())

	mob.Auras.Update(500 * time.Millisecond)
	assert.Equal(t, 70, mob.Health())
	assert.True(t, a.IsRemoved())
	assert.False(t, mob.Auras.Contains(dot.ID))

	assert.Equal(t, 30, mob.Threat().Get(p.EntityID()))
	assert.Equal(t, p.EntityID(), mob.Threat().Top())
	assert.Same(t, p, mob.Target())
	assert.True(t, mob.IsInCombat())
	assert.True(t, p.IsInCombat())
}

func fortitudeLine(h *spell.Handler) (r1, r2 *spell.Spell) {
	mk := func(id spell.ID, points int) *spell.Spell {
		sp := spell.New(id, "Power Word: Fortitude")
		e := sp.AddAuraEffect(spell.AuraModStat, spell.TargetSingleFriend)
		e.MiscValue = int(constants.StatStamina)
		e.BasePoints = points
		h.Add(sp)
		return sp
	}
	r1, r2 = mk(1243, 3), mk(1244, 8)
	h.AddLine(spell.NewLine("fortitude", "Power Word: Fortitude", r1, r2))
	return r1, r2
}

func TestHigherRankAuraIsKept(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	r1, r2 := fortitudeLine(h)
	f := newFixture(t, h)
	p, other := f.player(100), f.player(100)

	require.NoError(t, p.Trigger(r2, other))
	assert.Equal(t, 8, other.Stamina())

	_, err := other.Auras.Apply(r1, p, nil)
	assert.ErrorIs(t, err, ErrHigherRankActive)
	require.NoError(t, p.Trigger(r1, other), "a lower rank is silently ignored")
	assert.Equal(t, 8, other.Stamina())
	assert.Equal(t, 1, other.Auras.Count())

	require.NoError(t, other.Trigger(r2, other))
	assert.Equal(t, 1, other.Auras.Count(), "an equal rank replaces the aura")
	assert.Equal(t, other.EntityID(), other.Auras.Get(r2.ID).CasterID)
	assert.Equal(t, 8, other.Stamina())
}

func TestCleanseKeepsOwnAuras(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	r1, _ := fortitudeLine(h)
	self := spell.New(7001, "Inner Focus")
	self.AddAuraEffect(spell.AuraDummy)
	h.Add(self)
	f := newFixture(t, h)
	p, mob := f.player(100), f.npc(100)

	require.NoError(t, p.Trigger(r1, mob))
	require.NoError(t, mob.TriggerSelf(self))
	mob.SetHealth(10)
	mob.SetPower(0)

	mob.Cleanse()
	assert.False(t, mob.Auras.Contains(r1.ID))
	assert.True(t, mob.Auras.Contains(self.ID))
	assert.Equal(t, 100, mob.Health())
	assert.Equal(t, mob.BasePower(), mob.Power())
}

func TestCastPaysCostAndStartsCooldown(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	smite := spell.New(585, "Smite")
	smite.Schools = []constants.DamageSchool{constants.SchoolHoly}
	smite.PowerCost = 30
	smite.CooldownTime = 5000
	e := smite.AddEffect(spell.EffectSchoolDamage)
	e.ImplicitTargetA = spell.TargetSingleEnemy
	e.BasePoints = 20
	h.Add(smite)
	f := newFixture(t, h)
	p, mob := f.player(100), f.npc(100)

	assert.ErrorIs(t, p.Cast(smite, mob), ErrSpellNotKnown)
	p.Spells.AddSpell(smite)

	require.NoError(t, p.Cast(smite, mob))
	assert.Equal(t, 80, mob.Health())
	assert.Equal(t, 70, p.Power())

	assert.ErrorIs(t, p.Cast(smite, mob), ErrNotReady)
	assert.Equal(t, 80, mob.Health())

	f.advance(5 * time.Second)
	p.SetPower(10)
	assert.ErrorIs(t, p.Cast(smite, mob), ErrNotEnoughPower)

	p.SetPower(100)
	require.NoError(t, p.Cast(smite, mob))
	assert.Equal(t, 60, mob.Health())

	mob.Kill(p)
	f.advance(5 * time.Second)
	assert.ErrorIs(t, p.Cast(smite, mob), ErrInvalidTarget)
}

func TestMitigation(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(1000)

	assert.Equal(t, 100, u.mitigate(100, constants.SchoolPhysical, 10))

	u.SetBaseResistance(constants.SchoolPhysical, 1250)
	// 1250 / (1250 + 400 + 850) = 0.5
	assert.Equal(t, 50, u.mitigate(100, constants.SchoolPhysical, 10))

	u.SetBaseResistance(constants.SchoolFire, 500)
	assert.Equal(t, 25, u.mitigate(100, constants.SchoolFire, 10), "capped at 75%")
}

func TestProcHandlerChargesRemoveAura(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	shield := spell.New(17, "Power Word: Shield")
	shield.AddAuraEffect(spell.AuraDummy)
	fired := 0
	shield.AddTargetProcHandler(&spell.ProcHandlerTemplate{
		Flags:   spell.ProcReceivedAnyDamage,
		Charges: 2,
		Handler: func(spell.Actor, *spell.ProcAction, *spell.ProcHandlerTemplate) bool {
			fired++
			return true
		},
	})
	h.Add(shield)
	f := newFixture(t, h)
	p, mob := f.player(100), f.npc(100)
	mob.SetMeleeDamage(5, 5)

	require.NoError(t, p.TriggerSelf(shield))
	require.True(t, p.Auras.Contains(shield.ID))

	mob.Strike(p)
	assert.Equal(t, 1, fired)
	assert.True(t, p.Auras.Contains(shield.ID))

	mob.Strike(p)
	assert.Equal(t, 2, fired)
	assert.False(t, p.Auras.Contains(shield.ID))

	mob.Strike(p)
	assert.Equal(t, 2, fired)
	assert.Equal(t, 85, p.Health())
}

func TestSpellModifierAppliesFlatThenPercent(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)
	target := spell.New(1, "Target")
	target.SpellClassMask = [3]uint32{0x4}

	mod := spell.New(2, "Modifier")
	flat := mod.AddAuraEffect(spell.AuraAddModifierFlat)
	flat.MiscValue = int(spell.ModPowerCost)
	flat.AffectMask = [3]uint32{0x4}
	pct := mod.AddAuraEffect(spell.AuraAddModifierPercent)
	pct.MiscValue = int(spell.ModPowerCost)
	pct.AffectMask = [3]uint32{0x4}

	u.AddSpellModifier(flat, 10, false)
	u.AddSpellModifier(pct, -50, true)
	assert.Equal(t, 20, u.ApplySpellModifier(spell.ModPowerCost, target, 30))
	assert.Equal(t, 30, u.ApplySpellModifier(spell.ModDuration, target, 30))

	u.RemoveSpellModifier(pct)
	assert.Equal(t, 40, u.ApplySpellModifier(spell.ModPowerCost, target, 30))
}

func TestThreatList(t *testing.T) {
	tl := NewThreatList()
	a := ecs.NewEntityID(ecs.HighPlayer, 1, 1)
	b := ecs.NewEntityID(ecs.HighPlayer, 2, 1)

	tl.Add(a, 10)
	tl.Add(b, 5)
	assert.Equal(t, a, tl.Top())
	tl.Add(b, 10)
	assert.Equal(t, b, tl.Top())
	assert.Equal(t, 25, tl.Total())

	tl.Remove(b)
	assert.Equal(t, a, tl.Top())
	tl.Add(a, -5)
	assert.Equal(t, 10, tl.Get(a))

	tl.Clear()
	assert.Zero(t, tl.Len())
	assert.True(t, tl.Top().IsZero())
}

func TestWriteUpdate(t *testing.T) {
	f := newFixture(t, nil)
	u := f.npc(100)
	u.ClearUpdates()
	assert.False(t, u.HasUpdates())

	u.SetLevel(12)
	require.True(t, u.HasUpdates())

	w := packet.NewWriter()
	u.WriteUpdate(w, false)
	r := packet.NewReader(w.Bytes())
	assert.Equal(t, uint64(u.EntityID()), r.ReadPackedGUID())
	values, err := update.ReadValues(r)
	require.NoError(t, err)
	assert.Equal(t, map[update.Field]uint32{FieldLevel: 12}, values)

	w.Reset()
	u.WriteUpdate(w, true)
	r = packet.NewReader(w.Bytes())
	r.ReadPackedGUID()
	values, err = update.ReadValues(r)
	require.NoError(t, err)
	assert.Equal(t, uint32(100), values[FieldHealth])
	assert.Equal(t, uint32(factionMonster), values[FieldFactionTemplate])
}

func TestRegenerateClassless(t *testing.T) {
	f := newFixture(t, nil)
	mob := f.npc(200)
	mob.SetHealth(100)

	mob.Regenerate(2 * time.Second)
	assert.Equal(t, 110, mob.Health())

	mob.EnterCombat(f.player(100))
	mob.Regenerate(2 * time.Second)
	assert.Equal(t, 110, mob.Health(), "no regen in combat")
}

func TestRegenerateSpreadsClassPowerOverInterval(t *testing.T) {
	f := newFixture(t, nil)
	f.next++
	priest := &class.Class{ID: constants.ClassPriest, Name: "Priest", PowerType: constants.PowerMana}
	u := New(f.ctx, Params{ID: ecs.NewEntityID(ecs.HighPlayer, f.next, 1), Class: priest})
	f.units[u.id] = u
	u.SetBaseHealth(500)
	u.SetHealth(100)
	u.SetBasePower(1000)
	u.SetPower(0)
	u.SetBaseStat(constants.StatSpirit, 75, true)
	u.SetInWorld(true)

	u.Regenerate(2 * time.Second)
	assert.Equal(t, 100+75/2+6, u.Health())

	// 75/5+15 mana per two second pass
	f.advance(4 * time.Second)
	assert.Equal(t, 60, u.Power())
}
