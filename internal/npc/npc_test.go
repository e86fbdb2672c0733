package npc

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/core/ecs"
	"github.com/realmcore/server/internal/core/event"
	"github.com/realmcore/server/internal/data"
	"github.com/realmcore/server/internal/scripting"
	"github.com/realmcore/server/internal/spell"
	"github.com/realmcore/server/internal/unit"
)

type fixture struct {
	t     *testing.T
	ctx   *unit.Context
	now   time.Time
	units map[ecs.EntityID]*unit.Unit
	pool  *ecs.EntityPool
}

func newFixture(t *testing.T, h *spell.Handler) *fixture {
	t.Helper()
	h.Initialize()
	h.Finalize()
	f := &fixture{
		t:     t,
		now:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		units: make(map[ecs.EntityID]*unit.Unit),
		pool:  ecs.NewEntityPool(),
	}
	f.ctx = &unit.Context{
		Bus:    event.NewBus(),
		Spells: h,
		Models: unit.NewModels([]data.ModelEntry{{ID: 11125, BoundingRadius: 0.5, CombatReach: 1.5, Scale: 1}}),
		Factions: unit.NewFactions([]data.FactionEntry{
			{ID: 1, Name: "Alliance", Player: true, Hostile: []uint32{16}},
			{ID: 16, Name: "Monster", Hostile: []uint32{1}},
			{ID: 35, Name: "Friendly", Friendly: []uint32{1, 16}},
		}),
		Now:  func() time.Time { return f.now },
		Rand: rand.New(rand.NewSource(7)),
		Log:  zap.NewNop(),
	}
	f.ctx.Lookup = func(id ecs.EntityID) *unit.Unit { return f.units[id] }
	return f
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func (f *fixture) create(e *Entry) *NPC {
	f.t.Helper()
	n := e.Create(f.ctx, f.pool.Create(ecs.HighUnit))
	n.SetInWorld(true)
	f.units[n.EntityID()] = n.Unit
	return n
}

func (f *fixture) player(health int) *unit.Unit {
	f.t.Helper()
	p := unit.New(f.ctx, unit.Params{ID: f.pool.Create(ecs.HighPlayer)})
	p.SetLevel(10)
	p.SetBaseHealth(health)
	p.SetHealth(health)
	p.SetFactionID(1)
	p.SetInWorld(true)
	f.units[p.EntityID()] = p
	return p
}

// engage makes n fight p as if p had hit it.
func engage(n *NPC, p *unit.Unit) {
	n.Threat().Add(p.EntityID(), 10)
	n.EnterCombat(p)
}

func bolt(id spell.ID, dmg, cooldownMs int) *spell.Spell {
	sp := spell.New(id, "Bolt")
	sp.Schools = []constants.DamageSchool{constants.SchoolFire}
	sp.CooldownTime = cooldownMs
	e := sp.AddEffect(spell.EffectSchoolDamage)
	e.ImplicitTargetA = spell.TargetSingleEnemy
	e.BasePoints = dmg
	return sp
}

type doubleScaler struct{ calls int }

func (s *doubleScaler) ScaleNpc(ctx scripting.NpcScaleContext) scripting.ScaleResult {
	s.calls++
	return scripting.ScaleResult{MaxHealth: ctx.MaxHealth * 2, BasePower: ctx.BasePower * 2}
}

func TestManagerFromTable(t *testing.T) {
	table, err := data.LoadNpcList("../../data/yaml/npcs.yaml")
	require.NoError(t, err)
	m := NewManager(table, spell.NewHandler(zap.NewNop()), nil, zap.NewNop())

	require.Equal(t, table.Count(), m.Count())
	e := m.Entry(11517)
	require.NotNil(t, e)
	assert.Equal(t, "Oggleflint", e.Name)
	assert.Equal(t, uint32(389), e.MapID)
	assert.Equal(t, constants.FactionTemplateID(16), e.Faction)

	_, err = m.MustEntry(1)
	assert.ErrorIs(t, err, ErrUnknownEntry)

	entries := m.Entries()
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].ID, entries[i].ID)
	}
	assert.NotEmpty(t, m.Spawns(389))
	assert.Empty(t, m.Spawns(4242))
	for _, e := range m.EntriesOnMap(389) {
		assert.Equal(t, uint32(389), e.MapID)
	}
}

func TestAddSpell(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	h.Add(bolt(100, 10, 0))
	m := NewPool(h, nil, zap.NewNop())
	e := m.Entry(DefaultMobID)

	require.NoError(t, e.AddSpell(100, 100))
	assert.Len(t, e.Spells, 1, "spells are listed once")
	assert.ErrorIs(t, e.AddSpell(999), spell.ErrUnknownSpell)
}

func TestCreateAppliesEntry(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	m := NewPool(h, nil, zap.NewNop())
	e := m.Entry(DefaultMobID)
	e.DisplayIDs = []uint32{11125}
	e.Armor = 300
	e.Resistances[1] = 40
	f := newFixture(t, h)

	n := f.create(e)
	assert.Equal(t, DefaultMobID, n.EntryID())
	assert.Equal(t, 1, n.Level())
	assert.Equal(t, 100, n.Health())
	assert.Equal(t, 100, n.MaxHealth())
	assert.Equal(t, constants.FactionTemplateID(16), n.FactionTemplateID())
	assert.Equal(t, uint32(11125), n.DisplayID())
	assert.Equal(t, uint32(11125), n.NativeDisplayID())
	assert.Equal(t, 300, n.Armor())
	assert.Equal(t, 40, n.FireResist())
	assert.Equal(t, float32(2), n.MinDamage())
	assert.Equal(t, 2000, n.AttackTime())
	assert.IsType(t, &MobBrain{}, n.Brain)
	assert.Same(t, n.Brain, n.Listener)

	vendor := f.create(m.Entry(VendorID))
	assert.True(t, vendor.NPCFlags().HasAnyFlag(constants.NPCFlagVendor))

	dummy := f.create(m.Entry(DummyID))
	assert.False(t, dummy.YieldsXpOrHonor())
}

func TestScaleByLevel(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	scaler := &doubleScaler{}
	m := NewManager(nil, h, scaler, zap.NewNop())
	e := &Entry{ID: 1, Name: "Scaled", MinLevel: 10, MaxLevel: 12, MaxHealth: 300, BasePower: 50, Faction: 16}
	m.Add(e)
	f := newFixture(t, h)

	n := f.create(e)
	assert.GreaterOrEqual(t, n.Level(), 10)
	assert.LessOrEqual(t, n.Level(), 12)
	assert.Equal(t, 600, n.MaxHealth())
	assert.Equal(t, 600, n.Health())
	assert.Equal(t, 100, n.BasePower())

	n.SetLevel(20)
	assert.Equal(t, 2, scaler.calls)
}

func TestScaleByLevelWithScript(t *testing.T) {
	engine, err := scripting.NewEngine("../../scripts", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	h := spell.NewHandler(zap.NewNop())
	m := NewManager(nil, h, engine, zap.NewNop())
	e := &Entry{ID: 1, Name: "Trogg", MinLevel: 10, MaxLevel: 12, MaxHealth: 1000, Faction: 16}
	m.Add(e)
	f := newFixture(t, h)

	n := f.create(e)
	n.SetLevel(12)
	assert.Equal(t, 1100, n.MaxHealth(), "5% per level above the minimum")
	n.SetLevel(10)
	assert.Equal(t, 1000, n.MaxHealth())
}

func TestCooldownOverrides(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	fixed, ranged := bolt(1, 5, 1000), bolt(2, 5, 1000)
	h.Add(fixed)
	h.Add(ranged)
	m := NewPool(h, nil, zap.NewNop())
	e := m.Entry(DefaultMobID)
	require.NoError(t, e.AddSpell(1, 2))
	e.SetCooldown(1, 5*time.Second)
	e.SetCooldownRange(2, 8*time.Second, 12*time.Second)
	f := newFixture(t, h)
	n := f.create(e)
	p := f.player(1000)

	require.NoError(t, n.Cast(fixed, p))
	require.NoError(t, n.Cast(ranged, p))

	f.advance(4 * time.Second)
	assert.False(t, n.Spells.IsReady(fixed))
	f.advance(time.Second)
	assert.True(t, n.Spells.IsReady(fixed))

	f.advance(2 * time.Second)
	assert.False(t, n.Spells.IsReady(ranged), "at least 8s")
	f.advance(5 * time.Second)
	assert.True(t, n.Spells.IsReady(ranged), "at most 12s")

	assert.Equal(t, 1000, fixed.CooldownTime, "the shared record is untouched")

	for i := 0; i < 50; i++ {
		d, ok := e.Cooldown(ranged, f.ctx.Random())
		require.True(t, ok)
		assert.GreaterOrEqual(t, d, 8*time.Second)
		assert.LessOrEqual(t, d, 12*time.Second)
	}
	_, ok := e.Cooldown(bolt(3, 1, 0), f.ctx.Random())
	assert.False(t, ok)
}

func TestMobBrainCastsThenSwings(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	h.Add(bolt(1, 30, 10000))
	m := NewPool(h, nil, zap.NewNop())
	e := m.Entry(DefaultMobID)
	e.MinDamage, e.MaxDamage = 5, 5
	require.NoError(t, e.AddSpell(1))
	f := newFixture(t, h)
	n := f.create(e)
	p := f.player(1000)
	engage(n, p)

	n.Update(100 * time.Millisecond)
	assert.Same(t, p, n.Target())
	assert.Equal(t, 970, p.Health(), "casts first")

	n.Update(100 * time.Millisecond)
	assert.Equal(t, 965, p.Health(), "the opening swing is not delayed")

	n.Update(time.Second)
	assert.Equal(t, 965, p.Health(), "waits for the swing timer")
	n.Update(time.Second)
	assert.Equal(t, 960, p.Health())
	assert.True(t, n.IsFighting)
}

func TestMobBrainSwingsOnFirstTick(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	m := NewPool(h, nil, zap.NewNop())
	e := m.Entry(DefaultMobID)
	e.MinDamage, e.MaxDamage = 5, 5
	f := newFixture(t, h)
	n := f.create(e)
	p := f.player(1000)
	engage(n, p)

	n.Update(100 * time.Millisecond)
	assert.Equal(t, 995, p.Health())
	n.Update(100 * time.Millisecond)
	assert.Equal(t, 995, p.Health())
}

func TestMobBrainHealsOnlyWhenHurt(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	heal := spell.New(5, "Healing Wave")
	he := heal.AddEffect(spell.EffectHeal)
	he.ImplicitTargetA = spell.TargetSingleFriend
	he.BasePoints = 40
	heal.CooldownTime = 8000
	h.Add(heal)
	m := NewPool(h, nil, zap.NewNop())
	e := m.Entry(DefaultMobID)
	e.MinDamage, e.MaxDamage = 1, 1
	require.NoError(t, e.AddSpell(5))
	f := newFixture(t, h)
	n := f.create(e)
	p := f.player(1000)
	engage(n, p)

	n.Update(100 * time.Millisecond)
	assert.True(t, n.Spells.IsReady(heal), "no heal at full health")

	n.SetHealth(30)
	n.Update(100 * time.Millisecond)
	assert.Equal(t, 70, n.Health())
	assert.False(t, n.Spells.IsReady(heal))
}

func TestMobBrainLeavesCombatWithoutTargets(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	m := NewPool(h, nil, zap.NewNop())
	f := newFixture(t, h)
	n := f.create(m.Entry(DefaultMobID))
	p := f.player(1000)
	engage(n, p)
	require.True(t, n.IsInCombat())

	p.SetInWorld(false)
	n.Update(100 * time.Millisecond)
	assert.False(t, n.IsInCombat())
	assert.Nil(t, n.Target())
	assert.Zero(t, n.Threat().Len())
}

func TestDeadNPCDoesNotAct(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	m := NewPool(h, nil, zap.NewNop())
	f := newFixture(t, h)
	n := f.create(m.Entry(DefaultMobID))
	p := f.player(1000)
	engage(n, p)

	n.Kill(p)
	n.Update(5 * time.Second)
	assert.Equal(t, 1000, p.Health())
}

func TestUnknownBrainFallsBackToMob(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	m := NewPool(h, nil, zap.NewNop())
	e := m.Entry(DefaultMobID)
	e.BrainName = "nonexistent"
	f := newFixture(t, h)
	assert.IsType(t, &MobBrain{}, f.create(e).Brain)

	called := false
	m.RegisterBrain("custom", func(n *NPC) Brain {
		called = true
		return NewMobBrain(n)
	})
	e.BrainName = "custom"
	f.create(e)
	assert.True(t, called)
}

func TestDump(t *testing.T) {
	h := spell.NewHandler(zap.NewNop())
	h.Add(bolt(1, 5, 0))
	m := NewPool(h, nil, zap.NewNop())
	e := m.Entry(DefaultMobID)
	require.NoError(t, e.AddSpell(1))
	e.SetCooldownRange(1, 5*time.Second, 10*time.Second)

	var buf bytes.Buffer
	e.Dump(&buf, "")
	assert.Contains(t, buf.String(), "NPC: Default Mob (90001)")
	assert.Contains(t, buf.String(), "[cooldown 5s-10s]")
}
