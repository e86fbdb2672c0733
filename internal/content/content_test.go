package content

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/realmcore/server/internal/class"
	"github.com/realmcore/server/internal/core/ecs"
	"github.com/realmcore/server/internal/core/event"
	"github.com/realmcore/server/internal/data"
	"github.com/realmcore/server/internal/instance"
	"github.com/realmcore/server/internal/npc"
	"github.com/realmcore/server/internal/scripting"
	"github.com/realmcore/server/internal/spell"
	"github.com/realmcore/server/internal/unit"
)

func loadDeps(t *testing.T) *Deps {
	t.Helper()
	log := zap.NewNop()

	list, err := data.LoadSpellList("../../data/yaml/spells.yaml")
	require.NoError(t, err)
	h, err := spell.BuildHandler(list, log)
	require.NoError(t, err)
	h.Initialize()

	table, err := data.LoadNpcList("../../data/yaml/npcs.yaml")
	require.NoError(t, err)
	maps, err := data.LoadMapData("../../data/yaml/maps.yaml")
	require.NoError(t, err)
	classes, err := data.LoadClassList("../../data/yaml/classes.yaml")
	require.NoError(t, err)

	eng, err := scripting.NewEngine("../../scripts", log)
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	reg, err := class.NewRegistry(classes, eng, log)
	require.NoError(t, err)

	npcs := npc.NewManager(table, h, eng, log)
	return &Deps{
		Spells:   h,
		NPCs:     npcs,
		Dungeons: instance.NewRegistry(maps, npcs, log),
		Classes:  reg,
		Scripts:  eng,
		Log:      log,
	}
}

// runContent runs the built-in content and finalizes the spells.
func runContent(t *testing.T) *Deps {
	t.Helper()
	d := loadDeps(t)
	require.NoError(t, Run(context.Background(), d))
	d.Spells.Finalize()
	return d
}

type world struct {
	t     *testing.T
	ctx   *unit.Context
	now   time.Time
	units map[ecs.EntityID]*unit.Unit
	pool  *ecs.EntityPool
}

func newWorld(t *testing.T, d *Deps) *world {
	t.Helper()
	models, err := data.LoadModelList("../../data/yaml/models.yaml")
	require.NoError(t, err)
	w := &world{
		t:     t,
		now:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		units: make(map[ecs.EntityID]*unit.Unit),
		pool:  ecs.NewEntityPool(),
	}
	w.ctx = &unit.Context{
		Bus:      event.NewBus(),
		Spells:   d.Spells,
		Models:   unit.NewModels(models.Models),
		Factions: unit.NewFactions(models.Factions),
		Now:      func() time.Time { return w.now },
		Rand:     rand.New(rand.NewSource(3)),
		Log:      zap.NewNop(),
	}
	w.ctx.Lookup = func(id ecs.EntityID) *unit.Unit { return w.units[id] }
	return w
}

func (w *world) add(u *unit.Unit) *unit.Unit {
	u.SetInWorld(true)
	w.units[u.EntityID()] = u
	return u
}

func (w *world) priest(health int) *unit.Unit {
	w.t.Helper()
	p := unit.New(w.ctx, unit.Params{ID: w.pool.Create(ecs.HighPlayer)})
	p.SetLevel(20)
	p.SetBaseHealth(health)
	p.SetHealth(health)
	p.SetFactionID(1)
	return w.add(p)
}

func (w *world) spawn(d *Deps, entryID uint32) *npc.NPC {
	w.t.Helper()
	e, err := d.NPCs.MustEntry(entryID)
	require.NoError(w.t, err)
	n := e.Create(w.ctx, w.pool.Create(ecs.HighUnit))
	w.add(n.Unit)
	return n
}

func TestRunDefault(t *testing.T) {
	d := runContent(t)

	rfc := d.Dungeons.Get(RagefireChasmMap)
	require.NotNil(t, rfc)
	assert.Equal(t, RagefireChasmID, rfc.ID)
	assert.Equal(t, "Ragefire Chasm", rfc.Name)
}

func TestSpiritTapProcsOnlyOnRewardingKills(t *testing.T) {
	d := runContent(t)
	assert.Equal(t, spell.ProcGainExperience, d.Spells.Get(15270).ProcTriggerFlags)

	w := newWorld(t, d)
	p := w.priest(500)
	p.Spells.AddSpell(d.Spells.Get(15270))
	require.True(t, p.Auras.Contains(15270), "passive talent aura")

	dummy := w.spawn(d, NPCRagefireTrogg)
	dummy.SetYieldsXpOrHonor(false)
	dummy.Kill(p)
	assert.False(t, p.Auras.Contains(15271), "no experience from dummies")

	trogg := w.spawn(d, NPCRagefireTrogg)
	trogg.Kill(p)
	assert.True(t, p.Auras.Contains(15271))
}

func TestMindFlayDealsPeriodicDamage(t *testing.T) {
	d := runContent(t)

	for id, want := range map[spell.ID]int{15407: 42, 17311: 75} {
		sp := d.Spells.Get(id)
		require.Len(t, sp.Effects, 4, "%s", sp)
		e := sp.Effects[3]
		assert.Equal(t, spell.AuraPeriodicDamage, e.AuraType)
		assert.Equal(t, want, e.BasePoints, "%s", sp)
		assert.Equal(t, 1000, e.Amplitude)
		assert.True(t, e.HasTarget(spell.TargetSingleEnemy))
	}
}

func TestShadowWeavingTargetsPriest(t *testing.T) {
	d := runContent(t)

	e := d.Spells.Get(15257).AuraEffect(spell.AuraAddTargetTrigger)
	require.NotNil(t, e)
	assert.Equal(t, spell.TargetSelf, e.ImplicitTargetA)
	flay := d.Spells.Get(15407)
	assert.NotZero(t, e.AffectMask[0]&flay.SpellClassMask[0])
}

func TestDispersionTriggersManaRegen(t *testing.T) {
	d := runContent(t)

	sp := d.Spells.Get(47585)
	require.Len(t, sp.Effects, 2)
	e := sp.Effects[1]
	assert.Equal(t, spell.AuraPeriodicTriggerSpell, e.AuraType)
	assert.Same(t, d.Spells.Get(DispersionMana), e.TriggerSpell)
	assert.False(t, e.IsInvalid)
}

func TestVampiricEmbraceHealsFromShadowDamage(t *testing.T) {
	d := runContent(t)
	w := newWorld(t, d)

	p := w.priest(2000)
	p.SetHealth(100)
	require.NoError(t, p.TriggerSelf(d.Spells.Get(15286)))

	trogg := w.spawn(d, NPCRagefireTrogg)
	trogg.SetBaseHealth(5000)
	trogg.SetHealth(5000)

	require.NoError(t, p.Trigger(d.Spells.Get(32379), trogg.Unit))
	dealt := 5000 - trogg.Health()
	require.Positive(t, dealt)
	assert.Equal(t, 100+dealt*14/100, p.Health())

	// Holy damage is not one of the proc lines.
	before := p.Health()
	smite := spell.New(585, "Smite")
	smite.SchoolMask = 2
	eff := smite.AddEffect(spell.EffectSchoolDamage)
	eff.BasePoints = 30
	eff.ImplicitTargetA = spell.TargetSingleEnemy
	smite.Initialize(d.Spells)
	smite.Init2(d.Spells)
	require.NoError(t, p.Trigger(smite, trogg.Unit))
	assert.Equal(t, before, p.Health())
}

func TestRagefireCooldowns(t *testing.T) {
	d := runContent(t)
	rnd := rand.New(rand.NewSource(1))

	fixedCases := []struct {
		npc  uint32
		sp   spell.ID
		want time.Duration
	}{
		{NPCOggleflint, SpellCleave, 5 * time.Second},
		{NPCTaragaman, SpellUppercut, 5 * time.Second},
		{NPCTaragaman, SpellFireNova, 10 * time.Second},
		{NPCJergosh, SpellCurseOfWeakness, 12 * time.Second},
		{NPCJergosh, SpellImmolate, 5 * time.Second},
		{NPCBazzalan, SpellPoison, 10 * time.Second},
		{NPCBazzalan, SpellSinisterStrike, 12 * time.Second},
	}
	for _, c := range fixedCases {
		e := d.NPCs.Entry(c.npc)
		require.True(t, e.HasSpell(c.sp), "%s has %d", e, c.sp)
		got, ok := e.Cooldown(d.Spells.Get(c.sp), rnd)
		require.True(t, ok)
		assert.Equal(t, c.want, got, "%s %d", e, c.sp)
	}

	rangeCases := []struct {
		npc      uint32
		sp       spell.ID
		min, max time.Duration
	}{
		{NPCEarthborer, SpellEarthborerAcid, 8 * time.Second, 12 * time.Second},
		{NPCRagefireShaman, SpellHealingWave, 8 * time.Second, 12 * time.Second},
		{NPCRagefireShaman, SpellLightningBolt, 8 * time.Second, 12 * time.Second},
		{NPCRagefireTrogg, SpellStrike, 8 * time.Second, 12 * time.Second},
		{NPCSearingBladeCultist, SpellCurseOfAgony, 8 * time.Second, 12 * time.Second},
		{NPCSearingBladeEnforcer, SpellShieldSlam, 5 * time.Second, 12 * time.Second},
		{NPCSearingBladeWarlock, SpellShadowBolt, 5 * time.Second, 10 * time.Second},
	}
	for _, c := range rangeCases {
		e := d.NPCs.Entry(c.npc)
		require.True(t, e.HasSpell(c.sp), "%s has %d", e, c.sp)
		for i := 0; i < 20; i++ {
			got, ok := e.Cooldown(d.Spells.Get(c.sp), rnd)
			require.True(t, ok)
			assert.GreaterOrEqual(t, got, c.min)
			assert.LessOrEqual(t, got, c.max)
		}
	}

	assert.False(t, d.NPCs.Entry(NPCJergosh).HasSpell(SpellHealingWave))
	assert.Zero(t, d.Spells.Get(SpellCleave).CooldownTime, "shared spell record is unchanged")
}

func TestWarlockSummonsOnce(t *testing.T) {
	d := runContent(t)
	w := newWorld(t, d)

	warlock := w.spawn(d, NPCSearingBladeWarlock)
	require.IsType(t, &SearingBladeWarlockBrain{}, warlock.Brain)
	p := w.priest(500)

	warlock.Threat().Add(p.EntityID(), 10)
	warlock.EnterCombat(p)
	assert.Equal(t, 1, event.Pending[event.SummonRequested](w.ctx.Bus))

	warlock.LeaveCombat()
	warlock.EnterCombat(p)
	assert.Equal(t, 1, event.Pending[event.SummonRequested](w.ctx.Bus))

	var got []event.SummonRequested
	event.Subscribe(w.ctx.Bus, func(ev event.SummonRequested) { got = append(got, ev) })
	w.ctx.Bus.SwapBuffers()
	w.ctx.Bus.DispatchAll()
	require.Len(t, got, 1)
	assert.Equal(t, warlock.EntityID(), got[0].Summoner)
	assert.Equal(t, NPCVoidwalkerMinion, got[0].EntryID)
	assert.Equal(t, uint32(SpellSummonVoidwalker), got[0].SpellID)
}

func TestRunJoinsStepErrors(t *testing.T) {
	d := loadDeps(t)
	first := errors.New("first")
	second := errors.New("second")
	var order []string

	in := New()
	in.Add(Third, "c", func(context.Context, *Deps) error { order = append(order, "c"); return nil })
	in.Add(First, "a", func(context.Context, *Deps) error { order = append(order, "a"); return first })
	in.Add(Second, "b", func(context.Context, *Deps) error { order = append(order, "b"); return second })

	err := in.Run(context.Background(), d)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	assert.ErrorContains(t, err, "first pass, a")
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	d := loadDeps(t)
	ctx, cancel := context.WithCancel(context.Background())
	ran := 0

	in := New()
	in.Add(First, "cancel", func(context.Context, *Deps) error { ran++; cancel(); return nil })
	in.Add(Second, "skipped", func(context.Context, *Deps) error { ran++; return nil })

	err := in.Run(ctx, d)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, ran)
}

func TestCheckSummonsReportsMissingEntries(t *testing.T) {
	d := loadDeps(t)
	sp := spell.New(99001, "Summon Nothing")
	e := sp.AddEffect(spell.EffectSummon)
	e.MiscValue = 4242
	d.Spells.Add(sp)

	err := checkSummons(context.Background(), d)
	assert.ErrorIs(t, err, npc.ErrUnknownEntry)
	assert.ErrorContains(t, err, "Summon Nothing")
}
