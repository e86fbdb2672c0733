package spell

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/core/ecs"
)

type fakeActor struct {
	id      ecs.EntityID
	level   int
	hostile bool
	combo   int
	mechMod int

	baseHealth, basePower int
	threat                map[constants.DamageSchool]int
	stats                 map[constants.StatType]int
	noPvP                 int
	damage                int
	triggered             []*Spell
	cancelled             []*Spell
	triggerErr            error
	log                   *zap.Logger
}

func newFakeActor(index uint32) *fakeActor {
	return &fakeActor{
		id:     ecs.NewEntityID(ecs.HighUnit, index, 1),
		level:  10,
		threat: make(map[constants.DamageSchool]int),
		stats:  make(map[constants.StatType]int),
	}
}

func (a *fakeActor) EntityID() ecs.EntityID     { return a.id }
func (a *fakeActor) Level() int                 { return a.level }
func (a *fakeActor) IsAlive() bool              { return true }
func (a *fakeActor) MayAttack(other Actor) bool { return a.hostile }

func (a *fakeActor) AddStatMod(st constants.StatType, d int, _ bool)    { a.stats[st] += d }
func (a *fakeActor) RemoveStatMod(st constants.StatType, d int, _ bool) { a.stats[st] -= d }
func (a *fakeActor) AddResistanceBuff(constants.DamageSchool, int)      {}
func (a *fakeActor) RemoveResistanceBuff(constants.DamageSchool, int)   {}
func (a *fakeActor) ModMaxHealth(int)                                   {}
func (a *fakeActor) ModThreat(schools []constants.DamageSchool, d int) {
	for _, s := range schools {
		a.threat[s] += d
	}
}
func (a *fakeActor) ModNoPvPCredit(d int)                { a.noPvP += d }
func (a *fakeActor) AddSpellModifier(*Effect, int, bool) {}
func (a *fakeActor) RemoveSpellModifier(*Effect)         {}
func (a *fakeActor) TakeDamage(n int, _ constants.DamageSchool, _ Actor, _ *Spell) {
	a.damage += n
}
func (a *fakeActor) Heal(int, Actor, *Spell)                  {}
func (a *fakeActor) Energize(constants.PowerType, int, Actor) {}
func (a *fakeActor) Trigger(sp *Spell, _ Target) error {
	a.triggered = append(a.triggered, sp)
	return a.triggerErr
}
func (a *fakeActor) Logger() *zap.Logger {
	if a.log == nil {
		return zap.NewNop()
	}
	return a.log
}
func (a *fakeActor) TriggerSelf(sp *Spell) error                             { return a.Trigger(sp, a) }
func (a *fakeActor) CancelAura(sp *Spell) bool                               { a.cancelled = append(a.cancelled, sp); return true }
func (a *fakeActor) BaseHealth() int                                         { return a.baseHealth }
func (a *fakeActor) BasePower() int                                          { return a.basePower }
func (a *fakeActor) PowerCost(_ constants.DamageSchool, _ *Spell, c int) int { return c }
func (a *fakeActor) ComboPoints() int                                        { return a.combo }
func (a *fakeActor) ApplySpellModifier(_ ModifierType, _ *Spell, v int) int  { return v }
func (a *fakeActor) MechanicDurationMod(constants.SpellMechanic) int         { return a.mechMod }

func TestModThreatHandlerAppliesAndReverts(t *testing.T) {
	sp := New(1, "Fade")
	e := sp.AddAuraEffect(AuraModThreat)
	e.MiscValue = int(constants.MaskOf(constants.SchoolFire, constants.SchoolFrost))
	owner := newFakeActor(1)

	h := e.CreateAuraHandler()
	require.NotNil(t, h)
	ctx := &AuraEffectContext{Effect: e, Owner: owner, Value: -30}
	h.Apply(ctx)
	assert.Equal(t, -30, owner.threat[constants.SchoolFire])
	assert.Equal(t, -30, owner.threat[constants.SchoolFrost])
	assert.Zero(t, owner.threat[constants.SchoolShadow])

	h.Remove(ctx, false)
	assert.Zero(t, owner.threat[constants.SchoolFire])
}

func TestNoPvPCreditHandler(t *testing.T) {
	sp := New(1, "No Honor")
	e := sp.AddAuraEffect(AuraNoPvPCredit)
	owner := newFakeActor(1)
	h := e.CreateAuraHandler()
	ctx := &AuraEffectContext{Effect: e, Owner: owner}
	h.Apply(ctx)
	assert.Equal(t, 1, owner.noPvP)
	h.Remove(ctx, true)
	assert.Zero(t, owner.noPvP)
}

func TestModStatAllStats(t *testing.T) {
	sp := New(1, "Mark")
	e := sp.AddAuraEffect(AuraModStat)
	e.MiscValue = -1
	owner := newFakeActor(1)
	h := e.CreateAuraHandler()
	h.Apply(&AuraEffectContext{Effect: e, Owner: owner, Value: 4})
	for _, st := range constants.AllStats() {
		assert.Equal(t, 4, owner.stats[st], st.String())
	}
}

func TestPeriodicDamageTicks(t *testing.T) {
	sp := New(1, "Pain")
	e := sp.AddAuraEffect(AuraPeriodicDamage, TargetSingleEnemy)
	sp.Init2(nil)
	owner := newFakeActor(1)
	h, ok := e.CreateAuraHandler().(PeriodicAuraHandler)
	require.True(t, ok)
	ctx := &AuraEffectContext{Effect: e, Owner: owner, Caster: newFakeActor(2), Value: 12}
	h.Tick(ctx)
	h.Tick(ctx)
	assert.Equal(t, 24, owner.damage)
}

func TestCustomAuraHandlerWins(t *testing.T) {
	sp := New(1, "Custom")
	called := false
	e := sp.AddCustomAuraEffect(func() AuraEffectHandler {
		called = true
		return DummyHandler{}
	})
	assert.Equal(t, AuraDummy, e.AuraType)
	assert.Equal(t, TargetSelf, e.ImplicitTargetA)
	e.CreateAuraHandler()
	assert.True(t, called)
}

func TestCanProcBeTriggeredBy(t *testing.T) {
	flay := New(10, "Mind Flay")
	heal := New(11, "Heal")
	sp := New(1, "Proc Aura")
	h := newTestHandler(t, sp, flay, heal)
	h.AddLine(NewLine("MindFlay", "Mind Flay", flay))
	require.NoError(t, sp.AddCasterProcLines(h, "MindFlay"))
	assert.True(t, sp.ProcTriggerFlags.HasAnyFlag(ProcDoneHarmfulSpell))

	owner := newFakeActor(1)
	assert.True(t, sp.CanProcBeTriggeredBy(owner, &ProcAction{Spell: flay}, true))
	assert.False(t, sp.CanProcBeTriggeredBy(owner, &ProcAction{Spell: heal}, true))
	assert.False(t, sp.CanProcBeTriggeredBy(owner, &ProcAction{}, true))
	// Passive side is unrestricted.
	assert.True(t, sp.CanProcBeTriggeredBy(owner, &ProcAction{Spell: heal}, false))

	weapon := New(2, "Sword Spec")
	weapon.RequiredItemClass = constants.ItemClassWeapon
	weapon.RequiredItemSubClassMask = constants.WeaponSubClassMaskSword
	sword := &WeaponInfo{ItemClass: constants.ItemClassWeapon, SubClass: 7}
	axe := &WeaponInfo{ItemClass: constants.ItemClassWeapon, SubClass: 0}
	assert.True(t, weapon.CanProcBeTriggeredBy(owner, &ProcAction{IsAttack: true, Weapon: sword}, true))
	assert.False(t, weapon.CanProcBeTriggeredBy(owner, &ProcAction{IsAttack: true, Weapon: axe}, true))
	assert.False(t, weapon.CanProcBeTriggeredBy(owner, &ProcAction{}, true))
}

func TestAddTriggerSpellsUnknown(t *testing.T) {
	sp := New(1, "Trigger")
	h := newTestHandler(t, sp)
	err := sp.AddTargetTriggerSpells(h, 42)
	assert.True(t, errors.Is(err, ErrUnknownSpell))
	assert.ErrorIs(t, sp.AddCasterProcLines(h, "Nope"), ErrUnknownLine)
}

func TestProcHandlerSides(t *testing.T) {
	sp := New(1, "Handlers")
	c := &ProcHandlerTemplate{}
	tg := &ProcHandlerTemplate{IsAttackerTriggerer: true}
	sp.AddCasterProcHandler(c)
	sp.AddTargetProcHandler(tg)
	assert.True(t, c.IsAttackerTriggerer)
	assert.False(t, tg.IsAttackerTriggerer)
}

func TestCalcPowerCost(t *testing.T) {
	sp := New(1, "Cost")
	sp.PowerCost = 100
	sp.PowerCostPerLevel = 2
	sp.BaseLevel = 5
	sp.MaxLevel = 8
	sp.PowerCostPercentage = 10
	caster := newFakeActor(1)
	caster.level = 20
	caster.basePower = 500
	caster.baseHealth = 1000

	// capped level diff 3, 10% of base power
	assert.Equal(t, 100+6+50, sp.CalcPowerCost(caster, constants.SchoolPhysical))

	sp.PowerType = constants.PowerHealth
	assert.Equal(t, 100+6+100, sp.CalcPowerCost(caster, constants.SchoolPhysical))

	sp.MaxLevel = 0
	assert.Equal(t, 15, sp.MaxLevelDiff(20))
	assert.Equal(t, 3, sp.MaxLevelDiff(2))
}

func TestDuration(t *testing.T) {
	sp := New(1, "Rupture")
	sp.Durations = Durations{Min: 6000, Max: 16000}
	sp.IsFinishingMove = true
	caster := newFakeActor(1)
	caster.combo = 5
	assert.Equal(t, 16000, sp.Duration(caster, nil))

	sp.Mechanic = constants.MechanicBleeding
	target := newFakeActor(2)
	target.mechMod = -50
	assert.Equal(t, 8000, sp.Duration(caster, target))
	assert.Equal(t, 6000, sp.Duration(nil, nil))
}

func TestBeneficialHarmfulFor(t *testing.T) {
	sp := New(1, "Neutral")
	a, b := newFakeActor(1), newFakeActor(2)
	assert.True(t, sp.IsBeneficialFor(a, b))
	a.hostile = true
	assert.True(t, sp.IsHarmfulFor(a, b))
	assert.False(t, sp.IsBeneficialFor(a, b))
}

func TestCollectionPassiveAndTaught(t *testing.T) {
	owner := newFakeActor(1)
	passive := New(1, "Passive")
	passive.Attributes = AttrPassive
	passive.Init2(nil)
	extra := New(2, "Extra")
	passive.AdditionallyTaughtSpells = []*Spell{extra}

	c := NewCollection(owner, nil, nil)
	c.AddSpell(passive)

	assert.Equal(t, 2, c.Count())
	assert.True(t, c.Contains(2))
	assert.Equal(t, []*Spell{passive}, owner.triggered)

	c.Replace(passive, nil)
	assert.Equal(t, []*Spell{passive}, owner.cancelled)
	assert.False(t, c.Contains(1))

	c.OnlyAdd(passive)
	assert.Len(t, owner.triggered, 1)
	assert.True(t, c.Remove(1))
	assert.False(t, c.Remove(1))

	c.Clear()
	assert.False(t, c.HasSpells())
}

func TestNPCCooldowns(t *testing.T) {
	now := time.Unix(1000, 0)
	cd := NewNPCCooldowns(func() time.Time { return now })
	sp := New(1, "Cleave")
	sp.CooldownTime = 5000
	other := New(2, "Shared")
	other.Category = 7
	other.CategoryCooldownTime = 2000
	sibling := New(3, "Sibling")
	sibling.Category = 7

	cd.AddCooldown(sp)
	cd.AddCooldown(other)
	assert.False(t, cd.IsReady(sp))
	assert.False(t, cd.IsReady(sibling))

	now = now.Add(2 * time.Second)
	assert.True(t, cd.IsReady(sibling))
	assert.False(t, cd.IsReady(sp))

	now = now.Add(3 * time.Second)
	assert.True(t, cd.IsReady(sp))

	cd.CooldownFor = func(*Spell) (time.Duration, bool) { return time.Minute, true }
	cd.AddCooldown(sp)
	now = now.Add(30 * time.Second)
	assert.False(t, cd.IsReady(sp))
	cd.ClearCooldowns()
	assert.True(t, cd.IsReady(sp))
}

type memStore struct {
	saved map[uint32][]Cooldown
}

func (m *memStore) LoadCooldowns(_ context.Context, id uint32) ([]Cooldown, error) {
	return m.saved[id], nil
}

func (m *memStore) SaveCooldowns(_ context.Context, id uint32, cds []Cooldown) error {
	m.saved[id] = cds
	return nil
}

func TestPlayerCooldownsRoundTrip(t *testing.T) {
	now := time.Unix(5000, 0)
	clock := func() time.Time { return now }
	store := &memStore{saved: make(map[uint32][]Cooldown)}
	sp := New(9, "Shield Wall")
	sp.CooldownTime = 60000

	pc := NewPlayerCooldowns(42, store, clock)
	pc.AddCooldown(sp)
	require.True(t, pc.Dirty())
	require.NoError(t, pc.Save(context.Background()))
	assert.False(t, pc.Dirty())
	require.Len(t, store.saved[42], 1)

	restored := NewPlayerCooldowns(42, store, clock)
	require.NoError(t, restored.Load(context.Background()))
	assert.False(t, restored.IsReady(sp))
}

func TestTriggerHandlersLogFailedCasts(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	a := newFakeActor(1)
	a.log = zap.New(core)
	a.triggerErr = errors.New("not enough mana")

	tick := New(2, "Dispersion Tick")
	aura := New(1, "Dispersion")
	e := aura.AddPeriodicTriggerSpellEffect(tick.ID, 1000)
	e.TriggerSpell = tick
	ctx := &AuraEffectContext{Effect: e, Caster: a, Owner: a}

	PeriodicTriggerSpellHandler{}.Tick(ctx)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "periodic trigger failed", entry.Message)
	assert.Equal(t, uint32(2), entry.ContextMap()["spell_id"])

	proc := New(3, "Proc")
	pe := proc.AddAuraEffect(AuraProcTriggerSpell)
	pe.TriggerSpell = tick
	ProcTriggerSpellHandler{}.OnProc(&AuraEffectContext{Effect: pe, Caster: a, Owner: a}, &ProcAction{Attacker: a, Victim: a})
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "proc trigger failed", logs.All()[1].Message)
	assert.Len(t, a.triggered, 2)
}
