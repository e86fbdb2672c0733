// Package unit implements the living world entities: their client-visible
// field slots, health and power, stats, auras and spell casting.
package unit

import (
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/class"
	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/core/ecs"
	"github.com/realmcore/server/internal/core/event"
	"github.com/realmcore/server/internal/spell"
	"github.com/realmcore/server/internal/update"
)

var (
	ErrNilFaction       = errors.New("faction must not be nil")
	ErrInvalidDisplayID = errors.New("invalid display id")
)

// Context is shared by every unit of a region.
type Context struct {
	Bus      *event.Bus
	Spells   *spell.Handler
	Models   *Models
	Factions *Factions
	Now      func() time.Time
	Rand     *rand.Rand
	Log      *zap.Logger
	// Lookup resolves an entity id to a unit that is in the world.
	Lookup func(id ecs.EntityID) *Unit
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) rnd() *rand.Rand {
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c.Rand
}

func (c *Context) log() *zap.Logger {
	if c.Log == nil {
		c.Log = zap.NewNop()
	}
	return c.Log
}

// Clock returns the current time of the region.
func (c *Context) Clock() time.Time { return c.now() }

// Random is the random source of the region.
func (c *Context) Random() *rand.Rand { return c.rnd() }

func (c *Context) Logger() *zap.Logger { return c.log() }

// Listener receives combat notifications of a unit. NPC brains implement it.
type Listener interface {
	OnEnterCombat(attacker *Unit)
	OnLeaveCombat()
	OnDamaged(attacker *Unit, amount int)
	OnKilled(killer *Unit)
}

// Params are the construction values of a unit.
type Params struct {
	ID      ecs.EntityID
	EntryID uint32
	Class   *class.Class
	// Cooldowns defaults to in-memory NPC cooldowns on the context clock.
	Cooldowns spell.CooldownStrategy
}

// Unit is a living entity. Accessed only from the game loop goroutine, no locks.
type Unit struct {
	ctx    *Context
	id     ecs.EntityID
	fields *update.Fields
	class  *class.Class

	faction *Faction
	model   *Model
	target  *Unit
	master  *Unit
	inWorld bool

	NPCAttackerCount int  // NPCs currently targeting this unit
	IsFighting       bool // swinging at the target
	Listener         Listener
	// OnLevelChanged lets NPCs rescale health and power for a new level.
	OnLevelChanged func(u *Unit)

	baseStats  [constants.StatCount]int
	baseResist [constants.DamageSchoolCount]int

	powerRegen      int // per second
	lastPowerUpdate time.Time
	comboPoints     int
	inCombat        bool
	lastAttacker    *Unit
	safeFall        int
	trainingPoints  int

	mechanics       map[constants.SpellMechanic]int
	mechanicDurMods map[constants.SpellMechanic]int
	threatMods      [constants.DamageSchoolCount]int
	noPvPCredit     int
	yieldsXp        bool
	spellMods       []spellModifier
	threat          *ThreatList
	procHandlers    []*procHandler

	Auras  *Auras
	Spells *spell.Collection
}

// New creates a unit with its object fields initialized.
func New(ctx *Context, p Params) *Unit {
	u := &Unit{
		ctx:             ctx,
		id:              p.ID,
		fields:          update.NewFields(FieldEnd),
		class:           p.Class,
		mechanics:       make(map[constants.SpellMechanic]int),
		mechanicDurMods: make(map[constants.SpellMechanic]int),
		threat:          NewThreatList(),
		yieldsXp:        true,
		lastPowerUpdate: ctx.now(),
	}
	u.Auras = newAuras(u)
	cooldowns := p.Cooldowns
	if cooldowns == nil {
		cooldowns = spell.NewNPCCooldowns(ctx.now)
	}
	u.Spells = spell.NewCollection(u, cooldowns, ctx.log())

	typeMask := update.TypeMaskObject | update.TypeMaskUnit
	if p.ID.IsPlayer() {
		typeMask |= update.TypeMaskPlayer
	}
	u.fields.SetEntityID(update.ObjectFieldGUID, p.ID)
	u.fields.SetUInt32(update.ObjectFieldType, typeMask)
	u.fields.SetUInt32(update.ObjectFieldEntry, p.EntryID)
	u.fields.SetFloat32(update.ObjectFieldScaleX, 1)
	u.fields.SetFloat32(FieldModCastSpeed, 1)
	u.fields.SetFloat32(FieldHoverHeight, 1)

	if p.Class != nil {
		u.SetClass(p.Class.ID)
		u.SetPowerType(p.Class.PowerType)
	}
	return u
}

func (u *Unit) EntityID() ecs.EntityID { return u.id }
func (u *Unit) Fields() *update.Fields { return u.fields }
func (u *Unit) Context() *Context      { return u.ctx }
func (u *Unit) Logger() *zap.Logger    { return u.ctx.log() }
func (u *Unit) IsPlayer() bool         { return u.id.IsPlayer() }
func (u *Unit) EntryID() uint32        { return u.fields.UInt32(update.ObjectFieldEntry) }
func (u *Unit) ClassInfo() *class.Class {
	return u.class
}

func (u *Unit) IsInWorld() bool    { return u.inWorld }
func (u *Unit) SetInWorld(in bool) { u.inWorld = in }
func (u *Unit) Scale() float32     { return u.fields.Float32(update.ObjectFieldScaleX) }
func (u *Unit) SetScale(scale float32) {
	u.fields.SetFloat32(update.ObjectFieldScaleX, scale)
	if u.model != nil {
		u.applyModelSizes(u.model)
	}
}

// asUnit converts the spell side view of an entity back into a unit.
func asUnit(a spell.Actor) *Unit {
	if a == nil {
		return nil
	}
	u, _ := a.(*Unit)
	return u
}

func (u *Unit) lookup(id ecs.EntityID) *Unit {
	if id.IsZero() || u.ctx.Lookup == nil {
		return nil
	}
	return u.ctx.Lookup(id)
}

// --- Object relations ---

func (u *Unit) Charm() ecs.EntityID        { return u.fields.EntityID(FieldCharm) }
func (u *Unit) SetCharm(id ecs.EntityID)   { u.fields.SetEntityID(FieldCharm, id) }
func (u *Unit) Charmer() ecs.EntityID      { return u.fields.EntityID(FieldCharmedBy) }
func (u *Unit) SetCharmer(id ecs.EntityID) { u.fields.SetEntityID(FieldCharmedBy, id) }
func (u *Unit) IsCharmed() bool            { return !u.Charmer().IsZero() }

func (u *Unit) Summoner() ecs.EntityID      { return u.fields.EntityID(FieldSummonedBy) }
func (u *Unit) SetSummoner(id ecs.EntityID) { u.fields.SetEntityID(FieldSummonedBy, id) }
func (u *Unit) Creator() ecs.EntityID       { return u.fields.EntityID(FieldCreatedBy) }
func (u *Unit) SetCreator(id ecs.EntityID)  { u.fields.SetEntityID(FieldCreatedBy, id) }
func (u *Unit) Summon() ecs.EntityID        { return u.fields.EntityID(FieldSummon) }
func (u *Unit) SetSummon(id ecs.EntityID)   { u.fields.SetEntityID(FieldSummon, id) }

func (u *Unit) ChannelObject() ecs.EntityID      { return u.fields.EntityID(FieldChannelObject) }
func (u *Unit) SetChannelObject(id ecs.EntityID) { u.fields.SetEntityID(FieldChannelObject, id) }
func (u *Unit) ChannelSpell() spell.ID           { return spell.ID(u.fields.UInt32(FieldChannelSpell)) }
func (u *Unit) SetChannelSpell(id spell.ID)      { u.fields.SetUInt32(FieldChannelSpell, uint32(id)) }

// Target returns the current target. A target that left the world is
// dropped.
func (u *Unit) Target() *Unit {
	if u.target != nil && !u.target.IsInWorld() {
		u.SetTarget(nil)
	}
	return u.target
}

// SetTarget changes the target. NPC attackers are counted on their target.
func (u *Unit) SetTarget(t *Unit) {
	if u.target == t {
		return
	}
	if u.target != nil && !u.IsPlayer() {
		u.target.NPCAttackerCount--
	}
	if t != nil {
		u.fields.SetEntityID(FieldTarget, t.id)
		if !u.IsPlayer() {
			t.NPCAttackerCount++
		}
	} else {
		u.fields.SetEntityID(FieldTarget, 0)
		u.IsFighting = false
	}
	u.target = t
}

// Master is the unit that controls this one, or nil.
func (u *Unit) Master() *Unit { return u.master }

func (u *Unit) SetMaster(m *Unit) {
	u.master = m
	if m != nil && m != u && m.IsPlayer() {
		u.SetUnitFlags(u.UnitFlags() | constants.UnitFlagPlayerControlled)
	}
}

// IsMinion reports whether another unit controls this one.
func (u *Unit) IsMinion() bool { return u.master != nil && u.master != u }

// --- Level, faction and model ---

func (u *Unit) Level() int { return int(u.fields.UInt32(FieldLevel)) }

func (u *Unit) SetLevel(level int) {
	if level < 1 {
		level = 1
	}
	u.fields.SetUInt32(FieldLevel, uint32(level))
	if u.IsPlayer() && u.class != nil {
		u.SetBaseHealth(u.class.HealthForLevel(level))
		u.SetBasePower(u.class.PowerForLevel(level))
		u.UpdateAttackPower()
	}
	if u.OnLevelChanged != nil {
		u.OnLevelChanged(u)
	}
}

func (u *Unit) Faction() *Faction { return u.faction }

func (u *Unit) SetFaction(f *Faction) error {
	if f == nil {
		return ErrNilFaction
	}
	u.faction = f
	u.fields.SetUInt32(FieldFactionTemplate, uint32(f.ID))
	return nil
}

// SetFactionID sets the faction by template id. Unknown ids are ignored.
func (u *Unit) SetFactionID(id constants.FactionTemplateID) {
	f := u.ctx.Factions.Get(id)
	if f == nil {
		u.ctx.log().Debug("unknown faction ignored", zap.Uint32("faction", uint32(id)))
		return
	}
	if err := u.SetFaction(f); err != nil {
		u.ctx.log().Warn("set faction", zap.Uint32("faction", uint32(id)), zap.Error(err))
	}
}

func (u *Unit) FactionTemplateID() constants.FactionTemplateID {
	return constants.FactionTemplateID(u.fields.UInt32(FieldFactionTemplate))
}

func (u *Unit) UnitFlags() constants.UnitFlags {
	return constants.UnitFlags(u.fields.UInt32(FieldFlags))
}

func (u *Unit) SetUnitFlags(f constants.UnitFlags) { u.fields.SetUInt32(FieldFlags, uint32(f)) }

func (u *Unit) UnitFlags2() constants.UnitFlags2 {
	return constants.UnitFlags2(u.fields.UInt32(FieldFlags2))
}

func (u *Unit) SetUnitFlags2(f constants.UnitFlags2) { u.fields.SetUInt32(FieldFlags2, uint32(f)) }

func (u *Unit) BoundingRadius() float32 { return u.fields.Float32(FieldBoundingRadius) }
func (u *Unit) CombatReach() float32    { return u.fields.Float32(FieldCombatReach) }

func (u *Unit) Model() *Model { return u.model }

// SetModel changes the display and the collision sizes, scaled by the
// unit's scale.
func (u *Unit) SetModel(m *Model) {
	if m == nil {
		return
	}
	u.model = m
	u.fields.SetUInt32(FieldDisplayID, m.DisplayID)
	u.applyModelSizes(m)
}

func (u *Unit) applyModelSizes(m *Model) {
	scale := u.Scale()
	u.fields.SetFloat32(FieldBoundingRadius, m.BoundingRadius*scale)
	u.fields.SetFloat32(FieldCombatReach, m.CombatReach*scale)
}

func (u *Unit) DisplayID() uint32 { return u.fields.UInt32(FieldDisplayID) }

// SetDisplayID looks the model up. Unknown ids leave the unit unchanged.
func (u *Unit) SetDisplayID(id uint32) error {
	m := u.ctx.Models.Get(id)
	if m == nil {
		u.ctx.log().Error("trying to set invalid display id",
			zap.Uint32("display_id", id), zap.Stringer("unit", u.id.High()), zap.Uint32("index", u.id.Index()))
		return ErrInvalidDisplayID
	}
	u.SetModel(m)
	return nil
}

func (u *Unit) NativeDisplayID() uint32      { return u.fields.UInt32(FieldNativeDisplayID) }
func (u *Unit) SetNativeDisplayID(id uint32) { u.fields.SetUInt32(FieldNativeDisplayID, id) }
func (u *Unit) MountDisplayID() uint32       { return u.fields.UInt32(FieldMountDisplayID) }
func (u *Unit) SetMountDisplayID(id uint32)  { u.fields.SetUInt32(FieldMountDisplayID, id) }
func (u *Unit) IsMounted() bool              { return u.MountDisplayID() != 0 }

func (u *Unit) VirtualItem(slot int) uint32 {
	return u.fields.UInt32(FieldVirtualItemSlotID + update.Field(slot))
}

func (u *Unit) SetVirtualItem(slot int, id uint32) {
	if slot < 0 || slot > 2 {
		return
	}
	u.fields.SetUInt32(FieldVirtualItemSlotID+update.Field(slot), id)
}

// --- Pet info ---

func (u *Unit) PetNumber() uint32             { return u.fields.UInt32(FieldPetNumber) }
func (u *Unit) SetPetNumber(n uint32)         { u.fields.SetUInt32(FieldPetNumber, n) }
func (u *Unit) PetNameTimestamp() uint32      { return u.fields.UInt32(FieldPetNameTimestamp) }
func (u *Unit) SetPetNameTimestamp(ts uint32) { u.fields.SetUInt32(FieldPetNameTimestamp, ts) }
func (u *Unit) PetExperience() int            { return int(u.fields.UInt32(FieldPetExperience)) }
func (u *Unit) SetPetExperience(xp int)       { u.fields.SetUInt32(FieldPetExperience, uint32(xp)) }
func (u *Unit) PetNextLevelExp() int          { return int(u.fields.UInt32(FieldPetNextLevelExp)) }
func (u *Unit) SetPetNextLevelExp(xp int)     { u.fields.SetUInt32(FieldPetNextLevelExp, uint32(xp)) }

// --- Misc fields ---

func (u *Unit) DynamicFlags() constants.UnitDynamicFlags {
	return constants.UnitDynamicFlags(u.fields.UInt32(FieldDynamicFlags))
}

func (u *Unit) SetDynamicFlags(f constants.UnitDynamicFlags) {
	u.fields.SetUInt32(FieldDynamicFlags, uint32(f))
}

func (u *Unit) CastSpeedFactor() float32     { return u.fields.Float32(FieldModCastSpeed) }
func (u *Unit) SetCastSpeedFactor(f float32) { u.fields.SetFloat32(FieldModCastSpeed, f) }

func (u *Unit) CreationSpellID() spell.ID      { return spell.ID(u.fields.UInt32(FieldCreatedBySpell)) }
func (u *Unit) SetCreationSpellID(id spell.ID) { u.fields.SetUInt32(FieldCreatedBySpell, uint32(id)) }
func (u *Unit) IsSummoned() bool               { return u.CreationSpellID() != 0 }

func (u *Unit) NPCFlags() constants.NPCFlags {
	return constants.NPCFlags(u.fields.UInt32(FieldNPCFlags))
}

// SetNPCFlags also marks the dynamic flags since clients read both together.
func (u *Unit) SetNPCFlags(f constants.NPCFlags) {
	u.fields.SetUInt32(FieldNPCFlags, uint32(f))
	u.fields.MarkUpdate(FieldDynamicFlags)
}

func (u *Unit) EmoteState() constants.EmoteType {
	return constants.EmoteType(u.fields.UInt32(FieldNPCEmoteState))
}

func (u *Unit) SetEmoteState(e constants.EmoteType) {
	u.fields.SetUInt32(FieldNPCEmoteState, uint32(e))
}

func (u *Unit) HoverHeight() float32     { return u.fields.Float32(FieldHoverHeight) }
func (u *Unit) SetHoverHeight(h float32) { u.fields.SetFloat32(FieldHoverHeight, h) }

// TrainingPoints are not sent to clients any more.
func (u *Unit) TrainingPoints() int      { return u.trainingPoints }
func (u *Unit) SetTrainingPoints(tp int) { u.trainingPoints = tp }

func (u *Unit) AuraState() constants.AuraStateMask {
	return constants.AuraStateMask(u.fields.UInt32(FieldAuraState))
}

func (u *Unit) SetAuraState(m constants.AuraStateMask) { u.fields.SetUInt32(FieldAuraState, uint32(m)) }

func (u *Unit) SafeFall() int        { return u.safeFall }
func (u *Unit) SetSafeFall(v int)    { u.safeFall = v }
func (u *Unit) ComboPoints() int     { return u.comboPoints }
func (u *Unit) SetComboPoints(n int) { u.comboPoints = n }

// --- Ownership ---

// BelongsToPlayer reports whether the unit is a player or controlled by one.
func (u *Unit) BelongsToPlayer() bool {
	return u.IsPlayer() || (u.master != nil && u.master.IsPlayer())
}

func (u *Unit) IsPlayerControlled() bool {
	return u.UnitFlags().HasAnyFlag(constants.UnitFlagPlayerControlled)
}

func (u *Unit) YieldsXpOrHonor() bool       { return u.yieldsXp && u.noPvPCredit <= 0 }
func (u *Unit) SetYieldsXpOrHonor(yes bool) { u.yieldsXp = yes }
func (u *Unit) ModNoPvPCredit(delta int)    { u.noPvPCredit += delta }

// MayAttack reports whether the factions of both units are hostile.
func (u *Unit) MayAttack(other spell.Actor) bool {
	o := asUnit(other)
	if o == nil || o == u {
		return false
	}
	return u.faction.IsHostileTo(o.faction)
}

// --- Mechanics ---

func (u *Unit) IncMechanicCount(m constants.SpellMechanic) {
	u.mechanics[m]++
	if m == constants.MechanicRooted && u.mechanics[m] == 1 {
		u.SetUnitFlags(u.UnitFlags() | constants.UnitFlagDisableMovement)
	}
}

func (u *Unit) DecMechanicCount(m constants.SpellMechanic) {
	if u.mechanics[m] == 0 {
		return
	}
	u.mechanics[m]--
	if m == constants.MechanicRooted && u.mechanics[m] == 0 {
		u.SetUnitFlags(u.UnitFlags() &^ constants.UnitFlagDisableMovement)
	}
}

func (u *Unit) IsUnderMechanic(m constants.SpellMechanic) bool { return u.mechanics[m] > 0 }

// MechanicDurationMod is the percent change of durations of spells with
// mechanic m on this unit.
func (u *Unit) MechanicDurationMod(m constants.SpellMechanic) int { return u.mechanicDurMods[m] }

func (u *Unit) ModMechanicDurationMod(m constants.SpellMechanic, delta int) {
	u.mechanicDurMods[m] += delta
}

// --- Combat state ---

func (u *Unit) IsInCombat() bool { return u.inCombat }

// EnterCombat flags the unit as fighting and notifies the listener once.
func (u *Unit) EnterCombat(attacker *Unit) {
	if u.inCombat {
		return
	}
	u.inCombat = true
	u.SetUnitFlags(u.UnitFlags() | constants.UnitFlagInCombat)
	var targetID ecs.EntityID
	if attacker != nil {
		targetID = attacker.id
	}
	event.Emit(u.ctx.Bus, event.CombatEntered{Unit: u.id, Target: targetID})
	if u.Listener != nil {
		u.Listener.OnEnterCombat(attacker)
	}
}

func (u *Unit) LeaveCombat() {
	if !u.inCombat {
		return
	}
	u.inCombat = false
	u.SetUnitFlags(u.UnitFlags() &^ constants.UnitFlagInCombat)
	u.SetTarget(nil)
	u.threat.Clear()
	event.Emit(u.ctx.Bus, event.CombatLeft{Unit: u.id})
	if u.Listener != nil {
		u.Listener.OnLeaveCombat()
	}
}
