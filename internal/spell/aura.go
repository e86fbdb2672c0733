package spell

import (
	"go.uber.org/zap"

	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/core/ecs"
)

// Actor is the side of a unit that spell rules need to read.
type Actor interface {
	EntityID() ecs.EntityID
	Level() int
	IsAlive() bool
	MayAttack(other Actor) bool
}

// Target is a unit that aura and effect handlers change.
type Target interface {
	Actor

	AddStatMod(stat constants.StatType, delta int, passive bool)
	RemoveStatMod(stat constants.StatType, delta int, passive bool)
	AddResistanceBuff(school constants.DamageSchool, delta int)
	RemoveResistanceBuff(school constants.DamageSchool, delta int)
	ModMaxHealth(delta int)
	ModThreat(schools []constants.DamageSchool, delta int)
	ModNoPvPCredit(delta int)
	AddSpellModifier(e *Effect, value int, percent bool)
	RemoveSpellModifier(e *Effect)

	TakeDamage(amount int, school constants.DamageSchool, attacker Actor, sp *Spell)
	Heal(amount int, healer Actor, sp *Spell)
	Energize(pt constants.PowerType, amount int, by Actor)
	Trigger(sp *Spell, target Target) error
	Logger() *zap.Logger
}

// AuraEffectContext is what an aura effect handler operates on.
type AuraEffectContext struct {
	Effect *Effect
	Caster Actor
	Owner  Target
	// Value is rolled once when the aura is created.
	Value int
}

// CasterTarget returns the caster as a Target, falling back to the owner
// when the caster is gone or cannot act.
func (c *AuraEffectContext) CasterTarget() Target {
	if t, ok := c.Caster.(Target); ok && t != nil {
		return t
	}
	return c.Owner
}

// AuraEffectHandler applies and reverts the effect of one aura effect.
// Instances are created per aura and may keep state between calls.
type AuraEffectHandler interface {
	Apply(ctx *AuraEffectContext)
	Remove(ctx *AuraEffectContext, cancelled bool)
}

// PeriodicAuraHandler is implemented by handlers that act every amplitude.
type PeriodicAuraHandler interface {
	AuraEffectHandler
	Tick(ctx *AuraEffectContext)
}

// ProcAuraHandler is implemented by handlers that react to proc actions.
type ProcAuraHandler interface {
	AuraEffectHandler
	CanProcBeTriggeredBy(ctx *AuraEffectContext, action *ProcAction) bool
	OnProc(ctx *AuraEffectContext, action *ProcAction)
}

type AuraHandlerCreator func() AuraEffectHandler

var auraHandlers = map[AuraType]AuraHandlerCreator{}

// RegisterAuraHandler sets the default handler of an aura type. Call from init.
func RegisterAuraHandler(t AuraType, c AuraHandlerCreator) {
	auraHandlers[t] = c
}

// HasAuraHandler reports whether a default handler exists for t.
func HasAuraHandler(t AuraType) bool {
	_, ok := auraHandlers[t]
	return ok
}

// EffectContext is passed to effect handlers when a spell is cast.
type EffectContext struct {
	Effect *Effect
	Caster Target
	Target Target
	Value  int
}

// EffectHandler executes one non-aura effect of a cast.
type EffectHandler func(ctx *EffectContext) error

var effectHandlers = map[EffectType]EffectHandler{}

// RegisterEffectHandler sets the default handler of an effect type. Call from init.
func RegisterEffectHandler(t EffectType, h EffectHandler) {
	effectHandlers[t] = h
}
