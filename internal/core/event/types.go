package event

import "github.com/realmcore/server/internal/core/ecs"

type UnitDied struct {
	Unit   ecs.EntityID
	Killer ecs.EntityID
}

type UnitResurrected struct {
	Unit ecs.EntityID
}

// PowerChanged fires when a unit's current power was set to a new value.
type PowerChanged struct {
	Unit      ecs.EntityID
	PowerType int
	Value     int
}

type HealthChanged struct {
	Unit     ecs.EntityID
	Old, New int
}

type CombatEntered struct {
	Unit   ecs.EntityID
	Target ecs.EntityID
}

type CombatLeft struct {
	Unit ecs.EntityID
}

type SpellLearned struct {
	Unit    ecs.EntityID
	SpellID uint32
}

// SummonRequested asks the world to spawn an NPC entry next to Summoner.
type SummonRequested struct {
	Summoner ecs.EntityID
	EntryID  uint32
	SpellID  uint32
}
