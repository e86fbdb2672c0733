package npc

import (
	"time"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/spell"
	"github.com/realmcore/server/internal/unit"
)

// Ids of the generic entries NewPool adds.
const (
	DefaultMobID uint32 = 90001
	DummyID      uint32 = 90002
	VendorID     uint32 = 90003
)

// NewPool returns a manager with a hostile mob, a training dummy and a
// friendly vendor. Tests and tools use it when no NPC table is loaded.
func NewPool(spells *spell.Handler, scaler Scaler, log *zap.Logger) *Manager {
	m := NewManager(nil, spells, scaler, log)
	m.Add(&Entry{
		ID:        DefaultMobID,
		Name:      "Default Mob",
		MinLevel:  1,
		MaxLevel:  1,
		MaxHealth: 100,
		Faction:   16,
		MinDamage: 2,
		MaxDamage: 4,
	})
	m.Add(&Entry{
		ID:        DummyID,
		Name:      "Training Dummy",
		MinLevel:  1,
		MaxLevel:  1,
		MaxHealth: 1_000_000,
		Faction:   16,
		BrainCreator: func(n *NPC) Brain {
			n.SetYieldsXpOrHonor(false)
			return &idleBrain{}
		},
	})
	m.Add(&Entry{
		ID:        VendorID,
		Name:      "Vendor",
		MinLevel:  1,
		MaxLevel:  1,
		MaxHealth: 100,
		Faction:   35,
		NPCFlags:  constants.NPCFlagGossip | constants.NPCFlagVendor,
		UnitFlags: constants.UnitFlagNotAttackable,
	})
	return m
}

// idleBrain never acts.
type idleBrain struct{}

func (*idleBrain) Update(time.Duration)      {}
func (*idleBrain) OnEnterCombat(*unit.Unit)  {}
func (*idleBrain) OnLeaveCombat()            {}
func (*idleBrain) OnDamaged(*unit.Unit, int) {}
func (*idleBrain) OnKilled(*unit.Unit)       {}
