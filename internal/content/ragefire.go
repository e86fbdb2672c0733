package content

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/instance"
	"github.com/realmcore/server/internal/npc"
	"github.com/realmcore/server/internal/spell"
	"github.com/realmcore/server/internal/unit"
)

const (
	RagefireChasmID         = "ragefire_chasm"
	RagefireChasmMap uint32 = 389
)

// Ragefire Chasm creatures.
const (
	NPCOggleflint           uint32 = 11517
	NPCTaragaman            uint32 = 11520
	NPCJergosh              uint32 = 11518
	NPCBazzalan             uint32 = 11519
	NPCEarthborer           uint32 = 11320
	NPCRagefireShaman       uint32 = 11319
	NPCRagefireTrogg        uint32 = 11318
	NPCSearingBladeCultist  uint32 = 11322
	NPCSearingBladeEnforcer uint32 = 11323
	NPCSearingBladeWarlock  uint32 = 11324
	NPCVoidwalkerMinion     uint32 = 8996
)

// Spells cast by Ragefire Chasm creatures.
const (
	SpellCleave           spell.ID = 15496
	SpellUppercut         spell.ID = 10966
	SpellFireNova         spell.ID = 11969
	SpellCurseOfWeakness  spell.ID = 18267
	SpellImmolate         spell.ID = 11962
	SpellPoison           spell.ID = 744
	SpellSinisterStrike   spell.ID = 14873
	SpellEarthborerAcid   spell.ID = 18070
	SpellHealingWave      spell.ID = 11986
	SpellLightningBolt    spell.ID = 9532
	SpellStrike           spell.ID = 11976
	SpellCurseOfAgony     spell.ID = 18266
	SpellShieldSlam       spell.ID = 8242
	SpellShadowBolt       spell.ID = 20791
	SpellSummonVoidwalker spell.ID = 12746
)

// npcSpell is a spell of an entry with its cooldown. A non-zero max makes
// the cooldown random between min and max.
type npcSpell struct {
	id       spell.ID
	min, max time.Duration
}

func fixed(id spell.ID, ms int) npcSpell { return npcSpell{id: id, min: ms2d(ms)} }

func random(id spell.ID, minMs, maxMs int) npcSpell {
	return npcSpell{id: id, min: ms2d(minMs), max: ms2d(maxMs)}
}

func ms2d(ms int) time.Duration { return time.Duration(ms) * time.Millisecond }

var ragefireSpells = map[uint32][]npcSpell{
	NPCOggleflint: {fixed(SpellCleave, 5000)},
	NPCTaragaman:  {fixed(SpellUppercut, 5000), fixed(SpellFireNova, 10000)},
	NPCJergosh:    {fixed(SpellCurseOfWeakness, 12000), fixed(SpellImmolate, 5000)},
	NPCBazzalan:   {fixed(SpellPoison, 10000), fixed(SpellSinisterStrike, 12000)},

	NPCEarthborer:           {random(SpellEarthborerAcid, 8000, 12000)},
	NPCRagefireShaman:       {random(SpellHealingWave, 8000, 12000), random(SpellLightningBolt, 8000, 12000)},
	NPCRagefireTrogg:        {random(SpellStrike, 8000, 12000)},
	NPCSearingBladeCultist:  {random(SpellCurseOfAgony, 8000, 12000)},
	NPCSearingBladeEnforcer: {random(SpellShieldSlam, 5000, 12000)},
	NPCSearingBladeWarlock:  {random(SpellShadowBolt, 5000, 10000)},
}

// InitRagefireChasm gives the creatures of the dungeon their spells and
// cooldowns. Cooldowns are kept per entry so other users of the same spells
// are not affected.
func InitRagefireChasm(_ *instance.Dungeon, npcs *npc.Manager) error {
	var errs []error
	for id, spells := range ragefireSpells {
		e, err := npcs.MustEntry(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, s := range spells {
			if err := e.AddSpell(s.id); err != nil {
				errs = append(errs, err)
				continue
			}
			if s.max > 0 {
				e.SetCooldownRange(s.id, s.min, s.max)
			} else {
				e.SetCooldown(s.id, s.min)
			}
		}
	}

	warlock, err := npcs.MustEntry(NPCSearingBladeWarlock)
	if err != nil {
		return errors.Join(append(errs, err)...)
	}
	summon := npcs.Spells().Get(SpellSummonVoidwalker)
	if summon == nil {
		errs = append(errs, fmt.Errorf("warlock summon %d: %w", SpellSummonVoidwalker, spell.ErrUnknownSpell))
	}
	warlock.BrainCreator = func(n *npc.NPC) npc.Brain {
		return &SearingBladeWarlockBrain{MobBrain: &npc.MobBrain{NPC: n}, summon: summon}
	}
	return errors.Join(errs...)
}

// SearingBladeWarlockBrain summons a Voidwalker the first time the warlock
// enters combat.
type SearingBladeWarlockBrain struct {
	*npc.MobBrain
	summon   *spell.Spell
	summoned bool
}

func (b *SearingBladeWarlockBrain) OnEnterCombat(attacker *unit.Unit) {
	b.MobBrain.OnEnterCombat(attacker)
	if b.summoned || b.summon == nil {
		return
	}
	b.summoned = true
	if err := b.NPC.TriggerSelf(b.summon); err != nil {
		b.NPC.Context().Logger().Warn("warlock summon failed",
			zap.Uint32("npc", b.NPC.Entry.ID), zap.Error(err))
	}
}
