package constants

// StatType indexes the five primary stats.
type StatType int

const (
	StatStrength StatType = iota
	StatAgility
	StatStamina
	StatIntellect
	StatSpirit

	StatCount = 5
)

var statNames = [StatCount]string{"Strength", "Agility", "Stamina", "Intellect", "Spirit"}

func (s StatType) String() string {
	if s < 0 || int(s) >= StatCount {
		return "Unknown"
	}
	return statNames[s]
}

// AllStats lists every primary stat in field order.
func AllStats() []StatType {
	return []StatType{StatStrength, StatAgility, StatStamina, StatIntellect, StatSpirit}
}

// DamageSchool is a magic school. Physical doubles as the armor slot of the
// resistance fields.
type DamageSchool int

const (
	SchoolPhysical DamageSchool = iota
	SchoolHoly
	SchoolFire
	SchoolNature
	SchoolFrost
	SchoolShadow
	SchoolArcane

	DamageSchoolCount = 7
)

var schoolNames = [DamageSchoolCount]string{"Physical", "Holy", "Fire", "Nature", "Frost", "Shadow", "Arcane"}

func (s DamageSchool) String() string {
	if s < 0 || int(s) >= DamageSchoolCount {
		return "Unknown"
	}
	return schoolNames[s]
}

// DamageSchoolMask has bit n set for DamageSchool n.
type DamageSchoolMask uint32

const (
	SchoolMaskPhysical DamageSchoolMask = 1 << iota
	SchoolMaskHoly
	SchoolMaskFire
	SchoolMaskNature
	SchoolMaskFrost
	SchoolMaskShadow
	SchoolMaskArcane

	SchoolMaskMagical = SchoolMaskHoly | SchoolMaskFire | SchoolMaskNature |
		SchoolMaskFrost | SchoolMaskShadow | SchoolMaskArcane
	SchoolMaskAll = SchoolMaskPhysical | SchoolMaskMagical
)

func (m DamageSchoolMask) HasAnyFlag(other DamageSchoolMask) bool { return m&other != 0 }

// SchoolsOf returns the schools whose bits are set in mask, in ascending order.
func SchoolsOf(mask DamageSchoolMask) []DamageSchool {
	var out []DamageSchool
	for i := 0; i < DamageSchoolCount; i++ {
		if mask&(1<<uint(i)) != 0 {
			out = append(out, DamageSchool(i))
		}
	}
	return out
}

// MaskOf is the inverse of SchoolsOf.
func MaskOf(schools ...DamageSchool) DamageSchoolMask {
	var m DamageSchoolMask
	for _, s := range schools {
		m |= 1 << uint(s)
	}
	return m
}

// PowerType selects which resource a unit spends on abilities.
type PowerType int

const (
	PowerMana PowerType = iota
	PowerRage
	PowerFocus
	PowerEnergy
	PowerHappiness
	PowerRunes
	PowerRunicPower

	PowerTypeCount = 7
)

// PowerHealth is used by spells that cost health instead of a power slot.
const PowerHealth PowerType = -2

var powerNames = [PowerTypeCount]string{"Mana", "Rage", "Focus", "Energy", "Happiness", "Runes", "RunicPower"}

func (p PowerType) String() string {
	if p == PowerHealth {
		return "Health"
	}
	if p < 0 || int(p) >= PowerTypeCount {
		return "Unknown"
	}
	return powerNames[p]
}

// StartsEmpty reports whether a full power bar is not the resting state.
func (p PowerType) StartsEmpty() bool {
	return p == PowerRage || p == PowerEnergy || p == PowerRunicPower
}

type ClassID uint8

const (
	ClassNone ClassID = iota
	ClassWarrior
	ClassPaladin
	ClassHunter
	ClassRogue
	ClassPriest
	ClassDeathKnight
	ClassShaman
	ClassMage
	ClassWarlock
	_
	ClassDruid

	ClassEnd = 12
)

var classNames = map[ClassID]string{
	ClassWarrior: "Warrior", ClassPaladin: "Paladin", ClassHunter: "Hunter",
	ClassRogue: "Rogue", ClassPriest: "Priest", ClassDeathKnight: "DeathKnight",
	ClassShaman: "Shaman", ClassMage: "Mage", ClassWarlock: "Warlock", ClassDruid: "Druid",
}

func (c ClassID) String() string {
	if n, ok := classNames[c]; ok {
		return n
	}
	return "None"
}

type RaceID uint8

const (
	RaceNone RaceID = iota
	RaceHuman
	RaceOrc
	RaceDwarf
	RaceNightElf
	RaceUndead
	RaceTauren
	RaceGnome
	RaceTroll
	RaceGoblin
	RaceBloodElf
	RaceDraenei

	RaceEnd = 12
)

type GenderType uint8

const (
	GenderMale GenderType = iota
	GenderFemale
	GenderNeutral
)

// UnitFlags is the UNIT_FIELD_FLAGS word.
type UnitFlags uint32

const (
	UnitFlagServerControlled UnitFlags = 0x00000001
	UnitFlagNotAttackable    UnitFlags = 0x00000002
	UnitFlagDisableMovement  UnitFlags = 0x00000004
	UnitFlagPlayerControlled UnitFlags = 0x00000008
	UnitFlagRename           UnitFlags = 0x00000010
	UnitFlagPreparation      UnitFlags = 0x00000020
	UnitFlagNotAttackable1   UnitFlags = 0x00000080
	UnitFlagImmuneToPlayer   UnitFlags = 0x00000100
	UnitFlagImmuneToNPC      UnitFlags = 0x00000200
	UnitFlagLooting          UnitFlags = 0x00000400
	UnitFlagPetInCombat      UnitFlags = 0x00000800
	UnitFlagPvP              UnitFlags = 0x00001000
	UnitFlagSilenced         UnitFlags = 0x00002000
	UnitFlagPacified         UnitFlags = 0x00020000
	UnitFlagStunned          UnitFlags = 0x00040000
	UnitFlagInCombat         UnitFlags = 0x00080000
	UnitFlagDisarmed         UnitFlags = 0x00200000
	UnitFlagConfused         UnitFlags = 0x00400000
	UnitFlagFleeing          UnitFlags = 0x00800000
	UnitFlagPossessed        UnitFlags = 0x01000000
	UnitFlagNotSelectable    UnitFlags = 0x02000000
	UnitFlagSkinnable        UnitFlags = 0x04000000
	UnitFlagMounted          UnitFlags = 0x08000000
	UnitFlagSheathe          UnitFlags = 0x40000000
)

func (f UnitFlags) HasAnyFlag(other UnitFlags) bool { return f&other != 0 }

type UnitFlags2 uint32

const (
	UnitFlag2FeignDeath         UnitFlags2 = 0x00000001
	UnitFlag2NoModel            UnitFlags2 = 0x00000002
	UnitFlag2Comprehend         UnitFlags2 = 0x00000008
	UnitFlag2MirrorImage        UnitFlags2 = 0x00000010
	UnitFlag2ForceMovement      UnitFlags2 = 0x00000040
	UnitFlag2DisarmOffhand      UnitFlags2 = 0x00000080
	UnitFlag2DisarmRanged       UnitFlags2 = 0x00000400
	UnitFlag2RegeneratePower    UnitFlags2 = 0x00000800
	UnitFlag2AllowEnemyInteract UnitFlags2 = 0x00004000
)

type UnitDynamicFlags uint32

const (
	DynFlagLootable              UnitDynamicFlags = 0x0001
	DynFlagTrackUnit             UnitDynamicFlags = 0x0002
	DynFlagTaggedByOther         UnitDynamicFlags = 0x0004
	DynFlagTaggedByMe            UnitDynamicFlags = 0x0008
	DynFlagSpecialInfo           UnitDynamicFlags = 0x0010
	DynFlagDead                  UnitDynamicFlags = 0x0020
	DynFlagReferAFriend          UnitDynamicFlags = 0x0040
	DynFlagTappedByAllThreatList UnitDynamicFlags = 0x0080
)

type NPCFlags uint32

const (
	NPCFlagGossip       NPCFlags = 0x00000001
	NPCFlagQuestGiver   NPCFlags = 0x00000002
	NPCFlagTrainer      NPCFlags = 0x00000010
	NPCFlagVendor       NPCFlags = 0x00000080
	NPCFlagRepairer     NPCFlags = 0x00001000
	NPCFlagFlightMaster NPCFlags = 0x00002000
	NPCFlagInnkeeper    NPCFlags = 0x00010000
	NPCFlagBanker       NPCFlags = 0x00020000
	NPCFlagAuctioneer   NPCFlags = 0x00200000
)

func (f NPCFlags) HasAnyFlag(other NPCFlags) bool { return f&other != 0 }

// AuraStateMask holds client-visible conditions that gate spells such as
// Execute or Conflagrate.
type AuraStateMask uint32

const (
	AuraStateDodgeOrBlockOrParry     AuraStateMask = 1 << 0
	AuraStateHealth20Percent         AuraStateMask = 1 << 1
	AuraStateBerserk                 AuraStateMask = 1 << 2
	AuraStateFrozen                  AuraStateMask = 1 << 3
	AuraStateJudgement               AuraStateMask = 1 << 4
	AuraStateHunterParryRogueStealth AuraStateMask = 1 << 6
	AuraStateHunterCritStrike        AuraStateMask = 1 << 9
	AuraStateHealth35Percent         AuraStateMask = 1 << 12
	AuraStateConflagrate             AuraStateMask = 1 << 13
	AuraStateSwiftmend               AuraStateMask = 1 << 14
	AuraStateDeadlyPoison            AuraStateMask = 1 << 15
	AuraStateEnraged                 AuraStateMask = 1 << 16
	AuraStateHealthAbove75Pct        AuraStateMask = 1 << 22
)

func (m AuraStateMask) HasAnyFlag(other AuraStateMask) bool { return m&other != 0 }

type StandState uint8

const (
	StandStateStand StandState = iota
	StandStateSit
	StandStateSitChair
	StandStateSleep
	StandStateSitLowChair
	StandStateSitMediumChair
	StandStateSitHighChair
	StandStateDead
	StandStateKneel
)

type StateFlag uint8

const (
	StateFlagAlwaysStand StateFlag = 0x01
	StateFlagCreep       StateFlag = 0x02
	StateFlagUntrackable StateFlag = 0x04
)

type SheathType uint8

const (
	SheathNone SheathType = iota
	SheathMelee
	SheathRanged
)

type PvPState uint8

const (
	PvPStateNone           PvPState = 0
	PvPStatePvP            PvPState = 0x01
	PvPStateFFAPvP         PvPState = 0x04
	PvPStateInPvPSanctuary PvPState = 0x08
)

type PetState uint8

const (
	PetStateCanBeRenamed   PetState = 0x01
	PetStateCanBeAbandoned PetState = 0x02
)

type ShapeshiftForm uint8

const (
	ShapeshiftNormal ShapeshiftForm = iota
	ShapeshiftCat
	ShapeshiftTreeOfLife
	ShapeshiftTravel
	ShapeshiftAqua
	ShapeshiftBear
	ShapeshiftAmbient
	ShapeshiftGhoul
	ShapeshiftDireBear
	_
	_
	_
	_
	_
	ShapeshiftCreatureBear
	ShapeshiftCreatureCat
	ShapeshiftGhostWolf
	ShapeshiftBattleStance
	ShapeshiftDefensiveStance
	ShapeshiftBerserkerStance
	_
	_
	ShapeshiftZombie
	ShapeshiftDemonForm
	_
	_
	ShapeshiftUndead
	ShapeshiftFrenzy
	ShapeshiftFlightForm
	ShapeshiftShadow
	ShapeshiftFlight
	ShapeshiftStealth
	ShapeshiftMoonkin
	ShapeshiftSpiritOfRedemption

	ShapeshiftEnd = 34
)

// ShapeshiftMask has bit (form-1) set for every form; normal form has no bit.
type ShapeshiftMask uint32

func (f ShapeshiftForm) Mask() ShapeshiftMask {
	if f == ShapeshiftNormal {
		return 0
	}
	return 1 << (uint(f) - 1)
}

func (m ShapeshiftMask) HasAnyFlag(other ShapeshiftMask) bool { return m&other != 0 }

type FactionTemplateID uint32

type EmoteType uint32

const (
	EmoteNone       EmoteType = 0
	EmoteStateDead  EmoteType = 65
	EmoteStateReady EmoteType = 333
)
