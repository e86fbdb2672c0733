package spell

// ID identifies a spell record.
type ID uint32

// LineID names a spell line: all ranks of one ability.
type LineID string

type Attributes uint32

const (
	AttrNone                     Attributes = 0
	AttrRanged                   Attributes = 0x00000002
	AttrOnNextMelee              Attributes = 0x00000004
	AttrAbility                  Attributes = 0x00000010
	AttrTradeSpell               Attributes = 0x00000020
	AttrPassive                  Attributes = 0x00000040
	AttrHideFromClient           Attributes = 0x00000080
	AttrOnNextMelee2             Attributes = 0x00000400
	AttrDaytimeOnly              Attributes = 0x00001000
	AttrIndoorsOnly              Attributes = 0x00008000
	AttrOutdoorsOnly             Attributes = 0x00010000
	AttrCastableWhileDead        Attributes = 0x00800000
	AttrCastableWhileMounted     Attributes = 0x01000000
	AttrCannotBeCastInCombat     Attributes = 0x10000000
	AttrUnaffectedByInvulnerable Attributes = 0x20000000
)

func (a Attributes) HasAnyFlag(f Attributes) bool { return a&f != 0 }

type AttributesEx uint32

const (
	AttrExNone              AttributesEx = 0
	AttrExDismissPet        AttributesEx = 0x00000001
	AttrExDrainAllPower     AttributesEx = 0x00000002
	AttrExChanneled1        AttributesEx = 0x00000004
	AttrExNotBreakStealth   AttributesEx = 0x00000020
	AttrExChanneled2        AttributesEx = 0x00000040
	AttrExNegative          AttributesEx = 0x00000080
	AttrExRemainOutOfCombat AttributesEx = 0x00000400
	AttrExFinishingMove     AttributesEx = 0x00100000
)

func (a AttributesEx) HasAnyFlag(f AttributesEx) bool { return a&f != 0 }

type AttributesExB uint32

const (
	AttrExBNone                 AttributesExB = 0
	AttrExBIgnoreLineOfSight    AttributesExB = 0x00000004
	AttrExBAutoRepeat           AttributesExB = 0x00000020
	AttrExBTamePet              AttributesExB = 0x00000800
	AttrExBRequiresBehindTarget AttributesExB = 0x00100000
)

func (a AttributesExB) HasAnyFlag(f AttributesExB) bool { return a&f != 0 }

type AttributesExC uint32

const (
	AttrExCNone                   AttributesExC = 0
	AttrExCRequiresMainHandWeapon AttributesExC = 0x00000400
	AttrExCShootRangedWeapon      AttributesExC = 0x00040000
	AttrExCPersistsThroughDeath   AttributesExC = 0x00100000
	AttrExCRequiresWand           AttributesExC = 0x00400000
	AttrExCRequiresOffHandWeapon  AttributesExC = 0x01000000
)

func (a AttributesExC) HasAnyFlag(f AttributesExC) bool { return a&f != 0 }

type AttributesExD uint32

const (
	AttrExDNone         AttributesExD = 0
	AttrExDNotStealable AttributesExD = 0x00000040
	AttrExDTriggered    AttributesExD = 0x00000080
)

type TargetFlags uint32

const (
	TargetFlagSelf       TargetFlags = 0
	TargetFlagUnit       TargetFlags = 0x00000002
	TargetFlagItem       TargetFlags = 0x00000010
	TargetFlagSourceLoc  TargetFlags = 0x00000020
	TargetFlagDestLoc    TargetFlags = 0x00000040
	TargetFlagUnitEnemy  TargetFlags = 0x00000080
	TargetFlagUnitAlly   TargetFlags = 0x00000100
	TargetFlagPvPCorpse  TargetFlags = 0x00000200
	TargetFlagUnitCorpse TargetFlags = 0x00000400
	TargetFlagGameObject TargetFlags = 0x00000800
	TargetFlagTradeItem  TargetFlags = 0x00001000
	TargetFlagString     TargetFlags = 0x00002000
	TargetFlagOpenLock   TargetFlags = 0x00004000
	TargetFlagCorpse     TargetFlags = 0x00008000
)

func (t TargetFlags) HasAnyFlag(f TargetFlags) bool { return t&f != 0 }

type InterruptFlags uint32

const (
	InterruptNone         InterruptFlags = 0
	InterruptOnMovement   InterruptFlags = 0x01
	InterruptOnPushback   InterruptFlags = 0x02
	InterruptOnInterrupt  InterruptFlags = 0x04
	InterruptOnAutoAttack InterruptFlags = 0x08
	InterruptOnTakeDamage InterruptFlags = 0x10
)

type AuraInterruptFlags uint32

const (
	AuraInterruptNone           AuraInterruptFlags = 0
	AuraInterruptOnHostileSpell AuraInterruptFlags = 0x00000001
	AuraInterruptOnDamage       AuraInterruptFlags = 0x00000002
	AuraInterruptOnMovement     AuraInterruptFlags = 0x00000008
	AuraInterruptOnTurn         AuraInterruptFlags = 0x00000010
	AuraInterruptOnEnterCombat  AuraInterruptFlags = 0x00000020
	AuraInterruptOnStartAttack  AuraInterruptFlags = 0x00001000
	AuraInterruptOnCast         AuraInterruptFlags = 0x00008000
	AuraInterruptOnStandUp      AuraInterruptFlags = 0x00040000
)

func (a AuraInterruptFlags) HasAnyFlag(f AuraInterruptFlags) bool { return a&f != 0 }

type ChannelInterruptFlags uint32

// ProcTriggerFlags select which actions may fire a proc.
type ProcTriggerFlags uint32

const (
	ProcNone                         ProcTriggerFlags = 0
	ProcKilled                       ProcTriggerFlags = 0x00000001
	ProcGainExperience               ProcTriggerFlags = 0x00000002
	ProcDoneMeleeAutoAttack          ProcTriggerFlags = 0x00000004
	ProcReceivedMeleeAutoAttack      ProcTriggerFlags = 0x00000008
	ProcDoneMeleeSpell               ProcTriggerFlags = 0x00000010
	ProcReceivedMeleeSpell           ProcTriggerFlags = 0x00000020
	ProcDoneRangedAutoAttack         ProcTriggerFlags = 0x00000040
	ProcReceivedRangedAutoAttack     ProcTriggerFlags = 0x00000080
	ProcDoneRangedSpell              ProcTriggerFlags = 0x00000100
	ProcReceivedRangedSpell          ProcTriggerFlags = 0x00000200
	ProcDoneBeneficialSpell          ProcTriggerFlags = 0x00000400
	ProcReceivedBeneficialSpell      ProcTriggerFlags = 0x00000800
	ProcDoneHarmfulSpell             ProcTriggerFlags = 0x00001000
	ProcReceivedHarmfulSpell         ProcTriggerFlags = 0x00002000
	ProcDoneBeneficialMagicSpell     ProcTriggerFlags = 0x00004000
	ProcReceivedBeneficialMagicSpell ProcTriggerFlags = 0x00008000
	ProcDoneHarmfulMagicSpell        ProcTriggerFlags = 0x00010000
	ProcReceivedHarmfulMagicSpell    ProcTriggerFlags = 0x00020000
	ProcDonePeriodic                 ProcTriggerFlags = 0x00040000
	ProcReceivedPeriodic             ProcTriggerFlags = 0x00080000
	ProcReceivedAnyDamage            ProcTriggerFlags = 0x00100000
	ProcTrapTriggered                ProcTriggerFlags = 0x00200000
	ProcDoneMainHandAttack           ProcTriggerFlags = 0x00400000
	ProcDoneOffHandAttack            ProcTriggerFlags = 0x00800000
	ProcDeath                        ProcTriggerFlags = 0x01000000

	// ProcSpellCast matches any spell the owner casts.
	ProcSpellCast = ProcDoneBeneficialSpell | ProcDoneHarmfulSpell |
		ProcDoneBeneficialMagicSpell | ProcDoneHarmfulMagicSpell
)

func (p ProcTriggerFlags) HasAnyFlag(f ProcTriggerFlags) bool { return p&f != 0 }

// HarmType is the derived disposition of a spell or effect.
type HarmType int

const (
	HarmNeutral HarmType = iota
	HarmBeneficial
	HarmHarmful
)

func (h HarmType) String() string {
	switch h {
	case HarmBeneficial:
		return "Beneficial"
	case HarmHarmful:
		return "Harmful"
	}
	return "Neutral"
}

// ModifierType selects which spell value a flat or percent modifier changes.
type ModifierType int

const (
	ModDamage ModifierType = iota
	ModDuration
	ModThreat
	ModEffectValue1
	ModCharges
	ModRange
	ModRadius
	ModCritChance
	ModAllEffectValues
	ModCastTime
	ModCooldownTime
	ModEffectValue2
	ModPowerCost
	ModChainTargets        ModifierType = 17
	ModProcChance          ModifierType = 18
	ModPeriodicEffectValue ModifierType = 22
)
