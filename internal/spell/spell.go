package spell

import (
	"github.com/realmcore/server/internal/constants"
)

// DefaultMeleeRange is what Init2 assigns when the max range is zero and the
// handler has no melee range set.
const DefaultMeleeRange = 5

type Durations struct {
	Min        int
	Max        int
	LevelDelta int
}

type Range struct {
	MinDist float32
	MaxDist float32
}

// SkillLine is a skill such as Shadow Magic or Mining.
type SkillLine struct {
	ID       constants.SkillID
	Name     string
	Category constants.SkillCategory
}

// SkillAbility binds a spell to the skill line that teaches it.
type SkillAbility struct {
	Skill     *SkillLine
	ClassMask uint32
}

func (a *SkillAbility) SkillInfo() string {
	if a.Skill == nil {
		return "none"
	}
	return a.Skill.Name
}

type Talent struct {
	FullName string
	Tree     string
}

// Spell is the static description of an ability. Raw fields come from the
// data tables; the block after them is derived by Initialize and Init2.
type Spell struct {
	ID          ID
	Name        string
	RankDesc    string
	Description string

	Category   uint32
	DispelType constants.DispelType
	Mechanic   constants.SpellMechanic

	Attributes    Attributes
	AttributesEx  AttributesEx
	AttributesExB AttributesExB
	AttributesExC AttributesExC
	AttributesExD AttributesExD

	ShapeshiftMask        constants.ShapeshiftMask
	ExcludeShapeshiftMask constants.ShapeshiftMask
	TargetFlags           TargetFlags

	RequiredCasterAuraState constants.AuraStateMask
	RequiredTargetAuraState constants.AuraStateMask

	// CastDelay is the cast time in milliseconds.
	CastDelay            int
	CooldownTime         int
	CategoryCooldownTime int

	InterruptFlags        InterruptFlags
	AuraInterruptFlags    AuraInterruptFlags
	ChannelInterruptFlags ChannelInterruptFlags

	ProcTriggerFlags ProcTriggerFlags
	ProcChance       int
	ProcCharges      int

	MaxLevel  int
	BaseLevel int
	Level     int
	Durations Durations

	PowerType              constants.PowerType
	PowerCost              int
	PowerCostPerLevel      int
	PowerPerSecond         int
	PowerPerSecondPerLevel int
	PowerCostPercentage    int

	Range           Range
	ProjectileSpeed float32
	MaxStackCount   int
	MaxTargets      int
	MaxTargetLevel  int

	RequiredToolIDs          []uint32
	RequiredTotemCategories  []constants.TotemCategory
	RequiredItemClass        constants.ItemClass
	RequiredItemSubClassMask constants.ItemSubClassMask

	Visual         uint32
	Visual2        uint32
	Priority       int
	SpellClassSet  uint32
	SpellClassMask [3]uint32
	SchoolMask     constants.DamageSchoolMask

	StartRecoveryCategory int
	StartRecoveryTime     int

	ClassID constants.ClassID
	Effects []*Effect

	// Relations, filled by Handler.
	Line         *Line
	NextRank     *Spell
	PreviousRank *Spell
	Ability      *SkillAbility
	Talent       *Talent

	// Derived fields.
	IsTeachSpell              bool
	LearnSpell                *Spell
	IsTriggeredSpell          bool
	DOEffect                  *Effect
	IsChanneled               bool
	ChannelAmplitude          int
	IsPassive                 bool
	IsHealSpell               bool
	IsDualWieldAbility        bool
	IsAura                    bool
	IsAreaAura                bool
	HasPeriodicAuraEffects    bool
	HasProcEffects            bool
	HasManaShield             bool
	IsOnNextStrike            bool
	IsRangedAbility           bool
	IsStrikeSpell             bool
	IsWeaponAbility           bool
	IsFinishingMove           bool
	TotemEffect               *Effect
	EquipmentSlot             constants.EquipmentSlot
	HasIndividualCooldown     bool
	TeachesApprenticeAbility  bool
	IsProfession              bool
	IsEnhancer                bool
	IsFishing                 bool
	ChainTargets              int
	IsSkinning                bool
	IsTameEffect              bool
	HasHarmfulEffects         bool
	HasBeneficialEffects      bool
	HarmType                  HarmType
	ReqDeadTarget             bool
	CostsMana                 bool
	HasTargets                bool
	CasterIsTarget            bool
	IsAreaSpell               bool
	IsDamageSpell             bool
	IsHearthStoneSpell        bool
	SkillID                   constants.SkillID
	Schools                   []constants.DamageSchool
	RequiresCasterOutOfCombat bool
	IsThrow                   bool
	HasModifierEffects        bool
	AllAffectingMasks         [3]uint32
	EffectHandlerCount        int
	IsRejuvenationOrRegrowth  bool

	// Customizable by content.
	CanCastOnPlayer          bool
	IsPreventionDebuff       bool
	CanOverrideEqualAuraRank bool

	TargetTriggerSpells []*Spell
	CasterTriggerSpells []*Spell
	CasterProcSpells    map[*Spell]struct{}
	TargetProcSpells    map[*Spell]struct{}
	CasterProcHandlers  []*ProcHandlerTemplate
	TargetProcHandlers  []*ProcHandlerTemplate

	// AdditionallyTaughtSpells are learned together with this spell.
	AdditionallyTaughtSpells []*Spell

	inited bool
}

// New returns a spell with the defaults every record starts from.
func New(id ID, name string) *Spell {
	return &Spell{
		ID:                       id,
		Name:                     name,
		RequiredItemClass:        constants.ItemClassNone,
		EquipmentSlot:            constants.EquipmentSlotEnd,
		CanCastOnPlayer:          true,
		CanOverrideEqualAuraRank: true,
	}
}

func (s *Spell) IsTame() bool { return s.AttributesExB.HasAnyFlag(AttrExBTamePet) }

func (s *Spell) PersistsThroughDeath() bool {
	return s.AttributesExC.HasAnyFlag(AttrExCPersistsThroughDeath)
}

func (s *Spell) IsFood() bool  { return s.Category == 11 }
func (s *Spell) IsDrink() bool { return s.Category == 59 }

// Inited reports whether Init2 already ran.
func (s *Spell) Inited() bool { return s.inited }

// SetAbility assigns the teaching skill ability and, when the spell has no
// class yet, infers it from a single-class mask.
func (s *Spell) SetAbility(a *SkillAbility) {
	s.Ability = a
	if a == nil || s.ClassID != constants.ClassNone {
		return
	}
	var found constants.ClassID
	n := 0
	for c := constants.ClassID(1); c < constants.ClassEnd; c++ {
		if a.ClassMask&(1<<(uint(c)-1)) != 0 {
			found = c
			n++
		}
	}
	if n == 1 {
		s.ClassID = found
	}
}

// Initialize is the first pass. It runs once all records are loaded so that
// trigger spells can be resolved through h.
func (s *Spell) Initialize(h *Handler) {
	learn := s.Effect(EffectLearnSpell)
	if learn == nil {
		learn = s.Effect(EffectLearnPetSpell)
	}
	if learn != nil && learn.TriggerSpellID != 0 {
		s.IsTeachSpell = true
	}

	for _, e := range s.Effects {
		if e.TriggerSpellID == 0 && e.AuraType != AuraPeriodicTriggerSpell {
			continue
		}
		triggered := h.Get(e.TriggerSpellID)
		if triggered == nil {
			if s.IsTeachSpell {
				s.IsTeachSpell = s.Effect(EffectLearnSpell) != nil
			}
			e.IsInvalid = true
			continue
		}
		if s.IsTeachSpell {
			s.LearnSpell = triggered
		} else {
			triggered.IsTriggeredSpell = true
		}
		e.TriggerSpell = triggered
	}

	for _, e := range s.Effects {
		if e.Type == EffectPersistentAreaAura || e.HasTarget(TargetDynamicObject) {
			s.DOEffect = e
			break
		}
	}
}

// FigureSpellFieldsByNamesOrIDs sets the flags that can only be told apart by name.
func (s *Spell) FigureSpellFieldsByNamesOrIDs() {
	if !s.IsTeachSpell && (s.Name == "Rejuvenation" || s.Name == "Regrowth") {
		s.IsRejuvenationOrRegrowth = true
	}
}

func (s *Spell) initAura() {
	s.IsAura = s.HasEffectWith(func(e *Effect) bool { return e.Type.IsAuraApplying() })
	s.IsAreaAura = s.HasEffectWith(func(e *Effect) bool { return e.Type.IsAreaAura() })
	s.HasPeriodicAuraEffects = s.HasEffectWith(func(e *Effect) bool { return e.Type.IsAuraApplying() && e.IsPeriodic })
	s.HasProcEffects = s.HasEffectWith(func(e *Effect) bool { return e.IsProc })
	s.HasManaShield = s.HasEffectWith(func(e *Effect) bool { return e.AuraType == AuraManaShield })
}

// Init2 is the second pass. It depends on every spell having completed
// Initialize and on content fixes having run. Subsequent calls are no-ops.
func (s *Spell) Init2(h *Handler) {
	if s.inited {
		return
	}
	s.inited = true

	s.IsChanneled = s.AttributesEx.HasAnyFlag(AttrExChanneled1|AttrExChanneled2) || s.ChannelInterruptFlags > 0

	s.IsPassive = (!s.IsChanneled && s.Attributes.HasAnyFlag(AttrPassive)) ||
		s.HasEffectWith(func(e *Effect) bool {
			return e.AuraType == AuraTrackCreatures || e.AuraType == AuraTrackResources || e.AuraType == AuraTrackStealthed
		})

	// Effects added by content fixes after the first pass.
	for _, e := range s.Effects {
		if e.TriggerSpellID == 0 || e.TriggerSpell != nil || e.IsInvalid || h == nil {
			continue
		}
		if e.TriggerSpell = h.Get(e.TriggerSpellID); e.TriggerSpell == nil {
			e.IsInvalid = true
		} else if !s.IsTeachSpell {
			e.TriggerSpell.IsTriggeredSpell = true
		}
	}

	for _, e := range s.Effects {
		e.Init2()
		if e.IsHealEffect {
			s.IsHealSpell = true
		}
		if e.Type == EffectNormalizedWeaponDamagePlus {
			s.IsDualWieldAbility = true
		}
	}

	s.initAura()

	if s.IsChanneled {
		if s.Durations.Min == 0 {
			s.Durations.Min = 1000
			s.Durations.Max = 1000
		}
		for _, e := range s.Effects {
			if e.IsPeriodic {
				s.ChannelAmplitude = e.Amplitude
				break
			}
		}
	}

	s.IsOnNextStrike = s.Attributes.HasAnyFlag(AttrOnNextMelee | AttrOnNextMelee2)

	s.IsRangedAbility = !s.IsTriggeredSpell &&
		(s.Attributes.HasAnyFlag(AttrRanged) || s.AttributesExC.HasAnyFlag(AttrExCShootRangedWeapon))

	s.IsStrikeSpell = s.HasEffectWith(func(e *Effect) bool { return e.IsStrikeEffect })

	s.IsWeaponAbility = s.IsRangedAbility || s.IsOnNextStrike || s.IsStrikeSpell

	s.IsFinishingMove = s.AttributesEx.HasAnyFlag(AttrExFinishingMove) ||
		s.HasEffectWith(func(e *Effect) bool { return e.PointsPerComboPoint > 0 && e.Type != EffectDummy })

	s.TotemEffect = s.FirstEffectWith(func(e *Effect) bool {
		return e.HasTarget(TargetTotemAir, TargetTotemEarth, TargetTotemFire, TargetTotemWater)
	})

	switch {
	case s.RequiredItemClass == constants.ItemClassArmor && s.RequiredItemSubClassMask == constants.ArmorSubClassMaskShield:
		s.EquipmentSlot = constants.EquipmentSlotOffHand
	case s.IsRangedAbility || s.AttributesExC.HasAnyFlag(AttrExCRequiresWand):
		s.EquipmentSlot = constants.EquipmentSlotExtraWeapon
	case s.AttributesExC.HasAnyFlag(AttrExCRequiresOffHandWeapon):
		s.EquipmentSlot = constants.EquipmentSlotOffHand
	case s.AttributesExC.HasAnyFlag(AttrExCRequiresMainHandWeapon):
		s.EquipmentSlot = constants.EquipmentSlotMainHand
	default:
		s.EquipmentSlot = constants.EquipmentSlotEnd
	}

	s.HasIndividualCooldown = s.CooldownTime > 0 ||
		(s.IsWeaponAbility && !s.IsOnNextStrike && s.EquipmentSlot != constants.EquipmentSlotEnd)

	if prof := s.Effect(EffectSkillStep); prof != nil {
		s.TeachesApprenticeAbility = prof.BasePoints == 0
	}

	s.IsProfession = !s.IsRangedAbility && s.Ability != nil && s.Ability.Skill != nil &&
		s.Ability.Skill.Category == constants.SkillCategoryProfession

	s.IsEnhancer = s.SpellClassSet != 0 && s.SpellClassMask == [3]uint32{} &&
		s.HasEffectWith(func(e *Effect) bool { return e.AffectMask != [3]uint32{} })

	s.IsFishing = s.HasEffectWith(func(e *Effect) bool { return e.HasTarget(TargetSelfFishing) })

	for _, e := range s.Effects {
		if e.ChainTargets > 0 {
			s.ChainTargets = e.ChainTargets
		}
	}

	s.IsSkinning = s.HasEffectWith(func(e *Effect) bool { return e.Type == EffectSkinning })
	s.IsTameEffect = s.HasEffectWith(func(e *Effect) bool { return e.Type == EffectTameCreature })

	if s.IsPreventionDebuff || s.Mechanic.IsNegative() {
		s.HasHarmfulEffects = true
		s.HasBeneficialEffects = false
		s.HarmType = HarmHarmful
	} else {
		s.HasHarmfulEffects = s.HasEffectWith(func(e *Effect) bool { return e.HarmType == HarmHarmful })
		s.HasBeneficialEffects = s.HasEffectWith(func(e *Effect) bool { return e.HarmType == HarmBeneficial })
		hasNeutral := s.HasEffectWith(func(e *Effect) bool { return e.HarmType == HarmNeutral })
		if s.HasHarmfulEffects != s.HasBeneficialEffects && !hasNeutral {
			if s.HasHarmfulEffects {
				s.HarmType = HarmHarmful
			} else {
				s.HarmType = HarmBeneficial
			}
		} else {
			s.HarmType = HarmNeutral
		}
	}

	s.ReqDeadTarget = s.TargetFlags.HasAnyFlag(TargetFlagCorpse | TargetFlagPvPCorpse | TargetFlagUnitCorpse)

	s.CostsMana = s.PowerCost > 0 || s.PowerCostPercentage > 0

	s.HasTargets = s.HasEffectWith(func(e *Effect) bool { return e.HasTargets })

	s.CasterIsTarget = s.HasTargets && s.HasEffectWith(func(e *Effect) bool { return e.HasTarget(TargetSelf) })

	s.IsAreaSpell = s.HasEffectWith(func(e *Effect) bool { return e.IsAreaEffect })

	s.IsDamageSpell = s.HasHarmfulEffects && !s.HasBeneficialEffects && s.HasEffectWith(func(e *Effect) bool {
		return e.Type == EffectAttack || e.Type == EffectEnvironmentalDamage ||
			e.Type == EffectInstantKill || e.Type == EffectSchoolDamage || e.IsStrikeEffect
	})

	s.IsHearthStoneSpell = s.HasEffectWith(func(e *Effect) bool { return e.HasTarget(TargetHeartstoneLocation) })

	for _, e := range s.Effects {
		if e.Type == EffectSkill {
			s.SkillID = constants.SkillID(e.MiscValue)
		}
	}

	s.Schools = constants.SchoolsOf(s.SchoolMask)
	if len(s.Schools) == 0 {
		s.Schools = []constants.DamageSchool{constants.SchoolPhysical}
	}

	s.RequiresCasterOutOfCombat = !s.HasHarmfulEffects && s.CastDelay > 0 &&
		(s.Attributes.HasAnyFlag(AttrCannotBeCastInCombat) ||
			s.AttributesEx.HasAnyFlag(AttrExRemainOutOfCombat) ||
			s.AuraInterruptFlags.HasAnyFlag(AuraInterruptOnStartAttack))
	if s.RequiresCasterOutOfCombat {
		s.InterruptFlags |= InterruptOnTakeDamage
	}

	s.IsThrow = s.AttributesExC.HasAnyFlag(AttrExCShootRangedWeapon) &&
		s.Attributes.HasAnyFlag(AttrRanged) && s.Ability != nil && s.Ability.Skill != nil &&
		s.Ability.Skill.ID == constants.SkillThrown

	s.HasModifierEffects = s.HasEffectWith(func(e *Effect) bool {
		return e.AuraType == AuraAddModifierFlat || e.AuraType == AuraAddModifierPercent
	})
	for _, e := range s.Effects {
		for i := range s.AllAffectingMasks {
			s.AllAffectingMasks[i] |= e.AffectMask[i]
		}
	}

	if s.Range.MaxDist == 0 {
		s.Range.MaxDist = DefaultMeleeRange
		if h != nil && h.meleeRange > 0 {
			s.Range.MaxDist = h.meleeRange
		}
	}

	if len(s.RequiredToolIDs) > 0 && h != nil {
		if s.RequiredToolIDs[0] > 0 || (len(s.RequiredToolIDs) > 1 && s.RequiredToolIDs[1] > 0) {
			h.requiringTools = append(h.requiringTools, s)
		}
	}
	s.RequiredToolIDs = pruneZero(s.RequiredToolIDs)
	s.RequiredTotemCategories = pruneZero(s.RequiredTotemCategories)

	s.EffectHandlerCount = 0
	for _, e := range s.Effects {
		if e.Handler() != nil {
			s.EffectHandlerCount++
		}
	}
}

func pruneZero[T comparable](vals []T) []T {
	var zero T
	out := vals[:0]
	for _, v := range vals {
		if v != zero {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
