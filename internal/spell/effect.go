package spell

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/realmcore/server/internal/constants"
)

// Effect is one of the (usually up to three) effects of a Spell.
type Effect struct {
	Spell *Spell
	Index int

	Type     EffectType
	AuraType AuraType

	BasePoints          int
	DiceSides           int
	PointsPerComboPoint float32
	// Amplitude is the tick interval of periodic auras in milliseconds.
	Amplitude    int
	ChainTargets int
	MiscValue    int
	MiscValueB   int
	Radius       float32

	TriggerSpellID ID
	TriggerSpell   *Spell

	ImplicitTargetA ImplicitTargetType
	ImplicitTargetB ImplicitTargetType

	// AffectMask selects the spells (by class mask) that modifier and
	// trigger auras of this effect apply to.
	AffectMask [3]uint32

	// IsInvalid marks an effect whose trigger spell does not exist.
	IsInvalid bool
	// IsProc makes the aura created by this effect react to procs.
	IsProc bool

	// AuraHandlerCreator overrides the default handler of AuraType.
	AuraHandlerCreator AuraHandlerCreator
	// EffectHandler overrides the default handler of Type.
	EffectHandler EffectHandler

	// Derived in Init2.
	HarmType       HarmType
	IsHealEffect   bool
	IsStrikeEffect bool
	IsPeriodic     bool
	IsAreaEffect   bool
	HasTargets     bool
}

func newEffect(sp *Spell, index int, t EffectType) *Effect {
	return &Effect{Spell: sp, Index: index, Type: t}
}

// HasTarget reports whether either implicit target is one of types.
func (e *Effect) HasTarget(types ...ImplicitTargetType) bool {
	for _, t := range types {
		if e.ImplicitTargetA == t || e.ImplicitTargetB == t {
			return true
		}
	}
	return false
}

// MiscSchools interprets MiscValue as a school bitmask.
func (e *Effect) MiscSchools() []constants.DamageSchool {
	return constants.SchoolsOf(constants.DamageSchoolMask(e.MiscValue))
}

// CalcValue rolls the effect value. rnd may be nil, in which case dice
// contribute their minimum.
func (e *Effect) CalcValue(comboPoints int, rnd *rand.Rand) int {
	v := e.BasePoints
	if e.DiceSides > 0 {
		if rnd != nil {
			v += 1 + rnd.Intn(e.DiceSides)
		} else {
			v++
		}
	}
	if comboPoints > 0 && e.PointsPerComboPoint > 0 {
		v += int(e.PointsPerComboPoint * float32(comboPoints))
	}
	return v
}

// AddToAffectMask adds the class masks of every rank of the given lines.
func (e *Effect) AddToAffectMask(lines ...*Line) {
	for _, l := range lines {
		if l == nil {
			continue
		}
		for _, sp := range l.Spells() {
			for i := range e.AffectMask {
				e.AffectMask[i] |= sp.SpellClassMask[i]
			}
		}
	}
}

// Affects reports whether sp is selected by this effect's mask.
func (e *Effect) Affects(sp *Spell) bool {
	if e.Spell != nil && e.Spell.SpellClassSet != 0 && sp.SpellClassSet != e.Spell.SpellClassSet {
		return false
	}
	return sp.MatchesMask(e.AffectMask)
}

// CreateAuraHandler returns a fresh handler for the aura this effect applies,
// or nil when neither a custom nor a registered handler exists.
func (e *Effect) CreateAuraHandler() AuraEffectHandler {
	if e.AuraHandlerCreator != nil {
		return e.AuraHandlerCreator()
	}
	if c, ok := auraHandlers[e.AuraType]; ok {
		return c()
	}
	return nil
}

// Handler returns the effect handler that executes this effect on cast.
func (e *Effect) Handler() EffectHandler {
	if e.EffectHandler != nil {
		return e.EffectHandler
	}
	return effectHandlers[e.Type]
}

// Init2 derives the per-effect flags the spell pass relies on.
func (e *Effect) Init2() {
	e.IsPeriodic = e.Amplitude > 0 || e.AuraType.IsPeriodic()
	e.IsHealEffect = e.Type == EffectHeal || e.Type == EffectHealMaxHealth ||
		(e.Type.IsAuraApplying() && e.AuraType == AuraPeriodicHeal)
	e.IsStrikeEffect = isStrikeEffectType(e.Type)
	e.IsAreaEffect = e.ImplicitTargetA.IsArea() || e.ImplicitTargetB.IsArea() || e.Type.IsAreaAura()
	e.HasTargets = e.ImplicitTargetA != TargetNone || e.ImplicitTargetB != TargetNone
	e.HarmType = e.deriveHarmType()
	if e.AuraType == AuraProcTriggerSpell || e.AuraType == AuraProcTriggerDamage {
		e.IsProc = true
	}
}

func isStrikeEffectType(t EffectType) bool {
	switch t {
	case EffectWeaponDamageNoSchool, EffectWeaponPercentDamage, EffectWeaponDamage, EffectNormalizedWeaponDamagePlus:
		return true
	}
	return false
}

func (e *Effect) deriveHarmType() HarmType {
	switch e.Type {
	case EffectInstantKill, EffectSchoolDamage, EffectEnvironmentalDamage, EffectPowerDrain,
		EffectHealthLeech, EffectWeaponDamageNoSchool, EffectWeaponPercentDamage, EffectWeaponDamage,
		EffectNormalizedWeaponDamagePlus, EffectAttack, EffectPowerBurn, EffectInterruptCast,
		EffectKnockBack, EffectCharge:
		return HarmHarmful
	case EffectHeal, EffectHealMaxHealth, EffectEnergize, EffectResurrect, EffectLearnSpell,
		EffectLearnPetSpell, EffectSkill, EffectSkillStep, EffectProficiency, EffectDualWield:
		return HarmBeneficial
	}

	if e.Type.IsAuraApplying() {
		switch e.AuraType {
		case AuraPeriodicDamage, AuraModConfuse, AuraModCharm, AuraModFear, AuraModStun, AuraModPacify,
			AuraModRoot, AuraModSilence, AuraModDecreaseSpeed, AuraPeriodicLeech, AuraModTaunt, AuraModPossess:
			return HarmHarmful
		case AuraPeriodicHeal, AuraPeriodicEnergize, AuraSchoolAbsorb, AuraManaShield, AuraModIncreaseSpeed,
			AuraModIncreaseHealth, AuraModIncreaseEnergy, AuraSchoolImmunity, AuraModStealth,
			AuraModInvisibility, AuraModPowerRegen, AuraTrackCreatures, AuraTrackResources, AuraTrackStealthed:
			return HarmBeneficial
		case AuraModStat, AuraModResistance, AuraModDamageDone:
			if e.BasePoints < 0 {
				return HarmHarmful
			}
			if e.BasePoints > 0 {
				return HarmBeneficial
			}
		}
		if e.ImplicitTargetA.IsEnemy() || e.ImplicitTargetB.IsEnemy() {
			return HarmHarmful
		}
		if e.ImplicitTargetA.IsFriendly() {
			return HarmBeneficial
		}
		return HarmNeutral
	}

	if e.ImplicitTargetA.IsEnemy() || e.ImplicitTargetB.IsEnemy() {
		return HarmHarmful
	}
	return HarmNeutral
}

// DumpInfo writes a human readable description of the effect.
func (e *Effect) DumpInfo(w io.Writer, indent string) {
	fmt.Fprintf(w, "%sEffect: %s\n", indent, e)
	in := indent + "\t"
	if e.ImplicitTargetA != TargetNone {
		fmt.Fprintf(w, "%sImplicitTargetA: %d\n", in, e.ImplicitTargetA)
	}
	if e.ImplicitTargetB != TargetNone {
		fmt.Fprintf(w, "%sImplicitTargetB: %d\n", in, e.ImplicitTargetB)
	}
	if e.BasePoints != 0 || e.DiceSides != 0 {
		fmt.Fprintf(w, "%sBasePoints: %d (+1d%d)\n", in, e.BasePoints, e.DiceSides)
	}
	if e.PointsPerComboPoint != 0 {
		fmt.Fprintf(w, "%sPointsPerComboPoint: %g\n", in, e.PointsPerComboPoint)
	}
	if e.Amplitude != 0 {
		fmt.Fprintf(w, "%sAmplitude: %d\n", in, e.Amplitude)
	}
	if e.ChainTargets != 0 {
		fmt.Fprintf(w, "%sChainTargets: %d\n", in, e.ChainTargets)
	}
	if e.MiscValue != 0 || e.MiscValueB != 0 {
		fmt.Fprintf(w, "%sMisc: %d / %d\n", in, e.MiscValue, e.MiscValueB)
	}
	if e.Radius != 0 {
		fmt.Fprintf(w, "%sRadius: %g\n", in, e.Radius)
	}
	if e.TriggerSpellID != 0 {
		if e.TriggerSpell != nil {
			fmt.Fprintf(w, "%sTriggers: %s\n", in, e.TriggerSpell)
		} else {
			fmt.Fprintf(w, "%sTriggers: %d (missing)\n", in, e.TriggerSpellID)
		}
	}
	if e.AffectMask != [3]uint32{} {
		fmt.Fprintf(w, "%sAffectMask: %08X%08X%08X\n", in, e.AffectMask[0], e.AffectMask[1], e.AffectMask[2])
	}
	if e.IsProc {
		fmt.Fprintf(w, "%sIsProc\n", in)
	}
	if e.IsInvalid {
		fmt.Fprintf(w, "%sInvalid\n", in)
	}
}

func (e *Effect) String() string {
	if e.Type.IsAuraApplying() {
		return fmt.Sprintf("%s (%s) #%d", e.Type, e.AuraType, e.Index)
	}
	return fmt.Sprintf("%s #%d", e.Type, e.Index)
}
