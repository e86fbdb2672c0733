package spell

type EffectType int

const (
	EffectNone                       EffectType = 0
	EffectInstantKill                EffectType = 1
	EffectSchoolDamage               EffectType = 2
	EffectDummy                      EffectType = 3
	EffectTeleportUnits              EffectType = 5
	EffectApplyAura                  EffectType = 6
	EffectEnvironmentalDamage        EffectType = 7
	EffectPowerDrain                 EffectType = 8
	EffectHealthLeech                EffectType = 9
	EffectHeal                       EffectType = 10
	EffectBind                       EffectType = 11
	EffectWeaponDamageNoSchool       EffectType = 17
	EffectResurrect                  EffectType = 18
	EffectAddExtraAttacks            EffectType = 19
	EffectCreateItem                 EffectType = 24
	EffectWeapon                     EffectType = 25
	EffectPersistentAreaAura         EffectType = 27
	EffectSummon                     EffectType = 28
	EffectLeap                       EffectType = 29
	EffectEnergize                   EffectType = 30
	EffectWeaponPercentDamage        EffectType = 31
	EffectOpenLock                   EffectType = 33
	EffectApplyAreaAuraParty         EffectType = 35
	EffectLearnSpell                 EffectType = 36
	EffectDispel                     EffectType = 38
	EffectDualWield                  EffectType = 40
	EffectSkillStep                  EffectType = 44
	EffectTradeSkill                 EffectType = 47
	EffectStealth                    EffectType = 48
	EffectTameCreature               EffectType = 55
	EffectSummonPet                  EffectType = 56
	EffectLearnPetSpell              EffectType = 57
	EffectWeaponDamage               EffectType = 58
	EffectProficiency                EffectType = 60
	EffectPowerBurn                  EffectType = 62
	EffectThreat                     EffectType = 63
	EffectTriggerSpell               EffectType = 64
	EffectApplyAreaAuraRaid          EffectType = 65
	EffectHealMaxHealth              EffectType = 67
	EffectInterruptCast              EffectType = 68
	EffectScriptEffect               EffectType = 77
	EffectAttack                     EffectType = 78
	EffectAddComboPoints             EffectType = 80
	EffectSkinning                   EffectType = 95
	EffectCharge                     EffectType = 96
	EffectKnockBack                  EffectType = 98
	EffectDispelMechanic             EffectType = 108
	EffectSkill                      EffectType = 118
	EffectApplyAreaAuraPet           EffectType = 119
	EffectNormalizedWeaponDamagePlus EffectType = 121
	EffectApplyAreaAuraFriend        EffectType = 128
	EffectApplyAreaAuraEnemy         EffectType = 129
	EffectApplyAreaAuraOwner         EffectType = 143

	EffectTypeEnd EffectType = 165
)

var effectTypeNames = map[EffectType]string{
	EffectNone: "None", EffectInstantKill: "InstantKill", EffectSchoolDamage: "SchoolDamage",
	EffectDummy: "Dummy", EffectTeleportUnits: "TeleportUnits", EffectApplyAura: "ApplyAura",
	EffectEnvironmentalDamage: "EnvironmentalDamage", EffectPowerDrain: "PowerDrain",
	EffectHealthLeech: "HealthLeech", EffectHeal: "Heal", EffectBind: "Bind",
	EffectWeaponDamageNoSchool: "WeaponDamageNoSchool", EffectResurrect: "Resurrect",
	EffectAddExtraAttacks: "AddExtraAttacks", EffectCreateItem: "CreateItem", EffectWeapon: "Weapon",
	EffectPersistentAreaAura: "PersistentAreaAura", EffectSummon: "Summon", EffectLeap: "Leap",
	EffectEnergize: "Energize", EffectWeaponPercentDamage: "WeaponPercentDamage",
	EffectOpenLock: "OpenLock", EffectApplyAreaAuraParty: "ApplyAreaAuraParty",
	EffectLearnSpell: "LearnSpell", EffectDispel: "Dispel", EffectDualWield: "DualWield",
	EffectSkillStep: "SkillStep", EffectTradeSkill: "TradeSkill", EffectStealth: "Stealth",
	EffectTameCreature: "TameCreature", EffectSummonPet: "SummonPet", EffectLearnPetSpell: "LearnPetSpell",
	EffectWeaponDamage: "WeaponDamage", EffectProficiency: "Proficiency", EffectPowerBurn: "PowerBurn",
	EffectThreat: "Threat", EffectTriggerSpell: "TriggerSpell", EffectApplyAreaAuraRaid: "ApplyAreaAuraRaid",
	EffectHealMaxHealth: "HealMaxHealth", EffectInterruptCast: "InterruptCast",
	EffectScriptEffect: "ScriptEffect", EffectAttack: "Attack", EffectAddComboPoints: "AddComboPoints",
	EffectSkinning: "Skinning", EffectCharge: "Charge", EffectKnockBack: "KnockBack",
	EffectDispelMechanic: "DispelMechanic", EffectSkill: "Skill", EffectApplyAreaAuraPet: "ApplyAreaAuraPet",
	EffectNormalizedWeaponDamagePlus: "NormalizedWeaponDamagePlus",
	EffectApplyAreaAuraFriend: "ApplyAreaAuraFriend", EffectApplyAreaAuraEnemy: "ApplyAreaAuraEnemy",
	EffectApplyAreaAuraOwner: "ApplyAreaAuraOwner",
}

func (t EffectType) String() string {
	if n, ok := effectTypeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// IsAuraApplying reports whether the effect type creates an aura.
func (t EffectType) IsAuraApplying() bool {
	switch t {
	case EffectApplyAura, EffectPersistentAreaAura, EffectApplyAreaAuraParty, EffectApplyAreaAuraRaid,
		EffectApplyAreaAuraPet, EffectApplyAreaAuraFriend, EffectApplyAreaAuraEnemy, EffectApplyAreaAuraOwner:
		return true
	}
	return false
}

// IsAreaAura reports whether the aura is spread around its holder.
func (t EffectType) IsAreaAura() bool {
	return t.IsAuraApplying() && t != EffectApplyAura
}

type AuraType int

const (
	AuraNone                   AuraType = 0
	AuraBindSight              AuraType = 1
	AuraModPossess             AuraType = 2
	AuraPeriodicDamage         AuraType = 3
	AuraDummy                  AuraType = 4
	AuraModConfuse             AuraType = 5
	AuraModCharm               AuraType = 6
	AuraModFear                AuraType = 7
	AuraPeriodicHeal           AuraType = 8
	AuraModAttackSpeed         AuraType = 9
	AuraModThreat              AuraType = 10
	AuraModTaunt               AuraType = 11
	AuraModStun                AuraType = 12
	AuraModDamageDone          AuraType = 13
	AuraModStealth             AuraType = 16
	AuraModInvisibility        AuraType = 18
	AuraModResistance          AuraType = 22
	AuraPeriodicTriggerSpell   AuraType = 23
	AuraPeriodicEnergize       AuraType = 24
	AuraModPacify              AuraType = 25
	AuraModRoot                AuraType = 26
	AuraModSilence             AuraType = 27
	AuraModStat                AuraType = 29
	AuraModSkill               AuraType = 30
	AuraModIncreaseSpeed       AuraType = 31
	AuraModDecreaseSpeed       AuraType = 33
	AuraModIncreaseHealth      AuraType = 34
	AuraModIncreaseEnergy      AuraType = 35
	AuraModShapeshift          AuraType = 36
	AuraSchoolImmunity         AuraType = 39
	AuraProcTriggerSpell       AuraType = 42
	AuraProcTriggerDamage      AuraType = 43
	AuraTrackCreatures         AuraType = 44
	AuraTrackResources         AuraType = 45
	AuraPeriodicLeech          AuraType = 53
	AuraSchoolAbsorb           AuraType = 69
	AuraModPowerRegen          AuraType = 85
	AuraManaShield             AuraType = 97
	AuraAddModifierFlat        AuraType = 107
	AuraAddModifierPercent     AuraType = 108
	AuraAddTargetTrigger       AuraType = 109
	AuraModMechanicDurationMod AuraType = 117
	AuraTrackStealthed         AuraType = 151
	AuraNoPvPCredit            AuraType = 197
	AuraModManaRegenInterrupt  AuraType = 134
	AuraModHealingPct          AuraType = 118

	AuraTypeEnd AuraType = 317
)

var auraTypeNames = map[AuraType]string{
	AuraNone: "None", AuraBindSight: "BindSight", AuraModPossess: "ModPossess",
	AuraPeriodicDamage: "PeriodicDamage", AuraDummy: "Dummy", AuraModConfuse: "ModConfuse",
	AuraModCharm: "ModCharm", AuraModFear: "ModFear", AuraPeriodicHeal: "PeriodicHeal",
	AuraModAttackSpeed: "ModAttackSpeed", AuraModThreat: "ModThreat", AuraModTaunt: "ModTaunt",
	AuraModStun: "ModStun", AuraModDamageDone: "ModDamageDone", AuraModStealth: "ModStealth",
	AuraModInvisibility: "ModInvisibility", AuraModResistance: "ModResistance",
	AuraPeriodicTriggerSpell: "PeriodicTriggerSpell", AuraPeriodicEnergize: "PeriodicEnergize",
	AuraModPacify: "ModPacify", AuraModRoot: "ModRoot", AuraModSilence: "ModSilence",
	AuraModStat: "ModStat", AuraModSkill: "ModSkill", AuraModIncreaseSpeed: "ModIncreaseSpeed",
	AuraModDecreaseSpeed: "ModDecreaseSpeed", AuraModIncreaseHealth: "ModIncreaseHealth",
	AuraModIncreaseEnergy: "ModIncreaseEnergy", AuraModShapeshift: "ModShapeshift",
	AuraSchoolImmunity: "SchoolImmunity", AuraProcTriggerSpell: "ProcTriggerSpell",
	AuraProcTriggerDamage: "ProcTriggerDamage", AuraTrackCreatures: "TrackCreatures",
	AuraTrackResources: "TrackResources", AuraPeriodicLeech: "PeriodicLeech",
	AuraSchoolAbsorb: "SchoolAbsorb", AuraModPowerRegen: "ModPowerRegen", AuraManaShield: "ManaShield",
	AuraAddModifierFlat: "AddModifierFlat", AuraAddModifierPercent: "AddModifierPercent",
	AuraAddTargetTrigger: "AddTargetTrigger", AuraModMechanicDurationMod: "ModMechanicDurationMod",
	AuraTrackStealthed: "TrackStealthed", AuraNoPvPCredit: "NoPvPCredit",
	AuraModManaRegenInterrupt: "ModManaRegenInterrupt", AuraModHealingPct: "ModHealingPct",
}

func (t AuraType) String() string {
	if n, ok := auraTypeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// IsPeriodic reports whether auras of this type tick on an amplitude.
func (t AuraType) IsPeriodic() bool {
	switch t {
	case AuraPeriodicDamage, AuraPeriodicHeal, AuraPeriodicTriggerSpell, AuraPeriodicEnergize, AuraPeriodicLeech:
		return true
	}
	return false
}

type ImplicitTargetType int

const (
	TargetNone                    ImplicitTargetType = 0
	TargetSelf                    ImplicitTargetType = 1
	TargetRandomEnemyNearby       ImplicitTargetType = 2
	TargetPartyMember             ImplicitTargetType = 3
	TargetPet                     ImplicitTargetType = 5
	TargetSingleEnemy             ImplicitTargetType = 6
	TargetScriptedTarget          ImplicitTargetType = 7
	TargetAllAroundLocation       ImplicitTargetType = 8
	TargetHeartstoneLocation      ImplicitTargetType = 9
	TargetAllEnemiesInArea        ImplicitTargetType = 15
	TargetAllEnemiesInAreaInstant ImplicitTargetType = 16
	TargetTeleportLocation        ImplicitTargetType = 17
	TargetLocationToSummon        ImplicitTargetType = 18
	TargetAllPartyAroundCaster    ImplicitTargetType = 20
	TargetSingleFriend            ImplicitTargetType = 21
	TargetAllAroundCaster         ImplicitTargetType = 22
	TargetGameObject              ImplicitTargetType = 23
	TargetInFrontOfCaster         ImplicitTargetType = 24
	TargetDuel                    ImplicitTargetType = 25
	TargetAllEnemiesAroundCaster  ImplicitTargetType = 30
	TargetAllFriendlyInArea       ImplicitTargetType = 31
	TargetAllParty                ImplicitTargetType = 33
	TargetTotemEarth              ImplicitTargetType = 41
	TargetTotemWater              ImplicitTargetType = 42
	TargetTotemAir                ImplicitTargetType = 43
	TargetTotemFire               ImplicitTargetType = 44
	TargetChain                   ImplicitTargetType = 45
	TargetDynamicObject           ImplicitTargetType = 47
	TargetSelfFishing             ImplicitTargetType = 50
	TargetMinion                  ImplicitTargetType = 52
	TargetAreaEffectSelected      ImplicitTargetType = 53
	TargetAllRaidMembers          ImplicitTargetType = 56
	TargetConeInFrontOfCaster     ImplicitTargetType = 104
)

// IsArea reports whether the target type selects several units around a point.
func (t ImplicitTargetType) IsArea() bool {
	switch t {
	case TargetAllAroundLocation, TargetAllEnemiesInArea, TargetAllEnemiesInAreaInstant,
		TargetAllPartyAroundCaster, TargetAllAroundCaster, TargetAllEnemiesAroundCaster,
		TargetAllFriendlyInArea, TargetAllParty, TargetAreaEffectSelected, TargetAllRaidMembers,
		TargetConeInFrontOfCaster, TargetInFrontOfCaster:
		return true
	}
	return false
}

// IsEnemy reports whether the target type only selects hostile units.
func (t ImplicitTargetType) IsEnemy() bool {
	switch t {
	case TargetRandomEnemyNearby, TargetSingleEnemy, TargetAllEnemiesInArea,
		TargetAllEnemiesInAreaInstant, TargetAllEnemiesAroundCaster, TargetChain,
		TargetConeInFrontOfCaster, TargetInFrontOfCaster, TargetDuel:
		return true
	}
	return false
}

// IsFriendly reports whether the target type only selects the caster or its allies.
func (t ImplicitTargetType) IsFriendly() bool {
	switch t {
	case TargetSelf, TargetPartyMember, TargetPet, TargetAllPartyAroundCaster, TargetSingleFriend,
		TargetAllFriendlyInArea, TargetAllParty, TargetMinion, TargetAllRaidMembers:
		return true
	}
	return false
}

var (
	effectTypesByName = invert(effectTypeNames)
	auraTypesByName   = invert(auraTypeNames)
)

func invert[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// ParseEffectType resolves an effect type by name. The empty name is None.
func ParseEffectType(name string) (EffectType, bool) {
	if name == "" {
		return EffectNone, true
	}
	t, ok := effectTypesByName[name]
	return t, ok
}

// ParseAuraType resolves an aura type by name. The empty name is None.
func ParseAuraType(name string) (AuraType, bool) {
	if name == "" {
		return AuraNone, true
	}
	t, ok := auraTypesByName[name]
	return t, ok
}
