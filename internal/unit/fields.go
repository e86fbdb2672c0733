package unit

import "github.com/realmcore/server/internal/update"

// Unit field slots, following the object fields.
const (
	FieldCharm                 update.Field = 0x0006 // 2 slots
	FieldSummon                update.Field = 0x0008 // 2 slots
	FieldCritter               update.Field = 0x000A // 2 slots
	FieldCharmedBy             update.Field = 0x000C // 2 slots
	FieldSummonedBy            update.Field = 0x000E // 2 slots
	FieldCreatedBy             update.Field = 0x0010 // 2 slots
	FieldTarget                update.Field = 0x0012 // 2 slots
	FieldChannelObject         update.Field = 0x0014 // 2 slots
	FieldChannelSpell          update.Field = 0x0016
	FieldBytes0                update.Field = 0x0017
	FieldHealth                update.Field = 0x0018
	FieldPower1                update.Field = 0x0019 // 7 slots
	FieldMaxHealth             update.Field = 0x0020
	FieldMaxPower1             update.Field = 0x0021 // 7 slots
	FieldPowerRegenFlatMod     update.Field = 0x0028 // 7 slots
	FieldPowerRegenInterrupted update.Field = 0x002F // 7 slots
	FieldLevel                 update.Field = 0x0036
	FieldFactionTemplate       update.Field = 0x0037
	FieldVirtualItemSlotID     update.Field = 0x0038 // 3 slots
	FieldFlags                 update.Field = 0x003B
	FieldFlags2                update.Field = 0x003C
	FieldAuraState             update.Field = 0x003D
	FieldBaseAttackTime        update.Field = 0x003E // 2 slots
	FieldRangedAttackTime      update.Field = 0x0040
	FieldBoundingRadius        update.Field = 0x0041
	FieldCombatReach           update.Field = 0x0042
	FieldDisplayID             update.Field = 0x0043
	FieldNativeDisplayID       update.Field = 0x0044
	FieldMountDisplayID        update.Field = 0x0045
	FieldMinDamage             update.Field = 0x0046
	FieldMaxDamage             update.Field = 0x0047
	FieldMinOffhandDamage      update.Field = 0x0048
	FieldMaxOffhandDamage      update.Field = 0x0049
	FieldBytes1                update.Field = 0x004A
	FieldPetNumber             update.Field = 0x004B
	FieldPetNameTimestamp      update.Field = 0x004C
	FieldPetExperience         update.Field = 0x004D
	FieldPetNextLevelExp       update.Field = 0x004E
	FieldDynamicFlags          update.Field = 0x004F
	FieldModCastSpeed          update.Field = 0x0050
	FieldCreatedBySpell        update.Field = 0x0051
	FieldNPCFlags              update.Field = 0x0052
	FieldNPCEmoteState         update.Field = 0x0053
	FieldStat0                 update.Field = 0x0054 // 5 slots
	FieldPosStat0              update.Field = 0x0059 // 5 slots
	FieldNegStat0              update.Field = 0x005E // 5 slots
	FieldResistances           update.Field = 0x0063 // 7 slots
	FieldResistBuffModsPos     update.Field = 0x006A // 7 slots
	FieldResistBuffModsNeg     update.Field = 0x0071 // 7 slots
	FieldBaseMana              update.Field = 0x0078
	FieldBaseHealth            update.Field = 0x0079
	FieldBytes2                update.Field = 0x007A
	FieldAttackPower           update.Field = 0x007B
	FieldAttackPowerMods       update.Field = 0x007C
	FieldAttackPowerMultiplier update.Field = 0x007D
	FieldRangedAttackPower     update.Field = 0x007E
	FieldRangedAttackPowerMods update.Field = 0x007F
	FieldRangedAPMultiplier    update.Field = 0x0080
	FieldMinRangedDamage       update.Field = 0x0081
	FieldMaxRangedDamage       update.Field = 0x0082
	FieldPowerCostModifier     update.Field = 0x0083 // 7 slots
	FieldPowerCostMultiplier   update.Field = 0x008A // 7 slots
	FieldMaxHealthModifier     update.Field = 0x0091
	FieldHoverHeight           update.Field = 0x0092
	FieldPadding               update.Field = 0x0093

	FieldEnd update.Field = 0x0094
)
