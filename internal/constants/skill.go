package constants

type SkillID uint32

const (
	SkillNone           SkillID = 0
	SkillDefense        SkillID = 95
	SkillThrown         SkillID = 176
	SkillDualWield      SkillID = 118
	SkillFirstAid       SkillID = 129
	SkillBlacksmithing  SkillID = 164
	SkillLeatherworking SkillID = 165
	SkillAlchemy        SkillID = 171
	SkillHerbalism      SkillID = 182
	SkillCooking        SkillID = 185
	SkillMining         SkillID = 186
	SkillTailoring      SkillID = 197
	SkillEngineering    SkillID = 202
	SkillEnchanting     SkillID = 333
	SkillFishing        SkillID = 356
	SkillSkinning       SkillID = 393
	SkillJewelcrafting  SkillID = 755
	SkillRiding         SkillID = 762
	SkillInscription    SkillID = 773
	SkillShadowMagic    SkillID = 78
	SkillHolyMagic      SkillID = 56
	SkillDiscipline     SkillID = 613
)

type SkillCategory int

const (
	SkillCategoryInvalid           SkillCategory = -1
	SkillCategoryAttribute         SkillCategory = 5
	SkillCategoryWeaponProficiency SkillCategory = 6
	SkillCategoryClassSkill        SkillCategory = 7
	SkillCategoryArmorProficiency  SkillCategory = 8
	SkillCategorySecondarySkill    SkillCategory = 9
	SkillCategoryLanguage          SkillCategory = 10
	SkillCategoryProfession        SkillCategory = 11
	SkillCategoryNotDisplayed      SkillCategory = 12
)

// SkillTierApprentice is the first step of a profession skill line.
const SkillTierApprentice = 1

var skillCategoryNames = map[SkillCategory]string{
	SkillCategoryAttribute:         "Attribute",
	SkillCategoryWeaponProficiency: "WeaponProficiency",
	SkillCategoryClassSkill:        "ClassSkill",
	SkillCategoryArmorProficiency:  "ArmorProficiency",
	SkillCategorySecondarySkill:    "SecondarySkill",
	SkillCategoryLanguage:          "Language",
	SkillCategoryProfession:        "Profession",
	SkillCategoryNotDisplayed:      "NotDisplayed",
}

func (c SkillCategory) String() string {
	if n, ok := skillCategoryNames[c]; ok {
		return n
	}
	return "Invalid"
}
