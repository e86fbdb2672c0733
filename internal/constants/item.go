package constants

type ItemClass int

const (
	ItemClassNone       ItemClass = -1
	ItemClassConsumable ItemClass = 0
	ItemClassContainer  ItemClass = 1
	ItemClassWeapon     ItemClass = 2
	ItemClassGem        ItemClass = 3
	ItemClassArmor      ItemClass = 4
	ItemClassReagent    ItemClass = 5
	ItemClassProjectile ItemClass = 6
	ItemClassTradeGoods ItemClass = 7
	ItemClassRecipe     ItemClass = 9
	ItemClassQuiver     ItemClass = 11
	ItemClassQuest      ItemClass = 12
	ItemClassKey        ItemClass = 13
	ItemClassMisc       ItemClass = 15
	ItemClassGlyph      ItemClass = 16
)

// ItemSubClassMask is interpreted relative to an ItemClass. For weapons bit n
// is weapon subclass n, for armor bit n is armor subclass n.
type ItemSubClassMask uint32

const (
	WeaponSubClassMaskAxe          ItemSubClassMask = 1 << 0
	WeaponSubClassMaskTwoHandAxe   ItemSubClassMask = 1 << 1
	WeaponSubClassMaskBow          ItemSubClassMask = 1 << 2
	WeaponSubClassMaskGun          ItemSubClassMask = 1 << 3
	WeaponSubClassMaskMace         ItemSubClassMask = 1 << 4
	WeaponSubClassMaskTwoHandMace  ItemSubClassMask = 1 << 5
	WeaponSubClassMaskPolearm      ItemSubClassMask = 1 << 6
	WeaponSubClassMaskSword        ItemSubClassMask = 1 << 7
	WeaponSubClassMaskTwoHandSword ItemSubClassMask = 1 << 8
	WeaponSubClassMaskStaff        ItemSubClassMask = 1 << 10
	WeaponSubClassMaskFist         ItemSubClassMask = 1 << 13
	WeaponSubClassMaskDagger       ItemSubClassMask = 1 << 15
	WeaponSubClassMaskThrown       ItemSubClassMask = 1 << 16
	WeaponSubClassMaskCrossbow     ItemSubClassMask = 1 << 18
	WeaponSubClassMaskWand         ItemSubClassMask = 1 << 19
	WeaponSubClassMaskFishingPole  ItemSubClassMask = 1 << 20

	WeaponSubClassMaskRanged = WeaponSubClassMaskBow | WeaponSubClassMaskGun |
		WeaponSubClassMaskThrown | WeaponSubClassMaskCrossbow | WeaponSubClassMaskWand

	ArmorSubClassMaskShield ItemSubClassMask = 1 << 6
)

func (m ItemSubClassMask) HasAnyFlag(other ItemSubClassMask) bool { return m&other != 0 }

// HasFlag reports whether bit n (a raw subclass value) is set.
func (m ItemSubClassMask) HasFlag(subClass int) bool {
	return subClass >= 0 && subClass < 32 && m&(1<<uint(subClass)) != 0
}

type SocketColor uint32

const (
	SocketColorMeta   SocketColor = 1
	SocketColorRed    SocketColor = 2
	SocketColorYellow SocketColor = 4
	SocketColorBlue   SocketColor = 8
)

func (c SocketColor) HasAnyFlag(other SocketColor) bool { return c&other != 0 }

type ItemBagFamilyMask uint32

const (
	BagFamilyArrows         ItemBagFamilyMask = 0x0001
	BagFamilyBullets        ItemBagFamilyMask = 0x0002
	BagFamilySoulShards     ItemBagFamilyMask = 0x0004
	BagFamilyLeatherworking ItemBagFamilyMask = 0x0008
	BagFamilyHerbs          ItemBagFamilyMask = 0x0020
	BagFamilyEnchanting     ItemBagFamilyMask = 0x0040
	BagFamilyEngineering    ItemBagFamilyMask = 0x0080
	BagFamilyKeys           ItemBagFamilyMask = 0x0100
	BagFamilyGems           ItemBagFamilyMask = 0x0200
	BagFamilyMining         ItemBagFamilyMask = 0x0400
)

func (m ItemBagFamilyMask) HasAnyFlag(other ItemBagFamilyMask) bool { return m&other != 0 }

// EquipmentSlot names the weapon slot an ability needs.
type EquipmentSlot int

const (
	EquipmentSlotMainHand EquipmentSlot = iota
	EquipmentSlotOffHand
	EquipmentSlotExtraWeapon

	// EquipmentSlotEnd means the ability does not depend on a weapon slot.
	EquipmentSlotEnd
)

func (s EquipmentSlot) String() string {
	switch s {
	case EquipmentSlotMainHand:
		return "MainHand"
	case EquipmentSlotOffHand:
		return "OffHand"
	case EquipmentSlotExtraWeapon:
		return "ExtraWeapon"
	}
	return "End"
}

// TotemCategory is a required tool category (e.g. Skinning Knife).
type TotemCategory uint32

const (
	TotemCategoryNone             TotemCategory = 0
	TotemCategorySkinningKnife    TotemCategory = 1
	TotemCategoryEarthTotem       TotemCategory = 2
	TotemCategoryAirTotem         TotemCategory = 3
	TotemCategoryFireTotem        TotemCategory = 4
	TotemCategoryWaterTotem       TotemCategory = 5
	TotemCategoryMiningPick       TotemCategory = 165
	TotemCategoryBlacksmithHammer TotemCategory = 162
)
