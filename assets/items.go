package assets

import "blaze-and-steel/internal/component"

// Slots is the fixed equipment layout. An item occupies a slot only when its
// Type equals the slot key.
var Slots = []component.SlotDef{
	{Key: "weapon", Name: "Weapon", Icon: IconWeapon},
	{Key: "armor", Name: "Armor", Icon: IconArmor},
	{Key: "accessory", Name: "Accessory", Icon: IconAccessory},
}

// StarterWeapon is granted and equipped when a character is created.
var StarterWeapon = component.Item{
	ID:          100,
	Name:        "Starter Blade",
	Type:        "weapon",
	Stat:        map[component.Bonus]int{component.BonusAttack: 2},
	Icon:        IconWeapon,
	Description: "A plain blade handed to every new adventurer.",
}

// MonsterEssence is the material that may drop after a won fight.
var MonsterEssence = component.Item{
	ID:          200,
	Name:        "Monster Essence",
	Type:        component.TypeMaterial,
	Icon:        IconEssence,
	Description: "Can be used for forging.",
}

// EssenceDropChance is the probability of MonsterEssence dropping after a win.
const EssenceDropChance = 0.2
