package assets

// Icons shown in place of images and for empty equipment slots.
const (
	IconWeapon    = "⚔️"
	IconArmor     = "🛡️"
	IconAccessory = "💍"
	IconEssence   = "💎"
	IconWarrior   = "🪓"
	IconMage      = "🧙"
	IconArcher    = "🏹"
	IconAssassin  = "🗡️"
	IconSlime     = "🟢"
	IconGoblin    = "👺"
)

// ClassDef defines a selectable hero class and the one-time bonuses applied
// to the initial hero when the character is created.
type ClassDef struct {
	ID        string
	Name      string
	Emoji     string
	Lore      string // shown on the creation screen
	Abilities []string
	BonusHP   int
	BonusATK  int
	BonusDEF  int
	BonusDEX  int
	BonusCrit int
}

// Classes is the ordered list of selectable classes.
var Classes = []ClassDef{
	{
		ID:        "warrior",
		Name:      "Warrior",
		Emoji:     IconWarrior,
		Lore:      "A sturdy front-line fighter built around toughness and defense. A good first pick",
		Abilities: []string{"Power Strike", "Heavy Armor", "Warrior's Fury"},
		BonusHP:   20,
		BonusATK:  2,
		BonusDEF:  3,
	},
	{
		ID:        "mage",
		Name:      "Mage",
		Emoji:     IconMage,
		Lore:      "A spellcaster with great offensive promise and very little protection",
		Abilities: []string{"Fireball", "Arcane Shield", "High Intellect"},
	},
	{
		ID:        "archer",
		Name:      "Archer",
		Emoji:     IconArcher,
		Lore:      "A ranged specialist, quick on their feet and precise",
		Abilities: []string{"Precise Shot", "Swift Arrow", "Nimble Escape"},
		BonusATK:  3,
		BonusDEF:  1,
		BonusDEX:  2,
	},
	{
		ID:        "assassin",
		Name:      "Assassin",
		Emoji:     IconAssassin,
		Lore:      "A master of stealth who turns surprise into massive damage",
		Abilities: []string{"Fatal Blow", "Stealth", "Deadly Precision"},
		BonusATK:  4,
		BonusCrit: 5,
	},
}

// ClassByID returns the class with the given id.
func ClassByID(id string) (ClassDef, bool) {
	for _, c := range Classes {
		if c.ID == id {
			return c, true
		}
	}
	return ClassDef{}, false
}

// ClassByName returns the class whose display name is name. Saves store the
// display name on the hero record.
func ClassByName(name string) (ClassDef, bool) {
	for _, c := range Classes {
		if c.Name == name {
			return c, true
		}
	}
	return ClassDef{}, false
}
