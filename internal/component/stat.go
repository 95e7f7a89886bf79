package component

import "fmt"

// StatID enumerates the base attributes stored on the hero record.
type StatID uint8

const (
	StatMaxHP StatID = iota
	StatAttack
	StatDefense
	StatEnergy
	StatSoul
	StatDexterity
	StatCritChance

	StatCount
)

// Bonus is the key an item uses to contribute to a stat.
type Bonus string

const (
	BonusHP         Bonus = "hp"
	BonusAttack     Bonus = "attack"
	BonusDefense    Bonus = "defense"
	BonusDexterity  Bonus = "dexterity"
	BonusCritChance Bonus = "critChance"
)

// statKeys are the hero record field names, indexed by StatID.
var statKeys = [StatCount]string{
	StatMaxHP:      "baseHp",
	StatAttack:     "baseAttack",
	StatDefense:    "baseDefense",
	StatEnergy:     "baseEnergy",
	StatSoul:       "baseSoul",
	StatDexterity:  "baseDexterity",
	StatCritChance: "critChance",
}

var statLabels = [StatCount]string{
	StatMaxHP:      "Max HP",
	StatAttack:     "Attack",
	StatDefense:    "Defense",
	StatEnergy:     "Energy",
	StatSoul:       "Soul",
	StatDexterity:  "Dexterity",
	StatCritChance: "Crit Chance",
}

// statBonus maps a stat to the item bonus that raises it.
// Energy and Soul are never raised by equipment.
var statBonus = map[StatID]Bonus{
	StatMaxHP:      BonusHP,
	StatAttack:     BonusAttack,
	StatDefense:    BonusDefense,
	StatDexterity:  BonusDexterity,
	StatCritChance: BonusCritChance,
}

// Key returns the hero record field name for the stat.
func (s StatID) Key() string {
	if s >= StatCount {
		return ""
	}
	return statKeys[s]
}

// String returns a human-readable stat name.
func (s StatID) String() string {
	if s >= StatCount {
		return fmt.Sprintf("StatID(%d)", uint8(s))
	}
	return statLabels[s]
}

// BonusKey returns the equipment bonus that applies to s, if any.
func (s StatID) BonusKey() (Bonus, bool) {
	b, ok := statBonus[s]
	return b, ok
}

// ParseStat resolves a hero record field name ("baseAttack", "critChance", ...).
func ParseStat(key string) (StatID, bool) {
	for id, k := range statKeys {
		if k == key {
			return StatID(id), true
		}
	}
	return 0, false
}
