package system

import (
	"errors"

	"blaze-and-steel/internal/component"
)

// Per-level growth.
const (
	LevelHPGain          = 10
	LevelAttackGain      = 2
	LevelDefenseGain     = 1
	LevelAttributePoints = 3
	ExpGrowthNumerator   = 3 // threshold grows by 3/2, floored
	ExpGrowthDenominator = 2
	LevelsPerSoul        = 10
)

var (
	ErrNoAttributePoints  = errors.New("no attribute points to spend")
	ErrNoSoul             = errors.New("not enough soul")
	ErrStatNotAllocatable = errors.New("stat cannot be raised this way")
)

// GainExperience adds amount to the hero's experience and applies every level
// crossed. Returns the number of levels gained. Negative amounts are ignored.
func GainExperience(h *component.Hero, amount int, t component.Totals) int {
	if amount > 0 {
		h.Exp += amount
	}
	levels := 0
	for {
		if h.ExpToNextLevel < 1 {
			h.ExpToNextLevel = 1
		}
		if h.Exp < h.ExpToNextLevel {
			break
		}
		h.Exp -= h.ExpToNextLevel
		h.Level++
		h.ExpToNextLevel = h.ExpToNextLevel * ExpGrowthNumerator / ExpGrowthDenominator
		h.BaseHP += LevelHPGain
		h.BaseAttack += LevelAttackGain
		h.BaseDefense += LevelDefenseGain
		h.AttributePoints += LevelAttributePoints
		h.Heal(t)
		levels++
	}
	return levels
}

func allocatable(stat component.StatID) bool {
	return stat < component.StatCount && stat != component.StatSoul
}

// AllocateAttributePoint spends one attribute point on stat.
func AllocateAttributePoint(h *component.Hero, stat component.StatID, t component.Totals) error {
	if !allocatable(stat) {
		return ErrStatNotAllocatable
	}
	if h.AttributePoints <= 0 {
		return ErrNoAttributePoints
	}
	h.AttributePoints--
	h.AddBase(stat, 1)
	if stat == component.StatMaxHP {
		h.Heal(t)
	}
	return nil
}

// SpendSoulPoint spends one soul on a permanent +1 to stat.
func SpendSoulPoint(h *component.Hero, stat component.StatID, t component.Totals) error {
	if !allocatable(stat) {
		return ErrStatNotAllocatable
	}
	if h.BaseSoul < 1 {
		return ErrNoSoul
	}
	h.BaseSoul--
	h.AddBase(stat, 1)
	if stat == component.StatMaxHP {
		h.Heal(t)
	}
	return nil
}

// SoulForLevel is the soul a rebirth at level yields.
func SoulForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	return level / LevelsPerSoul
}
