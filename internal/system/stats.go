package system

import "blaze-and-steel/internal/component"

// EquipmentTotals sums the bonuses of every equipped item.
func EquipmentTotals(eq component.Equipment) component.Totals {
	t := make(component.Totals)
	for _, item := range eq.Equipped() {
		for bonus, v := range item.Stat {
			t[bonus] += v
		}
	}
	return t
}

// TotalStat returns the base value of stat plus its equipment bonus.
func TotalStat(h component.Hero, t component.Totals, stat component.StatID) int {
	v := h.Base(stat)
	if b, ok := stat.BonusKey(); ok {
		v += t[b]
	}
	return v
}
