package game

import (
	"fmt"

	"blaze-and-steel/internal/component"
	"blaze-and-steel/internal/system"
)

// AddItem puts a copy of item in the inventory.
func (g *Game) AddItem(item component.Item) {
	g.inventory.Add(item)
	g.addMessage(fmt.Sprintf("%s added to the inventory.", item.Name), component.ToneAccent)
	g.persist()
}

// RemoveItem drops the first inventory copy with the given id.
func (g *Game) RemoveItem(id int) bool {
	if _, ok := g.inventory.RemoveFirst(id); !ok {
		return false
	}
	g.persist()
	return true
}

// EquipItem moves item from the inventory into its slot, returning any
// previous occupant to the inventory.
func (g *Game) EquipItem(item component.Item) error {
	old, err := system.Equip(&g.inventory, &g.equipment, item)
	if err != nil {
		return g.reject(ErrInvalidAction, err, fmt.Sprintf("Cannot equip %s: %v.", item.Name, err))
	}
	g.afterEquipmentChange()
	if old != nil {
		g.addMessage(fmt.Sprintf("%s returned to the inventory.", old.Name), component.ToneText)
	}
	g.addMessage(fmt.Sprintf("%s equipped.", item.Name), component.ToneAccent)
	g.persist()
	return nil
}

// UnequipItem moves item from its slot back to the inventory. Reports false,
// changing nothing, when item is not what the slot holds.
func (g *Game) UnequipItem(item component.Item) bool {
	if !system.Unequip(&g.inventory, &g.equipment, item) {
		return false
	}
	g.afterEquipmentChange()
	g.addMessage(fmt.Sprintf("%s unequipped.", item.Name), component.ToneText)
	g.persist()
	return true
}

func (g *Game) afterEquipmentChange() {
	g.recalcTotals()
	g.hero.ClampHP(g.totals)
}
