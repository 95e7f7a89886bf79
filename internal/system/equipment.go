package system

import (
	"errors"

	"blaze-and-steel/internal/component"
)

var (
	ErrInvalidItemType = errors.New("item type matches no equipment slot")
	ErrNotInInventory  = errors.New("item is not in the inventory")
)

// Equip moves the first inventory copy of item into the slot named by its
// type. A previous occupant goes back to the inventory first and is returned.
func Equip(inv *component.Inventory, eq *component.Equipment, item component.Item) (*component.Item, error) {
	slot, ok := eq.Slot(item.Type)
	if !ok {
		return nil, ErrInvalidItemType
	}
	if inv.IndexOf(item.ID) < 0 {
		return nil, ErrNotInInventory
	}

	old := slot.Item
	if old != nil {
		inv.Add(*old)
	}
	taken, _ := inv.RemoveFirst(item.ID)
	slot.Item = &taken
	return old, nil
}

// Unequip returns item to the inventory if it occupies its nominal slot.
// Identity is by id. Reports whether anything moved.
func Unequip(inv *component.Inventory, eq *component.Equipment, item component.Item) bool {
	slot, ok := eq.Slot(item.Type)
	if !ok || slot.Item == nil || slot.Item.ID != item.ID {
		return false
	}
	inv.Add(*slot.Item)
	slot.Item = nil
	return true
}
