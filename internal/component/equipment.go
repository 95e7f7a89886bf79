package component

// SlotDef describes one equipment slot: its key (which must equal an item's
// Type to occupy it), display name and empty-slot icon.
type SlotDef struct {
	Key  string
	Name string
	Icon string
}

// Slot is one equipment slot holding at most one item.
type Slot struct {
	SlotDef
	Item *Item
}

// IsEmpty reports whether nothing is equipped in the slot.
func (s Slot) IsEmpty() bool { return s.Item == nil }

// Equipment is a fixed, ordered set of slots.
type Equipment struct {
	slots []Slot
}

// NewEquipment builds empty slots for the given definitions.
func NewEquipment(defs []SlotDef) Equipment {
	slots := make([]Slot, len(defs))
	for i, d := range defs {
		slots[i] = Slot{SlotDef: d}
	}
	return Equipment{slots: slots}
}

// Slot returns the slot for key.
func (e *Equipment) Slot(key string) (*Slot, bool) {
	for i := range e.slots {
		if e.slots[i].Key == key {
			return &e.slots[i], true
		}
	}
	return nil, false
}

// Slots returns a copy of every slot in definition order.
func (e Equipment) Slots() []Slot {
	out := make([]Slot, len(e.slots))
	for i, s := range e.slots {
		out[i] = s
		if s.Item != nil {
			item := s.Item.Clone()
			out[i].Item = &item
		}
	}
	return out
}

// Equipped returns every item currently held by a slot.
func (e Equipment) Equipped() []Item {
	var items []Item
	for _, s := range e.slots {
		if s.Item != nil {
			items = append(items, *s.Item)
		}
	}
	return items
}

// Clear empties every slot.
func (e *Equipment) Clear() {
	for i := range e.slots {
		e.slots[i].Item = nil
	}
}

// Totals is the aggregate of stat bonuses across equipped items.
type Totals map[Bonus]int
