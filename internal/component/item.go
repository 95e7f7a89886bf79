package component

// TypeMaterial marks items that cannot be equipped.
const TypeMaterial = "material"

// Item is a plain value struct for one inventory entry. Ids are not unique:
// several entries with the same id are stacked copies of one item.
type Item struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	Stat        map[Bonus]int `json:"stat,omitempty"`
	Icon        string        `json:"icon"`
	Description string        `json:"description,omitempty"`
}

// Clone returns a copy that shares no map with i.
func (i Item) Clone() Item {
	if i.Stat != nil {
		stat := make(map[Bonus]int, len(i.Stat))
		for k, v := range i.Stat {
			stat[k] = v
		}
		i.Stat = stat
	}
	return i
}

// ItemStack is the grouped, counted view of identical items used for display.
type ItemStack struct {
	Item  Item
	Count int
}

// Inventory is an unconstrained list of items; stacking only exists at render time.
type Inventory []Item

// Add appends a copy of item.
func (inv *Inventory) Add(item Item) {
	*inv = append(*inv, item.Clone())
}

// IndexOf returns the position of the first item with the given id, or -1.
func (inv Inventory) IndexOf(id int) int {
	for i, it := range inv {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// RemoveFirst removes the first item with the given id and returns it.
func (inv *Inventory) RemoveFirst(id int) (Item, bool) {
	i := inv.IndexOf(id)
	if i < 0 {
		return Item{}, false
	}
	item := (*inv)[i]
	out := make(Inventory, 0, len(*inv)-1)
	out = append(out, (*inv)[:i]...)
	out = append(out, (*inv)[i+1:]...)
	*inv = out
	return item, true
}

// Stacks groups items by id in first-seen order.
func (inv Inventory) Stacks() []ItemStack {
	var stacks []ItemStack
	index := make(map[int]int)
	for _, it := range inv {
		if i, ok := index[it.ID]; ok {
			stacks[i].Count++
			continue
		}
		index[it.ID] = len(stacks)
		stacks = append(stacks, ItemStack{Item: it, Count: 1})
	}
	return stacks
}
