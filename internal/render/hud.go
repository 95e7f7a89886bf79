package render

import (
	"fmt"
	"slices"
	"strings"

	"blaze-and-steel/assets"
	"blaze-and-steel/internal/component"
)

// State is the read-only view of a game the HUD draws from.
type State interface {
	Hero() component.Hero
	TotalStat(stat component.StatID) int
	MaxHP() int
	Stacks() []component.ItemStack
	Slots() []component.Slot
	Cooldowns() map[string]int
	Enemy() (component.Enemy, bool)
	Messages() []component.LogEntry
	CanRebirth() bool
}

// Panel selects the main content area.
type Panel uint8

const (
	PanelStats Panel = iota
	PanelInventory
	PanelTraining
	PanelCombat

	PanelCount
)

var panelNames = [PanelCount]string{
	PanelStats:     "Stats",
	PanelInventory: "Inventory",
	PanelTraining:  "Training",
	PanelCombat:    "Combat",
}

func (p Panel) String() string {
	if p >= PanelCount {
		return fmt.Sprintf("Panel(%d)", uint8(p))
	}
	return panelNames[p]
}

// View is the front-end state that is not part of the game itself.
type View struct {
	Panel  Panel
	Cursor int
	Muted  bool
	Volume float64
}

// StatRows lists the stats shown on the stats panel, in display order.
var StatRows = []component.StatID{
	component.StatMaxHP,
	component.StatAttack,
	component.StatDefense,
	component.StatEnergy,
	component.StatSoul,
	component.StatDexterity,
	component.StatCritChance,
}

// logRows is how many combat-log lines stay visible.
const logRows = 8

// ItemAt resolves an inventory-panel cursor. Equipped slots come first,
// followed by the backpack stacks.
func ItemAt(s State, cursor int) (item component.Item, equipped bool, ok bool) {
	slots := s.Slots()
	if cursor >= 0 && cursor < len(slots) {
		if slots[cursor].Item == nil {
			return component.Item{}, false, false
		}
		return *slots[cursor].Item, true, true
	}
	stacks := s.Stacks()
	i := cursor - len(slots)
	if i < 0 || i >= len(stacks) {
		return component.Item{}, false, false
	}
	return stacks[i].Item, false, true
}

// CombatOptions returns the selectable rows of the combat panel: the areas
// while idle, or the basic attack followed by the class skills in a fight.
func CombatOptions(s State) []string {
	if _, ok := s.Enemy(); !ok {
		return assets.Areas()
	}
	opts := []string{"Attack"}
	if class, ok := assets.ClassByName(s.Hero().ClassName); ok {
		opts = append(opts, class.Abilities...)
	}
	return opts
}

// PanelRows returns the number of cursor positions on panel p.
func PanelRows(s State, p Panel) int {
	switch p {
	case PanelStats:
		return len(StatRows)
	case PanelInventory:
		return len(s.Slots()) + len(s.Stacks())
	case PanelTraining:
		return len(assets.Missions)
	case PanelCombat:
		return len(CombatOptions(s))
	}
	return 0
}

// DrawGame renders the main game screen.
func (r *Renderer) DrawGame(s State, v View) {
	r.screen.Clear()
	w, h := r.screen.Size()
	hero := s.Hero()

	r.drawText(1, 0, 0, "⚔️ Blaze and Steel", styleTitle)
	title := fmt.Sprintf("%s the %s · Level %d", hero.Name, hero.ClassName, hero.Level)
	r.drawText(max(w-TextWidth(title)-1, 22), 0, 0, title, styleText)

	maxHP := s.MaxHP()
	hpPct := 0
	if maxHP > 0 {
		hpPct = hero.CurrentHP * 100 / maxHP
	}
	x := r.drawText(1, 1, 0, fmt.Sprintf("HP %d/%d ", hero.CurrentHP, maxHP), fg(ColorHP))
	r.drawBar(x, 1, 16, hpPct, ColorHP)
	expPct := 0
	if hero.ExpToNextLevel > 0 {
		expPct = hero.Exp * 100 / hero.ExpToNextLevel
	}
	x = r.drawText(x+18, 1, 0, fmt.Sprintf("EXP %d/%d ", hero.Exp, hero.ExpToNextLevel), fg(ColorEnergy))
	r.drawBar(x, 1, 16, expPct, ColorEnergy)
	r.drawText(x+18, 1, 0, fmt.Sprintf("Gold %d", hero.Gold), fg(ColorAccent))

	x = 1
	for p := range PanelCount {
		label := fmt.Sprintf(" %d %s ", int(p)+1, p)
		style := styleDim
		if p == v.Panel {
			style = styleHighlight
		}
		x = r.drawText(x, 2, 0, label, style) + 1
	}
	r.drawHLine(0, w, 3, ColorBorder)

	logTop := h - logRows - 2
	switch v.Panel {
	case PanelStats:
		r.drawStats(s, v.Cursor, 4)
	case PanelInventory:
		r.drawInventory(s, v.Cursor, 4, logTop-1)
	case PanelTraining:
		r.drawTraining(s, v.Cursor, 4)
	case PanelCombat:
		r.drawCombat(s, v.Cursor, 4)
	}

	r.drawHLine(0, w, logTop-1, ColorBorder)
	r.drawLog(s.Messages(), logTop, logRows)
	r.drawHints(v, h-1)
	r.screen.Show()
}

func (r *Renderer) drawStats(s State, cursor, y int) {
	hero := s.Hero()
	for i, stat := range StatRows {
		total := s.TotalStat(stat)
		base := hero.Base(stat)
		line := fmt.Sprintf("%-12s %4d", stat, total)
		if total != base {
			line += fmt.Sprintf("  (base %d %+d)", base, total-base)
		}
		style := styleText
		if stat == component.StatSoul {
			style = fg(ColorSoul)
		}
		if i == cursor {
			style = styleHighlight
		}
		r.drawText(2, y+i, 0, line, style)
	}
	y += len(StatRows) + 1
	points := fmt.Sprintf("Attribute points: %d", hero.AttributePoints)
	r.drawText(2, y, 0, points, fg(ColorEnergy))
	r.drawText(2, y+1, 0, fmt.Sprintf("Soul: %d", hero.BaseSoul), fg(ColorSoul))
	if s.CanRebirth() {
		r.drawText(2, y+3, 0, "Rebirth is available. Press B to be reborn.", fg(ColorSoul).Bold(true))
	} else {
		r.drawText(2, y+3, 0, fmt.Sprintf("Rebirth unlocks at level %d.", assets.RebirthMinLevel), styleDim)
	}
}

func (r *Renderer) drawInventory(s State, cursor, y, bottom int) {
	r.drawText(2, y, 0, "Equipped", styleTitle)
	row := 0
	for _, slot := range s.Slots() {
		line := fmt.Sprintf("%s %-10s ", slot.Icon, slot.Name)
		if slot.Item == nil {
			line += "(empty)"
		} else {
			line += itemLabel(*slot.Item)
		}
		style := styleText
		if slot.Item == nil {
			style = styleDim
		}
		if row == cursor {
			style = styleHighlight
		}
		r.drawText(2, y+1+row, 0, line, style)
		row++
	}

	stacks := s.Stacks()
	top := y + row + 2
	r.drawText(2, top-1, 0, "Backpack", styleTitle)
	if len(stacks) == 0 {
		r.drawText(2, top, 0, "Your backpack is empty.", styleDim)
		return
	}
	// Scroll so the cursor stays visible.
	visible := max(bottom-top, 1)
	first := 0
	if c := cursor - row; c >= visible {
		first = c - visible + 1
	}
	for i := first; i < len(stacks) && i-first < visible; i++ {
		st := stacks[i]
		line := fmt.Sprintf("%s %s", st.Item.Icon, itemLabel(st.Item))
		if st.Count > 1 {
			line += fmt.Sprintf(" x%d", st.Count)
		}
		style := styleText
		if row+i == cursor {
			style = styleHighlight
		}
		r.drawText(2, top+i-first, 0, line, style)
	}
}

// itemLabel formats an item name with its bonuses, e.g. "Starter Blade (+2 attack)".
func itemLabel(it component.Item) string {
	if len(it.Stat) == 0 {
		return it.Name
	}
	keys := make([]string, 0, len(it.Stat))
	for k := range it.Stat {
		keys = append(keys, string(k))
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%+d %s", it.Stat[component.Bonus(k)], k)
	}
	return fmt.Sprintf("%s (%s)", it.Name, strings.Join(parts, ", "))
}

func (r *Renderer) drawTraining(s State, cursor, y int) {
	r.drawText(2, y, 0, "Missions", styleTitle)
	cd := s.Cooldowns()
	for i, m := range assets.Missions {
		status := "ready"
		if left := cd[m.Key]; left > 0 {
			status = fmt.Sprintf("%ds", left)
		}
		line := fmt.Sprintf("%-22s %6s   %d EXP · %d Gold", m.Name, status, m.ExpReward, m.GoldReward)
		style := fg(ColorEnergy)
		if i == cursor {
			style = styleHighlight
		}
		r.drawText(2, y+1+i, 0, line, style)
	}
}

func (r *Renderer) drawCombat(s State, cursor, y int) {
	enemy, inCombat := s.Enemy()
	if !inCombat {
		r.drawText(2, y, 0, "Explore", styleTitle)
		for i, area := range CombatOptions(s) {
			style := styleText
			if i == cursor {
				style = styleHighlight
			}
			r.drawText(2, y+1+i, 0, area, style)
		}
		return
	}

	r.drawText(2, y, 0, fmt.Sprintf("%s %s  Lv %d", enemy.Image, enemy.Name, enemy.Level), fg(ColorCombat).Bold(true))
	pct := enemy.HPPercent()
	x := r.drawText(2, y+1, 0, fmt.Sprintf("HP %d/%d ", max(enemy.CurrentHP, 0), enemy.HP), fg(ColorCombat))
	r.drawBar(x, y+1, 20, pct, ColorCombat)
	r.drawText(2, y+2, 0, fmt.Sprintf("ATK %d  DEF %d", enemy.Attack, enemy.Defense), styleDim)
	for i, opt := range CombatOptions(s) {
		style := styleText
		if i == cursor {
			style = styleHighlight
		}
		r.drawText(2, y+4+i, 0, opt, style)
	}
}

// drawLog shows the newest rows entries, oldest first.
func (r *Renderer) drawLog(msgs []component.LogEntry, y, rows int) {
	start := max(len(msgs)-rows, 0)
	for i, m := range msgs[start:] {
		x := r.drawText(1, y+i, 0, m.At.Format("[15:04:05] "), styleDim)
		r.drawText(x, y+i, 0, m.Text, fg(ToneColor(m.Tone)))
	}
}

func (r *Renderer) drawHints(v View, y int) {
	var hint string
	switch v.Panel {
	case PanelStats:
		hint = "[enter] allocate  [S] spend soul  [B] rebirth"
	case PanelInventory:
		hint = "[enter] equip  [u] unequip"
	case PanelTraining:
		hint = "[enter] start mission"
	case PanelCombat:
		hint = "[enter] select  [a] attack  [s] skill"
	}
	hint += "  [w] save  [L] load  [R] reset  [q] quit"
	sound := fmt.Sprintf("vol %d%%", int(v.Volume*100+0.5))
	if v.Muted {
		sound = "muted"
	}
	r.drawText(1, y, 0, hint, styleDim)
	w, _ := r.screen.Size()
	r.drawText(max(w-TextWidth(sound)-1, 0), y, 0, sound, styleDim)
}
