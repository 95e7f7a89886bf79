package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"blaze-and-steel/assets"
)

// MenuItems are the main menu entries in display order.
var MenuItems = []string{"New Game", "Continue", "Quit"}

// DrawMenu renders the main menu with the given entry selected. status is an
// optional line shown under the entries, e.g. the result of a failed load.
func (r *Renderer) DrawMenu(selected int, status string) {
	r.screen.Clear()
	_, h := r.screen.Size()
	top := max(h/2-5, 1)

	r.centerText(top, "⚔️ BLAZE AND STEEL ⚔️", styleTitle)
	r.centerText(top+1, "Forge your legend", styleDim)
	for i, item := range MenuItems {
		label := "  " + item + "  "
		style := styleText
		if i == selected {
			label = "► " + item + "  "
			style = styleHighlight
		}
		r.centerText(top+3+i, label, style)
	}
	if status != "" {
		r.centerText(top+4+len(MenuItems), status, styleDim)
	}
	r.centerText(top+6+len(MenuItems), "[j/k or ↑/↓] Navigate   [Enter] Select   [q] Quit", styleDim)
	r.screen.Show()
}

// Creation is the state of the character creation form.
type Creation struct {
	Name     string
	Selected int
	Soul     int
	Error    string
}

// DrawCreation renders the name field and the class list.
func (r *Renderer) DrawCreation(c Creation) {
	r.screen.Clear()

	r.centerText(1, "✨ CREATE YOUR HERO ✨", styleTitle)
	r.centerText(2, "Type a name, then choose your class", styleDim)

	x := r.drawText(2, 4, 0, "Name: ", styleText)
	x = r.drawText(x, 4, 0, c.Name, fg(ColorAccent).Bold(true))
	r.drawText(x, 4, 0, "█", fg(ColorAccent))
	if c.Soul > 0 {
		r.drawText(2, 5, 0, fmt.Sprintf("Soul carried over: %d", c.Soul), fg(ColorSoul))
	}

	// Each class occupies 4 lines + 1 blank = 5 rows. Start at row 7.
	startY := 7
	for i, class := range assets.Classes {
		y := startY + i*5
		prefix := "  "
		lineStyle := styleText
		if i == c.Selected {
			prefix = "► "
			lineStyle = styleHighlight
		}

		r.drawText(2, y, 0, fmt.Sprintf("%s[%d] %s %s", prefix, i+1, class.Emoji, class.Name), lineStyle)
		r.drawText(2, y+1, 0, fmt.Sprintf("      \"%s\"", class.Lore), styleDim)
		r.drawText(2, y+2, 0, "      "+classBonuses(class), fg(ColorEnergy))
		r.drawText(2, y+3, 0, fmt.Sprintf("      Skills: %s", strings.Join(class.Abilities, ", ")), fg(ColorAccent))
	}

	hintsY := startY + len(assets.Classes)*5
	if c.Error != "" {
		r.centerText(hintsY, c.Error, fg(ColorCombat))
	}
	r.centerText(hintsY+1, "[↑/↓] Class   [F1-F4] Quick-select   [Enter] Begin   [Esc] Back", styleDim)
	r.screen.Show()
}

func classBonuses(c assets.ClassDef) string {
	var parts []string
	add := func(label string, n int) {
		if n != 0 {
			parts = append(parts, fmt.Sprintf("%s %+d", label, n))
		}
	}
	add("HP", c.BonusHP)
	add("ATK", c.BonusATK)
	add("DEF", c.BonusDEF)
	add("DEX", c.BonusDEX)
	add("CRIT", c.BonusCrit)
	if len(parts) == 0 {
		return "No stat bonus"
	}
	return strings.Join(parts, ", ")
}

// DrawConfirm draws a centered yes/no prompt box over whatever is on screen.
func (r *Renderer) DrawConfirm(prompt string) {
	text := " " + prompt + " (y/n) "
	width := TextWidth(text) + 4
	hdrStyle := fg(ColorAccent).Bold(true)
	borderStyle := fg(ColorBorder)

	sw, sh := r.screen.Size()
	boxH := 3
	x0 := max((sw-width)/2, 0)
	y0 := max((sh-boxH)/2, 0)

	for row := y0; row < y0+boxH; row++ {
		for col := x0; col < x0+width; col++ {
			r.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
		}
	}
	for col := x0; col < x0+width; col++ {
		r.screen.SetContent(col, y0, '─', nil, borderStyle)
		r.screen.SetContent(col, y0+boxH-1, '─', nil, borderStyle)
	}
	for row := y0; row < y0+boxH; row++ {
		r.screen.SetContent(x0, row, '│', nil, borderStyle)
		r.screen.SetContent(x0+width-1, row, '│', nil, borderStyle)
	}
	r.screen.SetContent(x0, y0, '┌', nil, borderStyle)
	r.screen.SetContent(x0+width-1, y0, '┐', nil, borderStyle)
	r.screen.SetContent(x0, y0+boxH-1, '└', nil, borderStyle)
	r.screen.SetContent(x0+width-1, y0+boxH-1, '┘', nil, borderStyle)

	r.drawText(x0+2, y0+1, x0+width-1, text, hdrStyle)
	r.screen.Show()
}
