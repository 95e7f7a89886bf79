package render

import (
	"github.com/gdamore/tcell/v2"

	"blaze-and-steel/internal/component"
)

// Palette used across all screens.
var (
	ColorCombat = tcell.NewHexColor(0xc0392b)
	ColorAccent = tcell.NewHexColor(0xf39c12)
	ColorSoul   = tcell.NewHexColor(0x9b59b6)
	ColorEnergy = tcell.NewHexColor(0x3498db)
	ColorHP     = tcell.NewHexColor(0x2ecc71)
	ColorText   = tcell.NewHexColor(0xe0e0e0)
	ColorBorder = tcell.NewHexColor(0x4a4a68)
)

// ToneColor maps a log tone to its display color. Unknown tones use ColorText.
func ToneColor(t component.Tone) tcell.Color {
	switch t {
	case component.ToneCombat:
		return ColorCombat
	case component.ToneAccent:
		return ColorAccent
	case component.ToneSoul:
		return ColorSoul
	case component.ToneEnergy:
		return ColorEnergy
	case component.ToneHP:
		return ColorHP
	case component.ToneBorder:
		return ColorBorder
	}
	return ColorText
}

func fg(c tcell.Color) tcell.Style { return tcell.StyleDefault.Foreground(c) }

var (
	styleText      = fg(ColorText)
	styleDim       = fg(tcell.ColorGray)
	styleTitle     = fg(ColorAccent).Bold(true)
	styleHighlight = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(ColorAccent)
)
