package tui

import "github.com/gdamore/tcell/v2"

// Action represents a player-requested action on the main game screen.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionNextPanel
	ActionPrevPanel
	ActionPanelStats
	ActionPanelInventory
	ActionPanelTraining
	ActionPanelCombat
	ActionSelect
	ActionUnequip
	ActionAttack
	ActionSkill
	ActionSpendSoul
	ActionExplore
	ActionSave
	ActionLoad
	ActionReset
	ActionRebirth
	ActionNewGame
	ActionMute
	ActionVolumeUp
	ActionVolumeDown
	ActionQuit
)

// keyToAction maps a tcell key event to a game action. Rune bindings are
// case-sensitive: upper-case letters guard the destructive or costly actions.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionUp
	case tcell.KeyDown:
		return ActionDown
	case tcell.KeyTab:
		return ActionNextPanel
	case tcell.KeyBacktab:
		return ActionPrevPanel
	case tcell.KeyEnter:
		return ActionSelect
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case 'k':
		return ActionUp
	case 'j':
		return ActionDown
	case '1':
		return ActionPanelStats
	case '2':
		return ActionPanelInventory
	case '3':
		return ActionPanelTraining
	case '4':
		return ActionPanelCombat
	case ' ':
		return ActionSelect
	case 'u':
		return ActionUnequip
	case 'a':
		return ActionAttack
	case 's':
		return ActionSkill
	case 'S':
		return ActionSpendSoul
	case 'e':
		return ActionExplore
	case 'w':
		return ActionSave
	case 'L':
		return ActionLoad
	case 'R':
		return ActionReset
	case 'B':
		return ActionRebirth
	case 'n':
		return ActionNewGame
	case 'm':
		return ActionMute
	case '+', '=':
		return ActionVolumeUp
	case '-':
		return ActionVolumeDown
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}
