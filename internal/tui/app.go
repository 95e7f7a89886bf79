// Package tui is the terminal front-end: main menu, character creation and
// the main game screen, driven by key events and a wall-clock ticker.
package tui

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"blaze-and-steel/assets"
	"blaze-and-steel/internal/audio"
	"blaze-and-steel/internal/game"
	"blaze-and-steel/internal/render"
)

// frameInterval is how often game time advances and the screen redraws.
const frameInterval = 200 * time.Millisecond

// volumeStep is the change applied by one volume key press.
const volumeStep = 0.1

// maxNameLen caps the hero name typed on the creation screen.
const maxNameLen = 20

// Options configures Run.
type Options struct {
	Screen tcell.Screen
	Game   *game.Game
	Audio  *audio.Player
	Logger *slog.Logger
}

type confirmation struct {
	prompt string
	yes    func() bool // returns true to quit
}

// App holds the front-end state around one game.
type App struct {
	g      *game.Game
	audio  *audio.Player
	log    *slog.Logger
	render *render.Renderer

	menu       bool
	menuCursor int
	status     string
	creation   render.Creation
	view       render.View
	confirm    *confirmation
}

// NewApp wraps g. The renderer may be nil when nothing is drawn.
func NewApp(g *game.Game, player *audio.Player, r *render.Renderer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		g:      g,
		audio:  player,
		log:    logger,
		render: r,
		menu:   g.Phase() == game.PhaseMenu,
	}
}

// Run blocks until the player quits, the screen closes or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	app := NewApp(opts.Game, opts.Audio, render.NewRenderer(opts.Screen), opts.Logger)

	// Start an async input reader goroutine.
	eventCh := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := opts.Screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			eventCh <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	app.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-eventCh:
			if !ok {
				return nil // screen closed / disconnected
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				opts.Screen.Sync()
			case *tcell.EventKey:
				if app.HandleKey(ev) {
					return nil
				}
			}
			app.draw()
		case now := <-ticker.C:
			app.g.Advance(now.Sub(last))
			last = now
			app.draw()
		}
	}
}

// Mode reports which screen is showing.
func (a *App) Mode() game.Phase {
	if a.menu {
		return game.PhaseMenu
	}
	return a.g.Phase()
}

func (a *App) draw() {
	if a.render == nil {
		return
	}
	switch a.Mode() {
	case game.PhaseMenu:
		a.render.DrawMenu(a.menuCursor, a.status)
	case game.PhaseCreation:
		c := a.creation
		c.Soul = a.g.Hero().BaseSoul
		a.render.DrawCreation(c)
	default:
		a.view.Muted = a.audio != nil && a.audio.Muted()
		if a.audio != nil {
			a.view.Volume = a.audio.Volume()
		}
		a.render.DrawGame(a.g, a.view)
	}
	if a.confirm != nil {
		a.render.DrawConfirm(a.confirm.prompt)
	}
}

// HandleKey applies one key event and reports whether the player quit.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	if a.audio != nil {
		a.audio.InitOnce()
	}
	if a.confirm != nil {
		c := a.confirm
		a.confirm = nil
		if ev.Rune() == 'y' || ev.Rune() == 'Y' {
			return c.yes()
		}
		return false
	}
	switch a.Mode() {
	case game.PhaseMenu:
		return a.menuKey(ev)
	case game.PhaseCreation:
		a.creationKey(ev)
		return false
	}
	return a.gameKey(keyToAction(ev))
}

func (a *App) ask(prompt string, yes func() bool) {
	a.confirm = &confirmation{prompt: prompt, yes: yes}
}

func (a *App) menuKey(ev *tcell.EventKey) bool {
	n := len(render.MenuItems)
	switch ev.Key() {
	case tcell.KeyUp:
		a.menuCursor = (a.menuCursor - 1 + n) % n
		return false
	case tcell.KeyDown:
		a.menuCursor = (a.menuCursor + 1) % n
		return false
	case tcell.KeyEnter:
		return a.menuSelect()
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	}
	switch ev.Rune() {
	case 'k', 'K':
		a.menuCursor = (a.menuCursor - 1 + n) % n
	case 'j', 'J':
		a.menuCursor = (a.menuCursor + 1) % n
	case ' ':
		return a.menuSelect()
	case 'q', 'Q':
		return true
	}
	return false
}

func (a *App) menuSelect() bool {
	a.status = ""
	switch a.menuCursor {
	case 0:
		// After a rebirth the game is already in creation with soul to keep.
		if a.g.Phase() != game.PhaseCreation {
			a.g.NewGame()
		}
		a.creation = render.Creation{}
		a.menu = false
	case 1:
		ok, err := a.g.Load()
		switch {
		case err != nil:
			a.status = "Load failed."
		case !ok:
			a.status = "No save found."
		default:
			a.menu = false
			a.view = render.View{}
			a.creation = render.Creation{}
		}
	default:
		return true
	}
	return false
}

func (a *App) creationKey(ev *tcell.EventKey) {
	n := len(assets.Classes)
	c := &a.creation
	switch ev.Key() {
	case tcell.KeyUp:
		c.Selected = (c.Selected - 1 + n) % n
	case tcell.KeyDown:
		c.Selected = (c.Selected + 1) % n
	case tcell.KeyF1, tcell.KeyF2, tcell.KeyF3, tcell.KeyF4:
		if idx := int(ev.Key() - tcell.KeyF1); idx < n {
			c.Selected = idx
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.Name != "" {
			_, size := utf8.DecodeLastRuneInString(c.Name)
			c.Name = c.Name[:len(c.Name)-size]
		}
	case tcell.KeyEscape:
		a.menu = true
	case tcell.KeyEnter:
		a.finishCreation()
	case tcell.KeyRune:
		if utf8.RuneCountInString(c.Name) < maxNameLen {
			c.Name += string(ev.Rune())
		}
	}
}

func (a *App) finishCreation() {
	class := assets.Classes[a.creation.Selected]
	if err := a.g.CreateCharacter(a.creation.Name, class.ID); err != nil {
		a.creation.Error = "Could not create the hero."
		if msgs := a.g.Messages(); len(msgs) > 0 {
			a.creation.Error = msgs[len(msgs)-1].Text
		}
		return
	}
	a.creation = render.Creation{}
	a.view = render.View{}
}

func (a *App) gameKey(action Action) bool {
	switch action {
	case ActionUp:
		a.moveCursor(-1)
	case ActionDown:
		a.moveCursor(1)
	case ActionNextPanel:
		a.setPanel((a.view.Panel + 1) % render.PanelCount)
	case ActionPrevPanel:
		a.setPanel((a.view.Panel + render.PanelCount - 1) % render.PanelCount)
	case ActionPanelStats:
		a.setPanel(render.PanelStats)
	case ActionPanelInventory:
		a.setPanel(render.PanelInventory)
	case ActionPanelTraining:
		a.setPanel(render.PanelTraining)
	case ActionPanelCombat:
		a.setPanel(render.PanelCombat)
	case ActionSelect:
		a.selectRow()
	case ActionUnequip:
		if a.view.Panel == render.PanelInventory {
			if item, equipped, ok := render.ItemAt(a.g, a.view.Cursor); ok && equipped {
				a.g.UnequipItem(item)
			}
		}
	case ActionAttack:
		_ = a.g.PerformAttack()
	case ActionSkill:
		a.useSkill()
	case ActionSpendSoul:
		if a.view.Panel == render.PanelStats {
			_ = a.g.SpendSoulPoint(render.StatRows[a.view.Cursor])
		}
	case ActionExplore:
		a.setPanel(render.PanelCombat)
		_ = a.g.SelectArea(assets.Areas()[0])
	case ActionSave:
		_ = a.g.Save()
	case ActionLoad:
		a.ask("Load the saved game?", func() bool {
			if ok, _ := a.g.Load(); ok {
				a.view = render.View{}
				a.creation = render.Creation{}
			}
			return false
		})
	case ActionReset:
		a.ask("Erase all progress?", func() bool {
			if err := a.g.Reset(); err != nil {
				a.log.Warn("reset", "error", err)
			}
			a.menu = true
			a.menuCursor = 0
			return false
		})
	case ActionRebirth:
		if !a.g.CanRebirth() {
			_, _ = a.g.Rebirth() // logs the unlock level
			break
		}
		a.ask("Be reborn? Everything except Soul is lost.", func() bool {
			if _, err := a.g.Rebirth(); err == nil {
				a.creation = render.Creation{}
			}
			return false
		})
	case ActionNewGame:
		a.ask("Abandon this hero and start over?", func() bool {
			a.g.NewGame()
			a.creation = render.Creation{}
			return false
		})
	case ActionMute:
		if a.audio != nil {
			a.audio.ToggleMute()
		}
	case ActionVolumeUp:
		if a.audio != nil {
			a.audio.SetVolume(a.audio.Volume() + volumeStep)
		}
	case ActionVolumeDown:
		if a.audio != nil {
			a.audio.SetVolume(a.audio.Volume() - volumeStep)
		}
	case ActionQuit:
		a.ask("Really quit?", func() bool { return true })
	}
	a.clampCursor()
	return false
}

func (a *App) setPanel(p render.Panel) {
	if a.view.Panel != p {
		a.view.Panel = p
		a.view.Cursor = 0
	}
}

func (a *App) moveCursor(d int) {
	n := render.PanelRows(a.g, a.view.Panel)
	if n == 0 {
		a.view.Cursor = 0
		return
	}
	a.view.Cursor = (a.view.Cursor + d + n) % n
}

// clampCursor keeps the cursor on a valid row after the panel's rows change.
func (a *App) clampCursor() {
	n := render.PanelRows(a.g, a.view.Panel)
	a.view.Cursor = min(a.view.Cursor, max(n-1, 0))
}

// selectRow performs the primary action of the row under the cursor.
func (a *App) selectRow() {
	switch a.view.Panel {
	case render.PanelStats:
		_ = a.g.AllocateAttributePoint(render.StatRows[a.view.Cursor])
	case render.PanelInventory:
		item, equipped, ok := render.ItemAt(a.g, a.view.Cursor)
		if !ok {
			return
		}
		if equipped {
			a.g.UnequipItem(item)
			return
		}
		_ = a.g.EquipItem(item)
	case render.PanelTraining:
		_ = a.g.StartMission(assets.Missions[a.view.Cursor].Key)
	case render.PanelCombat:
		opts := render.CombatOptions(a.g)
		if a.view.Cursor >= len(opts) {
			return
		}
		if !a.g.InCombat() {
			_ = a.g.SelectArea(opts[a.view.Cursor])
			return
		}
		if a.view.Cursor == 0 {
			_ = a.g.PerformAttack()
			return
		}
		_ = a.g.PerformSkill(opts[a.view.Cursor])
	}
}

// useSkill fires the highlighted skill on the combat panel, or the class's
// first skill from anywhere else.
func (a *App) useSkill() {
	if !a.g.InCombat() {
		_ = a.g.PerformAttack() // reports "not in combat"
		return
	}
	opts := render.CombatOptions(a.g)
	if len(opts) < 2 {
		_ = a.g.PerformAttack()
		return
	}
	skill := opts[1]
	if a.view.Panel == render.PanelCombat && a.view.Cursor > 0 && a.view.Cursor < len(opts) {
		skill = opts[a.view.Cursor]
	}
	_ = a.g.PerformSkill(skill)
}
