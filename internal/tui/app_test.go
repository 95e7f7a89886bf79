package tui

import (
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blaze-and-steel/assets"
	"blaze-and-steel/internal/audio"
	"blaze-and-steel/internal/game"
	"blaze-and-steel/internal/render"
	"blaze-and-steel/internal/save"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func namedKey(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func press(t *testing.T, a *App, keys ...*tcell.EventKey) {
	t.Helper()
	for _, k := range keys {
		require.False(t, a.HandleKey(k), "unexpected quit")
	}
}

func typeText(t *testing.T, a *App, s string) {
	t.Helper()
	for _, r := range s {
		press(t, a, runeKey(r))
	}
}

func newTestApp(t *testing.T) (*App, *game.Game, *audio.Player) {
	t.Helper()
	player := audio.New(0.5)
	g := game.New(game.Options{
		Saves:                save.NewGateway(save.NewMemStore(), "test"),
		Rand:                 rand.New(rand.NewSource(42)),
		Audio:                player,
		CancelStaleCallbacks: true,
	})
	return NewApp(g, player, nil, nil), g, player
}

// playingApp creates a warrior named Rook through the menu and creation screens.
func playingApp(t *testing.T) (*App, *game.Game, *audio.Player) {
	t.Helper()
	a, g, p := newTestApp(t)
	press(t, a, namedKey(tcell.KeyEnter))
	require.Equal(t, game.PhaseCreation, a.Mode())
	typeText(t, a, "Rook")
	press(t, a, namedKey(tcell.KeyEnter))
	require.Equal(t, game.PhasePlaying, a.Mode())
	return a, g, p
}

func TestKeyToAction(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want Action
	}{
		{namedKey(tcell.KeyUp), ActionUp},
		{runeKey('k'), ActionUp},
		{namedKey(tcell.KeyDown), ActionDown},
		{runeKey('j'), ActionDown},
		{namedKey(tcell.KeyTab), ActionNextPanel},
		{namedKey(tcell.KeyBacktab), ActionPrevPanel},
		{runeKey('1'), ActionPanelStats},
		{runeKey('4'), ActionPanelCombat},
		{namedKey(tcell.KeyEnter), ActionSelect},
		{runeKey(' '), ActionSelect},
		{runeKey('u'), ActionUnequip},
		{runeKey('a'), ActionAttack},
		{runeKey('s'), ActionSkill},
		{runeKey('S'), ActionSpendSoul},
		{runeKey('e'), ActionExplore},
		{runeKey('w'), ActionSave},
		{runeKey('L'), ActionLoad},
		{runeKey('l'), ActionNone},
		{runeKey('R'), ActionReset},
		{runeKey('r'), ActionNone},
		{runeKey('B'), ActionRebirth},
		{runeKey('n'), ActionNewGame},
		{runeKey('m'), ActionMute},
		{runeKey('+'), ActionVolumeUp},
		{runeKey('='), ActionVolumeUp},
		{runeKey('-'), ActionVolumeDown},
		{runeKey('q'), ActionQuit},
		{namedKey(tcell.KeyEscape), ActionQuit},
		{runeKey('x'), ActionNone},
	}
	for _, tt := range tests {
		if got := keyToAction(tt.ev); got != tt.want {
			t.Errorf("keyToAction(%v) = %v, want %v", tt.ev.Name(), got, tt.want)
		}
	}
}

func TestMenuContinueWithoutSave(t *testing.T) {
	a, _, _ := newTestApp(t)
	assert.Equal(t, game.PhaseMenu, a.Mode())
	press(t, a, runeKey('j'), namedKey(tcell.KeyEnter))
	assert.Equal(t, game.PhaseMenu, a.Mode())
	assert.Equal(t, "No save found.", a.status)
}

func TestMenuQuit(t *testing.T) {
	a, _, _ := newTestApp(t)
	press(t, a, runeKey('k'))
	assert.Equal(t, len(render.MenuItems)-1, a.menuCursor)
	assert.True(t, a.HandleKey(namedKey(tcell.KeyEnter)))
}

func TestCreationFlow(t *testing.T) {
	a, g, _ := newTestApp(t)
	press(t, a, namedKey(tcell.KeyEnter))

	// A one-letter name is rejected and the error is shown.
	typeText(t, a, "R")
	press(t, a, namedKey(tcell.KeyEnter))
	assert.Equal(t, game.PhaseCreation, a.Mode())
	assert.NotEmpty(t, a.creation.Error)

	press(t, a, namedKey(tcell.KeyBackspace2))
	assert.Empty(t, a.creation.Name)
	typeText(t, a, "Wren")
	press(t, a, namedKey(tcell.KeyF3))
	press(t, a, namedKey(tcell.KeyEnter))

	assert.Equal(t, game.PhasePlaying, a.Mode())
	h := g.Hero()
	assert.Equal(t, "Wren", h.Name)
	assert.Equal(t, assets.Classes[2].Name, h.ClassName)
}

func TestCreationEscapeReturnsToMenu(t *testing.T) {
	a, _, _ := newTestApp(t)
	press(t, a, namedKey(tcell.KeyEnter), namedKey(tcell.KeyEscape))
	assert.Equal(t, game.PhaseMenu, a.Mode())
	press(t, a, namedKey(tcell.KeyEnter))
	assert.Equal(t, game.PhaseCreation, a.Mode())
}

func TestPanelNavigation(t *testing.T) {
	a, _, _ := playingApp(t)
	assert.Equal(t, render.PanelStats, a.view.Panel)
	press(t, a, namedKey(tcell.KeyTab))
	assert.Equal(t, render.PanelInventory, a.view.Panel)
	press(t, a, namedKey(tcell.KeyBacktab), namedKey(tcell.KeyBacktab))
	assert.Equal(t, render.PanelCombat, a.view.Panel)
	press(t, a, runeKey('1'))
	assert.Equal(t, render.PanelStats, a.view.Panel)

	// The cursor wraps within the panel's rows.
	press(t, a, runeKey('k'))
	assert.Equal(t, len(render.StatRows)-1, a.view.Cursor)
	press(t, a, runeKey('j'))
	assert.Equal(t, 0, a.view.Cursor)
}

func TestInventoryUnequipAndEquip(t *testing.T) {
	a, g, _ := playingApp(t)
	press(t, a, runeKey('2'), namedKey(tcell.KeyEnter))
	assert.Nil(t, g.Slots()[0].Item)
	require.Len(t, g.Inventory(), 1)

	// Backpack rows follow the equipment slots.
	for range assets.Slots {
		press(t, a, runeKey('j'))
	}
	press(t, a, namedKey(tcell.KeyEnter))
	require.NotNil(t, g.Slots()[0].Item)
	assert.Equal(t, assets.StarterWeapon.ID, g.Slots()[0].Item.ID)
	assert.Empty(t, g.Inventory())
	assert.Less(t, a.view.Cursor, render.PanelRows(g, render.PanelInventory))

	// The cursor was clamped onto the last slot row.
	press(t, a, runeKey('k'), runeKey('k'), runeKey('u'))
	assert.Nil(t, g.Slots()[0].Item)
}

func TestTrainingStartsMission(t *testing.T) {
	a, g, _ := playingApp(t)
	press(t, a, runeKey('3'), namedKey(tcell.KeyEnter))
	assert.Equal(t, assets.Missions[0].Duration, g.Cooldowns()[assets.Missions[0].Key])
}

func TestExploreAndAttack(t *testing.T) {
	a, g, _ := playingApp(t)
	press(t, a, runeKey('e'))
	require.True(t, g.InCombat())
	assert.Equal(t, render.PanelCombat, a.view.Panel)

	press(t, a, runeKey('a'))
	e, ok := g.Enemy()
	if ok {
		assert.Less(t, e.CurrentHP, e.HP)
	}
}

func TestStatsAllocate(t *testing.T) {
	a, g, _ := playingApp(t)
	g.GainExperience(100)
	require.Equal(t, 3, g.Hero().AttributePoints)
	attack := g.Hero().BaseAttack
	press(t, a, runeKey('1'), runeKey('j'), namedKey(tcell.KeyEnter))
	assert.Equal(t, attack+1, g.Hero().BaseAttack)
	assert.Equal(t, 2, g.Hero().AttributePoints)
}

func TestQuitNeedsConfirmation(t *testing.T) {
	a, _, _ := playingApp(t)
	press(t, a, runeKey('q'))
	require.NotNil(t, a.confirm)
	press(t, a, runeKey('n'))
	assert.Nil(t, a.confirm)
	press(t, a, runeKey('q'))
	assert.True(t, a.HandleKey(runeKey('y')))
}

func TestResetReturnsToMenu(t *testing.T) {
	a, g, _ := playingApp(t)
	press(t, a, runeKey('R'), runeKey('y'))
	assert.Equal(t, game.PhaseMenu, a.Mode())
	assert.Equal(t, game.PhaseMenu, g.Phase())

	press(t, a, runeKey('j'), namedKey(tcell.KeyEnter))
	assert.Equal(t, "No save found.", a.status)
}

func TestRebirthGoesToCreationKeepingSoul(t *testing.T) {
	a, g, _ := playingApp(t)
	press(t, a, runeKey('B'))
	assert.Nil(t, a.confirm, "no prompt before the unlock level")
	assert.Equal(t, game.PhasePlaying, a.Mode())

	g.GainExperience(100000)
	require.True(t, g.CanRebirth())
	press(t, a, runeKey('B'), runeKey('y'))
	assert.Equal(t, game.PhaseCreation, a.Mode())
	soul := g.Hero().BaseSoul
	assert.Positive(t, soul)

	typeText(t, a, "Wren")
	press(t, a, namedKey(tcell.KeyEnter))
	assert.Equal(t, soul, g.Hero().BaseSoul)
}

func TestSoundKeys(t *testing.T) {
	a, _, p := playingApp(t)
	assert.True(t, p.Ready(), "the first key press initializes audio")
	press(t, a, runeKey('+'))
	assert.InDelta(t, 0.6, p.Volume(), 1e-9)
	press(t, a, runeKey('-'), runeKey('-'))
	assert.InDelta(t, 0.4, p.Volume(), 1e-9)
	press(t, a, runeKey('m'))
	assert.True(t, p.Muted())
}

func TestDrawEveryScreen(t *testing.T) {
	ss := tcell.NewSimulationScreen("UTF-8")
	ss.SetSize(100, 40)
	require.NoError(t, ss.Init())
	defer ss.Fini()

	a, g, _ := newTestApp(t)
	a.render = render.NewRenderer(ss)
	a.draw()
	press(t, a, namedKey(tcell.KeyEnter))
	a.draw()
	typeText(t, a, "Rook")
	press(t, a, namedKey(tcell.KeyEnter))
	g.AddItem(assets.MonsterEssence)
	for p := range render.PanelCount {
		a.view.Panel = p
		a.draw()
	}
	press(t, a, runeKey('e'), runeKey('q'))
	a.draw()
}
