package game

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"blaze-and-steel/assets"
	"blaze-and-steel/internal/component"
	"blaze-and-steel/internal/save"
)

// snapshot captures the persisted part of the state.
func (g *Game) snapshot() save.Snapshot {
	eq := make(map[string]save.SlotRecord, len(assets.Slots))
	for _, s := range g.equipment.Slots() {
		eq[s.Key] = save.SlotRecord{Name: s.Name, Icon: s.Icon, CurrentItem: s.Item}
	}
	run := g.Run()
	return save.Snapshot{
		Hero:             g.hero,
		Equipment:        eq,
		Inventory:        g.Inventory(),
		MissionCooldowns: maps.Clone(g.cooldowns),
		Run:              &run,
	}
}

// storeCtx is the context for store calls. It outlives cancellation of the
// session so writes made during shutdown still land.
func (g *Game) storeCtx() context.Context {
	return context.WithoutCancel(g.ctx)
}

// persist writes through to the store. Failures are reported once per streak
// in the combat log and never interrupt play.
func (g *Game) persist() {
	if g.saves == nil {
		return
	}
	if err := g.saves.Save(g.storeCtx(), g.snapshot()); err != nil {
		g.log.Warn("save failed", "key", g.saves.Key(), "error", err)
		if !g.saveFailed {
			g.addMessage("Save failed; progress is kept in memory.", component.ToneCombat)
		}
		g.saveFailed = true
		return
	}
	g.saveFailed = false
}

// Save writes the current state and reports the outcome.
func (g *Game) Save() error {
	if g.saves == nil {
		return g.reject(ErrPersistence, nil, "Saving is disabled.")
	}
	if err := g.saves.Save(g.storeCtx(), g.snapshot()); err != nil {
		g.log.Warn("save failed", "key", g.saves.Key(), "error", err)
		return g.reject(ErrPersistence, err, "Save failed.")
	}
	g.saveFailed = false
	g.addMessage("Game saved.", component.ToneText)
	return nil
}

// Load restores the stored snapshot and resumes play. A snapshot left by a
// rebirth resumes in character creation with its soul. A missing or corrupt
// snapshot reports "no save found" and returns false with a nil error.
func (g *Game) Load() (bool, error) {
	if g.saves == nil {
		g.addMessage("No save found.", component.ToneText)
		return false, nil
	}
	snap, found, err := g.saves.Load(g.storeCtx())
	if err != nil && !errors.Is(err, save.ErrCorruptSnapshot) {
		g.log.Warn("load failed", "key", g.saves.Key(), "error", err)
		return false, g.reject(ErrPersistence, err, "Load failed.")
	}
	if !found {
		if err != nil {
			g.log.Warn("discarding corrupt save", "key", g.saves.Key(), "error", err)
		}
		g.addMessage("No save found.", component.ToneText)
		return false, nil
	}

	if awaitingHero(snap) {
		g.endSession()
		g.resetState()
		g.hero.BaseSoul = max(snap.Hero.BaseSoul, 0)
		g.phase = PhaseCreation
		g.addMessage(fmt.Sprintf("Your %d Soul awaits a new hero.", g.hero.BaseSoul), component.ToneSoul)
		return true, nil
	}

	g.endSession()
	g.restore(snap)
	g.phase = PhasePlaying
	g.addMessage(fmt.Sprintf("Welcome back, %s.", g.hero.Name), component.ToneAccent)
	g.startTimers()
	return true, nil
}

// restore replaces the aggregate with snap, repairing what a damaged or older
// save may hold.
func (g *Game) restore(snap save.Snapshot) {
	g.hero = snap.Hero
	if g.hero.Level < 1 {
		g.hero.Level = 1
	}
	g.hero.AttributePoints = max(g.hero.AttributePoints, 0)
	g.hero.BaseSoul = max(g.hero.BaseSoul, 0)

	g.inventory = nil
	for _, it := range snap.Inventory {
		g.inventory.Add(it)
	}

	// Slot metadata always comes from assets.Slots. An item that does not
	// belong in its slot goes to the inventory instead.
	g.equipment = component.NewEquipment(assets.Slots)
	for _, key := range slices.Sorted(maps.Keys(snap.Equipment)) {
		item := snap.Equipment[key].CurrentItem
		if item == nil {
			continue
		}
		slot, ok := g.equipment.Slot(key)
		if !ok || item.Type != key {
			g.inventory.Add(*item)
			continue
		}
		c := item.Clone()
		slot.Item = &c
	}

	g.cooldowns = defaultCooldowns()
	for k, v := range snap.MissionCooldowns {
		g.cooldowns[k] = max(v, 0)
	}

	g.enemy = nil
	if snap.Run != nil {
		g.run = *snap.Run
		if g.run.Kills == nil {
			g.run.Kills = make(map[string]int)
		}
	} else {
		g.run = newRun(g.now())
	}

	g.recalcTotals()
	g.hero.ClampHP(g.totals)
}

// Reset deletes the stored snapshot and returns to the menu with fresh state.
// The in-memory reset happens even when the store fails.
func (g *Game) Reset() error {
	var err error
	if g.saves != nil {
		if cerr := g.saves.Clear(g.storeCtx()); cerr != nil {
			g.log.Warn("clear save failed", "key", g.saves.Key(), "error", cerr)
			err = fmt.Errorf("%w: %w", ErrPersistence, cerr)
		}
	}
	g.endSession()
	g.resetState()
	g.messages = nil
	g.phase = PhaseMenu
	g.addMessage("Progress reset.", component.ToneText)
	return err
}
