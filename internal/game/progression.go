package game

import (
	"errors"
	"fmt"

	"blaze-and-steel/assets"
	"blaze-and-steel/internal/audio"
	"blaze-and-steel/internal/component"
	"blaze-and-steel/internal/save"
	"blaze-and-steel/internal/system"
)

// GainExperience awards amount experience, applying every level crossed.
// Returns the number of levels gained.
func (g *Game) GainExperience(amount int) int {
	levels := g.gainExperience(amount)
	g.persist()
	return levels
}

func (g *Game) gainExperience(amount int) int {
	from := g.hero.Level
	levels := system.GainExperience(&g.hero, amount, g.totals)
	for lvl := from + 1; lvl <= g.hero.Level; lvl++ {
		g.addMessage(fmt.Sprintf("*** Level up! You reached level %d (+%d attribute points) ***",
			lvl, system.LevelAttributePoints), component.ToneAccent)
	}
	if levels > 0 {
		g.cue(audio.CueLevelUp)
	}
	return levels
}

// ruleKind maps a system rule failure to a controller error kind.
func ruleKind(err error) error {
	if errors.Is(err, system.ErrStatNotAllocatable) {
		return ErrInvalidAction
	}
	return ErrInsufficientResource
}

// AllocateAttributePoint spends one attribute point on a +1 to stat.
func (g *Game) AllocateAttributePoint(stat component.StatID) error {
	if err := system.AllocateAttributePoint(&g.hero, stat, g.totals); err != nil {
		return g.reject(ruleKind(err), err, fmt.Sprintf("Cannot raise %s: %v.", stat, err))
	}
	g.addMessage(fmt.Sprintf("+1 point in %s.", stat), component.ToneEnergy)
	g.persist()
	return nil
}

// SpendSoulPoint spends one soul on a permanent +1 to stat.
func (g *Game) SpendSoulPoint(stat component.StatID) error {
	if err := system.SpendSoulPoint(&g.hero, stat, g.totals); err != nil {
		if errors.Is(err, system.ErrNoSoul) {
			return g.reject(ErrInsufficientResource, err, "You do not have enough Soul to evolve!")
		}
		return g.reject(ruleKind(err), err, fmt.Sprintf("Cannot raise %s: %v.", stat, err))
	}
	g.addMessage(fmt.Sprintf("You spent 1 Soul and your base %s increased.", stat), component.ToneSoul)
	g.persist()
	return nil
}

// CanRebirth reports whether the hero is high enough level to be reborn.
func (g *Game) CanRebirth() bool {
	return g.hero.Level >= assets.RebirthMinLevel
}

// Rebirth trades the current hero for soul: floor(level/10) is added to the
// soul pool, everything else is discarded and the game returns to character
// creation. The stored snapshot is replaced by one holding only the soul, so a
// restart before the next hero is created resumes in creation.
func (g *Game) Rebirth() (int, error) {
	if !g.CanRebirth() {
		return 0, g.reject(ErrInvalidAction, nil,
			fmt.Sprintf("Rebirth unlocks at level %d.", assets.RebirthMinLevel))
	}
	gained := system.SoulForLevel(g.hero.Level)
	prev := g.hero
	soul := prev.BaseSoul + gained

	g.recordRun(prev, gained)
	g.endSession()
	g.resetState()
	g.hero.BaseSoul = soul
	g.phase = PhaseCreation
	g.persist()
	g.addMessage(fmt.Sprintf("%s is reborn at level %d and gains %d Soul.", prev.Name, prev.Level, gained), component.ToneSoul)
	g.cue(audio.CueLevelUp)
	return gained, nil
}

// awaitingHero reports whether snap was written by a rebirth before the next
// hero was created. Created heroes always carry a name.
func awaitingHero(snap save.Snapshot) bool {
	return snap.Hero.Name == ""
}

// storedSoul returns the soul of a stored rebirth snapshot, or 0.
func (g *Game) storedSoul() int {
	if g.saves == nil {
		return 0
	}
	snap, found, err := g.saves.Load(g.storeCtx())
	if err != nil || !found || !awaitingHero(snap) {
		return 0
	}
	return max(snap.Hero.BaseSoul, 0)
}
