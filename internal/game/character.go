package game

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"blaze-and-steel/assets"
	"blaze-and-steel/internal/component"
	"blaze-and-steel/internal/system"
)

// DefaultHeroName is used when the player leaves the name blank.
const DefaultHeroName = "Adventurer"

// NewGame discards the whole state and opens character creation. Soul is kept
// only when the stored snapshot was left by a rebirth.
func (g *Game) NewGame() {
	g.endSession()
	g.resetState()
	g.hero.BaseSoul = g.storedSoul()
	g.phase = PhaseCreation
	g.addMessage("Create your hero.", component.ToneText)
}

// CreateCharacter finalizes the hero: applies the class bonuses once, grants
// and equips the starter weapon, starts the cooldown tick and saves. Soul
// carried over from a rebirth is kept.
func (g *Game) CreateCharacter(name, classID string) error {
	if g.phase != PhaseCreation {
		return g.reject(ErrInvalidAction, nil, "No character is being created.")
	}
	class, ok := assets.ClassByID(classID)
	if !ok {
		return g.reject(ErrInvalidAction, nil, fmt.Sprintf("Unknown class %q.", classID))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultHeroName
	}
	if utf8.RuneCountInString(name) < 2 {
		return g.reject(ErrInvalidAction, nil, "Hero name must be at least 2 characters.")
	}

	soul := g.hero.BaseSoul
	h := component.NewHero()
	h.Name = name
	h.ClassName = class.Name
	h.BaseSoul = soul
	h.BaseHP += class.BonusHP
	h.BaseAttack += class.BonusATK
	h.BaseDefense += class.BonusDEF
	h.BaseDexterity += class.BonusDEX
	h.CritChance += class.BonusCrit
	h.CurrentHP = h.BaseHP

	g.hero = h
	g.inventory = nil
	g.equipment = component.NewEquipment(assets.Slots)
	g.cooldowns = defaultCooldowns()
	g.enemy = nil
	g.run = newRun(g.now())

	g.inventory.Add(assets.StarterWeapon)
	if _, err := system.Equip(&g.inventory, &g.equipment, assets.StarterWeapon); err != nil {
		g.log.Error("equip starter weapon", "error", err)
	}
	g.recalcTotals()
	g.hero.Heal(g.totals)

	g.phase = PhasePlaying
	g.addMessage(fmt.Sprintf("Welcome, %s the %s! Your adventure begins now.", h.Name, h.ClassName), component.ToneAccent)
	g.log.Info("character created", "name", h.Name, "class", class.ID, "soul", soul)
	g.startTimers()
	g.persist()
	return nil
}
