package game

import (
	"fmt"

	"blaze-and-steel/assets"
	"blaze-and-steel/internal/audio"
	"blaze-and-steel/internal/component"
	"blaze-and-steel/internal/system"
)

// SelectArea explores area and starts a fight with a random monster from it.
func (g *Game) SelectArea(area string) error {
	table := assets.MonsterTables[area]
	if len(table) == 0 {
		return g.reject(ErrInvalidAction, nil, fmt.Sprintf("No enemies found in %s.", area))
	}
	if g.enemy != nil {
		return g.reject(ErrInvalidAction, nil, fmt.Sprintf("You are already fighting %s!", g.enemy.Name))
	}
	g.addMessage(fmt.Sprintf("You are exploring the %s.", area), component.ToneCombat)
	return g.StartCombat(table[g.rng.Intn(len(table))])
}

// StartCombat spawns a fresh copy of m as the active enemy.
func (g *Game) StartCombat(m component.Monster) error {
	if g.enemy != nil {
		return g.reject(ErrInvalidAction, nil, fmt.Sprintf("You are already fighting %s!", g.enemy.Name))
	}
	e := component.NewEnemy(m)
	g.enemy = &e
	g.combatSeq++
	g.addMessage(fmt.Sprintf("*** You encounter %s (Lv %d)! ***", e.Name, e.Level), component.ToneCombat)
	return nil
}

// PerformAttack resolves the hero's strike. If the enemy survives, its reply
// is scheduled one second later.
func (g *Game) PerformAttack() error {
	if g.enemy == nil {
		return g.reject(ErrInvalidAction, nil, "You are not in combat.")
	}
	e := g.enemy
	s := system.HeroStrike(
		g.TotalStat(component.StatAttack),
		g.TotalStat(component.StatCritChance),
		e.Defense,
		g.rng,
	)
	if s.Critical {
		g.addMessage(fmt.Sprintf("CRITICAL! %s strikes %s with double force!", g.hero.Name, e.Name), component.ToneAccent)
		g.cue(audio.CueCrit)
	} else {
		g.cue(audio.CueHit)
	}
	g.addMessage(fmt.Sprintf("%s deals %d damage to %s.", g.hero.Name, s.Damage, e.Name), component.ToneHP)

	if system.ApplyDamage(&e.CurrentHP, s.Damage) {
		g.winCombat()
		return nil
	}
	seq := g.combatSeq
	g.sched.After(enemyTurnDelay, func() { g.enemyTurn(seq) })
	return nil
}

// PerformSkill announces the skill, then resolves it as a basic attack.
func (g *Game) PerformSkill(name string) error {
	if g.enemy == nil {
		return g.reject(ErrInvalidAction, nil, "You are not in combat.")
	}
	g.addMessage(fmt.Sprintf("You use %s!", name), component.ToneCombat)
	return g.PerformAttack()
}

// enemyTurn is a no-op without an enemy. When stale callbacks are cancelled it
// is also a no-op once the fight it was scheduled for has ended.
func (g *Game) enemyTurn(seq uint64) {
	if g.enemy == nil || (g.cancelStale && seq != g.combatSeq) {
		return
	}
	e := g.enemy
	dmg := system.EnemyStrike(e.Attack, g.TotalStat(component.StatDefense))
	g.addMessage(fmt.Sprintf("%s attacks and deals %d damage to %s.", e.Name, dmg, g.hero.Name), component.ToneCombat)
	if system.ApplyDamage(&g.hero.CurrentHP, dmg) {
		g.loseCombat()
		return
	}
	g.persist()
}

func (g *Game) winCombat() {
	e := *g.enemy
	g.enemy = nil
	g.combatSeq++

	g.hero.Gold += e.GoldDrop
	g.run.Kills[e.Name]++
	g.addMessage(fmt.Sprintf("*** You defeated %s! ***", e.Name), component.ToneAccent)
	g.addMessage(fmt.Sprintf("Gained %d EXP and %d Gold.", e.ExpDrop, e.GoldDrop), component.ToneAccent)
	g.cue(audio.CueVictory)

	if g.rng.Float64() < assets.EssenceDropChance {
		g.inventory.Add(assets.MonsterEssence)
		g.addMessage(fmt.Sprintf("%s added to the inventory.", assets.MonsterEssence.Name), component.ToneAccent)
	}
	g.gainExperience(e.ExpDrop)
	g.persist()
}

func (g *Game) loseCombat() {
	e := *g.enemy
	g.enemy = nil
	g.combatSeq++

	lost := g.hero.Gold - g.hero.Gold*9/10
	g.hero.Gold -= lost
	g.hero.Heal(g.totals)
	g.run.Defeats++
	g.addMessage(fmt.Sprintf("*** You were defeated by %s! ***", e.Name), component.ToneCombat)
	g.addMessage(fmt.Sprintf("You lose 10%% of your gold (%d).", lost), component.ToneCombat)
	g.cue(audio.CueDefeat)
	g.persist()
}
