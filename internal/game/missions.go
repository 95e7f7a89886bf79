package game

import (
	"fmt"
	"time"

	"blaze-and-steel/assets"
	"blaze-and-steel/internal/audio"
	"blaze-and-steel/internal/component"
)

// StartMission puts the mission on cooldown and schedules its single reward
// for when the duration elapses.
func (g *Game) StartMission(key string) error {
	m, ok := assets.MissionByKey(key)
	if !ok {
		return g.reject(ErrInvalidAction, nil, fmt.Sprintf("Unknown mission %q.", key))
	}
	return g.startMission(m)
}

func (g *Game) startMission(m component.Mission) error {
	if m.Duration <= 0 {
		return g.reject(ErrInvalidAction, nil, fmt.Sprintf("%s has no duration.", m.Name))
	}
	if left := g.cooldowns[m.Key]; left > 0 {
		g.addMessage(fmt.Sprintf("%s is still on cooldown (%ds).", m.Name, left), component.ToneEnergy)
		return fmt.Errorf("%w: %s on cooldown for %ds", ErrInsufficientResource, m.Key, left)
	}

	g.cooldowns[m.Key] = m.Duration
	g.addMessage(fmt.Sprintf("%s started. Duration: %d seconds.", m.Name, m.Duration), component.ToneEnergy)
	g.persist()
	g.sched.After(time.Duration(m.Duration)*time.Second, func() { g.completeMission(m) })
	return nil
}

func (g *Game) completeMission(m component.Mission) {
	g.hero.Gold += m.GoldReward
	g.run.Missions++
	g.addMessage(fmt.Sprintf("%s complete! Gained %d EXP and %d Gold.", m.Name, m.ExpReward, m.GoldReward), component.ToneAccent)
	g.cue(audio.CueMission)
	g.gainExperience(m.ExpReward)
	g.persist()
}

// tickCooldowns runs once a second while a session is active.
func (g *Game) tickCooldowns() {
	for k, v := range g.cooldowns {
		if v > 0 {
			g.cooldowns[k] = v - 1
		}
	}
	g.persist()
}

// MissionReady reports whether the mission can be started now.
func (g *Game) MissionReady(key string) bool {
	return g.cooldowns[key] <= 0
}
