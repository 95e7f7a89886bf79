package game

import (
	"context"
	"log/slog"
	"maps"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"blaze-and-steel/assets"
	"blaze-and-steel/internal/audio"
	"blaze-and-steel/internal/component"
	"blaze-and-steel/internal/save"
	"blaze-and-steel/internal/schedule"
	"blaze-and-steel/internal/system"
)

// Phase is the top-level state of a game.
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhaseCreation
	PhasePlaying
)

// maxMessages caps the combat log.
const maxMessages = 50

// tickInterval is the mission cooldown resolution.
const tickInterval = time.Second

// enemyTurnDelay separates the hero's attack from the enemy's reply.
const enemyTurnDelay = time.Second

// Random is the randomness the controller needs. *rand.Rand satisfies it.
type Random interface {
	system.Roller
	Intn(n int) int
}

// Options configures a Game. Zero values give an in-memory game with no
// persistence, a clock-seeded RNG and a fresh scheduler.
type Options struct {
	Context   context.Context
	Saves     *save.Gateway
	Rand      Random
	Scheduler *schedule.Scheduler
	Audio     *audio.Player
	Logger    *slog.Logger
	// CancelStaleCallbacks drops pending mission rewards and enemy turns when
	// the session ends.
	CancelStaleCallbacks bool
	// RunLogDir receives runs.jsonl on rebirth. Empty disables the run log.
	RunLogDir string
	Now       func() time.Time
}

// Game owns the whole game state. Every mutation goes through its methods,
// which recompute derived totals, log and persist. A Game is driven from a
// single goroutine; deferred callbacks run inside Advance.
type Game struct {
	ctx         context.Context
	saves       *save.Gateway
	rng         Random
	sched       *schedule.Scheduler
	audio       *audio.Player
	log         *slog.Logger
	cancelStale bool
	runLogDir   string
	now         func() time.Time

	phase     Phase
	hero      component.Hero
	inventory component.Inventory
	equipment component.Equipment
	totals    component.Totals
	cooldowns map[string]int
	enemy     *component.Enemy
	combatSeq uint64
	messages  []component.LogEntry
	run       save.RunStats

	tick       schedule.Token
	ticking    bool
	saveFailed bool
}

// NewRand returns a generator seeded with seed, or from the clock when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// New returns a game at the main menu with a fresh hero.
func New(opts Options) *Game {
	g := &Game{
		ctx:         opts.Context,
		saves:       opts.Saves,
		rng:         opts.Rand,
		sched:       opts.Scheduler,
		audio:       opts.Audio,
		log:         opts.Logger,
		cancelStale: opts.CancelStaleCallbacks,
		runLogDir:   opts.RunLogDir,
		now:         opts.Now,
	}
	if g.ctx == nil {
		g.ctx = context.Background()
	}
	if g.rng == nil {
		g.rng = NewRand(0)
	}
	if g.sched == nil {
		g.sched = schedule.New()
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	if g.now == nil {
		g.now = time.Now
	}
	g.resetState()
	return g
}

// resetState replaces the aggregate with initial values. Soul is not kept.
func (g *Game) resetState() {
	g.hero = component.NewHero()
	g.inventory = nil
	g.equipment = component.NewEquipment(assets.Slots)
	g.cooldowns = defaultCooldowns()
	g.enemy = nil
	g.run = newRun(g.now())
	g.recalcTotals()
}

func defaultCooldowns() map[string]int {
	cd := make(map[string]int, len(assets.Missions))
	for _, m := range assets.Missions {
		cd[m.Key] = 0
	}
	return cd
}

func newRun(at time.Time) save.RunStats {
	return save.RunStats{ID: uuid.NewString(), StartedAt: at.UTC(), Kills: make(map[string]int)}
}

// endSession stops the tick and, when configured, drops every pending callback.
func (g *Game) endSession() {
	if g.cancelStale {
		g.sched.Reset()
	} else if g.ticking {
		g.sched.Cancel(g.tick)
	}
	g.ticking = false
	g.combatSeq++
}

// startTimers (re)installs the one-second cooldown tick.
func (g *Game) startTimers() {
	if g.ticking {
		g.sched.Cancel(g.tick)
	}
	g.tick = g.sched.Every(tickInterval, g.tickCooldowns)
	g.ticking = true
}

// Advance moves the game clock forward, running due ticks, mission rewards and
// enemy turns. Returns the number of callbacks run.
func (g *Game) Advance(d time.Duration) int {
	return g.sched.Advance(d)
}

// Clock returns the game's virtual time.
func (g *Game) Clock() time.Duration { return g.sched.Now() }

func (g *Game) recalcTotals() {
	g.totals = system.EquipmentTotals(g.equipment)
}

func (g *Game) addMessage(text string, tone component.Tone) {
	g.messages = append(g.messages, component.LogEntry{At: g.now(), Text: text, Tone: tone})
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

func (g *Game) cue(c audio.Cue) {
	if g.audio != nil {
		g.audio.Cue(c)
	}
}

// Phase returns the current top-level state.
func (g *Game) Phase() Phase { return g.phase }

// Hero returns a copy of the hero record.
func (g *Game) Hero() component.Hero { return g.hero }

// Totals returns a copy of the cached equipment bonuses.
func (g *Game) Totals() component.Totals { return maps.Clone(g.totals) }

// TotalStat returns base plus equipment for stat.
func (g *Game) TotalStat(stat component.StatID) int {
	return system.TotalStat(g.hero, g.totals, stat)
}

// MaxHP returns the hero's effective maximum HP.
func (g *Game) MaxHP() int { return g.hero.MaxHP(g.totals) }

// Inventory returns a copy of the carried items.
func (g *Game) Inventory() component.Inventory {
	out := make(component.Inventory, len(g.inventory))
	for i, it := range g.inventory {
		out[i] = it.Clone()
	}
	return out
}

// Stacks returns the inventory grouped by id.
func (g *Game) Stacks() []component.ItemStack { return g.inventory.Stacks() }

// Slots returns the equipment slots in display order.
func (g *Game) Slots() []component.Slot { return g.equipment.Slots() }

// Cooldowns returns the remaining seconds per mission key.
func (g *Game) Cooldowns() map[string]int { return maps.Clone(g.cooldowns) }

// Enemy returns the active enemy, if any.
func (g *Game) Enemy() (component.Enemy, bool) {
	if g.enemy == nil {
		return component.Enemy{}, false
	}
	return *g.enemy, true
}

// InCombat reports whether an enemy is active.
func (g *Game) InCombat() bool { return g.enemy != nil }

// EnemyHPPercent returns the active enemy's HP as 0-100, or 0 when idle.
func (g *Game) EnemyHPPercent() int {
	if g.enemy == nil {
		return 0
	}
	return g.enemy.HPPercent()
}

// Messages returns the combat log, oldest first.
func (g *Game) Messages() []component.LogEntry {
	return append([]component.LogEntry(nil), g.messages...)
}

// Run returns the statistics of the current run.
func (g *Game) Run() save.RunStats {
	r := g.run
	r.Kills = maps.Clone(g.run.Kills)
	return r
}
