// Package audio plays game cues on the terminal bell.
package audio

// Cue names a game event that may make a sound.
type Cue uint8

const (
	CueHit Cue = iota
	CueCrit
	CueLevelUp
	CueVictory
	CueDefeat
	CueMission
)

// Beeper rings the terminal bell. tcell.Screen satisfies it.
type Beeper interface {
	Beep() error
}

// Player gates cues behind initialization, mute and volume. The zero value
// is silent until Attach and InitOnce are called.
type Player struct {
	out    Beeper
	ready  bool
	muted  bool
	volume float64
	played int
}

// New returns a Player at the given volume (clamped to [0,1]).
func New(volume float64) *Player {
	p := &Player{}
	p.SetVolume(volume)
	return p
}

// Attach sets the output device.
func (p *Player) Attach(out Beeper) { p.out = out }

// InitOnce enables playback. Further calls do nothing.
func (p *Player) InitOnce() {
	p.ready = true
}

// Ready reports whether InitOnce has been called.
func (p *Player) Ready() bool { return p.ready }

// SetVolume clamps v to [0,1]. Zero volume is silent.
func (p *Player) SetVolume(v float64) {
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	p.volume = v
}

// Volume returns the current volume.
func (p *Player) Volume() float64 { return p.volume }

// ToggleMute flips mute and returns the new state.
func (p *Player) ToggleMute() bool {
	p.muted = !p.muted
	return p.muted
}

// Muted reports the mute state.
func (p *Player) Muted() bool { return p.muted }

// Played counts the cues that reached the output.
func (p *Player) Played() int { return p.played }

// Cue plays c if the player is audible. Output errors are ignored.
func (p *Player) Cue(c Cue) {
	if p == nil || !p.ready || p.muted || p.volume <= 0 || p.out == nil {
		return
	}
	// The bell has one pitch; only the loud cues ring it at low volume.
	if p.volume < 0.5 && c != CueLevelUp && c != CueDefeat {
		return
	}
	if err := p.out.Beep(); err == nil {
		p.played++
	}
}
