package component

import "time"

// Tone is the severity tag attached to a log entry; the renderer picks a color from it.
type Tone uint8

const (
	ToneText Tone = iota
	ToneCombat
	ToneAccent
	ToneSoul
	ToneEnergy
	ToneHP
	ToneBorder
)

// LogEntry is one line of the combat log.
type LogEntry struct {
	At   time.Time
	Text string
	Tone Tone
}
