package save

import (
	"encoding/json"
	"fmt"
	"time"

	"blaze-and-steel/internal/component"
)

// SlotRecord is one persisted equipment slot.
type SlotRecord struct {
	Name        string          `json:"name"`
	Icon        string          `json:"icon"`
	CurrentItem *component.Item `json:"currentItem"`
}

// RunStats accumulates per-run statistics between rebirths.
type RunStats struct {
	ID        string         `json:"id"`
	StartedAt time.Time      `json:"startedAt"`
	Kills     map[string]int `json:"kills,omitempty"` // monster name -> count
	Missions  int            `json:"missions"`
	Defeats   int            `json:"defeats"`
}

// Snapshot is the persisted game state. Field names are the save format.
type Snapshot struct {
	Hero             component.Hero        `json:"hero"`
	Equipment        map[string]SlotRecord `json:"equipment"`
	Inventory        component.Inventory   `json:"inventory"`
	MissionCooldowns map[string]int        `json:"missionCooldowns"`
	Run              *RunStats             `json:"run,omitempty"`
}

// Encode serializes s. Nil collections are written as empty ones.
func Encode(s Snapshot) (string, error) {
	if s.Equipment == nil {
		s.Equipment = map[string]SlotRecord{}
	}
	if s.Inventory == nil {
		s.Inventory = component.Inventory{}
	}
	if s.MissionCooldowns == nil {
		s.MissionCooldowns = map[string]int{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}

// Decode parses a snapshot. A blob without a hero record is corrupt.
func Decode(blob string) (Snapshot, error) {
	var wire struct {
		Snapshot
		Hero *component.Hero `json:"hero"`
	}
	if err := json.Unmarshal([]byte(blob), &wire); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if wire.Hero == nil {
		return Snapshot{}, fmt.Errorf("%w: missing hero", ErrCorruptSnapshot)
	}
	s := wire.Snapshot
	s.Hero = *wire.Hero
	return s, nil
}
