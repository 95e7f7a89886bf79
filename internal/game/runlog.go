package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"blaze-and-steel/internal/component"
)

// RunLog is one line of runs.jsonl, written when a hero is reborn.
type RunLog struct {
	ID            string         `json:"id"`
	Time          time.Time      `json:"time"`
	StartedAt     time.Time      `json:"startedAt"`
	Name          string         `json:"name"`
	Class         string         `json:"class"`
	Level         int            `json:"level"`
	SoulGained    int            `json:"soulGained"`
	EnemiesKilled map[string]int `json:"enemiesKilled"`
	Missions      int            `json:"missions"`
	Defeats       int            `json:"defeats"`
	Gold          int            `json:"gold"`
}

// recordRun appends the finished run. Errors are logged, never returned.
func (g *Game) recordRun(h component.Hero, soulGained int) {
	if g.runLogDir == "" {
		return
	}
	entry := RunLog{
		ID:            g.run.ID,
		Time:          g.now().UTC(),
		StartedAt:     g.run.StartedAt,
		Name:          h.Name,
		Class:         h.ClassName,
		Level:         h.Level,
		SoulGained:    soulGained,
		EnemiesKilled: g.Run().Kills,
		Missions:      g.run.Missions,
		Defeats:       g.run.Defeats,
		Gold:          h.Gold,
	}
	if err := saveRunLog(g.runLogDir, entry); err != nil {
		g.log.Warn("run log write failed", "dir", g.runLogDir, "error", err)
	}
}

// saveRunLog appends log as a single JSON line to dir/runs.jsonl.
func saveRunLog(dir string, log RunLog) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}
	_, err = f.Write(append(data, '\n'))
	return err
}
