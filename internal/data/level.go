package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnemySpawn describes one enemy to spawn in a wave.
type EnemySpawn struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Speed float64 `yaml:"speed"` // 0 = world default
}

// Wave is a timed batch of enemy spawns.
type Wave struct {
	At      float64      `yaml:"at"` // seconds after level start
	Enemies []EnemySpawn `yaml:"enemies"`
}

// AsteroidSpawn describes one asteroid placed at level start.
type AsteroidSpawn struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	XVel     float64 `yaml:"xvel"`
	YVel     float64 `yaml:"yvel"`
	RotSpeed float64 `yaml:"rot_speed"` // radians/second
}

type levelFile struct {
	Waves     []Wave          `yaml:"waves"`
	Asteroids []AsteroidSpawn `yaml:"asteroids"`
}

// LevelTable holds the spawn content of one level, waves ordered as
// authored.
type LevelTable struct {
	waves     []Wave
	asteroids []AsteroidSpawn
}

// Waves returns the timed enemy waves.
func (t *LevelTable) Waves() []Wave {
	return t.waves
}

// Asteroids returns the asteroids placed at level start.
func (t *LevelTable) Asteroids() []AsteroidSpawn {
	return t.asteroids
}

// Count returns the total number of spawn entries in the table.
func (t *LevelTable) Count() int {
	n := len(t.asteroids)
	for _, w := range t.waves {
		n += len(w.Enemies)
	}
	return n
}

// LoadLevelTable loads level spawn content from a YAML file.
func LoadLevelTable(path string) (*LevelTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level table: %w", err)
	}
	var f levelFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse level table: %w", err)
	}
	return &LevelTable{
		waves:     f.Waves,
		asteroids: f.Asteroids,
	}, nil
}
