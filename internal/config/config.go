package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	World      WorldConfig      `toml:"world"`
	Player     PlayerConfig     `toml:"player"`
	Enemy      EnemyConfig      `toml:"enemy"`
	Asteroid   AsteroidConfig   `toml:"asteroid"`
	Projectile ProjectileConfig `toml:"projectile"`
	Events     EventsConfig     `toml:"events"`
	Scripting  ScriptingConfig  `toml:"scripting"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	Step          float64 `toml:"step"`            // fixed physics step in seconds
	FrameRate     int     `toml:"frame_rate"`      // target frames per second for the driver loop
	MaxFrameDelta float64 `toml:"max_frame_delta"` // clamp for pathological frame deltas (seconds)
}

type WorldConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type PlayerConfig struct {
	Hitpoints float64 `toml:"hitpoints"`
	Speed     float64 `toml:"speed"`     // units/second
	FireRate  float64 `toml:"fire_rate"` // projectiles/second
	Radius    float64 `toml:"radius"`
}

type EnemyConfig struct {
	Hitpoints       float64 `toml:"hitpoints"`
	Speed           float64 `toml:"speed"` // default speed in units/second
	CollisionDamage float64 `toml:"collision_damage"`
	MaxSteering     float64 `toml:"max_steering"` // steering delta clamp per update
	Radius          float64 `toml:"radius"`
}

type AsteroidConfig struct {
	CollisionDamage float64 `toml:"collision_damage"` // reserved: asteroid hits carry no damage yet
	Radius          float64 `toml:"radius"`
}

type ProjectileConfig struct {
	Speed float64 `toml:"speed"` // units/second
	TTL   float64 `toml:"ttl"`   // seconds
}

type EventsConfig struct {
	QueueBaseSize int `toml:"queue_base_size"`
}

type ScriptingConfig struct {
	Tick        float64 `toml:"tick"`         // script tick cadence in seconds
	LevelScript string  `toml:"level_script"` // Lua level script path ("" = none)
	LevelTable  string  `toml:"level_table"`  // YAML level table path ("" = none)
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML config file over the built-in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration. The gameplay values are the
// classic tuning the game shipped with.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Step:          1.0 / 15,
			FrameRate:     60,
			MaxFrameDelta: 0.25,
		},
		World: WorldConfig{
			Width:  800,
			Height: 800,
		},
		Player: PlayerConfig{
			Hitpoints: 100,
			Speed:     200,
			FireRate:  1,
			Radius:    40,
		},
		Enemy: EnemyConfig{
			Hitpoints:       30,
			Speed:           50,
			CollisionDamage: 50,
			MaxSteering:     0.5,
			Radius:          40,
		},
		Asteroid: AsteroidConfig{
			CollisionDamage: 20,
			Radius:          40,
		},
		Projectile: ProjectileConfig{
			Speed: 400,
			TTL:   5,
		},
		Events: EventsConfig{
			QueueBaseSize: 20,
		},
		Scripting: ScriptingConfig{
			Tick: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
