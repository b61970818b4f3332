package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/voidexp/yass/internal/config"
	"github.com/voidexp/yass/internal/data"
	"github.com/voidexp/yass/internal/game"
	"github.com/voidexp/yass/internal/scripting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config (built-in defaults when no file is given)
	cfg := config.Default()
	cfgPath := "config/yass.toml"
	if p := os.Getenv("YASS_CONFIG"); p != "" {
		cfgPath = p
	}
	if _, err := os.Stat(cfgPath); err == nil {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Create the game world
	world, err := game.New(cfg, log)
	if err != nil {
		return fmt.Errorf("world: %w", err)
	}
	defer world.Close()

	// 4. Scripting environment with the world bound in
	engine, err := scripting.New(log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	engine.Bind(world)

	if cfg.Scripting.LevelScript != "" {
		if err := engine.LoadFile(cfg.Scripting.LevelScript); err != nil {
			return fmt.Errorf("level script: %w", err)
		}
		log.Info("level script loaded", zap.String("file", cfg.Scripting.LevelScript))
	}

	// 5. YAML level table: asteroids up front, enemy waves on schedule
	var level *data.LevelTable
	if cfg.Scripting.LevelTable != "" {
		level, err = data.LoadLevelTable(cfg.Scripting.LevelTable)
		if err != nil {
			return fmt.Errorf("level table: %w", err)
		}
		for _, spawn := range level.Asteroids() {
			if _, err := world.AddAsteroid(&game.Asteroid{
				X:        spawn.X,
				Y:        spawn.Y,
				XVel:     spawn.XVel,
				YVel:     spawn.YVel,
				RotSpeed: spawn.RotSpeed,
			}); err != nil {
				return fmt.Errorf("spawn asteroid: %w", err)
			}
		}
		log.Info("level table loaded",
			zap.String("file", cfg.Scripting.LevelTable),
			zap.Int("entries", level.Count()))
	}

	// 6. Frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Simulation.FrameRate))
	defer ticker.Stop()

	log.Info("simulation started",
		zap.Float64("step", cfg.Simulation.Step),
		zap.Int("frame_rate", cfg.Simulation.FrameRate))

	last := time.Now()
	var elapsed, scriptAcc, statusAcc float64
	nextWave := 0

	for {
		select {
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			// Clamp pathological deltas (debugger pause, suspend) so one
			// bad frame can't trigger a catch-up spiral.
			if dt > cfg.Simulation.MaxFrameDelta {
				dt = cfg.Simulation.MaxFrameDelta
			}
			if dt < 0 {
				dt = 0
			}

			world.Update(dt)
			elapsed += dt

			// Timed enemy waves from the level table
			if level != nil {
				waves := level.Waves()
				for nextWave < len(waves) && waves[nextWave].At <= elapsed {
					spawnWave(world, waves[nextWave], log)
					nextWave++
				}
			}

			// Script tick, decoupled from the physics step
			scriptAcc += dt
			if scriptAcc >= cfg.Scripting.Tick {
				scriptAcc -= cfg.Scripting.Tick
				engine.Tick()
			}

			statusAcc += dt
			if statusAcc >= 5 {
				statusAcc = 0
				logStatus(world, log)
			}

			if world.Player().Hitpoints <= 0 {
				log.Info("player destroyed, game over",
					zap.Float64("elapsed", elapsed))
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutting down", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// spawnWave feeds one level-table wave into the world. A full arena is not
// fatal to the level: the rejected spawns are logged and skipped.
func spawnWave(w *game.World, wave data.Wave, log *zap.Logger) {
	for _, spawn := range wave.Enemies {
		if _, err := w.AddEnemy(spawn.X, spawn.Y, spawn.Speed); err != nil {
			log.Warn("enemy spawn rejected",
				zap.Float64("at", wave.At),
				zap.Error(err))
		}
	}
	log.Info("wave spawned",
		zap.Float64("at", wave.At),
		zap.Int("enemies", len(wave.Enemies)))
}

func logStatus(w *game.World, log *zap.Logger) {
	live := 0
	w.EachEnemy(func(_ int, e game.Enemy) {
		if e.Alive() {
			live++
		}
	})
	plr := w.Player()
	log.Info("world status",
		zap.Float64("player_hp", plr.Hitpoints),
		zap.Float64("player_x", plr.X),
		zap.Int("live_enemies", live))
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
