package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/voidexp/yass/internal/game"
)

// Engine wraps a single gopher-lua VM for level-content scripting.
// Single-goroutine access only: scripts run between frame updates, never
// during one.
type Engine struct {
	vm     *lua.LState
	log    *zap.Logger
	tickFn *lua.LFunction
}

// New creates a Lua engine with the standard libraries opened.
func New(log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	e := &Engine{vm: vm, log: log}

	log.Info("script environment initialized",
		zap.String("version", lua.LVAsString(vm.GetGlobal("_VERSION"))))

	return e, nil
}

// Bind installs the `game` table exposing the world's spawn entry points
// to scripts. Must be called before loading level scripts that spawn.
func (e *Engine) Bind(w *game.World) {
	mod := e.vm.NewTable()
	e.vm.SetField(mod, "add_enemy", e.vm.NewFunction(addEnemyFn(w, e.log)))
	e.vm.SetField(mod, "add_asteroid", e.vm.NewFunction(addAsteroidFn(w, e.log)))
	e.vm.SetGlobal("game", mod)
}

// addEnemyFn spawns an enemy: game.add_enemy(x, y, speed) -> handle.
// Returns -1 when the world rejects the spawn (capacity exhausted).
func addEnemyFn(w *game.World, log *zap.Logger) lua.LGFunction {
	return func(ls *lua.LState) int {
		x := float64(ls.CheckNumber(1))
		y := float64(ls.CheckNumber(2))
		speed := float64(ls.CheckNumber(3))
		if ls.GetTop() > 3 {
			ls.ArgError(4, "unexpected argument")
		}

		hnd, err := w.AddEnemy(x, y, speed)
		if err != nil {
			log.Warn("add_enemy rejected", zap.Error(err))
			ls.Push(lua.LNumber(-1))
			return 1
		}
		ls.Push(lua.LNumber(hnd))
		return 1
	}
}

// addAsteroidFn spawns an asteroid:
// game.add_asteroid(x, y, xvel, yvel, rot_spd) -> id.
func addAsteroidFn(w *game.World, log *zap.Logger) lua.LGFunction {
	return func(ls *lua.LState) int {
		x := float64(ls.CheckNumber(1))
		y := float64(ls.CheckNumber(2))
		xvel := float64(ls.CheckNumber(3))
		yvel := float64(ls.CheckNumber(4))
		rotSpd := float64(ls.CheckNumber(5))
		if ls.GetTop() > 5 {
			ls.ArgError(6, "unexpected argument")
		}

		id, err := w.AddAsteroid(&game.Asteroid{
			X:        x,
			Y:        y,
			XVel:     xvel,
			YVel:     yvel,
			RotSpeed: rotSpd,
		})
		if err != nil {
			log.Warn("add_asteroid rejected", zap.Error(err))
			ls.Push(lua.LNumber(-1))
			return 1
		}
		ls.Push(lua.LNumber(id))
		return 1
	}
}

// LoadFile runs a level script. If the script defines a global `tick`
// function it is captured and invoked by Tick from then on.
func (e *Engine) LoadFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("load script %s: %w", path, err)
	}
	if fn, ok := e.vm.GetGlobal("tick").(*lua.LFunction); ok {
		e.tickFn = fn
	}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

// Tick invokes the level script's tick function, if one was defined.
// Script errors are logged, never fatal to the frame loop.
func (e *Engine) Tick() {
	if e.tickFn == nil {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      e.tickFn,
		NRet:    0,
		Protect: true,
	}); err != nil {
		e.log.Error("lua tick error", zap.Error(err))
	}
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
