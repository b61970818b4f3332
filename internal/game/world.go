package game

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/voidexp/yass/internal/config"
	"github.com/voidexp/yass/internal/physics"
)

// ErrEnemyCapacity is returned by AddEnemy when the enemy arena is full.
// The caller (level content) decides whether that is fatal.
var ErrEnemyCapacity = errors.New("game: enemy capacity reached")

// World owns every gameplay entity, the event queue and the collision
// engine. All access happens on the single simulation goroutine: Update
// runs to completion before the renderer or level scripts read or mutate
// anything.
type World struct {
	cfg *config.Config
	log *zap.Logger

	player      Player
	enemies     [MaxEnemies]Enemy
	enemyCount  int
	asteroids   []*Asteroid
	projectiles []*Projectile

	sim   *physics.Simulation
	queue *eventQueue

	// accumulator carries leftover frame time between updates so the
	// collision engine only ever sees fixed-size steps.
	accumulator float64
}

// New creates a world: collision engine, handlers for the two
// player-collision pairs, event queue, and the player with its registered
// body. On any failure the partially built world is torn down.
func New(cfg *config.Config, log *zap.Logger) (*World, error) {
	w := &World{
		cfg:         cfg,
		log:         log,
		asteroids:   make([]*Asteroid, 0, 16),
		projectiles: make([]*Projectile, 0, 32),
		sim:         physics.NewSimulation(log),
		queue:       newEventQueue(cfg.Events.QueueBaseSize),
	}

	masks := []physics.BodyType{
		physics.BodyPlayer | physics.BodyEnemy,
		physics.BodyPlayer | physics.BodyAsteroid,
	}
	for _, mask := range masks {
		if err := w.sim.AddHandler(w.onPlayerCollision, mask); err != nil {
			w.Close()
			return nil, fmt.Errorf("register collision handler: %w", err)
		}
	}

	w.player = Player{
		Hitpoints: cfg.Player.Hitpoints,
		X:         0,
		Y:         cfg.World.Height/2 - 50,
		Speed:     cfg.Player.Speed,
	}
	w.player.body = physics.Body{
		X:      w.player.X,
		Y:      w.player.Y,
		Radius: cfg.Player.Radius,
		Type:   physics.BodyPlayer,
		Mask:   physics.BodyEnemy | physics.BodyAsteroid,
		Handle: -1,
	}
	if err := w.sim.AddBody(&w.player.body); err != nil {
		w.Close()
		return nil, fmt.Errorf("register player body: %w", err)
	}

	return w, nil
}

// Close releases the world. Safe to call on a partially constructed world.
func (w *World) Close() {
	if w == nil {
		return
	}
	if w.sim != nil {
		w.sim.Close()
	}
	w.asteroids = nil
	w.projectiles = nil
	w.queue = nil
}

// onPlayerCollision bridges collision engine callbacks into gameplay
// events. It only enqueues: the body set must not change while the engine
// is iterating, so all consequences are deferred to the next update's
// drain phase. Pairs not involving the player are passed over.
func (w *World) onPlayerCollision(a, b *physics.Body) bool {
	if a.Type != physics.BodyPlayer {
		a, b = b, a
	}
	if a.Type != physics.BodyPlayer {
		return true
	}

	switch b.Type {
	case physics.BodyEnemy:
		w.queue.push(Event{Kind: EventEnemyHit, Handle: b.Handle})
	case physics.BodyAsteroid:
		w.queue.push(Event{Kind: EventAsteroidHit, Handle: b.Handle})
	}
	return true
}

// AddEnemy spawns an enemy at the given position. Returns the enemy's
// handle: its slot index in the arena, stable for the world's lifetime.
// A non-positive speed selects the configured default.
func (w *World) AddEnemy(x, y, speed float64) (int, error) {
	if w.enemyCount >= MaxEnemies {
		return -1, ErrEnemyCapacity
	}
	if speed <= 0 {
		speed = w.cfg.Enemy.Speed
	}

	idx := w.enemyCount
	w.enemies[idx] = Enemy{
		X:         x,
		Y:         y,
		Hitpoints: w.cfg.Enemy.Hitpoints,
		Speed:     speed,
	}
	w.enemies[idx].body = physics.Body{
		X:      x,
		Y:      y,
		Radius: w.cfg.Enemy.Radius,
		Type:   physics.BodyEnemy,
		Mask:   physics.BodyPlayer,
		Handle: idx,
	}
	if err := w.sim.AddBody(&w.enemies[idx].body); err != nil {
		// Roll the slot back so a failed registration can't leave a
		// zombie enemy with no collision presence.
		w.enemies[idx] = Enemy{}
		return -1, fmt.Errorf("register enemy body: %w", err)
	}
	w.enemyCount++

	return idx, nil
}

// AddAsteroid takes ownership of an asteroid, assigns its id and registers
// its body. On failure ownership stays with the caller.
func (w *World) AddAsteroid(ast *Asteroid) (int, error) {
	ast.ID = len(w.asteroids)
	ast.body = physics.Body{
		X:      ast.X,
		Y:      ast.Y,
		Radius: w.cfg.Asteroid.Radius,
		Type:   physics.BodyAsteroid,
		Mask:   physics.BodyPlayer,
		Handle: ast.ID,
	}
	if err := w.sim.AddBody(&ast.body); err != nil {
		return -1, fmt.Errorf("register asteroid body: %w", err)
	}
	w.asteroids = append(w.asteroids, ast)
	return ast.ID, nil
}

// AddProjectile takes ownership of a projectile.
func (w *World) AddProjectile(prj *Projectile) {
	w.projectiles = append(w.projectiles, prj)
}

// SetPlayerActions replaces the player's input action bits for subsequent
// updates.
func (w *World) SetPlayerActions(actions ActionMask) {
	w.player.Actions = actions
}

// Update advances the world by dt seconds of wall time. Order per frame:
// fixed-step physics (which may enqueue events), event drain, player
// input, enemy steering, asteroid and projectile integration. Damage is
// always applied before any movement of the same frame, and the queue is
// empty by the time Update returns.
func (w *World) Update(dt float64) {
	// Emit zero or more fixed steps; the remainder carries over so no
	// frame time is ever discarded.
	w.accumulator += dt
	for w.accumulator >= w.cfg.Simulation.Step {
		w.sim.Step(w.cfg.Simulation.Step)
		w.accumulator -= w.cfg.Simulation.Step
	}

	w.drainEvents()
	w.updatePlayer(dt)
	w.updateEnemies(dt)
	w.updateAsteroids(dt)
	w.updateProjectiles(dt)
}

// drainEvents applies the collision events enqueued by this frame's
// physics steps, in production order. This runs outside the collision
// engine's iteration, so removing bodies is safe here.
func (w *World) drainEvents() {
	w.queue.drain(func(evt Event) {
		switch evt.Kind {
		case EventEnemyHit:
			if evt.Handle < 0 || evt.Handle >= w.enemyCount {
				w.log.Warn("enemy hit event with bad handle", zap.Int("handle", evt.Handle))
				return
			}
			enemy := &w.enemies[evt.Handle]
			w.player.Hitpoints -= w.cfg.Enemy.CollisionDamage
			enemy.Hitpoints = 0
			if err := w.sim.RemoveBody(&enemy.body); err != nil {
				w.log.Error("remove enemy body", zap.Int("handle", evt.Handle), zap.Error(err))
			}
			w.log.Info("player hit by enemy",
				zap.Int("enemy", evt.Handle),
				zap.Float64("hitpoints", w.player.Hitpoints))
		case EventAsteroidHit:
			// No damage effect yet; asteroid hits are only reported.
			w.log.Info("player hit by asteroid", zap.Int("asteroid", evt.Handle))
		}
	})
}

func (w *World) updatePlayer(dt float64) {
	plr := &w.player

	// Left wins when both movement bits are set.
	distance := dt * plr.Speed
	if plr.Actions&ActionMoveLeft != 0 {
		plr.X -= distance
	} else if plr.Actions&ActionMoveRight != 0 {
		plr.X += distance
	}
	plr.body.X = plr.X

	// The cooldown runs down regardless of input so the next shot after a
	// pause fires immediately.
	plr.shootCooldown -= dt
	if plr.Actions&ActionShoot != 0 && plr.shootCooldown <= 0 {
		plr.shootCooldown = 1.0 / w.cfg.Player.FireRate
		w.AddProjectile(&Projectile{
			X:    plr.X,
			Y:    plr.Y,
			YVel: -w.cfg.Projectile.Speed,
			TTL:  w.cfg.Projectile.TTL,
		})
	}
}

// updateEnemies runs the steering pass: each live enemy turns toward the
// player, bounded by the per-update steering clamp, and never exceeds its
// own max speed. Dead enemies are skipped entirely.
func (w *World) updateEnemies(dt float64) {
	for i := 0; i < w.enemyCount; i++ {
		enemy := &w.enemies[i]
		if !enemy.Alive() {
			continue
		}

		// Desired velocity: straight at the player, at full speed.
		dirX, dirY := norm(w.player.X-enemy.X, w.player.Y-enemy.Y)
		desiredX := dirX * enemy.Speed
		desiredY := dirY * enemy.Speed

		// Steering delta, clamped to the turn limit.
		steerX, steerY := clampMagnitude(
			desiredX-enemy.XVel,
			desiredY-enemy.YVel,
			w.cfg.Enemy.MaxSteering,
		)

		enemy.XVel, enemy.YVel = clampMagnitude(
			enemy.XVel+steerX,
			enemy.YVel+steerY,
			enemy.Speed,
		)

		enemy.Rot = math.Pi/2 - math.Atan2(enemy.YVel, enemy.XVel)

		enemy.X += enemy.XVel * dt
		enemy.Y += enemy.YVel * dt
		enemy.body.X = enemy.X
		enemy.body.Y = enemy.Y
	}
}

func (w *World) updateAsteroids(dt float64) {
	for _, ast := range w.asteroids {
		ast.X += ast.XVel * dt
		ast.Y += ast.YVel * dt
		ast.Rot += ast.RotSpeed * dt
		if ast.Rot >= 2*math.Pi {
			ast.Rot -= 2 * math.Pi
		}
		ast.body.X = ast.X
		ast.body.Y = ast.Y
	}
}

func (w *World) updateProjectiles(dt float64) {
	for _, prj := range w.projectiles {
		if prj.TTL <= 0 {
			continue
		}
		prj.X += prj.XVel * dt
		prj.Y += prj.YVel * dt
		prj.TTL -= dt
	}
}

// Player returns a snapshot of the player for the render/UI layer.
func (w *World) Player() Player {
	return w.player
}

// EnemyCount returns the number of occupied enemy slots, dead ones
// included.
func (w *World) EnemyCount() int {
	return w.enemyCount
}

// EachEnemy calls fn for every occupied enemy slot with its handle. The
// callback receives a copy; the world grants no mutation path.
func (w *World) EachEnemy(fn func(handle int, e Enemy)) {
	for i := 0; i < w.enemyCount; i++ {
		fn(i, w.enemies[i])
	}
}

// EachAsteroid calls fn for every asteroid.
func (w *World) EachAsteroid(fn func(a Asteroid)) {
	for _, ast := range w.asteroids {
		fn(*ast)
	}
}

// EachProjectile calls fn for every projectile, expired ones included.
func (w *World) EachProjectile(fn func(p Projectile)) {
	for _, prj := range w.projectiles {
		fn(*prj)
	}
}

// norm returns the unit vector of (x, y), or zero for a zero vector.
func norm(x, y float64) (float64, float64) {
	mag := math.Hypot(x, y)
	if mag == 0 {
		return 0, 0
	}
	return x / mag, y / mag
}

// clampMagnitude scales (x, y) down to the given magnitude if it exceeds
// it.
func clampMagnitude(x, y, max float64) (float64, float64) {
	mag := math.Hypot(x, y)
	if mag <= max || mag == 0 {
		return x, y
	}
	scale := max / mag
	return x * scale, y * scale
}
