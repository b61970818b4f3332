package game

import "github.com/voidexp/yass/internal/physics"

// MaxEnemies is the fixed capacity of the enemy arena. Enemy handles are
// slot indices into it and stay valid for the lifetime of the world, so
// dead enemies are flagged (hitpoints <= 0) rather than removed.
const MaxEnemies = 64

// ActionMask holds the player input action bits for the current frame.
type ActionMask uint8

const (
	ActionMoveLeft ActionMask = 1 << iota
	ActionMoveRight
	ActionShoot
)

// Player is the singleton player entity, owned by the world for its whole
// lifetime. Only the x coordinate is player-movable.
type Player struct {
	Hitpoints float64
	X, Y      float64
	Actions   ActionMask
	Speed     float64 // units/second

	shootCooldown float64
	body          physics.Body
}

// Enemy lives in the world's fixed arena. Velocity is derived by the
// steering pass each frame, not externally supplied.
type Enemy struct {
	X, Y       float64
	XVel, YVel float64
	Hitpoints  float64
	Speed      float64 // max pursuit speed, units/second
	Rot        float64 // facing, radians

	body physics.Body
}

// Alive reports whether the enemy still takes part in the simulation.
func (e *Enemy) Alive() bool {
	return e.Hitpoints > 0
}

// Asteroid is a free-drifting obstacle. Created by level content and handed
// to the world, which takes ownership.
type Asteroid struct {
	ID         int
	X, Y       float64
	XVel, YVel float64
	Rot        float64 // radians, kept within [0, 2π)
	RotSpeed   float64 // radians/second

	body physics.Body
}

// Projectile is a player shot. Once TTL expires it stops integrating but
// stays in the world's list; nothing collides with projectiles in this
// core, so stalled records are inert.
type Projectile struct {
	X, Y       float64
	XVel, YVel float64
	TTL        float64 // seconds
}
