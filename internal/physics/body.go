package physics

// BodyType is a bitmask tag identifying what kind of entity a body
// represents. Handler masks and per-body collision masks are unions of
// these bits.
type BodyType uint8

const (
	BodyPlayer BodyType = 1 << iota
	BodyEnemy
	BodyAsteroid
)

func (t BodyType) String() string {
	switch t {
	case BodyPlayer:
		return "player"
	case BodyEnemy:
		return "enemy"
	case BodyAsteroid:
		return "asteroid"
	}
	return "unknown"
}

// Body is the physical representation of a gameplay entity: a circle with a
// type tag and a collision mask. Handle is the stable gameplay identifier of
// the owning entity (enemy slot index, asteroid id); the simulation never
// interprets it, it only carries it back through collision handlers.
//
// The owning entity keeps the body up to date: the simulation detects
// overlaps, it does not integrate positions.
type Body struct {
	X, Y   float64
	Radius float64
	Type   BodyType
	Mask   BodyType // union of types this body collides with
	Handle int
}

// overlaps reports whether two circles intersect and both masks accept the
// other body's type.
func (b *Body) overlaps(other *Body) bool {
	if b.Mask&other.Type == 0 || other.Mask&b.Type == 0 {
		return false
	}
	dx := b.X - other.X
	dy := b.Y - other.Y
	r := b.Radius + other.Radius
	return dx*dx+dy*dy < r*r
}
