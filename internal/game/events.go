package game

// EventKind tags a gameplay event produced by the collision bridge.
type EventKind uint8

const (
	EventPlayerHit EventKind = iota + 1 // reserved, not produced yet
	EventEnemyHit
	EventAsteroidHit
)

func (k EventKind) String() string {
	switch k {
	case EventPlayerHit:
		return "player_hit"
	case EventEnemyHit:
		return "enemy_hit"
	case EventAsteroidHit:
		return "asteroid_hit"
	}
	return "unknown"
}

// Event is a deferred gameplay consequence of a collision: what happened
// and the handle of the non-player entity involved. Events are produced
// only inside collision callbacks and consumed by the drain phase that
// follows the physics steps, never persisted across frames.
type Event struct {
	Kind   EventKind
	Handle int
}

// eventQueue is an append-only buffer drained once per frame. Capacity
// grows by fixed increments and is never given back; after a drain the
// live count resets to zero and the storage is reused.
type eventQueue struct {
	events []Event
	count  int
	grow   int
}

func newEventQueue(base int) *eventQueue {
	if base < 1 {
		base = 1
	}
	return &eventQueue{
		events: make([]Event, base),
		grow:   base,
	}
}

// push appends an event in production order, extending the buffer when
// full. Events must never be dropped: lost damage events would
// desynchronize gameplay accounting.
func (q *eventQueue) push(evt Event) {
	if q.count == len(q.events) {
		bigger := make([]Event, len(q.events)+q.grow)
		copy(bigger, q.events)
		q.events = bigger
	}
	q.events[q.count] = evt
	q.count++
}

// drain applies fn to every live event in FIFO production order, then
// resets the live count. Capacity is retained.
func (q *eventQueue) drain(fn func(Event)) {
	for i := 0; i < q.count; i++ {
		fn(q.events[i])
	}
	q.count = 0
}
