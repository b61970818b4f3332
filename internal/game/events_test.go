package game

import "testing"

func TestEventQueueGrowsByFixedIncrement(t *testing.T) {
	q := newEventQueue(4)

	for i := 0; i < 10; i++ {
		q.push(Event{Kind: EventEnemyHit, Handle: i})
	}

	if q.count != 10 {
		t.Fatalf("count %d after 10 pushes, want 10", q.count)
	}
	// 4 -> 8 -> 12: fixed increments of the base size, not doubling.
	if len(q.events) != 12 {
		t.Fatalf("capacity %d after growth, want 12", len(q.events))
	}
}

func TestEventQueueDrainIsFIFO(t *testing.T) {
	q := newEventQueue(2)
	kinds := []EventKind{EventEnemyHit, EventAsteroidHit, EventEnemyHit}
	for i, k := range kinds {
		q.push(Event{Kind: k, Handle: i})
	}

	var got []Event
	q.drain(func(evt Event) { got = append(got, evt) })

	if len(got) != len(kinds) {
		t.Fatalf("drained %d events, want %d", len(got), len(kinds))
	}
	for i, evt := range got {
		if evt.Kind != kinds[i] || evt.Handle != i {
			t.Fatalf("event %d = %v/%d, want %v/%d", i, evt.Kind, evt.Handle, kinds[i], i)
		}
	}
}

func TestEventQueueDrainResetsCountKeepsCapacity(t *testing.T) {
	q := newEventQueue(2)
	for i := 0; i < 5; i++ {
		q.push(Event{Kind: EventEnemyHit, Handle: i})
	}
	capBefore := len(q.events)

	q.drain(func(Event) {})

	if q.count != 0 {
		t.Fatalf("count %d after drain, want 0", q.count)
	}
	if len(q.events) != capBefore {
		t.Fatalf("capacity changed across drain: %d -> %d", capBefore, len(q.events))
	}

	// Reused storage, same FIFO behavior.
	q.push(Event{Kind: EventAsteroidHit, Handle: 9})
	var drained int
	q.drain(func(evt Event) {
		drained++
		if evt.Handle != 9 {
			t.Fatalf("stale event after reuse: %+v", evt)
		}
	})
	if drained != 1 {
		t.Fatalf("drained %d events after reuse, want 1", drained)
	}
}

func TestEventQueueClampsBaseSize(t *testing.T) {
	for _, base := range []int{0, -5} {
		q := newEventQueue(base)
		if len(q.events) < 1 || q.grow < 1 {
			t.Fatalf("base %d: queue not usable (cap %d, grow %d)", base, len(q.events), q.grow)
		}
		q.push(Event{Kind: EventEnemyHit})
		q.push(Event{Kind: EventEnemyHit})
		if q.count != 2 {
			t.Fatalf("base %d: count %d after 2 pushes", base, q.count)
		}
	}
}

func TestEventKindString(t *testing.T) {
	cases := map[EventKind]string{
		EventPlayerHit:   "player_hit",
		EventEnemyHit:    "enemy_hit",
		EventAsteroidHit: "asteroid_hit",
		EventKind(99):    "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("EventKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
