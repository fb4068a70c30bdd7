// Package collide implements the swept-segment collision engine:
// given moving gatherers and static objects, it computes the ordered
// list of pickup/interaction events for one tick.
package collide

import (
	"sort"

	"dogworld-server/internal/geom"
)

// Kind tags a static object as loot or an office base.
type Kind int

const (
	Loot Kind = iota
	Base
)

// Gatherer is the swept-segment representation of a moving dog during
// one tick.
type Gatherer struct {
	DogID uint64
	Start geom.Position
	End   geom.Position
	Width float64
}

// Object is a static point (or small rectangle, via its width) tested
// against every gatherer's swept segment.
type Object struct {
	Kind     Kind
	ObjectID uint64
	Position geom.Position
	Width    float64
}

// Event is one (gatherer, object) collision, carrying the time
// parameter t along the gatherer's segment for ordering.
type Event struct {
	GathererIdx int
	ObjectIdx   int
	SqDistance  float64
	T           float64
}

// FindEvents returns every colliding (gatherer, object) pair, sorted
// ascending by T; ties keep insertion order (stable sort).
func FindEvents(gatherers []Gatherer, objects []Object) []Event {
	var events []Event
	for gi, g := range gatherers {
		if g.Start == g.End {
			continue
		}
		for oi, o := range objects {
			sqDist, t, ok := trySweep(g.Start, g.End, o.Position)
			if !ok {
				continue
			}
			limit := g.Width + o.Width
			if sqDist <= limit*limit {
				events = append(events, Event{GathererIdx: gi, ObjectIdx: oi, SqDistance: sqDist, T: t})
			}
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].T < events[j].T })
	return events
}

// trySweep computes the swept-point test of segment a->b against
// point c: u = c-a, v = b-a, t = (u.v)/|v|^2, d^2 = |u|^2 - (u.v)^2/|v|^2.
// ok is false when the segment is degenerate (caller already filters
// this, but the check is kept for direct callers/tests) or when c
// projects outside the segment (t < 0 or t > 1).
func trySweep(a, b, c geom.Position) (sqDistance, t float64, ok bool) {
	vx, vy := b.X-a.X, b.Y-a.Y
	vLenSq := vx*vx + vy*vy
	if vLenSq == 0 {
		return 0, 0, false
	}
	ux, uy := c.X-a.X, c.Y-a.Y
	dot := ux*vx + uy*vy
	t = dot / vLenSq
	if t < 0 || t > 1 {
		return 0, 0, false
	}
	uLenSq := ux*ux + uy*uy
	sqDistance = uLenSq - (dot*dot)/vLenSq
	return sqDistance, t, true
}
