// Package motion implements road-constrained position integration and
// the spawn-position rule shared by dogs and loot.
package motion

import (
	"math/rand"

	"dogworld-server/internal/geom"
	"dogworld-server/internal/model"
)

// RoadLookup is the subset of *model.Map motion needs, so tests can
// stub it without constructing a full map.
type RoadLookup interface {
	RoadAt(p geom.Position) (model.Road, bool)
}

// Integrate advances a dog from pos at speed over deltaMs milliseconds
// and clamps the result to the road it started on. ok is false when
// the dog's starting position resolves to no road at all — a defensive
// fallback for an upstream invariant violation; the caller should log
// this and not crash.
//
// reachedEnd reports whether the clamp bit on the road's primary
// (travel) axis, meaning the dog reached the segment's end; the
// session, not this function, decides whether to zero the dog's speed
// in response.
func Integrate(lookup RoadLookup, pos geom.Position, speed geom.Speed, deltaMs int64) (newPos geom.Position, reachedEnd bool, ok bool) {
	road, ok := lookup.RoadAt(pos)
	if !ok {
		return geom.Position{}, false, false
	}

	dt := float64(deltaMs) / 1000
	proposed := geom.Position{X: pos.X + speed.X*dt, Y: pos.Y + speed.Y*dt}

	lo, hi, fixed := road.Bounds()
	halfWidth := model.RoadWidth / 2

	if road.Orientation == model.Horizontal {
		clampedX := geom.Clamp(proposed.X, lo, hi)
		clampedY := geom.Clamp(proposed.Y, fixed-halfWidth, fixed+halfWidth)
		reachedEnd = clampedX != proposed.X
		return geom.Position{X: clampedX, Y: clampedY}, reachedEnd, true
	}

	// Vertical: primary axis is y, cross axis is x. The source clamps
	// new.y to road.end.x here, a typo; the correct bound is road.end.y,
	// i.e. the (lo, hi) pair already computed from the y span.
	clampedY := geom.Clamp(proposed.Y, lo, hi)
	clampedX := geom.Clamp(proposed.X, fixed-halfWidth, fixed+halfWidth)
	reachedEnd = clampedY != proposed.Y
	return geom.Position{X: clampedX, Y: clampedY}, reachedEnd, true
}

// SpawnPosition picks a spawn point: a uniformly random point along a
// uniformly random road when random is true, or the first road's start
// otherwise. The
// spec's open question on loot spawn directs always choosing the
// random branch for loot; dog spawn honors the session's
// randomize_spawn config instead.
func SpawnPosition(m *model.Map, rng *rand.Rand, random bool) geom.Position {
	roads := m.Roads()
	if len(roads) == 0 {
		return geom.Position{}
	}
	if !random {
		return roads[0].Start
	}
	road := roads[rng.Intn(len(roads))]
	lo, hi, fixed := road.Bounds()
	t := rng.Float64()
	primary := lo + t*(hi-lo)
	if road.Orientation == model.Horizontal {
		return geom.Position{X: primary, Y: fixed}
	}
	return geom.Position{X: fixed, Y: primary}
}
