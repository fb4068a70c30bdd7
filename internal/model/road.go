package model

import "dogworld-server/internal/geom"

// RoadWidth is the full width of a road; a dog or office is considered
// on the road if its perpendicular distance from the segment is within
// RoadWidth/2.
const RoadWidth = 0.8

// OfficeWidth is the collision width of an office base.
const OfficeWidth = 0.5

// DogWidth is the collision width of a dog gatherer.
const DogWidth = 0.6

// LootWidth is the collision width of a loot instance: a point.
const LootWidth = 0.0

// RoadOrientation distinguishes a horizontal (constant y) road from a
// vertical (constant x) one.
type RoadOrientation int

const (
	Horizontal RoadOrientation = iota
	Vertical
)

// Road is an axis-aligned segment. Start and End are kept in the order
// given at construction; callers needing the ordered span use Bounds.
type Road struct {
	Orientation RoadOrientation
	Start       geom.Position
	End         geom.Position
}

// NewHorizontalRoad builds a road at constant y from x0 to x1.
func NewHorizontalRoad(x0, x1, y float64) Road {
	return Road{Orientation: Horizontal, Start: geom.Position{X: x0, Y: y}, End: geom.Position{X: x1, Y: y}}
}

// NewVerticalRoad builds a road at constant x from y0 to y1.
func NewVerticalRoad(x, y0, y1 float64) Road {
	return Road{Orientation: Vertical, Start: geom.Position{X: x, Y: y0}, End: geom.Position{X: x, Y: y1}}
}

// Bounds returns the road's primary-axis span as (lo, hi), and the
// constant cross-axis coordinate.
func (r Road) Bounds() (lo, hi, fixed float64) {
	if r.Orientation == Horizontal {
		lo, hi = r.Start.X, r.End.X
		fixed = r.Start.Y
	} else {
		lo, hi = r.Start.Y, r.End.Y
		fixed = r.Start.X
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, fixed
}
