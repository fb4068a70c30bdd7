package model

import (
	"fmt"
	"math"

	"dogworld-server/internal/geom"
)

// Map is an immutable-after-load map topology: roads, buildings,
// offices, and the precomputed position-to-road index.
type Map struct {
	ID        string
	Name      string
	DogSpeed  float64
	BagCap    int
	MaxPlayers int

	roads      []Road
	buildings  []Building
	offices    []Office
	officeByID map[string]int
	roadIndex  map[geom.GridKey]int // index into roads
}

// NewMap constructs an empty map with the given id, name, and per-map
// simulation defaults; roads, buildings, and offices are added
// afterward via AddRoad/AddBuilding/AddOffice.
func NewMap(id, name string, dogSpeed float64, bagCap, maxPlayers int) *Map {
	return &Map{
		ID:         id,
		Name:       name,
		DogSpeed:   dogSpeed,
		BagCap:     bagCap,
		MaxPlayers: maxPlayers,
		officeByID: make(map[string]int),
		roadIndex:  make(map[geom.GridKey]int),
	}
}

// AddRoad appends a road and extends the position index: every integer
// coordinate along the road's primary axis, inclusive, maps to it.
func (m *Map) AddRoad(r Road) {
	idx := len(m.roads)
	m.roads = append(m.roads, r)

	lo, hi, fixed := r.Bounds()
	iLo := int64(math.Round(lo))
	iHi := int64(math.Round(hi))
	fixedI := int64(math.Round(fixed))
	for i := iLo; i <= iHi; i++ {
		var key geom.GridKey
		if r.Orientation == Horizontal {
			key = geom.GridKey{X: i, Y: fixedI}
		} else {
			key = geom.GridKey{X: fixedI, Y: i}
		}
		m.roadIndex[key] = idx
	}
}

// AddBuilding appends a building; buildings carry no index.
func (m *Map) AddBuilding(b Building) {
	m.buildings = append(m.buildings, b)
}

// AddOffice appends an office. Returns ErrDuplicateOffice if the id is
// already present. The id check happens before the append so the
// offices slice never carries a pushed-then-rolled-back entry, which
// is the Go equivalent of the source's push-then-rollback-on-index-
// failure shape (a Go map insert cannot itself fail).
func (m *Map) AddOffice(o Office) error {
	if _, exists := m.officeByID[o.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateOffice, o.ID)
	}
	m.offices = append(m.offices, o)
	m.officeByID[o.ID] = len(m.offices) - 1
	return nil
}

// Roads returns the map's roads in insertion order.
func (m *Map) Roads() []Road { return m.roads }

// Buildings returns the map's buildings in insertion order.
func (m *Map) Buildings() []Building { return m.buildings }

// Offices returns the map's offices in insertion order.
func (m *Map) Offices() []Office { return m.offices }

// RoadAt returns the road containing p, snapping p to its nearest
// integer grid cell and consulting the precomputed index.
func (m *Map) RoadAt(p geom.Position) (Road, bool) {
	idx, ok := m.roadIndex[geom.Snap(p)]
	if !ok {
		return Road{}, false
	}
	return m.roads[idx], true
}
