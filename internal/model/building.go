package model

import "dogworld-server/internal/geom"

// Building is opaque to the simulation: it is part of the map
// description but never tested against for collisions or motion.
type Building struct {
	Rect geom.Rectangle
}

// Office is a named collection base. Width is fixed at OfficeWidth.
type Office struct {
	ID       string
	Position geom.Position
	Offset   geom.Offset
}
