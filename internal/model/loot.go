package model

import "dogworld-server/internal/geom"

// LootKind is a loot prototype in a map's registry: a name, an integer
// type index, and a point value. Key and Wallet in the source are both
// just LootKind values with different Type/Name; there is no behavior
// difference to model as separate types.
type LootKind struct {
	Name  string
	Type  int
	Value int
}

// Loot is a spawned instance of a LootKind, with an id unique within
// its session and a position on the map.
type Loot struct {
	ID       uint64
	Type     int
	Value    int
	Name     string
	Position geom.Position
}
