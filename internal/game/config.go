package game

import "time"

// SessionConfig holds the per-map defaults a new session is seeded
// from: character speed, bag capacity, max players, and whether dog
// spawn position is randomized.
type SessionConfig struct {
	CharactersSpeed float64
	BagCapacity     int
	MaxPlayers      int
	RandomizeSpawn  bool
}

// LootGenConfig is the loot generator tuning, shared by every session
// (the period/probability are process-wide config, but each session
// gets its own generator instance and accumulator — see DESIGN.md).
type LootGenConfig struct {
	Period      time.Duration
	Probability float64
}
