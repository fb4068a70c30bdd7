// Package loot implements the time-driven loot spawn budget: given an
// elapsed duration and the current loot/looter counts, it decides how
// many new loot items a session should spawn this tick.
package loot

import (
	"math"
	"time"
)

// RNG is the uniform-sample source; tests inject a deterministic one.
type RNG interface {
	// Float64 returns a uniform sample in [0, 1).
	Float64() float64
}

// Config is the generator's tuning: the period that time without loot
// is measured in, and the base probability. After one period without
// loot the spawn factor equals Probability; it approaches 1 as time
// without loot grows.
type Config struct {
	Period      time.Duration
	Probability float64
}

// Generator holds the per-session time_without_loot accumulator. It is
// not a process-wide singleton: each session owns one, so that the
// accumulator reflects only that session's history.
type Generator struct {
	cfg             Config
	rng             RNG
	timeWithoutLoot time.Duration
}

// New builds a generator with the given config and RNG.
func New(cfg Config, rng RNG) *Generator {
	return &Generator{cfg: cfg, rng: rng}
}

// Generate returns the non-negative count of new loot to spawn, given
// the elapsed delta, the loot currently on the map, and the number of
// dogs ("looters"). The result never exceeds max(0, looters-loot).
func (g *Generator) Generate(delta time.Duration, currentLoot, looters int) int {
	g.timeWithoutLoot += delta

	shortage := looters - currentLoot
	if shortage < 0 {
		shortage = 0
	}
	if shortage == 0 || g.cfg.Period <= 0 {
		return 0
	}

	ratio := float64(g.timeWithoutLoot) / float64(g.cfg.Period)
	p := (1 - math.Pow(1-g.cfg.Probability, ratio)) * g.rng.Float64()
	p = clamp01(p)

	n := int(math.Round(float64(shortage) * p))
	if n > shortage {
		n = shortage
	}
	if n > 0 {
		g.timeWithoutLoot = 0
	}
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
