package loot

import (
	"testing"
	"time"
)

type fixedRNG struct{ v float64 }

func (f fixedRNG) Float64() float64 { return f.v }

func TestGenerateNeverExceedsShortage(t *testing.T) {
	cases := []struct {
		name        string
		currentLoot int
		looters     int
		rng         float64
	}{
		{"no shortage", 5, 5, 1.0},
		{"max rng full shortage", 0, 4, 1.0},
		{"mid rng", 1, 4, 0.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := New(Config{Period: time.Second, Probability: 0.5}, fixedRNG{c.rng})
			n := g.Generate(10*time.Second, c.currentLoot, c.looters)

			shortage := c.looters - c.currentLoot
			if shortage < 0 {
				shortage = 0
			}
			if n > shortage {
				t.Errorf("Generate returned %d, exceeds shortage %d", n, shortage)
			}
			if n < 0 {
				t.Errorf("Generate returned negative count %d", n)
			}
		})
	}
}

func TestGenerateResetsAccumulatorOnSpawn(t *testing.T) {
	g := New(Config{Period: time.Second, Probability: 1.0}, fixedRNG{1.0})

	n := g.Generate(10*time.Second, 0, 4)
	if n == 0 {
		t.Fatal("expected a spawn with probability 1 and max rng sample")
	}
	if g.timeWithoutLoot != 0 {
		t.Errorf("expected accumulator reset after a spawn, got %v", g.timeWithoutLoot)
	}
}

func TestGenerateZeroPeriodNeverSpawns(t *testing.T) {
	g := New(Config{Period: 0, Probability: 1.0}, fixedRNG{1.0})
	if n := g.Generate(time.Second, 0, 4); n != 0 {
		t.Errorf("expected 0 with zero period, got %d", n)
	}
}
