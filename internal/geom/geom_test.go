package geom

import "testing"

func TestSnapRoundsToNearestCell(t *testing.T) {
	cases := []struct {
		in   Position
		want GridKey
	}{
		{Position{X: 0, Y: 0}, GridKey{0, 0}},
		{Position{X: 2.4, Y: 2.5}, GridKey{2, 3}},
		{Position{X: -2.4, Y: -2.6}, GridKey{-2, -3}},
	}
	for _, c := range cases {
		if got := Snap(c.in); got != c.want {
			t.Errorf("Snap(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v,%v,%v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}
