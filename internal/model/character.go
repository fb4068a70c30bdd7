package model

import "dogworld-server/internal/geom"

// Dog is a session-scoped character. Width is fixed at DogWidth.
type Dog struct {
	ID        uint64
	Name      string
	Position  geom.Position
	Speed     geom.Speed
	Direction Direction
	Score     uint64
	Bagpack   *Bagpack
}

// NewDog builds a dog at the given spawn position with an empty
// bagpack of the given capacity, facing None and at rest.
func NewDog(id uint64, name string, pos geom.Position, bagCapacity int) *Dog {
	return &Dog{
		ID:       id,
		Name:     name,
		Position: pos,
		Bagpack:  NewBagpack(bagCapacity),
	}
}

// SetMove maps a wire letter to a direction and speed, at the given
// per-character speed magnitude. The facing direction is updated
// unless the command is stop (""): a stop command zeroes speed but
// leaves the dog facing the way it was last moving.
func (d *Dog) SetMove(letter string, speed float64) error {
	dir, err := DirectionFromLetter(letter)
	if err != nil {
		return err
	}
	if dir == None {
		d.Speed = geom.Speed{}
		return nil
	}
	dx, dy := dir.Axis()
	d.Speed = geom.Speed{X: dx * speed, Y: dy * speed}
	d.Direction = dir
	return nil
}

// AddScore adds points to the dog's accumulated score.
func (d *Dog) AddScore(points int) {
	if points <= 0 {
		return
	}
	d.Score += uint64(points)
}
