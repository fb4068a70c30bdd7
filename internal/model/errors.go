package model

import "errors"

var (
	// ErrDuplicateOffice is returned when an office id already exists on a map.
	ErrDuplicateOffice = errors.New("model: duplicate office id")
	// ErrInvalidDirection is returned by DirectionFromLetter for any string
	// outside the five defined letters.
	ErrInvalidDirection = errors.New("model: invalid direction letter")
)
