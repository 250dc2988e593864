package model

import "errors"

var (
	// ErrPropertyNotFound is returned when a property id does not exist
	ErrPropertyNotFound = errors.New("property not found")

	// ErrUnavailable is returned when the requested dates are already booked
	ErrUnavailable = errors.New("requested dates are not available")

	// ErrInvertedRange is returned when a range minimum exceeds its maximum
	ErrInvertedRange = errors.New("minimum exceeds maximum")
)
