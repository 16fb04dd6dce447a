package model

import "errors"

var (
	// ErrEmptySequence is returned when playback is requested without samples.
	ErrEmptySequence = errors.New("empty sample sequence")
	// ErrInvalidState is returned when mutating a sealed lap or race.
	ErrInvalidState = errors.New("invalid state")
	// ErrNotFound signals an absent record. Absence is a normal condition.
	ErrNotFound = errors.New("record not found")
	// ErrMalformedRecord is returned when a persisted record cannot be used.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidInterval is returned for a sample interval that is not > 0.
	ErrInvalidInterval = errors.New("sample interval must be > 0")
)
