package domain

import "errors"

var (
	// ErrCityNotFound is returned when a normalized city name is absent from the registry.
	ErrCityNotFound = errors.New("city not found")

	// ErrEmptyCityName is returned when the city name is blank after normalization.
	ErrEmptyCityName = errors.New("city name is required")

	// ErrInvalidTransition is returned when a quiz transition is not allowed
	// in the session's current state.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrInvalidChoice is returned when an answer index is outside the
	// current question's options.
	ErrInvalidChoice = errors.New("invalid answer choice")

	// ErrInvalidStep is returned for narrative turns numbered below 1.
	ErrInvalidStep = errors.New("narrative step must be at least 1")
)
