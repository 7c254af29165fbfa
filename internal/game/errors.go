package game

import "errors"

// Caller-contract violations. The presentation layer should only offer
// actions that are valid for the current phase; these are returned when it
// does not.
var (
	ErrWrongPhase   = errors.New("action not valid in current phase")
	ErrPlayerCount  = errors.New("player count out of range")
	ErrTargetScore  = errors.New("target score must be positive")
	ErrEmptyClue    = errors.New("clue must not be empty")
	ErrInvalidMode  = errors.New("mode must be competitive or party")
	ErrEmptyCatalog = errors.New("card catalog is empty")
	ErrNoZones      = errors.New("scoring zone table is empty")
)
