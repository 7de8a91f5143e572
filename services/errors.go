package services

import (
	"errors"
	"fmt"
)

// Error categories. Every specific error below wraps exactly one of them, so
// callers can match either the category or the specific case with errors.Is.
var (
	ErrValidationFailed         = errors.New("validation failed")
	ErrNotFound                 = errors.New("requested resource not found")
	ErrConflict                 = errors.New("operation conflicts with current state")
	ErrAlreadyGenerated         = errors.New("schedule already generated for this tournament")
	ErrInsufficientParticipants = errors.New("at least 2 active pairs are required to generate a schedule")
)

var (
	ErrTournamentNameRequired = fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
	ErrInvalidCapacity        = fmt.Errorf("%w: max pairs must be a positive integer", ErrValidationFailed)
	ErrInvalidSlug            = fmt.Errorf("%w: slug may only contain letters, digits, '-' and '_'", ErrValidationFailed)
	ErrPairNamesRequired      = fmt.Errorf("%w: both player names are required", ErrValidationFailed)
	ErrInvalidScore           = fmt.Errorf("%w: scores must be non-negative", ErrValidationFailed)

	ErrTournamentNotFound = fmt.Errorf("tournament: %w", ErrNotFound)
	ErrPairNotFound       = fmt.Errorf("pair: %w", ErrNotFound)
	ErrMatchNotFound      = fmt.Errorf("match: %w", ErrNotFound)

	ErrSlugConflict  = fmt.Errorf("%w: tournament slug already exists", ErrConflict)
	ErrPairScheduled = fmt.Errorf("%w: pair already has generated matches, clear the tournament first", ErrConflict)

	ErrStorageNotConfigured = errors.New("snapshot storage is not configured")
)
