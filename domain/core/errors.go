package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// State errors
	ErrInvalidState = errors.New("invalid random state")

	// Sampling errors
	ErrSampleTooLarge      = errors.New("sample larger than population")
	ErrInsufficientWeight  = errors.New("fewer elements with positive weight than requested")
	ErrInvalidWeights      = errors.New("invalid weights")
	ErrInvalidShape        = errors.New("invalid array dimensions")
	ErrEmptyPopulation     = errors.New("empty population")
	ErrUnsupportedArgument = errors.New("unsupported argument")
)

// Error constructors with context
func NewInvalidStateError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, reason)
}

func NewSampleSizeError(requested, available int) error {
	return fmt.Errorf("%w: requested %d of %d", ErrSampleTooLarge, requested, available)
}

func NewShapeError(dims string) error {
	return fmt.Errorf("%w: %s", ErrInvalidShape, dims)
}

// Error checking helpers
func IsStateError(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

func IsSampleSizeError(err error) bool {
	return errors.Is(err, ErrSampleTooLarge) ||
		errors.Is(err, ErrInsufficientWeight) ||
		errors.Is(err, ErrEmptyPopulation)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidWeights) ||
		errors.Is(err, ErrInvalidShape) ||
		errors.Is(err, ErrUnsupportedArgument)
}
