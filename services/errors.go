package services

import "errors"

var (
	// ErrNotFound covers both "does not exist" and "belongs to someone
	// else" so existence never leaks across users.
	ErrNotFound = errors.New("not found")

	// ErrFoodNotFound is a client error: the referenced food id does not
	// resolve for the caller.
	ErrFoodNotFound = errors.New("food not found")

	// ErrInvalid marks caller-supplied values outside accepted ranges.
	// Nothing is written once it is returned.
	ErrInvalid = errors.New("invalid input")

	// ErrEmailTaken is returned on registration with a known email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUpstreamUnavailable marks a failed call to the external model API.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
