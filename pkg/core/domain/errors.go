package domain

import "errors"

var (
	// ErrInvalidURL is returned when the submitted URL has no scheme or host.
	ErrInvalidURL = errors.New("invalid URL format")
	// ErrNotFound is returned when no link exists for a short id.
	ErrNotFound = errors.New("short URL not found")
	// ErrShortIDTaken is returned by the store when an insert hits the unique
	// constraint on short_id. Callers regenerate and retry.
	ErrShortIDTaken = errors.New("short id already taken")
)
