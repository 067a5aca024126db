package usage

import "errors"

var (
	// ErrCapacityExhausted indicates an atomic reservation was rejected
	// because the account is at its limit.
	ErrCapacityExhausted = errors.New("usage capacity exhausted")

	// ErrCounterUnavailable indicates the backing store could not be reached.
	ErrCounterUnavailable = errors.New("usage counter unavailable")
)
