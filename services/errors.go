package services

import "errors"

// Error taxonomy surfaced by the scheduling services. Handlers map these to
// HTTP statuses; everything else is a persistence fault surfaced verbatim.
var (
	// ErrInvalidInput flags malformed dates/times, empty appointment sets,
	// or references that do not exist for the tenant. Not retryable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSlotUnavailable flags a requested start time that is not among the
	// freshly computed slots. The caller must pick a new slot.
	ErrSlotUnavailable = errors.New("slot is no longer available")

	// ErrLockUnavailable flags a lock acquisition timeout. The caller may
	// retry with backoff.
	ErrLockUnavailable = errors.New("worker agenda is locked, try again")
)
