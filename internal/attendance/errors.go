package attendance

import "errors"

// Lifecycle errors. All are sentinels so calling layers can map them to
// distinct responses with errors.Is.
var (
	// ErrAlreadyCheckedIn: today's record already has a check-in time.
	ErrAlreadyCheckedIn = errors.New("already checked in today")

	// ErrCheckInNotFound: check-out attempted with no prior check-in today.
	ErrCheckInNotFound = errors.New("check-in not found")

	// ErrAlreadyCheckedOut: check-out attempted twice.
	ErrAlreadyCheckedOut = errors.New("already checked out")

	// ErrStorageUnavailable: the record store is unreachable or timed out.
	// Retryable by the caller with backoff; the core never retries.
	ErrStorageUnavailable = errors.New("attendance store unavailable")

	// ErrInvalidTimestampOrder: checkout timestamp precedes check-in.
	// Rejected, never clamped.
	ErrInvalidTimestampOrder = errors.New("check-out time precedes check-in time")
)
