// Package errors defines the sentinel errors shared across the console.
// Collaborator failures are wrapped into one of these at the point of use so
// callers can branch with errors.Is instead of inspecting raw store errors.
package errors

import "errors"

// Session errors.
var (
	// ErrAuth indicates that the supplied admin secret did not match.
	ErrAuth = errors.New("invalid admin password")

	// ErrNotAuthenticated indicates that no admin session is active.
	ErrNotAuthenticated = errors.New("admin session not authenticated")
)

// Domain entity errors represent missing entities in the ledger.
var (
	// ErrNotFound indicates that a mutating operation referenced an investment
	// id that is not in the in-memory ledger.
	ErrNotFound = errors.New("investment not found")
)

// Business logic errors represent rejected operations. Nothing is persisted
// when one of these is returned.
var (
	// ErrValidation indicates malformed input, such as a settlement multiplier
	// that does not parse as a finite number.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition indicates that the requested status transition is
	// not defined for the record's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConfirmationRequired indicates that a destructive operation was
	// requested without the explicit confirmation step.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Store errors represent failures of the key-value store collaborator.
var (
	// ErrStoreUnavailable indicates that the store is absent or unreachable.
	// Load operations degrade to empty results when they see it.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrPersist indicates that a set or delete against the store failed.
	// The in-memory ledger is guaranteed untouched when this is returned.
	ErrPersist = errors.New("failed to persist change, try again")
)

// Data integrity errors describe why a stored record was skipped while loading.
var (
	// ErrRecordAbsent indicates that a listed key had no value by the time it was fetched.
	ErrRecordAbsent = errors.New("record absent")

	// ErrRecordFetch indicates that fetching a listed key failed.
	ErrRecordFetch = errors.New("record fetch failed")

	// ErrRecordCorrupt indicates that a stored value could not be decoded into a record.
	ErrRecordCorrupt = errors.New("record corrupt")
)

// Price feed errors.
var (
	// ErrInvalidPriceSample indicates that the price source returned a missing,
	// non-finite or non-positive value.
	ErrInvalidPriceSample = errors.New("invalid price sample")
)
