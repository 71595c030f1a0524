package repositories

import "errors"

// Error taxonomy surfaced to handlers. Repositories wrap these with
// fmt.Errorf("...: %w", ...) so callers can classify with errors.Is.
var (
	// ErrNotFound means an identifier did not resolve to an existing record.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a toggle transaction lost a serialization race and
	// exhausted its retries.
	ErrConflict = errors.New("concurrent update conflict")

	// ErrStorageUnavailable means the persistence layer failed; callers get
	// it as-is, without automatic retries.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
