package usecase

import "time"

const (
	// ImportTimeout bounds a single import run including retries.
	ImportTimeout = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPending marks a key whose request is still being served.
	IdempotencyPending = "processing"
)

// Import outcomes reported to ImportMetrics.
const (
	ImportResultImported  = "imported"
	ImportResultDuplicate = "duplicate"
	ImportResultFailed    = "failed"
)

// Update outcomes reported to UpdateMetrics.
const (
	UpdateResultUpdated  = "updated"
	UpdateResultInvalid  = "invalid"
	UpdateResultNotFound = "not_found"
	UpdateResultConflict = "conflict"
	UpdateResultError    = "error"
)
