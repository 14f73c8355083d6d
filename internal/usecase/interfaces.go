package usecase

import (
	"context"
	"io"
	"time"

	"github.com/iho/trxrecords/internal/domain"
)

// RecordRepository defines data access for transaction records.
type RecordRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, records []*domain.TransactionRecord) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.TransactionRecord, error)
	// UpdateDescription persists the description only when the stored version
	// still equals expectedVersion. It returns domain.ErrVersionConflict otherwise.
	UpdateDescription(ctx context.Context, id int64, description string, expectedVersion int64) (*domain.TransactionRecord, error)
	Search(ctx context.Context, filter domain.RecordFilter, limit, offset int) ([]*domain.TransactionRecord, error)
	Count(ctx context.Context, filter domain.RecordFilter) (int64, error)
}

// ImportRunRepository defines data access for import audit rows.
type ImportRunRepository interface {
	Create(ctx context.Context, tx Transaction, run *domain.ImportRun) error
	ExistsByChecksum(ctx context.Context, tx Transaction, checksum string) (bool, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// ImportSource is a readable origin of pipe-delimited records.
type ImportSource interface {
	// Name identifies the source in logs and audit rows.
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
	// Archive moves the source out of the way after a successful import.
	// Sources that cannot be archived return nil.
	Archive(ctx context.Context) (string, error)
}

// ImportMetrics observes import outcomes.
type ImportMetrics interface {
	ObserveImport(result string, records int, duration time.Duration)
}

// UpdateMetrics observes description update outcomes.
type UpdateMetrics interface {
	ObserveUpdate(result string)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key whose request did not complete successfully.
	Release(ctx context.Context, key string) error
}
