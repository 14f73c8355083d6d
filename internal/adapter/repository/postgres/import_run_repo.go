package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/trxrecords/internal/domain"
	"github.com/iho/trxrecords/internal/infrastructure/postgres/generated"
	"github.com/iho/trxrecords/internal/usecase"
)

const checksumConstraint = "uq_import_runs_checksum"

// ImportRunRepository implements usecase.ImportRunRepository.
type ImportRunRepository struct{}

// NewImportRunRepository creates a new ImportRunRepository.
func NewImportRunRepository() *ImportRunRepository {
	return &ImportRunRepository{}
}

// Create stores the audit row for a finished import. A deduplicated run whose
// checksum another transaction already committed fails with
// domain.ErrDuplicateImport.
func (r *ImportRunRepository) Create(ctx context.Context, tx usecase.Transaction, run *domain.ImportRun) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}

	err = queries.CreateImportRun(ctx, generated.CreateImportRunParams{
		ID:           run.ID,
		Source:       run.Source,
		Checksum:     run.Checksum,
		RecordCount:  int32(run.RecordCount),
		ImportedAt:   timeToPgTimestamptz(run.ImportedAt),
		Deduplicated: run.Deduplicated,
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation && pgErr.ConstraintName == checksumConstraint {
		return fmt.Errorf("%w: checksum %s", domain.ErrDuplicateImport, run.Checksum)
	}

	return err
}

// ExistsByChecksum reports whether a source with this checksum was imported before.
func (r *ImportRunRepository) ExistsByChecksum(ctx context.Context, tx usecase.Transaction, checksum string) (bool, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return false, err
	}

	return queries.ImportRunExistsByChecksum(ctx, checksum)
}
