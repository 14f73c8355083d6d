package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/trxrecords/internal/domain"
	"github.com/iho/trxrecords/internal/infrastructure/postgres/generated"
	"github.com/iho/trxrecords/internal/usecase"
)

// RecordRepository implements usecase.RecordRepository.
type RecordRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return newRecordRepository(pool)
}

func newRecordRepository(db generated.DBTX) *RecordRepository {
	return &RecordRepository{
		db:      db,
		queries: generated.New(db),
	}
}

// CreateBatch bulk-inserts records with COPY inside tx.
func (r *RecordRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, records []*domain.TransactionRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	queries, err := queriesFor(tx)
	if err != nil {
		return 0, err
	}

	params := make([]generated.CreateTransactionRecordsParams, 0, len(records))
	for _, record := range records {
		p, err := recordToCopyParams(record)
		if err != nil {
			return 0, err
		}
		params = append(params, p)
	}

	n, err := queries.CreateTransactionRecords(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("copy transaction records: %w", err)
	}

	return n, nil
}

// GetByID retrieves a record by ID.
func (r *RecordRepository) GetByID(ctx context.Context, id int64) (*domain.TransactionRecord, error) {
	row, err := r.queries.GetTransactionRecordByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return rowToRecord(row), nil
}

// UpdateDescription sets the description and bumps the version when the
// stored version equals expectedVersion.
func (r *RecordRepository) UpdateDescription(ctx context.Context, id int64, description string, expectedVersion int64) (*domain.TransactionRecord, error) {
	row, err := r.queries.UpdateTransactionRecordDescription(ctx, generated.UpdateTransactionRecordDescriptionParams{
		Description: description,
		ID:          id,
		Version:     expectedVersion,
	})
	if err == nil {
		return rowToRecord(row), nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// No row matched: either the record is gone or its version moved on.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}

	return nil, fmt.Errorf("%w: record %d no longer at version %d", domain.ErrVersionConflict, id, expectedVersion)
}

// Search returns records matching filter ordered by ID.
func (r *RecordRepository) Search(ctx context.Context, filter domain.RecordFilter, limit, offset int) ([]*domain.TransactionRecord, error) {
	query, args, err := searchQuery(filter, limit, offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*domain.TransactionRecord{}
	for rows.Next() {
		var i generated.TransactionRecord
		if err := rows.Scan(
			&i.ID,
			&i.AccountNumber,
			&i.TrxAmount,
			&i.Description,
			&i.TrxDate,
			&i.TrxTime,
			&i.CustomerID,
			&i.Version,
		); err != nil {
			return nil, err
		}
		records = append(records, rowToRecord(i))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Count returns the number of records matching filter.
func (r *RecordRepository) Count(ctx context.Context, filter domain.RecordFilter) (int64, error) {
	query, args, err := countQuery(filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}
