package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/trxrecords/internal/domain"
)

// ImportUseCase loads pipe-delimited records from a source into the store.
type ImportUseCase struct {
	txManager     TransactionManager
	recordRepo    RecordRepository
	importRunRepo ImportRunRepository
	retrier       Retrier
	idGen         IDGenerator
	metrics       ImportMetrics
	logger        zerolog.Logger
	deduplicate   bool
	now           func() time.Time
}

// ImportConfig holds optional ImportUseCase settings.
type ImportConfig struct {
	// Deduplicate skips sources whose checksum was already imported.
	Deduplicate bool
	Metrics     ImportMetrics
	Logger      zerolog.Logger
}

// NewImportUseCase creates a new ImportUseCase.
func NewImportUseCase(
	txManager TransactionManager,
	recordRepo RecordRepository,
	importRunRepo ImportRunRepository,
	retrier Retrier,
	idGen IDGenerator,
	cfg ImportConfig,
) *ImportUseCase {
	return &ImportUseCase{
		txManager:     txManager,
		recordRepo:    recordRepo,
		importRunRepo: importRunRepo,
		retrier:       retrier,
		idGen:         idGen,
		metrics:       cfg.Metrics,
		logger:        cfg.Logger,
		deduplicate:   cfg.Deduplicate,
		now:           time.Now,
	}
}

// ImportResult describes a finished import.
type ImportResult struct {
	RunID      string
	Source     string
	Checksum   string
	Records    int
	Duplicate  bool
	ArchivedTo string
}

// Import parses the whole source and stores every record in one transaction.
// A malformed line or a storage failure leaves the store untouched.
func (uc *ImportUseCase) Import(ctx context.Context, src ImportSource) (*ImportResult, error) {
	start := uc.now()

	result, err := uc.importSource(ctx, src)
	if err != nil {
		uc.observe(ImportResultFailed, 0, start)
		return nil, fmt.Errorf("import %s: %w", src.Name(), err)
	}

	if result.Duplicate {
		uc.observe(ImportResultDuplicate, 0, start)
	} else {
		uc.observe(ImportResultImported, result.Records, start)
	}

	return result, nil
}

func (uc *ImportUseCase) importSource(ctx context.Context, src ImportSource) (*ImportResult, error) {
	records, checksum, err := uc.parse(ctx, src)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Source:   src.Name(),
		Checksum: checksum,
	}

	ctx, cancel := context.WithTimeout(ctx, ImportTimeout)
	defer cancel()

	err = uc.retrier.Retry(ctx, func() error {
		return uc.store(ctx, src, records, result)
	})
	if err != nil {
		return nil, err
	}

	if result.Duplicate {
		uc.logger.Info().
			Str("source", result.Source).
			Str("checksum", checksum).
			Msg("import source already imported, skipping (set IMPORT_DEDUPLICATE=false to re-import)")
	} else {
		uc.logger.Info().
			Str("source", result.Source).
			Int("records", result.Records).
			Str("run_id", result.RunID).
			Msg("imported transaction records")
	}

	archivedTo, err := src.Archive(ctx)
	if err != nil {
		return nil, fmt.Errorf("archive source: %w", err)
	}

	if archivedTo != "" {
		result.ArchivedTo = archivedTo
		uc.logger.Info().
			Str("source", result.Source).
			Str("archived_to", archivedTo).
			Msg("archived import source")
	}

	return result, nil
}

func (uc *ImportUseCase) parse(ctx context.Context, src ImportSource) ([]*domain.TransactionRecord, string, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrImportSourceRead, err)
	}
	defer rc.Close()

	hash := sha256.New()

	records, err := domain.ParseRecords(io.TeeReader(rc, hash))
	if err != nil {
		return nil, "", err
	}

	return records, hex.EncodeToString(hash.Sum(nil)), nil
}

func (uc *ImportUseCase) store(ctx context.Context, src ImportSource, records []*domain.TransactionRecord, result *ImportResult) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if uc.deduplicate {
		exists, err := uc.importRunRepo.ExistsByChecksum(ctx, tx, result.Checksum)
		if err != nil {
			return err
		}

		if exists {
			result.Duplicate = true
			return nil
		}
	}

	n, err := uc.recordRepo.CreateBatch(ctx, tx, records)
	if err != nil {
		return err
	}

	run := &domain.ImportRun{
		ID:           uc.idGen.Generate(),
		Source:       src.Name(),
		Checksum:     result.Checksum,
		RecordCount:  int(n),
		ImportedAt:   uc.now().UTC(),
		Deduplicated: uc.deduplicate,
	}

	if err := uc.importRunRepo.Create(ctx, tx, run); err != nil {
		// A concurrent import of the same content committed first. The deferred
		// rollback discards this batch.
		if uc.deduplicate && errors.Is(err, domain.ErrDuplicateImport) {
			result.Duplicate = true
			return nil
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	result.Duplicate = false
	result.RunID = run.ID
	result.Records = int(n)

	return nil
}

func (uc *ImportUseCase) observe(result string, records int, start time.Time) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.ObserveImport(result, records, uc.now().Sub(start))
}
