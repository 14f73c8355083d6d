package usecase

import (
	"context"
	"errors"

	"github.com/iho/trxrecords/internal/domain"
)

// RecordUseCase handles searching and updating transaction records.
type RecordUseCase struct {
	recordRepo  RecordRepository
	maxPageSize int
	metrics     UpdateMetrics
}

// NewRecordUseCase creates a new RecordUseCase. metrics may be nil.
func NewRecordUseCase(recordRepo RecordRepository, maxPageSize int, metrics UpdateMetrics) *RecordUseCase {
	if maxPageSize <= 0 {
		maxPageSize = domain.MaxPageSize
	}

	return &RecordUseCase{
		recordRepo:  recordRepo,
		maxPageSize: maxPageSize,
		metrics:     metrics,
	}
}

// SearchInput represents input for searching records.
type SearchInput struct {
	Filter domain.RecordFilter
	Page   int
	Size   int
}

// Search returns one page of records matching every supplied filter.
func (uc *RecordUseCase) Search(ctx context.Context, input SearchInput) (*domain.RecordPage, error) {
	page, size, err := domain.ValidatePagination(input.Page, input.Size, uc.maxPageSize)
	if err != nil {
		return nil, err
	}

	filter := normalizeFilter(input.Filter)

	total, err := uc.recordRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	records := []*domain.TransactionRecord{}
	if offset := page * size; int64(offset) < total {
		records, err = uc.recordRepo.Search(ctx, filter, size, offset)
		if err != nil {
			return nil, err
		}
	}

	return &domain.RecordPage{
		Records:       records,
		Page:          page,
		Size:          size,
		TotalElements: total,
	}, nil
}

// GetRecord retrieves a record by ID.
func (uc *RecordUseCase) GetRecord(ctx context.Context, id int64) (*domain.TransactionRecord, error) {
	if id <= 0 {
		return nil, domain.ErrRecordNotFound
	}

	return uc.recordRepo.GetByID(ctx, id)
}

// UpdateDescriptionInput represents input for updating a record description.
type UpdateDescriptionInput struct {
	ID          int64
	Description string
}

// UpdateDescription replaces the description of a record using optimistic
// locking on its version. A concurrent writer wins and this call fails with
// domain.ErrVersionConflict.
func (uc *RecordUseCase) UpdateDescription(ctx context.Context, input UpdateDescriptionInput) (*domain.TransactionRecord, error) {
	record, err := uc.updateDescription(ctx, input)
	uc.observe(err)

	return record, err
}

func (uc *RecordUseCase) updateDescription(ctx context.Context, input UpdateDescriptionInput) (*domain.TransactionRecord, error) {
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	current, err := uc.GetRecord(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return uc.recordRepo.UpdateDescription(ctx, current.ID, input.Description, current.Version)
}

func (uc *RecordUseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}

	switch {
	case err == nil:
		uc.metrics.ObserveUpdate(UpdateResultUpdated)
	case errors.Is(err, domain.ErrInvalidDescription):
		uc.metrics.ObserveUpdate(UpdateResultInvalid)
	case errors.Is(err, domain.ErrRecordNotFound):
		uc.metrics.ObserveUpdate(UpdateResultNotFound)
	case errors.Is(err, domain.ErrVersionConflict):
		uc.metrics.ObserveUpdate(UpdateResultConflict)
	default:
		uc.metrics.ObserveUpdate(UpdateResultError)
	}
}

func normalizeFilter(f domain.RecordFilter) domain.RecordFilter {
	return domain.RecordFilter{
		AccountNumber: nonEmpty(f.AccountNumber),
		CustomerID:    nonEmpty(f.CustomerID),
		Description:   nonEmpty(f.Description),
		TrxDate:       f.TrxDate,
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}

	return s
}
