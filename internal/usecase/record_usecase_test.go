package usecase_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/trxrecords/internal/domain"
	"github.com/iho/trxrecords/internal/usecase"
	"github.com/iho/trxrecords/internal/usecase/mocks"
)

func strPtr(s string) *string { return &s }

// described returns the record as the store holds it after a successful update.
func described(r *domain.TransactionRecord, description string) *domain.TransactionRecord {
	updated := *r
	updated.Description = description
	updated.Version++
	return &updated
}

func TestRecordUseCase_Search(t *testing.T) {
	tests := []struct {
		name       string
		input      usecase.SearchInput
		setupMocks func(repo *mocks.MockRecordRepository)
		wantPage   int
		wantSize   int
		wantCount  int
		wantErr    error
	}{
		{
			name:  "no filters returns first page",
			input: usecase.SearchInput{Page: 0, Size: 10},
			setupMocks: func(repo *mocks.MockRecordRepository) {
				repo.EXPECT().Count(gomock.Any(), domain.RecordFilter{}).Return(int64(2), nil)
				repo.EXPECT().Search(gomock.Any(), domain.RecordFilter{}, 10, 0).Return([]*domain.TransactionRecord{
					{ID: 1}, {ID: 2},
				}, nil)
			},
			wantPage:  0,
			wantSize:  10,
			wantCount: 2,
		},
		{
			name: "empty strings are treated as absent",
			input: usecase.SearchInput{
				Filter: domain.RecordFilter{AccountNumber: strPtr(""), Description: strPtr("transfer")},
				Page:   1,
				Size:   5,
			},
			setupMocks: func(repo *mocks.MockRecordRepository) {
				want := domain.RecordFilter{Description: strPtr("transfer")}
				repo.EXPECT().Count(gomock.Any(), want).Return(int64(7), nil)
				repo.EXPECT().Search(gomock.Any(), want, 5, 5).Return([]*domain.TransactionRecord{{ID: 6}, {ID: 7}}, nil)
			},
			wantPage:  1,
			wantSize:  5,
			wantCount: 2,
		},
		{
			name:  "size above maximum is clamped",
			input: usecase.SearchInput{Page: 0, Size: 1000},
			setupMocks: func(repo *mocks.MockRecordRepository) {
				repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(1), nil)
				repo.EXPECT().Search(gomock.Any(), gomock.Any(), 50, 0).Return([]*domain.TransactionRecord{{ID: 1}}, nil)
			},
			wantPage:  0,
			wantSize:  50,
			wantCount: 1,
		},
		{
			name:  "page past the end skips the query",
			input: usecase.SearchInput{Page: 3, Size: 10},
			setupMocks: func(repo *mocks.MockRecordRepository) {
				repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(12), nil)
			},
			wantPage:  3,
			wantSize:  10,
			wantCount: 0,
		},
		{
			name:       "negative page rejected",
			input:      usecase.SearchInput{Page: -1, Size: 10},
			setupMocks: func(repo *mocks.MockRecordRepository) {},
			wantErr:    domain.ErrInvalidPagination,
		},
		{
			name:       "page whose offset overflows rejected",
			input:      usecase.SearchInput{Page: math.MaxInt/50 + 1, Size: 50},
			setupMocks: func(repo *mocks.MockRecordRepository) {},
			wantErr:    domain.ErrInvalidPagination,
		},
		{
			name:       "zero size rejected",
			input:      usecase.SearchInput{Page: 0, Size: 0},
			setupMocks: func(repo *mocks.MockRecordRepository) {},
			wantErr:    domain.ErrInvalidPagination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockRecordRepository(ctrl)
			tt.setupMocks(repo)

			uc := usecase.NewRecordUseCase(repo, 50, nil)
			page, err := uc.Search(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if page.Page != tt.wantPage || page.Size != tt.wantSize {
				t.Fatalf("expected page=%d size=%d, got page=%d size=%d", tt.wantPage, tt.wantSize, page.Page, page.Size)
			}

			if len(page.Records) != tt.wantCount {
				t.Fatalf("expected %d records, got %d", tt.wantCount, len(page.Records))
			}
		})
	}
}

func TestRecordUseCase_GetRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRecordRepository(ctrl)
	repo.EXPECT().GetByID(gomock.Any(), int64(5)).Return(&domain.TransactionRecord{ID: 5}, nil)

	uc := usecase.NewRecordUseCase(repo, 0, nil)

	record, err := uc.GetRecord(context.Background(), 5)
	if err != nil || record.ID != 5 {
		t.Fatalf("unexpected result: record=%+v err=%v", record, err)
	}

	if _, err := uc.GetRecord(context.Background(), 0); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for non-positive id, got %v", err)
	}
}

func TestRecordUseCase_UpdateDescription(t *testing.T) {
	current := &domain.TransactionRecord{
		ID:            1,
		AccountNumber: "8872838283",
		TrxAmount:     decimal.RequireFromString("123.00"),
		Description:   "FUND TRANSFER",
		Version:       2,
	}

	tests := []struct {
		name        string
		input       usecase.UpdateDescriptionInput
		setupMocks  func(repo *mocks.MockRecordRepository)
		wantResult  string
		wantErr     error
		wantVersion int64
	}{
		{
			name:  "successful update increments version",
			input: usecase.UpdateDescriptionInput{ID: 1, Description: "RENT"},
			setupMocks: func(repo *mocks.MockRecordRepository) {
				repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(current, nil)
				repo.EXPECT().UpdateDescription(gomock.Any(), int64(1), "RENT", int64(2)).
					Return(described(current, "RENT"), nil)
			},
			wantResult:  usecase.UpdateResultUpdated,
			wantVersion: 3,
		},
		{
			name:  "unknown id",
			input: usecase.UpdateDescriptionInput{ID: 99, Description: "RENT"},
			setupMocks: func(repo *mocks.MockRecordRepository) {
				repo.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, domain.ErrRecordNotFound)
			},
			wantResult: usecase.UpdateResultNotFound,
			wantErr:    domain.ErrRecordNotFound,
		},
		{
			name:  "stale version",
			input: usecase.UpdateDescriptionInput{ID: 1, Description: "RENT"},
			setupMocks: func(repo *mocks.MockRecordRepository) {
				repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(current, nil)
				repo.EXPECT().UpdateDescription(gomock.Any(), int64(1), "RENT", int64(2)).
					Return(nil, domain.ErrVersionConflict)
			},
			wantResult: usecase.UpdateResultConflict,
			wantErr:    domain.ErrVersionConflict,
		},
		{
			name:       "blank description",
			input:      usecase.UpdateDescriptionInput{ID: 1, Description: "  "},
			setupMocks: func(repo *mocks.MockRecordRepository) {},
			wantResult: usecase.UpdateResultInvalid,
			wantErr:    domain.ErrInvalidDescription,
		},
		{
			name:  "storage failure",
			input: usecase.UpdateDescriptionInput{ID: 1, Description: "RENT"},
			setupMocks: func(repo *mocks.MockRecordRepository) {
				repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(nil, errors.New("connection reset"))
			},
			wantResult: usecase.UpdateResultError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockRecordRepository(ctrl)
			metrics := mocks.NewMockUpdateMetrics(ctrl)
			tt.setupMocks(repo)
			metrics.EXPECT().ObserveUpdate(tt.wantResult)

			uc := usecase.NewRecordUseCase(repo, 0, metrics)
			record, err := uc.UpdateDescription(context.Background(), tt.input)

			if tt.wantResult == usecase.UpdateResultError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if record.Description != tt.input.Description || record.Version != tt.wantVersion {
				t.Fatalf("unexpected record %+v", record)
			}
		})
	}
}

// casRepository stores a single record and applies version compare-and-swap.
// GetByID blocks until every reader has loaded the record so that concurrent
// callers all observe the same version.
type casRepository struct {
	usecase.RecordRepository

	mu      sync.Mutex
	record  domain.TransactionRecord
	readers sync.WaitGroup
}

func (r *casRepository) GetByID(ctx context.Context, id int64) (*domain.TransactionRecord, error) {
	r.mu.Lock()
	snapshot := r.record
	r.mu.Unlock()

	r.readers.Done()
	r.readers.Wait()

	if snapshot.ID != id {
		return nil, domain.ErrRecordNotFound
	}

	return &snapshot, nil
}

func (r *casRepository) UpdateDescription(ctx context.Context, id int64, description string, expectedVersion int64) (*domain.TransactionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.record.Version != expectedVersion {
		return nil, domain.ErrVersionConflict
	}

	r.record = *described(&r.record, description)
	updated := r.record

	return &updated, nil
}

func TestRecordUseCase_ConcurrentUpdatesExactlyOneWins(t *testing.T) {
	repo := &casRepository{record: domain.TransactionRecord{ID: 1, Description: "original", Version: 4}}
	repo.readers.Add(2)

	uc := usecase.NewRecordUseCase(repo, 0, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, desc := range []string{"first", "second"} {
		wg.Add(1)
		go func(i int, desc string) {
			defer wg.Done()
			_, errs[i] = uc.UpdateDescription(context.Background(), usecase.UpdateDescriptionInput{ID: 1, Description: desc})
		}(i, desc)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrVersionConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected one success and one conflict, got %d and %d", successes, conflicts)
	}

	if repo.record.Version != 5 {
		t.Fatalf("expected version 5, got %d", repo.record.Version)
	}
}
