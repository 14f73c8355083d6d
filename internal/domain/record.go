package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is a single imported bank transaction.
// Description is the only field that changes after import.
type TransactionRecord struct {
	ID            int64
	AccountNumber string
	TrxAmount     decimal.Decimal
	Description   string
	TrxDate       Date
	TrxTime       TimeOfDay
	CustomerID    string
	Version       int64
}

// RecordFilter holds the optional search criteria. A nil field imposes no constraint.
type RecordFilter struct {
	AccountNumber *string
	CustomerID    *string
	Description   *string
	TrxDate       *Date
}

// RecordPage is one page of search results.
type RecordPage struct {
	Records       []*TransactionRecord
	Page          int
	Size          int
	TotalElements int64
}

// TotalPages returns the number of pages needed to cover TotalElements.
func (p RecordPage) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}

	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// ImportRun records one successful import of a source.
type ImportRun struct {
	ID           string
	Source       string
	Checksum     string
	RecordCount  int
	ImportedAt   time.Time
	// Deduplicated runs claim their checksum; at most one may exist per checksum.
	Deduplicated bool
}
