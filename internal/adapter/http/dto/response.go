package dto

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/trxrecords/internal/domain"
)

// RecordResponse represents a transaction record in API responses.
type RecordResponse struct {
	ID            int64            `json:"id"`
	AccountNumber string           `json:"accountNumber"`
	TrxAmount     string           `json:"trxAmount"`
	Description   string           `json:"description"`
	TrxDate       domain.Date      `json:"trxDate"`
	TrxTime       domain.TimeOfDay `json:"trxTime"`
	CustomerID    string           `json:"customerId"`
}

// RecordFromDomain converts a domain record to response.
func RecordFromDomain(r *domain.TransactionRecord) *RecordResponse {
	return &RecordResponse{
		ID:            r.ID,
		AccountNumber: r.AccountNumber,
		TrxAmount:     FormatAmount(r.TrxAmount),
		Description:   r.Description,
		TrxDate:       r.TrxDate,
		TrxTime:       r.TrxTime,
		CustomerID:    r.CustomerID,
	}
}

// FormatAmount renders d with the scale it was stored with, so 123.00 stays
// 123.00 rather than collapsing to 123.
func FormatAmount(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}

	return d.String()
}

// RecordsFromDomain converts domain records to responses.
func RecordsFromDomain(records []*domain.TransactionRecord) []*RecordResponse {
	result := make([]*RecordResponse, len(records))
	for i, r := range records {
		result[i] = RecordFromDomain(r)
	}
	return result
}

// PageResponse is one page of records.
type PageResponse struct {
	Content       []*RecordResponse `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
}

// PageFromDomain converts a domain page to response.
func PageFromDomain(p *domain.RecordPage) *PageResponse {
	return &PageResponse{
		Content:       RecordsFromDomain(p.Records),
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages(),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// WriteError writes the error envelope for r with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      r.URL.Path,
	})
}
