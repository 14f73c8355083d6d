package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/trxrecords/internal/adapter/http/dto"
	"github.com/iho/trxrecords/internal/domain"
	"github.com/iho/trxrecords/internal/usecase"
)

// maxBodyBytes bounds update request bodies.
const maxBodyBytes = 64 << 10

// RecordService defines the behavior needed by RecordHandler.
type RecordService interface {
	Search(ctx context.Context, input usecase.SearchInput) (*domain.RecordPage, error)
	GetRecord(ctx context.Context, id int64) (*domain.TransactionRecord, error)
	UpdateDescription(ctx context.Context, input usecase.UpdateDescriptionInput) (*domain.TransactionRecord, error)
}

// RecordHandler handles transaction record HTTP requests.
type RecordHandler struct {
	recordUC RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordUC RecordService) *RecordHandler {
	return &RecordHandler{recordUC: recordUC}
}

// Search lists records matching the query filters, one page at a time.
func (h *RecordHandler) Search(w http.ResponseWriter, r *http.Request) {
	input, err := parseSearchInput(r)
	if err != nil {
		dto.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.recordUC.Search(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err, 0)
		return
	}

	writeJSON(w, http.StatusOK, dto.PageFromDomain(page))
}

// Get retrieves a record by ID.
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		dto.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.recordUC.GetRecord(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, id)
		return
	}

	writeJSON(w, http.StatusOK, dto.RecordFromDomain(record))
}

// UpdateDescription replaces the description of a record.
func (h *RecordHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		dto.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.UpdateDescriptionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		dto.WriteError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	record, err := h.recordUC.UpdateDescription(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeDomainError(w, r, err, id)
		return
	}

	writeJSON(w, http.StatusOK, dto.RecordFromDomain(record))
}

func parseSearchInput(r *http.Request) (usecase.SearchInput, error) {
	page, err := parseIntQuery(r, "page", domain.DefaultPage)
	if err != nil {
		return usecase.SearchInput{}, err
	}

	size, err := parseIntQuery(r, "size", domain.DefaultPageSize)
	if err != nil {
		return usecase.SearchInput{}, err
	}

	filter := domain.RecordFilter{
		AccountNumber: optionalQuery(r, "accountNumber"),
		CustomerID:    optionalQuery(r, "customerId"),
		Description:   optionalQuery(r, "description"),
	}

	if raw := optionalQuery(r, "trxDate"); raw != nil {
		date, err := domain.ParseDate(*raw)
		if err != nil {
			return usecase.SearchInput{}, fmt.Errorf("%w: trxDate must be YYYY-MM-DD", domain.ErrInvalidFilter)
		}
		filter.TrxDate = &date
	}

	return usecase.SearchInput{
		Filter: filter,
		Page:   page,
		Size:   size,
	}, nil
}
