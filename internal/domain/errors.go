package domain

import "errors"

var (
	// Record errors
	ErrRecordNotFound   = errors.New("transaction record not found")
	ErrVersionConflict  = errors.New("transaction record was modified concurrently")
	ErrMalformedRecord  = errors.New("malformed transaction record")
	ErrImportSourceRead = errors.New("failed to read import source")
	ErrDuplicateImport  = errors.New("import source was already imported")

	// Request errors
	ErrInvalidDescription = errors.New("description must not be blank")
	ErrInvalidPagination  = errors.New("invalid pagination parameters")
	ErrInvalidFilter      = errors.New("invalid filter parameters")
	ErrInvalidID          = errors.New("invalid transaction record ID")
)
