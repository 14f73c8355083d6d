package domain

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Validation constants
const (
	MaxDescriptionLength = 1024

	DefaultPage     = 0
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ValidateDescription validates a replacement description
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrInvalidDescription
	}

	if n := utf8.RuneCountInString(description); n > MaxDescriptionLength {
		return fmt.Errorf("%w: %d characters exceeds limit of %d", ErrInvalidDescription, n, MaxDescriptionLength)
	}

	return nil
}

// ValidatePagination rejects negative pages and empty page sizes and clamps
// size to maxSize. A non-positive maxSize falls back to MaxPageSize.
func ValidatePagination(page, size, maxSize int) (int, int, error) {
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}

	if page < 0 {
		return 0, 0, fmt.Errorf("%w: page must not be negative", ErrInvalidPagination)
	}

	if size < 1 {
		return 0, 0, fmt.Errorf("%w: size must be at least 1", ErrInvalidPagination)
	}

	if size > maxSize {
		size = maxSize
	}

	// page*size becomes the query offset and must not overflow.
	if page > math.MaxInt/size {
		return 0, 0, fmt.Errorf("%w: page %d is out of range", ErrInvalidPagination, page)
	}

	return page, size, nil
}
