package dto

import (
	"github.com/iho/trxrecords/internal/usecase"
)

// UpdateDescriptionRequest represents a request to replace a record's description.
type UpdateDescriptionRequest struct {
	Description *string `json:"description"`
}

// ToUseCaseInput converts to use case input. A missing description becomes
// an empty one and fails validation.
func (r *UpdateDescriptionRequest) ToUseCaseInput(id int64) usecase.UpdateDescriptionInput {
	input := usecase.UpdateDescriptionInput{ID: id}
	if r.Description != nil {
		input.Description = *r.Description
	}

	return input
}
