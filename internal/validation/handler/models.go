package handler

import (
	"time"

	"validarfc/internal/validation"
	dErrors "validarfc/pkg/domain-errors"
)

// ValidateRequest is the body of POST /api/validate. RFC is a pointer so a
// missing field can be told apart from an empty string.
type ValidateRequest struct {
	RFC *string `json:"rfc"`
}

// Validate rejects a body without the rfc field.
func (r *ValidateRequest) Validate() error {
	if r.RFC == nil {
		return dErrors.New(dErrors.CodeBadRequest, "rfc is required")
	}
	return nil
}

// ValidateResponse is the result of a single validation.
type ValidateResponse struct {
	RFC       string `json:"rfc"`
	IsValid   bool   `json:"is_valid"`
	CreatedAt string `json:"created_at"`
}

// BulkItem is one row of a bulk validation.
type BulkItem struct {
	RFC     string `json:"rfc"`
	IsValid bool   `json:"is_valid"`
}

// BulkResponse is the result of POST /api/validate/bulk.
type BulkResponse struct {
	Success   bool       `json:"success"`
	Count     int        `json:"count"`
	Results   []BulkItem `json:"results"`
	CreatedAt string     `json:"created_at"`
}

// FromResult maps a domain result to its wire form.
func FromResult(res validation.Result) ValidateResponse {
	return ValidateResponse{
		RFC:       res.RFC,
		IsValid:   res.Valid,
		CreatedAt: res.CreatedAt.Format(time.RFC3339),
	}
}

// FromBatch maps a bulk result to its wire form.
func FromBatch(batch *validation.BatchResult) BulkResponse {
	items := make([]BulkItem, len(batch.Results))
	for i, r := range batch.Results {
		items[i] = BulkItem{RFC: r.RFC, IsValid: r.Valid}
	}
	return BulkResponse{
		Success:   true,
		Count:     len(items),
		Results:   items,
		CreatedAt: batch.CreatedAt.Format(time.RFC3339),
	}
}
