package transport

import "portfolio_backend/internal/submissions/repository"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListQuery holds the raw paging parameters; non-numeric values fall back to defaults.
type ListQuery struct {
	Page  string `form:"page"`
	Limit string `form:"limit"`
}

// ListResponse is one page of submissions plus the unfiltered total.
type ListResponse struct {
	Data  []repository.Submission `json:"data"`
	Total int                     `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

// SetReadRequest toggles the read flag of one submission.
// Ids that do not parse as UUIDs match no row.
type SetReadRequest struct {
	ID   string `json:"id" validate:"required"`
	Read *bool  `json:"read" validate:"required"`
}

// DeleteRequest removes one submission.
type DeleteRequest struct {
	ID string `json:"id" validate:"required"`
}
