// Package repository stores contact submissions in PostgreSQL.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Submission is one persisted contact-form submission. JSON names follow the
// column names because the dashboard returns rows as stored.
type Submission struct {
	ID              uuid.UUID         `json:"id"`
	SelectedMethods []string          `json:"selected_methods"`
	ContactDetails  map[string]string `json:"contact_details"`
	Subject         string            `json:"subject"`
	Message         string            `json:"message"`
	CreatedAt       time.Time         `json:"created_at"`
	Read            bool              `json:"read"`
}

// CreateParams contains the caller-supplied fields of a new submission.
type CreateParams struct {
	SelectedMethods []string
	ContactDetails  map[string]string
	Subject         string
	Message         string
}

// ListParams selects one page of submissions, newest first.
type ListParams struct {
	Limit  int
	Offset int
}

// SubmissionCreator is used by the contact ingestion module.
type SubmissionCreator interface {
	Create(ctx context.Context, params CreateParams) (Submission, error)
}

// SubmissionReader provides paginated reads for the dashboard.
type SubmissionReader interface {
	List(ctx context.Context, params ListParams) ([]Submission, int, error)
}

// SubmissionMutator provides the dashboard's write operations. Both are
// no-ops for an id that does not exist.
type SubmissionMutator interface {
	SetRead(ctx context.Context, id uuid.UUID, read bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository combines all submission operations.
type Repository interface {
	SubmissionCreator
	SubmissionReader
	SubmissionMutator
}
