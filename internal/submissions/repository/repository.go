package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insertSubmissionQuery = `
	INSERT INTO contact_submissions (selected_methods, contact_details, subject, message, read, created_at)
	VALUES ($1, $2, $3, $4, false, now())
	RETURNING id, selected_methods, contact_details, subject, message, created_at, read`

const countSubmissionsQuery = `SELECT COUNT(*) FROM contact_submissions`

const listSubmissionsQuery = `
	SELECT id, selected_methods, contact_details, subject, message, created_at, read
	FROM contact_submissions
	ORDER BY created_at DESC, id DESC
	LIMIT $1 OFFSET $2`

const setReadQuery = `UPDATE contact_submissions SET read = $2 WHERE id = $1`

const deleteSubmissionQuery = `DELETE FROM contact_submissions WHERE id = $1`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new submissions repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a submission. The database assigns id and created_at.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Submission, error) {
	details := params.ContactDetails
	if details == nil {
		details = map[string]string{}
	}

	row := r.pool.QueryRow(ctx, insertSubmissionQuery, params.SelectedMethods, details, params.Subject, params.Message)
	sub, err := scanSubmission(row)
	if err != nil {
		return Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	return sub, nil
}

// List returns one page of submissions and the total row count.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Submission, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, countSubmissionsQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	rows, err := r.pool.Query(ctx, listSubmissionsQuery, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	items := make([]Submission, 0, params.Limit)
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan submission: %w", err)
		}
		items = append(items, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate submissions: %w", err)
	}

	return items, total, nil
}

// SetRead updates the read flag. Zero affected rows is not an error.
func (r *Repo) SetRead(ctx context.Context, id uuid.UUID, read bool) error {
	if _, err := r.pool.Exec(ctx, setReadQuery, id, read); err != nil {
		return fmt.Errorf("set submission read: %w", err)
	}
	return nil
}

// Delete removes a submission permanently. Zero affected rows is not an error.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, deleteSubmissionQuery, id); err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	return nil
}

func scanSubmission(row pgx.Row) (Submission, error) {
	var sub Submission
	if err := row.Scan(
		&sub.ID, &sub.SelectedMethods, &sub.ContactDetails, &sub.Subject, &sub.Message, &sub.CreatedAt, &sub.Read,
	); err != nil {
		return Submission{}, err
	}
	if sub.ContactDetails == nil {
		sub.ContactDetails = map[string]string{}
	}
	return sub, nil
}
