package service

import (
	"context"
	"strconv"
	"strings"

	"portfolio_backend/internal/dashboard/transport"
	"portfolio_backend/internal/submissions/repository"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/logger"

	"github.com/google/uuid"
)

// Store is the slice of the submission repository the dashboard needs.
type Store interface {
	repository.SubmissionReader
	repository.SubmissionMutator
}

// Service implements the dashboard's list, mark and delete operations.
type Service struct {
	store Store
	log   *logger.Logger
}

// New creates a new dashboard service.
func New(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// List returns the requested page, newest first.
func (s *Service) List(ctx context.Context, query transport.ListQuery) (transport.ListResponse, error) {
	page, limit := NormalizePaging(query.Page, query.Limit)

	items, total, err := s.store.List(ctx, repository.ListParams{
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		s.log.DatabaseError("list submissions", err)
		return transport.ListResponse{}, apperr.Storage("list submissions", err)
	}
	if items == nil {
		items = []repository.Submission{}
	}

	return transport.ListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

// SetRead updates the read flag. Unknown ids succeed without effect.
func (s *Service) SetRead(ctx context.Context, id uuid.UUID, read bool) error {
	if err := s.store.SetRead(ctx, id, read); err != nil {
		s.log.DatabaseError("set submission read", err)
		return apperr.Storage("set submission read", err)
	}
	return nil
}

// Delete removes a submission permanently. Unknown ids succeed without effect.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.DatabaseError("delete submission", err)
		return apperr.Storage("delete submission", err)
	}
	return nil
}

// NormalizePaging turns raw query values into a usable page and limit.
// Missing, non-numeric and non-positive values take the defaults; limit is capped.
func NormalizePaging(rawPage, rawLimit string) (page, limit int) {
	page = parsePositive(rawPage, transport.DefaultPage)
	limit = parsePositive(rawLimit, transport.DefaultLimit)
	if limit > transport.MaxLimit {
		limit = transport.MaxLimit
	}
	return page, limit
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
