package service

import (
	"context"

	"portfolio_backend/internal/contact/transport"
	"portfolio_backend/internal/events"
	"portfolio_backend/internal/submissions/repository"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/logger"
)

// Service stores contact submissions and announces them.
type Service struct {
	repo repository.SubmissionCreator
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new contact service. bus may be nil when nothing listens.
func New(repo repository.SubmissionCreator, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Submit persists the submission and publishes ContactSubmitted. Only the
// insert decides the outcome; listeners run on the bus and cannot fail it.
func (s *Service) Submit(ctx context.Context, req transport.SubmitContactRequest) (transport.SubmitContactResponse, error) {
	sub, err := s.repo.Create(ctx, repository.CreateParams{
		SelectedMethods: req.SelectedMethods,
		ContactDetails:  req.ContactDetails,
		Subject:         req.Subject,
		Message:         req.Message,
	})
	if err != nil {
		s.log.DatabaseError("create submission", err)
		return transport.SubmitContactResponse{}, apperr.Storage("create submission", err)
	}

	s.log.Info("contact submission stored", "submissionId", sub.ID, "methods", len(sub.SelectedMethods))

	if s.bus != nil {
		s.bus.Publish(ctx, events.ContactSubmitted{
			BaseEvent:       events.NewBaseEvent(),
			SubmissionID:    sub.ID,
			SelectedMethods: sub.SelectedMethods,
			ContactDetails:  sub.ContactDetails,
			Subject:         sub.Subject,
			Message:         sub.Message,
			CreatedAt:       sub.CreatedAt,
		})
	}

	return transport.SubmitContactResponse{Success: true, ID: sub.ID}, nil
}
