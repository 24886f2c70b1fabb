// Package notification tells the site owner about new contact submissions.
// It subscribes to ContactSubmitted on the event bus, so the contact module
// never learns which channels exist or whether they succeed.
package notification

import (
	"context"
	"fmt"

	"portfolio_backend/internal/events"
	"portfolio_backend/platform/logger"
)

// Enqueuer hands a submission to a background queue for delivery.
type Enqueuer interface {
	EnqueueContactNotification(ctx context.Context, evt events.ContactSubmitted) error
}

// Deliverer performs the delivery itself.
type Deliverer interface {
	Deliver(ctx context.Context, evt events.ContactSubmitted) error
}

// Module handles ContactSubmitted events.
type Module struct {
	deliverer Deliverer
	enqueuer  Enqueuer
	log       *logger.Logger
}

func NewModule(deliverer Deliverer, log *logger.Logger) *Module {
	return &Module{deliverer: deliverer, log: log}
}

// SetEnqueuer routes deliveries through a queue instead of running them inline.
func (m *Module) SetEnqueuer(enqueuer Enqueuer) {
	m.enqueuer = enqueuer
}

func (m *Module) Name() string { return "notification" }

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.ContactSubmittedName, m)
}

// Handle implements events.Handler.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	var evt events.ContactSubmitted
	switch e := event.(type) {
	case events.ContactSubmitted:
		evt = e
	case *events.ContactSubmitted:
		evt = *e
	default:
		return fmt.Errorf("notification: unexpected event %T", event)
	}

	if m.enqueuer != nil {
		err := m.enqueuer.EnqueueContactNotification(ctx, evt)
		if err == nil {
			return nil
		}
		m.log.NotificationFailed("queue", evt.SubmissionID.String(), err)
	}

	return m.deliverer.Deliver(ctx, evt)
}

var _ events.Handler = (*Module)(nil)
