package notification

import (
	"context"
	"errors"
	"testing"

	"portfolio_backend/internal/events"
	"portfolio_backend/platform/logger"
)

type recordingDeliverer struct {
	calls int
	last  events.ContactSubmitted
}

func (d *recordingDeliverer) Deliver(_ context.Context, evt events.ContactSubmitted) error {
	d.calls++
	d.last = evt
	return nil
}

type stubEnqueuer struct {
	err   error
	calls int
}

func (e *stubEnqueuer) EnqueueContactNotification(context.Context, events.ContactSubmitted) error {
	e.calls++
	return e.err
}

func TestModuleDeliversFromBus(t *testing.T) {
	bus := events.NewInMemoryBus(logger.Discard())
	deliverer := &recordingDeliverer{}
	NewModule(deliverer, logger.Discard()).RegisterHandlers(bus)

	evt := testEvent()
	bus.Publish(context.Background(), evt)
	bus.Wait()

	if deliverer.calls != 1 {
		t.Fatalf("expected one delivery, got %d", deliverer.calls)
	}
	if deliverer.last.SubmissionID != evt.SubmissionID {
		t.Fatalf("unexpected submission %s", deliverer.last.SubmissionID)
	}
}

func TestModulePrefersQueue(t *testing.T) {
	deliverer := &recordingDeliverer{}
	enqueuer := &stubEnqueuer{}
	m := NewModule(deliverer, logger.Discard())
	m.SetEnqueuer(enqueuer)

	if err := m.Handle(context.Background(), testEvent()); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if enqueuer.calls != 1 || deliverer.calls != 0 {
		t.Fatalf("expected queued delivery, got enqueue=%d deliver=%d", enqueuer.calls, deliverer.calls)
	}
}

func TestModuleFallsBackWhenQueueFails(t *testing.T) {
	deliverer := &recordingDeliverer{}
	m := NewModule(deliverer, logger.Discard())
	m.SetEnqueuer(&stubEnqueuer{err: errors.New("redis unavailable")})

	if err := m.Handle(context.Background(), testEvent()); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if deliverer.calls != 1 {
		t.Fatalf("expected inline delivery after enqueue failure, got %d", deliverer.calls)
	}
}

type otherEvent struct{ events.BaseEvent }

func (otherEvent) EventName() string { return "other" }

func TestModuleRejectsUnexpectedEvent(t *testing.T) {
	m := NewModule(&recordingDeliverer{}, logger.Discard())
	if err := m.Handle(context.Background(), otherEvent{}); err == nil {
		t.Fatal("expected error for unexpected event type")
	}
}
