package events

import (
	platformevents "portfolio_backend/platform/events"
	"portfolio_backend/platform/logger"
)

// InMemoryBus is the platform in-process bus.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
