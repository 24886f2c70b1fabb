// Package events holds the domain events exchanged between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"portfolio_backend/platform/events"

	"github.com/google/uuid"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

var NewBaseEvent = events.NewBaseEvent

// ContactSubmitted is published after a contact submission has been stored.
type ContactSubmitted struct {
	BaseEvent
	SubmissionID    uuid.UUID         `json:"submissionId"`
	SelectedMethods []string          `json:"selectedMethods"`
	ContactDetails  map[string]string `json:"contactDetails"`
	Subject         string            `json:"subject"`
	Message         string            `json:"message"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// ContactSubmittedName is the bus key for ContactSubmitted.
const ContactSubmittedName = "contact.submission.created"

func (e ContactSubmitted) EventName() string { return ContactSubmittedName }
