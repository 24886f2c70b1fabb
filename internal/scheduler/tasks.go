package scheduler

import (
	"encoding/json"
	"time"

	"portfolio_backend/internal/events"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TaskContactNotification = "notification.contact_submitted"

type ContactNotificationPayload struct {
	SubmissionID    string            `json:"submissionId"`
	SelectedMethods []string          `json:"selectedMethods"`
	ContactDetails  map[string]string `json:"contactDetails"`
	Subject         string            `json:"subject"`
	Message         string            `json:"message"`
	CreatedAt       time.Time         `json:"createdAt"`
	OccurredAt      time.Time         `json:"occurredAt"`
}

func payloadFromEvent(evt events.ContactSubmitted) ContactNotificationPayload {
	return ContactNotificationPayload{
		SubmissionID:    evt.SubmissionID.String(),
		SelectedMethods: evt.SelectedMethods,
		ContactDetails:  evt.ContactDetails,
		Subject:         evt.Subject,
		Message:         evt.Message,
		CreatedAt:       evt.CreatedAt,
		OccurredAt:      evt.OccurredAt(),
	}
}

// Event rebuilds the domain event carried by the payload.
func (p ContactNotificationPayload) Event() (events.ContactSubmitted, error) {
	id, err := uuid.Parse(p.SubmissionID)
	if err != nil {
		return events.ContactSubmitted{}, err
	}
	return events.ContactSubmitted{
		BaseEvent:       events.BaseEvent{Timestamp: p.OccurredAt},
		SubmissionID:    id,
		SelectedMethods: p.SelectedMethods,
		ContactDetails:  p.ContactDetails,
		Subject:         p.Subject,
		Message:         p.Message,
		CreatedAt:       p.CreatedAt,
	}, nil
}

func NewContactNotificationTask(payload ContactNotificationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContactNotification, data), nil
}

func ParseContactNotificationPayload(task *asynq.Task) (ContactNotificationPayload, error) {
	var payload ContactNotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ContactNotificationPayload{}, err
	}
	return payload, nil
}
