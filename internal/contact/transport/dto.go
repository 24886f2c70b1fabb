package transport

import "github.com/google/uuid"

// SubmitContactRequest is the body the contact wizard posts when a conversation completes.
// Only presence is checked; method names and detail formats are free-form.
type SubmitContactRequest struct {
	SelectedMethods []string          `json:"selectedMethods" validate:"required,min=1"`
	ContactDetails  map[string]string `json:"contactDetails"`
	Subject         string            `json:"subject" validate:"required"`
	Message         string            `json:"message" validate:"required"`
}

// SubmitContactResponse is returned with 201 Created.
type SubmitContactResponse struct {
	Success bool      `json:"success"`
	ID      uuid.UUID `json:"id"`
}
