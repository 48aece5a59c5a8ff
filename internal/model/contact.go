package model

import "time"

// ContactMessage is a message submitted through the public contact form.
// There is no auth gate on the contact endpoints — anyone can submit, and the
// admin-facing list/archive/delete operations are equally open until a proper
// admin role exists.
type ContactMessage struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Archived    bool      `json:"archived"`
	SubmittedAt time.Time `json:"submittedAt"`
}
