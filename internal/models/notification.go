package models

import "time"

// ChatMessagePayload is the JSON body posted to the outbound chat webhook.
// Field names match the webhook contract and must not change.
type ChatMessagePayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Text      string `json:"text,omitempty"`
}

// MatchNotification describes a match announcement sent to its participants.
type MatchNotification struct {
	Participants []string  `json:"participants"` // participant emails
	Activity     string    `json:"activity"`
	Date         time.Time `json:"date"`
	Location     string    `json:"location"`
}
