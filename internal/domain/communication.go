package domain

import (
	"time"
)

type CommunicationKind string

const (
	CommunicationKindReminder     CommunicationKind = "reminder"
	CommunicationKindBirthday     CommunicationKind = "birthday"
	CommunicationKindConfirmation CommunicationKind = "confirmation"
)

// Communication is an audit record of an automated message. Delivery itself
// goes through the worker's Notifier; the row is written regardless of
// channel so the store has a history per client.
type Communication struct {
	ID            int64             `json:"id"`
	StoreID       int64             `json:"store_id"`
	ClientID      int64             `json:"client_id"`
	AppointmentID *int64            `json:"appointment_id,omitempty"`
	Kind          CommunicationKind `json:"kind"`
	Channel       string            `json:"channel"`
	Body          string            `json:"body"`
	SentAt        time.Time         `json:"sent_at"`
}

type CommunicationFilter struct {
	StoreID  *int64             `json:"store_id"`
	ClientID *int64             `json:"client_id"`
	Kind     *CommunicationKind `json:"kind"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}
