package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeReminderSend = "reminder:send"
	TypeBirthdaySend = "birthday:send"
)

type ReminderPayload struct {
	AppointmentID int64 `json:"appointment_id"`
}

type BirthdayPayload struct {
	ClientID int64 `json:"client_id"`
}

// Enqueuer schedules automation tasks on the asynq queue. It satisfies the
// service layer's TaskEnqueuer.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueReminder(ctx context.Context, appointmentID int64, sendAt time.Time) error {
	payload, err := json.Marshal(ReminderPayload{AppointmentID: appointmentID})
	if err != nil {
		return fmt.Errorf("encoding reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	_, err = e.client.EnqueueContext(ctx, task,
		asynq.ProcessAt(sendAt),
		asynq.MaxRetry(3),
		asynq.Unique(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("enqueueing reminder for appointment %d: %w", appointmentID, err)
	}

	return nil
}

func (e *Enqueuer) EnqueueBirthday(ctx context.Context, clientID int64) error {
	payload, err := json.Marshal(BirthdayPayload{ClientID: clientID})
	if err != nil {
		return fmt.Errorf("encoding birthday payload: %w", err)
	}

	task := asynq.NewTask(TypeBirthdaySend, payload)
	_, err = e.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(3),
		asynq.Unique(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("enqueueing birthday greeting for client %d: %w", clientID, err)
	}

	return nil
}
