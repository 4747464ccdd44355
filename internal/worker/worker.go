package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/repository"
)

// Notifier delivers a message to a client over some channel. The default
// implementation only logs; SMS and email gateways plug in here.
type Notifier interface {
	Channel() string
	Send(ctx context.Context, client *domain.Client, body string) error
}

type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Channel() string { return "log" }

func (n *LogNotifier) Send(ctx context.Context, client *domain.Client, body string) error {
	n.logger.Info("notification sent",
		zap.Int64("clientId", client.ID),
		zap.String("phone", client.Phone),
		zap.String("body", body))
	return nil
}

// Worker consumes automation tasks: appointment reminders and birthday
// greetings. Every delivered message leaves a communications row.
type Worker struct {
	server   *asynq.Server
	repos    *repository.Repositories
	notifier Notifier
	logger   *zap.Logger
}

func New(redisAddr, redisPassword string, queueDB, concurrency int, repos *repository.Repositories, notifier Notifier, logger *zap.Logger) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword, DB: queueDB},
		asynq.Config{
			Concurrency: concurrency,
			Logger:      newAsynqLogger(logger),
		},
	)

	return &Worker{
		server:   server,
		repos:    repos,
		notifier: notifier,
		logger:   logger,
	}
}

func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, w.handleReminder)
	mux.HandleFunc(TypeBirthdaySend, w.handleBirthday)

	return w.server.Start(mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleReminder(ctx context.Context, task *asynq.Task) error {
	var payload ReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decoding reminder payload: %v: %w", err, asynq.SkipRetry)
	}

	appt, err := w.repos.Appointment.GetByID(ctx, payload.AppointmentID)
	if err != nil {
		return fmt.Errorf("loading appointment %d: %w", payload.AppointmentID, err)
	}

	// The appointment may have been cancelled between scheduling and
	// delivery; stale reminders are dropped, not retried.
	if appt.Status != domain.AppointmentStatusPending && appt.Status != domain.AppointmentStatusConfirmed {
		w.logger.Info("skipping reminder for inactive appointment",
			zap.Int64("appointmentId", appt.ID), zap.String("status", string(appt.Status)))
		return nil
	}

	client, err := w.repos.Client.GetByID(ctx, appt.ClientID)
	if err != nil {
		return fmt.Errorf("loading client %d: %w", appt.ClientID, err)
	}

	body := fmt.Sprintf("Reminder: your %s appointment with %s is on %s.",
		appt.ServiceName, appt.ArtistName, appt.StartTime.Format("Monday, Jan 2 at 15:04"))

	if err := w.notifier.Send(ctx, client, body); err != nil {
		return fmt.Errorf("sending reminder: %w", err)
	}

	apptID := appt.ID
	_, err = w.repos.Communication.Create(ctx, domain.Communication{
		StoreID:       appt.StoreID,
		ClientID:      client.ID,
		AppointmentID: &apptID,
		Kind:          domain.CommunicationKindReminder,
		Channel:       w.notifier.Channel(),
		Body:          body,
		SentAt:        time.Now(),
	})
	if err != nil {
		w.logger.Error("recording reminder communication failed", zap.Int64("appointmentId", appt.ID), zap.Error(err))
	}

	return nil
}

func (w *Worker) handleBirthday(ctx context.Context, task *asynq.Task) error {
	var payload BirthdayPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decoding birthday payload: %v: %w", err, asynq.SkipRetry)
	}

	client, err := w.repos.Client.GetByID(ctx, payload.ClientID)
	if err != nil {
		return fmt.Errorf("loading client %d: %w", payload.ClientID, err)
	}

	body := fmt.Sprintf("Happy birthday, %s! We hope to see you again soon.", client.FirstName)

	if err := w.notifier.Send(ctx, client, body); err != nil {
		return fmt.Errorf("sending birthday greeting: %w", err)
	}

	_, err = w.repos.Communication.Create(ctx, domain.Communication{
		StoreID:  client.StoreID,
		ClientID: client.ID,
		Kind:     domain.CommunicationKindBirthday,
		Channel:  w.notifier.Channel(),
		Body:     body,
		SentAt:   time.Now(),
	})
	if err != nil {
		w.logger.Error("recording birthday communication failed", zap.Int64("clientId", client.ID), zap.Error(err))
	}

	return nil
}

// asynqLogger adapts zap to asynq's logging interface.
type asynqLogger struct {
	sugar *zap.SugaredLogger
}

func newAsynqLogger(logger *zap.Logger) *asynqLogger {
	return &asynqLogger{sugar: logger.Sugar()}
}

func (l *asynqLogger) Debug(args ...interface{}) { l.sugar.Debug(args...) }
func (l *asynqLogger) Info(args ...interface{})  { l.sugar.Info(args...) }
func (l *asynqLogger) Warn(args ...interface{})  { l.sugar.Warn(args...) }
func (l *asynqLogger) Error(args ...interface{}) { l.sugar.Error(args...) }
func (l *asynqLogger) Fatal(args ...interface{}) { l.sugar.Fatal(args...) }
