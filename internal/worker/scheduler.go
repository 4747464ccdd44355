package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"atelier/internal/repository"
)

// Scheduler runs the daily birthday scan. The cron spec comes from
// configuration, "0 8 * * *" by default, and each matching client becomes
// one birthday task on the queue.
type Scheduler struct {
	cron       *cron.Cron
	spec       string
	clientRepo repository.ClientRepository
	enqueuer   *Enqueuer
	logger     *zap.Logger
}

func NewScheduler(spec string, clientRepo repository.ClientRepository, enqueuer *Enqueuer, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		spec:       spec,
		clientRepo: clientRepo,
		enqueuer:   enqueuer,
		logger:     logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.scanBirthdays); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) scanBirthdays() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	today := time.Now()
	clients, err := s.clientRepo.ListWithBirthday(ctx, today.Month(), today.Day())
	if err != nil {
		s.logger.Error("birthday scan failed", zap.Error(err))
		return
	}

	for _, client := range clients {
		if err := s.enqueuer.EnqueueBirthday(ctx, client.ID); err != nil {
			s.logger.Error("enqueueing birthday greeting failed", zap.Int64("clientId", client.ID), zap.Error(err))
		}
	}

	if len(clients) > 0 {
		s.logger.Info("birthday greetings scheduled", zap.Int("count", len(clients)))
	}
}
