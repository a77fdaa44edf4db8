package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"menvo.backend/internal/infrastructure/metrics"
	"menvo.backend/pkg/logger"
)

const reminderBatchSize = 100

// ReminderSender publishes reminders for appointments starting within lead
type ReminderSender interface {
	SendReminders(ctx context.Context, lead time.Duration, limit int) (int, error)
}

// AppointmentReminderJob periodically reminds participants of upcoming sessions
type AppointmentReminderJob struct {
	sender   ReminderSender
	interval time.Duration
	lead     time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewAppointmentReminderJob(sender ReminderSender, interval, lead time.Duration) *AppointmentReminderJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &AppointmentReminderJob{
		sender:   sender,
		interval: interval,
		lead:     lead,
		stop:     make(chan struct{}),
	}
}

// Start blocks until ctx is cancelled or Stop is called
func (j *AppointmentReminderJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting appointment reminder job",
		zap.Duration("interval", j.interval),
		zap.Duration("lead", j.lead),
	)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "appointment reminder job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "appointment reminder job stopped")
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *AppointmentReminderJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *AppointmentReminderJob) runOnce(ctx context.Context) {
	sent, err := j.sender.SendReminders(ctx, j.lead, reminderBatchSize)
	if err != nil {
		logger.Error(ctx, "appointment reminder run failed", zap.Error(err))
		return
	}
	if sent > 0 {
		metrics.RemindersSentTotal.Add(float64(sent))
		logger.Info(ctx, "appointment reminders sent", zap.Int("count", sent))
	}
}
