// Package reminders delivers scheduled medication and appointment
// notifications. The scheduler polls for due reminders on an interval;
// a reminder slightly ahead of schedule is preferable to one that
// arrives after the dose was missed, so the poll looks a short lead
// window into the future.
package reminders

import (
	"context"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/healthmitra/insights/alerts"
	"github.com/healthmitra/insights/subjects"
)

type SchedulerConfig struct {
	PollInterval time.Duration `envconfig:"HEALTHMITRA_REMINDER_POLL_INTERVAL" default:"1m"`
	LeadWindow   time.Duration `envconfig:"HEALTHMITRA_REMINDER_LEAD_WINDOW" default:"5m"`
}

func NewSchedulerConfig() (*SchedulerConfig, error) {
	cfg := &SchedulerConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

type Scheduler struct {
	repo      Repository
	subjects  subjects.Repository
	transport alerts.Transport
	config    *SchedulerConfig
	logger    *zap.SugaredLogger

	done chan struct{}
}

func NewScheduler(
	repo Repository,
	subjectsRepo subjects.Repository,
	transport alerts.Transport,
	config *SchedulerConfig,
	logger *zap.SugaredLogger,
	lifecycle fx.Lifecycle,
) *Scheduler {
	scheduler := &Scheduler{
		repo:      repo,
		subjects:  subjectsRepo,
		transport: transport,
		config:    config,
		logger:    logger,
		done:      make(chan struct{}),
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go scheduler.run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(scheduler.done)
			return nil
		},
	})

	return scheduler
}

func (s *Scheduler) run() {
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), s.config.PollInterval)
			s.ProcessDue(ctx)
			cancel()
		}
	}
}

// ProcessDue sends every due reminder once. Failures are per reminder:
// a reminder that cannot be sent is left unsent for the next poll, and
// one that cannot be marked sent is logged loudly since it may repeat.
func (s *Scheduler) ProcessDue(ctx context.Context) {
	due, err := s.repo.ListDue(ctx, time.Now().Add(s.config.LeadWindow))
	if err != nil {
		s.logger.Errorw("unable to list due reminders", "error", err)
		return
	}

	for _, reminder := range due {
		subject, err := s.subjects.Get(ctx, reminder.SubjectId)
		if err != nil {
			s.logger.Warnw("unable to look up reminder recipient",
				"subjectId", reminder.SubjectId, "reminderId", reminder.Id, "error", err)
			continue
		}
		if !subject.SmsEnabled || subject.Phone == "" {
			// Opted out recipients still get the reminder marked sent
			// so it does not linger as due forever.
			s.markSent(ctx, reminder)
			continue
		}

		if _, err := s.transport.Send(ctx, subject.Phone, s.message(reminder)); err != nil {
			s.logger.Warnw("unable to send reminder",
				"subjectId", reminder.SubjectId, "reminderId", reminder.Id, "error", err)
			continue
		}

		s.markSent(ctx, reminder)
	}
}

func (s *Scheduler) markSent(ctx context.Context, reminder *Reminder) {
	if reminder.Id == nil {
		return
	}
	if err := s.repo.MarkSent(ctx, reminder.Id.Hex()); err != nil {
		s.logger.Errorw("unable to mark reminder sent, it may be delivered again",
			"reminderId", reminder.Id, "error", err)
	}
}

func (s *Scheduler) message(reminder *Reminder) string {
	scheduled := reminder.ScheduledTime.Format(time.Kitchen)
	switch reminder.Kind {
	case KindMedication:
		name := reminder.Metadata.MedicationName
		if name == "" {
			name = "medication"
		}
		return alerts.MedicationReminderMessage(name, reminder.Metadata.Dosage, scheduled)
	case KindAppointment:
		return alerts.AppointmentReminderMessage(reminder.Metadata.DoctorName, scheduled, reminder.Metadata.Location)
	default:
		return alerts.MedicationReminderMessage(reminder.Title, "", scheduled)
	}
}
