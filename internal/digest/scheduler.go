package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const runTimeout = 15 * time.Minute

// AdminNotifier delivers failure reports to the administrative contact,
// never to end users.
type AdminNotifier interface {
	NotifyAdmin(ctx context.Context, text string) error
}

// Scheduler fires one digest run per day at the configured local hour. A
// failed run is reported and the schedule keeps going; cron re-arms for the
// next day on its own, so a completed run can never trigger an immediate
// re-send.
type Scheduler struct {
	ctx      context.Context
	cron     *cron.Cron
	spec     string
	runner   *Runner
	notifier AdminNotifier
	log      *slog.Logger
}

func NewScheduler(
	ctx context.Context,
	runner *Runner,
	notifier AdminNotifier,
	loc *time.Location,
	hour int,
	log *slog.Logger,
) *Scheduler {
	return &Scheduler{
		ctx:      ctx,
		cron:     cron.New(cron.WithLocation(loc)),
		spec:     fmt.Sprintf("0 %d * * *", hour),
		runner:   runner,
		notifier: notifier,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runOnce); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Spec returns the cron expression the scheduler runs on.
func (s *Scheduler) Spec() string {
	return s.spec
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(s.ctx, runTimeout)
	defer cancel()

	if err := s.runner.Run(ctx); err != nil {
		s.log.ErrorContext(ctx, "Digest run failed",
			"error", err,
			"spec", s.spec)

		if notifyErr := s.notifier.NotifyAdmin(ctx, fmt.Sprintf("Digest run failed:\n\n%v", err)); notifyErr != nil {
			s.log.ErrorContext(ctx, "Failed to notify admin",
				"error", notifyErr)
		}
	}
}
