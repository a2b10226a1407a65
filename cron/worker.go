package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rentflow/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// uniqueFor keeps a second scheduler instance from enqueueing the same job twice.
const uniqueFor = 30 * time.Minute

// JobRunner is the business side of the scheduled jobs.
type JobRunner interface {
	DueReminder(ctx context.Context, daysBefore int) (tasks.JobResult, error)
	OverdueSweep(ctx context.Context) (tasks.JobResult, error)
	Cleanup(ctx context.Context) (tasks.JobResult, error)
}

// EmailSender delivers a rendered email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Schedule holds the cron specs, evaluated in the billing timezone.
type Schedule struct {
	Reminder string
	Overdue  string
	Cleanup  string
}

// Worker owns the asynq server that runs jobs and emails, and the scheduler
// that enqueues the jobs.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	schedule  Schedule
	logger    *zap.Logger
}

// NewWorker wires handlers. mailer may be nil when the email channel is off.
func NewWorker(redisOpt asynq.RedisClientOpt, jobs JobRunner, mailer EmailSender, schedule Schedule, loc *time.Location, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{"default": 1},
		Logger:      logger.Sugar(),
	})
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: loc,
		Logger:   logger.Sugar(),
	})

	w := &Worker{server: srv, scheduler: scheduler, schedule: schedule, logger: logger}
	w.mux = NewMux(jobs, mailer, logger)
	return w
}

// NewMux routes task types to handlers.
func NewMux(jobs JobRunner, mailer EmailSender, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReminder5Day, jobHandler(logger, tasks.TypeReminder5Day, func(ctx context.Context) (tasks.JobResult, error) {
		return jobs.DueReminder(ctx, 5)
	}))
	mux.HandleFunc(tasks.TypeReminder1Day, jobHandler(logger, tasks.TypeReminder1Day, func(ctx context.Context) (tasks.JobResult, error) {
		return jobs.DueReminder(ctx, 1)
	}))
	mux.HandleFunc(tasks.TypeOverdueSweep, jobHandler(logger, tasks.TypeOverdueSweep, jobs.OverdueSweep))
	mux.HandleFunc(tasks.TypeCleanup, jobHandler(logger, tasks.TypeCleanup, jobs.Cleanup))
	mux.HandleFunc(tasks.TypeSendEmail, emailHandler(mailer, logger))
	return mux
}

func jobHandler(logger *zap.Logger, name string, run func(ctx context.Context) (tasks.JobResult, error)) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		start := time.Now()
		if _, err := run(ctx); err != nil {
			logger.Error("job failed", zap.String("job", name), zap.Error(err))
			return err
		}
		logger.Debug("job done", zap.String("job", name), zap.Duration("took", time.Since(start)))
		return nil
	}
}

func emailHandler(mailer EmailSender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.EmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid email payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if mailer == nil {
			logger.Warn("email channel disabled, dropping task", zap.String("to", p.To))
			return nil
		}
		if err := mailer.Send(ctx, p.To, p.Subject, p.Body); err != nil {
			logger.Warn("email delivery failed", zap.String("to", p.To), zap.Error(err))
			return err
		}
		return nil
	}
}

// register adds the periodic entries. The reminder spec drives both the
// 5-day and 1-day runs.
func (w *Worker) register() error {
	entries := []struct {
		spec     string
		taskType string
	}{
		{w.schedule.Reminder, tasks.TypeReminder5Day},
		{w.schedule.Reminder, tasks.TypeReminder1Day},
		{w.schedule.Overdue, tasks.TypeOverdueSweep},
		{w.schedule.Cleanup, tasks.TypeCleanup},
	}
	for _, e := range entries {
		task, opts := tasks.JobTask(e.taskType, uniqueFor)
		id, err := w.scheduler.Register(e.spec, task, opts...)
		if err != nil {
			return fmt.Errorf("register %s (%q): %w", e.taskType, e.spec, err)
		}
		w.logger.Info("job scheduled", zap.String("job", e.taskType), zap.String("spec", e.spec), zap.String("entry", id))
	}
	return nil
}

// Start registers the schedule and starts the scheduler and the server.
func (w *Worker) Start() error {
	if err := w.register(); err != nil {
		return err
	}
	if err := w.scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	if err := w.server.Start(w.mux); err != nil {
		w.scheduler.Shutdown()
		return fmt.Errorf("start worker: %w", err)
	}
	w.logger.Info("worker started")
	return nil
}

func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	w.logger.Info("worker stopped")
}
