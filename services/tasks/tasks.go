package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names. The job types are enqueued by the scheduler only.
const (
	TypeReminder5Day  = "jobs:reminder:5d"
	TypeReminder1Day  = "jobs:reminder:1d"
	TypeOverdueSweep  = "jobs:overdue"
	TypeCleanup       = "jobs:cleanup"
	TypeSendEmail     = "notification:email"
	emailMaxRetry     = 3
	emailTaskDeadline = time.Minute
)

// EmailPayload is the body of a TypeSendEmail task.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewEmailTask(payload EmailPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendEmail, b)
	opts := []asynq.Option{asynq.MaxRetry(emailMaxRetry), asynq.Timeout(emailTaskDeadline)}

	return task, opts, nil
}

// JobTask builds a periodic job task. Jobs never retry and a second copy
// enqueued within uniqueFor is dropped.
func JobTask(taskType string, uniqueFor time.Duration) (*asynq.Task, []asynq.Option) {
	return asynq.NewTask(taskType, nil), []asynq.Option{
		asynq.MaxRetry(0),
		asynq.Unique(uniqueFor),
	}
}

// EmailQueue enqueues emails on asynq for the worker to deliver.
type EmailQueue struct {
	client *asynq.Client
}

func NewEmailQueue(client *asynq.Client) *EmailQueue {
	return &EmailQueue{client: client}
}

func (q *EmailQueue) EnqueueEmail(ctx context.Context, to, subject, body string) error {
	task, opts, err := NewEmailTask(EmailPayload{To: to, Subject: subject, Body: body})
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue email: %w", err)
	}
	return nil
}
