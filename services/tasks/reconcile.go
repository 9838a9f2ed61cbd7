package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypePaymentReconcile = "payment:reconcile"

const (
	DefaultReconcileDelay = 2 * time.Minute
	MaxReconcileAttempts  = 5
)

// ReconcilePayload identifies a deposit that timed out while the user waited.
type ReconcilePayload struct {
	SessionID string `json:"sessionId"`
	PaymentID string `json:"paymentId"`
	Attempt   int    `json:"attempt"`
}

func NewReconcileTask(payload ReconcilePayload, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePaymentReconcile, b)
	opts := []asynq.Option{
		asynq.ProcessIn(delay),
		asynq.MaxRetry(3),
		asynq.TaskID(fmt.Sprintf("reconcile:%s:%d", payload.PaymentID, payload.Attempt)),
	}
	return task, opts, nil
}

func ParseReconcilePayload(task *asynq.Task) (ReconcilePayload, error) {
	var p ReconcilePayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypePaymentReconcile, err)
	}
	if p.SessionID == "" || p.PaymentID == "" {
		return p, fmt.Errorf("invalid %s payload: missing ids", TypePaymentReconcile)
	}
	return p, nil
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Scheduler queues delayed payment reconciliation.
type Scheduler struct {
	client Enqueuer
	delay  time.Duration
}

func NewScheduler(client Enqueuer, delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultReconcileDelay
	}
	return &Scheduler{client: client, delay: delay}
}

// ScheduleReconcile queues the first reconcile attempt for paymentID.
func (s *Scheduler) ScheduleReconcile(ctx context.Context, sessionID, paymentID string) error {
	return s.Schedule(ctx, ReconcilePayload{SessionID: sessionID, PaymentID: paymentID, Attempt: 1})
}

// Schedule queues p. A task already queued for the same attempt is kept.
func (s *Scheduler) Schedule(ctx context.Context, p ReconcilePayload) error {
	task, opts, err := NewReconcileTask(p, s.delay)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue %s: %w", TypePaymentReconcile, err)
	}
	return nil
}
