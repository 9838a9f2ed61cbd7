package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (c *captureEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.tasks = append(c.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func TestScheduleReconcile(t *testing.T) {
	enq := &captureEnqueuer{}
	s := NewScheduler(enq, time.Minute)

	require.NoError(t, s.ScheduleReconcile(context.Background(), "sess-1", "pay-1"))
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TypePaymentReconcile, enq.tasks[0].Type())

	p, err := ParseReconcilePayload(enq.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, ReconcilePayload{SessionID: "sess-1", PaymentID: "pay-1", Attempt: 1}, p)
}

func TestSchedule_DuplicateIsNotAnError(t *testing.T) {
	s := NewScheduler(&captureEnqueuer{err: asynq.ErrTaskIDConflict}, 0)
	assert.NoError(t, s.ScheduleReconcile(context.Background(), "sess-1", "pay-1"))
	assert.Equal(t, DefaultReconcileDelay, s.delay)
}

func TestParseReconcilePayload_Invalid(t *testing.T) {
	_, err := ParseReconcilePayload(asynq.NewTask(TypePaymentReconcile, []byte(`{`)))
	assert.Error(t, err)
	_, err = ParseReconcilePayload(asynq.NewTask(TypePaymentReconcile, []byte(`{"sessionId":"s"}`)))
	assert.Error(t, err)
}
