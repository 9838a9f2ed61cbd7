package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"quickmechanic/models"
	"quickmechanic/services/booking"
	"quickmechanic/services/tasks"
	"quickmechanic/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubChecker struct {
	status models.PaymentStatus
	err    error
}

func (s stubChecker) Check(ctx context.Context, paymentID string) (models.PaymentStatus, error) {
	return s.status, s.err
}

type recordingApplier struct {
	calls []models.PaymentStatus
	err   error
}

func (r *recordingApplier) ApplyPaymentOutcome(ctx context.Context, sessionID, paymentID string, status models.PaymentStatus) (*booking.Session, error) {
	r.calls = append(r.calls, status)
	if r.err != nil {
		return nil, r.err
	}
	return &booking.Session{ID: sessionID, State: booking.StateSubmitted}, nil
}

type recordingRescheduler struct {
	payloads []tasks.ReconcilePayload
}

func (r *recordingRescheduler) Schedule(ctx context.Context, p tasks.ReconcilePayload) error {
	r.payloads = append(r.payloads, p)
	return nil
}

func reconcileTask(t *testing.T, attempt int) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(tasks.ReconcilePayload{SessionID: "sess-1", PaymentID: "pay-1", Attempt: attempt})
	require.NoError(t, err)
	return asynq.NewTask(tasks.TypePaymentReconcile, b)
}

func TestReconcile_PaidCompletesSession(t *testing.T) {
	applier := &recordingApplier{}
	next := &recordingRescheduler{}
	h := NewReconcileHandler(stubChecker{status: models.PaymentPaid}, applier, next, zap.NewNop())

	require.NoError(t, h(context.Background(), reconcileTask(t, 1)))
	assert.Equal(t, []models.PaymentStatus{models.PaymentPaid}, applier.calls)
	assert.Empty(t, next.payloads)
}

func TestReconcile_PendingReschedules(t *testing.T) {
	applier := &recordingApplier{}
	next := &recordingRescheduler{}
	h := NewReconcileHandler(stubChecker{status: models.PaymentPending}, applier, next, zap.NewNop())

	require.NoError(t, h(context.Background(), reconcileTask(t, 2)))
	require.Len(t, next.payloads, 1)
	assert.Equal(t, 3, next.payloads[0].Attempt)
	assert.Empty(t, applier.calls)

	require.NoError(t, h(context.Background(), reconcileTask(t, tasks.MaxReconcileAttempts)))
	assert.Len(t, next.payloads, 1)
}

func TestReconcile_CheckErrorIsRetried(t *testing.T) {
	h := NewReconcileHandler(stubChecker{err: errors.New("timeout")}, &recordingApplier{}, &recordingRescheduler{}, zap.NewNop())
	assert.Error(t, h(context.Background(), reconcileTask(t, 1)))
}

func TestReconcile_ExpiredSessionIsDropped(t *testing.T) {
	applier := &recordingApplier{err: utils.NewSessionNotFound("sess-1")}
	h := NewReconcileHandler(stubChecker{status: models.PaymentPaid}, applier, &recordingRescheduler{}, zap.NewNop())
	assert.NoError(t, h(context.Background(), reconcileTask(t, 1)))
}

func TestReconcile_BadPayloadIsDropped(t *testing.T) {
	h := NewReconcileHandler(stubChecker{}, &recordingApplier{}, &recordingRescheduler{}, zap.NewNop())
	assert.NoError(t, h(context.Background(), asynq.NewTask(tasks.TypePaymentReconcile, []byte("nope"))))
}
