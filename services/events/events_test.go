package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher_EmptyURLIsNoop(t *testing.T) {
	p, err := NewPublisher("", nil)
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), Event{Type: BookingSubmitted}))
	assert.NoError(t, p.Close())
}

func TestEvent_JSONShape(t *testing.T) {
	data, err := json.Marshal(Event{
		Type:      PaymentTimeout,
		SessionID: "s1",
		PaymentID: "p1",
		At:        time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"payment.timeout","sessionId":"s1","paymentId":"p1","at":"2026-10-16T09:00:00Z"}`, string(data))
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Publish(context.Background(), Event{Type: PaymentFailed}))
	require.NoError(t, r.Publish(context.Background(), Event{Type: BookingSubmitted}))
	assert.Equal(t, []string{PaymentFailed, BookingSubmitted}, r.Types())
}
