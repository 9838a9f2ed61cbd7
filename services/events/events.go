package events

import (
	"context"
	"sync"
	"time"
)

// Routing keys published by the booking workflow.
const (
	BookingSubmitted = "booking.submitted"
	PaymentTimeout   = "payment.timeout"
	PaymentFailed    = "payment.failed"
)

// Event is a workflow milestone announced to the rest of the marketplace.
type Event struct {
	Type      string    `json:"type"`
	SessionID string    `json:"sessionId"`
	OrderID   string    `json:"orderId,omitempty"`
	PaymentID string    `json:"paymentId,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	Status    string    `json:"status,omitempty"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, evt Event) error { return nil }
func (NoopPublisher) Close() error                                 { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(ctx context.Context, evt Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Types lists the recorded event types in publish order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}
