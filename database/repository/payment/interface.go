package paymentRepo

import (
	"context"
	"errors"

	"quickmechanic/models"
)

var (
	// ErrNotFound is returned when no payment session matches.
	ErrNotFound = errors.New("payment session not found")
	// ErrActiveExists is returned when the draft already has an active payment session.
	ErrActiveExists = errors.New("draft already has an active payment session")
)

// PaymentSessionRepository persists deposit attempts.
type PaymentSessionRepository interface {
	Create(ctx context.Context, ps models.PaymentSession) error
	GetByID(ctx context.Context, id string) (*models.PaymentSession, error)
	GetActiveByDraft(ctx context.Context, draftID string) (*models.PaymentSession, error)
	// UpdateStatus records status; terminal statuses also clear the active flag.
	UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.PaymentSession, error)
}
