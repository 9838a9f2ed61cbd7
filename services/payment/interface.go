package payment

import (
	"context"
	"errors"
	"strings"

	"quickmechanic/models"
)

// DepositDescription labels every pre-booking deposit.
const DepositDescription = "QuickMechanic - Pré-reserva"

// ErrManualConfirmUnsupported is returned when the active collaborator has no
// manual confirmation step.
var ErrManualConfirmUnsupported = errors.New("payment mode does not support manual confirmation")

// Collaborator opens a deposit at an external payment provider.
type Collaborator interface {
	Mode() models.PaymentMode
	Initiate(ctx context.Context, req models.PaymentRequest) (*models.PaymentSession, error)
}

// StatusSource reports the current status of a payment session id.
type StatusSource interface {
	Status(ctx context.Context, paymentID string) (models.PaymentStatus, error)
}

// ManualConfirmer is implemented by collaborators where the user confirms the
// transfer themselves.
type ManualConfirmer interface {
	ConfirmManual(ctx context.Context, paymentID string) error
}

// ParseStatus normalizes provider status strings.
func ParseStatus(raw string) models.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid", "approved", "completed", "complete", "succeeded":
		return models.PaymentPaid
	case "expired":
		return models.PaymentExpired
	case "failed", "rejected", "declined":
		return models.PaymentFailed
	case "cancelled", "canceled":
		return models.PaymentCancelled
	default:
		return models.PaymentPending
	}
}
