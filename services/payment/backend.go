package payment

import (
	"context"
	"fmt"
	"time"

	"quickmechanic/models"
	"quickmechanic/services/backend"
)

// CheckoutAPI is the marketplace surface used by BackendCheckout and
// BackendStatus.
type CheckoutAPI interface {
	CreateCheckout(ctx context.Context, orderID, originURL string) (*backend.CheckoutSession, error)
	PaymentStatus(ctx context.Context, sessionID string) (string, error)
}

// BackendCheckout delegates hosted checkout creation to the marketplace
// backend. Used in hosted mode when no Stripe key is configured locally.
type BackendCheckout struct {
	api CheckoutAPI
}

func NewBackendCheckout(api CheckoutAPI) *BackendCheckout {
	return &BackendCheckout{api: api}
}

func (b *BackendCheckout) Mode() models.PaymentMode { return models.PaymentModeHosted }

func (b *BackendCheckout) Initiate(ctx context.Context, req models.PaymentRequest) (*models.PaymentSession, error) {
	cs, err := b.api.CreateCheckout(ctx, req.OrderID, req.OriginURL)
	if err != nil {
		return nil, fmt.Errorf("backend checkout: %w", err)
	}
	now := time.Now()
	return &models.PaymentSession{
		ID:          cs.SessionID,
		DraftID:     req.DraftID,
		OrderID:     req.OrderID,
		Mode:        models.PaymentModeHosted,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		RedirectURL: cs.URL,
		Status:      models.PaymentPending,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// BackendStatus polls GET /api/payment-status/{id}.
type BackendStatus struct {
	api CheckoutAPI
}

func NewBackendStatus(api CheckoutAPI) *BackendStatus {
	return &BackendStatus{api: api}
}

func (b *BackendStatus) Status(ctx context.Context, paymentID string) (models.PaymentStatus, error) {
	raw, err := b.api.PaymentStatus(ctx, paymentID)
	if err != nil {
		return "", err
	}
	return ParseStatus(raw), nil
}
