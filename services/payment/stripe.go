package payment

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"quickmechanic/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// StripeCheckout opens Stripe Checkout sessions for the deposit and reads
// their status back.
type StripeCheckout struct {
	api    *client.API
	logger *zap.Logger
}

// NewStripeCheckout builds the collaborator. backends may be nil to use
// Stripe's defaults.
func NewStripeCheckout(key string, backends *stripe.Backends, logger *zap.Logger) *StripeCheckout {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StripeCheckout{api: client.New(key, backends), logger: logger}
}

func (s *StripeCheckout) Mode() models.PaymentMode { return models.PaymentModeHosted }

func (s *StripeCheckout) Initiate(ctx context.Context, req models.PaymentRequest) (*models.PaymentSession, error) {
	origin := strings.TrimRight(req.OriginURL, "/")
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(origin + "/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(origin + "/quote"),
		ClientReferenceID: stripe.String(req.DraftID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(req.Currency)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(int64(math.Round(req.Amount * 100))),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("order_id", req.OrderID)
	params.AddMetadata("draft_id", req.DraftID)

	cs, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe checkout session: %w", err)
	}

	now := time.Now()
	ps := &models.PaymentSession{
		ID:          cs.ID,
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
	}
	if cs.ExpiresAt > 0 {
		expires := time.Unix(cs.ExpiresAt, 0)
		ps.ExpiresAt = &expires
	}
	s.logger.Info("stripe checkout created", zap.String("paymentID", cs.ID), zap.String("orderID", req.OrderID))
	return ps, nil
}

func (s *StripeCheckout) Status(ctx context.Context, paymentID string) (models.PaymentStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	cs, err := s.api.CheckoutSessions.Get(paymentID, params)
	if err != nil {
		return "", fmt.Errorf("get stripe checkout session %s: %w", paymentID, err)
	}
	switch {
	case cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		return models.PaymentPaid, nil
	case cs.Status == stripe.CheckoutSessionStatusExpired:
		return models.PaymentExpired, nil
	default:
		return models.PaymentPending, nil
	}
}
