package payment

import (
	"fmt"

	"quickmechanic/config"
	"quickmechanic/services/backend"

	"go.uber.org/zap"
)

// NewFromConfig builds the single collaborator selected by PAYMENT_MODE and the
// status source the poller reads.
func NewFromConfig(cfg config.Config, api *backend.Client, logger *zap.Logger) (Collaborator, StatusSource, error) {
	switch cfg.PaymentMode {
	case config.PaymentModeMock, "":
		var generator PIXGenerator
		if api != nil {
			generator = api
		}
		mock := NewMockPIX(generator, logger)
		return mock, mock, nil

	case config.PaymentModeHosted:
		var collaborator Collaborator
		var stripeCheckout *StripeCheckout
		if cfg.StripeKey != "" {
			stripeCheckout = NewStripeCheckout(cfg.StripeKey, nil, logger)
			collaborator = stripeCheckout
		} else {
			if api == nil {
				return nil, nil, fmt.Errorf("hosted payments need STRIPE_KEY or BACKEND_URL")
			}
			collaborator = NewBackendCheckout(api)
		}

		switch cfg.PaymentStatusSource {
		case "stripe":
			if stripeCheckout == nil {
				return nil, nil, fmt.Errorf("PAYMENT_STATUS_SOURCE=stripe needs STRIPE_KEY")
			}
			return collaborator, stripeCheckout, nil
		case "backend", "":
			if api == nil {
				return nil, nil, fmt.Errorf("PAYMENT_STATUS_SOURCE=backend needs BACKEND_URL")
			}
			return collaborator, NewBackendStatus(api), nil
		default:
			return nil, nil, fmt.Errorf("unknown PAYMENT_STATUS_SOURCE %q", cfg.PaymentStatusSource)
		}

	default:
		return nil, nil, fmt.Errorf("unknown PAYMENT_MODE %q", cfg.PaymentMode)
	}
}
