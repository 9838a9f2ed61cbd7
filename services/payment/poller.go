package payment

import (
	"context"
	"time"

	"quickmechanic/models"
	"quickmechanic/utils"

	"go.uber.org/zap"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollAttempts = 5
)

// Poller reads a StatusSource at a fixed interval until the payment reaches a
// terminal status or the attempts run out.
type Poller struct {
	source   StatusSource
	interval time.Duration
	attempts int
	logger   *zap.Logger
}

func NewPoller(source StatusSource, interval time.Duration, attempts int, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if attempts <= 0 {
		attempts = DefaultPollAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{source: source, interval: interval, attempts: attempts, logger: logger}
}

// Await returns the first terminal status observed for paymentID. When every
// attempt reports pending (or fails to read) it returns PaymentPending with a
// PAYMENT_TIMEOUT error. Cancelling ctx stops polling and returns ctx.Err().
func (p *Poller) Await(ctx context.Context, paymentID string) (models.PaymentStatus, error) {
	for attempt := 1; attempt <= p.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		status, err := p.source.Status(ctx, paymentID)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			p.logger.Warn("payment status read failed",
				zap.String("paymentID", paymentID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		case status.Terminal():
			p.logger.Info("payment settled",
				zap.String("paymentID", paymentID),
				zap.String("status", string(status)),
				zap.Int("attempt", attempt),
			)
			return status, nil
		}

		if attempt == p.attempts {
			break
		}
		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	p.logger.Info("payment poll exhausted", zap.String("paymentID", paymentID), zap.Int("attempts", p.attempts))
	return models.PaymentPending, utils.NewPaymentTimeout(paymentID)
}
