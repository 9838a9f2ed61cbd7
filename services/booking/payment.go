package booking

import (
	"context"
	"errors"

	"quickmechanic/models"
	"quickmechanic/services/events"
	"quickmechanic/utils"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) pendingPayment(ctx context.Context, sessionID, action string) (*Session, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State != StatePaymentPending || sess.Payment == nil {
		return nil, utils.NewInvalidTransition(string(sess.State), action)
	}
	return sess, nil
}

// ConfirmMockPayment records the user's "I have paid" click and waits for the
// status source to agree.
func (s *DefaultBookingService) ConfirmMockPayment(ctx context.Context, sessionID string) (*Session, error) {
	sess, err := s.pendingPayment(ctx, sessionID, "ManualConfirm")
	if err != nil {
		return nil, err
	}
	if err := s.payments.ConfirmManual(ctx, sess.Payment.ID); err != nil {
		return nil, err
	}
	return s.awaitPayment(ctx, sess)
}

// HandlePaymentReturn resumes after the hosted checkout redirect.
func (s *DefaultBookingService) HandlePaymentReturn(ctx context.Context, sessionID, paymentID string) (*Session, error) {
	sess, err := s.pendingPayment(ctx, sessionID, "PaymentReturn")
	if err != nil {
		return nil, err
	}
	if paymentID != "" && paymentID != sess.Payment.ID {
		return nil, utils.NewInvalidFormat("payment session does not belong to this booking")
	}
	return s.awaitPayment(ctx, sess)
}

func (s *DefaultBookingService) awaitPayment(ctx context.Context, sess *Session) (*Session, error) {
	paymentID := sess.Payment.ID
	status, err := s.payments.Await(ctx, sess.ID, paymentID)
	if err != nil {
		if utils.HasCode(err, utils.CodePaymentTimeout) {
			s.onPaymentTimeout(ctx, sess, paymentID)
			return sess, err
		}
		if errors.Is(err, context.Canceled) {
			// Superseded or cancelled; report whatever the session holds now.
			cur, loadErr := s.load(context.WithoutCancel(ctx), sess.ID)
			if loadErr != nil {
				return nil, loadErr
			}
			return cur, nil
		}
		return nil, asWorkflow("could not confirm payment", err)
	}
	return s.ApplyPaymentOutcome(ctx, sess.ID, paymentID, status)
}

func (s *DefaultBookingService) onPaymentTimeout(ctx context.Context, sess *Session, paymentID string) {
	s.publish(ctx, events.Event{
		Type:      events.PaymentTimeout,
		SessionID: sess.ID,
		OrderID:   sess.OrderID,
		PaymentID: paymentID,
		UserID:    sess.OwnerID,
		Status:    string(models.PaymentPending),
	})
	if s.reconciler == nil {
		return
	}
	if err := s.reconciler.ScheduleReconcile(ctx, sess.ID, paymentID); err != nil {
		s.logger.Error("failed to schedule payment reconcile",
			zap.String("sessionID", sess.ID),
			zap.String("paymentID", paymentID),
			zap.Error(err),
		)
	}
}

// CancelPayment abandons the open deposit. Local polling stops and the session
// returns to the summary with its draft intact.
func (s *DefaultBookingService) CancelPayment(ctx context.Context, sessionID string) (*Session, error) {
	sess, err := s.pendingPayment(ctx, sessionID, string(EventPaymentCancelled))
	if err != nil {
		return nil, err
	}
	if err := s.payments.Cancel(ctx, sess.ID, sess.Payment.ID); err != nil {
		return nil, err
	}
	return s.ApplyPaymentOutcome(ctx, sessionID, sess.Payment.ID, models.PaymentCancelled)
}

// ApplyPaymentOutcome moves a PAYMENT_PENDING session according to status.
// Outcomes for another payment, or arriving after the session moved on, are
// ignored so repeated confirmations are harmless.
func (s *DefaultBookingService) ApplyPaymentOutcome(ctx context.Context, sessionID, paymentID string, status models.PaymentStatus) (*Session, error) {
	var evt *events.Event
	sess, err := s.mutate(ctx, sessionID, func(sess *Session) error {
		if sess.State != StatePaymentPending || sess.Payment == nil || sess.Payment.ID != paymentID {
			return nil
		}
		switch status {
		case models.PaymentPaid:
			if err := sess.apply(EventPaymentConfirmed); err != nil {
				return err
			}
			sess.Payment.Status = status
			sess.Payment.Active = false
			evt = &events.Event{Type: events.BookingSubmitted}
		case models.PaymentFailed, models.PaymentExpired:
			if err := sess.apply(EventPaymentFailed); err != nil {
				return err
			}
			sess.Payment = nil
			evt = &events.Event{Type: events.PaymentFailed}
		case models.PaymentCancelled:
			if err := sess.apply(EventPaymentCancelled); err != nil {
				return err
			}
			sess.Payment = nil
		default:
			return nil
		}
		sess.LastPaymentStatus = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	if evt != nil {
		evt.SessionID = sess.ID
		evt.OrderID = sess.OrderID
		evt.PaymentID = paymentID
		evt.UserID = sess.OwnerID
		evt.Status = string(status)
		s.publish(ctx, *evt)
	}
	if sess.State == StateSubmitted {
		if err := s.staging.Clear(ctx, sess.ID); err != nil {
			s.logger.Warn("failed to clear staged booking", zap.String("sessionID", sess.ID), zap.Error(err))
		}
	}
	return sess, nil
}

func (s *DefaultBookingService) publish(ctx context.Context, evt events.Event) {
	evt.At = s.now()
	if err := s.events.Publish(ctx, evt); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", evt.Type), zap.Error(err))
	}
}
