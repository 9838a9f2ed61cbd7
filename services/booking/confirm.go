package booking

import (
	"context"
	"errors"
	"time"

	"quickmechanic/models"
	"quickmechanic/services/quote"
	"quickmechanic/services/staging"
	"quickmechanic/utils"

	"go.uber.org/zap"
)

// A Submitting flag older than this is treated as left over from a crash.
const submitLease = 2 * time.Minute

func validationIncomplete(sess *Session) error {
	return utils.NewValidationIncomplete(sess.Form.MissingFields())
}

// Confirm submits the summary. Anonymous callers get their draft staged and an
// AUTHENTICATION_REQUIRED error carrying the staging key. Authenticated callers
// get the vehicle and order created and a deposit opened; the session moves to
// PAYMENT_PENDING only when all of that succeeded. While the backend calls run,
// every other change to the session is refused with SUBMISSION_IN_PROGRESS.
func (s *DefaultBookingService) Confirm(ctx context.Context, sessionID string, who *Identity, originURL string) (*Session, error) {
	anonymous := who == nil || who.UserID == ""

	var since time.Time
	sess, err := s.mutate(ctx, sessionID, func(sess *Session) error {
		if err := s.guard(sess); err != nil {
			return err
		}
		if err := sess.can(EventConfirmed); err != nil {
			return err
		}
		if !sess.Form.IsComplete() {
			return validationIncomplete(sess)
		}
		if anonymous {
			return s.stage(ctx, sess)
		}
		since = s.now()
		sess.Submitting = true
		sess.SubmittingSince = &since
		sess.OwnerID = who.UserID
		return nil
	})
	if err != nil {
		return nil, err
	}
	if anonymous {
		s.logger.Info("booking staged for login", zap.String("sessionID", sess.ID))
		return sess, utils.NewAuthenticationRequired(sess.StagingKey)
	}

	vehicleID, orderID := sess.VehicleID, sess.OrderID
	ps, failure := s.submit(ctx, sess, &vehicleID, &orderID, originURL)

	// stale is set when the session is no longer ours to confirm: another
	// submission took over after the lease ran out, or the session moved on.
	var stale error
	final, err := s.mutate(ctx, sessionID, func(cur *Session) error {
		if !cur.Submitting || cur.SubmittingSince == nil || !cur.SubmittingSince.Equal(since) {
			stale = utils.NewSubmissionInProgress()
			return nil
		}
		cur.Submitting = false
		cur.SubmittingSince = nil
		if sameVehicle(cur.Vehicle, sess.Vehicle) {
			cur.VehicleID = vehicleID
			cur.OrderID = orderID
		}
		if failure != nil {
			return nil
		}
		if err := cur.apply(EventConfirmed); err != nil {
			stale = err
			return nil
		}
		cur.Payment = ps
		cur.LastPaymentStatus = ps.Status
		return nil
	})
	if err == nil && stale != nil {
		err = stale
	}
	if err != nil {
		if ps != nil {
			s.releasePayment(ctx, sessionID, ps.ID)
		}
		s.logger.Warn("booking confirmation discarded",
			zap.String("sessionID", sessionID),
			zap.String("orderID", orderID),
			zap.Error(err),
		)
		return final, err
	}
	if failure != nil {
		s.logger.Warn("booking confirmation failed",
			zap.String("sessionID", sessionID),
			zap.String("orderID", orderID),
			zap.Error(failure),
		)
		return final, failure
	}

	s.logger.Info("booking awaiting deposit",
		zap.String("sessionID", sessionID),
		zap.String("orderID", orderID),
		zap.String("paymentID", ps.ID),
	)
	return final, nil
}

// submitInFlight reports whether a confirmation holds a live Submitting lease.
func (s *DefaultBookingService) submitInFlight(sess *Session) bool {
	return sess.Submitting && sess.SubmittingSince != nil && s.now().Sub(*sess.SubmittingSince) < submitLease
}

// guard refuses any change to a session whose confirmation is in flight.
func (s *DefaultBookingService) guard(sess *Session) error {
	if s.submitInFlight(sess) {
		return utils.NewSubmissionInProgress()
	}
	return nil
}

// sameVehicle reports whether backend ids created for b still describe a.
func sameVehicle(a, b *models.Vehicle) bool {
	return a != nil && b != nil && a.Plate == b.Plate
}

// releasePayment cancels a deposit opened for a confirmation that could not be
// committed, so the draft can open a new one.
func (s *DefaultBookingService) releasePayment(ctx context.Context, sessionID, paymentID string) {
	if err := s.payments.Cancel(context.WithoutCancel(ctx), sessionID, paymentID); err != nil {
		s.logger.Error("failed to release orphaned payment",
			zap.String("sessionID", sessionID),
			zap.String("paymentID", paymentID),
			zap.Error(err),
		)
	}
}

// submit creates whatever backend records are still missing and opens the
// deposit. Ids obtained before a failure are kept for the retry.
func (s *DefaultBookingService) submit(ctx context.Context, sess *Session, vehicleID, orderID *string, originURL string) (*models.PaymentSession, error) {
	if *vehicleID == "" {
		id, err := s.orders.CreateVehicle(ctx, *sess.Vehicle)
		if err != nil {
			return nil, asWorkflow("could not register vehicle, please try again", err)
		}
		*vehicleID = id
	}

	if *orderID == "" {
		d := sess.Form.Draft
		id, err := s.orders.CreateOrder(ctx, models.OrderRequest{
			VehicleID:    *vehicleID,
			Service:      d.ServiceType,
			Location:     d.LocationText,
			Description:  d.Notes,
			Date:         d.Date,
			Time:         d.Time,
			LocationType: string(d.LocationKind),
		})
		if err != nil {
			return nil, asWorkflow("could not create order, please try again", err)
		}
		*orderID = id
	}

	ps, err := s.payments.Initiate(ctx, sess.ID, *orderID, originURL)
	if err != nil {
		return nil, asWorkflow("could not start payment, please try again", err)
	}
	return ps, nil
}

func (s *DefaultBookingService) stage(ctx context.Context, sess *Session) error {
	rec := staging.Record{
		VehicleData:     sess.Vehicle,
		BookingData:     sess.Form.Draft,
		SelectedService: sess.Form.Service,
		SavedAt:         s.now(),
	}
	if err := s.staging.Save(ctx, sess.ID, rec); err != nil {
		return utils.NewNetworkFailure("could not save your booking, please try again", err)
	}
	sess.StagingKey = sess.ID
	return nil
}

// ResumeAfterLogin rebuilds a staged draft into a new session owned by who,
// positioned at the summary.
func (s *DefaultBookingService) ResumeAfterLogin(ctx context.Context, stagingKey string, who Identity) (*Session, error) {
	if who.UserID == "" {
		return nil, utils.NewAuthenticationRequired(stagingKey)
	}
	rec, err := s.staging.Load(ctx, stagingKey)
	switch {
	case errors.Is(err, staging.ErrNotStaged):
		return nil, utils.NewNotFound("no staged booking to resume")
	case errors.Is(err, staging.ErrUnsupportedVersion):
		return nil, utils.NewInvalidFormat("staged booking is from an older version, please start again")
	case err != nil:
		return nil, utils.NewNetworkFailure("could not load staged booking", err)
	}

	form := quote.FormState{Draft: rec.BookingData, Service: rec.SelectedService}
	if form.Service == nil && form.Draft.ServiceType != "" {
		if svc, ok := quote.LookupService(form.Draft.ServiceType); ok {
			form.Service = &svc
		}
	}

	sess := s.newSession()
	sess.OwnerID = who.UserID
	sess.Vehicle = rec.VehicleData
	sess.Form = form
	if !form.IsComplete() {
		return nil, validationIncomplete(sess)
	}
	sess.State = StateSummary

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	if err := s.staging.Clear(ctx, stagingKey); err != nil {
		s.logger.Warn("failed to clear staged booking", zap.String("stagingKey", stagingKey), zap.Error(err))
	}
	s.logger.Info("booking resumed after login",
		zap.String("sessionID", sess.ID),
		zap.String("userID", who.UserID),
	)
	return sess, nil
}
