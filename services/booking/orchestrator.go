package booking

import (
	"context"

	"quickmechanic/models"
	"quickmechanic/services/quote"
	"quickmechanic/services/vehicle"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) load(ctx context.Context, id string) (*Session, error) {
	sess, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, storeError(id, err)
	}
	return sess, nil
}

func (s *DefaultBookingService) save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.Error("failed to store booking session", zap.String("sessionID", sess.ID), zap.Error(err))
		return storeError(sess.ID, err)
	}
	return nil
}

// mutate loads the session under its lock, runs fn and stores the result.
// Nothing is stored when fn fails.
func (s *DefaultBookingService) mutate(ctx context.Context, id string, fn func(sess *Session) error) (*Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *DefaultBookingService) newSession() *Session {
	now := s.now()
	return &Session{
		ID:        uuid.New().String(),
		State:     StateVehicleConfirmation,
		Form:      quote.NewFormState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Start opens a session at vehicle confirmation.
func (s *DefaultBookingService) Start(ctx context.Context) (*Session, error) {
	sess := s.newSession()
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info("booking session started", zap.String("sessionID", sess.ID))
	return sess, nil
}

func (s *DefaultBookingService) Get(ctx context.Context, sessionID string) (*Session, error) {
	return s.load(ctx, sessionID)
}

// ConfirmVehicle resolves plate and moves on to service selection. On a miss
// the session stays put and the caller offers manual entry.
func (s *DefaultBookingService) ConfirmVehicle(ctx context.Context, sessionID, plate string) (*Session, error) {
	return s.mutate(ctx, sessionID, func(sess *Session) error {
		if err := s.guard(sess); err != nil {
			return err
		}
		if err := sess.can(EventVehicleResolved); err != nil {
			return err
		}
		v, err := s.vehicles.Resolve(ctx, plate)
		if err != nil {
			return err
		}
		sess.Vehicle = v
		sess.VehicleID = ""
		return sess.apply(EventVehicleResolved)
	})
}

// AcceptManualVehicle takes a vehicle typed in by the user.
func (s *DefaultBookingService) AcceptManualVehicle(ctx context.Context, sessionID string, v models.Vehicle) (*Session, error) {
	return s.mutate(ctx, sessionID, func(sess *Session) error {
		if err := s.guard(sess); err != nil {
			return err
		}
		if err := sess.can(EventManualEntryAccepted); err != nil {
			return err
		}
		manual, err := vehicle.ValidateManualVehicle(v)
		if err != nil {
			return err
		}
		sess.Vehicle = manual
		sess.VehicleID = ""
		return sess.apply(EventManualEntryAccepted)
	})
}

func (s *DefaultBookingService) SelectService(ctx context.Context, sessionID, serviceID string) (*Session, error) {
	return s.mutate(ctx, sessionID, func(sess *Session) error {
		if err := s.guard(sess); err != nil {
			return err
		}
		if err := sess.can(EventServiceChosen); err != nil {
			return err
		}
		if err := sess.Form.SelectService(serviceID); err != nil {
			return err
		}
		return sess.apply(EventServiceChosen)
	})
}

func (s *DefaultBookingService) UpdateDraft(ctx context.Context, sessionID string, patch models.DraftPatch) (*Session, error) {
	return s.mutate(ctx, sessionID, func(sess *Session) error {
		if err := s.guard(sess); err != nil {
			return err
		}
		if err := sess.can(EventDraftEdited); err != nil {
			return err
		}
		if err := sess.Form.Apply(patch); err != nil {
			return err
		}
		return sess.apply(EventDraftEdited)
	})
}

// SubmitSchedule moves to the summary once every required field is set.
func (s *DefaultBookingService) SubmitSchedule(ctx context.Context, sessionID string) (*Session, error) {
	return s.mutate(ctx, sessionID, func(sess *Session) error {
		if err := s.guard(sess); err != nil {
			return err
		}
		if err := sess.can(EventScheduleCompleted); err != nil {
			return err
		}
		if !sess.Form.IsComplete() {
			return validationIncomplete(sess)
		}
		return sess.apply(EventScheduleCompleted)
	})
}

func (s *DefaultBookingService) Back(ctx context.Context, sessionID string) (*Session, error) {
	return s.mutate(ctx, sessionID, func(sess *Session) error {
		if err := s.guard(sess); err != nil {
			return err
		}
		from := sess.State
		if err := sess.apply(EventBack); err != nil {
			return err
		}
		if from == StateServiceSelection {
			sess.Vehicle = nil
			sess.VehicleID = ""
		}
		return nil
	})
}

// Restart clears the session back to vehicle confirmation. Any open payment
// is cancelled and the staged copy dropped.
func (s *DefaultBookingService) Restart(ctx context.Context, sessionID string) (*Session, error) {
	return s.mutate(ctx, sessionID, func(sess *Session) error {
		if err := s.guard(sess); err != nil {
			return err
		}
		if err := sess.can(EventRestart); err != nil {
			return err
		}
		if sess.Payment != nil {
			if err := s.payments.Cancel(ctx, sess.ID, sess.Payment.ID); err != nil {
				return err
			}
		}
		if err := s.staging.Clear(ctx, sess.ID); err != nil {
			s.logger.Warn("failed to clear staged booking", zap.String("sessionID", sess.ID), zap.Error(err))
		}

		sess.Vehicle = nil
		sess.Form.Reset()
		sess.VehicleID = ""
		sess.OrderID = ""
		sess.Payment = nil
		sess.LastPaymentStatus = ""
		sess.StagingKey = ""
		sess.Submitting = false
		sess.SubmittingSince = nil
		return sess.apply(EventRestart)
	})
}
