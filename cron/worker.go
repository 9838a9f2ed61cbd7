package cron

import (
	"context"
	"time"

	"quickmechanic/config"
	"quickmechanic/models"
	"quickmechanic/services/booking"
	"quickmechanic/services/tasks"
	"quickmechanic/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// PaymentChecker is satisfied by *payment.Gate.
type PaymentChecker interface {
	Check(ctx context.Context, paymentID string) (models.PaymentStatus, error)
}

// OutcomeApplier is satisfied by booking.BookingService.
type OutcomeApplier interface {
	ApplyPaymentOutcome(ctx context.Context, sessionID, paymentID string, status models.PaymentStatus) (*booking.Session, error)
}

// Rescheduler queues the next reconcile attempt.
type Rescheduler interface {
	Schedule(ctx context.Context, p tasks.ReconcilePayload) error
}

// NewReconcileHandler re-checks a timed-out deposit and completes the booking
// session once the payment settles. Still-pending payments are retried up to
// tasks.MaxReconcileAttempts times.
func NewReconcileHandler(checker PaymentChecker, applier OutcomeApplier, next Rescheduler, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReconcilePayload(task)
		if err != nil {
			logger.Error("dropping reconcile task", zap.Error(err))
			return nil
		}
		log := logger.With(
			zap.String("sessionID", p.SessionID),
			zap.String("paymentID", p.PaymentID),
			zap.Int("attempt", p.Attempt),
		)

		status, err := checker.Check(ctx, p.PaymentID)
		if err != nil {
			log.Warn("reconcile status check failed", zap.Error(err))
			return err
		}

		if !status.Terminal() {
			if p.Attempt >= tasks.MaxReconcileAttempts {
				log.Warn("payment still pending, giving up reconcile")
				return nil
			}
			p.Attempt++
			return next.Schedule(ctx, p)
		}

		sess, err := applier.ApplyPaymentOutcome(ctx, p.SessionID, p.PaymentID, status)
		if err != nil {
			if utils.HasCode(err, utils.CodeSessionNotFound) {
				log.Info("booking session expired before payment settled", zap.String("status", string(status)))
				return nil
			}
			return err
		}
		log.Info("payment reconciled", zap.String("status", string(status)), zap.String("state", string(sess.State)))
		return nil
	}
}

// RedisOpt is the asynq connection for the task database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}
}

// InitReconcileWorker starts the asynq worker in background and returns the
// server for Shutdown.
func InitReconcileWorker(handler asynq.Handler, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypePaymentReconcile, handler)

	go func() {
		logger.Info("starting reconcile worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Start(mux); err != nil {
				logger.Error("reconcile worker failed to start",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err),
				)
				if attempts == maxAttempts {
					logger.Error("reconcile worker gave up; timed-out payments will not be reconciled")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
	return srv
}
