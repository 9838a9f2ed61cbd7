package booking

import (
	"context"
	"time"

	"quickmechanic/models"
	"quickmechanic/services/events"
	"quickmechanic/services/staging"

	"go.uber.org/zap"
)

// BookingService drives one booking session from vehicle lookup to a paid
// pre-booking.
type BookingService interface {
	Start(ctx context.Context) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	ConfirmVehicle(ctx context.Context, sessionID, plate string) (*Session, error)
	AcceptManualVehicle(ctx context.Context, sessionID string, v models.Vehicle) (*Session, error)
	SelectService(ctx context.Context, sessionID, serviceID string) (*Session, error)
	UpdateDraft(ctx context.Context, sessionID string, patch models.DraftPatch) (*Session, error)
	SubmitSchedule(ctx context.Context, sessionID string) (*Session, error)
	Back(ctx context.Context, sessionID string) (*Session, error)
	Restart(ctx context.Context, sessionID string) (*Session, error)
	Confirm(ctx context.Context, sessionID string, who *Identity, originURL string) (*Session, error)
	ResumeAfterLogin(ctx context.Context, stagingKey string, who Identity) (*Session, error)
	ConfirmMockPayment(ctx context.Context, sessionID string) (*Session, error)
	HandlePaymentReturn(ctx context.Context, sessionID, paymentID string) (*Session, error)
	CancelPayment(ctx context.Context, sessionID string) (*Session, error)
	ApplyPaymentOutcome(ctx context.Context, sessionID, paymentID string, status models.PaymentStatus) (*Session, error)
}

// VehicleResolver is satisfied by *vehicle.Identifier.
type VehicleResolver interface {
	Resolve(ctx context.Context, plate string) (*models.Vehicle, error)
}

// OrderAPI creates the server-side records for a confirmed draft.
type OrderAPI interface {
	CreateVehicle(ctx context.Context, v models.Vehicle) (string, error)
	CreateOrder(ctx context.Context, req models.OrderRequest) (string, error)
}

// PaymentGate is satisfied by *payment.Gate.
type PaymentGate interface {
	Mode() models.PaymentMode
	Initiate(ctx context.Context, draftID, orderID, originURL string) (*models.PaymentSession, error)
	Await(ctx context.Context, draftID, paymentID string) (models.PaymentStatus, error)
	ConfirmManual(ctx context.Context, paymentID string) error
	Cancel(ctx context.Context, draftID, paymentID string) error
}

// ReconcileScheduler queues a later status check for a payment that timed out.
type ReconcileScheduler interface {
	ScheduleReconcile(ctx context.Context, sessionID, paymentID string) error
}

// Deps wires DefaultBookingService. Events and Reconciler are optional.
type Deps struct {
	Sessions   SessionStore
	Staging    staging.Store
	Vehicles   VehicleResolver
	Orders     OrderAPI
	Payments   PaymentGate
	Events     events.Publisher
	Reconciler ReconcileScheduler
	Logger     *zap.Logger
	Now        func() time.Time
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	sessions   SessionStore
	staging    staging.Store
	vehicles   VehicleResolver
	orders     OrderAPI
	payments   PaymentGate
	events     events.Publisher
	reconciler ReconcileScheduler
	logger     *zap.Logger
	now        func() time.Time
	locks      *sessionLocks
}

func NewBookingService(d Deps) *DefaultBookingService {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Events == nil {
		d.Events = events.NoopPublisher{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &DefaultBookingService{
		sessions:   d.Sessions,
		staging:    d.Staging,
		vehicles:   d.Vehicles,
		orders:     d.Orders,
		payments:   d.Payments,
		events:     d.Events,
		reconciler: d.Reconciler,
		logger:     d.Logger,
		now:        d.Now,
		locks:      newSessionLocks(),
	}
}
