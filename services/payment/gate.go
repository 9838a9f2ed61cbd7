package payment

import (
	"context"
	"errors"
	"sync"

	paymentRepo "quickmechanic/database/repository/payment"
	"quickmechanic/models"
	"quickmechanic/utils"

	"go.uber.org/zap"
)

// Gate runs the pre-booking deposit: it opens payment sessions through the
// configured collaborator, records them, and polls for the outcome.
type Gate struct {
	collaborator Collaborator
	source       StatusSource
	poller       *Poller
	repo         paymentRepo.PaymentSessionRepository
	amount       float64
	currency     string
	logger       *zap.Logger

	mu       sync.Mutex
	inflight map[string]*inflightPoll
}

type inflightPoll struct {
	cancel context.CancelFunc
}

// GateConfig carries the deposit terms.
type GateConfig struct {
	Amount   float64
	Currency string
}

func NewGate(collaborator Collaborator, source StatusSource, poller *Poller, repo paymentRepo.PaymentSessionRepository, cfg GateConfig, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Currency == "" {
		cfg.Currency = "brl"
	}
	return &Gate{
		collaborator: collaborator,
		source:       source,
		poller:       poller,
		repo:         repo,
		amount:       cfg.Amount,
		currency:     cfg.Currency,
		logger:       logger,
		inflight:     make(map[string]*inflightPoll),
	}
}

func (g *Gate) Mode() models.PaymentMode {
	return g.collaborator.Mode()
}

// Initiate opens a deposit for draftID. A draft with a still active payment
// session is refused with PAYMENT_ACTIVE.
func (g *Gate) Initiate(ctx context.Context, draftID, orderID, originURL string) (*models.PaymentSession, error) {
	active, err := g.repo.GetActiveByDraft(ctx, draftID)
	if err == nil {
		return nil, utils.NewPaymentActive(active.ID)
	}
	if !errors.Is(err, paymentRepo.ErrNotFound) {
		return nil, utils.NewNetworkFailure("could not check existing payments", err)
	}

	ps, err := g.collaborator.Initiate(ctx, models.PaymentRequest{
		DraftID:     draftID,
		OrderID:     orderID,
		Amount:      g.amount,
		Currency:    g.currency,
		Description: DepositDescription,
		OriginURL:   originURL,
	})
	if err != nil {
		g.logger.Warn("payment initiation failed", zap.String("draftID", draftID), zap.Error(err))
		return nil, utils.NewNetworkFailure("could not start payment, please try again", err)
	}

	if err := g.repo.Create(ctx, *ps); err != nil {
		if errors.Is(err, paymentRepo.ErrActiveExists) {
			return nil, utils.NewPaymentActive(ps.ID)
		}
		return nil, utils.NewNetworkFailure("could not record payment", err)
	}

	g.logger.Info("payment initiated",
		zap.String("draftID", draftID),
		zap.String("orderID", orderID),
		zap.String("paymentID", ps.ID),
		zap.String("mode", string(ps.Mode)),
	)
	return ps, nil
}

// Await polls paymentID on behalf of draftID. Only one poll runs per draft; a
// newer call supersedes the older one. Terminal outcomes are recorded.
func (g *Gate) Await(ctx context.Context, draftID, paymentID string) (models.PaymentStatus, error) {
	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	poll := &inflightPoll{cancel: cancel}
	g.mu.Lock()
	if prev, ok := g.inflight[draftID]; ok {
		prev.cancel()
	}
	g.inflight[draftID] = poll
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		if g.inflight[draftID] == poll {
			delete(g.inflight, draftID)
		}
		g.mu.Unlock()
	}()

	status, err := g.poller.Await(pollCtx, paymentID)
	if err != nil {
		return status, err
	}
	g.record(ctx, paymentID, status)
	return status, nil
}

// Check reads the status once. Already settled sessions are answered from the
// store.
func (g *Gate) Check(ctx context.Context, paymentID string) (models.PaymentStatus, error) {
	stored, err := g.repo.GetByID(ctx, paymentID)
	if err == nil && stored.Status.Terminal() {
		return stored.Status, nil
	}
	if err != nil && !errors.Is(err, paymentRepo.ErrNotFound) {
		g.logger.Warn("payment session lookup failed", zap.String("paymentID", paymentID), zap.Error(err))
	}

	status, err := g.source.Status(ctx, paymentID)
	if err != nil {
		return "", utils.NewNetworkFailure("could not read payment status", err)
	}
	if status.Terminal() {
		g.record(ctx, paymentID, status)
	}
	return status, nil
}

// ConfirmManual settles a mock deposit after the user says they paid.
func (g *Gate) ConfirmManual(ctx context.Context, paymentID string) error {
	confirmer, ok := g.collaborator.(ManualConfirmer)
	if !ok {
		return utils.NewInvalidTransition(string(g.Mode()), "ManualConfirm")
	}
	if err := confirmer.ConfirmManual(ctx, paymentID); err != nil {
		return utils.NewNotFound(err.Error())
	}
	return nil
}

// Cancel stops any in-flight poll for draftID and marks paymentID cancelled.
// Server-side order state is untouched.
func (g *Gate) Cancel(ctx context.Context, draftID, paymentID string) error {
	g.mu.Lock()
	if poll, ok := g.inflight[draftID]; ok {
		poll.cancel()
		delete(g.inflight, draftID)
	}
	g.mu.Unlock()

	if paymentID == "" {
		return nil
	}
	if _, err := g.repo.UpdateStatus(ctx, paymentID, models.PaymentCancelled); err != nil && !errors.Is(err, paymentRepo.ErrNotFound) {
		return utils.NewNetworkFailure("could not cancel payment", err)
	}
	g.logger.Info("payment cancelled", zap.String("draftID", draftID), zap.String("paymentID", paymentID))
	return nil
}

// Get returns the recorded payment session.
func (g *Gate) Get(ctx context.Context, paymentID string) (*models.PaymentSession, error) {
	ps, err := g.repo.GetByID(ctx, paymentID)
	if errors.Is(err, paymentRepo.ErrNotFound) {
		return nil, utils.NewNotFound("payment " + paymentID + " not found")
	}
	if err != nil {
		return nil, utils.NewNetworkFailure("could not load payment", err)
	}
	return ps, nil
}

func (g *Gate) record(ctx context.Context, paymentID string, status models.PaymentStatus) {
	if _, err := g.repo.UpdateStatus(ctx, paymentID, status); err != nil {
		g.logger.Warn("failed to record payment status",
			zap.String("paymentID", paymentID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}
