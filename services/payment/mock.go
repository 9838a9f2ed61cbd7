package payment

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"quickmechanic/models"
	"quickmechanic/services/backend"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	pixPrefix  = "00020126"
	pixDigits  = 100
	pixTimeout = 30 * time.Minute
)

// PIXGenerator asks an upstream for a PIX code.
type PIXGenerator interface {
	GeneratePIX(ctx context.Context, amount float64, description string) (*backend.PIXCharge, error)
}

type mockEntry struct {
	status    models.PaymentStatus
	expiresAt time.Time
}

// MockPIX issues PIX copy-and-paste codes and keeps a ledger the user settles
// by confirming manually. It is both the collaborator and the status source in
// mock mode.
type MockPIX struct {
	mu        sync.Mutex
	ledger    map[string]*mockEntry
	generator PIXGenerator
	now       func() time.Time
	logger    *zap.Logger
}

// NewMockPIX builds the mock collaborator. generator may be nil, in which case
// codes are generated locally.
func NewMockPIX(generator PIXGenerator, logger *zap.Logger) *MockPIX {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MockPIX{
		ledger:    make(map[string]*mockEntry),
		generator: generator,
		now:       time.Now,
		logger:    logger,
	}
}

func (m *MockPIX) Mode() models.PaymentMode { return models.PaymentModeMock }

func (m *MockPIX) Initiate(ctx context.Context, req models.PaymentRequest) (*models.PaymentSession, error) {
	code := ""
	if m.generator != nil {
		charge, err := m.generator.GeneratePIX(ctx, req.Amount, req.Description)
		if err != nil {
			m.logger.Warn("upstream pix generation failed, using local code", zap.Error(err))
		} else {
			code = charge.Code
		}
	}
	if code == "" {
		code = localPIXCode()
	}

	now := m.now()
	expires := now.Add(pixTimeout)
	ps := &models.PaymentSession{
		ID:          uuid.New().String(),
		DraftID:     req.DraftID,
		OrderID:     req.OrderID,
		Mode:        models.PaymentModeMock,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		Reference:   code,
		ExpiresAt:   &expires,
		Status:      models.PaymentPending,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	m.mu.Lock()
	m.ledger[ps.ID] = &mockEntry{status: models.PaymentPending, expiresAt: expires}
	m.mu.Unlock()

	m.logger.Info("mock pix issued", zap.String("paymentID", ps.ID), zap.Float64("amount", req.Amount))
	return ps, nil
}

// ConfirmManual marks a pending paymentID as paid. Other states are left
// alone for the next status read to report.
func (m *MockPIX) ConfirmManual(ctx context.Context, paymentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.ledger[paymentID]
	if !ok {
		return fmt.Errorf("unknown mock payment %s", paymentID)
	}
	if entry.status == models.PaymentPending && m.now().After(entry.expiresAt) {
		entry.status = models.PaymentExpired
	}
	if entry.status == models.PaymentPending {
		entry.status = models.PaymentPaid
	}
	return nil
}

func (m *MockPIX) Status(ctx context.Context, paymentID string) (models.PaymentStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.ledger[paymentID]
	if !ok {
		return "", fmt.Errorf("unknown mock payment %s", paymentID)
	}
	if entry.status == models.PaymentPending && m.now().After(entry.expiresAt) {
		entry.status = models.PaymentExpired
	}
	return entry.status, nil
}

func localPIXCode() string {
	var b strings.Builder
	b.Grow(len(pixPrefix) + pixDigits)
	b.WriteString(pixPrefix)
	for i := 0; i < pixDigits; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}
