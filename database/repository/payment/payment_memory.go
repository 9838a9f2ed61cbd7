package paymentRepo

import (
	"context"
	"sync"
	"time"

	"quickmechanic/models"
)

// MemoryPaymentSessionRepo keeps sessions in process. It enforces the same
// one-active-per-draft rule as the Mongo index.
type MemoryPaymentSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]models.PaymentSession
}

func NewMemoryPaymentSessionRepo() *MemoryPaymentSessionRepo {
	return &MemoryPaymentSessionRepo{sessions: make(map[string]models.PaymentSession)}
}

func (r *MemoryPaymentSessionRepo) Create(ctx context.Context, ps models.PaymentSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ps.Active {
		for _, existing := range r.sessions {
			if existing.Active && existing.DraftID == ps.DraftID {
				return ErrActiveExists
			}
		}
	}
	r.sessions[ps.ID] = ps
	return nil
}

func (r *MemoryPaymentSessionRepo) GetByID(ctx context.Context, id string) (*models.PaymentSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ps, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &ps, nil
}

func (r *MemoryPaymentSessionRepo) GetActiveByDraft(ctx context.Context, draftID string) (*models.PaymentSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ps := range r.sessions {
		if ps.Active && ps.DraftID == draftID {
			found := ps
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryPaymentSessionRepo) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.PaymentSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ps, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	ps.Status = status
	ps.UpdatedAt = time.Now()
	if status.Terminal() {
		ps.Active = false
	}
	r.sessions[id] = ps
	return &ps, nil
}
