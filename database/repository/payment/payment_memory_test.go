package paymentRepo

import (
	"context"
	"testing"

	"quickmechanic/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo_OneActivePerDraft(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPaymentSessionRepo()

	require.NoError(t, repo.Create(ctx, models.PaymentSession{ID: "p1", DraftID: "d1", Status: models.PaymentPending, Active: true}))
	err := repo.Create(ctx, models.PaymentSession{ID: "p2", DraftID: "d1", Status: models.PaymentPending, Active: true})
	assert.ErrorIs(t, err, ErrActiveExists)

	ps, err := repo.UpdateStatus(ctx, "p1", models.PaymentFailed)
	require.NoError(t, err)
	assert.False(t, ps.Active)

	require.NoError(t, repo.Create(ctx, models.PaymentSession{ID: "p2", DraftID: "d1", Status: models.PaymentPending, Active: true}))
	active, err := repo.GetActiveByDraft(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "p2", active.ID)
}

func TestMemoryRepo_NotFound(t *testing.T) {
	repo := NewMemoryPaymentSessionRepo()
	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.UpdateStatus(context.Background(), "nope", models.PaymentPaid)
	assert.ErrorIs(t, err, ErrNotFound)
}
