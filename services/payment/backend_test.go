package payment

import (
	"context"
	"testing"

	"quickmechanic/config"
	"quickmechanic/models"
	"quickmechanic/services/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCheckoutAPI struct {
	status     string
	gotOrder   string
	gotOrigin  string
	statusHits int
}

func (f *fakeCheckoutAPI) CreateCheckout(ctx context.Context, orderID, originURL string) (*backend.CheckoutSession, error) {
	f.gotOrder, f.gotOrigin = orderID, originURL
	return &backend.CheckoutSession{Success: true, URL: "https://checkout.example/cs_9", SessionID: "cs_9"}, nil
}

func (f *fakeCheckoutAPI) PaymentStatus(ctx context.Context, sessionID string) (string, error) {
	f.statusHits++
	return f.status, nil
}

func TestBackendCheckout(t *testing.T) {
	api := &fakeCheckoutAPI{status: "paid"}
	ps, err := NewBackendCheckout(api).Initiate(context.Background(), models.PaymentRequest{
		DraftID: "d1", OrderID: "o1", Amount: 50, Currency: "brl", OriginURL: "https://app.example",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_9", ps.ID)
	assert.Equal(t, "https://checkout.example/cs_9", ps.RedirectURL)
	assert.Equal(t, "o1", api.gotOrder)
	assert.Equal(t, "https://app.example", api.gotOrigin)

	status, err := NewBackendStatus(api).Status(context.Background(), "cs_9")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, status)
}

func TestNewFromConfig(t *testing.T) {
	api := backend.NewClient("http://backend.invalid", 0, nil)

	collab, src, err := NewFromConfig(config.Config{PaymentMode: config.PaymentModeMock}, api, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentModeMock, collab.Mode())
	assert.Same(t, collab.(*MockPIX), src.(*MockPIX))

	collab, src, err = NewFromConfig(config.Config{PaymentMode: config.PaymentModeHosted, PaymentStatusSource: "backend"}, api, nil)
	require.NoError(t, err)
	assert.IsType(t, &BackendCheckout{}, collab)
	assert.IsType(t, &BackendStatus{}, src)

	collab, src, err = NewFromConfig(config.Config{PaymentMode: config.PaymentModeHosted, PaymentStatusSource: "stripe", StripeKey: "sk_test_x"}, api, nil)
	require.NoError(t, err)
	assert.IsType(t, &StripeCheckout{}, collab)
	assert.IsType(t, &StripeCheckout{}, src)

	_, _, err = NewFromConfig(config.Config{PaymentMode: config.PaymentModeHosted, PaymentStatusSource: "stripe"}, api, nil)
	assert.Error(t, err)

	_, _, err = NewFromConfig(config.Config{PaymentMode: "barter"}, api, nil)
	assert.Error(t, err)
}
