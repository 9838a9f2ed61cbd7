package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"quickmechanic/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

func newStripeTestServer(t *testing.T, handler http.HandlerFunc) *StripeCheckout {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	b := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return NewStripeCheckout("sk_test_123", &stripe.Backends{API: b, Connect: b, Uploads: b}, nil)
}

func TestStripeCheckout_Initiate(t *testing.T) {
	sc := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "5000", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "brl", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "https://app.example/payment-success?session_id={CHECKOUT_SESSION_ID}", r.PostForm.Get("success_url"))
		assert.Equal(t, "https://app.example/quote", r.PostForm.Get("cancel_url"))
		assert.Equal(t, "ord-1", r.PostForm.Get("metadata[order_id]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1","payment_status":"unpaid","status":"open","expires_at":1900000000}`))
	})

	ps, err := sc.Initiate(context.Background(), models.PaymentRequest{
		DraftID: "d1", OrderID: "ord-1", Amount: 50, Currency: "BRL",
		Description: DepositDescription, OriginURL: "https://app.example/",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", ps.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", ps.RedirectURL)
	assert.Equal(t, models.PaymentModeHosted, ps.Mode)
	require.NotNil(t, ps.ExpiresAt)
}

func TestStripeCheckout_Status(t *testing.T) {
	sc := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/checkout/sessions/cs_paid":
			_, _ = w.Write([]byte(`{"id":"cs_paid","object":"checkout.session","payment_status":"paid","status":"complete"}`))
		case "/v1/checkout/sessions/cs_expired":
			_, _ = w.Write([]byte(`{"id":"cs_expired","object":"checkout.session","payment_status":"unpaid","status":"expired"}`))
		default:
			_, _ = w.Write([]byte(`{"id":"cs_open","object":"checkout.session","payment_status":"unpaid","status":"open"}`))
		}
	})

	for id, want := range map[string]models.PaymentStatus{
		"cs_paid":    models.PaymentPaid,
		"cs_expired": models.PaymentExpired,
		"cs_open":    models.PaymentPending,
	} {
		got, err := sc.Status(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, got, id)
	}
}
