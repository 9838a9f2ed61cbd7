package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quickmechanic/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, nil)
}

func TestLookupPlate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vehicle/plate/ABC1234", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"plate":"ABC1234","make":"volkswagen","makeName":"Volkswagen","model":"Gol","year":"2020"}}`))
	})

	v, err := c.LookupPlate(context.Background(), "ABC1234")
	require.NoError(t, err)
	assert.Equal(t, "Gol", v.Model)
	assert.Equal(t, "2020", v.Year)
}

func TestLookupPlate_Miss(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"Placa não encontrada"}`))
	})
	_, err := c.LookupPlate(context.Background(), "ZZZ9999")
	assert.ErrorIs(t, err, ErrNotFound)

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err = c.LookupPlate(context.Background(), "ZZZ9999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrder_SendsPayloadAndToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var got models.OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "veh-1", got.VehicleID)
		assert.Equal(t, "oil_change", got.Service)
		assert.Equal(t, "mobile", got.LocationType)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"ord-9"}}`))
	})

	ctx := ContextWithToken(context.Background(), "tok")
	id, err := c.CreateOrder(ctx, models.OrderRequest{
		VehicleID: "veh-1", Service: "oil_change", Location: "01310-100",
		Date: "2026-11-03", Time: "09:00", LocationType: "mobile",
	})
	require.NoError(t, err)
	assert.Equal(t, "ord-9", id)
}

func TestCreateVehicle_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"boom"}`))
	})

	_, err := c.CreateVehicle(context.Background(), models.Vehicle{Plate: "ABC1234", Make: "vw", Model: "Gol"})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "boom", statusErr.Message)
}

func TestGetOrder_EnvelopeAndBare(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/orders/enveloped" {
			_, _ = w.Write([]byte(`{"success":true,"data":{"id":"enveloped","status":"ACEITO","estimated_price":150}}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"PECA_CONFIRMADA","final_price":310.5}`))
	})

	o, err := c.GetOrder(context.Background(), "enveloped")
	require.NoError(t, err)
	assert.Equal(t, "ACEITO", o.Status)
	require.NotNil(t, o.EstimatedPrice)
	assert.Equal(t, 150.0, *o.EstimatedPrice)

	o, err = c.GetOrder(context.Background(), "bare")
	require.NoError(t, err)
	assert.Equal(t, "bare", o.ID)
	assert.Equal(t, "PECA_CONFIRMADA", o.Status)
	require.NotNil(t, o.FinalPrice)
	assert.Equal(t, 310.5, *o.FinalPrice)
}

func TestPaymentStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/payment-status/cs_paid":
			_, _ = w.Write([]byte(`{"success":true,"payment_status":"paid"}`))
		case "/api/payment-status/cs_expired":
			_, _ = w.Write([]byte(`{"success":false,"status":"expired"}`))
		default:
			_, _ = w.Write([]byte(`{"success":true,"payment_status":"pending"}`))
		}
	})

	for id, want := range map[string]string{"cs_paid": "paid", "cs_expired": "expired", "cs_other": "pending"} {
		got, err := c.PaymentStatus(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, got, id)
	}
}

func TestCreateCheckoutAndPIX(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/stripe/checkout":
			_, _ = w.Write([]byte(`{"success":true,"url":"https://checkout.example/cs_1","session_id":"cs_1"}`))
		case "/api/payments/pix/generate":
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 50.0, body["amount"])
			_, _ = w.Write([]byte(`{"success":true,"data":{"pix_code":"00020126abc","pix_qr":"qr"}}`))
		}
	})

	cs, err := c.CreateCheckout(context.Background(), "ord-1", "https://app.example")
	require.NoError(t, err)
	assert.Equal(t, "cs_1", cs.SessionID)

	pix, err := c.GeneratePIX(context.Background(), 50, "QuickMechanic - Pré-reserva")
	require.NoError(t, err)
	assert.Equal(t, "00020126abc", pix.Code)
}
