package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"quickmechanic/models"
)

type vehicleEnvelope struct {
	Success bool            `json:"success"`
	Data    *models.Vehicle `json:"data"`
	Message string          `json:"message"`
}

// LookupPlate implements vehicle.Lookup against GET /api/vehicle/plate/{plate}.
func (c *Client) LookupPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	var env vehicleEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/vehicle/plate/"+escape(plate), nil, &env); err != nil {
		return nil, err
	}
	if !env.Success || env.Data == nil {
		return nil, ErrNotFound
	}
	return env.Data, nil
}

type createdEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		ID string `json:"id"`
	} `json:"data"`
	Message string `json:"message"`
}

func (env createdEnvelope) id(what string) (string, error) {
	if !env.Success || env.Data.ID == "" {
		if env.Message != "" {
			return "", fmt.Errorf("create %s: %s", what, env.Message)
		}
		return "", fmt.Errorf("create %s: backend returned no id", what)
	}
	return env.Data.ID, nil
}

type vehicleRequest struct {
	Plate string `json:"plate"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  string `json:"year"`
}

// CreateVehicle registers the client's vehicle and returns its id.
func (c *Client) CreateVehicle(ctx context.Context, v models.Vehicle) (string, error) {
	makeName := v.MakeName
	if makeName == "" {
		makeName = v.Make
	}
	var env createdEnvelope
	req := vehicleRequest{Plate: v.Plate, Make: makeName, Model: v.Model, Year: v.Year}
	if err := c.do(ctx, http.MethodPost, "/api/vehicles", req, &env); err != nil {
		return "", err
	}
	return env.id("vehicle")
}

// CreateOrder submits the booking draft as a new order and returns its id.
func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest) (string, error) {
	var env createdEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &env); err != nil {
		return "", err
	}
	return env.id("order")
}

type orderEnvelope struct {
	Success *bool         `json:"success"`
	Data    *models.Order `json:"data"`
}

// GetOrder fetches the order projection. Bare order bodies are accepted too.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var raw struct {
		orderEnvelope
		models.Order
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+escape(orderID), nil, &raw); err != nil {
		return nil, err
	}
	if raw.Success != nil && !*raw.Success {
		return nil, ErrNotFound
	}
	order := raw.orderEnvelope.Data
	if order == nil {
		o := raw.Order
		order = &o
	}
	if order.ID == "" {
		order.ID = orderID
	}
	return order, nil
}

type checkoutRequest struct {
	OrderID   string `json:"order_id"`
	OriginURL string `json:"origin_url"`
}

// CheckoutSession is the backend's hosted checkout reply.
type CheckoutSession struct {
	Success   bool   `json:"success"`
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// CreateCheckout asks the backend to open a hosted checkout for orderID.
func (c *Client) CreateCheckout(ctx context.Context, orderID, originURL string) (*CheckoutSession, error) {
	var out CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/api/stripe/checkout", checkoutRequest{OrderID: orderID, OriginURL: originURL}, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.URL == "" || out.SessionID == "" {
		return nil, fmt.Errorf("create checkout: %s", out.Message)
	}
	return &out, nil
}

type pixRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// PIXCharge is a generated PIX copy-and-paste code.
type PIXCharge struct {
	Code string `json:"pix_code"`
	QR   string `json:"pix_qr"`
}

// GeneratePIX asks the backend for a PIX code for amount.
func (c *Client) GeneratePIX(ctx context.Context, amount float64, description string) (*PIXCharge, error) {
	var env struct {
		Success bool      `json:"success"`
		Data    PIXCharge `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/payments/pix/generate", pixRequest{Amount: amount, Description: description}, &env); err != nil {
		return nil, err
	}
	if !env.Success || env.Data.Code == "" {
		return nil, errors.New("generate pix: backend returned no code")
	}
	return &env.Data, nil
}

// PaymentStatus reads GET /api/payment-status/{id}. The raw status string is
// returned as reported.
func (c *Client) PaymentStatus(ctx context.Context, sessionID string) (string, error) {
	var env struct {
		Success       bool   `json:"success"`
		PaymentStatus string `json:"payment_status"`
		Status        string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/payment-status/"+escape(sessionID), nil, &env); err != nil {
		return "", err
	}
	if env.Status == "expired" {
		return "expired", nil
	}
	if !env.Success && env.PaymentStatus == "" {
		return "", fmt.Errorf("payment status %s: unsuccessful response", sessionID)
	}
	return env.PaymentStatus, nil
}
