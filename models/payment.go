package models

import "time"

// PaymentMode selects the deposit collaborator.
type PaymentMode string

const (
	PaymentModeMock   PaymentMode = "mock"
	PaymentModeHosted PaymentMode = "hosted"
)

// PaymentStatus values reported by status sources and stored on sessions.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentExpired   PaymentStatus = "expired"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Terminal reports whether no further status change is expected.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentPaid || s == PaymentExpired || s == PaymentFailed || s == PaymentCancelled
}

// PaymentSession references one deposit attempt at an external collaborator.
type PaymentSession struct {
	ID          string      `bson:"id" json:"id"`
	DraftID     string      `bson:"draft_id" json:"draftId"`
	OrderID     string      `bson:"order_id" json:"orderId"`
	Mode        PaymentMode `bson:"mode" json:"mode"`
	Amount      float64     `bson:"amount" json:"amount"`
	Currency    string      `bson:"currency" json:"currency"`
	Description string      `bson:"description" json:"description"`

	// RedirectURL is set for hosted checkout; Reference holds the PIX code for mock deposits.
	RedirectURL string        `bson:"redirect_url,omitempty" json:"redirectUrl,omitempty"`
	Reference   string        `bson:"reference,omitempty" json:"reference,omitempty"`
	ExpiresAt   *time.Time    `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
	Status      PaymentStatus `bson:"status" json:"status"`
	Active      bool          `bson:"active" json:"active"`
	CreatedAt   time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updatedAt"`
}

// PaymentRequest asks a collaborator to open a deposit.
type PaymentRequest struct {
	DraftID     string
	OrderID     string
	Amount      float64
	Currency    string
	Description string
	OriginURL   string
}
