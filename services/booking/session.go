package booking

import (
	"time"

	"quickmechanic/models"
	"quickmechanic/services/quote"
)

// Identity is the authenticated caller, if any.
type Identity struct {
	UserID   string
	UserType models.UserType
}

// Session is one client's booking in progress. It is stored whole and
// reloaded for every operation.
type Session struct {
	ID      string          `json:"id"`
	OwnerID string          `json:"ownerId,omitempty"`
	State   State           `json:"state"`
	Vehicle *models.Vehicle `json:"vehicle,omitempty"`
	Form    quote.FormState `json:"form"`

	// Backend ids survive a failed payment so a retry reuses them.
	VehicleID string `json:"vehicleId,omitempty"`
	OrderID   string `json:"orderId,omitempty"`

	Payment           *models.PaymentSession `json:"payment,omitempty"`
	LastPaymentStatus models.PaymentStatus   `json:"lastPaymentStatus,omitempty"`

	Submitting      bool       `json:"submitting"`
	SubmittingSince *time.Time `json:"submittingSince,omitempty"`
	StagingKey      string     `json:"stagingKey,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Session) can(ev Event) error {
	_, err := Next(s.State, ev)
	return err
}

func (s *Session) apply(ev Event) error {
	next, err := Next(s.State, ev)
	if err != nil {
		return err
	}
	s.State = next
	return nil
}

// View is the client-facing rendering of a session.
type View struct {
	*Session
	TotalEstimate float64  `json:"totalEstimate"`
	Complete      bool     `json:"complete"`
	MissingFields []string `json:"missingFields"`
}

func (s *Session) View() View {
	missing := s.Form.MissingFields()
	if missing == nil {
		missing = []string{}
	}
	return View{
		Session:       s,
		TotalEstimate: s.Form.TotalEstimate(),
		Complete:      len(missing) == 0,
		MissingFields: missing,
	}
}
