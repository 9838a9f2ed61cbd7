package quote

import (
	"fmt"
	"strings"
	"time"

	"quickmechanic/models"
	"quickmechanic/utils"
)

const dateLayout = "2006-01-02"

// Names reported by MissingFields, in display order.
const (
	FieldServiceType = "serviceType"
	FieldLocation    = "postcode"
	FieldDate        = "date"
	FieldTime        = "time"
)

// FormState accumulates the booking draft for one session. It has no
// persistence of its own; the owning session serializes it.
type FormState struct {
	Draft   models.BookingDraft      `json:"draft"`
	Service *models.ServiceSelection `json:"selectedService,omitempty"`
}

// NewFormState returns an empty form with the default mobile location.
func NewFormState() FormState {
	return FormState{Draft: models.BookingDraft{LocationKind: models.LocationMobile}}
}

// SelectService sets the service type from the catalogue.
func (f *FormState) SelectService(id string) error {
	s, ok := LookupService(id)
	if !ok {
		return utils.NewInvalidFormat(fmt.Sprintf("unknown service %q", id))
	}
	f.Service = &s
	f.Draft.ServiceType = s.ID
	return nil
}

func (f *FormState) SetLocation(text string) {
	f.Draft.LocationText = strings.TrimSpace(text)
}

func (f *FormState) SetLocationKind(kind models.LocationKind) error {
	if !kind.Valid() {
		return utils.NewInvalidFormat(fmt.Sprintf("location type must be %q or %q", models.LocationMobile, models.LocationWorkshop))
	}
	f.Draft.LocationKind = kind
	return nil
}

// SetDate accepts YYYY-MM-DD; an empty string clears the date.
func (f *FormState) SetDate(date string) error {
	date = strings.TrimSpace(date)
	if date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return utils.NewInvalidFormat("date must be YYYY-MM-DD")
		}
	}
	f.Draft.Date = date
	return nil
}

// SetTime accepts one of TimeSlots; an empty string clears the time.
func (f *FormState) SetTime(t string) error {
	t = strings.TrimSpace(t)
	if t != "" && !validTimeSlot(t) {
		return utils.NewInvalidFormat(fmt.Sprintf("time must be one of %s", strings.Join(TimeSlots, ", ")))
	}
	f.Draft.Time = t
	return nil
}

func (f *FormState) SetNotes(notes string) {
	f.Draft.Notes = notes
}

// Apply performs every setter present in patch. It stops at the first invalid
// field and leaves earlier fields applied.
func (f *FormState) Apply(p models.DraftPatch) error {
	if p.LocationText != nil {
		f.SetLocation(*p.LocationText)
	}
	if p.LocationKind != nil {
		if err := f.SetLocationKind(*p.LocationKind); err != nil {
			return err
		}
	}
	if p.Date != nil {
		if err := f.SetDate(*p.Date); err != nil {
			return err
		}
	}
	if p.Time != nil {
		if err := f.SetTime(*p.Time); err != nil {
			return err
		}
	}
	if p.Notes != nil {
		f.SetNotes(*p.Notes)
	}
	return nil
}

// MissingFields names the required fields that are still empty.
func (f FormState) MissingFields() []string {
	var missing []string
	if f.Draft.ServiceType == "" {
		missing = append(missing, FieldServiceType)
	}
	if f.Draft.LocationText == "" {
		missing = append(missing, FieldLocation)
	}
	if f.Draft.Date == "" {
		missing = append(missing, FieldDate)
	}
	if f.Draft.Time == "" {
		missing = append(missing, FieldTime)
	}
	return missing
}

// IsComplete reports whether the draft can be submitted.
func (f FormState) IsComplete() bool {
	return len(f.MissingFields()) == 0
}

// TotalEstimate is the selected service's base price. Parts stay excluded until
// a mechanic sends a real quote.
func (f FormState) TotalEstimate() float64 {
	if f.Service == nil {
		return 0
	}
	return f.Service.BasePrice
}

// Reset clears the whole form, as when the vehicle search restarts.
func (f *FormState) Reset() {
	*f = NewFormState()
}
