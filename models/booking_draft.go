package models

// LocationKind says where the service happens.
type LocationKind string

const (
	LocationMobile   LocationKind = "mobile"
	LocationWorkshop LocationKind = "workshop"
)

// Valid reports whether k is a known location kind.
func (k LocationKind) Valid() bool {
	return k == LocationMobile || k == LocationWorkshop
}

// BookingDraft is the client-held, not yet submitted service request.
type BookingDraft struct {
	ServiceType  string       `json:"serviceType"`
	LocationText string       `json:"postcode"`
	LocationKind LocationKind `json:"locationType"`
	Date         string       `json:"date"` // YYYY-MM-DD
	Time         string       `json:"time"` // HH:MM
	Notes        string       `json:"notes"`
}

// DraftPatch carries optional draft updates; nil fields are left untouched.
type DraftPatch struct {
	LocationText *string       `json:"location,omitempty"`
	LocationKind *LocationKind `json:"location_type,omitempty"`
	Date         *string       `json:"date,omitempty"`
	Time         *string       `json:"time,omitempty"`
	Notes        *string       `json:"notes,omitempty"`
}
