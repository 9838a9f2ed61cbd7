package staging

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quickmechanic/models"
)

// SchemaVersion is bumped whenever Record changes shape.
const SchemaVersion = 1

// ErrUnsupportedVersion is returned for records written by another schema.
var ErrUnsupportedVersion = errors.New("staged booking has unsupported schema version")

// ErrNotStaged is returned when no record exists under a key.
var ErrNotStaged = errors.New("no staged booking")

// Record is a booking parked while the user signs in.
type Record struct {
	Version         int                      `json:"version"`
	VehicleData     *models.Vehicle          `json:"vehicleData"`
	BookingData     models.BookingDraft      `json:"bookingData"`
	SelectedService *models.ServiceSelection `json:"selectedService,omitempty"`
	SavedAt         time.Time                `json:"savedAt"`
}

// Encode stamps the current schema version and serializes rec.
func Encode(rec Record) ([]byte, error) {
	rec.Version = SchemaVersion
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode staged booking: %w", err)
	}
	return data, nil
}

// Decode parses data, refusing records from other schema versions.
func Decode(data []byte) (*Record, error) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode staged booking: %w", err)
	}
	if probe.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, probe.Version)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode staged booking: %w", err)
	}
	if rec.VehicleData == nil {
		return nil, fmt.Errorf("decode staged booking: missing vehicle")
	}
	return &rec, nil
}
