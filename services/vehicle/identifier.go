package vehicle

import (
	"context"
	"errors"
	"strings"

	"quickmechanic/models"
	"quickmechanic/utils"

	"go.uber.org/zap"
)

// ErrNoMatch is returned by a Lookup when the plate is unknown.
var ErrNoMatch = errors.New("vehicle not found")

// Lookup resolves a normalized plate to a vehicle record.
type Lookup interface {
	LookupPlate(ctx context.Context, plate string) (*models.Vehicle, error)
}

// Identifier validates plates and resolves them through a Lookup.
type Identifier struct {
	lookup Lookup
	logger *zap.Logger
}

func NewIdentifier(lookup Lookup, logger *zap.Logger) *Identifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Identifier{lookup: lookup, logger: logger}
}

// Resolve validates plate and looks it up. Malformed plates fail with
// INVALID_FORMAT before any lookup; misses fail with NOT_FOUND so the caller can
// offer manual entry; anything else is a retryable NETWORK_FAILURE.
func (id *Identifier) Resolve(ctx context.Context, plate string) (*models.Vehicle, error) {
	if !ValidatePlateFormat(plate) {
		return nil, utils.NewInvalidFormat("plate must be ABC1234, ABC-1234 or ABC1D23")
	}
	clean := NormalizePlate(plate)

	v, err := id.lookup.LookupPlate(ctx, clean)
	if err != nil {
		if errors.Is(err, ErrNoMatch) {
			id.logger.Info("plate lookup miss", zap.String("plate", clean))
			return nil, utils.NewNotFound("vehicle not found, enter the details manually")
		}
		id.logger.Warn("plate lookup failed", zap.String("plate", clean), zap.Error(err))
		return nil, utils.NewNetworkFailure("vehicle lookup failed, please try again", err)
	}
	if v == nil {
		return nil, utils.NewNotFound("vehicle not found, enter the details manually")
	}

	resolved := *v
	resolved.Plate = clean
	return &resolved, nil
}

// ValidateManualVehicle checks a vehicle typed in after a lookup miss and
// returns the normalized record.
func ValidateManualVehicle(v models.Vehicle) (*models.Vehicle, error) {
	if !ValidatePlateFormat(v.Plate) {
		return nil, utils.NewInvalidFormat("plate must be ABC1234, ABC-1234 or ABC1D23")
	}
	var missing []string
	if strings.TrimSpace(v.Make) == "" {
		missing = append(missing, "make")
	}
	if strings.TrimSpace(v.Model) == "" {
		missing = append(missing, "model")
	}
	if len(missing) > 0 {
		return nil, utils.NewValidationIncomplete(missing)
	}

	v.Plate = NormalizePlate(v.Plate)
	v.Make = strings.TrimSpace(v.Make)
	v.Model = strings.TrimSpace(v.Model)
	if v.MakeName == "" {
		v.MakeName = v.Make
	}
	v.Manual = true
	return &v, nil
}
