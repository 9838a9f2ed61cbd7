package vehicle

import (
	"context"
	"errors"

	"quickmechanic/models"
	"quickmechanic/services/backend"
)

// PlateClient is the marketplace call behind BackendLookup.
type PlateClient interface {
	LookupPlate(ctx context.Context, plate string) (*models.Vehicle, error)
}

// BackendLookup resolves plates through the marketplace API.
type BackendLookup struct {
	client PlateClient
}

func NewBackendLookup(client PlateClient) *BackendLookup {
	return &BackendLookup{client: client}
}

func (l *BackendLookup) LookupPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	v, err := l.client.LookupPlate(ctx, plate)
	if errors.Is(err, backend.ErrNotFound) {
		return nil, ErrNoMatch
	}
	return v, err
}
