package vehicle

import (
	"context"
	"errors"
	"testing"

	"quickmechanic/models"
	"quickmechanic/services/backend"
	"quickmechanic/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLookup struct {
	calls int
	v     *models.Vehicle
	err   error
}

func (l *countingLookup) LookupPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	l.calls++
	return l.v, l.err
}

func TestResolve_FixtureHappyPath(t *testing.T) {
	id := NewIdentifier(FixtureLookup{}, nil)

	v, err := id.Resolve(context.Background(), "ABC-1234")
	require.NoError(t, err)
	assert.Equal(t, "Volkswagen", v.MakeName)
	assert.Equal(t, "Gol", v.Model)
	assert.Equal(t, "2020", v.Year)
	assert.Equal(t, "ABC1234", v.Plate)
}

func TestResolve_InvalidFormatSkipsLookup(t *testing.T) {
	lookup := &countingLookup{}
	id := NewIdentifier(lookup, nil)

	_, err := id.Resolve(context.Background(), "AB12")
	require.Error(t, err)
	assert.True(t, utils.HasCode(err, utils.CodeInvalidFormat))
	assert.Equal(t, 0, lookup.calls)
}

func TestResolve_NotFound(t *testing.T) {
	id := NewIdentifier(FixtureLookup{}, nil)

	_, err := id.Resolve(context.Background(), "ZZZ9999")
	require.Error(t, err)
	assert.True(t, utils.HasCode(err, utils.CodeNotFound))
}

func TestResolve_NetworkFailureIsRetryable(t *testing.T) {
	id := NewIdentifier(&countingLookup{err: errors.New("connection refused")}, nil)

	_, err := id.Resolve(context.Background(), "ABC1D23")
	require.Error(t, err)
	wfErr, ok := utils.AsWorkflowError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeNetworkFailure, wfErr.Code)
	assert.True(t, wfErr.Retryable)
}

func TestValidateManualVehicle(t *testing.T) {
	v, err := ValidateManualVehicle(models.Vehicle{Plate: "abc-1234", Make: " Fiat ", Model: "Uno", Year: "2010"})
	require.NoError(t, err)
	assert.Equal(t, "ABC1234", v.Plate)
	assert.Equal(t, "Fiat", v.Make)
	assert.True(t, v.Manual)

	_, err = ValidateManualVehicle(models.Vehicle{Plate: "ABC1234"})
	require.Error(t, err)
	wfErr, _ := utils.AsWorkflowError(err)
	assert.Equal(t, []string{"make", "model"}, wfErr.Fields)

	_, err = ValidateManualVehicle(models.Vehicle{Plate: "nope", Make: "Fiat", Model: "Uno"})
	assert.True(t, utils.HasCode(err, utils.CodeInvalidFormat))
}

type plateClientFunc func(ctx context.Context, plate string) (*models.Vehicle, error)

func (f plateClientFunc) LookupPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	return f(ctx, plate)
}

func TestBackendLookup_MapsMissToNotFound(t *testing.T) {
	lookup := NewBackendLookup(plateClientFunc(func(ctx context.Context, plate string) (*models.Vehicle, error) {
		return nil, backend.ErrNotFound
	}))
	_, err := NewIdentifier(lookup, nil).Resolve(context.Background(), "ZZZ-9999")
	assert.True(t, utils.HasCode(err, utils.CodeNotFound))
}
