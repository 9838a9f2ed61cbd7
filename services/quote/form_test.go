package quote

import (
	"testing"

	"quickmechanic/models"
	"quickmechanic/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeForm(t *testing.T) FormState {
	t.Helper()
	f := NewFormState()
	require.NoError(t, f.SelectService("oil_change"))
	f.SetLocation("01310-100")
	require.NoError(t, f.SetDate("2026-11-03"))
	require.NoError(t, f.SetTime("09:00"))
	return f
}

func TestSelectService_SetsEstimate(t *testing.T) {
	f := NewFormState()
	assert.Zero(t, f.TotalEstimate())

	require.NoError(t, f.SelectService("oil_change"))
	assert.Equal(t, 150.0, f.TotalEstimate())
	assert.Equal(t, "oil_change", f.Draft.ServiceType)
}

func TestSelectService_Unknown(t *testing.T) {
	f := NewFormState()
	err := f.SelectService("teleport")
	assert.True(t, utils.HasCode(err, utils.CodeInvalidFormat))
	assert.Nil(t, f.Service)
}

func TestIsComplete(t *testing.T) {
	f := completeForm(t)
	assert.True(t, f.IsComplete())
	assert.Empty(t, f.MissingFields())
}

func TestMissingFields_EachRequiredField(t *testing.T) {
	clearers := map[string]func(f *FormState){
		FieldServiceType: func(f *FormState) { f.Draft.ServiceType = "" },
		FieldLocation:    func(f *FormState) { f.SetLocation("  ") },
		FieldDate:        func(f *FormState) { _ = f.SetDate("") },
		FieldTime:        func(f *FormState) { _ = f.SetTime("") },
	}
	for field, fn := range clearers {
		t.Run(field, func(t *testing.T) {
			f := completeForm(t)
			fn(&f)
			assert.False(t, f.IsComplete())
			assert.Equal(t, []string{field}, f.MissingFields())
		})
	}
}

func TestApply(t *testing.T) {
	f := NewFormState()
	loc := "Av. Paulista 1000"
	kind := models.LocationWorkshop
	date := "2026-12-01"
	tm := "14:00"
	notes := "barulho no freio"

	require.NoError(t, f.Apply(models.DraftPatch{LocationText: &loc, LocationKind: &kind, Date: &date, Time: &tm, Notes: &notes}))
	assert.Equal(t, models.BookingDraft{
		LocationText: loc,
		LocationKind: models.LocationWorkshop,
		Date:         date,
		Time:         tm,
		Notes:        notes,
	}, f.Draft)
}

func TestApply_RejectsBadValues(t *testing.T) {
	f := NewFormState()
	bad := "31/12/2026"
	err := f.Apply(models.DraftPatch{Date: &bad})
	assert.True(t, utils.HasCode(err, utils.CodeInvalidFormat))

	slot := "07:30"
	err = f.Apply(models.DraftPatch{Time: &slot})
	assert.True(t, utils.HasCode(err, utils.CodeInvalidFormat))

	kind := models.LocationKind("drone")
	err = f.Apply(models.DraftPatch{LocationKind: &kind})
	assert.True(t, utils.HasCode(err, utils.CodeInvalidFormat))
}

func TestReset(t *testing.T) {
	f := completeForm(t)
	f.Reset()
	assert.Equal(t, NewFormState(), f)
	assert.Equal(t, models.LocationMobile, f.Draft.LocationKind)
}

func TestServices_Sorted(t *testing.T) {
	list := Services()
	require.NotEmpty(t, list)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}
