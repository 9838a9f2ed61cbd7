package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePlateFormat(t *testing.T) {
	cases := []struct {
		plate string
		want  bool
	}{
		{"ABC-1234", true},
		{"ABC1234", true},
		{"abc 1234", true},
		{"ABC1D23", true},
		{"abc-1d23", true},
		{"AB12", false},
		{"", false},
		{"ABCD123", false},
		{"ABC12345", false},
		{"1234ABC", false},
		{"ABC1DD3", false},
		{"AB12CDE", false},
	}
	for _, tc := range cases {
		t.Run(tc.plate, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidatePlateFormat(tc.plate))
		})
	}
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "ABC1234", NormalizePlate(" abc-1234 "))
	assert.Equal(t, "ABC1D23", NormalizePlate("abc 1d23"))
}

func TestIsPlateComplete(t *testing.T) {
	assert.True(t, IsPlateComplete("ABC-1234"))
	assert.False(t, IsPlateComplete("ABC-12"))
}
