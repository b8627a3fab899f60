package astro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEpoch(t *testing.T) {
	tests := []struct {
		input    string
		wantYear float64
		ofDate   bool
		wantErr  bool
	}{
		{"J2000", 2000, false, false},
		{"j2000.0", 2000, false, false},
		{"", 2000, false, false},
		{"J2015.5", 2015.5, false, false},
		{"J1950", 1950, false, false},
		{"JNOW", 2000, true, false},
		{"now", 2000, true, false},
		{"B1950", 0, false, true},
		{"Jabc", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEpoch(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ofDate, got.OfDate)
			assert.InDelta(t, tt.wantYear, got.Year(), 1e-9)
		})
	}
}

func TestEpoch(t *testing.T) {
	var zero Epoch
	assert.True(t, zero.Equal(J2000), "zero epoch is J2000")
	assert.Equal(t, J2000JD, zero.Date())
	assert.Equal(t, "J2000", J2000.String())
	assert.Equal(t, "J2015.5", JulianEpoch(2015.5).String())

	now := OfDate(2460310.5)
	assert.True(t, now.OfDate)
	assert.Equal(t, "JNOW(2460310.50000)", now.String())
	assert.False(t, now.Equal(Epoch{JDE: 2460310.5}))
	assert.InDelta(t, 2024.0, now.Year(), 0.01)
}

func TestWrapHours(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{23.5, 23.5},
		{24, 0},
		{25.25, 1.25},
		{-1, 23},
		{-49, 23},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, wrapHours(tt.in), 1e-12, "wrapHours(%v)", tt.in)
	}
}

func TestCoordinatesRADeg(t *testing.T) {
	c := Coordinates{RAHours: 18.6157}
	assert.InDelta(t, 279.2355, c.RADeg(), 1e-9)
}
