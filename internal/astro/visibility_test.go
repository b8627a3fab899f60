package astro

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// testObservers for visibility testing
var testObservers = map[string]ObserverInfo{
	"goldstone":  {LatDeg: 35.4267, LonDeg: -116.8900, Name: "Goldstone"},
	"canberra":   {LatDeg: -35.4014, LonDeg: 148.9817, Name: "Canberra"},
	"tromso":     {LatDeg: 69.6492, LonDeg: 18.9553, Name: "Tromsø"},
	"north_pole": {LatDeg: 90.0, LonDeg: 0.0, Name: "North Pole"},
}

func observerAt(lat float64) *ObserverInfo {
	return &ObserverInfo{LatDeg: lat}
}

func targetAt(d float64) *Coordinates {
	return &Coordinates{DecDeg: d}
}

func TestRisesAtLocation(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		dec  float64
		want bool
	}{
		{"northern target from mid-north", 45, 50, true},
		{"deep southern target from mid-north", 45, -50, false},
		{"boundary dec-lat = -90 still rises", 45, -45, true},
		{"just past southern boundary", 45, -45.0001, false},
		{"circumpolar target still rises", 80, 20, true},
		{"south celestial pole from south pole", -90, -90, true},
		{"north celestial pole from south pole", -90, 90, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RisesAtLocation(observerAt(tt.lat), targetAt(tt.dec))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCircumpolarAtLocation(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		dec  float64
		want bool
	}{
		{"high north", 80, 20, true},
		{"tropics", 10, 20, false},
		{"exact boundary is not circumpolar", 45, 45, false},
		{"never rises from the south", -80, -20, true},
		{"polaris from goldstone", testObservers["goldstone"].LatDeg, 89.2641, true},
		{"vega from goldstone", testObservers["goldstone"].LatDeg, 38.7837, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CircumpolarAtLocation(observerAt(tt.lat), targetAt(tt.dec))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCircumpolarAtLocationWithMinimumAltitude(t *testing.T) {
	tests := []struct {
		name   string
		lat    float64
		dec    float64
		minAlt float64
		want   bool
	}{
		{"high north with margin", 80, 20, 5, true},
		{"margin removes circumpolarity", 80, 20, 15, false},
		{"southern sky with margin", -80, -20, 5, true},
		{"tropics", 10, 20, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CircumpolarAtLocationWithMinimumAltitude(observerAt(tt.lat), targetAt(tt.dec), tt.minAlt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCircumpolarAtLocationWithMinimumAltitude_RejectsNonPositive(t *testing.T) {
	for _, minAlt := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err := CircumpolarAtLocationWithMinimumAltitude(observerAt(80), targetAt(20), minAlt)
		require.ErrorIs(t, err, ErrValidation, "minAlt=%v", minAlt)
	}
}

func TestIsAbovePolarCircle(t *testing.T) {
	tests := []struct {
		lat  float64
		want bool
	}{
		{67, true},
		{60, false},
		{-70, true},
		{PolarCircleLatitude, true},
		{-PolarCircleLatitude, true},
		{66.59, false},
		{testObservers["tromso"].LatDeg, true},
		{testObservers["canberra"].LatDeg, false},
	}

	for _, tt := range tests {
		got, err := IsAbovePolarCircle(observerAt(tt.lat))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "lat=%v", tt.lat)
	}
}

func TestVisibilityPredicates_Validation(t *testing.T) {
	obs := testObservers["goldstone"]
	target := Coordinates{DecDeg: 10}

	_, err := RisesAtLocation(nil, &target)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = RisesAtLocation(&obs, nil)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = CircumpolarAtLocation(nil, &target)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = CircumpolarAtLocation(&obs, nil)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = CircumpolarAtLocationWithMinimumAltitude(nil, &target, 10)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = CircumpolarAtLocationWithMinimumAltitude(&obs, nil, 10)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = IsAbovePolarCircle(nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCircumpolarImpliesRises(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		obs := observerAt(rapid.Float64Range(-90, 90).Draw(rt, "lat"))
		target := targetAt(rapid.Float64Range(-90, 90).Draw(rt, "dec"))

		circ, err := CircumpolarAtLocation(obs, target)
		if err != nil {
			rt.Fatal(err)
		}
		rises, err := RisesAtLocation(obs, target)
		if err != nil {
			rt.Fatal(err)
		}
		if circ && !rises {
			rt.Fatalf("lat=%v dec=%v circumpolar but does not rise", obs.LatDeg, target.DecDeg)
		}
	})
}

func TestMinimumAltitudeNarrowsCircumpolarity(t *testing.T) {
	// Requiring a margin can only remove targets from the circumpolar set.
	rapid.Check(t, func(rt *rapid.T) {
		obs := observerAt(rapid.Float64Range(-90, 90).Draw(rt, "lat"))
		target := targetAt(rapid.Float64Range(-90, 90).Draw(rt, "dec"))
		minAlt := rapid.Float64Range(0.001, 90).Draw(rt, "min_alt")

		withMargin, err := CircumpolarAtLocationWithMinimumAltitude(obs, target, minAlt)
		if err != nil {
			rt.Fatal(err)
		}
		plain, _ := CircumpolarAtLocation(obs, target)
		if withMargin && !plain {
			rt.Fatalf("lat=%v dec=%v minAlt=%v circumpolar with margin only", obs.LatDeg, target.DecDeg, minAlt)
		}
	})
}

func TestGetAltitudeTier(t *testing.T) {
	tests := []struct {
		alt  float64
		want AltitudeTier
	}{
		{-10, AltitudeNone},
		{0, AltitudeNone},
		{0.1, AltitudeLow},
		{14.9, AltitudeLow},
		{15, AltitudeMedium},
		{44.9, AltitudeMedium},
		{45, AltitudeHigh},
		{90, AltitudeHigh},
	}

	for _, tt := range tests {
		got := GetAltitudeTier(tt.alt)
		if got != tt.want {
			t.Errorf("GetAltitudeTier(%v) = %v, want %v", tt.alt, got, tt.want)
		}
	}
}
