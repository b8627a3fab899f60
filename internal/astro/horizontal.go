package astro

import (
	"fmt"
	"time"
)

// Calculator answers the provider-backed questions: where a target sits in
// the local sky, how bright the Moon is, and how far it is from a target.
// It holds no state beyond the injected Ephemeris.
type Calculator struct {
	eph Ephemeris
}

// NewCalculator returns a Calculator backed by eph.
func NewCalculator(eph Ephemeris) *Calculator {
	return &Calculator{eph: eph}
}

// Ephemeris returns the provider the calculator was built with.
func (c *Calculator) Ephemeris() Ephemeris {
	return c.eph
}

// HorizontalCoordinates converts equatorial coordinates to altitude and
// azimuth for an observer at instant t.
//
// Conventions:
//   - Azimuth: 0° = North, 90° = East, 180° = South, 270° = West
//   - Altitude: 0° = horizon, 90° = zenith
//
// The target is used as given; reducing it to the of-date frame is the
// caller's choice.
func (c *Calculator) HorizontalCoordinates(obs *ObserverInfo, target *Coordinates, t time.Time) (HorizontalCoordinate, error) {
	if err := validateObserver(obs); err != nil {
		return HorizontalCoordinate{}, err
	}
	if err := validateCoordinates(target); err != nil {
		return HorizontalCoordinate{}, err
	}

	lst := c.eph.LocalSiderealTime(t, obs.LonDeg)
	ha := hourAngle(c.eph.HourAngle(lst, target.RAHours))

	sLat, cLat := degrees(obs.LatDeg).Sincos()
	sDec, cDec := degrees(target.DecDeg).Sincos()
	sHA, cHA := ha.Sincos()

	alt := Asin(sDec*sLat + cDec*cLat*cHA)

	// North-referenced azimuth, increasing through east. atan2 resolves the
	// quadrant and stays defined at the zenith, where both terms vanish.
	az := Atan2(-cDec*sHA, sDec*cLat-cDec*sLat*cHA)

	return HorizontalCoordinate{
		AltDeg: alt.Deg(),
		AzDeg:  normalizeAngle360(az.Deg()),
	}, nil
}

// Altitude is a convenience wrapper returning only the altitude in degrees.
func (c *Calculator) Altitude(obs *ObserverInfo, target *Coordinates, t time.Time) (float64, error) {
	hz, err := c.HorizontalCoordinates(obs, target, t)
	if err != nil {
		return 0, fmt.Errorf("altitude: %w", err)
	}
	return hz.AltDeg, nil
}
