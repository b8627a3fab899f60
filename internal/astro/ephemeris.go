package astro

import "time"

// Ephemeris is the astrometry provider the core is built on. Implementations
// must be safe for concurrent use; the core never serializes calls.
type Ephemeris interface {
	// LocalSiderealTime returns the local sidereal time in hours for an
	// instant and an east-positive longitude.
	LocalSiderealTime(t time.Time, lonDeg float64) float64

	// HourAngle returns siderealTime - rightAscension in hours, wrapped.
	HourAngle(lstHours, raHours float64) float64

	// JulianDate returns the Julian Date of an instant.
	JulianDate(t time.Time) float64

	// SunAndMoonPosition returns the apparent geocentric Sun and Moon.
	SunAndMoonPosition(t time.Time, jd float64) (SunMoon, error)

	// MoonPosition returns the apparent Moon as seen from obs.
	MoonPosition(t time.Time, jd float64, obs ObserverInfo) (SkyPosition, error)

	// TransformEpoch reduces coordinates to another frame (precession,
	// and for of-date targets nutation and aberration).
	TransformEpoch(c Coordinates, to Epoch) (Coordinates, error)

	// AngularSeparation returns the great-circle distance between two
	// points given in radians, in radians.
	AngularSeparation(ra1, dec1, ra2, dec2 float64) float64
}
