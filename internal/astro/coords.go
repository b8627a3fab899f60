// Package astro provides the visibility core: horizon coordinates, lunar
// illumination and separation, and the closed-form rise/circumpolar tests.
//
// Everything here is a pure function of its inputs plus read-only calls to an
// injected Ephemeris. Nothing is cached, and a Calculator may be shared
// across goroutines as long as its Ephemeris is reentrant.
package astro

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// J2000JD is the Julian Date of the J2000.0 reference epoch.
const J2000JD = 2451545.0

// julianYearDays is the length of a Julian year in days.
const julianYearDays = 365.25

// ObserverInfo is a ground-based observer location.
type ObserverInfo struct {
	LatDeg     float64 // Latitude in degrees (north positive)
	LonDeg     float64 // Longitude in degrees (east positive)
	ElevationM float64 // Height above the ellipsoid in metres, used for lunar parallax
	Name       string  // Optional name for the site
}

// Epoch tags the reference frame of a set of equatorial coordinates.
// The zero value is J2000.
type Epoch struct {
	JDE    float64 // Julian Ephemeris Date of the epoch; 0 means J2000
	OfDate bool    // Apparent place at JDE rather than a mean equinox
}

// J2000 is the standard mean equinox and equator of 2000.0.
var J2000 = Epoch{JDE: J2000JD}

// JulianEpoch returns the mean equinox of the given Julian year, e.g. 2015.5.
func JulianEpoch(year float64) Epoch {
	return Epoch{JDE: J2000JD + (year-2000)*julianYearDays}
}

// OfDate returns the apparent ("JNOW") frame at Julian Date jd.
func OfDate(jd float64) Epoch {
	return Epoch{JDE: jd, OfDate: true}
}

// Date returns the Julian Ephemeris Date of the epoch.
func (e Epoch) Date() float64 {
	if e.JDE == 0 {
		return J2000JD
	}
	return e.JDE
}

// Year returns the epoch as a Julian year.
func (e Epoch) Year() float64 {
	return 2000 + (e.Date()-J2000JD)/julianYearDays
}

// Equal reports whether two epochs name the same frame.
func (e Epoch) Equal(o Epoch) bool {
	return e.OfDate == o.OfDate && e.Date() == o.Date()
}

// String returns "J2000", "J2015.5" or "JNOW(2460310.5)".
func (e Epoch) String() string {
	if e.OfDate {
		return fmt.Sprintf("JNOW(%.5f)", e.Date())
	}
	return "J" + strconv.FormatFloat(e.Year(), 'f', -1, 64)
}

// ParseEpoch parses "J2000", "J<year>" or "JNOW". JNOW has no fixed date, so
// it parses to an of-date epoch with a zero JDE that callers resolve against
// the observation instant.
func ParseEpoch(s string) (Epoch, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "", "J2000", "J2000.0":
		return J2000, nil
	case "JNOW", "NOW":
		return Epoch{OfDate: true}, nil
	}
	if !strings.HasPrefix(s, "J") {
		return Epoch{}, fmt.Errorf("parse epoch %q: want J<year> or JNOW", s)
	}
	year, err := strconv.ParseFloat(s[1:], 64)
	if err != nil {
		return Epoch{}, fmt.Errorf("parse epoch %q: %w", s, err)
	}
	return JulianEpoch(year), nil
}

// Coordinates are equatorial coordinates of a target in a given frame.
type Coordinates struct {
	RAHours float64 // Right Ascension in hours (0-24, wrapping)
	DecDeg  float64 // Declination in degrees (-90 to +90)
	Epoch   Epoch
}

// RADeg returns the right ascension in degrees.
func (c Coordinates) RADeg() float64 {
	return c.RAHours * 15
}

// HorizontalCoordinate is a position in the observer's local sky.
type HorizontalCoordinate struct {
	AltDeg float64 // Altitude in degrees (0=horizon, 90=zenith)
	AzDeg  float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
}

// SkyPosition is an apparent place of a solar-system body as returned by an
// Ephemeris.
type SkyPosition struct {
	RAHours  float64
	DecDeg   float64
	Distance float64 // AU
}

// SunMoon pairs the Sun and Moon positions for one instant.
type SunMoon struct {
	Sun  SkyPosition
	Moon SkyPosition
}

// wrapHours normalizes an hour value to [0, 24).
func wrapHours(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}

// normalizeAngle360 normalizes an angle to [0, 360) degrees.
func normalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
