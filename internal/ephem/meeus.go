package ephem

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/angle"
	"github.com/soniakeys/meeus/v3/apparent"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/parallax"
	"github.com/soniakeys/meeus/v3/precess"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/litescript/ls-skyplan/internal/astro"
)

// Meeus implements astro.Ephemeris with the algorithms of Jean Meeus,
// "Astronomical Algorithms" (2nd ed.), via github.com/soniakeys/meeus.
//
// Dynamical time is approximated by UT: ΔT (about a minute this century)
// shifts the Moon by well under a hundredth of a degree.
//
// Meeus holds no mutable state and is safe for concurrent use.
type Meeus struct {
	mode Mode
}

// NewMeeus creates a Meeus provider.
func NewMeeus(mode Mode) *Meeus {
	return &Meeus{mode: mode}
}

// Name implements Provider.
func (m *Meeus) Name() string {
	return "meeus/" + m.mode.String()
}

// Mode returns the reduction mode.
func (m *Meeus) Mode() Mode {
	return m.mode
}

// JulianDate implements astro.Ephemeris.
func (m *Meeus) JulianDate(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// LocalSiderealTime implements astro.Ephemeris. Longitude is east positive.
func (m *Meeus) LocalSiderealTime(t time.Time, lonDeg float64) float64 {
	jd := m.JulianDate(t)

	var gst unit.Time
	if m.mode == ModeMean {
		gst = sidereal.Mean(jd)
	} else {
		gst = sidereal.Apparent(jd)
	}

	return unit.PMod(gst.Hour()+lonDeg/15, 24)
}

// HourAngle implements astro.Ephemeris.
func (m *Meeus) HourAngle(lstHours, raHours float64) float64 {
	return unit.PMod(lstHours-raHours, 24)
}

// SunAndMoonPosition implements astro.Ephemeris. Both positions are
// geocentric; distances are in AU.
func (m *Meeus) SunAndMoonPosition(t time.Time, jd float64) (astro.SunMoon, error) {
	if err := checkJD(jd); err != nil {
		return astro.SunMoon{}, err
	}

	α, δ := solar.ApparentEquatorial(jd)
	R := solar.Radius(base.J2000Century(jd))

	return astro.SunMoon{
		Sun: astro.SkyPosition{
			RAHours:  α.Hour(),
			DecDeg:   δ.Deg(),
			Distance: R,
		},
		Moon: geocentricMoon(jd),
	}, nil
}

// MoonPosition implements astro.Ephemeris. The geocentric place is shifted
// to the observer's position on the IAU 1976 ellipsoid; at the Moon's
// distance parallax reaches a degree.
func (m *Meeus) MoonPosition(t time.Time, jd float64, obs astro.ObserverInfo) (astro.SkyPosition, error) {
	if err := checkJD(jd); err != nil {
		return astro.SkyPosition{}, err
	}

	geo := geocentricMoon(jd)
	ρsφ, ρcφ := globe.Earth76.ParallaxConstants(unit.AngleFromDeg(obs.LatDeg), obs.ElevationM)

	// Meeus measures longitude positive west.
	L := unit.AngleFromDeg(-obs.LonDeg)
	α, δ := parallax.Topocentric(unit.RAFromHour(geo.RAHours), unit.AngleFromDeg(geo.DecDeg),
		geo.Distance, ρsφ, ρcφ, L, jd)

	return astro.SkyPosition{
		RAHours:  α.Hour(),
		DecDeg:   δ.Deg(),
		Distance: geo.Distance,
	}, nil
}

// geocentricMoon returns the apparent geocentric Moon: ecliptic position
// corrected for nutation in longitude, rotated by the true obliquity.
func geocentricMoon(jd float64) astro.SkyPosition {
	λ, β, Δ := moonposition.Position(jd)
	Δψ, Δε := nutation.Nutation(jd)
	ε := nutation.MeanObliquity(jd) + Δε

	eq := new(coord.Equatorial).EclToEq(&coord.Ecliptic{Lon: λ + Δψ, Lat: β}, coord.NewObliquity(ε))

	return astro.SkyPosition{
		RAHours:  eq.RA.Hour(),
		DecDeg:   eq.Dec.Deg(),
		Distance: Δ / AU,
	}
}

// TransformEpoch implements astro.Ephemeris.
//
// Mean coordinates reduced to an of-date epoch get precession, nutation and
// aberration (ModeApparent) or precession alone (ModeMean). Every other
// combination, including of-date sources, is treated as mean-to-mean
// precession. Undated of-date sources can only be reduced to an of-date
// target.
func (m *Meeus) TransformEpoch(c astro.Coordinates, to astro.Epoch) (astro.Coordinates, error) {
	if to.OfDate && to.JDE == 0 {
		return astro.Coordinates{}, fmt.Errorf("transform to %v: %w", to, ErrUnresolvedEpoch)
	}
	if c.Epoch.OfDate && c.Epoch.JDE == 0 {
		// Undated JNOW coordinates are apparent for whatever date they are
		// used at.
		if to.OfDate {
			c.Epoch = to
			return c, nil
		}
		return astro.Coordinates{}, fmt.Errorf("transform from %v: %w", c.Epoch, ErrUnresolvedEpoch)
	}
	if c.Epoch.Equal(to) {
		c.Epoch = to
		return c, nil
	}

	eqFrom := &coord.Equatorial{
		RA:  unit.RAFromHour(c.RAHours),
		Dec: unit.AngleFromDeg(c.DecDeg),
	}
	eqTo := new(coord.Equatorial)
	fromYear := base.JDEToJulianYear(c.Epoch.Date())
	toYear := base.JDEToJulianYear(to.Date())

	if to.OfDate && !c.Epoch.OfDate && m.mode == ModeApparent {
		apparent.Position(eqFrom, eqTo, fromYear, toYear, 0, 0)
	} else {
		precess.Position(eqFrom, eqTo, fromYear, toYear, 0, 0)
	}

	return astro.Coordinates{
		RAHours: eqTo.RA.Hour(),
		DecDeg:  eqTo.Dec.Deg(),
		Epoch:   to,
	}, nil
}

// AngularSeparation implements astro.Ephemeris. Arguments and result are in
// radians.
func (m *Meeus) AngularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	r1, d1, r2, d2 := unit.Angle(ra1), unit.Angle(dec1), unit.Angle(ra2), unit.Angle(dec2)

	// angle.Sep loses the acos domain when rounding pushes the cosine past
	// ±1; the haversine form holds up near zero but not near π.
	sep := angle.Sep(r1, d1, r2, d2).Rad()
	if math.IsNaN(sep) {
		sep = angle.SepHav(r1, d1, r2, d2).Rad()
	}
	if math.IsNaN(sep) {
		return math.Pi
	}
	return sep
}

func checkJD(jd float64) error {
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return ErrInvalidDate
	}
	return nil
}
