package astro

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/unit"
)

// MoonPhase describes the lit portion of the Moon at an instant.
type MoonPhase struct {
	Illumination  float64 // Illuminated fraction [0,1]: 0=new, 1=full
	PhaseAngleDeg float64 // Sun-Moon-Earth angle in degrees [0,180]
	ElongationDeg float64 // Sun-Moon angular distance seen from Earth [0,180]
	Waxing        bool    // Moon is east of the Sun
	Name          string  // Human-readable phase name
}

// MoonIllumination returns the illuminated fraction of the Moon's disk at t,
// in [0, 1].
func (c *Calculator) MoonIllumination(t time.Time) (float64, error) {
	phase, err := c.MoonPhase(t)
	if err != nil {
		return 0, err
	}
	return phase.Illumination, nil
}

// MoonPhase computes the phase geometry behind MoonIllumination.
func (c *Calculator) MoonPhase(t time.Time) (MoonPhase, error) {
	jd := c.eph.JulianDate(t)
	sm, err := c.eph.SunAndMoonPosition(t, jd)
	if err != nil {
		return MoonPhase{}, fmt.Errorf("moon phase: %w", err)
	}
	return moonPhaseFrom(sm), nil
}

// moonPhaseFrom derives the phase from geocentric Sun and Moon positions.
//
// The elongation φ comes from the spherical law of cosines; the phase angle
// i = atan2(R sin φ, Δ - R cos φ) with R the Sun and Δ the Moon distance;
// the lit fraction is (1 + cos i) / 2.
func moonPhaseFrom(sm SunMoon) MoonPhase {
	sDecS, cDecS := degrees(sm.Sun.DecDeg).Sincos()
	sDecM, cDecM := degrees(sm.Moon.DecDeg).Sincos()
	dRA := hourAngle(sm.Sun.RAHours - sm.Moon.RAHours)

	elong := Acos(sDecS*sDecM + cDecS*cDecM*dRA.Cos())

	sElong, cElong := elong.Sincos()
	R := sm.Sun.Distance
	delta := sm.Moon.Distance
	i := Atan2(R*sElong, delta-R*cElong)

	k := (1 + i.Cos()) / 2
	k = math.Max(0, math.Min(1, k))

	// The Moon is waxing while it lies east of the Sun.
	waxing := hourAngle(sm.Moon.RAHours-sm.Sun.RAHours).Sin() > 0

	return MoonPhase{
		Illumination:  k,
		PhaseAngleDeg: math.Abs(i.Deg()),
		ElongationDeg: elong.Deg(),
		Waxing:        waxing,
		Name:          phaseName(k, waxing),
	}
}

// phaseName returns the 8-phase name for an illuminated fraction.
func phaseName(k float64, waxing bool) string {
	switch {
	case k < 0.01:
		return "New Moon"
	case k > 0.99:
		return "Full Moon"
	case k >= 0.49 && k <= 0.51:
		if waxing {
			return "First Quarter"
		}
		return "Last Quarter"
	case k < 0.5:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}

// MoonSeparationAngle returns the angular distance in degrees, in [0, 180],
// between the Moon as seen from obs and the target at instant t. The target
// is reduced to the of-date frame first so both positions share an equinox.
func (c *Calculator) MoonSeparationAngle(obs *ObserverInfo, t time.Time, target *Coordinates) (float64, error) {
	if err := validateObserver(obs); err != nil {
		return 0, err
	}
	if err := validateCoordinates(target); err != nil {
		return 0, err
	}

	jd := c.eph.JulianDate(t)
	moon, err := c.eph.MoonPosition(t, jd, *obs)
	if err != nil {
		return 0, fmt.Errorf("moon separation: moon position: %w", err)
	}
	moonRA := unit.RAFromHour(moon.RAHours)
	moonDec := degrees(moon.DecDeg)

	now, err := c.eph.TransformEpoch(*target, OfDate(jd))
	if err != nil {
		return 0, fmt.Errorf("moon separation: transform epoch: %w", err)
	}
	tgtRA := unit.RAFromHour(now.RAHours)
	tgtDec := degrees(now.DecDeg)

	sep := unit.Angle(c.eph.AngularSeparation(moonRA.Rad(), moonDec.Rad(), tgtRA.Rad(), tgtDec.Rad()))
	return math.Max(0, math.Min(180, sep.Deg())), nil
}
