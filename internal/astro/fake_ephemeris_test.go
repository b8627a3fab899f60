package astro

import (
	"math"
	"time"
)

// fakeEphemeris is a deterministic stand-in for a real provider. Sidereal
// time advances at the sidereal rate from zero at the Unix epoch; the Sun and
// Moon either stay fixed or, when synodic is set, circle the equator with
// the Moon gaining one revolution on the Sun per synodic month.
type fakeEphemeris struct {
	sunMoon  SunMoon
	synodic  bool
	err      error
	calls    int
	epochErr error
}

const (
	fakeMoonDistanceAU = 0.00257
	fakeSynodicDays    = 29.530588853
)

func (f *fakeEphemeris) LocalSiderealTime(t time.Time, lonDeg float64) float64 {
	hours := float64(t.UnixNano()) / float64(time.Hour)
	return wrapHours(hours*1.00273790935 + lonDeg/15)
}

func (f *fakeEphemeris) HourAngle(lstHours, raHours float64) float64 {
	return wrapHours(lstHours - raHours)
}

func (f *fakeEphemeris) JulianDate(t time.Time) float64 {
	return 2440587.5 + float64(t.UnixNano())/float64(24*time.Hour)
}

func (f *fakeEphemeris) SunAndMoonPosition(t time.Time, jd float64) (SunMoon, error) {
	f.calls++
	if f.err != nil {
		return SunMoon{}, f.err
	}
	if !f.synodic {
		return f.sunMoon, nil
	}
	days := jd - J2000JD
	sunRA := wrapHours(days / 365.25 * 24)
	moonRA := wrapHours(sunRA + days/fakeSynodicDays*24)
	return SunMoon{
		Sun:  SkyPosition{RAHours: sunRA, DecDeg: 0, Distance: 1},
		Moon: SkyPosition{RAHours: moonRA, DecDeg: 0, Distance: fakeMoonDistanceAU},
	}, nil
}

func (f *fakeEphemeris) MoonPosition(t time.Time, jd float64, obs ObserverInfo) (SkyPosition, error) {
	sm, err := f.SunAndMoonPosition(t, jd)
	if err != nil {
		return SkyPosition{}, err
	}
	return sm.Moon, nil
}

func (f *fakeEphemeris) TransformEpoch(c Coordinates, to Epoch) (Coordinates, error) {
	if f.epochErr != nil {
		return Coordinates{}, f.epochErr
	}
	c.Epoch = to
	return c, nil
}

func (f *fakeEphemeris) AngularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	cosSep := math.Sin(dec1)*math.Sin(dec2) + math.Cos(dec1)*math.Cos(dec2)*math.Cos(ra1-ra2)
	return math.Acos(clampUnit(cosSep))
}
