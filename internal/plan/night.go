package plan

import (
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/litescript/ls-skyplan/internal/astro"
)

// Night is the dark interval that starts on a calendar date.
type Night struct {
	Date    time.Time // UTC midnight of the date
	Sunset  time.Time
	Sunrise time.Time // the following morning

	// Continuous is set when the Sun does not both set on the date and rise
	// the next day. Daylight then tells midnight sun from polar night.
	Continuous bool
	Daylight   bool
}

// Duration returns the length of the night, zero when Continuous.
func (n Night) Duration() time.Duration {
	if n.Continuous {
		return 0
	}
	return n.Sunrise.Sub(n.Sunset)
}

// Contains reports whether t falls between sunset and the next sunrise.
func (n Night) Contains(t time.Time) bool {
	if n.Continuous {
		return !n.Daylight
	}
	return !t.Before(n.Sunset) && t.Before(n.Sunrise)
}

// NightWindow returns the night beginning on date's UTC calendar day at obs.
func (p *Planner) NightWindow(obs astro.ObserverInfo, date time.Time) (Night, error) {
	if _, err := astro.IsAbovePolarCircle(&obs); err != nil {
		return Night{}, fmt.Errorf("night window: %w", err)
	}

	day := date.UTC()
	y, m, d := day.Date()
	next := time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)

	_, set := sunrise.SunriseSunset(obs.LatDeg, obs.LonDeg, y, m, d)
	rise, _ := sunrise.SunriseSunset(obs.LatDeg, obs.LonDeg, next.Year(), next.Month(), next.Day())

	n := Night{
		Date:    time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Sunset:  set,
		Sunrise: rise,
	}
	if !set.IsZero() && !rise.IsZero() && rise.After(set) {
		return n, nil
	}

	// No sunset or sunrise: the Sun is circumpolar or never rises. Its
	// declination on the same side as the observer means midnight sun.
	eph := p.calc.Ephemeris()
	noon := n.Date.Add(12 * time.Hour)
	sm, err := eph.SunAndMoonPosition(noon, eph.JulianDate(noon))
	if err != nil {
		return Night{}, fmt.Errorf("night window: %w", err)
	}

	n.Continuous = true
	n.Daylight = obs.LatDeg*sm.Sun.DecDeg > 0
	p.logger.Debug("no sunset/sunrise at %s on %s (daylight=%v)", obs.Name, n.Date.Format("2006-01-02"), n.Daylight)
	return n, nil
}
