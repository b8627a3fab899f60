// Package plan builds observing plans on top of the astro core: multi-target
// surveys, altitude traces, visibility windows and night boundaries.
package plan

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-skyplan/internal/astro"
	"github.com/litescript/ls-skyplan/internal/logging"
)

// Target is a named equatorial position.
type Target struct {
	Name        string
	Coordinates astro.Coordinates
}

// TargetsFromCatalog converts catalogue stars to targets.
func TargetsFromCatalog(stars []astro.Star) []Target {
	targets := make([]Target, len(stars))
	for i, s := range stars {
		targets[i] = Target{Name: s.Name, Coordinates: s.Coordinates}
	}
	return targets
}

// Planner runs plans against a Calculator.
type Planner struct {
	calc    *astro.Calculator
	logger  *logging.Logger
	workers int
}

// Option configures a Planner.
type Option func(*Planner)

// WithWorkers bounds the number of concurrent core calls. Values below one
// are ignored.
func WithWorkers(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.workers = n
		}
	}
}

// New creates a Planner. A nil logger discards output.
func New(calc *astro.Calculator, logger *logging.Logger, opts ...Option) *Planner {
	if logger == nil {
		logger = logging.Discard()
	}
	p := &Planner{
		calc:    calc,
		logger:  logger,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Calculator returns the underlying calculator.
func (p *Planner) Calculator() *astro.Calculator {
	return p.calc
}

// TargetReport is the survey result for a single target.
type TargetReport struct {
	Target
	Position       astro.HorizontalCoordinate
	MoonSeparation float64 // degrees
	Rises          bool
	Circumpolar    bool
	CircumpolarMin bool // stays above the survey's minimum altitude
	Tier           astro.AltitudeTier
}

// Visible reports whether the target is above the horizon.
func (r TargetReport) Visible() bool {
	return r.Position.AltDeg > 0
}

// Survey is a snapshot of every target from one site.
type Survey struct {
	Site             astro.ObserverInfo
	Time             time.Time
	MinAltitude      float64
	Moon             astro.MoonPhase
	AbovePolarCircle bool
	Reports          []TargetReport // same order as the input targets
}

// VisibleCount returns the number of targets above the horizon.
func (s *Survey) VisibleCount() int {
	n := 0
	for _, r := range s.Reports {
		if r.Visible() {
			n++
		}
	}
	return n
}

// Survey evaluates every target from obs at instant t. Targets are reduced
// to the of-date frame before conversion to horizontal coordinates.
func (p *Planner) Survey(ctx context.Context, obs astro.ObserverInfo, targets []Target, t time.Time, minAlt float64) (*Survey, error) {
	start := time.Now()

	polar, err := astro.IsAbovePolarCircle(&obs)
	if err != nil {
		return nil, fmt.Errorf("survey: %w", err)
	}
	moon, err := p.calc.MoonPhase(t)
	if err != nil {
		return nil, fmt.Errorf("survey: %w", err)
	}

	reports := make([]TargetReport, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, tgt := range targets {
		i, tgt := i, tgt // per-iteration copies (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := p.report(obs, tgt, t, minAlt)
			if err != nil {
				return fmt.Errorf("survey %s: %w", tgt.Name, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.logger.Debug("survey of %d targets from %s took %v", len(targets), obs.Name, time.Since(start))

	return &Survey{
		Site:             obs,
		Time:             t,
		MinAltitude:      minAlt,
		Moon:             moon,
		AbovePolarCircle: polar,
		Reports:          reports,
	}, nil
}

func (p *Planner) report(obs astro.ObserverInfo, tgt Target, t time.Time, minAlt float64) (TargetReport, error) {
	apparent, err := p.ofDate(tgt.Coordinates, t)
	if err != nil {
		return TargetReport{}, err
	}

	pos, err := p.calc.HorizontalCoordinates(&obs, &apparent, t)
	if err != nil {
		return TargetReport{}, err
	}
	sep, err := p.calc.MoonSeparationAngle(&obs, t, &tgt.Coordinates)
	if err != nil {
		return TargetReport{}, err
	}
	rises, err := astro.RisesAtLocation(&obs, &tgt.Coordinates)
	if err != nil {
		return TargetReport{}, err
	}
	circ, err := astro.CircumpolarAtLocation(&obs, &tgt.Coordinates)
	if err != nil {
		return TargetReport{}, err
	}
	circMin, err := astro.CircumpolarAtLocationWithMinimumAltitude(&obs, &tgt.Coordinates, minAlt)
	if err != nil {
		return TargetReport{}, err
	}

	return TargetReport{
		Target:         tgt,
		Position:       pos,
		MoonSeparation: sep,
		Rises:          rises,
		Circumpolar:    circ,
		CircumpolarMin: circMin,
		Tier:           astro.GetAltitudeTier(pos.AltDeg),
	}, nil
}

// ofDate reduces c to the equinox of date at t.
func (p *Planner) ofDate(c astro.Coordinates, t time.Time) (astro.Coordinates, error) {
	eph := p.calc.Ephemeris()
	now, err := eph.TransformEpoch(c, astro.OfDate(eph.JulianDate(t)))
	if err != nil {
		return astro.Coordinates{}, fmt.Errorf("transform epoch: %w", err)
	}
	return now, nil
}
