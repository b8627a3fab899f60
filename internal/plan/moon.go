package plan

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// MoonSample is the Moon's phase at a point in time.
type MoonSample struct {
	Time         time.Time
	Illumination float64
	Waxing       bool
	Name         string
}

// MoonSweep samples the Moon's illuminated fraction every step between start
// and end.
func (p *Planner) MoonSweep(ctx context.Context, start, end time.Time, step time.Duration) ([]MoonSample, error) {
	times, err := sampleTimes(start, end, step)
	if err != nil {
		return nil, fmt.Errorf("moon sweep: %w", err)
	}

	out := make([]MoonSample, len(times))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, at := range times {
		i, at := i, at // per-iteration copies (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			phase, err := p.calc.MoonPhase(at)
			if err != nil {
				return fmt.Errorf("moon sweep at %v: %w", at, err)
			}
			out[i] = MoonSample{
				Time:         at,
				Illumination: phase.Illumination,
				Waxing:       phase.Waxing,
				Name:         phase.Name,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// MeanIllumination returns the average illuminated fraction of a sweep, or
// zero for an empty one.
func MeanIllumination(samples []MoonSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	k := make([]float64, len(samples))
	for i, s := range samples {
		k[i] = s.Illumination
	}
	return stat.Mean(k, nil)
}
