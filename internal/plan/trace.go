package plan

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/litescript/ls-skyplan/internal/astro"
)

// Sample is a single position of a target at a point in time.
type Sample struct {
	Time   time.Time
	AltDeg float64
	AzDeg  float64
}

// Trace contains altitude samples of one target over a time window.
type Trace struct {
	Target  Target
	Site    astro.ObserverInfo
	Start   time.Time
	End     time.Time
	Step    time.Duration
	Samples []Sample
	Peak    Sample
}

// Trace samples the target's position from obs every step between start and
// end. The target is reduced to the equinox of date once, at start.
func (p *Planner) Trace(ctx context.Context, obs astro.ObserverInfo, target Target, start, end time.Time, step time.Duration) (*Trace, error) {
	times, err := sampleTimes(start, end, step)
	if err != nil {
		return nil, fmt.Errorf("trace %s: %w", target.Name, err)
	}

	apparent, err := p.ofDate(target.Coordinates, start)
	if err != nil {
		return nil, fmt.Errorf("trace %s: %w", target.Name, err)
	}

	samples := make([]Sample, len(times))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, at := range times {
		i, at := i, at // per-iteration copies (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hz, err := p.calc.HorizontalCoordinates(&obs, &apparent, at)
			if err != nil {
				return fmt.Errorf("trace %s at %v: %w", target.Name, at, err)
			}
			samples[i] = Sample{Time: at, AltDeg: hz.AltDeg, AzDeg: hz.AzDeg}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tr := &Trace{
		Target:  target,
		Site:    obs,
		Start:   times[0],
		End:     times[len(times)-1],
		Step:    step,
		Samples: samples,
	}
	tr.Peak = samples[floats.MaxIdx(tr.Altitudes())]

	p.logger.Debug("traced %s from %s: %d samples, peak %.1f° at %s",
		target.Name, obs.Name, len(samples), tr.Peak.AltDeg, tr.Peak.Time.Format(time.RFC3339))

	return tr, nil
}

// Altitudes returns the altitude series in sample order.
func (t *Trace) Altitudes() []float64 {
	alts := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		alts[i] = s.AltDeg
	}
	return alts
}

// AltitudeAt returns the sample closest to the given time. It returns false
// if the trace has no samples.
func (t *Trace) AltitudeAt(at time.Time) (Sample, bool) {
	if len(t.Samples) == 0 {
		return Sample{}, false
	}

	best := 0
	var minDelta time.Duration = 1<<63 - 1

	for i := range t.Samples {
		delta := t.Samples[i].Time.Sub(at)
		if delta < 0 {
			delta = -delta
		}
		if delta < minDelta {
			minDelta = delta
			best = i
		}
	}

	return t.Samples[best], true
}
