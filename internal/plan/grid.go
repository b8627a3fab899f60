package plan

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidWindow is returned for empty or inverted sampling windows.
var ErrInvalidWindow = errors.New("plan: invalid sampling window")

// maxSamples caps a sampling grid.
const maxSamples = 100_000

// sampleTimes returns start, start+step, ... up to and including the last
// grid point not after end.
func sampleTimes(start, end time.Time, step time.Duration) ([]time.Time, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: step %v", ErrInvalidWindow, step)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end %v not after start %v", ErrInvalidWindow, end, start)
	}

	n := int(end.Sub(start)/step) + 1
	if n < 2 {
		n = 2
	}
	if n > maxSamples {
		return nil, fmt.Errorf("%w: %d samples exceeds %d", ErrInvalidWindow, n, maxSamples)
	}

	offsets := floats.Span(make([]float64, n), 0, float64(n-1)*step.Seconds())
	times := make([]time.Time, n)
	for i, off := range offsets {
		times[i] = start.Add(time.Duration(off * float64(time.Second)).Round(time.Millisecond))
	}
	return times, nil
}
